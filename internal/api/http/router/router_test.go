package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/georegions-server/internal/metrics"
	"github.com/dtroode/georegions-server/internal/mocks"
	"github.com/dtroode/georegions-server/internal/model"
	"github.com/dtroode/georegions-server/internal/testutil"
)

type fixture struct {
	users   *mocks.UserService
	regions *mocks.RegionService
	store   *mocks.Pinger
	handler http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	reg := prometheus.NewRegistry()
	f := &fixture{
		users:   mocks.NewUserService(t),
		regions: mocks.NewRegionService(t),
		store:   mocks.NewPinger(t),
	}
	f.handler = New(f.users, f.regions, f.store, metrics.New(reg), reg, time.Second, testutil.MakeNoopLogger()).Register()
	return f
}

func (f *fixture) do(method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestRouter_UserRoutes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.users.On("List", mock.Anything).Return([]model.User{}, nil)
	f.users.On("Get", mock.Anything, "u1").Return(model.User{Meta: model.Meta{ID: "u1"}}, nil)
	f.users.On("Delete", mock.Anything, "u1").Return(true, nil)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/users").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/users/u1").Code)
	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/users/u1").Code)
}

func TestRouter_QueryRoutesWinOverID(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.regions.On("FindContainingPoint", mock.Anything, model.Point{Lat: 1, Lng: 2}).Return([]model.Region{}, nil)
	f.regions.On("FindWithinDistance", mock.Anything, model.Point{Lat: 1, Lng: 2}, 100.0, "").Return([]model.Region{}, nil)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/regions/containing/point?latitude=1&longitude=2").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/regions/within/distance?latitude=1&longitude=2&maxDistance=100").Code)
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.On("Ping", mock.Anything).Return(nil)

	rec := f.do(http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestRouter_MetricsExposition(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.users.On("List", mock.Anything).Return([]model.User{}, nil)
	f.do(http.MethodGet, "/users")

	rec := f.do(http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `georegions_http_requests_total{code="200",method="GET"`))
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/nope").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, f.do(http.MethodPatch, "/users").Code)
}

func TestRouter_RecoversFromPanics(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.users.On("List", mock.Anything).Run(func(mock.Arguments) { panic("boom") }).Return(nil, nil)

	assert.Equal(t, http.StatusInternalServerError, f.do(http.MethodGet, "/users").Code)
}
