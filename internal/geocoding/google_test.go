package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/georegions-server/internal/metrics"
	"github.com/dtroode/georegions-server/internal/model"
	"github.com/dtroode/georegions-server/internal/testutil"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...GoogleOption) *GoogleClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]GoogleOption{
		WithBackOff(func() backoff.BackOff { return &backoff.ZeroBackOff{} }),
	}, opts...)
	return NewGoogleClient(srv.URL, "test-key", time.Second, 2, testutil.MakeNoopLogger(), opts...)
}

func TestGoogleClient_Forward(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1 Main St", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"1 Main St, Springfield","geometry":{"location":{"lat":40.7128,"lng":-74.006}}}]}`))
	})

	p, err := c.Forward(context.Background(), "1 Main St")
	require.NoError(t, err)
	assert.Equal(t, model.Point{Lat: 40.7128, Lng: -74.006}, p)
}

func TestGoogleClient_Reverse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "40.7128000,-74.0060000", r.URL.Query().Get("latlng"))
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"City Hall, New York"},{"formatted_address":"second"}]}`))
	})

	address, err := c.Reverse(context.Background(), model.Point{Lat: 40.7128, Lng: -74.006})
	require.NoError(t, err)
	assert.Equal(t, "City Hall, New York", address)
}

func TestGoogleClient_NoResult(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero results", body: `{"status":"ZERO_RESULTS","results":[]}`},
		{name: "ok but empty", body: `{"status":"OK","results":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Forward(context.Background(), "nowhere")
			assert.True(t, errors.Is(err, model.ErrResolution))
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestGoogleClient_ReverseEmptyAddress(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"formatted_address":""}]}`))
	})

	_, err := c.Reverse(context.Background(), model.Point{Lat: 1, Lng: 2})
	assert.ErrorIs(t, err, model.ErrResolution)
}

func TestGoogleClient_PermanentStatus(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid."}`))
	})

	_, err := c.Forward(context.Background(), "1 Main St")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrResolution)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
	assert.Equal(t, int32(1), calls.Load())
}

func TestGoogleClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			_, _ = w.Write([]byte(`{"status":"OVER_QUERY_LIMIT"}`))
		default:
			_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":1,"lng":2}}}]}`))
		}
	})

	p, err := c.Forward(context.Background(), "1 Main St")
	require.NoError(t, err)
	assert.Equal(t, model.Point{Lat: 1, Lng: 2}, p)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGoogleClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Forward(context.Background(), "1 Main St")
	assert.ErrorIs(t, err, model.ErrResolution)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGoogleClient_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := c.Forward(context.Background(), "1 Main St")
	assert.ErrorIs(t, err, model.ErrResolution)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGoogleClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewGoogleClient(srv.URL, "k", 50*time.Millisecond, 0, testutil.MakeNoopLogger())

	start := time.Now()
	_, err := c.Forward(context.Background(), "slow")
	assert.ErrorIs(t, err, model.ErrResolution)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestGoogleClient_InvalidCoordinates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":123,"lng":2}}}]}`))
	})

	_, err := c.Forward(context.Background(), "somewhere")
	assert.ErrorIs(t, err, model.ErrResolution)
}

func TestGoogleClient_Metrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("address") == "missing" {
			_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":1,"lng":2}}}]}`))
	}, WithMetrics(m))

	_, err := c.Forward(context.Background(), "found")
	require.NoError(t, err)
	_, err = c.Forward(context.Background(), "missing")
	require.Error(t, err)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.GeocoderCalls.WithLabelValues(directionForward, metrics.OutcomeOK)))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.GeocoderCalls.WithLabelValues(directionForward, metrics.OutcomeNoResult)))
}
