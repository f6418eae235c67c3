package service

import (
	"context"
	"testing"

	"github.com/dtroode/georegions-server/internal/mocks"
	"github.com/dtroode/georegions-server/internal/model"
	"github.com/dtroode/georegions-server/internal/repository/memory"
	"github.com/dtroode/georegions-server/internal/testutil"
)

type fixture struct {
	store       *memory.Store
	geocoder    *mocks.Geocoder
	consistency *Consistency
	users       *User
	regions     *Region
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	geocoder := mocks.NewGeocoder(t)
	log := testutil.MakeNoopLogger()
	consistency := NewConsistency(geocoder, log)

	return &fixture{
		store:       store,
		geocoder:    geocoder,
		consistency: consistency,
		users:       NewUser(store.Stores(), store, consistency, log),
		regions:     NewRegion(store.Stores(), store, consistency, log),
	}
}

// seedUser stores a user directly, bypassing geocoding.
func (f *fixture) seedUser(t *testing.T, id string) model.User {
	t.Helper()

	user, err := f.store.Users().Create(context.Background(), model.User{
		Meta:        model.Meta{ID: id},
		Name:        "Owner " + id,
		Email:       id + "@example.com",
		Address:     "1 Main St",
		Coordinates: model.Point{Lat: 40, Lng: -74},
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// ownerTx runs transactions on store but hands fn users in place of the
// store's own user repository.
type ownerTx struct {
	store *memory.Store
	users model.UserStore
}

func (o ownerTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) error {
	return o.store.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		stores.Users = o.users
		return fn(ctx, stores)
	})
}

func ptr[T any](v T) *T {
	return &v
}
