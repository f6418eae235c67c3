package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/georegions-server/internal/model"
)

func TestConsistency_ResolveLocation_Address(t *testing.T) {
	f := newFixture(t)
	f.geocoder.On("Forward", mock.Anything, "1 Main St").Return(model.Point{Lat: 40.7, Lng: -74}, nil).Once()

	loc, err := f.consistency.ResolveLocation(context.Background(), ptr("  1 Main St "), nil)
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", loc.Address)
	assert.Equal(t, model.Point{Lat: 40.7, Lng: -74}, loc.Coordinates)
}

func TestConsistency_ResolveLocation_Coordinates(t *testing.T) {
	f := newFixture(t)
	p := model.Point{Lat: 48.8584, Lng: 2.2945}
	f.geocoder.On("Reverse", mock.Anything, p).Return("Champ de Mars, Paris", nil).Once()

	loc, err := f.consistency.ResolveLocation(context.Background(), nil, &p)
	require.NoError(t, err)
	assert.Equal(t, "Champ de Mars, Paris", loc.Address)
	assert.Equal(t, p, loc.Coordinates)
}

func TestConsistency_ResolveLocation_InvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		address     *string
		coordinates *model.Point
	}{
		{name: "both", address: ptr("1 Main St"), coordinates: &model.Point{Lat: 1, Lng: 1}},
		{name: "neither"},
		{name: "blank address", address: ptr("   ")},
		{name: "out of range coordinates", coordinates: &model.Point{Lat: 91}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.consistency.ResolveLocation(context.Background(), tt.address, tt.coordinates)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
}

func TestConsistency_ResolveLocation_ProviderFailure(t *testing.T) {
	f := newFixture(t)
	f.geocoder.On("Forward", mock.Anything, "nowhere").Return(model.Point{}, errors.New("dial tcp: refused")).Once()

	_, err := f.consistency.ResolveLocation(context.Background(), ptr("nowhere"), nil)
	assert.ErrorIs(t, err, model.ErrResolution)
}

func TestConsistency_LinkRegionToOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1")

	require.NoError(t, f.consistency.LinkRegionToOwner(ctx, f.store.Users(), "r1", "u1"))
	require.NoError(t, f.consistency.LinkRegionToOwner(ctx, f.store.Users(), "r1", "u1"))
	require.NoError(t, f.consistency.LinkRegionToOwner(ctx, f.store.Users(), "r2", "u1"))

	owner, err := f.store.Users().GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, owner.Regions)

	err = f.consistency.LinkRegionToOwner(ctx, f.store.Users(), "r1", "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestConsistency_UnlinkRegionFromOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.seedUser(t, "u1")
	user.Regions = []string{"r1", "r2", "r1"}
	_, err := f.store.Users().Update(ctx, user)
	require.NoError(t, err)

	require.NoError(t, f.consistency.UnlinkRegionFromOwner(ctx, f.store.Users(), "r1", "u1"))

	owner, err := f.store.Users().GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, owner.Regions)

	assert.NoError(t, f.consistency.UnlinkRegionFromOwner(ctx, f.store.Users(), "r1", "missing"))
}
