package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/georegions-server/internal/model"
)

func TestUser_Create_WithAddress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.geocoder.On("Forward", mock.Anything, "1 Main St").Return(model.Point{Lat: 40.7128, Lng: -74.006}, nil).Once()

	user, err := f.users.Create(ctx, model.CreateUserParams{
		Name:    "Alice",
		Email:   "alice@example.com",
		Address: ptr("1 Main St"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "1 Main St", user.Address)
	assert.Equal(t, model.Point{Lat: 40.7128, Lng: -74.006}, user.Coordinates)
	assert.Empty(t, user.Regions)
	assert.False(t, user.CreatedAt.IsZero())

	stored, err := f.store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Point{Lat: 40.7128, Lng: -74.006}, stored.Coordinates)
}

func TestUser_Create_WithCoordinates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := model.Point{Lat: 51.5007, Lng: -0.1246}
	f.geocoder.On("Reverse", mock.Anything, p).Return("Westminster, London", nil).Once()

	user, err := f.users.Create(ctx, model.CreateUserParams{Name: "Bob", Email: "bob@example.com", Coordinates: &p})
	require.NoError(t, err)
	assert.Equal(t, "Westminster, London", user.Address)
	assert.Equal(t, p, user.Coordinates)
}

func TestUser_Create_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params model.CreateUserParams
	}{
		{
			name:   "address and coordinates",
			params: model.CreateUserParams{Name: "A", Email: "a@b.c", Address: ptr("1 Main St"), Coordinates: &model.Point{Lat: 1, Lng: 1}},
		},
		{
			name:   "no location",
			params: model.CreateUserParams{Name: "A", Email: "a@b.c"},
		},
		{
			name:   "missing name",
			params: model.CreateUserParams{Email: "a@b.c", Address: ptr("1 Main St")},
		},
		{
			name:   "missing email",
			params: model.CreateUserParams{Name: "A", Address: ptr("1 Main St")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.users.Create(context.Background(), tt.params)
			assert.ErrorIs(t, err, model.ErrValidation)

			users, err := f.store.Users().List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, users)
		})
	}
}

func TestUser_Create_ResolutionFailure(t *testing.T) {
	f := newFixture(t)
	f.geocoder.On("Forward", mock.Anything, "nowhere").Return(model.Point{}, model.ErrResolution).Once()

	_, err := f.users.Create(context.Background(), model.CreateUserParams{Name: "A", Email: "a@b.c", Address: ptr("nowhere")})
	assert.ErrorIs(t, err, model.ErrResolution)

	users, err := f.store.Users().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUser_Get(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "u1")

	user, err := f.users.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Owner u1", user.Name)

	_, err = f.users.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUser_List(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "u1")
	f.seedUser(t, "u2")

	users, err := f.users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUser_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1")
	f.geocoder.On("Forward", mock.Anything, "10 Downing St").Return(model.Point{Lat: 51.5034, Lng: -0.1276}, nil).Once()

	user, err := f.users.Update(ctx, "u1", model.UpdateUserParams{Name: ptr("Renamed"), Address: ptr("10 Downing St")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)
	assert.Equal(t, "u1@example.com", user.Email)
	assert.Equal(t, "10 Downing St", user.Address)
	assert.Equal(t, model.Point{Lat: 51.5034, Lng: -0.1276}, user.Coordinates)
}

func TestUser_Update_LocationUnchanged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seeded := f.seedUser(t, "u1")

	user, err := f.users.Update(ctx, "u1", model.UpdateUserParams{Email: ptr("new@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, seeded.Address, user.Address)
	assert.Equal(t, seeded.Coordinates, user.Coordinates)
}

func TestUser_Update_BlankAddressWithCoordinates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1")
	point := model.Point{Lat: 48.8584, Lng: 2.2945}
	f.geocoder.On("Reverse", mock.Anything, point).Return("Champ de Mars, Paris", nil).Once()

	user, err := f.users.Update(ctx, "u1", model.UpdateUserParams{Address: ptr("  "), Coordinates: &point})
	require.NoError(t, err)
	assert.Equal(t, "Champ de Mars, Paris", user.Address)
	assert.Equal(t, point, user.Coordinates)
}

func TestUser_Update_KeepsRegions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1")
	_, err := f.regions.Create(ctx, model.CreateRegionParams{Name: "Home", Coordinates: model.Point{Lat: 1, Lng: 1}, Owner: "u1"})
	require.NoError(t, err)

	user, err := f.users.Update(ctx, "u1", model.UpdateUserParams{Name: ptr("Still here")})
	require.NoError(t, err)
	assert.Len(t, user.Regions, 1)
}

func TestUser_Update_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1")

	_, err := f.users.Update(ctx, "u1", model.UpdateUserParams{Address: ptr("a"), Coordinates: &model.Point{}})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = f.users.Update(ctx, "u1", model.UpdateUserParams{Name: ptr(" ")})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = f.users.Update(ctx, "missing", model.UpdateUserParams{Name: ptr("x")})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUser_Delete_CascadesRegions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1")
	f.seedUser(t, "u2")

	mine, err := f.regions.Create(ctx, model.CreateRegionParams{Name: "Mine", Coordinates: model.Point{Lat: 1, Lng: 1}, Owner: "u1"})
	require.NoError(t, err)
	theirs, err := f.regions.Create(ctx, model.CreateRegionParams{Name: "Theirs", Coordinates: model.Point{Lat: 2, Lng: 2}, Owner: "u2"})
	require.NoError(t, err)

	deleted, err := f.users.Delete(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = f.store.Regions().GetByID(ctx, mine.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = f.store.Regions().GetByID(ctx, theirs.ID)
	assert.NoError(t, err)

	deleted, err = f.users.Delete(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, deleted)
}
