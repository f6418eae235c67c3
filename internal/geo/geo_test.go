package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/georegions-server/internal/model"
)

// square around Copacabana, Rio de Janeiro
var square = []model.Point{
	{Lat: -22.990, Lng: -43.200},
	{Lat: -22.990, Lng: -43.170},
	{Lat: -22.960, Lng: -43.170},
	{Lat: -22.960, Lng: -43.200},
}

func TestRing_ClosesOpenBoundary(t *testing.T) {
	ring := Ring(square)
	require.Len(t, ring, 5)
	assert.Equal(t, ring[0], ring[4])
	assert.Equal(t, -43.200, ring[0].Lon())
	assert.Equal(t, -22.990, ring[0].Lat())
}

func TestRing_KeepsClosedBoundary(t *testing.T) {
	closed := append(append([]model.Point{}, square...), square[0])
	assert.Len(t, Ring(closed), 5)
}

func TestContains(t *testing.T) {
	polygon := model.Region{Coordinates: model.Point{Lat: -22.975, Lng: -43.185}, Boundary: square}
	anchorOnly := model.Region{Coordinates: model.Point{Lat: 10, Lng: 20}}

	tests := []struct {
		name   string
		region model.Region
		point  model.Point
		want   bool
	}{
		{name: "inside polygon", region: polygon, point: model.Point{Lat: -22.970, Lng: -43.180}, want: true},
		{name: "outside polygon", region: polygon, point: model.Point{Lat: -22.900, Lng: -43.180}, want: false},
		{name: "far away from polygon", region: polygon, point: model.Point{Lat: 51.5, Lng: -0.12}, want: false},
		{name: "anchor match", region: anchorOnly, point: model.Point{Lat: 10, Lng: 20}, want: true},
		{name: "anchor mismatch", region: anchorOnly, point: model.Point{Lat: 10.001, Lng: 20}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.region, tt.point))
		})
	}
}

func TestDistance(t *testing.T) {
	// one degree of latitude is roughly 111 km
	d := Distance(model.Point{Lat: 0, Lng: 0}, model.Point{Lat: 1, Lng: 0})
	assert.InDelta(t, 111_250, d, 150)
	assert.Zero(t, Distance(square[0], square[0]))
}

func TestWithinDistance_FiltersAndOrders(t *testing.T) {
	origin := model.Point{Lat: 0, Lng: 0}
	regions := []model.Region{
		{Meta: model.Meta{ID: "far"}, Coordinates: model.Point{Lat: 0, Lng: 0.05}},
		{Meta: model.Meta{ID: "near"}, Coordinates: model.Point{Lat: 0, Lng: 0.001}},
		{Meta: model.Meta{ID: "out"}, Coordinates: model.Point{Lat: 1, Lng: 1}},
	}

	got := WithinDistance(regions, origin, 10_000)
	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].ID)
	assert.Equal(t, "far", got[1].ID)

	for _, r := range got {
		assert.LessOrEqual(t, Distance(origin, r.Coordinates), 10_000.0)
	}
}

func TestWithinDistance_EmptyResultIsNotNil(t *testing.T) {
	got := WithinDistance(nil, model.Point{}, 1)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestContaining(t *testing.T) {
	regions := []model.Region{
		{Meta: model.Meta{ID: "copacabana"}, Boundary: square},
		{Meta: model.Meta{ID: "elsewhere"}, Coordinates: model.Point{Lat: 1, Lng: 1}},
	}

	got := Containing(regions, model.Point{Lat: -22.97, Lng: -43.18})
	require.Len(t, got, 1)
	assert.Equal(t, "copacabana", got[0].ID)

	assert.Empty(t, Containing(regions, model.Point{Lat: 60, Lng: 60}))
}

func TestRegionBound(t *testing.T) {
	b := RegionBound(model.Region{Boundary: square})
	assert.Equal(t, Bound{MinLat: -22.990, MaxLat: -22.960, MinLng: -43.200, MaxLng: -43.170}, b)
	assert.True(t, b.Contains(model.Point{Lat: -22.97, Lng: -43.18}))

	anchor := model.Point{Lat: 3, Lng: 4}
	pb := RegionBound(model.Region{Coordinates: anchor})
	assert.True(t, pb.Contains(anchor))
	assert.False(t, pb.Contains(model.Point{Lat: 3, Lng: 4.1}))
}

func TestBoundAround(t *testing.T) {
	center := model.Point{Lat: 40, Lng: -3}
	b := BoundAround(center, 5_000)
	assert.True(t, b.Contains(center))
	assert.Less(t, b.MinLat, 40.0)
	assert.Greater(t, b.MaxLng, -3.0)

	nearPole := BoundAround(model.Point{Lat: 89.99, Lng: 0}, 50_000)
	assert.Equal(t, -180.0, nearPole.MinLng)
	assert.Equal(t, 180.0, nearPole.MaxLng)

	antimeridian := BoundAround(model.Point{Lat: 0, Lng: 179.99}, 10_000)
	assert.Equal(t, -180.0, antimeridian.MinLng)
	assert.Equal(t, 180.0, antimeridian.MaxLng)
}

func TestValidateBoundary(t *testing.T) {
	tests := []struct {
		name     string
		boundary []model.Point
		wantErr  bool
	}{
		{name: "square", boundary: square},
		{name: "explicitly closed square", boundary: append(append([]model.Point{}, square...), square[0])},
		{
			name:     "concave",
			boundary: []model.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 2}, {Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}, {Lat: 2, Lng: 0}},
		},
		{name: "two points", boundary: square[:2], wantErr: true},
		{name: "repeated first point", boundary: []model.Point{square[0], square[0], square[0], square[1]}, wantErr: true},
		{name: "latitude out of range", boundary: []model.Point{{Lat: 95, Lng: 0}, square[1], square[2]}, wantErr: true},
		{
			name:     "bowtie",
			boundary: []model.Point{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 0}},
			wantErr:  true,
		},
		{
			name:     "repeated inner vertex",
			boundary: []model.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 2}, {Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}, {Lat: 1, Lng: 1}, {Lat: 2, Lng: 0}},
			wantErr:  true,
		},
		{
			name:     "collinear",
			boundary: []model.Point{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}},
			wantErr:  true,
		},
		{
			name:     "edge folds back",
			boundary: []model.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 2}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}},
			wantErr:  true,
		},
		{
			name:     "vertex touches edge",
			boundary: []model.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 2}, {Lat: 2, Lng: 2}, {Lat: 0, Lng: 1}, {Lat: 2, Lng: 0}},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBoundary(tt.boundary)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}
