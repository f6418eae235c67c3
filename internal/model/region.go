package model

import "context"

// RegionStore defines persistence and geospatial queries for regions.
type RegionStore interface {
	Create(ctx context.Context, region Region) (Region, error)
	GetByID(ctx context.Context, id string) (Region, error)
	List(ctx context.Context) ([]Region, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Region, error)
	Update(ctx context.Context, region Region) (Region, error)
	Delete(ctx context.Context, id string) error
	// FindContaining returns regions whose area contains p.
	FindContaining(ctx context.Context, p Point) ([]Region, error)
	// FindWithinDistance returns regions whose anchor lies within maxMeters of
	// p, nearest first. An empty ownerID matches every owner.
	FindWithinDistance(ctx context.Context, p Point, maxMeters float64, ownerID string) ([]Region, error)
}

// Region is a named area owned by a user. Coordinates is the anchor point;
// Boundary, when present, is the polygon ring describing the area.
type Region struct {
	Meta
	Name        string
	Coordinates Point
	Boundary    []Point
	Owner       string
}

// CreateRegionParams contains parameters to create a region. ID is optional.
type CreateRegionParams struct {
	ID          string
	Name        string
	Coordinates Point
	Boundary    []Point
	Owner       string
}

// UpdateRegionParams contains parameters to update a region. Nil fields are
// left unchanged; a non-nil empty Boundary clears the polygon.
type UpdateRegionParams struct {
	Name        *string
	Coordinates *Point
	Boundary    *[]Point
	Owner       *string
}
