package model

import (
	"fmt"
	"math"
	"time"
)

// Meta carries identity and timestamps shared by every stored entity.
type Meta struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Touch sets UpdatedAt, and CreatedAt when it is still zero.
func (m *Meta) Touch(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

// Point is a WGS84 position. Every component of the service works with this
// named representation; array encodings only exist at the HTTP and store edges.
type Point struct {
	Lat float64
	Lng float64
}

// Validate checks that the point lies on the globe.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrValidation, p.Lat)
	}
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrValidation, p.Lng)
	}
	return nil
}

// String formats the point as "lat,lng", the form the geocoding API expects.
func (p Point) String() string {
	return fmt.Sprintf("%.7f,%.7f", p.Lat, p.Lng)
}

// Location is a resolved address together with its coordinates.
type Location struct {
	Address     string
	Coordinates Point
}
