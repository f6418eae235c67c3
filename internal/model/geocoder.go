package model

import "context"

// Geocoder converts between addresses and coordinates.
type Geocoder interface {
	// Forward returns the coordinates of the first match for address.
	Forward(ctx context.Context, address string) (Point, error)
	// Reverse returns the formatted address of the first match for p.
	Reverse(ctx context.Context, p Point) (string, error)
}
