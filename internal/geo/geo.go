// Package geo implements the geospatial predicates used by stores that have
// no native geospatial index.
package geo

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"

	"github.com/dtroode/georegions-server/internal/model"
)

// pointTolerance is the coordinate delta under which two points are equal.
const pointTolerance = 1e-9

var errBoundaryTooSmall = fmt.Errorf("%w: boundary needs at least three distinct points", model.ErrValidation)

// Bound is a latitude/longitude box.
type Bound struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Contains reports whether p lies inside the box, edges included.
func (b Bound) Contains(p model.Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// ToOrb converts p to an orb point, which is ordered longitude first.
func ToOrb(p model.Point) orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// FromOrb converts an orb point back to the canonical representation.
func FromOrb(p orb.Point) model.Point {
	return model.Point{Lat: p.Lat(), Lng: p.Lon()}
}

// Ring builds a closed ring from boundary.
func Ring(boundary []model.Point) orb.Ring {
	ring := make(orb.Ring, 0, len(boundary)+1)
	for _, p := range boundary {
		ring = append(ring, ToOrb(p))
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// Distance returns the great-circle distance between a and b in metres.
func Distance(a, b model.Point) float64 {
	return orbgeo.DistanceHaversine(ToOrb(a), ToOrb(b))
}

// Equal reports whether a and b denote the same position.
func Equal(a, b model.Point) bool {
	return math.Abs(a.Lat-b.Lat) <= pointTolerance && math.Abs(a.Lng-b.Lng) <= pointTolerance
}

// Contains reports whether the region's area contains p. A region with a
// boundary contains the points of its polygon; a region without one only
// contains its own anchor point.
func Contains(r model.Region, p model.Point) bool {
	if len(r.Boundary) == 0 {
		return Equal(r.Coordinates, p)
	}
	return planar.PolygonContains(orb.Polygon{Ring(r.Boundary)}, ToOrb(p))
}

// RegionBound returns the box enclosing the region's area.
func RegionBound(r model.Region) Bound {
	if len(r.Boundary) == 0 {
		return Bound{
			MinLat: r.Coordinates.Lat, MaxLat: r.Coordinates.Lat,
			MinLng: r.Coordinates.Lng, MaxLng: r.Coordinates.Lng,
		}
	}
	b := Ring(r.Boundary).Bound()
	return Bound{MinLat: b.Min.Lat(), MaxLat: b.Max.Lat(), MinLng: b.Min.Lon(), MaxLng: b.Max.Lon()}
}

// BoundAround returns a box that encloses every point within meters of p.
// Longitudes are widened to the full range when the box would wrap the
// antimeridian, and latitudes are clamped at the poles.
func BoundAround(p model.Point, meters float64) Bound {
	b := orbgeo.NewBoundAroundPoint(ToOrb(p), meters)
	out := Bound{
		MinLat: math.Max(b.Min.Lat(), -90),
		MaxLat: math.Min(b.Max.Lat(), 90),
		MinLng: b.Min.Lon(),
		MaxLng: b.Max.Lon(),
	}
	if out.MinLng < -180 || out.MaxLng > 180 || out.MinLat == -90 || out.MaxLat == 90 {
		out.MinLng, out.MaxLng = -180, 180
	}
	return out
}

// ValidateBoundary checks that boundary describes a simple polygon: at least
// three valid vertices, none repeated, and no two edges crossing or touching.
// A trailing copy of the first vertex is accepted as an explicit closure.
func ValidateBoundary(boundary []model.Point) error {
	for _, p := range boundary {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	vertices := boundary
	if n := len(vertices); n > 1 && Equal(vertices[0], vertices[n-1]) {
		vertices = vertices[:n-1]
	}
	for i := range vertices {
		for j := i + 1; j < len(vertices); j++ {
			if Equal(vertices[i], vertices[j]) {
				if len(vertices) < 3 {
					return errBoundaryTooSmall
				}
				return fmt.Errorf("%w: boundary repeats vertex [%v, %v]", model.ErrValidation, vertices[j].Lat, vertices[j].Lng)
			}
		}
	}
	if len(vertices) < 3 {
		return errBoundaryTooSmall
	}

	ring := Ring(vertices)
	if selfIntersects(ring) {
		return fmt.Errorf("%w: boundary edges cross", model.ErrValidation)
	}
	if planar.Area(ring) == 0 {
		return fmt.Errorf("%w: boundary encloses no area", model.ErrValidation)
	}
	return nil
}

// selfIntersects reports whether any two edges of the closed ring meet
// anywhere other than the vertex shared by neighbouring edges.
func selfIntersects(ring orb.Ring) bool {
	edges := len(ring) - 1
	for i := 0; i < edges; i++ {
		a, b := ring[i], ring[i+1]
		for j := i + 1; j < edges; j++ {
			c, d := ring[j], ring[j+1]
			switch {
			case j == i+1:
				// b == c; the edges fold back onto each other when d lies on ab.
				if orientation(a, b, d) == 0 && (onSegment(a, b, d) || onSegment(c, d, a)) {
					return true
				}
			case i == 0 && j == edges-1:
				// d == a; likewise for c on ab.
				if orientation(a, b, c) == 0 && (onSegment(a, b, c) || onSegment(c, d, b)) {
					return true
				}
			default:
				if segmentsIntersect(a, b, c, d) {
					return true
				}
			}
		}
	}
	return false
}

func segmentsIntersect(a, b, c, d orb.Point) bool {
	o1, o2 := orientation(a, b, c), orientation(a, b, d)
	o3, o4 := orientation(c, d, a), orientation(c, d, b)
	if o1 != o2 && o3 != o4 && o1 != 0 && o2 != 0 && o3 != 0 && o4 != 0 {
		return true
	}
	return (o1 == 0 && onSegment(a, b, c)) ||
		(o2 == 0 && onSegment(a, b, d)) ||
		(o3 == 0 && onSegment(c, d, a)) ||
		(o4 == 0 && onSegment(c, d, b))
}

// orientation returns the sign of the turn a -> b -> c: 1 counter-clockwise,
// -1 clockwise, 0 collinear.
func orientation(a, b, c orb.Point) int {
	v := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// onSegment reports whether p, known to be collinear with ab, lies within its
// bounding box.
func onSegment(a, b, p orb.Point) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}

// Containing filters regions down to those containing p.
func Containing(regions []model.Region, p model.Point) []model.Region {
	out := make([]model.Region, 0)
	for _, r := range regions {
		if Contains(r, p) {
			out = append(out, r)
		}
	}
	return out
}

// WithinDistance filters regions down to those whose anchor lies within
// maxMeters of p and orders them nearest first.
func WithinDistance(regions []model.Region, p model.Point, maxMeters float64) []model.Region {
	type candidate struct {
		region   model.Region
		distance float64
	}

	candidates := make([]candidate, 0, len(regions))
	for _, r := range regions {
		d := Distance(p, r.Coordinates)
		if d <= maxMeters {
			candidates = append(candidates, candidate{region: r, distance: d})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	out := make([]model.Region, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.region)
	}
	return out
}
