package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dtroode/georegions-server/internal/geo"
	"github.com/dtroode/georegions-server/internal/model"
)

const (
	geoJSONPoint   = "Point"
	geoJSONPolygon = "Polygon"
)

// pointDoc is a GeoJSON point; coordinates are [longitude, latitude].
type pointDoc struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

func newPointDoc(p model.Point) pointDoc {
	return pointDoc{Type: geoJSONPoint, Coordinates: []float64{p.Lng, p.Lat}}
}

func (d pointDoc) point() model.Point {
	if len(d.Coordinates) != 2 {
		return model.Point{}
	}
	return model.Point{Lat: d.Coordinates[1], Lng: d.Coordinates[0]}
}

type userDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Address   string    `bson:"address"`
	Location  pointDoc  `bson:"location"`
	Regions   []string  `bson:"regions"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func newUserDoc(u model.User) userDoc {
	regions := u.Regions
	if regions == nil {
		regions = []string{}
	}
	return userDoc{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Location:  newPointDoc(u.Coordinates),
		Regions:   regions,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDoc) user() model.User {
	regions := d.Regions
	if regions == nil {
		regions = []string{}
	}
	return model.User{
		Meta:        model.Meta{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		Name:        d.Name,
		Email:       d.Email,
		Address:     d.Address,
		Coordinates: d.Location.point(),
		Regions:     regions,
	}
}

// regionDoc stores the anchor in location and the queryable area in area:
// the boundary polygon when present, otherwise the anchor point. boundary
// keeps the ring as entered, [[lat, lng], ...], without the closing point.
type regionDoc struct {
	ID        string      `bson:"_id"`
	Name      string      `bson:"name"`
	Location  pointDoc    `bson:"location"`
	Area      bson.M      `bson:"area"`
	Boundary  [][]float64 `bson:"boundary,omitempty"`
	User      string      `bson:"user"`
	CreatedAt time.Time   `bson:"created_at"`
	UpdatedAt time.Time   `bson:"updated_at"`
}

func newRegionDoc(r model.Region) regionDoc {
	doc := regionDoc{
		ID:        r.ID,
		Name:      r.Name,
		Location:  newPointDoc(r.Coordinates),
		User:      r.Owner,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if len(r.Boundary) == 0 {
		doc.Area = bson.M{"type": geoJSONPoint, "coordinates": []float64{r.Coordinates.Lng, r.Coordinates.Lat}}
		return doc
	}

	ring := geo.Ring(r.Boundary)
	coords := make([][]float64, 0, len(ring))
	for _, p := range ring {
		coords = append(coords, []float64{p.Lon(), p.Lat()})
	}
	doc.Area = bson.M{"type": geoJSONPolygon, "coordinates": [][][]float64{coords}}

	doc.Boundary = make([][]float64, 0, len(r.Boundary))
	for _, p := range r.Boundary {
		doc.Boundary = append(doc.Boundary, []float64{p.Lat, p.Lng})
	}
	return doc
}

func (d regionDoc) region() model.Region {
	r := model.Region{
		Meta:        model.Meta{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		Name:        d.Name,
		Coordinates: d.Location.point(),
		Owner:       d.User,
	}
	for _, pt := range d.Boundary {
		if len(pt) == 2 {
			r.Boundary = append(r.Boundary, model.Point{Lat: pt[0], Lng: pt[1]})
		}
	}
	return r
}
