package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dtroode/georegions-server/internal/geo"
	"github.com/dtroode/georegions-server/internal/model"
)

var _ model.RegionStore = (*RegionRepository)(nil)

const regionColumns = `id, name, lat, lng, boundary, owner_id, created_at, updated_at`

// RegionRepository stores regions together with their bounding box. Geo
// queries prefilter on the box in SQL and finish with package geo.
type RegionRepository struct {
	db querier
}

func NewRegionRepository(db querier) *RegionRepository {
	return &RegionRepository{
		db: db,
	}
}

func (r *RegionRepository) Create(ctx context.Context, region model.Region) (model.Region, error) {
	boundary, err := encodeBoundary(region.Boundary)
	if err != nil {
		return model.Region{}, err
	}
	b := geo.RegionBound(region)

	query := `INSERT INTO regions (id, name, lat, lng, boundary, min_lat, max_lat, min_lng, max_lng, owner_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.ExecContext(ctx, query,
		region.ID, region.Name, region.Coordinates.Lat, region.Coordinates.Lng, boundary,
		b.MinLat, b.MaxLat, b.MinLng, b.MaxLng,
		region.Owner, region.CreatedAt, region.UpdatedAt,
	)
	if err != nil {
		return model.Region{}, classify("create region", err)
	}

	return region, nil
}

func (r *RegionRepository) GetByID(ctx context.Context, id string) (model.Region, error) {
	query := `SELECT ` + regionColumns + ` FROM regions WHERE id = $1`

	region, err := scanRegion(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.Region{}, classify("get region by id", err)
	}

	return region, nil
}

func (r *RegionRepository) List(ctx context.Context) ([]model.Region, error) {
	return r.query(ctx, "list regions",
		`SELECT `+regionColumns+` FROM regions ORDER BY created_at, id`)
}

func (r *RegionRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Region, error) {
	return r.query(ctx, "list regions by owner",
		`SELECT `+regionColumns+` FROM regions WHERE owner_id = $1 ORDER BY created_at, id`, ownerID)
}

func (r *RegionRepository) Update(ctx context.Context, region model.Region) (model.Region, error) {
	boundary, err := encodeBoundary(region.Boundary)
	if err != nil {
		return model.Region{}, err
	}
	b := geo.RegionBound(region)

	query := `UPDATE regions
			  SET name = $2, lat = $3, lng = $4, boundary = $5,
			      min_lat = $6, max_lat = $7, min_lng = $8, max_lng = $9,
			      owner_id = $10, updated_at = $11
			  WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		region.ID, region.Name, region.Coordinates.Lat, region.Coordinates.Lng, boundary,
		b.MinLat, b.MaxLat, b.MinLng, b.MaxLng,
		region.Owner, region.UpdatedAt,
	)
	if err != nil {
		return model.Region{}, classify("update region", err)
	}
	if err := expectOneRow(res); err != nil {
		return model.Region{}, err
	}

	return region, nil
}

func (r *RegionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM regions WHERE id = $1`, id)
	if err != nil {
		return classify("delete region", err)
	}

	return expectOneRow(res)
}

func (r *RegionRepository) FindContaining(ctx context.Context, p model.Point) ([]model.Region, error) {
	candidates, err := r.query(ctx, "find regions containing point",
		`SELECT `+regionColumns+` FROM regions
		 WHERE min_lat <= $1 AND max_lat >= $1 AND min_lng <= $2 AND max_lng >= $2
		 ORDER BY created_at, id`,
		p.Lat, p.Lng)
	if err != nil {
		return nil, err
	}

	return geo.Containing(candidates, p), nil
}

func (r *RegionRepository) FindWithinDistance(ctx context.Context, p model.Point, maxMeters float64, ownerID string) ([]model.Region, error) {
	b := geo.BoundAround(p, maxMeters)

	candidates, err := r.query(ctx, "find regions within distance",
		`SELECT `+regionColumns+` FROM regions
		 WHERE lat BETWEEN $1 AND $2 AND lng BETWEEN $3 AND $4
		   AND ($5 = '' OR owner_id = $5)
		 ORDER BY created_at, id`,
		b.MinLat, b.MaxLat, b.MinLng, b.MaxLng, ownerID)
	if err != nil {
		return nil, err
	}

	return geo.WithinDistance(candidates, p, maxMeters), nil
}

func (r *RegionRepository) query(ctx context.Context, op, query string, args ...any) ([]model.Region, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	regions := make([]model.Region, 0)
	for rows.Next() {
		region, err := scanRegion(rows)
		if err != nil {
			return nil, classify("scan region", err)
		}
		regions = append(regions, region)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}

	return regions, nil
}

func scanRegion(row rowScanner) (model.Region, error) {
	var (
		region   model.Region
		boundary []byte
	)
	err := row.Scan(
		&region.ID, &region.Name, &region.Coordinates.Lat, &region.Coordinates.Lng,
		&boundary, &region.Owner, &region.CreatedAt, &region.UpdatedAt,
	)
	if err != nil {
		return model.Region{}, err
	}

	if len(boundary) > 0 {
		var ring [][2]float64
		if err := json.Unmarshal(boundary, &ring); err != nil {
			return model.Region{}, fmt.Errorf("failed to decode boundary: %w", err)
		}
		for _, pt := range ring {
			region.Boundary = append(region.Boundary, model.Point{Lat: pt[0], Lng: pt[1]})
		}
	}

	return region, nil
}

// encodeBoundary stores the ring as [[lat, lng], ...]; an empty ring is NULL.
func encodeBoundary(boundary []model.Point) (*string, error) {
	if len(boundary) == 0 {
		return nil, nil
	}

	ring := make([][2]float64, 0, len(boundary))
	for _, p := range boundary {
		ring = append(ring, [2]float64{p.Lat, p.Lng})
	}
	b, err := json.Marshal(ring)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode boundary: %w", model.ErrPersistence, err)
	}
	s := string(b)
	return &s, nil
}
