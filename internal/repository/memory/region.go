package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/dtroode/georegions-server/internal/geo"
	"github.com/dtroode/georegions-server/internal/model"
)

var _ model.RegionStore = (*RegionRepository)(nil)

// RegionRepository stores regions in memory and evaluates geospatial
// predicates with package geo.
type RegionRepository struct {
	store *Store
	mu    locker
}

func (r *RegionRepository) Create(_ context.Context, region model.Region) (model.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store.state.regions[region.ID]; ok {
		return model.Region{}, fmt.Errorf("region %s: %w", region.ID, model.ErrConflict)
	}
	r.store.state.regions[region.ID] = copyRegion(region)
	return copyRegion(region), nil
}

func (r *RegionRepository) GetByID(_ context.Context, id string) (model.Region, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	region, ok := r.store.state.regions[id]
	if !ok {
		return model.Region{}, model.ErrNotFound
	}
	return copyRegion(region), nil
}

func (r *RegionRepository) List(_ context.Context) ([]model.Region, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshot(func(model.Region) bool { return true }), nil
}

func (r *RegionRepository) ListByOwner(_ context.Context, ownerID string) ([]model.Region, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshot(func(region model.Region) bool { return region.Owner == ownerID }), nil
}

func (r *RegionRepository) Update(_ context.Context, region model.Region) (model.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store.state.regions[region.ID]; !ok {
		return model.Region{}, model.ErrNotFound
	}
	r.store.state.regions[region.ID] = copyRegion(region)
	return copyRegion(region), nil
}

func (r *RegionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store.state.regions[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.store.state.regions, id)
	return nil
}

func (r *RegionRepository) FindContaining(_ context.Context, p model.Point) ([]model.Region, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := r.snapshot(func(region model.Region) bool {
		return geo.RegionBound(region).Contains(p)
	})
	return geo.Containing(candidates, p), nil
}

func (r *RegionRepository) FindWithinDistance(_ context.Context, p model.Point, maxMeters float64, ownerID string) ([]model.Region, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := r.snapshot(func(region model.Region) bool {
		return ownerID == "" || region.Owner == ownerID
	})
	return geo.WithinDistance(candidates, p, maxMeters), nil
}

// snapshot copies the regions matching keep, oldest first. Callers hold the lock.
func (r *RegionRepository) snapshot(keep func(model.Region) bool) []model.Region {
	regions := make([]model.Region, 0)
	for _, region := range r.store.state.regions {
		if keep(region) {
			regions = append(regions, copyRegion(region))
		}
	}
	sort.Slice(regions, func(i, j int) bool {
		if regions[i].CreatedAt.Equal(regions[j].CreatedAt) {
			return regions[i].ID < regions[j].ID
		}
		return regions[i].CreatedAt.Before(regions[j].CreatedAt)
	})
	return regions
}
