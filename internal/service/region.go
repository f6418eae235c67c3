package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dtroode/georegions-server/internal/geo"
	"github.com/dtroode/georegions-server/internal/logger"
	"github.com/dtroode/georegions-server/internal/model"
)

type Region struct {
	stores      model.Stores
	tx          model.Transactor
	consistency *Consistency
	logger      *logger.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

func NewRegion(
	stores model.Stores,
	tx model.Transactor,
	consistency *Consistency,
	logger *logger.Logger,
) *Region {
	return &Region{
		stores:      stores,
		tx:          tx,
		consistency: consistency,
		logger:      logger,
		tracer:      otel.Tracer(tracerName),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a region and links it to its owner in one transaction.
func (s *Region) Create(ctx context.Context, params model.CreateRegionParams) (model.Region, error) {
	ctx, span := s.tracer.Start(ctx, "Region.Create")
	defer span.End()

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return model.Region{}, fmt.Errorf("%w: name is required", model.ErrValidation)
	}
	if params.Owner == "" {
		return model.Region{}, fmt.Errorf("%w: owner is required", model.ErrValidation)
	}
	if err := params.Coordinates.Validate(); err != nil {
		return model.Region{}, err
	}
	if len(params.Boundary) > 0 {
		if err := geo.ValidateBoundary(params.Boundary); err != nil {
			return model.Region{}, err
		}
	}

	region := model.Region{
		Meta:        model.Meta{ID: strings.TrimSpace(params.ID)},
		Name:        name,
		Coordinates: params.Coordinates,
		Boundary:    params.Boundary,
		Owner:       params.Owner,
	}
	if region.ID == "" {
		region.ID = uuid.NewString()
	}
	region.Touch(s.now())
	span.SetAttributes(attribute.String("region.id", region.ID), attribute.String("region.owner", region.Owner))

	var created model.Region
	err := s.tx.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		if _, err := stores.Users.GetByID(ctx, region.Owner); err != nil {
			return ownerError(region.Owner, err)
		}

		var err error
		created, err = stores.Regions.Create(ctx, region)
		if err != nil {
			return fmt.Errorf("failed to create region: %w", err)
		}

		return s.consistency.LinkRegionToOwner(ctx, stores.Users, created.ID, created.Owner)
	})
	if err != nil {
		return model.Region{}, err
	}

	s.logger.Debug("Region: created", "region_id", created.ID, "owner_id", created.Owner)
	return created, nil
}

func (s *Region) Get(ctx context.Context, id string) (model.Region, error) {
	region, err := s.stores.Regions.GetByID(ctx, id)
	if err != nil {
		return model.Region{}, fmt.Errorf("failed to get region by id: %w", err)
	}

	return region, nil
}

func (s *Region) List(ctx context.Context) ([]model.Region, error) {
	regions, err := s.stores.Regions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	return regions, nil
}

// Update applies the non-nil fields of params. Moving a region to another
// owner re-links it in the same transaction.
func (s *Region) Update(ctx context.Context, id string, params model.UpdateRegionParams) (model.Region, error) {
	ctx, span := s.tracer.Start(ctx, "Region.Update", trace.WithAttributes(attribute.String("region.id", id)))
	defer span.End()

	if params.Name != nil && strings.TrimSpace(*params.Name) == "" {
		return model.Region{}, fmt.Errorf("%w: name must not be empty", model.ErrValidation)
	}
	if params.Owner != nil && *params.Owner == "" {
		return model.Region{}, fmt.Errorf("%w: owner must not be empty", model.ErrValidation)
	}
	if params.Coordinates != nil {
		if err := params.Coordinates.Validate(); err != nil {
			return model.Region{}, err
		}
	}
	if params.Boundary != nil && len(*params.Boundary) > 0 {
		if err := geo.ValidateBoundary(*params.Boundary); err != nil {
			return model.Region{}, err
		}
	}

	var updated model.Region
	err := s.tx.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		region, err := stores.Regions.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get region by id: %w", err)
		}

		previousOwner := region.Owner
		if params.Name != nil {
			region.Name = strings.TrimSpace(*params.Name)
		}
		if params.Coordinates != nil {
			region.Coordinates = *params.Coordinates
		}
		if params.Boundary != nil {
			region.Boundary = nil
			if len(*params.Boundary) > 0 {
				region.Boundary = *params.Boundary
			}
		}
		if params.Owner != nil {
			region.Owner = *params.Owner
		}
		region.Touch(s.now())

		ownerChanged := region.Owner != previousOwner
		if ownerChanged {
			if _, err := stores.Users.GetByID(ctx, region.Owner); err != nil {
				return ownerError(region.Owner, err)
			}
		}

		updated, err = stores.Regions.Update(ctx, region)
		if err != nil {
			return fmt.Errorf("failed to update region: %w", err)
		}

		if !ownerChanged {
			return nil
		}
		if err := s.consistency.UnlinkRegionFromOwner(ctx, stores.Users, region.ID, previousOwner); err != nil {
			return err
		}
		return s.consistency.LinkRegionToOwner(ctx, stores.Users, region.ID, region.Owner)
	})
	if err != nil {
		return model.Region{}, err
	}

	return updated, nil
}

// Delete removes the region and retracts it from its owner. It reports false
// when no such region exists.
func (s *Region) Delete(ctx context.Context, id string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "Region.Delete", trace.WithAttributes(attribute.String("region.id", id)))
	defer span.End()

	err := s.tx.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		region, err := stores.Regions.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get region by id: %w", err)
		}

		if err := stores.Regions.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete region: %w", err)
		}

		return s.consistency.UnlinkRegionFromOwner(ctx, stores.Users, region.ID, region.Owner)
	})
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// FindContainingPoint returns the regions whose area contains p.
func (s *Region) FindContainingPoint(ctx context.Context, p model.Point) ([]model.Region, error) {
	ctx, span := s.tracer.Start(ctx, "Region.FindContainingPoint")
	defer span.End()

	if err := p.Validate(); err != nil {
		return nil, err
	}

	regions, err := s.stores.Regions.FindContaining(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to find regions containing point: %w", err)
	}

	return regions, nil
}

// FindWithinDistance returns the regions anchored within maxDistance metres
// of p, nearest first. An empty ownerID matches every owner.
func (s *Region) FindWithinDistance(ctx context.Context, p model.Point, maxDistance float64, ownerID string) ([]model.Region, error) {
	ctx, span := s.tracer.Start(ctx, "Region.FindWithinDistance",
		trace.WithAttributes(attribute.Float64("query.max_distance", maxDistance)),
	)
	defer span.End()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(maxDistance) || math.IsInf(maxDistance, 0) || maxDistance < 0 {
		return nil, fmt.Errorf("%w: max distance must be a non-negative number", model.ErrValidation)
	}

	regions, err := s.stores.Regions.FindWithinDistance(ctx, p, maxDistance, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find regions within distance: %w", err)
	}

	return regions, nil
}

func ownerError(ownerID string, err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("owner %s: %w", ownerID, model.ErrNotFound)
	}
	return fmt.Errorf("failed to get owner: %w", err)
}
