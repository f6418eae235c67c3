package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dtroode/georegions-server/internal/logger"
	"github.com/dtroode/georegions-server/internal/model"
)

// Consistency keeps user locations resolved and owner region lists in step
// with the regions they own.
type Consistency struct {
	geocoder model.Geocoder
	logger   *logger.Logger
	now      func() time.Time
}

func NewConsistency(geocoder model.Geocoder, logger *logger.Logger) *Consistency {
	return &Consistency{
		geocoder: geocoder,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ResolveLocation derives the missing half of a location. Exactly one of
// address and coordinates must be given; an address that is empty after
// trimming counts as absent.
func (c *Consistency) ResolveLocation(ctx context.Context, address *string, coordinates *model.Point) (model.Location, error) {
	address = presentAddress(address)
	hasAddress := address != nil
	hasCoordinates := coordinates != nil

	switch {
	case hasAddress && hasCoordinates:
		return model.Location{}, fmt.Errorf("%w: address and coordinates are mutually exclusive", model.ErrValidation)
	case !hasAddress && !hasCoordinates:
		return model.Location{}, fmt.Errorf("%w: either address or coordinates is required", model.ErrValidation)
	case hasAddress:
		addr := *address
		p, err := c.geocoder.Forward(ctx, addr)
		if err != nil {
			return model.Location{}, resolutionError(fmt.Errorf("failed to geocode address: %w", err))
		}
		return model.Location{Address: addr, Coordinates: p}, nil
	default:
		if err := coordinates.Validate(); err != nil {
			return model.Location{}, err
		}
		addr, err := c.geocoder.Reverse(ctx, *coordinates)
		if err != nil {
			return model.Location{}, resolutionError(fmt.Errorf("failed to reverse geocode coordinates: %w", err))
		}
		return model.Location{Address: addr, Coordinates: *coordinates}, nil
	}
}

// presentAddress returns the trimmed address, or nil when it is absent or
// blank.
func presentAddress(address *string) *string {
	if address == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*address)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// LinkRegionToOwner records regionID in the owner's region list, once. It
// must run in the same transaction as the region write.
func (c *Consistency) LinkRegionToOwner(ctx context.Context, users model.UserStore, regionID, ownerID string) error {
	owner, err := users.GetByID(ctx, ownerID)
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("owner %s: %w", ownerID, model.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get owner: %w", err)
	}

	if owner.HasRegion(regionID) {
		return nil
	}

	owner.Regions = append(owner.Regions, regionID)
	owner.Touch(c.now())
	if _, err := users.Update(ctx, owner); err != nil {
		return fmt.Errorf("failed to link region to owner: %w", err)
	}

	return nil
}

// UnlinkRegionFromOwner removes every occurrence of regionID from the owner's
// region list. A missing owner is not an error.
func (c *Consistency) UnlinkRegionFromOwner(ctx context.Context, users model.UserStore, regionID, ownerID string) error {
	owner, err := users.GetByID(ctx, ownerID)
	if errors.Is(err, model.ErrNotFound) {
		c.logger.Warn("Consistency: owner missing while unlinking region", "region_id", regionID, "owner_id", ownerID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get owner: %w", err)
	}

	if !owner.HasRegion(regionID) {
		return nil
	}

	kept := make([]string, 0, len(owner.Regions))
	for _, id := range owner.Regions {
		if id != regionID {
			kept = append(kept, id)
		}
	}
	owner.Regions = kept
	owner.Touch(c.now())
	if _, err := users.Update(ctx, owner); err != nil {
		return fmt.Errorf("failed to unlink region from owner: %w", err)
	}

	return nil
}

// resolutionError makes sure every geocoding failure classifies as
// ErrResolution.
func resolutionError(err error) error {
	if errors.Is(err, model.ErrResolution) {
		return err
	}
	return fmt.Errorf("%w: %v", model.ErrResolution, err)
}
