package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dtroode/georegions-server/internal/logger"
	"github.com/dtroode/georegions-server/internal/model"
)

const tracerName = "github.com/dtroode/georegions-server/internal/service"

type User struct {
	stores      model.Stores
	tx          model.Transactor
	consistency *Consistency
	logger      *logger.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

func NewUser(
	stores model.Stores,
	tx model.Transactor,
	consistency *Consistency,
	logger *logger.Logger,
) *User {
	return &User{
		stores:      stores,
		tx:          tx,
		consistency: consistency,
		logger:      logger,
		tracer:      otel.Tracer(tracerName),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *User) Create(ctx context.Context, params model.CreateUserParams) (model.User, error) {
	ctx, span := s.tracer.Start(ctx, "User.Create")
	defer span.End()

	name, email, err := requireNameAndEmail(params.Name, params.Email)
	if err != nil {
		return model.User{}, err
	}

	location, err := s.consistency.ResolveLocation(ctx, params.Address, params.Coordinates)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		Meta:        model.Meta{ID: uuid.NewString()},
		Name:        name,
		Email:       email,
		Address:     location.Address,
		Coordinates: location.Coordinates,
		Regions:     []string{},
	}
	user.Touch(s.now())
	span.SetAttributes(attribute.String("user.id", user.ID))

	user, err = s.stores.Users.Create(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Debug("User: created", "user_id", user.ID)
	return user, nil
}

func (s *User) Get(ctx context.Context, id string) (model.User, error) {
	user, err := s.stores.Users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (s *User) List(ctx context.Context) ([]model.User, error) {
	users, err := s.stores.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Update applies the non-nil fields of params. A new address or new
// coordinates are resolved before the store write; the write itself re-reads
// the user so a concurrent region link is not lost.
func (s *User) Update(ctx context.Context, id string, params model.UpdateUserParams) (model.User, error) {
	ctx, span := s.tracer.Start(ctx, "User.Update", trace.WithAttributes(attribute.String("user.id", id)))
	defer span.End()

	address := presentAddress(params.Address)
	if address != nil && params.Coordinates != nil {
		return model.User{}, fmt.Errorf("%w: address and coordinates are mutually exclusive", model.ErrValidation)
	}
	if params.Name != nil && strings.TrimSpace(*params.Name) == "" {
		return model.User{}, fmt.Errorf("%w: name must not be empty", model.ErrValidation)
	}
	if params.Email != nil && strings.TrimSpace(*params.Email) == "" {
		return model.User{}, fmt.Errorf("%w: email must not be empty", model.ErrValidation)
	}

	if _, err := s.stores.Users.GetByID(ctx, id); err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	var location *model.Location
	if address != nil || params.Coordinates != nil {
		resolved, err := s.consistency.ResolveLocation(ctx, address, params.Coordinates)
		if err != nil {
			return model.User{}, err
		}
		location = &resolved
	}

	var updated model.User
	err := s.tx.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		user, err := stores.Users.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get user by id: %w", err)
		}

		if params.Name != nil {
			user.Name = strings.TrimSpace(*params.Name)
		}
		if params.Email != nil {
			user.Email = strings.TrimSpace(*params.Email)
		}
		if location != nil {
			user.Address = location.Address
			user.Coordinates = location.Coordinates
		}
		user.Touch(s.now())

		updated, err = stores.Users.Update(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	return updated, nil
}

// Delete removes the user together with the regions they own. It reports
// false when no such user exists.
func (s *User) Delete(ctx context.Context, id string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "User.Delete", trace.WithAttributes(attribute.String("user.id", id)))
	defer span.End()

	var removedRegions int
	err := s.tx.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		if _, err := stores.Users.GetByID(ctx, id); err != nil {
			return fmt.Errorf("failed to get user by id: %w", err)
		}

		regions, err := stores.Regions.ListByOwner(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to list owned regions: %w", err)
		}
		for _, region := range regions {
			if err := stores.Regions.Delete(ctx, region.ID); err != nil && !errors.Is(err, model.ErrNotFound) {
				return fmt.Errorf("failed to delete region %s: %w", region.ID, err)
			}
		}
		removedRegions = len(regions)

		if err := stores.Users.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.logger.Debug("User: deleted", "user_id", id, "regions", removedRegions)
	return true, nil
}

func requireNameAndEmail(name, email string) (string, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return "", "", fmt.Errorf("%w: name is required", model.ErrValidation)
	}
	if email == "" {
		return "", "", fmt.Errorf("%w: email is required", model.ErrValidation)
	}
	return name, email, nil
}
