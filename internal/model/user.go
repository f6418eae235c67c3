package model

import "context"

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id string) error
}

// User is a person with a resolved location and the regions they own.
type User struct {
	Meta
	Name        string
	Email       string
	Address     string
	Coordinates Point
	// Regions lists the ids of owned regions, each exactly once.
	Regions []string
}

// HasRegion reports whether regionID is already listed.
func (u User) HasRegion(regionID string) bool {
	for _, id := range u.Regions {
		if id == regionID {
			return true
		}
	}
	return false
}

// CreateUserParams contains parameters to create a user. Exactly one of
// Address and Coordinates must be set.
type CreateUserParams struct {
	Name        string
	Email       string
	Address     *string
	Coordinates *Point
}

// UpdateUserParams contains parameters to update a user. Nil fields are left
// unchanged; Address and Coordinates are mutually exclusive.
type UpdateUserParams struct {
	Name        *string
	Email       *string
	Address     *string
	Coordinates *Point
}
