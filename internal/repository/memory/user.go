package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/dtroode/georegions-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository stores users in memory.
type UserRepository struct {
	store *Store
	mu    locker
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store.state.users[user.ID]; ok {
		return model.User{}, fmt.Errorf("user %s: %w", user.ID, model.ErrConflict)
	}
	if user.Regions == nil {
		user.Regions = []string{}
	}
	r.store.state.users[user.ID] = copyUser(user)
	return copyUser(user), nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store.state.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return copyUser(user), nil
}

func (r *UserRepository) List(_ context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.User, 0, len(r.store.state.users))
	for _, u := range r.store.state.users {
		users = append(users, copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *UserRepository) Update(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store.state.users[user.ID]; !ok {
		return model.User{}, model.ErrNotFound
	}
	if user.Regions == nil {
		user.Regions = []string{}
	}
	r.store.state.users[user.ID] = copyUser(user)
	return copyUser(user), nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store.state.users[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.store.state.users, id)
	return nil
}
