// Package memory keeps users and regions in process memory. It backs local
// development and the service tests.
package memory

import (
	"context"
	"sync"

	"github.com/dtroode/georegions-server/internal/model"
)

var (
	_ model.Transactor = (*Store)(nil)
	_ model.Pinger     = (*Store)(nil)
)

// locker is satisfied by *sync.RWMutex and by noopLocker, which transactional
// views use because the transaction already holds the store lock.
type locker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type noopLocker struct{}

func (noopLocker) Lock()    {}
func (noopLocker) Unlock()  {}
func (noopLocker) RLock()   {}
func (noopLocker) RUnlock() {}

type state struct {
	users   map[string]model.User
	regions map[string]model.Region
}

func (s *state) clone() *state {
	out := &state{
		users:   make(map[string]model.User, len(s.users)),
		regions: make(map[string]model.Region, len(s.regions)),
	}
	for id, u := range s.users {
		out.users[id] = copyUser(u)
	}
	for id, r := range s.regions {
		out.regions[id] = copyRegion(r)
	}
	return out
}

// Store is an in-memory implementation of the user and region stores.
type Store struct {
	mu    sync.RWMutex
	state *state

	users   *UserRepository
	regions *RegionRepository
}

// NewStore creates an empty Store.
func NewStore() *Store {
	s := &Store{
		state: &state{
			users:   make(map[string]model.User),
			regions: make(map[string]model.Region),
		},
	}
	s.users = &UserRepository{store: s, mu: &s.mu}
	s.regions = &RegionRepository{store: s, mu: &s.mu}
	return s
}

// Users returns the user store.
func (s *Store) Users() *UserRepository {
	return s.users
}

// Regions returns the region store.
func (s *Store) Regions() *RegionRepository {
	return s.regions
}

// Stores returns both stores as a model.Stores.
func (s *Store) Stores() model.Stores {
	return model.Stores{Users: s.users, Regions: s.regions}
}

// RunInTx holds the store lock for the duration of fn and restores the
// previous state when fn fails.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	tx := model.Stores{
		Users:   &UserRepository{store: s, mu: noopLocker{}},
		Regions: &RegionRepository{store: s, mu: noopLocker{}},
	}

	if err := fn(ctx, tx); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// Close is a no-op kept for parity with the other backends.
func (s *Store) Close() error {
	return nil
}

func copyUser(u model.User) model.User {
	if u.Regions != nil {
		u.Regions = append([]string(nil), u.Regions...)
	}
	return u
}

func copyRegion(r model.Region) model.Region {
	if r.Boundary != nil {
		r.Boundary = append([]model.Point(nil), r.Boundary...)
	}
	return r
}
