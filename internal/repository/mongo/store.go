// Package mongo stores users and regions in MongoDB. Regions carry 2dsphere
// indexes so geospatial queries run in the database.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dtroode/georegions-server/internal/logger"
	"github.com/dtroode/georegions-server/internal/model"
)

const (
	usersCollection   = "users"
	regionsCollection = "regions"
)

var (
	_ model.Transactor = (*Store)(nil)
	_ model.Pinger     = (*Store)(nil)
)

// Store groups the MongoDB repositories. With transactions enabled units of
// work run in a session transaction, which needs a replica set. Otherwise
// they are serialised within the process and failed units are undone by
// replaying compensating writes.
type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
	logger       *logger.Logger

	// mu serialises compensated units of work.
	mu sync.Mutex

	users   *UserRepository
	regions *RegionRepository
}

// Connect opens a client for uri, verifies it and prepares the indexes.
func Connect(ctx context.Context, uri, database string, transactions bool, logger *logger.Logger) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	s := NewStore(client, client.Database(database), transactions, logger)
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return s, nil
}

// NewStore creates a Store over db.
func NewStore(client *mongo.Client, db *mongo.Database, transactions bool, logger *logger.Logger) *Store {
	return &Store{
		client:       client,
		db:           db,
		transactions: transactions,
		logger:       logger,
		users:        NewUserRepository(db.Collection(usersCollection)),
		regions:      NewRegionRepository(db.Collection(regionsCollection)),
	}
}

// EnsureIndexes creates the geospatial and owner indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(regionsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "area", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create region indexes: %w", err)
	}

	_, err = s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	return nil
}

func (s *Store) Stores() model.Stores {
	return model.Stores{Users: s.users, Regions: s.regions}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) error {
	if s.transactions {
		return s.runInSession(ctx, fn)
	}
	return s.runCompensated(ctx, fn)
}

func (s *Store) runInSession(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: failed to start session: %w", model.ErrPersistence, err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc, s.Stores())
	})
	return err
}

func (s *Store) runCompensated(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j := &journal{}
	stores := model.Stores{
		Users:   &UserRepository{coll: s.users.coll, journal: j},
		Regions: &RegionRepository{coll: s.regions.coll, journal: j},
	}

	err := fn(ctx, stores)
	if err == nil {
		return nil
	}

	if undoErr := j.rollback(context.WithoutCancel(ctx)); undoErr != nil {
		s.logger.Error("MongoStore: compensation failed", "error", undoErr)
		return errors.Join(err, fmt.Errorf("%w: failed to undo writes: %w", model.ErrPersistence, undoErr))
	}
	return err
}

// journal collects compensating writes for a unit of work.
type journal struct {
	undo []func(ctx context.Context) error
}

func (j *journal) record(undo func(ctx context.Context) error) {
	if j == nil {
		return
	}
	j.undo = append(j.undo, undo)
}

// rollback applies the compensating writes newest first.
func (j *journal) rollback(ctx context.Context) error {
	var errs []error
	for i := len(j.undo) - 1; i >= 0; i-- {
		if err := j.undo[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// codeCannotExtractGeoKeys is returned when the 2dsphere index rejects a
// geometry, e.g. a ring whose edges cross.
const codeCannotExtractGeoKeys = 16755

func classify(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, model.ErrConflict)
	}
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) && serverErr.HasErrorCode(codeCannotExtractGeoKeys) {
		return fmt.Errorf("%w: %s: invalid geometry: %w", model.ErrValidation, op, err)
	}
	return fmt.Errorf("%w: failed to %s: %w", model.ErrPersistence, op, err)
}
