package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/georegions-server/internal/model"
)

var (
	_ model.Transactor = (*Store)(nil)
	_ model.Pinger     = (*Store)(nil)
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store groups the PostgreSQL repositories and runs transactions over them.
type Store struct {
	conn      *Connection
	txTimeout time.Duration

	users   *UserRepository
	regions *RegionRepository
}

// NewStore creates a Store. txTimeout bounds transactions whose context has
// no deadline; zero disables the bound.
func NewStore(conn *Connection, txTimeout time.Duration) *Store {
	return &Store{
		conn:      conn,
		txTimeout: txTimeout,
		users:     NewUserRepository(conn.DB),
		regions:   NewRegionRepository(conn.DB),
	}
}

func (s *Store) Stores() model.Stores {
	return model.Stores{Users: s.users, Regions: s.regions}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// RunInTx runs fn inside a database transaction. User rows read through the
// transactional stores are locked until commit.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) error {
	if _, ok := ctx.Deadline(); !ok && s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", model.ErrPersistence, err)
	}

	stores := model.Stores{
		Users:   &UserRepository{db: tx, forUpdate: true},
		Regions: &RegionRepository{db: tx},
	}

	if err := fn(ctx, stores); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("%w: failed to rollback transaction: %w", model.ErrPersistence, rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", model.ErrPersistence, err)
	}

	return nil
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// classify maps driver errors onto the model sentinels.
func classify(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w", op, model.ErrConflict)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: referenced user: %w", op, model.ErrNotFound)
		}
	}

	return fmt.Errorf("%w: failed to %s: %w", model.ErrPersistence, op, err)
}
