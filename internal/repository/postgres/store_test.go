package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/georegions-server/internal/model"
)

func TestStore_RunInTx_Commit(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(&Connection{DB: db}, time.Second)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM regions`).WithArgs("r1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.RunInTx(context.Background(), func(ctx context.Context, stores model.Stores) error {
		return stores.Regions.Delete(ctx, "r1")
	})
	assert.NoError(t, err)
}

func TestStore_RunInTx_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(&Connection{DB: db}, time.Second)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := store.RunInTx(context.Background(), func(context.Context, model.Stores) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestStore_RunInTx_LocksUsers(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(&Connection{DB: db}, 0)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM users WHERE id = \$1 FOR UPDATE`).WithArgs("u1").WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	err := store.RunInTx(context.Background(), func(ctx context.Context, stores model.Stores) error {
		_, err := stores.Users.GetByID(ctx, "u1")
		return err
	})
	assert.ErrorIs(t, err, model.ErrPersistence)
}

func TestStore_RunInTx_BeginFailure(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(&Connection{DB: db}, time.Second)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := store.RunInTx(context.Background(), func(context.Context, model.Stores) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, model.ErrPersistence)
	assert.False(t, called)
}

func TestStore_RunInTx_CommitFailure(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(&Connection{DB: db}, time.Second)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := store.RunInTx(context.Background(), func(context.Context, model.Stores) error { return nil })
	assert.ErrorIs(t, err, model.ErrPersistence)
}

func TestStore_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	store := NewStore(&Connection{DB: db}, time.Second)
	assert.NoError(t, store.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnection_PingNil(t *testing.T) {
	conn := &Connection{}
	assert.Error(t, conn.Ping(context.Background()))
	assert.NoError(t, conn.Close())
}

func TestNewConnection_InvalidDSN(t *testing.T) {
	conn, err := NewConnection(context.Background(), "host=localhost port=notaport")
	assert.Error(t, err)
	assert.Nil(t, conn)
}
