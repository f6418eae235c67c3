package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/georegions-server/internal/testutil"
)

// fakeRedis implements redisAPI for testing without network.
type fakeRedis struct {
	values map[string]string
	ttls   map[string]time.Duration

	getErr  error
	setErr  error
	pingErr error
	closed  bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}
func (f *fakeRedis) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	f.ttls[key] = ttl
	return nil
}
func (f *fakeRedis) Ping(_ context.Context) error {
	return f.pingErr
}
func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestNewClientWithAPI_PingError(t *testing.T) {
	api := newFakeRedis()
	api.pingErr = errors.New("connection refused")

	c, err := NewClientWithAPI(context.Background(), api, time.Hour, testutil.MakeNoopLogger())
	assert.Nil(t, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach redis")
	assert.True(t, api.closed)
}

func TestClient_SetGet(t *testing.T) {
	ctx := context.Background()
	api := newFakeRedis()
	c, err := NewClientWithAPI(ctx, api, time.Hour, testutil.MakeNoopLogger())
	require.NoError(t, err)

	_, ok := c.Get(ctx, "geo:fwd:1 main st")
	assert.False(t, ok)

	c.Set(ctx, "geo:fwd:1 main st", "40.7,-74.0")
	v, ok := c.Get(ctx, "geo:fwd:1 main st")
	assert.True(t, ok)
	assert.Equal(t, "40.7,-74.0", v)

	assert.Equal(t, time.Hour, api.ttls["georegions:geo:fwd:1 main st"])
}

func TestClient_ErrorsAreMisses(t *testing.T) {
	ctx := context.Background()
	api := newFakeRedis()
	c, err := NewClientWithAPI(ctx, api, time.Minute, testutil.MakeNoopLogger())
	require.NoError(t, err)

	api.getErr = errors.New("timeout")
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	api.setErr = errors.New("readonly")
	assert.NotPanics(t, func() { c.Set(ctx, "k", "v") })
	assert.Empty(t, api.values)
}

func TestClient_Close(t *testing.T) {
	api := newFakeRedis()
	c, err := NewClientWithAPI(context.Background(), api, time.Minute, testutil.MakeNoopLogger())
	require.NoError(t, err)

	require.NoError(t, c.Close())
	assert.True(t, api.closed)
}

func TestConnect_InvalidURL(t *testing.T) {
	c, err := Connect(context.Background(), "://bad", time.Minute, testutil.MakeNoopLogger())
	assert.Nil(t, c)
	assert.Error(t, err)
}
