package geocoding

import (
	"context"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dtroode/georegions-server/internal/logger"
	"github.com/dtroode/georegions-server/internal/metrics"
	"github.com/dtroode/georegions-server/internal/model"
)

const (
	forwardKeyPrefix = "geo:fwd:"
	reverseKeyPrefix = "geo:rev:"

	defaultLookupTimeout = 30 * time.Second
)

var _ model.Geocoder = (*Cached)(nil)

// Cached wraps a Geocoder with an optional cache and collapses concurrent
// identical lookups into one provider call.
type Cached struct {
	next    model.Geocoder
	cache   model.GeocodeCache
	group   singleflight.Group
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewCached creates a Cached geocoder. cache may be nil.
func NewCached(next model.Geocoder, cache model.GeocodeCache, m *metrics.Metrics, log *logger.Logger) *Cached {
	return &Cached{
		next:    next,
		cache:   cache,
		metrics: m,
		log:     log,
	}
}

// Forward resolves address through the cache.
func (c *Cached) Forward(ctx context.Context, address string) (model.Point, error) {
	key := forwardKeyPrefix + strings.ToLower(strings.TrimSpace(address))

	if value, ok := c.lookup(ctx, key); ok {
		if p, err := parsePoint(value); err == nil {
			return p, nil
		}
		c.log.Warn("GeocodeCache: dropping malformed entry", "key", key)
	}

	v, err := c.shared(ctx, key, func(ctx context.Context) (any, error) {
		p, err := c.next.Forward(ctx, address)
		if err != nil {
			return model.Point{}, err
		}
		c.store(ctx, key, p.String())
		return p, nil
	})
	if err != nil {
		return model.Point{}, err
	}
	return v.(model.Point), nil
}

// Reverse resolves p through the cache.
func (c *Cached) Reverse(ctx context.Context, p model.Point) (string, error) {
	key := reverseKeyPrefix + p.String()

	if value, ok := c.lookup(ctx, key); ok {
		return value, nil
	}

	v, err := c.shared(ctx, key, func(ctx context.Context) (any, error) {
		address, err := c.next.Reverse(ctx, p)
		if err != nil {
			return "", err
		}
		c.store(ctx, key, address)
		return address, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// shared runs fn once per key among concurrent callers. fn gets a context
// carrying the first caller's values but not its cancellation; each caller
// still stops waiting when its own ctx is done.
func (c *Cached) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := c.group.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.lookupTimeout)
		defer cancel()
		return fn(callCtx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cached) lookup(ctx context.Context, key string) (string, bool) {
	if c.cache == nil {
		return "", false
	}
	value, ok := c.cache.Get(ctx, key)
	if ok {
		c.metrics.IncrementCacheHit()
	} else {
		c.metrics.IncrementCacheMiss()
	}
	return value, ok
}

func (c *Cached) store(ctx context.Context, key, value string) {
	if c.cache == nil {
		return
	}
	c.cache.Set(ctx, key, value)
}

func parsePoint(s string) (model.Point, error) {
	latRaw, lngRaw, found := strings.Cut(s, ",")
	if !found {
		return model.Point{}, model.ErrValidation
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return model.Point{}, err
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return model.Point{}, err
	}
	p := model.Point{Lat: lat, Lng: lng}
	return p, p.Validate()
}
