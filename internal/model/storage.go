package model

import "context"

// Stores groups the stores a unit of work operates on.
type Stores struct {
	Users   UserStore
	Regions RegionStore
}

// Transactor runs fn atomically: either every write fn performs through the
// given stores is applied, or none is. fn must not perform network calls
// outside the data store.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// GeocodeCache keeps resolved geocoding answers. A cache miss or a cache
// failure both report ok == false; writes are best effort.
type GeocodeCache interface {
	Get(ctx context.Context, key string) (value string, ok bool)
	Set(ctx context.Context, key string, value string)
}
