package storage

import (
	"context"
	"errors"
)

// KV is the durable per-session store behind the cart. Consumers define
// this interface, not the Redis implementation.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("key not found")
