package main

import (
	"context"

	catalogcache "github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/cache"
	catalogdomain "github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/domain"
)

// noopCache always misses, so dev setups without Redis read the catalog
// straight from postgres.
type noopCache struct{}

func (noopCache) Get(context.Context) ([]*catalogdomain.Product, error) {
	return nil, catalogcache.ErrCacheMiss
}

func (noopCache) Set(context.Context, []*catalogdomain.Product) error { return nil }

func (noopCache) Delete(context.Context) error { return nil }
