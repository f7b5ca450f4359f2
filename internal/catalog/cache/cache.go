package cache

import (
	"context"
	"errors"

	"github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/domain"
)

// ProductCache fronts the product list. The cached copy is authoritative
// until invalidated; every catalog mutation must invalidate it.
type ProductCache interface {
	Get(ctx context.Context) ([]*domain.Product, error)
	Set(ctx context.Context, products []*domain.Product) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
