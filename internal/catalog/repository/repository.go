package repository

import (
	"context"
	"errors"

	"github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/domain"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

var ErrProductNotFound = errors.New("product not found")
