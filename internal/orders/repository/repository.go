package repository

import (
	"context"
	"errors"

	"github.com/Nikolino98/RioSegundoPizzeria/internal/orders/domain"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence.
// Consumers define this interface, not the postgres implementation.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)
