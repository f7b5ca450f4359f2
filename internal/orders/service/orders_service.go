package service

import (
	"context"
	"log/slog"

	"github.com/Nikolino98/RioSegundoPizzeria/internal/orders/domain"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/orders/repository"
	"github.com/google/uuid"
)

// OrdersService backs the admin panel: list orders with their items and
// move them through the status lifecycle. Status is the only field that
// changes after an order is created.
type OrdersService struct {
	repo repository.OrderRepository
	log  *slog.Logger
}

func NewOrdersService(repo repository.OrderRepository, log *slog.Logger) *OrdersService {
	return &OrdersService{repo: repo, log: log}
}

func (s *OrdersService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *OrdersService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

// UpdateStatus mutates the order's status and returns the stored row, so
// callers render what the database holds instead of an optimistic copy.
func (s *OrdersService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, repository.ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.log.Info("order status updated", "order_id", id, "status", status)
	return s.repo.GetOrderByID(ctx, id)
}
