package service

import (
	"context"
	"fmt"
	"log/slog"

	cartdomain "github.com/Nikolino98/RioSegundoPizzeria/internal/cart/domain"
	d "github.com/Nikolino98/RioSegundoPizzeria/internal/checkout/domain"
	ordersdomain "github.com/Nikolino98/RioSegundoPizzeria/internal/orders/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// OrderCreator persists a checkout's order. Consumers define this
// interface, not the postgres implementation.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order *ordersdomain.Order) error
}

// CartStore is the slice of the cart store the workflow needs: a snapshot
// to build the order from, and Clear on success.
type CartStore interface {
	Snapshot() cartdomain.Cart
	Clear(ctx context.Context) error
}

type Config struct {
	// WhatsAppPhone is the fixed destination number for order messages.
	WhatsAppPhone string
}

type Service struct {
	repo OrderCreator
	cfg  Config
	log  *slog.Logger
	sfg  singleflight.Group // coalesces duplicate submissions per session
}

func NewService(repo OrderCreator, cfg Config, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		cfg:  cfg,
		log:  log,
	}
}

// Checkout runs the linear workflow for one session: validate, persist
// order + items, build the WhatsApp deep link, clear the cart. Concurrent
// submissions for the same session share a single execution, so a double
// click never runs two workflows against one snapshot.
func (s *Service) Checkout(ctx context.Context, sessionID string, cart CartStore, req *d.Request) (*d.Result, error) {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		return s.checkout(ctx, sessionID, cart, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*d.Result), nil
}

func (s *Service) checkout(ctx context.Context, sessionID string, cart CartStore, req *d.Request) (*d.Result, error) {
	snapshot := cart.Snapshot()

	if err := validate(snapshot, req); err != nil {
		return nil, err
	}

	order := buildOrder(snapshot, req)
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		s.log.Error("checkout failed to persist order",
			"session_id", sessionID, "error", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	url := whatsAppURL(s.cfg.WhatsAppPhone, buildMessage(snapshot, req))

	// The order is durable at this point. A failure to clear the session
	// cart is a persistence inconvenience, not a checkout failure.
	if err := cart.Clear(ctx); err != nil {
		s.log.Error("failed to clear cart after checkout",
			"session_id", sessionID, "order_id", order.ID, "error", err)
	}

	s.log.Info("checkout completed",
		"session_id", sessionID,
		"order_id", order.ID,
		"total", order.Total,
		"items", len(order.Items))

	return &d.Result{
		OrderID:     order.ID.String(),
		Status:      d.StatusSuccess,
		WhatsAppURL: url,
	}, nil
}

func validate(snapshot cartdomain.Cart, req *d.Request) error {
	if len(snapshot.Items) == 0 {
		return ErrEmptyCart
	}
	if req.Name == "" {
		return ErrMissingName
	}
	if req.Phone == "" {
		return ErrMissingPhone
	}
	if req.DeliveryMethod == d.DeliveryMethodDelivery && req.Address == "" {
		return ErrMissingAddress
	}
	return nil
}

// buildOrder maps the cart snapshot onto a pending order. The total comes
// from the snapshot, not a recompute at write time, so the stored total
// always matches the cart the visitor confirmed.
func buildOrder(snapshot cartdomain.Cart, req *d.Request) *ordersdomain.Order {
	address := req.Address
	if req.DeliveryMethod == d.DeliveryMethodPickup {
		address = d.PickupAddress
	}

	order := &ordersdomain.Order{
		ID:              uuid.New(),
		CustomerName:    req.Name,
		CustomerPhone:   req.Phone,
		CustomerAddress: address,
		DeliveryMethod:  req.DeliveryMethod,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		Total:           snapshot.TotalPrice(),
		Status:          ordersdomain.OrderStatusPending,
	}

	for _, item := range snapshot.Items {
		orderItem := ordersdomain.OrderItem{
			ProductName: item.Name,
			Price:       item.Price,
			Quantity:    item.Quantity,
		}
		// Cart items seeded from demo data carry non-UUID IDs; attaching
		// those as product references would break the foreign key.
		if id, ok := catalogUUID(item.ID); ok {
			orderItem.ProductID = &id
		}
		order.Items = append(order.Items, orderItem)
	}

	return order
}

// catalogUUID reports whether a cart item ID is a canonical RFC 4122
// UUID (version 1-5) and so can be stored as a product reference.
func catalogUUID(id string) (uuid.UUID, bool) {
	if len(id) != 36 {
		return uuid.Nil, false
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	if v := u.Version(); v < 1 || v > 5 {
		return uuid.Nil, false
	}
	if u.Variant() != uuid.RFC4122 {
		return uuid.Nil, false
	}
	return u, true
}
