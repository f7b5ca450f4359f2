package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Nikolino98/RioSegundoPizzeria/internal/cart/domain"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/cart/storage"
)

// Store is the source of truth for one visitor's cart. It is constructed
// per session and handed its persistence explicitly; there is no shared
// package-level state. Every mutation writes the full item list back to
// the session KV, so the cart survives reloads within the same browser.
type Store struct {
	sessionID string
	kv        storage.KV
	log       *slog.Logger

	cart domain.Cart
}

func New(sessionID string, kv storage.KV, log *slog.Logger) *Store {
	return &Store{
		sessionID: sessionID,
		kv:        kv,
		log:       log,
	}
}

// Load rehydrates the cart from the session KV. A missing entry or an
// entry that fails to parse yields an empty cart; parse failures are
// logged and the stale entry is left for the next persist to overwrite.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.kv.Get(ctx, s.sessionID)
	if errors.Is(err, storage.ErrNotFound) {
		s.cart = domain.Cart{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	var items []domain.Item
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		s.log.Error("failed to parse stored cart, starting empty",
			"session_id", s.sessionID, "error", err)
		s.cart = domain.Cart{}
		return nil
	}

	s.cart = domain.Cart{Items: items}
	return nil
}

// Add merges an item into the cart. When an item with the same ID already
// exists its quantity is increased by the incoming quantity; otherwise the
// item is appended.
func (s *Store) Add(ctx context.Context, item domain.Item) error {
	for i := range s.cart.Items {
		if s.cart.Items[i].ID == item.ID {
			s.cart.Items[i].Quantity += item.Quantity
			return s.persist(ctx)
		}
	}
	s.cart.Items = append(s.cart.Items, item)
	return s.persist(ctx)
}

// Remove drops the item with the given ID. Removing an absent ID is a
// no-op, not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	for i, item := range s.cart.Items {
		if item.ID == id {
			s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// UpdateQuantity sets an item's quantity to the given absolute value.
// A quantity of zero or less removes the item. Absent IDs are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, id)
	}
	for i := range s.cart.Items {
		if s.cart.Items[i].ID == id {
			s.cart.Items[i].Quantity = quantity
			return s.persist(ctx)
		}
	}
	return nil
}

// Clear empties the cart and deletes the persisted entry.
func (s *Store) Clear(ctx context.Context) error {
	s.cart = domain.Cart{}
	if err := s.kv.Remove(ctx, s.sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the cart for use as a checkout basis.
func (s *Store) Snapshot() domain.Cart {
	items := make([]domain.Item, len(s.cart.Items))
	copy(items, s.cart.Items)
	return domain.Cart{Items: items}
}

func (s *Store) Items() []domain.Item { return s.cart.Items }

func (s *Store) TotalItems() int { return s.cart.TotalItems() }

func (s *Store) TotalPrice() float64 { return s.cart.TotalPrice() }

// persist writes the full item list for the session. An empty list
// removes the entry instead, so storage never holds a stale cart.
func (s *Store) persist(ctx context.Context) error {
	if len(s.cart.Items) == 0 {
		if err := s.kv.Remove(ctx, s.sessionID); err != nil {
			return fmt.Errorf("persist cart: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(s.cart.Items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.kv.Set(ctx, s.sessionID, string(data)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
