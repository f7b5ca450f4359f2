package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Nikolino98/RioSegundoPizzeria/internal/cart/domain"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/cart/storage"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/cart/store"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	kv  storage.KV
	log *slog.Logger
}

func NewCartHandler(kv storage.KV, log *slog.Logger) *CartHandler {
	return &CartHandler{kv: kv, log: log}
}

type AddItemRequestDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items      []domain.Item `json:"items"`
	TotalItems int           `json:"total_items"`
	TotalPrice float64       `json:"total_price"`
}

// loadStore builds the session's cart store for this request. Every
// request gets its own instance; the KV behind it is the shared state.
func (h *CartHandler) loadStore(w http.ResponseWriter, r *http.Request) *store.Store {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "no_session", "missing cart session")
		return nil
	}

	s := store.New(sessionID, h.kv, h.log)
	if err := s.Load(r.Context()); err != nil {
		h.log.Error("failed to load cart", "session_id", sessionID, "error", err)
		respondError(w, http.StatusBadGateway, "storage_error", "failed to load cart")
		return nil
	}
	return s
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := h.loadStore(w, r)
	if s == nil {
		return
	}
	respondCart(w, http.StatusOK, s)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s := h.loadStore(w, r)
	if s == nil {
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item", "item id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return
	}

	if err := s.Add(r.Context(), domain.Item{
		ID:       req.ID,
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
		Image:    req.Image,
	}); err != nil {
		h.log.Error("failed to add cart item", "error", err)
		respondError(w, http.StatusBadGateway, "storage_error", "failed to persist cart")
		return
	}

	respondCart(w, http.StatusCreated, s)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	s := h.loadStore(w, r)
	if s == nil {
		return
	}

	itemID := chi.URLParam(r, "id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := s.UpdateQuantity(r.Context(), itemID, req.Quantity); err != nil {
		h.log.Error("failed to update cart quantity", "error", err)
		respondError(w, http.StatusBadGateway, "storage_error", "failed to persist cart")
		return
	}

	respondCart(w, http.StatusOK, s)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s := h.loadStore(w, r)
	if s == nil {
		return
	}

	if err := s.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.log.Error("failed to remove cart item", "error", err)
		respondError(w, http.StatusBadGateway, "storage_error", "failed to persist cart")
		return
	}

	respondCart(w, http.StatusOK, s)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s := h.loadStore(w, r)
	if s == nil {
		return
	}

	if err := s.Clear(r.Context()); err != nil {
		h.log.Error("failed to clear cart", "error", err)
		respondError(w, http.StatusBadGateway, "storage_error", "failed to clear cart")
		return
	}

	respondCart(w, http.StatusOK, s)
}

func respondCart(w http.ResponseWriter, status int, s *store.Store) {
	items := s.Items()
	if items == nil {
		items = []domain.Item{}
	}
	respondJSON(w, status, CartResponseDTO{
		Items:      items,
		TotalItems: s.TotalItems(),
		TotalPrice: s.TotalPrice(),
	})
}
