package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Nikolino98/RioSegundoPizzeria/internal/cart/storage"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/cart/store"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/checkout/domain"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/checkout/service"
)

type CheckoutHandler struct {
	checkout *service.Service
	kv       storage.KV
	log      *slog.Logger
}

func NewCheckoutHandler(checkout *service.Service, kv storage.KV, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		kv:       kv,
		log:      log,
	}
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "no_session", "missing cart session")
		return
	}

	var req domain.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	s := store.New(sessionID, h.kv, h.log)
	if err := s.Load(r.Context()); err != nil {
		h.log.Error("failed to load cart for checkout", "session_id", sessionID, "error", err)
		respondError(w, http.StatusBadGateway, "storage_error", "failed to load cart")
		return
	}

	result, err := h.checkout.Checkout(r.Context(), sessionID, s, &req)
	if err != nil {
		if service.IsValidation(err) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		// The form stays populated client-side; the caller may retry.
		respondError(w, http.StatusBadGateway, "checkout_failed", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, result)
}
