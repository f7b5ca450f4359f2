package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Nikolino98/RioSegundoPizzeria/internal/orders/domain"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/orders/repository"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/orders/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type OrdersHandler struct {
	orders *service.OrdersService
	log    *slog.Logger
}

func NewOrdersHandler(orders *service.OrdersService, log *slog.Logger) *OrdersHandler {
	return &OrdersHandler{orders: orders, log: log}
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		h.log.Error("failed to list orders", "error", err)
		respondError(w, http.StatusBadGateway, "storage_error", "failed to list orders")
		return
	}

	if orders == nil {
		orders = []*domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "order id must be a UUID")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		h.log.Error("failed to get order", "order_id", id, "error", err)
		respondError(w, http.StatusBadGateway, "storage_error", "failed to get order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "order id must be a UUID")
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidStatus):
			respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
		case errors.Is(err, repository.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, "not_found", "order not found")
		default:
			h.log.Error("failed to update order status", "order_id", id, "error", err)
			respondError(w, http.StatusBadGateway, "storage_error", "failed to update order status")
		}
		return
	}

	respondJSON(w, http.StatusOK, order)
}
