package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/domain"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/repository"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ProductHandler struct {
	catalog *service.CatalogService
	log     *slog.Logger
}

func NewProductHandler(catalog *service.CatalogService, log *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, log: log}
}

type ProductRequestDTO struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []*domain.Product
		err      error
	)

	if category := r.URL.Query().Get("category"); category != "" {
		products, err = h.catalog.ListProductsByCategory(r.Context(), category)
	} else {
		products, err = h.catalog.ListProducts(r.Context())
	}
	if err != nil {
		h.log.Error("failed to list products", "error", err)
		respondError(w, http.StatusBadGateway, "storage_error", "failed to list products")
		return
	}

	if products == nil {
		products = []*domain.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "product id must be a UUID")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		h.log.Error("failed to get product", "product_id", id, "error", err)
		respondError(w, http.StatusBadGateway, "storage_error", "failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.log.Error("product search failed", "error", err)
		respondError(w, http.StatusBadGateway, "storage_error", "failed to search products")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
	}
	if err := h.catalog.CreateProduct(r.Context(), product); err != nil {
		h.log.Error("failed to create product", "error", err)
		respondError(w, http.StatusBadGateway, "storage_error", "failed to create product")
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "product id must be a UUID")
		return
	}

	req, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	product := &domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
	}
	if err := h.catalog.UpdateProduct(r.Context(), product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		h.log.Error("failed to update product", "product_id", id, "error", err)
		respondError(w, http.StatusBadGateway, "storage_error", "failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "product id must be a UUID")
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		h.log.Error("failed to delete product", "product_id", id, "error", err)
		respondError(w, http.StatusBadGateway, "storage_error", "failed to delete product")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (*ProductRequestDTO, bool) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return nil, false
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_product", "product name is required")
		return nil, false
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return nil, false
	}
	return &req, true
}
