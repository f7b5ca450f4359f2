package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/cache"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/domain"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ImageRemover deletes a stored product image by its public URL. URLs not
// served from the blob store are ignored.
type ImageRemover interface {
	RemoveURL(ctx context.Context, url string) error
}

type CatalogService struct {
	repo   repository.ProductRepository
	cache  cache.ProductCache
	images ImageRemover
	log    *slog.Logger
	sfg    singleflight.Group // prevents cache stampede on the product list
}

func NewCatalogService(repo repository.ProductRepository, c cache.ProductCache, images ImageRemover, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		cache:  c,
		images: images,
		log:    log,
	}
}

// ListProducts serves the storefront menu. Concurrent cache misses for
// the list collapse into one repository query.
func (s *CatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("product cache get failed", "error", err)
		}

		products, err = s.repo.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(ctx, products); err != nil {
				s.log.Warn("product cache set failed", "error", err)
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Product), nil
}

func (s *CatalogService) ListProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.repo.ListProductsByCategory(ctx, category)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

// Search matches the query against product names and descriptions,
// case-insensitive, over the full list.
func (s *CatalogService) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	if query == "" {
		return []*domain.Product{}, nil
	}

	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matches := make([]*domain.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// DeleteProduct removes the product row and, best effort, its stored
// image.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return err
	}

	if product.Image != "" && s.images != nil {
		if err := s.images.RemoveURL(ctx, product.Image); err != nil {
			s.log.Warn("failed to remove product image", "product_id", id, "error", err)
		}
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx); err != nil {
		s.log.Warn("product cache invalidate failed", "error", err)
	}
}
