package service

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/cache"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/domain"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	m        sync.RWMutex
	products map[uuid.UUID]*domain.Product
	listed   int
	err      error
}

func newMockRepository(products ...*domain.Product) *mockRepository {
	m := &mockRepository{products: make(map[uuid.UUID]*domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockRepository) ListProducts(context.Context) ([]*domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.listed++
	out := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockRepository) ListProductsByCategory(_ context.Context, category string) ([]*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	var out []*domain.Product
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) GetProductByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *mockRepository) CreateProduct(_ context.Context, product *domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockRepository) UpdateProduct(_ context.Context, product *domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockRepository) DeleteProduct(_ context.Context, id uuid.UUID) error {
	m.m.Lock()
	defer m.m.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

type mockCache struct {
	m        sync.RWMutex
	products []*domain.Product
}

func (m *mockCache) Get(context.Context) ([]*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.products == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.products, nil
}

func (m *mockCache) Set(_ context.Context, products []*domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.products = products
	return nil
}

func (m *mockCache) Delete(context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.products = nil
	return nil
}

type mockImageRemover struct {
	m       sync.Mutex
	removed []string
}

func (m *mockImageRemover) RemoveURL(_ context.Context, url string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.removed = append(m.removed, url)
	return nil
}

func waitForCache(t *testing.T, c *mockCache) {
	t.Helper()
	require.Eventually(t, func() bool {
		_, err := c.Get(context.Background())
		return err == nil
	}, time.Second, 5*time.Millisecond)
}

func TestListProducts_PopulatesCacheOnMiss(t *testing.T) {
	repo := newMockRepository(
		&domain.Product{ID: uuid.New(), Name: "Muzzarella", Price: 10, Category: "pizzas"},
	)
	c := &mockCache{}
	svc := NewCatalogService(repo, c, nil, slog.Default())

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	waitForCache(t, c)
}

func TestListProducts_ServedFromCache(t *testing.T) {
	repo := newMockRepository()
	c := &mockCache{products: []*domain.Product{
		{ID: uuid.New(), Name: "Napolitana", Price: 12.5},
	}}
	svc := NewCatalogService(repo, c, nil, slog.Default())

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 0, repo.listed)
}

func TestMutations_InvalidateCache(t *testing.T) {
	p := &domain.Product{ID: uuid.New(), Name: "Muzzarella", Price: 10}
	repo := newMockRepository(p)
	c := &mockCache{products: []*domain.Product{p}}
	svc := NewCatalogService(repo, c, nil, slog.Default())

	updated := *p
	updated.Price = 11
	require.NoError(t, svc.UpdateProduct(context.Background(), &updated))

	_, err := c.Get(context.Background())
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestSearch_MatchesNameAndDescriptionCaseInsensitive(t *testing.T) {
	repo := newMockRepository(
		&domain.Product{ID: uuid.New(), Name: "Pizza Margherita", Description: "con albahaca"},
		&domain.Product{ID: uuid.New(), Name: "Empanada", Description: "carne picante"},
		&domain.Product{ID: uuid.New(), Name: "Faina", Description: "clasica"},
	)
	svc := NewCatalogService(repo, &mockCache{}, nil, slog.Default())

	byName, err := svc.Search(context.Background(), "MARGHERITA")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Pizza Margherita", byName[0].Name)

	byDescription, err := svc.Search(context.Background(), "picante")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Empanada", byDescription[0].Name)

	empty, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteProduct_RemovesStoredImage(t *testing.T) {
	p := &domain.Product{ID: uuid.New(), Name: "Muzzarella", Image: "http://localhost:8080/media/products/abc.jpg"}
	repo := newMockRepository(p)
	images := &mockImageRemover{}
	svc := NewCatalogService(repo, &mockCache{}, images, slog.Default())

	require.NoError(t, svc.DeleteProduct(context.Background(), p.ID))

	_, err := repo.GetProductByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	assert.Equal(t, []string{p.Image}, images.removed)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc := NewCatalogService(newMockRepository(), &mockCache{}, nil, slog.Default())
	err := svc.DeleteProduct(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}
