package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Nikolino98/RioSegundoPizzeria/internal/orders/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	creds := &Credentials{
		Host:              host,
		Port:              port.Int(),
		User:              "testuser",
		Password:          "testpass",
		DBName:            "testdb",
		MigrationsDirPath: "../../../migrations",
	}

	repo, err := NewRepository(creds)
	require.NoError(t, err)

	err = repo.RunMigrations(creds)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func newTestOrder() *domain.Order {
	return &domain.Order{
		ID:              uuid.New(),
		CustomerName:    "Juan Pérez",
		CustomerPhone:   "3511234567",
		CustomerAddress: "Calle X",
		DeliveryMethod:  "delivery",
		PaymentMethod:   "efectivo",
		Notes:           "sin sal",
		Total:           25.98,
		Status:          domain.OrderStatusPending,
		Items: []domain.OrderItem{
			{ProductName: "Margherita", Price: 12.99, Quantity: 2},
		},
	}
}

func TestCreateOrder_Success(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	order := newTestOrder()

	err := repo.CreateOrder(ctx, order)
	require.NoError(t, err)

	fetched, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, fetched.ID)
	assert.Equal(t, order.CustomerName, fetched.CustomerName)
	assert.Equal(t, order.CustomerAddress, fetched.CustomerAddress)
	assert.InDelta(t, order.Total, fetched.Total, 0.0001)
	assert.Equal(t, domain.OrderStatusPending, fetched.Status)
	require.Len(t, fetched.Items, 1)
	assert.Nil(t, fetched.Items[0].ProductID)
	assert.Equal(t, "Margherita", fetched.Items[0].ProductName)
	assert.InDelta(t, 12.99, fetched.Items[0].Price, 0.0001)
	assert.Equal(t, 2, fetched.Items[0].Quantity)
}

func TestCreateOrder_WithProductReference(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	productID := uuid.New()
	_, err := repo.DB().ExecContext(ctx,
		`INSERT INTO products (id, name, description, price, image, category) VALUES ($1, $2, '', $3, '', 'pizzas')`,
		productID, "Fugazzeta", 5.0)
	require.NoError(t, err)

	order := newTestOrder()
	order.Items = []domain.OrderItem{
		{ProductID: &productID, ProductName: "Fugazzeta", Price: 5, Quantity: 1},
	}

	require.NoError(t, repo.CreateOrder(ctx, order))

	fetched, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	require.NotNil(t, fetched.Items[0].ProductID)
	assert.Equal(t, productID, *fetched.Items[0].ProductID)
}

func TestCreateOrder_AtomicWithItems(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	order := newTestOrder()
	// Violates the quantity check, so the whole write must roll back.
	order.Items = append(order.Items, domain.OrderItem{ProductName: "bad", Price: 1, Quantity: 0})

	err := repo.CreateOrder(ctx, order)
	require.Error(t, err)

	_, err = repo.GetOrderByID(ctx, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListOrders_NewestFirst(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	first := newTestOrder()
	require.NoError(t, repo.CreateOrder(ctx, first))
	time.Sleep(10 * time.Millisecond)
	second := newTestOrder()
	second.ID = uuid.New()
	require.NoError(t, repo.CreateOrder(ctx, second))

	orders, err := repo.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	require.Len(t, orders[0].Items, 1)
}

func TestUpdateStatus(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	order := newTestOrder()
	require.NoError(t, repo.CreateOrder(ctx, order))

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, domain.OrderStatusProcessing))

	fetched, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, fetched.Status)
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.UpdateStatus(context.Background(), uuid.New(), domain.OrderStatusCompleted)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatus_InvalidStatusRejectedWithoutQuery(t *testing.T) {
	repo := NewRepositoryWithDB(nil)
	err := repo.UpdateStatus(context.Background(), uuid.New(), "shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetOrderByID_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetOrderByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
