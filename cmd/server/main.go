package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cartstorage "github.com/Nikolino98/RioSegundoPizzeria/internal/cart/storage"
	catalogcache "github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/cache"
	catalogrepo "github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/repository"
	catalogservice "github.com/Nikolino98/RioSegundoPizzeria/internal/catalog/service"
	checkoutservice "github.com/Nikolino98/RioSegundoPizzeria/internal/checkout/service"
	h "github.com/Nikolino98/RioSegundoPizzeria/internal/http"
	"github.com/Nikolino98/RioSegundoPizzeria/internal/media"
	ordersrepo "github.com/Nikolino98/RioSegundoPizzeria/internal/orders/repository"
	ordersservice "github.com/Nikolino98/RioSegundoPizzeria/internal/orders/service"
	"github.com/Nikolino98/RioSegundoPizzeria/pkg/logger"
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPPort string

	DBHost            string
	DBPort            int
	DBUser            string
	DBPassword        string
	DBName            string
	MigrationsDirPath string

	RedisAddr string

	AdminToken    string
	WhatsAppPhone string

	MediaRoot    string
	MediaBaseURL string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnvInt("DB_PORT", 5432),
		DBUser:            getEnv("DB_USER", "pizzeria"),
		DBPassword:        getEnv("DB_PASSWORD", "pizzeria"),
		DBName:            getEnv("DB_NAME", "pizzeria"),
		MigrationsDirPath: getEnv("MIGRATIONS_DIR", "./migrations"),

		RedisAddr: getEnv("REDIS_ADDR", ""),

		AdminToken:    getEnv("ADMIN_TOKEN", ""),
		WhatsAppPhone: getEnv("WHATSAPP_PHONE", "3517716373"),

		MediaRoot:    getEnv("MEDIA_ROOT", "./media"),
		MediaBaseURL: getEnv("MEDIA_BASE_URL", "http://localhost:8080/media"),

		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func main() {
	cfg := loadConfig()

	log := logger.New(logger.Options{
		Service: "pizzeria",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	creds := &ordersrepo.Credentials{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		DBName:            cfg.DBName,
		MigrationsDirPath: cfg.MigrationsDirPath,
	}

	ordersRepo, err := ordersrepo.NewRepository(creds)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer ordersRepo.Close()

	if err := ordersRepo.RunMigrations(creds); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	catalogRepo := catalogrepo.NewRepository(ordersRepo.DB())

	// Without Redis the cart and the product cache fall back to process
	// memory; carts then only live as long as the server does.
	var (
		cartKV       cartstorage.KV
		productCache catalogcache.ProductCache
	)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		cartKV = cartstorage.NewRedisKV(client)
		productCache = catalogcache.NewRedisCache(client)
		log.Info("using redis", "addr", cfg.RedisAddr)
	} else {
		cartKV = cartstorage.NewMemoryKV()
		productCache = noopCache{}
		log.Warn("REDIS_ADDR not set, carts are held in process memory")
	}

	blobStore, err := media.NewFSStore(cfg.MediaRoot, cfg.MediaBaseURL)
	if err != nil {
		log.Error("failed to set up media storage", "error", err)
		os.Exit(1)
	}
	mediaService := media.NewService(blobStore)

	catalogService := catalogservice.NewCatalogService(catalogRepo, productCache, mediaService, log)
	ordersService := ordersservice.NewOrdersService(ordersRepo, log)
	checkoutService := checkoutservice.NewService(ordersRepo, checkoutservice.Config{
		WhatsAppPhone: cfg.WhatsAppPhone,
	}, log)

	cartHandler := h.NewCartHandler(cartKV, log)
	checkoutHandler := h.NewCheckoutHandler(checkoutService, cartKV, log)
	productHandler := h.NewProductHandler(catalogService, log)
	ordersHandler := h.NewOrdersHandler(ordersService, log)
	uploadHandler := h.NewUploadHandler(mediaService, log)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(blobStore.Root()))))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.Checkout)

		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{id}", productHandler.GetProduct)
		r.Get("/search", productHandler.Search)

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.AdminAuthMiddleware(cfg.AdminToken))

			r.Post("/products", productHandler.CreateProduct)
			r.Put("/products/{id}", productHandler.UpdateProduct)
			r.Delete("/products/{id}", productHandler.DeleteProduct)

			r.Get("/orders", ordersHandler.ListOrders)
			r.Get("/orders/{id}", ordersHandler.GetOrder)
			r.Put("/orders/{id}/status", ordersHandler.UpdateStatus)

			r.Post("/upload", uploadHandler.Upload)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "pizzeria-http"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server exited")
}
