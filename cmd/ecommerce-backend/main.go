package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopsphere/ecommerce-backend/internal/api/handlers"
	"github.com/shopsphere/ecommerce-backend/internal/api/middleware"
	"github.com/shopsphere/ecommerce-backend/internal/cache"
	"github.com/shopsphere/ecommerce-backend/internal/config"
	"github.com/shopsphere/ecommerce-backend/internal/health"
	"github.com/shopsphere/ecommerce-backend/internal/metrics"
	"github.com/shopsphere/ecommerce-backend/internal/observability"
	repository "github.com/shopsphere/ecommerce-backend/internal/repositories"
	service "github.com/shopsphere/ecommerce-backend/internal/services"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracer, err := observability.InitTracer(context.Background(), cfg)
	if err != nil {
		slog.Error("❌ Error initializing tracing", "error", err.Error())
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.GetAddr(),
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	cacheStore := cache.NewRedisCache(redisClient, &cfg.Cache)

	defer func() {
		if err := cacheStore.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	catalogService := service.NewCatalogService(repos.Product, repos.Category, cacheStore)
	productHandler := handlers.NewProductHandler(catalogService)
	categoryHandler := handlers.NewCategoryHandler(catalogService)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(repos.Order, repos.Cart, cacheStore)
	orderHandler := handlers.NewOrderHandler(orderService)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/products", productHandler.CreateProduct())
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/search", productHandler.SearchProducts())
	routerMux.HandleFunc("GET /api/v1/products/available", productHandler.ListAvailable())
	routerMux.HandleFunc("GET /api/v1/products/latest", productHandler.ListLatest())
	routerMux.HandleFunc("GET /api/v1/products/price-range", productHandler.ListByPriceRange())
	routerMux.HandleFunc("GET /api/v1/products/low-stock", productHandler.ListLowStock())
	routerMux.HandleFunc("GET /api/v1/products/category/{id}", productHandler.ListByCategory())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("PUT /api/v1/products/{id}", productHandler.UpdateProduct())
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", productHandler.DeleteProduct())
	routerMux.HandleFunc("POST /api/v1/categories", categoryHandler.CreateCategory())
	routerMux.HandleFunc("GET /api/v1/categories", categoryHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/categories/search", categoryHandler.SearchCategories())
	routerMux.HandleFunc("GET /api/v1/categories/{id}", categoryHandler.GetCategory())
	routerMux.HandleFunc("PUT /api/v1/categories/{id}", categoryHandler.UpdateCategory())
	routerMux.HandleFunc("DELETE /api/v1/categories/{id}", categoryHandler.DeleteCategory())
	routerMux.HandleFunc("GET /api/v1/cart/{userId}", cartHandler.GetCart())
	routerMux.HandleFunc("DELETE /api/v1/cart/{userId}", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/cart/{userId}/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/{userId}/items", cartHandler.UpdateItem())
	routerMux.HandleFunc("DELETE /api/v1/cart/{userId}/items/{productId}", cartHandler.RemoveItem())
	routerMux.HandleFunc("GET /api/v1/cart/{userId}/total", cartHandler.CartTotal())
	routerMux.HandleFunc("GET /api/v1/cart/{userId}/count", cartHandler.CartCount())
	routerMux.HandleFunc("GET /api/v1/cart/{userId}/quantity", cartHandler.CartQuantityTotal())
	routerMux.HandleFunc("POST /api/v1/orders/user/{userId}", orderHandler.CreateOrder())
	routerMux.HandleFunc("GET /api/v1/orders/user/{userId}", orderHandler.ListUserOrders())
	routerMux.HandleFunc("GET /api/v1/orders/user/{userId}/count", orderHandler.UserOrderCount())
	routerMux.HandleFunc("GET /api/v1/orders/user/{userId}/total-spent", orderHandler.UserTotalSpent())
	routerMux.HandleFunc("GET /api/v1/orders/user/{userId}/status/{status}", orderHandler.ListUserOrdersByStatus())
	routerMux.HandleFunc("GET /api/v1/orders/status/{status}", orderHandler.ListByStatus())
	routerMux.HandleFunc("GET /api/v1/orders/high-value", orderHandler.ListHighValue())
	routerMux.HandleFunc("GET /api/v1/orders/{id}", orderHandler.GetOrder())
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", orderHandler.UpdateStatus())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "ecommerce-backend")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
