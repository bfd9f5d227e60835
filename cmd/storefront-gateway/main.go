package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmoralesdev/storefront-gateway/internal/api/handlers"
	"github.com/lmoralesdev/storefront-gateway/internal/api/middleware"
	"github.com/lmoralesdev/storefront-gateway/internal/config"
	"github.com/lmoralesdev/storefront-gateway/internal/health"
	"github.com/lmoralesdev/storefront-gateway/internal/metrics"
	repository "github.com/lmoralesdev/storefront-gateway/internal/repositories"
	service "github.com/lmoralesdev/storefront-gateway/internal/services"
	"github.com/lmoralesdev/storefront-gateway/internal/telemetry"
	"github.com/lmoralesdev/storefront-gateway/pkg/sendGrid"
	"github.com/lmoralesdev/storefront-gateway/pkg/storeapi"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Redis connection closed")
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)
	storeClient := storeapi.NewClient(cfg.Store.BaseURL, cfg.Store.Timeout)

	var emailService sendGrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendGrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	cartRepo := repository.NewCartRepo(redisClient)
	cartService := service.NewCartService(cartRepo)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutService := service.NewCheckoutService(cartRepo, storeClient, emailService, &cfg.Checkout)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	catalogService := service.NewCatalogService(storeClient)
	productHandler := handlers.NewProductHandler(catalogService)
	categoryHandler := handlers.NewCategoryHandler(catalogService)
	clientHandler := handlers.NewClientHandler(catalogService)
	reviewHandler := handlers.NewReviewHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(catalogService)
	billHandler := handlers.NewBillHandler(catalogService)
	adminHandler := handlers.NewAdminHandler(catalogService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{StoreClient: storeClient})
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("gateway initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	// Cart (session-scoped, no auth)
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productID}", cartHandler.RemoveItem())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.ClearCart())

	// Checkout
	routerMux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Checkout())

	// Storefront reads
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/categories", categoryHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/categories/{id}", categoryHandler.GetCategory())
	routerMux.HandleFunc("GET /api/v1/reviews", reviewHandler.ListReviews())
	routerMux.HandleFunc("GET /api/v1/reviews/{id}", reviewHandler.GetReview())
	routerMux.HandleFunc("POST /api/v1/reviews", reviewHandler.CreateReview())
	routerMux.HandleFunc("GET /api/v1/clients", clientHandler.ListClients())
	routerMux.HandleFunc("GET /api/v1/clients/{id}", clientHandler.GetClient())
	routerMux.HandleFunc("GET /api/v1/clients/{id}/addresses", clientHandler.ListClientAddresses())

	// Admin console
	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.Authenticate(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.DeleteProduct()))
	routerMux.HandleFunc("POST /api/v1/categories", authMiddleware.Authenticate(categoryHandler.CreateCategory()))
	routerMux.HandleFunc("PUT /api/v1/categories/{id}", authMiddleware.Authenticate(categoryHandler.UpdateCategory()))
	routerMux.HandleFunc("DELETE /api/v1/categories/{id}", authMiddleware.Authenticate(categoryHandler.DeleteCategory()))
	routerMux.HandleFunc("POST /api/v1/clients", authMiddleware.Authenticate(clientHandler.CreateClient()))
	routerMux.HandleFunc("PUT /api/v1/clients/{id}", authMiddleware.Authenticate(clientHandler.UpdateClient()))
	routerMux.HandleFunc("DELETE /api/v1/clients/{id}", authMiddleware.Authenticate(clientHandler.DeleteClient()))
	routerMux.HandleFunc("POST /api/v1/addresses", authMiddleware.Authenticate(clientHandler.CreateAddress()))
	routerMux.HandleFunc("PUT /api/v1/addresses/{id}", authMiddleware.Authenticate(clientHandler.UpdateAddress()))
	routerMux.HandleFunc("DELETE /api/v1/addresses/{id}", authMiddleware.Authenticate(clientHandler.DeleteAddress()))
	routerMux.HandleFunc("PUT /api/v1/reviews/{id}", authMiddleware.Authenticate(reviewHandler.UpdateReview()))
	routerMux.HandleFunc("DELETE /api/v1/reviews/{id}", authMiddleware.Authenticate(reviewHandler.DeleteReview()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}/lines", authMiddleware.Authenticate(orderHandler.GetOrderLines()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", authMiddleware.Authenticate(orderHandler.UpdateOrderStatus()))
	routerMux.HandleFunc("DELETE /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.DeleteOrder()))
	routerMux.HandleFunc("GET /api/v1/bills", authMiddleware.Authenticate(billHandler.ListBills()))
	routerMux.HandleFunc("GET /api/v1/bills/{id}", authMiddleware.Authenticate(billHandler.GetBill()))
	routerMux.HandleFunc("DELETE /api/v1/bills/{id}", authMiddleware.Authenticate(billHandler.DeleteBill()))
	routerMux.HandleFunc("GET /api/v1/admin/store-health", authMiddleware.Authenticate(adminHandler.StoreHealth()))

	// Operational endpoints
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = otelhttp.NewHandler(handler, "storefront-gateway")
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

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

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracing shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
