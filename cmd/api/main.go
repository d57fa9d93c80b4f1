package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderdesk-backend/config"
	"orderdesk-backend/internal/delivery/http/middleware"
	v1 "orderdesk-backend/internal/delivery/http/v1"
	"orderdesk-backend/internal/domain"
	"orderdesk-backend/internal/infrastructure/cache"
	"orderdesk-backend/internal/infrastructure/ekart"
	"orderdesk-backend/internal/infrastructure/events"
	"orderdesk-backend/internal/infrastructure/metrics"
	"orderdesk-backend/internal/infrastructure/shopify"
	sqlcrepo "orderdesk-backend/internal/repository/sqlc"
	"orderdesk-backend/internal/usecase"
	"orderdesk-backend/pkg/logger"
	"orderdesk-backend/pkg/storage"
	"orderdesk-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
)

var version = "dev"

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	jwtManager, err := utils.NewJWTManager(cfg.JWTSecret, cfg.TokenExpiry)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}

	pgxPool, err := sqlcrepo.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pgxPool.Close()
	log.Info().Msg("Successfully connected to PostgreSQL via pgx/sqlc")

	// Repositories
	userRepo := sqlcrepo.NewUserRepository(pgxPool)
	orderRepo := sqlcrepo.NewOrderRepository(pgxPool)
	txManager := sqlcrepo.NewTransactionManager(pgxPool)

	// In-memory cache: upstream snapshot, selections, return locks
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// Upstream storefront
	var upstream domain.UpstreamClient = shopify.Disabled{}
	if cfg.ShopifyStoreURL != "" {
		upstream = shopify.NewClient(cfg.ShopifyStoreURL, cfg.ShopifyAccessToken, cfg.ShopifyAPIVersion, cfg.ShopifyPageLimit, cfg.HTTPClientTimeout)
	} else {
		log.Warn().Msg("SHOPIFY_STORE_URL not set, upstream orders disabled")
	}

	carrier := ekart.NewClient(cfg.EkartBaseURL, cfg.EkartAPIKey, cfg.HTTPClientTimeout)

	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaReturnTopic)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close event publisher")
		}
	}()

	// Object storage (R2) is optional: without it image attachment is
	// unavailable and imports are not archived.
	var objectStorage domain.ObjectStorage
	if cfg.StorageEnabled() {
		r2Storage, err := storage.NewR2Storage(
			context.Background(),
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2PublicURL,
			cfg.R2UploadTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
		}
		objectStorage = r2Storage
	} else {
		log.Warn().Msg("R2 storage not configured, image uploads and import archives disabled")
	}

	// --- Modules ---
	store := usecase.NewOrderStore(orderRepo, upstream, memCache, cfg.CacheUpstreamTTL)
	selectionUC := usecase.NewSelectionUsecase(memCache, cfg.CacheSelectionTTL, cfg.ReturnLockTTL)
	orderUC := usecase.NewOrderUsecase(store, orderRepo, selectionUC)
	returnUC := usecase.NewReturnUsecase(store, selectionUC, carrier, publisher, objectStorage)
	actionUC := usecase.NewActionUsecase(orderUC, returnUC)
	importUC := usecase.NewImportUsecase(orderRepo, txManager, selectionUC, objectStorage)
	authUC := usecase.NewAuthUsecase(userRepo, jwtManager)

	authHandler := v1.NewAuthHandler(authUC, cfg.Env)
	orderHandler := v1.NewOrderHandler(orderUC, actionUC)
	selectionHandler := v1.NewSelectionHandler(selectionUC)
	returnHandler := v1.NewReturnHandler(returnUC, cfg.MaxUploadSizeMB)
	importHandler := v1.NewImportHandler(importUC, cfg.MaxUploadSizeMB)
	configHandler := v1.NewConfigHandler(memCache)

	mux := http.NewServeMux()

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	requireOperator := middleware.RequireRole(domain.RoleOperator)
	operator := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(requireOperator(h))
	}

	// Public
	mux.HandleFunc("GET /api/v1/config/enums", configHandler.GetEnums)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))

	// Orders
	mux.Handle("GET /api/v1/orders", operator(orderHandler.ListOrders))
	mux.Handle("POST /api/v1/orders", operator(orderHandler.CreateOrder))
	mux.Handle("POST /api/v1/orders/sync", operator(orderHandler.SyncUpstream))
	mux.Handle("POST /api/v1/orders/import", operator(importHandler.ImportCSV))
	mux.Handle("GET /api/v1/orders/{id}", operator(orderHandler.GetOrder))
	mux.Handle("GET /api/v1/orders/{id}/form", operator(orderHandler.GetForm))
	mux.Handle("PUT /api/v1/orders/{id}", operator(orderHandler.UpdateOrder))
	mux.Handle("DELETE /api/v1/orders/{id}", operator(orderHandler.DeleteOrder))
	mux.Handle("POST /api/v1/orders/{id}/actions", operator(orderHandler.Dispatch))

	// Returns
	mux.Handle("POST /api/v1/orders/{id}/return", operator(returnHandler.RequestReturn))
	mux.Handle("POST /api/v1/orders/{id}/tracking/refresh", operator(returnHandler.RefreshTracking))
	mux.Handle("POST /api/v1/orders/{id}/products/{index}/image", operator(returnHandler.UploadProductImage))
	mux.Handle("POST /api/v1/returns/bulk", operator(returnHandler.BulkReturn))

	// Selection
	mux.Handle("GET /api/v1/selection", operator(selectionHandler.Get))
	mux.Handle("DELETE /api/v1/selection", operator(selectionHandler.Clear))
	mux.Handle("PUT /api/v1/selection/orders/{id}", operator(selectionHandler.SetOrderChecked))
	mux.Handle("PUT /api/v1/selection/orders/{id}/products", operator(selectionHandler.SetProducts))
	mux.Handle("PUT /api/v1/selection/orders/{id}/products/{index}", operator(selectionHandler.ToggleProduct))

	mux.Handle("GET /metrics", metrics.Handler())

	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pgxPool.Ping(ctx); err != nil {
			utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "db": "unreachable"})
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "db": "connected"})
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler)

	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		cfg.RateLimitRPS,
		cfg.RateLimitBurst,
		time.Minute,
		3*time.Minute,
	)

	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.NewRequestLogger(jwtManager)(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()
	logger.ServiceStart("orderdesk-api", version, cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")
	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop("orderdesk-api")
}
