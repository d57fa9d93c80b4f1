package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"orderdesk-backend/config"
	"orderdesk-backend/internal/domain"
	"orderdesk-backend/internal/infrastructure/cache"
	"orderdesk-backend/internal/infrastructure/ekart"
	"orderdesk-backend/internal/infrastructure/events"
	"orderdesk-backend/internal/infrastructure/shopify"
	sqlcrepo "orderdesk-backend/internal/repository/sqlc"
	"orderdesk-backend/internal/usecase"
	"orderdesk-backend/pkg/logger"
	"orderdesk-backend/pkg/storage"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var (
	timeout  time.Duration
	logLevel string
)

// rootCmd is the operator CLI for maintenance tasks that do not need the
// dashboard.
var rootCmd = &cobra.Command{
	Use:   "orderctl",
	Short: "Order desk maintenance commands",
	Long: `orderctl runs order desk tasks against the same database, storefront
and carrier the API server uses.

Available commands:
  import - Import orders from a CSV file
  sync   - Refresh the storefront snapshot and report unseen orders
  track  - Refresh the carrier tracking record of an order`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(trackCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the wired usecases for one command run.
type app struct {
	orders    *usecase.OrderUsecase
	returns   *usecase.ReturnUsecase
	imports   *usecase.ImportUsecase
	pool      *pgxpool.Pool
	publisher domain.EventPublisher
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.LoadConfig()
	logger.Init("development", logLevel)

	pool, err := sqlcrepo.NewPgxPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	orderRepo := sqlcrepo.NewOrderRepository(pool)
	memCache := cache.NewMemoryCache(cfg.CacheUpstreamTTL, time.Hour)

	var upstream domain.UpstreamClient = shopify.Disabled{}
	if cfg.ShopifyStoreURL != "" {
		upstream = shopify.NewClient(cfg.ShopifyStoreURL, cfg.ShopifyAccessToken, cfg.ShopifyAPIVersion, cfg.ShopifyPageLimit, cfg.HTTPClientTimeout)
	}

	var objectStorage domain.ObjectStorage
	if cfg.StorageEnabled() {
		r2Storage, err := storage.NewR2Storage(ctx, cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2AccessKeySecret, cfg.R2BucketName, cfg.R2PublicURL, cfg.R2UploadTimeout)
		if err != nil {
			pool.Close()
			return nil, err
		}
		objectStorage = r2Storage
	}

	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaReturnTopic)
	store := usecase.NewOrderStore(orderRepo, upstream, memCache, cfg.CacheUpstreamTTL)
	selections := usecase.NewSelectionUsecase(memCache, cfg.CacheSelectionTTL, cfg.ReturnLockTTL)
	carrier := ekart.NewClient(cfg.EkartBaseURL, cfg.EkartAPIKey, cfg.HTTPClientTimeout)

	return &app{
		orders:    usecase.NewOrderUsecase(store, orderRepo, selections),
		returns:   usecase.NewReturnUsecase(store, selections, carrier, publisher, objectStorage),
		imports:   usecase.NewImportUsecase(orderRepo, sqlcrepo.NewTransactionManager(pool), selections, objectStorage),
		pool:      pool,
		publisher: publisher,
	}, nil
}

func (a *app) Close() {
	if err := a.publisher.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close publisher: %v\n", err)
	}
	a.pool.Close()
}

// withApp runs fn with a wired app and the command timeout applied.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
