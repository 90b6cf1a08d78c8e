package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/mikgur/eth-address-review/apps/review/internal/addressbook"
	"github.com/mikgur/eth-address-review/apps/review/internal/api"
	"github.com/mikgur/eth-address-review/apps/review/internal/cache"
	"github.com/mikgur/eth-address-review/apps/review/internal/config"
	"github.com/mikgur/eth-address-review/apps/review/internal/etherscan"
	"github.com/mikgur/eth-address-review/apps/review/internal/event_publisher"
	"github.com/mikgur/eth-address-review/apps/review/internal/report"
	"github.com/mikgur/eth-address-review/apps/review/internal/repository"
	"github.com/mikgur/eth-address-review/apps/review/internal/review"
	"github.com/mikgur/eth-address-review/apps/review/internal/store"
)

func main() {
	// Initialize zap logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	// Load configuration from environment variables
	cfg := config.NewConfig()

	logger.Info("Starting review with configuration",
		zap.String("etherscan_url", cfg.EtherscanURL),
		zap.String("address", cfg.Address),
		zap.String("proxy_address", cfg.ProxyAddress),
		zap.String("cache_dir", cfg.CacheDir),
		zap.String("kafka_broker", cfg.KafkaBroker),
		zap.Int("api_port", cfg.APIPort),
	)

	ctx := context.Background()

	// Static lookup tables
	book, err := addressbook.LoadBook(cfg.AddressBookPath)
	if err != nil {
		logger.Fatal("Failed to load address book", zap.Error(err))
	}
	contracts, err := addressbook.LoadContracts(cfg.KnownContractsPath)
	if err != nil {
		logger.Fatal("Failed to load known contracts", zap.Error(err))
	}

	// Pick the cache backend: postgres when a DSN is configured, then
	// redis, otherwise JSON files on disk.
	var eventCache cache.Cache
	switch {
	case cfg.CacheDSN != "":
		db, err := sql.Open("postgres", cfg.CacheDSN)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		if err := repository.InitMigration(db); err != nil {
			logger.Fatal("Failed to initialize database", zap.Error(err))
		}
		eventCache = repository.NewEventCacheRepository(db, logger)
	case cfg.CacheRedisAddr != "":
		redisCache, err := cache.NewRedisCache(ctx, cfg.CacheRedisAddr, logger)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisCache.Close()
		eventCache = redisCache
	default:
		fileCache, err := cache.NewFileCache(cfg.CacheDir, logger)
		if err != nil {
			logger.Fatal("Failed to create file cache", zap.Error(err))
		}
		eventCache = fileCache
	}

	client := etherscan.NewClient(cfg.EtherscanURL, cfg.EtherscanAPIKey, logger)
	eventStore := store.New(client, eventCache, logger)

	// Run the review
	reviewer := review.NewReviewer(eventStore, book, contracts, cfg.Address, cfg.ProxyAddress, logger)
	result, err := reviewer.Run(ctx)
	if err != nil {
		logger.Fatal("Review failed", zap.Error(err))
	}

	if err := report.Write(os.Stdout, result); err != nil {
		logger.Fatal("Failed to render report", zap.Error(err))
	}

	// Publish classification events when a broker is configured
	if cfg.KafkaBroker != "" {
		publisher, err := event_publisher.NewEventPublisher(cfg.KafkaBroker, cfg.KafkaTopic, logger)
		if err != nil {
			logger.Fatal("Failed to create event publisher", zap.Error(err))
		}
		defer publisher.Close()

		if err := publisher.PublishReview(cfg.Address, result.Transactions); err != nil {
			logger.Error("Failed to publish some classification events", zap.Error(err))
		}
	}

	// Serve the snapshot over HTTP when a port is configured
	if cfg.APIPort > 0 {
		apiServer := api.NewServer(cfg.APIPort, result, logger)
		go func() {
			if err := apiServer.Start(); err != nil {
				logger.Fatal("API server failed", zap.Error(err))
			}
		}()

		// Set up signal handling for graceful shutdown
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		<-sigChan
		logger.Info("Received shutdown signal, starting graceful shutdown...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := apiServer.Stop(shutdownCtx); err != nil {
			logger.Error("Error shutting down API server", zap.Error(err))
		}
	}

	logger.Info("Review shutdown complete")
}
