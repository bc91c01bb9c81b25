package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/cache"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/catalog"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/config"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/database"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/events"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/repository"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/saga"
	"github.com/ayushsoni77/Micro-Mart-sub000/pkg/logger"

	"go.uber.org/zap"
)

// The relay binary drains the outbox to Kafka and runs the reconciler that
// replays confirm/release operations which exhausted their retries in the API.
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Outbox Relay",
		zap.String("environment", cfg.Environment),
		zap.String("sqlite_path", cfg.SQLitePath),
		zap.Strings("kafka_brokers", cfg.KafkaBrokers),
		zap.String("topic_orders", cfg.KafkaTopicOrders),
		zap.Duration("poll_interval", cfg.RelayPollInterval),
		zap.Int("max_attempts", cfg.RelayMaxAttempts),
	)

	// Initialize database (Single Writer)
	appLogger.Info("🔧 Initializing database...")
	db, err := database.NewSingleWriterDB(cfg.SQLitePath, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("✅ Database initialized successfully")

	// Initialize Kafka publisher
	appLogger.Info("🔧 Initializing Kafka publisher...")
	publisher, err := events.NewKafkaPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Kafka publisher", zap.Error(err))
	}
	defer publisher.Close()
	appLogger.Info("✅ Kafka publisher initialized successfully")

	// Outbox relay
	store := events.NewOutboxStore(db)
	relay := events.NewRelay(store, publisher, appLogger, cfg.RelayPollInterval, cfg.RelayMaxAttempts)

	// Reconciler shares the settlement path with the API
	appCache := cache.New(cfg, appLogger)
	inventoryRepo := repository.NewInventoryRepository(db, appLogger)
	orderRepo := repository.NewOrderRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	catalogClient := catalog.NewHTTPClient(cfg.CatalogBaseURL, cfg.CatalogTimeout, appCache, cfg.CatalogCacheTTL, appLogger)
	coordinator := saga.NewCoordinator(db, inventoryRepo, orderRepo, reservationRepo, catalogClient, appLogger,
		cfg.InventorySyncRetries, cfg.InventorySyncBackoff)
	reconciler := saga.NewReconciler(coordinator, orderRepo, appLogger, cfg.ReconcileInterval)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		appLogger.Info("📨 Starting outbox relay loop...")
		if err := relay.Run(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()
	go reconciler.Run(ctx)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		appLogger.Fatal("Relay error", zap.Error(err))
	case sig := <-quit:
		appLogger.Info("Shutting down relay", zap.String("signal", sig.String()))
		cancel()
	}

	appLogger.Info("Relay exited")
}
