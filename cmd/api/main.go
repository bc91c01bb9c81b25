package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/auth"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/cache"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/catalog"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/config"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/database"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/handlers"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/repository"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/saga"
	"github.com/ayushsoni77/Micro-Mart-sub000/pkg/logger"
	"github.com/ayushsoni77/Micro-Mart-sub000/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/ayushsoni77/Micro-Mart-sub000/docs" // Import docs for Swagger
)

// @title           Order Coordinator API
// @version         1.0
// @description     Order and inventory reservation API. Placing an order reserves stock for every line before the order is persisted; delivering confirms the reservation and cancelling releases it.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Example: "Bearer eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Order Coordinator API",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.String("sqlite_path", cfg.SQLitePath),
	)

	appLogger.Info("📡 Kafka Configuration",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic_orders", cfg.KafkaTopicOrders),
		zap.String("client_id", cfg.KafkaClientID),
		zap.String("acks", cfg.KafkaAcks),
		zap.Int("retries", cfg.KafkaRetries),
	)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database (Single Writer)
	appLogger.Info("🔧 Initializing database...")
	db, err := database.NewSingleWriterDB(cfg.SQLitePath, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("✅ Database initialized successfully")

	// Shared cache: catalog price lookups and request idempotency
	appCache := cache.New(cfg, appLogger)

	// Repositories
	inventoryRepo := repository.NewInventoryRepository(db, appLogger)
	orderRepo := repository.NewOrderRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	// Product catalog client
	catalogClient := catalog.NewHTTPClient(cfg.CatalogBaseURL, cfg.CatalogTimeout, appCache, cfg.CatalogCacheTTL, appLogger)

	// Reservation coordinator
	coordinator := saga.NewCoordinator(db, inventoryRepo, orderRepo, reservationRepo, catalogClient, appLogger,
		cfg.InventorySyncRetries, cfg.InventorySyncBackoff)

	// Initialize router
	router := gin.New()

	// CORS middleware (must be first to handle preflight requests)
	router.Use(middleware.CORSMiddleware())

	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(logger.GinMiddleware(appLogger))

	// Request ID middleware (must be early in the chain)
	router.Use(middleware.RequestIDMiddleware(appLogger))

	// Idempotency middleware (for write operations)
	idempotencyStore := middleware.NewIdempotencyStore(appCache)
	router.Use(middleware.IdempotencyMiddleware(idempotencyStore, appLogger, 5*time.Minute))

	// Error handler middleware
	router.Use(middleware.ErrorHandler(appLogger))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, appLogger)
	authHandler := auth.NewAuthHandler(jwtManager, appLogger)

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(coordinator, orderRepo, appLogger)
	inventoryHandler := handlers.NewInventoryHandler(inventoryRepo, appLogger)

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint (public)
		v1.GET("/health", healthCheck(db))

		// Auth endpoints (public)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}

		// Protected endpoints (require JWT authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(jwtManager, appLogger))
		{
			orders := protected.Group("/orders")
			{
				orders.POST("", middleware.RequireRoles(appLogger, auth.RoleBuyer, auth.RoleAdmin), orderHandler.CreateOrder)
				orders.GET("/:id", orderHandler.GetOrder)
				orders.GET("/:id/history", orderHandler.GetOrderHistory)
				orders.PATCH("/:id/status", middleware.RequireRoles(appLogger, auth.RoleSeller, auth.RoleAdmin), orderHandler.UpdateStatus)
			}

			inventory := protected.Group("/inventory")
			{
				sellerOrAdmin := middleware.RequireRoles(appLogger, auth.RoleSeller, auth.RoleAdmin)
				adminOnly := middleware.RequireRoles(appLogger, auth.RoleAdmin)

				inventory.GET("/low-stock", sellerOrAdmin, inventoryHandler.ListLowStock)
				inventory.GET("/reorder-needed", sellerOrAdmin, inventoryHandler.ListReorderNeeded)
				// Manual ledger operations bypass the order saga, admin only
				inventory.POST("/reserve", adminOnly, inventoryHandler.Reserve)
				inventory.POST("/release", adminOnly, inventoryHandler.Release)
				inventory.POST("/confirm", adminOnly, inventoryHandler.Confirm)
				inventory.GET("/:productId", inventoryHandler.GetRecord)
				inventory.POST("/:productId/restock", sellerOrAdmin, inventoryHandler.Restock)
			}
		}
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Starting order coordinator API",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

// healthCheck godoc
// @Summary      Health check endpoint
// @Description  Reports service health including database connectivity
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string  "Service healthy"
// @Failure      503  {object}  map[string]string  "Database unreachable"
// @Router       /health [get]
func healthCheck(db *database.SingleWriterDB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "degraded",
				"service": "order-api",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "order-api",
		})
	}
}
