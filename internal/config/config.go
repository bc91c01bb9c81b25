package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	// SQLite Configuration
	SQLitePath string
	// JWT Configuration
	JWTSecret string
	// Kafka Configuration
	KafkaBrokers     []string
	KafkaTopicOrders string
	KafkaClientID    string
	KafkaAcks        string
	KafkaRetries     int
	// Redis Configuration (catalog price cache)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CatalogCacheTTL time.Duration
	// Product Catalog Configuration
	CatalogBaseURL string
	CatalogTimeout time.Duration
	// Saga retry policy for post-commit confirm/release
	InventorySyncRetries int
	InventorySyncBackoff time.Duration
	// Outbox relay
	RelayPollInterval time.Duration
	RelayMaxAttempts  int
	// Reconciler
	ReconcileInterval time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Parse Kafka brokers (comma-separated)
	kafkaBrokersStr := getEnv("KAFKA_BROKERS", "localhost:9093")
	kafkaBrokers := strings.Split(kafkaBrokersStr, ",")
	for i, broker := range kafkaBrokers {
		kafkaBrokers[i] = strings.TrimSpace(broker)
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		SQLitePath:  getEnv("SQLITE_PATH", "./data/marketplace.db"),
		// JWT Configuration
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production-min-32-chars"),
		// Kafka Configuration
		KafkaBrokers:     kafkaBrokers,
		KafkaTopicOrders: getEnv("KAFKA_TOPIC_ORDERS", "orders.events"),
		KafkaClientID:    getEnv("KAFKA_CLIENT_ID", "order-coordinator"),
		KafkaAcks:        getEnv("KAFKA_ACKS", "all"),
		KafkaRetries:     getEnvAsInt("KAFKA_RETRIES", 3),
		// Redis Configuration
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),
		CatalogCacheTTL: getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		// Product Catalog Configuration
		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "http://localhost:8081"),
		CatalogTimeout: getEnvAsDuration("CATALOG_TIMEOUT", 3*time.Second),
		// Saga retry policy
		InventorySyncRetries: getEnvAsInt("INVENTORY_SYNC_RETRIES", 3),
		InventorySyncBackoff: getEnvAsDuration("INVENTORY_SYNC_BACKOFF", 100*time.Millisecond),
		// Outbox relay
		RelayPollInterval: getEnvAsDuration("RELAY_POLL_INTERVAL", 2*time.Second),
		RelayMaxAttempts:  getEnvAsInt("RELAY_MAX_ATTEMPTS", 5),
		// Reconciler
		ReconcileInterval: getEnvAsDuration("RECONCILE_INTERVAL", 30*time.Second),
	}
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
