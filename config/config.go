package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DBUrl         string
	JWTSecret     string
	AllowedOrigin string
	TokenExpiry   time.Duration
	// DB Config
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string
	// Upstream storefront (Shopify Admin API)
	ShopifyStoreURL    string
	ShopifyAccessToken string
	ShopifyAPIVersion  string
	ShopifyPageLimit   int
	// Reverse-logistics carrier (Ekart integration service)
	EkartBaseURL string
	EkartAPIKey  string
	// Outbound HTTP
	HTTPClientTimeout time.Duration
	// Return events (Kafka); empty brokers disables publishing
	KafkaBrokers     []string
	KafkaReturnTopic string
	// Cache
	CacheUpstreamTTL  time.Duration
	CacheSelectionTTL time.Duration
	ReturnLockTTL     time.Duration
	// Upload Configuration
	MaxUploadSizeMB int64
	R2UploadTimeout time.Duration
	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: .env for local development; containers use
		// plain environment variables.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("CRITICAL: %v", err)
	}
	return cfg
}

// FromEnv reads the configuration from the process environment without
// loading any file or validating.
func FromEnv() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBUrl:         getEnv("DB_DSN", ""),
		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
		TokenExpiry:   getDurationEnv("TOKEN_EXPIRY", time.Hour*24), // Default 24h

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 20),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		// R2 Storage
		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),

		ShopifyStoreURL:    getEnv("SHOPIFY_STORE_URL", ""),
		ShopifyAccessToken: getEnv("SHOPIFY_ACCESS_TOKEN", ""),
		ShopifyAPIVersion:  getEnv("SHOPIFY_API_VERSION", "2024-01"),
		ShopifyPageLimit:   getIntEnv("SHOPIFY_PAGE_LIMIT", 250),

		EkartBaseURL: getEnv("EKART_BASE_URL", "http://localhost:4000"),
		EkartAPIKey:  getEnv("EKART_API_KEY", ""),

		HTTPClientTimeout: getDurationEnv("HTTP_CLIENT_TIMEOUT", 30*time.Second),

		KafkaBrokers:     getListEnv("KAFKA_BROKERS"),
		KafkaReturnTopic: getEnv("KAFKA_RETURN_TOPIC", "order-returns"),

		// Cache defaults: 5m upstream snapshot, 12h selections, 2m return lock
		CacheUpstreamTTL:  getDurationEnv("CACHE_UPSTREAM_TTL", 5*time.Minute),
		CacheSelectionTTL: getDurationEnv("CACHE_SELECTION_TTL", 12*time.Hour),
		ReturnLockTTL:     getDurationEnv("RETURN_LOCK_TTL", 2*time.Minute),

		// Upload defaults: 10MB max, 30s timeout
		MaxUploadSizeMB: getInt64Env("MAX_UPLOAD_SIZE_MB", 10),
		R2UploadTimeout: getDurationEnv("R2_UPLOAD_TIMEOUT", 30*time.Second),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),
	}
}

const defaultJWTSecret = "default_secret_CHANGE_ME"

func (c *Config) Validate() error {
	if c.DBUrl == "" {
		return errors.New("DB_DSN environment variable is required")
	}
	if c.JWTSecret == defaultJWTSecret {
		if c.Env == "production" {
			return errors.New("JWT_SECRET must be set in production")
		}
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
	if c.ShopifyStoreURL != "" && c.ShopifyAccessToken == "" {
		return errors.New("SHOPIFY_ACCESS_TOKEN is required when SHOPIFY_STORE_URL is set")
	}
	return nil
}

// StorageEnabled reports whether R2 credentials are configured.
func (c *Config) StorageEnabled() bool {
	return c.R2AccountID != "" && c.R2BucketName != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
		log.Printf("Invalid int64 for %s, using fallback", key)
	}
	return fallback
}

func getListEnv(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
