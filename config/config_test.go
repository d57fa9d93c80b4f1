package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/orders")

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, int32(20), cfg.DBMaxConns)
	assert.Equal(t, 5*time.Minute, cfg.CacheUpstreamTTL)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.False(t, cfg.StorageEnabled())
	require.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/orders")
	t.Setenv("DB_MAX_CONNS", "7")
	t.Setenv("TOKEN_EXPIRY", "90m")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("RATE_LIMIT_RPS", "12.5")
	t.Setenv("SHOPIFY_PAGE_LIMIT", "not-a-number")

	cfg := FromEnv()
	assert.Equal(t, int32(7), cfg.DBMaxConns)
	assert.Equal(t, 90*time.Minute, cfg.TokenExpiry)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 12.5, cfg.RateLimitRPS)
	assert.Equal(t, 250, cfg.ShopifyPageLimit)
}

func TestValidate(t *testing.T) {
	cfg := &Config{JWTSecret: "s"}
	assert.Error(t, cfg.Validate())

	cfg.DBUrl = "postgres://localhost/orders"
	assert.NoError(t, cfg.Validate())

	cfg.ShopifyStoreURL = "https://shop.example.com"
	assert.Error(t, cfg.Validate())

	cfg.ShopifyAccessToken = "tok"
	cfg.JWTSecret = defaultJWTSecret
	cfg.Env = "production"
	assert.Error(t, cfg.Validate())
}
