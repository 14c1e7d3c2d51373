package config

// Redis backs the read-through cache of program baselines. If the server
// cannot be reached at startup NewRedisClient returns nil and the cache is
// disabled.

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
	// Program cache.
	TTL    time.Duration
	Prefix string
}

// LoadRedisConfig reads:
//
//	REDIS_HOST and REDIS_PORT – hostname and port of the Redis server
//	REDIS_ADDR – host:port shorthand (host/port take precedence when both are set)
//	REDIS_PASSWORD – optional password
//	REDIS_DB – database number (default 0)
//	REDIS_TLS – enable TLS
//	PROGRAM_CACHE_TTL, PROGRAM_CACHE_PREFIX – program cache settings
func LoadRedisConfig() *RedisConfig {
	addr := getEnv("REDIS_ADDR", "")
	host := getEnv("REDIS_HOST", "")
	port := getEnv("REDIS_PORT", "")
	if host != "" && port != "" {
		addr = host + ":" + port
	}

	return &RedisConfig{
		Addr:     addr,
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
		TLS:      getEnvBool("REDIS_TLS", false),
		TTL:      getEnvDuration("PROGRAM_CACHE_TTL", 5*time.Minute),
		Prefix:   strings.TrimSuffix(getEnv("PROGRAM_CACHE_PREFIX", "swingbooking:program"), ":"),
	}
}

// Enabled reports whether a Redis address was configured at all.
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// NewRedisClient instantiates a Redis client. The returned client is nil if
// Redis is not configured or a connection cannot be established.
func NewRedisClient(cfg *RedisConfig) *redis.Client {
	if cfg == nil || !cfg.Enabled() {
		return nil
	}

	var tlsConf *tls.Config
	if cfg.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.Addr,
		Password:  cfg.Password,
		DB:        cfg.DB,
		TLSConfig: tlsConf,
	})

	// Ping the server with a short timeout. Return nil on failure.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
