package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs at startup. It is built once in
// main and passed by reference; nothing reads the environment at call time.
type Config struct {
	Addr        string
	Environment string

	// Signing secrets are deliberately separate so a leaked access secret
	// cannot mint refresh tokens, and vice versa.
	AccessTokenSecret  string
	RefreshTokenSecret string

	DatabaseURL string
	Redis       RedisConfig

	// KafkaBrokers enables the audit sink when non-empty.
	KafkaBrokers []string
	AuditTopic   string
}

// RedisConfig holds connection settings for the refresh token store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// CookieSecure reports whether session cookies must carry the Secure
// attribute. Only local development is exempt.
func (c Config) CookieSecure() bool {
	return c.Environment == "production"
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("SHOPGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	env := os.Getenv("SHOPGATE_ENV")
	if env == "" {
		env = "development"
	}

	accessSecret := os.Getenv("ACCESS_TOKEN_SECRET")
	if accessSecret == "" {
		// Use a default for development - must be overridden in production
		accessSecret = "dev-access-secret-change-in-production"
	}
	refreshSecret := os.Getenv("REFRESH_TOKEN_SECRET")
	if refreshSecret == "" {
		refreshSecret = "dev-refresh-secret-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	auditTopic := os.Getenv("AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "shopgate.auth.audit"
	}

	return Config{
		Addr:               addr,
		Environment:        env,
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		KafkaBrokers: brokers,
		AuditTopic:   auditTopic,
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return v
}
