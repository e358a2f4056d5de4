package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	Provider ProviderConfig `mapstructure:"provider"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres, memory
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// InMemory reports whether the process runs without PostgreSQL.
func (d DatabaseConfig) InMemory() bool {
	return d.Driver == "memory"
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// GatewayConfig describes the payments provider account this bridge talks to.
// Test and live credentials are kept side by side; TestMode picks one set.
type GatewayConfig struct {
	ID               string `mapstructure:"id"`
	TestMode         bool   `mapstructure:"test_mode"`
	TestWebhookKey   string `mapstructure:"test_webhook_key"`
	LiveWebhookKey   string `mapstructure:"live_webhook_key"`
	TestAPIKey       string `mapstructure:"test_api_key"`
	LiveAPIKey       string `mapstructure:"live_api_key"`
	TestBaseURL      string `mapstructure:"test_base_url"`
	LiveBaseURL      string `mapstructure:"live_base_url"`
	CheckoutSessions bool   `mapstructure:"checkout_sessions"`
	TaxInclusive     bool   `mapstructure:"tax_inclusive"`
	TaxCategory      string `mapstructure:"tax_category"`
	Currency         string `mapstructure:"currency"`
	ReturnURL        string `mapstructure:"return_url"`
}

// WebhookKey returns the signing secret for the active mode.
func (g GatewayConfig) WebhookKey() string {
	if g.TestMode {
		return g.TestWebhookKey
	}
	return g.LiveWebhookKey
}

// APIKey returns the provider API key for the active mode.
func (g GatewayConfig) APIKey() string {
	if g.TestMode {
		return g.TestAPIKey
	}
	return g.LiveAPIKey
}

// BaseURL returns the provider API base URL for the active mode.
func (g GatewayConfig) BaseURL() string {
	if g.TestMode {
		return g.TestBaseURL
	}
	return g.LiveBaseURL
}

// Mode returns "test" or "live".
func (g GatewayConfig) Mode() string {
	if g.TestMode {
		return "test"
	}
	return "live"
}

type WebhookConfig struct {
	Tolerance         time.Duration `mapstructure:"tolerance"`
	ReplayTTL         time.Duration `mapstructure:"replay_ttl"`
	ProcessingTimeout time.Duration `mapstructure:"processing_timeout"`
	MaxBodyBytes      int64         `mapstructure:"max_body_bytes"`
}

type ProviderConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxRetries      int           `mapstructure:"max_retries"`
	MinWait         time.Duration `mapstructure:"min_wait"`
	MaxWait         time.Duration `mapstructure:"max_wait"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type AdminConfig struct {
	KeyHash string `mapstructure:"key_hash"` // argon2id hash of the operator API key
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PWB_ (Payment Webhook Bridge).
// Nested keys use underscore: PWB_DATABASE_HOST, PWB_GATEWAY_TEST_MODE, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "payment_bridge")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("gateway.id", "dodo_payments")
	v.SetDefault("gateway.test_mode", true)
	v.SetDefault("gateway.test_webhook_key", "")
	v.SetDefault("gateway.live_webhook_key", "")
	v.SetDefault("gateway.test_api_key", "")
	v.SetDefault("gateway.live_api_key", "")
	v.SetDefault("gateway.test_base_url", "https://test.dodopayments.com")
	v.SetDefault("gateway.live_base_url", "https://live.dodopayments.com")
	v.SetDefault("gateway.checkout_sessions", false)
	v.SetDefault("gateway.tax_inclusive", false)
	v.SetDefault("gateway.tax_category", "digital_products")
	v.SetDefault("gateway.currency", "USD")
	v.SetDefault("gateway.return_url", "http://localhost:8080/api/v1/checkout/return")
	v.SetDefault("webhook.tolerance", "5m")
	v.SetDefault("webhook.replay_ttl", "24h")
	v.SetDefault("webhook.processing_timeout", "20s")
	v.SetDefault("webhook.max_body_bytes", 1<<20)
	v.SetDefault("provider.timeout", "30s")
	v.SetDefault("provider.max_retries", 3)
	v.SetDefault("provider.min_wait", "500ms")
	v.SetDefault("provider.max_wait", "10s")
	v.SetDefault("provider.breaker_failures", 5)
	v.SetDefault("provider.breaker_timeout", "30s")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "12h")
	v.SetDefault("jwt.issuer", "payment-webhook-bridge")
	v.SetDefault("admin.key_hash", "")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PWB_DATABASE_HOST -> database.host
	v.SetEnvPrefix("PWB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
