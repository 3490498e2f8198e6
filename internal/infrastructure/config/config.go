package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	PublicURL string `env:"PUBLIC_URL, default=http://localhost:8080"`

	Auth    AuthConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Storage StorageConfig
	Jobs    JobsConfig
}

type AuthConfig struct {
	JWTSecret                string        `env:"JWT_SECRET"`
	TokenTTL                 time.Duration `env:"TOKEN_TTL,                  default=24h"`
	RequireEmailConfirmation bool          `env:"REQUIRE_EMAIL_CONFIRMATION, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=job_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type CacheConfig struct {
	Freshness           time.Duration `env:"VIEW_CACHE_FRESHNESS, default=5m"`
	Retention           time.Duration `env:"VIEW_CACHE_RETENTION, default=24h"`
	RevalidationWorkers int           `env:"REVALIDATION_WORKERS, default=4"`
}

type StorageConfig struct {
	Driver      string `env:"STORAGE_DRIVER, default=gridfs"`
	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_KEY"`
}

type JobsConfig struct {
	ExpirySpec string `env:"JOB_EXPIRY_SPEC, default=@every 1h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return &cfg
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" && c.Env == "production" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	switch c.Storage.Driver {
	case "gridfs":
	case "supabase":
		if c.Storage.SupabaseURL == "" || c.Storage.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required for the supabase storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Cache.Freshness <= 0 || c.Cache.Retention < c.Cache.Freshness {
		return fmt.Errorf("VIEW_CACHE_RETENTION must be at least VIEW_CACHE_FRESHNESS")
	}
	return nil
}
