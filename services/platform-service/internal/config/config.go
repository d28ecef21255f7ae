package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/tenancy"
	"github.com/vasapolrittideah/kinext-api/shared/database"
	"github.com/vasapolrittideah/kinext-api/shared/discovery"
	"github.com/vasapolrittideah/kinext-api/shared/mailer"
)

// PlatformServiceConfig holds the configuration of the platform service.
type PlatformServiceConfig struct {
	HTTPAddr       string `env:"HTTP_ADDR"        envDefault:":8080"`
	GRPCHealthAddr string `env:"GRPC_HEALTH_ADDR" envDefault:":9090"`
	LogLevel       string `env:"LOG_LEVEL"        envDefault:"info"`
	LogPretty      bool   `env:"LOG_PRETTY"`

	Database database.Config
	Tenancy  TenancyConfig
	Token    TokenConfig
	Redis    RedisConfig
	Consul   discovery.ConsulConfig
	Mailer   mailer.Config
}

// TenancyConfig controls how tenant databases are named and resolved.
type TenancyConfig struct {
	DatabasePrefix   string `env:"MONGO_INSTANCE_DB_PREFIX" envDefault:"kinext-"`
	StrictResolution bool   `env:"TENANT_STRICT_RESOLUTION"`
}

// TokenConfig holds the session token settings.
type TokenConfig struct {
	AccessTokenSecret    string        `env:"JWT_SECRET"`
	Issuer               string        `env:"JWT_ISSUER"              envDefault:"kinext"`
	AccessTokenExpiresIn time.Duration `env:"ACCESS_TOKEN_EXPIRES_IN" envDefault:"1h"`
}

// RedisConfig configures the tenant registry cache. The cache is disabled
// when Addr is empty.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB"`
	CacheTTL time.Duration `env:"REGISTRY_CACHE_TTL" envDefault:"1h"`
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// Load parses the configuration from environment variables and validates it.
func Load() (*PlatformServiceConfig, error) {
	cfg, err := env.ParseAs[PlatformServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *PlatformServiceConfig) validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if c.Tenancy.DatabasePrefix == "" {
		c.Tenancy.DatabasePrefix = tenancy.DefaultDatabasePrefix
	}
	if c.Token.AccessTokenSecret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.Token.AccessTokenExpiresIn <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRES_IN must be positive")
	}
	if c.Redis.Enabled() && c.Redis.CacheTTL <= 0 {
		return fmt.Errorf("REGISTRY_CACHE_TTL must be positive")
	}
	if err := c.Mailer.Validate(); err != nil {
		return err
	}

	return nil
}
