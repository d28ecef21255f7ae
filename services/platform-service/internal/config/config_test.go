package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, ":9090", cfg.GRPCHealthAddr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "kinext-admin", cfg.Database.AdminDBName)
	require.Equal(t, 10*time.Second, cfg.Database.OperationTimeout)
	require.Equal(t, "kinext-", cfg.Tenancy.DatabasePrefix)
	require.False(t, cfg.Tenancy.StrictResolution)
	require.Equal(t, "kinext", cfg.Token.Issuer)
	require.Equal(t, time.Hour, cfg.Token.AccessTokenExpiresIn)
	require.False(t, cfg.Redis.Enabled())
	require.False(t, cfg.Consul.Enabled())
	require.Equal(t, "platform-service", cfg.Consul.ServiceName)
	require.False(t, cfg.Mailer.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_ADMIN_DB_NAME", "admin-db")
	t.Setenv("MONGO_INSTANCE_DB_PREFIX", "acme-")
	t.Setenv("TENANT_STRICT_RESOLUTION", "true")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ACCESS_TOKEN_EXPIRES_IN", "15m")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "admin-db", cfg.Database.AdminDBName)
	require.Equal(t, "acme-", cfg.Tenancy.DatabasePrefix)
	require.True(t, cfg.Tenancy.StrictResolution)
	require.Equal(t, 15*time.Minute, cfg.Token.AccessTokenExpiresIn)
	require.True(t, cfg.Redis.Enabled())
	require.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	require.ErrorContains(t, err, "MONGODB_URI")

	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "")

	_, err = Load()
	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ACCESS_TOKEN_EXPIRES_IN", "soon")

	_, err := Load()
	require.Error(t, err)
}
