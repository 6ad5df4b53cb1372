package config

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, 8, cfg.Bcrypt.Cost)
	assert.Equal(t, time.Duration(0), cfg.JWT.TTL)
	assert.NotEmpty(t, cfg.JWT.Secret)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, gin.DebugMode, cfg.GinMode())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "24h")
	t.Setenv("BCRYPT_COST", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 10, cfg.Bcrypt.Cost)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, gin.ReleaseMode, cfg.GinMode())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.App.Env = "test"
		cfg.DB.Driver = DriverSQLite
		cfg.Bcrypt.Cost = 8
		cfg.JWT.Secret = "secret"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown env", mutate: func(c *Config) { c.App.Env = "staging" }, wantErr: "unknown app env"},
		{name: "unknown driver", mutate: func(c *Config) { c.DB.Driver = "mongo" }, wantErr: "unsupported database driver"},
		{name: "cost too low", mutate: func(c *Config) { c.Bcrypt.Cost = 1 }, wantErr: "bcrypt cost"},
		{name: "cost too high", mutate: func(c *Config) { c.Bcrypt.Cost = 40 }, wantErr: "bcrypt cost"},
		{name: "negative ttl", mutate: func(c *Config) { c.JWT.TTL = -time.Second }, wantErr: "jwt ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, gin.TestMode, cfg.GinMode())
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
