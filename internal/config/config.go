package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fidomax07/vetting-api/internal/constants"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"golang.org/x/crypto/bcrypt"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	App struct {
		Env string
	}
	Server struct {
		Addr            string
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	}
	DB struct {
		Driver   string
		Path     string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string `mapstructure:"sslmode"`
	}
	JWT struct {
		Secret string
		TTL    time.Duration
	}
	Bcrypt struct {
		Cost int
	}
	Log struct {
		Level string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (*Config, error) {
	// existing environment variables win over .env entries
	_ = gotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.App.Env = strings.ToLower(strings.TrimSpace(cfg.App.Env))
	cfg.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.DB.Driver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", constants.EnvDevelopment)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "vetting.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "vetting")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", time.Duration(0))
	v.SetDefault("bcrypt.cost", constants.DefaultBcryptCost)
	v.SetDefault("log.level", "info")
}

// Validate checks the loaded values for consistency.
func (c *Config) Validate() error {
	switch c.App.Env {
	case constants.EnvDevelopment, constants.EnvProduction, constants.EnvTest:
	default:
		return fmt.Errorf("unknown app env %q", c.App.Env)
	}

	switch c.DB.Driver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DB.Driver)
	}

	if c.Bcrypt.Cost < bcrypt.MinCost || c.Bcrypt.Cost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.JWT.TTL < 0 {
		return fmt.Errorf("jwt ttl must not be negative")
	}

	if strings.TrimSpace(c.JWT.Secret) == "" {
		if c.App.Env == constants.EnvProduction {
			return fmt.Errorf("jwt secret is required in production")
		}
		c.JWT.Secret = "insecure-development-secret"
	}

	return nil
}

// IsDevelopment reports whether raw error messages may be exposed.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == constants.EnvDevelopment
}

// GinMode maps the application environment to a gin mode.
func (c *Config) GinMode() string {
	switch c.App.Env {
	case constants.EnvProduction:
		return gin.ReleaseMode
	case constants.EnvTest:
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
