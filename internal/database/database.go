package database

import (
	"fmt"
	"time"

	"github.com/fidomax07/vetting-api/internal/config"
	"github.com/fidomax07/vetting-api/internal/logging"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Dialector picks the gorm dialector for the configured driver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	db := cfg.DB
	switch db.Driver {
	case config.DriverSQLite:
		return sqlite.Open(db.Path), nil
	case config.DriverMySQL:
		port := db.Port
		if port == "" {
			port = "3306"
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			db.User,
			db.Password,
			db.Host,
			port,
			db.Name,
		)
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		port := db.Port
		if port == "" {
			port = "5432"
		}
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			db.Host,
			port,
			db.User,
			db.Password,
			db.Name,
			db.SSLMode,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", db.Driver)
	}
}

// Connect opens the store connection described by cfg.
func Connect(cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := Open(dialector, &gorm.Config{
		Logger: logging.NewGormLogger(log, cfg.App.Env),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DB.Driver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql db: %w", err)
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	log.WithField("driver", cfg.DB.Driver).Info("database connection established")
	return db, nil
}

// Open wraps gorm.Open with the options every connection needs: UTC
// timestamps and translated constraint errors.
func Open(dialector gorm.Dialector, gormCfg *gorm.Config) (*gorm.DB, error) {
	if gormCfg == nil {
		gormCfg = &gorm.Config{}
	}
	gormCfg.TranslateError = true
	gormCfg.NowFunc = nowUTC
	return gorm.Open(dialector, gormCfg)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql db: %w", err)
	}
	return sqlDB.Close()
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
