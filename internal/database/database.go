package database

import (
	"context"
	"fmt"
	"time"

	"github.com/formlytic/formlytic-api/internal/config"
	"github.com/formlytic/formlytic-api/internal/domain"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// NewDatabase creates a new database connection for the configured driver
func NewDatabase(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = "formlytic.db"
		}
		dialector = sqlite.Open(path)
	case DriverPostgres, "":
		dialector = postgres.Open(cfg.ConnectionString())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established",
		zap.String("driver", dialector.Name()),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns))

	if cfg.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to auto-migrate: %w", err)
		}
		log.Info("Database schema auto-migrated")
	}

	return db, nil
}

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.Form{},
		&domain.Question{},
		&domain.Response{},
		&domain.File{},
		&domain.FormPurchase{},
		&domain.Subscription{},
		&domain.AuditLog{},
	}
}

// AutoMigrate runs automatic migrations (for development and tests only)
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// HealthCheck pings the database within the given context
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// PoolStats is a JSON friendly view of sql.DBStats
type PoolStats struct {
	MaxOpenConnections int    `json:"maxOpenConnections"`
	OpenConnections    int    `json:"openConnections"`
	InUse              int    `json:"inUse"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"waitCount"`
	WaitDuration       string `json:"waitDuration"`
	MaxIdleClosed      int64  `json:"maxIdleClosed"`
	MaxLifetimeClosed  int64  `json:"maxLifetimeClosed"`
}

// HealthCheckWithStats pings the database and returns pool statistics
func HealthCheckWithStats(ctx context.Context, db *gorm.DB) (*PoolStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	s := sqlDB.Stats()
	return &PoolStats{
		MaxOpenConnections: s.MaxOpenConnections,
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		WaitCount:          s.WaitCount,
		WaitDuration:       s.WaitDuration.String(),
		MaxIdleClosed:      s.MaxIdleClosed,
		MaxLifetimeClosed:  s.MaxLifetimeClosed,
	}, nil
}
