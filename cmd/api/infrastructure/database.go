package infrastructure

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"user-account-service/internal/config"
	"user-account-service/pkg/logger"
)

// NewDatabase creates the credential store connection with GORM configuration.
// TranslateError is required so the store adapter can map unique constraint
// violations onto the duplicate-email error kind.
func NewDatabase(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	gormLogger := logger.NewGormLogger(l, cfg.Logger.SlowQuerySeconds, cfg.Logger.Level)

	db, err := gorm.Open(pgdriver.Open(cfg.Store.DSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Store.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Store.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Store.ConnMaxLifetime) * time.Second)

	l.Info("database connected",
		zap.Int("max_open_conns", cfg.Store.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Store.MaxIdleConns),
	)

	return db, nil
}

// CloseDatabase closes the database connection
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
