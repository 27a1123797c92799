package config

import (
	"errors"
	"fmt"

	"category-services-backend/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the PostgreSQL pool described by cfg.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is not set")
	}

	gormLogger := logger.Default.LogMode(logger.Warn)
	if !cfg.IsProduction() && cfg.LogLevel == "debug" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DBURL), &gorm.Config{
		// Multi-statement writes open their own transactions.
		SkipDefaultTransaction: true,
		Logger:                 gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	log.WithFields(log.Fields{
		"max_open_conns": cfg.DBMaxOpenConns,
		"max_idle_conns": cfg.DBMaxIdleConns,
	}).Info("Database connection established")

	return db, nil
}

// Migrate creates or updates the catalog tables. Foreign keys cascade on
// delete: categories -> services -> service_price_options.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Service{},
		&models.PriceOption{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("Database models synchronized")
	return nil
}
