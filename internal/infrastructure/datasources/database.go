package datasources

import (
	"fmt"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"careconnect.backend/internal/config"
	"careconnect.backend/internal/infrastructure/datasources/postgres"
	"careconnect.backend/internal/infrastructure/models"
)

var newPostgresConn = postgres.NewConnection

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		PrepareStmt:    false,
	}
}

// Open connects to the configured database. Postgres goes through lib/pq;
// sqlite is for local development.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.IsSQLite() {
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return db, nil
	}

	sqlDB, err := newPostgresConn(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), gormConfig())
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
