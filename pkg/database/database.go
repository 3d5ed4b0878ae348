package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/owaies/QuizApp/internal/config"
)

// Open подключается к хранилищу согласно конфигурации и приводит схему к актуальной версии:
// для PostgreSQL применяются встроенные миграции, для SQLite выполняется AutoMigrate.
func Open(cfg config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := NewPostgresDB(cfg.URL, logLevel)
		if err != nil {
			return nil, err
		}
		if err := MigrateDB(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return db, nil
	case config.DriverSQLite:
		return NewSQLiteDB(cfg.URL, logLevel)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}
