package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"

	"github.com/owaies/QuizApp/internal/config"
	"github.com/owaies/QuizApp/pkg/database"
)

var migrateFlags struct {
	Force int
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations (PostgreSQL)",
	Long: `Apply embedded SQL migrations to the configured PostgreSQL database.
Use --force to reset a dirty migration state to the given version.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().IntVar(&migrateFlags.Force, "force", -1, "Force migration version (clears dirty state)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Info("SQLite schema is created automatically on start, nothing to migrate")
		return nil
	}

	if migrateFlags.Force >= 0 {
		return database.ForceMigrationVersion(cfg.Database.URL, migrateFlags.Force)
	}

	db, err := database.NewPostgresDB(cfg.Database.URL, logger.Warn)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return database.MigrateDB(db)
}
