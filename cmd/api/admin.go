package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	pgRepo "github.com/owaies/QuizApp/internal/repository/postgres"
	"github.com/owaies/QuizApp/internal/service"
	"github.com/owaies/QuizApp/pkg/database"
)

var adminFlags struct {
	Username string
	Email    string
	Password string
}

// Администратор через API не создается: signup всегда дает роль user
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	RunE:  runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminFlags.Username, "username", "", "Administrator username")
	createAdminCmd.Flags().StringVar(&adminFlags.Email, "email", "", "Administrator email")
	createAdminCmd.Flags().StringVar(&adminFlags.Password, "password", "", "Administrator password")
	for _, name := range []string{"username", "email", "password"} {
		_ = createAdminCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(createAdminCmd)
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Open(cfg.Database, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Токен администратору здесь не нужен
	authService := service.NewAuthService(pgRepo.NewUserRepo(db), nil)
	user, err := authService.CreateAdmin(cmd.Context(), service.SignupInput{
		Username: adminFlags.Username,
		Email:    adminFlags.Email,
		Password: adminFlags.Password,
	})
	if err != nil {
		return err
	}

	log.Info("Administrator created", "id", user.ID, "username", user.Username)
	return nil
}
