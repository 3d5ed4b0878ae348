package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/owaies/QuizApp/internal/config"
)

var rootFlags struct {
	ConfigFile string
	LogLevel   string
}

var rootCmd = &cobra.Command{
	Use:   "quizapp",
	Short: "Quiz web application: question bank, scoring and leaderboard",
	Example: `quizapp serve --config config.yaml
  quizapp migrate --force 1
  quizapp create-admin --username admin --email admin@example.com --password secret`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	// Без подкоманды запускается сервер
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFlags.ConfigFile, "config", "c", os.Getenv("CONFIG_PATH"), "Path to config file (env CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error), overrides config")
}

// loadConfig загружает конфигурацию и настраивает уровень логирования
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootFlags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if rootFlags.LogLevel != "" {
		cfg.Log.Level = rootFlags.LogLevel
	}
	setLogLevel(cfg.Log.Level)
	return cfg, nil
}

func setLogLevel(level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("unknown log level %s, defaulting to info", level)
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}

func main() {
	log.SetReportTimestamp(true)
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
