package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Поддерживаемые драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// MinJWTSecretLength минимальная длина секрета подписи токенов (HS256)
const MinJWTSecretLength = 32

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // секунды
	WriteTimeout   int      `mapstructure:"write_timeout"` // секунды
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig содержит настройки подключения к хранилищу
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URL    string `mapstructure:"url"`
}

// RedisConfig содержит настройки Redis. Пустой Addr отключает ограничение частоты запросов.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
	Issuer     string        `mapstructure:"issuer"`
}

// QuizConfig содержит параметры викторины
type QuizConfig struct {
	LeaderboardSize int `mapstructure:"leaderboard_size"`
	MaxOptions      int `mapstructure:"max_options"`
}

// RateLimitConfig содержит настройки ограничения частоты для signup/login
type RateLimitConfig struct {
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load загружает конфигурацию из файла (если указан) и переменных окружения.
// Порт, строка подключения и секрет подписи обязательны и не имеют значений по умолчанию.
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию только для необязательных параметров
	vip.SetDefault("server.read_timeout", 10)
	vip.SetDefault("server.write_timeout", 10)
	vip.SetDefault("database.driver", DriverPostgres)
	vip.SetDefault("jwt.expiration", time.Hour)
	vip.SetDefault("jwt.issuer", "quizapp")
	vip.SetDefault("quiz.leaderboard_size", 10)
	vip.SetDefault("quiz.max_options", 6)
	vip.SetDefault("rate_limit.max_requests", 5)
	vip.SetDefault("rate_limit.window", time.Minute)
	vip.SetDefault("log.level", "info")

	// 2. Явная привязка переменных окружения
	bindings := map[string][]string{
		"server.port":             {"SERVER_PORT", "PORT"},
		"server.read_timeout":     {"SERVER_READ_TIMEOUT"},
		"server.write_timeout":    {"SERVER_WRITE_TIMEOUT"},
		"server.allowed_origins":  {"SERVER_ALLOWED_ORIGINS"},
		"database.driver":         {"DATABASE_DRIVER"},
		"database.url":            {"DATABASE_URL"},
		"redis.addr":              {"REDIS_ADDR"},
		"redis.password":          {"REDIS_PASSWORD"},
		"redis.db":                {"REDIS_DB"},
		"jwt.secret":              {"JWT_SECRET"},
		"jwt.expiration":          {"JWT_EXPIRATION"},
		"jwt.issuer":              {"JWT_ISSUER"},
		"quiz.leaderboard_size":   {"QUIZ_LEADERBOARD_SIZE"},
		"quiz.max_options":        {"QUIZ_MAX_OPTIONS"},
		"rate_limit.max_requests": {"RATE_LIMIT_MAX_REQUESTS"},
		"rate_limit.window":       {"RATE_LIMIT_WINDOW"},
		"log.level":               {"LOG_LEVEL"},
	}
	for key, envs := range bindings {
		if err := vip.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	// 3. Файл конфигурации необязателен: все параметры можно задать через окружение
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || strings.Contains(err.Error(), "no such file") {
				log.Warnf("Файл конфигурации '%s' не найден, используются переменные окружения", configPath)
			} else {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Список origin из окружения приходит одной строкой через запятую
	if len(cfg.Server.AllowedOrigins) == 1 && strings.Contains(cfg.Server.AllowedOrigins[0], ",") {
		cfg.Server.AllowedOrigins = splitAndTrim(cfg.Server.AllowedOrigins[0])
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug("Конфигурация загружена",
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"redis_enabled", cfg.Redis.Addr != "",
		"jwt_expiration", cfg.JWT.Expiration,
		"leaderboard_size", cfg.Quiz.LeaderboardSize,
	)

	return &cfg, nil
}

// Validate проверяет обязательные параметры. Небезопасных значений по умолчанию нет:
// без секрета подписи, строки подключения или порта процесс не стартует.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return fmt.Errorf("server port is required (check SERVER_PORT or PORT env var)")
	}
	if c.Database.Driver != DriverPostgres && c.Database.Driver != DriverSQLite {
		return fmt.Errorf("unsupported database driver %q (expected %q or %q)", c.Database.Driver, DriverPostgres, DriverSQLite)
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("database connection string is required (check DATABASE_URL env var)")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT signing secret is required (check JWT_SECRET env var)")
	}
	if len(c.JWT.Secret) < MinJWTSecretLength {
		return fmt.Errorf("JWT signing secret must be at least %d bytes", MinJWTSecretLength)
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT expiration must be positive")
	}
	if c.Quiz.LeaderboardSize <= 0 {
		return fmt.Errorf("quiz leaderboard size must be positive")
	}
	if c.Quiz.MaxOptions != 0 && c.Quiz.MaxOptions < 2 {
		return fmt.Errorf("quiz max options must be 0 (unlimited) or at least 2")
	}
	return nil
}

// IsDebug сообщает, включен ли отладочный уровень логирования
func (c *Config) IsDebug() bool {
	return strings.EqualFold(c.Log.Level, "debug")
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
