package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/owaies/QuizApp/internal/handler"
	"github.com/owaies/QuizApp/internal/middleware"
	pgRepo "github.com/owaies/QuizApp/internal/repository/postgres"
	"github.com/owaies/QuizApp/internal/service"
	"github.com/owaies/QuizApp/pkg/auth"
	"github.com/owaies/QuizApp/pkg/database"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.Database, cfg.IsDebug())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	defer sqlDB.Close()
	log.Info("Database ready", "driver", cfg.Database.Driver)

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("Successfully connected to Redis", "addr", cfg.Redis.Addr)
	} else {
		log.Warn("Redis is not configured, auth rate limiting disabled")
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer)
	if err != nil {
		return fmt.Errorf("failed to init JWT service: %w", err)
	}

	// Репозитории
	userRepo := pgRepo.NewUserRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)
	settingRepo := pgRepo.NewSettingRepo(db)

	router, err := handler.NewRouter(handler.RouterDeps{
		Config:        cfg,
		AuthService:   service.NewAuthService(userRepo, jwtService),
		QuizService:   service.NewQuizService(questionRepo, settingRepo, service.NewSampler(nil), cfg.Quiz.MaxOptions),
		ResultService: service.NewResultService(resultRepo, userRepo, questionRepo, cfg.Quiz.LeaderboardSize),
		UserService:   service.NewUserService(userRepo),
		Tokens:        jwtService,
		RateLimiter:   middleware.NewRateLimiter(redisClient),
		Store:         sqlDB,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		log.Info("Server exited properly")
		return nil
	})

	return g.Wait()
}
