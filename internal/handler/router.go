package handler

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/owaies/QuizApp/internal/config"
	"github.com/owaies/QuizApp/internal/middleware"
	"github.com/owaies/QuizApp/internal/service"
	"github.com/owaies/QuizApp/internal/web"
)

// RouterDeps собирает все, что нужно для построения HTTP роутера
type RouterDeps struct {
	Config        *config.Config
	AuthService   *service.AuthService
	QuizService   *service.QuizService
	ResultService *service.ResultService
	UserService   *service.UserService
	Tokens        middleware.TokenParser
	RateLimiter   *middleware.RateLimiter
	Store         Pinger
}

// NewRouter создает Gin engine со всеми маршрутами API, клиентом и служебными эндпоинтами
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	cfg := deps.Config

	router := gin.New()
	if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", "/debug/pprof"})),
	)

	if len(cfg.Server.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.Server.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	authHandler := NewAuthHandler(deps.AuthService)
	quizHandler := NewQuizHandler(deps.QuizService, deps.ResultService)
	settingsHandler := NewSettingsHandler(deps.QuizService)
	userHandler := NewUserHandler(deps.UserService)
	exportHandler := NewExportHandler(deps.ResultService)
	healthHandler := NewHealthHandler(deps.Store)

	authMiddleware := middleware.NewAuthMiddleware(deps.Tokens)
	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = middleware.NewRateLimiter(nil)
	}
	authLimit := rateLimiter.Limit(middleware.AuthRateLimitConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window))

	// Служебные маршруты
	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.IsDebug() {
		pprof.Register(router)
	}

	// Клиент
	if err := web.Register(router); err != nil {
		return nil, fmt.Errorf("failed to register web client: %w", err)
	}

	api := router.Group("/api")
	api.Use(middleware.NoCache())
	{
		api.POST("/signup", authLimit, authHandler.Signup)
		api.POST("/login", authLimit, authHandler.Login)

		// Рейтинг доступен всем; с валидным токеном добавляется место пользователя
		api.GET("/leaderboard", authMiddleware.OptionalAuth(), quizHandler.GetLeaderboard)

		authed := api.Group("")
		authed.Use(authMiddleware.RequireAuth())
		{
			authed.GET("/questions", quizHandler.GetQuestions)
			authed.POST("/submit", quizHandler.Submit)
			authed.GET("/settings/questionLimit", settingsHandler.GetQuestionLimit)
		}

		admin := api.Group("")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.POST("/questions", quizHandler.AddQuestion)
			admin.DELETE("/questions/:id", middleware.ExtractUintParam("id", questionIDKey), quizHandler.DeleteQuestion)
			admin.PUT("/settings/questionLimit", settingsHandler.SetQuestionLimit)
			admin.GET("/users", userHandler.ListUsers)
			admin.DELETE("/users/:id", middleware.ExtractUintParam("id", userIDKey), userHandler.DeleteUser)
			admin.GET("/results/export", exportHandler.ExportResults)
		}
	}

	return router, nil
}
