package main

import (
	"log"
	"net/http"

	"github.com/neuronest/neuronest/internal/ai"
	"github.com/neuronest/neuronest/internal/config"
	"github.com/neuronest/neuronest/internal/database"
	"github.com/neuronest/neuronest/internal/handler"
	"github.com/neuronest/neuronest/internal/middleware"
	"github.com/neuronest/neuronest/internal/repository"
	"github.com/neuronest/neuronest/internal/service"
	"github.com/neuronest/neuronest/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Database migration failed", zap.Error(err))
	}
	logger.Log.Info("Database connected and migrated")

	// AI generator is optional: without a key the journal endpoints return 503.
	var generator ai.Generator
	if cfg.AnthropicAPIKey != "" {
		generator = ai.NewAnthropicClient(cfg.AnthropicAPIKey)
		logger.Log.Info("Anthropic client configured")
	} else {
		logger.Log.Warn("ANTHROPIC_API_KEY not set, AI features will be disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	thoughtRepo := repository.NewThoughtRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTAlgorithm, cfg.JWTExpiry)
	thoughtService := service.NewThoughtService(thoughtRepo)
	insightsService := service.NewInsightsService(thoughtRepo)
	journalService := service.NewJournalService(thoughtRepo, generator)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	thoughtHandler := handler.NewThoughtHandler(thoughtService)
	insightsHandler := handler.NewInsightsHandler(insightsService)
	journalHandler := handler.NewJournalHandler(journalService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Rate limiting on the credential endpoints, when redis is available.
	var limiterMiddleware gin.HandlerFunc
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Log.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		limiter := middleware.NewRateLimiter(redis.NewClient(opt), middleware.RateLimiterConfig{
			MaxRequests: cfg.RateLimitMaxRequests,
			Window:      cfg.RateLimitWindow,
			BlockTime:   cfg.RateLimitBlockTime,
		})
		limiterMiddleware = limiter.Middleware()
		logger.Log.Info("Rate limiter enabled")
	} else {
		logger.Log.Warn("REDIS_URL not set, rate limiting disabled")
		limiterMiddleware = func(c *gin.Context) { c.Next() }
	}

	// Public routes
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the NeuroNest API"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/auth/token", limiterMiddleware, authHandler.Token)
	router.POST("/users", limiterMiddleware, userHandler.Signup)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.GET("/users/me", userHandler.Me)
		protected.POST("/thoughts", thoughtHandler.Create)
		protected.GET("/thoughts", thoughtHandler.List)
		protected.PUT("/thoughts/:id/water", thoughtHandler.Water)
		protected.GET("/insights", insightsHandler.Get)
		protected.POST("/journal/summary", journalHandler.Summary)
		protected.POST("/mindspace/recommendations", journalHandler.Recommendations)
	}

	logger.Log.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := router.Run(cfg.ServerPort); err != nil {
		logger.Log.Fatal("Failed to start server", zap.Error(err))
	}
}
