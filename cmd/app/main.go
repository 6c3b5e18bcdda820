package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "soulscribe-backend/docs"
	"soulscribe-backend/internal/common/cache"
	"soulscribe-backend/internal/common/config"
	"soulscribe-backend/internal/common/logger"
	"soulscribe-backend/internal/common/middleware"
	"soulscribe-backend/internal/features/analysis"
	authhttp "soulscribe-backend/internal/features/auth/delivery/http"
	authredis "soulscribe-backend/internal/features/auth/repository/redis"
	authservice "soulscribe-backend/internal/features/auth/service"
	contenthttp "soulscribe-backend/internal/features/content/delivery/http"
	contentrepo "soulscribe-backend/internal/features/content/repository/postgres"
	contentservice "soulscribe-backend/internal/features/content/service"
	leaderboardhttp "soulscribe-backend/internal/features/leaderboard/delivery/http"
	leaderboardservice "soulscribe-backend/internal/features/leaderboard/service"
	moderationhttp "soulscribe-backend/internal/features/moderation/delivery/http"
	moderationservice "soulscribe-backend/internal/features/moderation/service"
	tokenhttp "soulscribe-backend/internal/features/token/delivery/http"
	tokenrepo "soulscribe-backend/internal/features/token/repository/postgres"
	tokenservice "soulscribe-backend/internal/features/token/service"
	userhttp "soulscribe-backend/internal/features/user/delivery/http"
	userrepo "soulscribe-backend/internal/features/user/repository/postgres"
	userservice "soulscribe-backend/internal/features/user/service"
	"soulscribe-backend/internal/platform/ledger"
	"soulscribe-backend/internal/platform/postgres"
	redisplatform "soulscribe-backend/internal/platform/redis"
)

// @title           SoulScribe API
// @version         1.0
// @description     Content submission platform with wallet login, heuristic quality scoring, admin moderation and soulbound token rewards.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerToken
// @in header
// @name Authorization
// @description Bearer token obtained from /auth/login

// @tag.name auth
// @tag.description Wallet-proof login

// @tag.name users
// @tag.description User profiles

// @tag.name content
// @tag.description Content submission and feed

// @tag.name tokens
// @tag.description Soulbound token rewards

// @tag.name leaderboard
// @tag.description Token-count ranking

// @tag.name admin
// @tag.description Moderation actions

func main() {
	cfg := config.Load()

	logger.Init("soulscribe-backend", cfg.Debug)
	logger.Info().Bool("debug", cfg.Debug).Msg("Starting SoulScribe backend")

	postgresClient, err := postgres.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer postgresClient.Close()

	redisClient, err := redisplatform.Open(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	cacheService := cache.NewCacheService(redisClient)

	db := postgresClient.GetDB()
	userRepository := userrepo.NewUserRepository(db)
	contentRepository := contentrepo.NewContentRepository(db)
	tokenRepository := tokenrepo.NewTokenRepository(db)
	authRepository := authredis.NewRepository(redisClient)

	ledgerClient := ledger.NewHTTPClient(cfg.Ledger.BaseURL, cfg.Ledger.APIToken, cfg.Ledger.Network, cfg.Ledger.Timeout)
	scorer := analysis.NewHeuristicScorer()

	userSvc := userservice.NewUserService(userRepository, cfg.Auth.AdminWallets)
	authSvc := authservice.NewService(authRepository, userSvc, authservice.Config{
		JWTSecret:   []byte(cfg.Auth.JWTSecret),
		TokenTTL:    cfg.Auth.TokenTTL,
		ProofDomain: cfg.Auth.ProofDomain,
		ProofMaxAge: cfg.Auth.ProofMaxAge,
	})
	tokenSvc := tokenservice.NewTokenService(tokenRepository)
	contentSvc := contentservice.NewContentService(contentRepository, cacheService)
	moderationSvc := moderationservice.NewModerationService(
		db, contentRepository, tokenRepository, userRepository,
		tokenSvc, ledgerClient, scorer, cacheService, cfg.Moderation.AutoApprove,
	)
	leaderboardSvc := leaderboardservice.NewLeaderboardService(tokenRepository)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Auth(authSvc))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	authhttp.NewAuthHandler(authSvc).RegisterRoutes(v1)
	userhttp.NewUserHandler(userSvc).RegisterRoutes(v1)
	contenthttp.NewContentHandler(contentSvc, moderationSvc).RegisterRoutes(v1)
	tokenhttp.NewTokenHandler(tokenSvc, userSvc, ledgerClient).RegisterRoutes(v1)
	leaderboardhttp.NewLeaderboardHandler(leaderboardSvc).RegisterRoutes(v1)
	moderationhttp.NewModerationHandler(moderationSvc, contentSvc, userSvc).RegisterRoutes(v1)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "soulscribe-backend",
		})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
