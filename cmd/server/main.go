package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swgpfha/swgpfha-website/internal/config"
	"github.com/swgpfha/swgpfha-website/internal/database"
	"github.com/swgpfha/swgpfha-website/internal/handlers"
	"github.com/swgpfha/swgpfha-website/internal/middleware"
	"github.com/swgpfha/swgpfha-website/internal/migrations"
	"github.com/swgpfha/swgpfha-website/internal/models"
	"github.com/swgpfha/swgpfha-website/internal/routes"
	"github.com/swgpfha/swgpfha-website/pkg/logger"
)

func main() {
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting foundation backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect()
	database.InitRedis()
	handlers.InitPaystack()

	if err := database.DB.AutoMigrate(
		&models.ContentBlock{},
		&models.ContactMessage{},
		&models.Opportunity{},
		&models.MediaItem{},
		&models.MediaAsset{},
		&models.Donation{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	if err := migrations.Run(database.DB); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.GeneralRateLimit())

	adminGuard := middleware.RequireAdmin(config.AppConfig.AdminAPIKey)

	api := r.Group("/api")
	{
		routes.RegisterContentRoutes(api, adminGuard)
		routes.RegisterContactRoutes(api, adminGuard)
		routes.RegisterOpportunityRoutes(api, adminGuard)
		routes.RegisterMediaRoutes(api, adminGuard)
		routes.RegisterPaymentRoutes(api, adminGuard)
	}

	r.GET("/healthz", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" {
			status = "degraded"
		}

		c.JSON(http.StatusOK, gin.H{
			"status": status,
			"env":    env,
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	port := config.AppConfig.Port
	if port == "" {
		port = "5050"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
