package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/community-service-hub/internal/config"
	"github.com/yukikurage/community-service-hub/internal/constants"
	"github.com/yukikurage/community-service-hub/internal/database"
	"github.com/yukikurage/community-service-hub/internal/handlers"
	"github.com/yukikurage/community-service-hub/internal/logger"
	"github.com/yukikurage/community-service-hub/internal/notification"
	"github.com/yukikurage/community-service-hub/internal/repository"
	"github.com/yukikurage/community-service-hub/internal/scheduler"
	"github.com/yukikurage/community-service-hub/internal/security"
	"github.com/yukikurage/community-service-hub/internal/services"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg, zlog); err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	db := database.GetDB()

	// Run migrations
	if err := database.Migrate(db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	// Outbound collaborators
	var notifier notification.Notifier = notification.NewLogNotifier(zlog)
	if cfg.SendGridAPIKey != "" {
		notifier = notification.NewSendGridNotifier(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName)
	}

	var generator services.SubTaskGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = services.NewAIService(cfg.OpenAIAPIKey)
	}

	tokens := security.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	// Repositories and services
	accounts := repository.NewAccountRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	subTaskRepo := repository.NewSubTaskRepository(db)

	guard := services.NewGuard(taskRepo)
	activityService := services.NewActivityService(repository.NewActivityRepository(db), guard, zlog)
	otpService := services.NewOTPService(repository.NewOTPRepository(db), accounts, notifier,
		time.Duration(cfg.OTPTTLSeconds)*time.Second, zlog)
	authService := services.NewAuthService(accounts, otpService, guard, tokens, notifier, zlog)
	taskService := services.NewTaskService(taskRepo, accounts, guard, zlog)
	applicationService := services.NewApplicationService(applicationRepo, taskRepo, accounts, guard, activityService, notifier, zlog)
	subTaskService := services.NewSubTaskService(subTaskRepo, taskRepo, accounts, guard, generator, zlog)
	reportService := services.NewReportService(taskRepo, applicationRepo, subTaskRepo, guard)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
			zlog.Fatal("failed to bootstrap admin account", zap.Error(err))
		}
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(zlog))

	// Setup session middleware
	var store sessions.Store
	if cfg.SessionStore == "redis" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		store, err = redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			zlog.Fatal("failed to create redis session store", zap.Error(err))
		}
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}
	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:        handlers.NewAuthHandler(authService, otpService),
		NGO:         handlers.NewNGOHandler(authService, reportService),
		Task:        handlers.NewTaskHandler(taskService),
		Application: handlers.NewApplicationHandler(applicationService),
		SubTask:     handlers.NewSubTaskHandler(subTaskService),
		Activity:    handlers.NewActivityHandler(activityService),
	}, tokens)

	jobs, err := scheduler.New(cfg.KeepAliveURL, cfg.KeepAliveSchedule, zlog)
	if err != nil {
		zlog.Fatal("failed to create scheduler", zap.Error(err))
	}
	jobs.Start()
	defer jobs.Stop()

	// Start server
	zlog.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
