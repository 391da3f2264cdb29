package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"flowsense/internal/config"
	"flowsense/internal/db"
	"flowsense/internal/email"
	apihttp "flowsense/internal/http"
	"flowsense/internal/repository"
	"flowsense/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	cycleRepo := repository.NewPgCycleRepository(pool)
	profileRepo := repository.NewPgHealthProfileRepository(pool)
	reportRepo := repository.NewPgReportRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var (
		authLimiter    service.AuthRateLimiter
		tokenStore     service.RefreshTokenStore
		screeningCache service.ScreeningCache
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			authLimiter = service.NewRedisAuthRateLimiter(redisClient, time.Minute, 5)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
			screeningCache = service.NewRedisScreeningCache(redisClient, cfg.ScreeningCacheTTL)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, tokenStore)
	userSvc := service.NewUserService(logger, userRepo, authLimiter)
	screeningSvc := service.NewScreeningService(
		logger,
		service.NewScreeningEngine(),
		cycleRepo,
		profileRepo,
		reportRepo,
		userRepo,
		screeningCache,
		emailSender,
	)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	cycleHandler := apihttp.NewCycleHandler(logger, cycleRepo)
	profileHandler := apihttp.NewProfileHandler(logger, profileRepo)
	screeningHandler := apihttp.NewScreeningHandler(logger, screeningSvc)
	router := apihttp.NewRouter(logger, jwtSvc, userHandler, cycleHandler, profileHandler, screeningHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
