package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"careerlift/internal/config"
	"careerlift/internal/db"
	apihttp "careerlift/internal/http"
	"careerlift/internal/oauth"
	"careerlift/internal/payment"
	"careerlift/internal/repository"
	"careerlift/internal/service"

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

	var (
		userRepo     repository.UserRepository
		sessionRepo  repository.SessionRepository
		resumeRepo   repository.ResumeRepository
		courseRepo   repository.CourseRepository
		mentorRepo   repository.MentorRepository
		projectRepo  repository.ProjectRepository
		progressRepo repository.ProgressRepository
		paymentRepo  repository.PaymentRepository
	)

	switch cfg.StorageBackend {
	case "memory":
		logger.Info("using in-memory storage")
		userRepo = repository.NewMemoryUserRepository()
		sessionRepo = repository.NewMemorySessionRepository()
		resumeRepo = repository.NewMemoryResumeRepository()
		courseRepo = repository.NewMemoryCourseRepository()
		mentorRepo = repository.NewMemoryMentorRepository()
		projectRepo = repository.NewMemoryProjectRepository()
		progressRepo = repository.NewMemoryProgressRepository()
		paymentRepo = repository.NewMemoryPaymentRepository()
	default:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		userRepo = repository.NewPgUserRepository(pool)
		sessionRepo = repository.NewPgSessionRepository(pool)
		resumeRepo = repository.NewPgResumeRepository(pool)
		courseRepo = repository.NewPgCourseRepository(pool)
		mentorRepo = repository.NewPgMentorRepository(pool)
		projectRepo = repository.NewPgProjectRepository(pool)
		progressRepo = repository.NewPgProgressRepository(pool)
		paymentRepo = repository.NewPgPaymentRepository(pool)
	}

	loginLimiter := service.NewLoginRateLimiter(time.Minute, 10)
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
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, time.Minute, 10)
		}
		cancel()
	}

	var googleProvider oauth.Provider
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		googleProvider = oauth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectBase)
	} else {
		logger.Warn("google oauth not configured")
	}

	var gateway payment.Client
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		gateway = payment.NewHTTPClient(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, logger)
	} else {
		logger.Warn("payment gateway not configured, using offline orders")
		gateway = payment.NewOfflineClient(cfg.RazorpayKeySecret)
	}

	userSvc := service.NewUserService(logger, userRepo)
	sessionSvc := service.NewSessionService(logger, sessionRepo, userRepo)
	stateSigner := service.NewStateSigner(cfg.SessionSecret)

	cookies := apihttp.CookieOptions{
		Secure:   cfg.CookieSecure,
		HTTPOnly: cfg.CookieHTTPOnly,
	}

	authHandler := apihttp.NewAuthHandler(logger, userSvc, sessionSvc, loginLimiter, googleProvider, stateSigner, cookies, cfg.AppBaseURL)
	resumeHandler := apihttp.NewResumeHandler(logger, resumeRepo, userRepo, cfg.UploadDir)
	courseHandler := apihttp.NewCourseHandler(logger, courseRepo, userRepo)
	mentorHandler := apihttp.NewMentorHandler(logger, mentorRepo, userRepo)
	projectHandler := apihttp.NewProjectHandler(logger, projectRepo)
	progressHandler := apihttp.NewProgressHandler(logger, progressRepo)
	paymentHandler := apihttp.NewPaymentHandler(logger, gateway, paymentRepo, userRepo)

	router := apihttp.NewRouter(logger, sessionSvc, authHandler, resumeHandler, courseHandler, mentorHandler, projectHandler, progressHandler, paymentHandler)

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
