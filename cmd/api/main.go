package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prateekh777/professional-website/config"
	_ "github.com/prateekh777/professional-website/docs" // Important for Swagger
	v1 "github.com/prateekh777/professional-website/internal/delivery/http/v1"
	"github.com/prateekh777/professional-website/internal/domain"
	"github.com/prateekh777/professional-website/internal/repository/postgres"
	"github.com/prateekh777/professional-website/internal/usecase"
	"github.com/prateekh777/professional-website/pkg/auth"
	"github.com/prateekh777/professional-website/pkg/database"
	"github.com/prateekh777/professional-website/pkg/email"
	"github.com/prateekh777/professional-website/pkg/logger"
	"github.com/prateekh777/professional-website/pkg/media"
	"github.com/prateekh777/professional-website/pkg/ratelimit"
	"github.com/prateekh777/professional-website/pkg/recaptcha"
	"github.com/prateekh777/professional-website/pkg/redis"
	"github.com/prateekh777/professional-website/pkg/security"
	"github.com/prateekh777/professional-website/pkg/validation"
)

const serviceName = "portfolio-api"

// @title           Portfolio API
// @version         1.0
// @description     Contact pipeline and content API for the portfolio site.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port, "environment", cfg.Environment)

	secLogger := security.InitSecurityLogger(serviceName, cfg.Environment)
	defer func() { _ = secLogger.Sync() }()

	ctx := context.Background()

	// 3. Optional Database (content API)
	var healthDeps usecase.HealthDeps
	var contentUC domain.ContentUsecase
	validate := validation.New()
	urls := media.NewURLBuilder(cfg.AWSS3Bucket, cfg.AWSRegion)

	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		contentUC = usecase.NewContentUsecase(
			postgres.NewProjectRepository(dbPool),
			postgres.NewInterestRepository(dbPool),
			postgres.NewAiWorkRepository(dbPool),
			postgres.NewCaseStudyRepository(dbPool),
			postgres.NewSectionRepository(dbPool),
			urls,
			validate,
		)
		healthDeps.Database = dbPool.Ping
	}

	// 4. Rate limiting: Redis when reachable, in-memory otherwise
	var redisStore ratelimit.Store
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting will use the in-memory store", "error", err)
		} else {
			defer client.Close()
			redisStore = ratelimit.NewRedisStore(client)
			healthDeps.Redis = func(ctx context.Context) error { return redis.HealthCheck(ctx, client) }
		}
	}

	contactLimiter, err := newLimiter(ratelimit.Config{
		Limit:     cfg.ContactRateLimit,
		Window:    cfg.ContactRateWindow,
		KeyPrefix: "rl:contact:",
	}, redisStore, cfg.RateLimitMaxKeys)
	if err != nil {
		logger.Log.Error("Failed to create contact rate limiter", "error", err)
		os.Exit(1)
	}
	globalLimiter, err := newLimiter(ratelimit.Config{
		Limit:     cfg.GlobalRateLimit,
		Window:    time.Minute,
		KeyPrefix: "rl:ip:",
	}, redisStore, cfg.RateLimitMaxKeys)
	if err != nil {
		logger.Log.Error("Failed to create global rate limiter", "error", err)
		os.Exit(1)
	}

	// 5. Abuse verification
	verifier := recaptcha.New(recaptcha.Config{
		SecretKey:  cfg.RecaptchaSecretKey,
		VerifyURL:  cfg.RecaptchaVerifyURL,
		Timeout:    cfg.OutboundTimeout,
		DevBypass:  cfg.RecaptchaDevBypass,
		Production: cfg.IsProduction(),
		MinScore:   cfg.RecaptchaMinScore,
	}, &http.Client{Timeout: cfg.OutboundTimeout})

	// 6. Email
	provider, err := newEmailProvider(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to create email provider", "provider", cfg.EmailProvider, "error", err)
		os.Exit(1)
	}
	var fallback email.Sender
	if smtpSender := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword); smtpSender.IsConfigured() {
		fallback = smtpSender
	}
	dispatcher := email.NewDispatcher(email.DispatcherConfig{
		From:       cfg.EmailFrom,
		AdminTo:    cfg.EmailTo,
		OwnerName:  cfg.SiteOwnerName,
		Production: cfg.IsProduction(),
		Timeout:    cfg.OutboundTimeout,
	}, provider, fallback)
	if !dispatcher.Configured() {
		logger.Log.Warn("Email provider not configured", "provider", cfg.EmailProvider, "transport", dispatcher.Transport())
	}

	// 7. Media uploads
	var presigner usecase.UploadPresigner
	if cfg.StorageConfigured() {
		p, err := media.NewPresigner(ctx, media.Config{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.AWSS3Bucket,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			logger.Log.Warn("S3 presigner unavailable, media uploads disabled", "error", err)
		} else {
			presigner = p
		}
	}

	// 8. Setup UseCases
	contactUC := usecase.NewContactUsecase(usecase.ContactUsecaseDeps{
		Validate:   validate,
		Verifier:   verifier,
		Limiter:    contactLimiter,
		Dispatcher: dispatcher,
		Security:   secLogger,
	})
	mediaUC := usecase.NewMediaUsecase(presigner, urls, validate)

	healthDeps.Environment = cfg.Environment
	healthDeps.EmailTransport = dispatcher.Transport()
	healthDeps.EmailConfigured = dispatcher.Configured()
	healthDeps.StorageConfigured = presigner != nil
	healthUC := usecase.NewHealthUsecase(healthDeps)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		Config:        cfg,
		ContactUC:     contactUC,
		HealthUC:      healthUC,
		ContentUC:     contentUC,
		MediaUC:       mediaUC,
		GlobalLimiter: globalLimiter,
		Tokens:        auth.NewTokenService(cfg.AdminJWTSecret, serviceName),
		Security:      secLogger,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// newLimiter puts primary (possibly nil) in front of a bounded in-memory store.
func newLimiter(cfg ratelimit.Config, primary ratelimit.Store, maxKeys int) (*ratelimit.Limiter, error) {
	memory, err := ratelimit.NewMemoryStore(maxKeys)
	if err != nil {
		return nil, err
	}
	return ratelimit.New(cfg, primary, memory), nil
}

// newEmailProvider returns nil when the selected provider has no credentials.
func newEmailProvider(ctx context.Context, cfg *config.Config) (email.Sender, error) {
	if !cfg.EmailProviderConfigured() {
		return nil, nil
	}
	switch cfg.EmailProvider {
	case "ses":
		sender, err := email.NewSESSender(ctx, cfg.SESRegion)
		if err != nil {
			return nil, err
		}
		return sender, nil
	case "sendgrid":
		return email.NewSendGridSender(cfg.SendGridAPIKey, cfg.SendGridBaseURL), nil
	default:
		return nil, errors.New("unknown EMAIL_PROVIDER " + cfg.EmailProvider)
	}
}
