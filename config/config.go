package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Port           string
	Environment    string
	LogLevel       string
	FrontendURL    string
	TrustedProxies []string
	DBUrl          string
	SiteOwnerName  string
	// Transactional email
	EmailProvider   string // "sendgrid" or "ses"
	SendGridAPIKey  string
	SendGridBaseURL string
	SESRegion       string
	EmailFrom       string // Verified sender address
	EmailTo         string // Admin recipient for contact notifications
	// Local fallback transport (MailHog, Mailpit, ...)
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	// reCAPTCHA
	RecaptchaSecretKey string
	RecaptchaVerifyURL string
	RecaptchaDevBypass bool
	RecaptchaMinScore  float64
	// Contact rate limiting
	ContactRateLimit  int
	ContactRateWindow time.Duration
	RateLimitMaxKeys  int
	GlobalRateLimit   int
	// Outbound calls (captcha, email provider)
	OutboundTimeout time.Duration
	// Redis (optional shared rate-limit store)
	RedisURL      string
	RedisPassword string
	// S3 media
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	// Admin API
	AdminJWTSecret string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; missing file is not an error
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    resolveEnvironment(),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		FrontendURL:    strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		TrustedProxies: getEnvList("TRUSTED_PROXIES"),
		DBUrl:          getEnv("DATABASE_URL", ""),
		SiteOwnerName:  getEnv("SITE_OWNER_NAME", "Prateek"),
		// Email
		EmailProvider:   strings.ToLower(getEnv("EMAIL_PROVIDER", "sendgrid")),
		SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		SendGridBaseURL: strings.TrimRight(getEnv("SENDGRID_BASE_URL", "https://api.sendgrid.com"), "/"),
		SESRegion:       getEnv("SES_REGION", ""),
		EmailFrom:       getEnv("EMAIL_FROM", "noreply@prateekhakay.com"),
		EmailTo:         getEnv("EMAIL_TO", "prateek@edoflip.com"),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnv("SMTP_PORT", "1025"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		// reCAPTCHA
		RecaptchaSecretKey: getEnv("RECAPTCHA_SECRET_KEY", ""),
		RecaptchaVerifyURL: getEnv("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
		RecaptchaDevBypass: getEnvBool("RECAPTCHA_DEV_BYPASS", false),
		RecaptchaMinScore:  getEnvFloat("RECAPTCHA_MIN_SCORE", 0),
		// Rate limiting
		ContactRateLimit:  getEnvInt("CONTACT_RATE_LIMIT", 5),
		ContactRateWindow: getEnvDuration("CONTACT_RATE_WINDOW", time.Hour),
		RateLimitMaxKeys:  getEnvInt("RATE_LIMIT_MAX_KEYS", 10000),
		GlobalRateLimit:   getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		OutboundTimeout:   getEnvDuration("OUTBOUND_TIMEOUT", 10*time.Second),
		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// S3
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Content API will be disabled.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use the in-memory store.")
	}

	return cfg, nil
}

// IsProduction reports whether fail-closed production policies apply.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// EmailProviderConfigured reports whether credentials for the selected provider are present.
func (c *Config) EmailProviderConfigured() bool {
	switch c.EmailProvider {
	case "ses":
		return c.SESRegion != ""
	default:
		return c.SendGridAPIKey != ""
	}
}

// StorageConfigured reports whether S3 media settings are complete.
func (c *Config) StorageConfigured() bool {
	return c.AWSS3Bucket != "" && c.AWSAccessKeyID != "" && c.AWSSecretAccessKey != ""
}

// resolveEnvironment prefers APP_ENV, then NODE_ENV, then GIN_MODE=release.
func resolveEnvironment() string {
	for _, key := range []string{"APP_ENV", "NODE_ENV"} {
		switch strings.ToLower(os.Getenv(key)) {
		case "production", "prod":
			return EnvProduction
		case "development", "dev", "test":
			return EnvDevelopment
		}
	}
	if os.Getenv("GIN_MODE") == "release" {
		return EnvProduction
	}
	return EnvDevelopment
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s", "1h") or plain seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
