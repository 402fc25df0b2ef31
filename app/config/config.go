package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Identity verifier backends.
const (
	VerifierKratos = "kratos"
	VerifierJWT    = "jwt"
)

const minJWTSecretLength = 32

var defaultCORSOrigins = []string{
	"https://swalquiler.com",
	"https://www.swalquiler.com",
	"https://emmita-frontend.vercel.app",
}

// Config holds all configuration for the API server
type Config struct {
	// Server
	Port        string `env:"PORT" default:"3001"`
	Host        string `env:"HOST" default:"0.0.0.0"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	Environment string `env:"GO_ENV" default:"development"`

	// Database
	DatabaseURL      string        `env:"DATABASE_URL"`
	DatabaseHost     string        `env:"DB_HOST" default:"localhost"`
	DatabasePort     string        `env:"DB_PORT" default:"5432"`
	DatabaseName     string        `env:"DB_NAME" default:"emmita"`
	DatabaseUser     string        `env:"DB_USER" default:"emmita"`
	DatabasePassword string        `env:"DB_PASSWORD"`
	DatabaseSSLMode  string        `env:"DB_SSL_MODE" default:"require"`
	DatabaseMaxConns int           `env:"DB_MAX_CONNS" default:"10"`
	DatabaseIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"5m"`

	// Identity
	IdentityVerifier string `env:"IDENTITY_VERIFIER" default:"kratos"`
	KratosPublicURL  string `env:"KRATOS_PUBLIC_URL"`
	KratosAdminURL   string `env:"KRATOS_ADMIN_URL" required:"true"`
	JWTSecret        string `env:"JWT_SECRET"`
	JWTAudience      string `env:"JWT_AUDIENCE" default:"authenticated"`

	// Authorization pipeline
	MinCredentialLength int           `env:"AUTH_MIN_CREDENTIAL_LENGTH" default:"20"`
	CollaboratorTimeout time.Duration `env:"AUTH_COLLABORATOR_TIMEOUT" default:"5s"`
	TrialPeriodDays     int           `env:"TRIAL_PERIOD_DAYS" default:"14"`
	IdentityCacheTTL    time.Duration `env:"IDENTITY_CACHE_TTL" default:"0s"`
	RedisURL            string        `env:"REDIS_URL"`

	// Assistant
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	OpenAIModel   string `env:"OPENAI_MODEL" default:"gpt-4o"`

	// Signup notifications
	SMTPHost         string   `env:"SMTP_HOST"`
	SMTPPort         int      `env:"SMTP_PORT" default:"587"`
	SMTPUsername     string   `env:"SMTP_USERNAME"`
	SMTPPassword     string   `env:"SMTP_PASSWORD"`
	SignupNotifyFrom string   `env:"SIGNUP_NOTIFY_FROM"`
	SignupNotifyTo   []string `env:"SIGNUP_NOTIFY_TO"`
	CaptchaSecret    string   `env:"CAPTCHA_SECRET"`
	CaptchaVerifyURL string   `env:"CAPTCHA_VERIFY_URL" default:"https://challenges.cloudflare.com/turnstile/v0/siteverify"`

	// HTTP
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`

	// Features
	EnableMetrics bool `env:"ENABLE_METRICS" default:"true"`

	// Tracing
	OTelEnabled     bool    `env:"OTEL_ENABLED" default:"false"`
	OTelEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"http://localhost:4318"`
	OTelServiceName string  `env:"OTEL_SERVICE_NAME" default:"emmita-backend"`
	OTelSampleRatio float64 `env:"OTEL_TRACE_SAMPLE_RATIO" default:"0.1"`
}

// LoadDotEnv loads a .env file when present. Variables already set in the
// environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{}
	var err error

	// Server configuration
	config.Port = getEnvOrDefault("PORT", "3001")
	config.Host = getEnvOrDefault("HOST", "0.0.0.0")
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")
	config.Environment = getEnvOrDefault("GO_ENV", "development")

	// Database configuration
	config.DatabaseURL = getEnvOrDefault("DATABASE_URL", "")
	config.DatabaseHost = getEnvOrDefault("DB_HOST", "localhost")
	config.DatabasePort = getEnvOrDefault("DB_PORT", "5432")
	config.DatabaseName = getEnvOrDefault("DB_NAME", "emmita")
	config.DatabaseUser = getEnvOrDefault("DB_USER", "emmita")
	config.DatabasePassword = getEnvOrDefault("DB_PASSWORD", "")
	config.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", "require")
	if config.DatabaseURL == "" && config.DatabasePassword == "" {
		return nil, fmt.Errorf("DATABASE_URL or DB_PASSWORD is required")
	}
	if config.DatabaseMaxConns, err = getIntEnv("DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}
	if config.DatabaseIdleTime, err = getDurationEnv("DB_MAX_CONN_IDLE_TIME", 5*time.Minute); err != nil {
		return nil, err
	}

	// Identity configuration
	config.IdentityVerifier = strings.ToLower(getEnvOrDefault("IDENTITY_VERIFIER", VerifierKratos))
	config.KratosPublicURL = getEnvOrDefault("KRATOS_PUBLIC_URL", "")
	config.KratosAdminURL = getEnvOrDefault("KRATOS_ADMIN_URL", "")
	if config.KratosAdminURL == "" {
		return nil, fmt.Errorf("KRATOS_ADMIN_URL is required")
	}
	config.JWTSecret = getEnvOrDefault("JWT_SECRET", "")
	config.JWTAudience = getEnvOrDefault("JWT_AUDIENCE", "authenticated")

	// Authorization pipeline
	if config.MinCredentialLength, err = getIntEnv("AUTH_MIN_CREDENTIAL_LENGTH", 20); err != nil {
		return nil, err
	}
	if config.CollaboratorTimeout, err = getDurationEnv("AUTH_COLLABORATOR_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if config.TrialPeriodDays, err = getIntEnv("TRIAL_PERIOD_DAYS", 14); err != nil {
		return nil, err
	}
	if config.IdentityCacheTTL, err = getDurationEnv("IDENTITY_CACHE_TTL", 0); err != nil {
		return nil, err
	}
	config.RedisURL = getEnvOrDefault("REDIS_URL", "")

	// Assistant
	config.OpenAIAPIKey = getEnvOrDefault("OPENAI_API_KEY", "")
	config.OpenAIBaseURL = strings.TrimRight(getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/")
	config.OpenAIModel = getEnvOrDefault("OPENAI_MODEL", "gpt-4o")

	// Signup notifications
	config.SMTPHost = getEnvOrDefault("SMTP_HOST", "")
	if config.SMTPPort, err = getIntEnv("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	config.SMTPUsername = getEnvOrDefault("SMTP_USERNAME", "")
	config.SMTPPassword = getEnvOrDefault("SMTP_PASSWORD", "")
	config.SignupNotifyFrom = getEnvOrDefault("SIGNUP_NOTIFY_FROM", config.SMTPUsername)
	config.SignupNotifyTo = getListEnv("SIGNUP_NOTIFY_TO", nil)
	if len(config.SignupNotifyTo) == 0 && config.SignupNotifyFrom != "" {
		config.SignupNotifyTo = []string{config.SignupNotifyFrom}
	}
	config.CaptchaSecret = getEnvOrDefault("CAPTCHA_SECRET", "")
	config.CaptchaVerifyURL = getEnvOrDefault("CAPTCHA_VERIFY_URL", "https://challenges.cloudflare.com/turnstile/v0/siteverify")

	// HTTP
	config.CORSAllowedOrigins = getListEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins)

	// Feature flags
	config.EnableMetrics = getBoolEnv("ENABLE_METRICS", true)

	// Tracing
	config.OTelEnabled = getBoolEnv("OTEL_ENABLED", false)
	config.OTelEndpoint = getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")
	config.OTelServiceName = getEnvOrDefault("OTEL_SERVICE_NAME", "emmita-backend")
	config.OTelSampleRatio = 0.1
	if v := getEnvOrDefault("OTEL_TRACE_SAMPLE_RATIO", ""); v != "" {
		if f, perr := strconv.ParseFloat(v, 64); perr == nil && f >= 0 && f <= 1 {
			config.OTelSampleRatio = f
		}
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate port
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	// Validate log level
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if c.DatabaseMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1: %d", c.DatabaseMaxConns)
	}

	switch c.IdentityVerifier {
	case VerifierKratos:
		if !isValidURL(c.KratosPublicURL) {
			return fmt.Errorf("KRATOS_PUBLIC_URL must be a valid URL when IDENTITY_VERIFIER=kratos")
		}
	case VerifierJWT:
		if len(c.JWTSecret) < minJWTSecretLength {
			return fmt.Errorf("JWT_SECRET must be at least %d characters when IDENTITY_VERIFIER=jwt", minJWTSecretLength)
		}
	default:
		return fmt.Errorf("invalid identity verifier: %s (must be one of: %s, %s)", c.IdentityVerifier, VerifierKratos, VerifierJWT)
	}
	if !isValidURL(c.KratosAdminURL) {
		return fmt.Errorf("invalid Kratos admin URL: %s", c.KratosAdminURL)
	}

	if c.MinCredentialLength < 1 {
		return fmt.Errorf("AUTH_MIN_CREDENTIAL_LENGTH must be positive, got: %d", c.MinCredentialLength)
	}
	if c.CollaboratorTimeout < 100*time.Millisecond {
		return fmt.Errorf("AUTH_COLLABORATOR_TIMEOUT must be at least 100ms, got: %v", c.CollaboratorTimeout)
	}
	if c.TrialPeriodDays < 1 {
		return fmt.Errorf("TRIAL_PERIOD_DAYS must be positive, got: %d", c.TrialPeriodDays)
	}
	if c.IdentityCacheTTL < 0 {
		return fmt.Errorf("IDENTITY_CACHE_TTL must not be negative, got: %v", c.IdentityCacheTTL)
	}

	if c.SMTPHost != "" && len(c.SignupNotifyTo) == 0 {
		return fmt.Errorf("SIGNUP_NOTIFY_TO is required when SMTP_HOST is set")
	}

	return nil
}

// DatabaseDSN returns DATABASE_URL or a DSN assembled from the DB_* settings.
func (c *Config) DatabaseDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DatabaseUser, c.DatabasePassword),
		Host:     c.DatabaseHost + ":" + c.DatabasePort,
		Path:     "/" + c.DatabaseName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DatabaseSSLMode),
	}
	return u.String()
}

// IsProduction reports whether GO_ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Helper functions

// getEnvOrDefault also honours KEY_FILE for secrets mounted as files.
func getEnvOrDefault(key, defaultValue string) string {
	if path := os.Getenv(key + "_FILE"); path != "" {
		if content, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func isValidURL(urlStr string) bool {
	if urlStr == "" {
		return false
	}
	parsed, err := url.Parse(urlStr)
	return err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
