package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jcepedarey/emmita-backend/app/config"
	"github.com/Jcepedarey/emmita-backend/app/domain"
	"github.com/Jcepedarey/emmita-backend/app/driver/cache"
	"github.com/Jcepedarey/emmita-backend/app/driver/captcha"
	"github.com/Jcepedarey/emmita-backend/app/driver/jwtverifier"
	"github.com/Jcepedarey/emmita-backend/app/driver/kratos"
	"github.com/Jcepedarey/emmita-backend/app/driver/mailer"
	"github.com/Jcepedarey/emmita-backend/app/driver/openai"
	"github.com/Jcepedarey/emmita-backend/app/driver/postgres"
	"github.com/Jcepedarey/emmita-backend/app/driver/rediscache"
	"github.com/Jcepedarey/emmita-backend/app/gateway"
	"github.com/Jcepedarey/emmita-backend/app/port"
	"github.com/Jcepedarey/emmita-backend/app/rest"
	"github.com/Jcepedarey/emmita-backend/app/usecase"
	"github.com/Jcepedarey/emmita-backend/app/utils/logger"
)

const serviceName = "emmita-backend"

// Container holds all dependencies for the application
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Version string

	// Drivers
	DB           *postgres.DB
	KratosClient *kratos.Client
	RedisCache   *rediscache.IdentityCache
	MemoryCache  *cache.IdentityCache

	// Usecases
	AuthorizationUsecase *usecase.AuthorizationUsecase
	ChatUsecase          port.ChatUsecase
	EmployeeUsecase      port.EmployeeUsecase
	SignupUsecase        port.SignupUsecase

	healthChecks map[string]port.HealthChecker
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, log *slog.Logger, version string) (*Container, error) {
	c := &Container{
		Config:       cfg,
		Logger:       log,
		Version:      version,
		healthChecks: make(map[string]port.HealthChecker),
	}

	var err error
	c.DB, err = postgres.NewConnection(ctx, cfg, logger.WithComponent(log, "postgres"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.healthChecks["database"] = c.DB

	c.KratosClient, err = kratos.NewClient(cfg, logger.WithComponent(log, "kratos"))
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize Kratos client: %w", err)
	}
	c.healthChecks["identity_provider"] = c.KratosClient

	identities, err := c.identityProvider()
	if err != nil {
		c.Close()
		return nil, err
	}

	// Repositories
	profiles := postgres.NewProfileRepository(c.DB.Pool(), log)
	tenants := postgres.NewTenantRepository(c.DB.Pool(), log)
	signups := postgres.NewSignupRepository(c.DB.Pool(), log)

	// Usecases
	c.AuthorizationUsecase = usecase.NewAuthorizationUsecase(identities, profiles, tenants, usecase.AuthorizationOptions{
		MinCredentialLength: cfg.MinCredentialLength,
		CollaboratorTimeout: cfg.CollaboratorTimeout,
		Policy:              domain.NewLifecyclePolicy(cfg.TrialPeriodDays),
	}, logger.WithComponent(log, "authorization"))

	c.ChatUsecase = usecase.NewChatUsecase(c.completionClient(), cfg.OpenAIModel, logger.WithComponent(log, "chat"))

	c.EmployeeUsecase = usecase.NewEmployeeUsecase(
		kratos.NewIdentityAdmin(c.KratosClient, log),
		profiles,
		logger.WithComponent(log, "employees"))

	m, err := c.mailer()
	if err != nil {
		c.Close()
		return nil, err
	}
	c.SignupUsecase = usecase.NewSignupUsecase(signups, m, c.captchaVerifier(), cfg.SignupNotifyTo, logger.WithComponent(log, "signup"))

	log.Info("Container initialized",
		"identity_verifier", cfg.IdentityVerifier,
		"identity_cache_ttl", cfg.IdentityCacheTTL,
		"redis_cache", c.RedisCache != nil)

	return c, nil
}

// identityProvider builds the configured verifier behind the caching gateway.
func (c *Container) identityProvider() (port.IdentityProvider, error) {
	cfg := c.Config

	var verifier port.IdentityProvider
	switch cfg.IdentityVerifier {
	case config.VerifierJWT:
		v, err := jwtverifier.New(cfg.JWTSecret, cfg.JWTAudience, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT verifier: %w", err)
		}
		verifier = v
	default:
		v, err := kratos.NewIdentityVerifier(c.KratosClient, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Kratos verifier: %w", err)
		}
		verifier = v
	}

	if cfg.IdentityCacheTTL <= 0 {
		return verifier, nil
	}

	var identityCache port.IdentityCache
	if cfg.RedisURL != "" {
		rc, err := rediscache.NewIdentityCacheWithURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis cache: %w", err)
		}
		c.RedisCache = rc
		c.healthChecks["redis"] = rc
		identityCache = rc
	} else {
		c.MemoryCache = cache.NewIdentityCache()
		identityCache = c.MemoryCache
	}

	return gateway.NewIdentityGateway(verifier, identityCache, cfg.IdentityCacheTTL, c.Logger), nil
}

func (c *Container) completionClient() port.CompletionClient {
	client, err := openai.NewClient(c.Config.OpenAIBaseURL, c.Config.OpenAIAPIKey, c.Logger)
	if err != nil {
		c.Logger.Warn("Assistant disabled", "reason", err)
		return openai.NewUnconfiguredClient(c.Logger)
	}
	return client
}

func (c *Container) mailer() (port.Mailer, error) {
	cfg := c.Config
	if cfg.SMTPHost == "" {
		c.Logger.Warn("SMTP_HOST not set, signup notifications are only logged")
		return mailer.NewLogMailer(c.Logger), nil
	}
	m, err := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SignupNotifyFrom,
	}, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}
	return m, nil
}

// captchaVerifier returns nil when no secret is configured, which skips the
// check.
func (c *Container) captchaVerifier() port.CaptchaVerifier {
	if c.Config.CaptchaSecret == "" {
		c.Logger.Warn("CAPTCHA_SECRET not set, signup captcha is not checked")
		return nil
	}
	return captcha.NewTurnstileVerifier(c.Config.CaptchaVerifyURL, c.Config.CaptchaSecret, c.Logger)
}

// CreateRouter creates and returns a fully configured router
func (c *Container) CreateRouter() *rest.Router {
	return rest.NewRouter(rest.RouterConfig{
		Logger:          logger.WithComponent(c.Logger, "http"),
		Authorizer:      c.AuthorizationUsecase,
		ChatUsecase:     c.ChatUsecase,
		EmployeeUsecase: c.EmployeeUsecase,
		SignupUsecase:   c.SignupUsecase,
		Policy:          c.AuthorizationUsecase.Policy(),
		HealthChecks:    c.healthChecks,
		ServiceName:     serviceName,
		ServiceVersion:  c.Version,
		AllowedOrigins:  c.Config.CORSAllowedOrigins,
		EnableMetrics:   c.Config.EnableMetrics,
		OTelEnabled:     c.Config.OTelEnabled,
		Debug:           c.Config.LogLevel == "debug",
	})
}

// Close closes all resources
func (c *Container) Close() {
	if c.MemoryCache != nil {
		c.MemoryCache.Stop()
	}
	if c.RedisCache != nil {
		if err := c.RedisCache.Close(); err != nil {
			c.Logger.Warn("Failed to close Redis cache", "error", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	c.Logger.Info("Container closed")
}
