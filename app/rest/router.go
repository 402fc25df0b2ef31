package rest

import (
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/Jcepedarey/emmita-backend/app/domain"
	"github.com/Jcepedarey/emmita-backend/app/port"
	"github.com/Jcepedarey/emmita-backend/app/rest/handlers"
	custommw "github.com/Jcepedarey/emmita-backend/app/rest/middleware"
	"github.com/Jcepedarey/emmita-backend/app/utils/validator"
)

const (
	bodyLimit       = "1M"
	rateLimitWindow = 15 * time.Minute
)

// Rate limit rules per route group.
var (
	generalRateLimit = custommw.RateLimitRule{
		Name: "general", Max: 100, Window: rateLimitWindow,
		Message: "Too many requests, try again later.",
	}
	signupRateLimit = custommw.RateLimitRule{
		Name: "signup", Max: 10, Window: rateLimitWindow,
		Message: "Too many attempts. Wait 15 minutes.",
	}
	chatRateLimit = custommw.RateLimitRule{
		Name: "chat", Max: 20, Window: rateLimitWindow,
		Message: "AI query limit reached. Wait a few minutes.",
	}
	employeeRateLimit = custommw.RateLimitRule{
		Name: "employees", Max: 10, Window: rateLimitWindow,
		Message: "Too many attempts to create users. Wait a few minutes.",
	}
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger *slog.Logger

	Authorizer      port.AuthorizationUsecase
	ChatUsecase     port.ChatUsecase
	EmployeeUsecase port.EmployeeUsecase
	SignupUsecase   port.SignupUsecase
	Policy          domain.LifecyclePolicy

	// HealthChecks are probed by /health/ready.
	HealthChecks map[string]port.HealthChecker

	ServiceName    string
	ServiceVersion string
	AllowedOrigins []string
	EnableMetrics  bool
	OTelEnabled    bool
	Debug          bool
}

// Router is the configured Echo instance plus the rate limiters it owns.
type Router struct {
	*echo.Echo
	limiters []*custommw.RateLimiter
}

// Stop releases the rate limiter cleanup goroutines.
func (r *Router) Stop() {
	for _, rl := range r.limiters {
		rl.Stop()
	}
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *Router {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = config.Debug
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(config.Logger)
	e.Validator = validator.New()
	// Deployed behind one reverse proxy; only private hops are trusted.
	e.IPExtractor = echo.ExtractIPFromXFFHeader()

	router := &Router{Echo: e}

	healthHandler := handlers.NewHealthHandler(config.HealthChecks, config.ServiceName, config.ServiceVersion, config.Logger)
	chatHandler := handlers.NewChatHandler(config.ChatUsecase, config.Logger)
	employeeHandler := handlers.NewEmployeeHandler(config.EmployeeUsecase, config.Logger)
	signupHandler := handlers.NewSignupHandler(config.SignupUsecase, config.Logger)
	meHandler := handlers.NewMeHandler(config.Policy)

	authMiddleware := custommw.NewAuthMiddleware(config.Authorizer, config.Logger)

	// Global middleware
	e.Use(middleware.Recover())
	if config.OTelEnabled {
		e.Use(otelecho.Middleware(config.ServiceName))
	}
	e.Use(requestLogger(config.Logger))
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(custommw.NewCORSMiddleware(custommw.DefaultCORSConfig(config.AllowedOrigins)))
	e.Use(custommw.SecurityHeaders(custommw.DefaultSecurityConfig()))

	// Health endpoints
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/health/ready", healthHandler.ReadinessCheck)
	e.GET("/health/live", healthHandler.LivenessCheck)

	if config.EnableMetrics {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	api := e.Group("/api", router.limit(generalRateLimit))
	api.GET("/test", healthHandler.Ping)
	api.GET("/me", meHandler.Me, authMiddleware.RequireAuth())
	api.POST("/ia/chat", chatHandler.Chat, router.limit(chatRateLimit), authMiddleware.RequireAuth())
	api.POST("/empleados/crear", employeeHandler.CreateEmployee, router.limit(employeeRateLimit), authMiddleware.RequireAdmin())
	api.POST("/registro/solicitar", signupHandler.Submit, router.limit(signupRateLimit))

	return router
}

func (r *Router) limit(rule custommw.RateLimitRule) echo.MiddlewareFunc {
	rl := custommw.NewRateLimiter(rule)
	r.limiters = append(r.limiters, rl)
	return rl.Middleware()
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/health")
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"remote_ip", v.RemoteIP,
			}
			if id, ok := c.Get(custommw.ContextKeyIdentityID).(string); ok {
				attrs = append(attrs, "identity_id", id)
			}
			if tenantID, ok := c.Get(custommw.ContextKeyTenantID).(string); ok {
				attrs = append(attrs, "tenant_id", tenantID)
			}

			ctx := c.Request().Context()
			if v.Error != nil {
				logger.ErrorContext(ctx, "request failed", append(attrs, "error", v.Error.Error())...)
				return nil
			}
			logger.InfoContext(ctx, "request completed", attrs...)
			return nil
		},
	})
}
