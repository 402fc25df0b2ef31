package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Jcepedarey/emmita-backend/app/port"
)

const readinessTimeout = 5 * time.Second

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	checks  map[string]port.HealthChecker
	service string
	version string
	started time.Time
	logger  *slog.Logger
}

// NewHealthHandler creates a health handler. Readiness runs every check in
// checks concurrently.
func NewHealthHandler(checks map[string]port.HealthChecker, service, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		service: service,
		version: version,
		started: time.Now(),
		logger:  logger,
	}
}

// Response types
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

type ReadinessResponse struct {
	Status    string                  `json:"status"`
	Timestamp time.Time               `json:"timestamp"`
	Service   string                  `json:"service"`
	Checks    map[string]HealthStatus `json:"checks"`
}

type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency"`
}

// Ping handles GET /api/test.
func (h *HealthHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "The backend is working"})
}

// HealthCheck performs a basic health check
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, h.healthResponse("healthy"))
}

// LivenessCheck performs a liveness check
func (h *HealthHandler) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, h.healthResponse("alive"))
}

// ReadinessCheck reports 503 when any dependency check fails.
func (h *HealthHandler) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	checks := h.runChecks(ctx)

	allHealthy := true
	for _, check := range checks {
		if check.Status != "healthy" {
			allHealthy = false
			break
		}
	}

	response := ReadinessResponse{
		Status:    getOverallStatus(allHealthy),
		Timestamp: time.Now(),
		Service:   h.service,
		Checks:    checks,
	}

	statusCode := http.StatusOK
	if !allHealthy {
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, response)
}

func (h *HealthHandler) runChecks(ctx context.Context) map[string]HealthStatus {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]HealthStatus, len(names))
	)
	for _, name := range names {
		wg.Add(1)
		go func(name string, checker port.HealthChecker) {
			defer wg.Done()

			start := time.Now()
			err := checker.HealthCheck(ctx)
			status := HealthStatus{Status: "healthy", Latency: time.Since(start).String()}
			if err != nil {
				// Dependency errors stay in the logs.
				h.logger.WarnContext(ctx, "readiness check failed", "check", name, "error", err)
				status.Status = "unhealthy"
				status.Message = "unavailable"
			}

			mu.Lock()
			results[name] = status
			mu.Unlock()
		}(name, h.checks[name])
	}
	wg.Wait()

	return results
}

func (h *HealthHandler) healthResponse(status string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Service:   h.service,
		Version:   h.version,
		Uptime:    time.Since(h.started).String(),
	}
}

// Helper functions
func getOverallStatus(allHealthy bool) string {
	if allHealthy {
		return "ready"
	}
	return "not_ready"
}
