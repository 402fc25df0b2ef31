package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

const (
	completionsPath = "/chat/completions"
	requestTimeout  = 60 * time.Second
)

// Client implements port.CompletionClient over the OpenAI chat completions
// endpoint.
type Client struct {
	httpClient *resty.Client
	logger     *slog.Logger
}

// NewClient creates a completion client for baseURL authenticated with apiKey.
func NewClient(baseURL, apiKey string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(requestTimeout).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		logger:     logger.With("component", "openai_client"),
	}, nil
}

// CreateChatCompletion posts the request and returns the upstream JSON
// unchanged. Upstream error bodies are logged, never returned.
func (c *Client) CreateChatCompletion(ctx context.Context, req *domain.CompletionRequest) (json.RawMessage, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		Post(completionsPath)
	if err != nil {
		c.logger.ErrorContext(ctx, "completion request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrCompletionFailed, err)
	}

	if resp.IsError() {
		c.logger.ErrorContext(ctx, "completion upstream returned error",
			"status_code", resp.StatusCode(),
			"body", truncate(resp.String(), 512))
		return nil, fmt.Errorf("%w: status %d", domain.ErrCompletionFailed, resp.StatusCode())
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: response is not JSON", domain.ErrCompletionFailed)
	}

	c.logger.DebugContext(ctx, "completion received", "model", req.Model, "bytes", len(body))
	return json.RawMessage(body), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// UnconfiguredClient stands in when no API key is set. Every call fails as an
// upstream error so the route keeps its normal failure shape.
type UnconfiguredClient struct {
	logger *slog.Logger
}

// NewUnconfiguredClient creates a client that always fails.
func NewUnconfiguredClient(logger *slog.Logger) *UnconfiguredClient {
	return &UnconfiguredClient{logger: logger.With("component", "openai_client")}
}

// CreateChatCompletion always returns domain.ErrCompletionFailed.
func (c *UnconfiguredClient) CreateChatCompletion(ctx context.Context, _ *domain.CompletionRequest) (json.RawMessage, error) {
	c.logger.WarnContext(ctx, "completion requested but OPENAI_API_KEY is not set")
	return nil, fmt.Errorf("%w: api key not configured", domain.ErrCompletionFailed)
}
