package kratos

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	kratosclient "github.com/ory/kratos-client-go"

	"github.com/Jcepedarey/emmita-backend/app/config"
)

const defaultHTTPTimeout = 10 * time.Second

// Client holds the Kratos public and admin API clients. Both are safe for
// concurrent use and shared across requests.
type Client struct {
	publicAPI *kratosclient.APIClient
	adminAPI  *kratosclient.APIClient
	publicURL string
	adminURL  string
	logger    *slog.Logger
}

// NewClient creates a new Kratos client. The public URL may be empty when
// credentials are verified locally; the admin URL is always required.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg.KratosPublicURL != "" && !isValidURL(cfg.KratosPublicURL) {
		return nil, fmt.Errorf("invalid Kratos public URL: %s", cfg.KratosPublicURL)
	}
	if !isValidURL(cfg.KratosAdminURL) {
		return nil, fmt.Errorf("invalid Kratos admin URL: %s", cfg.KratosAdminURL)
	}

	c := &Client{
		adminAPI:  newAPIClient(cfg.KratosAdminURL),
		publicURL: cfg.KratosPublicURL,
		adminURL:  cfg.KratosAdminURL,
		logger:    logger,
	}
	if cfg.KratosPublicURL != "" {
		c.publicAPI = newAPIClient(cfg.KratosPublicURL)
	}

	logger.Info("Kratos client initialized",
		"public_url", cfg.KratosPublicURL,
		"admin_url", cfg.KratosAdminURL)

	return c, nil
}

func newAPIClient(serverURL string) *kratosclient.APIClient {
	configuration := kratosclient.NewConfiguration()
	configuration.Servers = []kratosclient.ServerConfiguration{{URL: serverURL}}
	configuration.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	configuration.DefaultHeader = map[string]string{"Accept": "application/json"}
	return kratosclient.NewAPIClient(configuration)
}

// PublicAPI returns the public API client, or nil when no public URL is set.
func (c *Client) PublicAPI() *kratosclient.APIClient {
	return c.publicAPI
}

// AdminAPI returns the admin API client
func (c *Client) AdminAPI() *kratosclient.APIClient {
	return c.adminAPI
}

// HealthCheck checks if Kratos is reachable on every configured API.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if c.publicAPI != nil {
		if err := checkVersion(ctx, c.publicAPI); err != nil {
			return fmt.Errorf("kratos public API: %w", err)
		}
	}
	if err := checkVersion(ctx, c.adminAPI); err != nil {
		return fmt.Errorf("kratos admin API: %w", err)
	}
	return nil
}

func checkVersion(ctx context.Context, api *kratosclient.APIClient) error {
	_, response, err := api.MetadataAPI.GetVersion(ctx).Execute()
	if err != nil {
		return err
	}
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("returned status %d", response.StatusCode)
	}
	return nil
}

// isValidURL validates if a URL is properly formatted
func isValidURL(urlStr string) bool {
	if urlStr == "" {
		return false
	}
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") && parsedURL.Host != ""
}
