package captcha

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

const requestTimeout = 10 * time.Second

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
	Hostname   string   `json:"hostname"`
}

// TurnstileVerifier implements port.CaptchaVerifier against a siteverify
// endpoint (Cloudflare Turnstile, or any reCAPTCHA compatible service).
type TurnstileVerifier struct {
	httpClient *resty.Client
	verifyURL  string
	secret     string
	logger     *slog.Logger
}

// NewTurnstileVerifier creates a verifier for the given siteverify URL.
func NewTurnstileVerifier(verifyURL, secret string, logger *slog.Logger) *TurnstileVerifier {
	return &TurnstileVerifier{
		httpClient: resty.New().
			SetTimeout(requestTimeout).
			SetRetryCount(2).
			SetRetryWaitTime(200*time.Millisecond).
			SetHeader("Accept", "application/json"),
		verifyURL: verifyURL,
		secret:    secret,
		logger:    logger.With("component", "captcha_verifier"),
	}
}

// Verify checks token with the provider. An empty token is rejected without
// a round trip.
func (v *TurnstileVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	if token == "" {
		return domain.ErrCaptchaRejected
	}

	form := map[string]string{
		"secret":   v.secret,
		"response": token,
	}
	if remoteIP != "" {
		form["remoteip"] = remoteIP
	}

	var result siteVerifyResponse
	resp, err := v.httpClient.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&result).
		Post(v.verifyURL)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCaptchaUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d", domain.ErrCaptchaUnavailable, resp.StatusCode())
	}

	if !result.Success {
		v.logger.InfoContext(ctx, "captcha rejected", "error_codes", result.ErrorCodes)
		return domain.ErrCaptchaRejected
	}
	return nil
}
