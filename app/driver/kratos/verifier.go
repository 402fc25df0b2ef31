package kratos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

// IdentityVerifier implements port.IdentityProvider with Kratos session
// tokens sent through the X-Session-Token header.
type IdentityVerifier struct {
	client *Client
	logger *slog.Logger
}

// NewIdentityVerifier creates a verifier over the client's public API.
func NewIdentityVerifier(client *Client, logger *slog.Logger) (*IdentityVerifier, error) {
	if client.PublicAPI() == nil {
		return nil, errors.New("kratos public URL is required for session verification")
	}
	return &IdentityVerifier{
		client: client,
		logger: logger.With("component", "kratos_verifier"),
	}, nil
}

// VerifyCredential resolves a session token to its identity. A 401, 403 or
// 404 from Kratos and inactive sessions are credential rejections; anything
// else means the provider could not answer.
func (v *IdentityVerifier) VerifyCredential(ctx context.Context, credential string) (*domain.Identity, error) {
	session, resp, err := v.client.PublicAPI().FrontendAPI.
		ToSession(ctx).
		XSessionToken(credential).
		Execute()
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
				return nil, domain.ErrCredentialRejected
			}
			return nil, fmt.Errorf("%w: kratos returned status %d", domain.ErrIdentityProviderUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrIdentityProviderUnavailable, err)
	}

	if session.Active != nil && !*session.Active {
		return nil, domain.ErrCredentialRejected
	}
	if session.Identity == nil || session.Identity.Id == "" {
		return nil, domain.ErrCredentialRejected
	}

	traits, _ := session.Identity.Traits.(map[string]interface{})
	email, _ := traits["email"].(string)

	return &domain.Identity{
		ID:        session.Identity.Id,
		Email:     email,
		ExpiresAt: session.ExpiresAt,
		Claims:    traits,
	}, nil
}
