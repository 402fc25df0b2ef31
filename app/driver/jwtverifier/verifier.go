package jwtverifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

const clockLeeway = 30 * time.Second

// Verifier implements port.IdentityProvider for HS256 access tokens signed
// with a shared secret. Verification is local and never touches the network.
type Verifier struct {
	secret   []byte
	audience string
	parser   *jwt.Parser
	logger   *slog.Logger
}

// New creates a Verifier. An empty audience skips the aud check.
func New(secret, audience string, logger *slog.Logger) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockLeeway),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	return &Verifier{
		secret:   []byte(secret),
		audience: audience,
		parser:   jwt.NewParser(opts...),
		logger:   logger.With("component", "jwt_verifier"),
	}, nil
}

// VerifyCredential validates the token signature and claims. Every failure is
// a credential rejection since there is no remote party that can be down.
func (v *Verifier) VerifyCredential(ctx context.Context, credential string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(credential, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		v.logger.DebugContext(ctx, "token rejected", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrCredentialRejected, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrCredentialRejected)
	}
	email, _ := claims["email"].(string)

	identity := &domain.Identity{
		ID:     sub,
		Email:  email,
		Claims: map[string]interface{}(claims),
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt := exp.Time
		identity.ExpiresAt = &expiresAt
	}
	return identity, nil
}
