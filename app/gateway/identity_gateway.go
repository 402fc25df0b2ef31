package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/Jcepedarey/emmita-backend/app/domain"
	"github.com/Jcepedarey/emmita-backend/app/metrics"
	"github.com/Jcepedarey/emmita-backend/app/port"
)

// IdentityGateway implements port.IdentityProvider in front of the configured
// verifier, with an optional cache-through layer. Only successful
// verifications are cached; rejections always go back to the provider. An
// entry never outlives the session or token it was resolved from.
type IdentityGateway struct {
	provider port.IdentityProvider
	cache    port.IdentityCache
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewIdentityGateway creates a new IdentityGateway instance. A nil cache or a
// non-positive ttl disables caching.
func NewIdentityGateway(provider port.IdentityProvider, cache port.IdentityCache, ttl time.Duration, logger *slog.Logger) *IdentityGateway {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		cache = nil
	}
	return &IdentityGateway{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		logger:   logger.With("component", "identity_gateway"),
		now:      time.Now,
	}
}

// VerifyCredential resolves credential, consulting the cache first.
func (g *IdentityGateway) VerifyCredential(ctx context.Context, credential string) (*domain.Identity, error) {
	if g.cache == nil {
		return g.provider.VerifyCredential(ctx, credential)
	}

	key := credentialKey(credential)
	cached, ok, err := g.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.RecordCacheLookup("error")
		g.logger.WarnContext(ctx, "identity cache lookup failed", "error", err)
	case ok && cached != nil && !g.expired(cached):
		metrics.RecordCacheLookup("hit")
		return cached, nil
	default:
		metrics.RecordCacheLookup("miss")
	}

	identity, err := g.provider.VerifyCredential(ctx, credential)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, nil
	}

	ttl := g.entryTTL(identity)
	if ttl <= 0 {
		return identity, nil
	}
	if err := g.cache.Set(ctx, key, identity, ttl); err != nil {
		g.logger.WarnContext(ctx, "identity cache store failed", "error", err)
	}
	return identity, nil
}

// entryTTL caps the configured ttl at the identity's own expiry.
func (g *IdentityGateway) entryTTL(identity *domain.Identity) time.Duration {
	if identity.ExpiresAt == nil {
		return g.ttl
	}
	return min(g.ttl, identity.ExpiresAt.Sub(g.now()))
}

func (g *IdentityGateway) expired(identity *domain.Identity) bool {
	return identity.ExpiresAt != nil && !g.now().Before(*identity.ExpiresAt)
}

// credentialKey never stores the raw credential.
func credentialKey(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}
