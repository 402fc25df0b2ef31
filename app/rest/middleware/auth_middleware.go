package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/Jcepedarey/emmita-backend/app/domain"
	"github.com/Jcepedarey/emmita-backend/app/port"
	apperrors "github.com/Jcepedarey/emmita-backend/app/utils/errors"
)

// Echo context keys set by the auth middleware.
const (
	ContextKeyIdentityID = "identity_id"
	ContextKeyTenantID   = "tenant_id"
	ContextKeyRole       = "user_role"
)

// AuthMiddleware runs the authorization pipelines in front of protected
// routes.
type AuthMiddleware struct {
	authorizer port.AuthorizationUsecase
	logger     *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authorizer port.AuthorizationUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authorizer: authorizer,
		logger:     logger,
	}
}

// RequireAuth runs the standard pipeline and binds the RequestContext to the
// request context.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			rc, err := m.authorizer.Authorize(req.Context(), req.Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return apperrors.FromRejection(err)
			}

			c.SetRequest(req.WithContext(domain.WithRequestContext(req.Context(), rc)))
			setPrincipal(c, rc.Identity, rc.Profile, rc.Tenant)

			return next(c)
		}
	}
}

// RequireAdmin runs the admin pipeline and binds the AdminContext to the
// request context.
func (m *AuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			ac, err := m.authorizer.AuthorizeAdmin(req.Context(), req.Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return apperrors.FromRejection(err)
			}

			c.SetRequest(req.WithContext(domain.WithAdminContext(req.Context(), ac)))
			setPrincipal(c, ac.Identity, ac.Profile, ac.Tenant)

			return next(c)
		}
	}
}

// setPrincipal exposes the principal to the request logger.
func setPrincipal(c echo.Context, identity *domain.Identity, profile *domain.Profile, tenant *domain.Tenant) {
	c.Set(ContextKeyIdentityID, identity.ID)
	c.Set(ContextKeyRole, string(profile.Role))
	if tenant != nil {
		c.Set(ContextKeyTenantID, tenant.ID.String())
	}
}
