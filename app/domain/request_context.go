package domain

import "context"

// RequestContext is bound to a request that passed the standard pipeline.
// Handlers treat it as read-only.
type RequestContext struct {
	Identity *Identity
	Profile  *Profile
	Tenant   *Tenant
}

// AdminContext is bound to a request that passed the admin pipeline. Profile
// always carries the admin role.
type AdminContext struct {
	Identity *Identity
	Profile  *Profile
	Tenant   *Tenant
}

type requestContextKey struct{}

type adminContextKey struct{}

// WithRequestContext attaches rc to ctx.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// RequestContextFrom returns the RequestContext stored in ctx.
func RequestContextFrom(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey{}).(*RequestContext)
	return rc, ok && rc != nil
}

// WithAdminContext attaches ac to ctx.
func WithAdminContext(ctx context.Context, ac *AdminContext) context.Context {
	return context.WithValue(ctx, adminContextKey{}, ac)
}

// AdminContextFrom returns the AdminContext stored in ctx.
func AdminContextFrom(ctx context.Context) (*AdminContext, bool) {
	ac, ok := ctx.Value(adminContextKey{}).(*AdminContext)
	return ac, ok && ac != nil
}
