package auth

import (
	"context"

	"github.com/iho/ubiledger/internal/domain"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// WithClaims stores verified claims in the request context.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext extracts verified claims from the context.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}

// ContextAuthorizer implements usecase.Authorizer against the claims the
// auth middleware stored in the context. A caller holds authority for its
// own account and for the accounts its token sponsors.
type ContextAuthorizer struct{}

// NewContextAuthorizer creates a new ContextAuthorizer.
func NewContextAuthorizer() *ContextAuthorizer {
	return &ContextAuthorizer{}
}

// RequireAuthorized returns ErrNotAuthorized unless the caller holds
// authority for account.
func (a *ContextAuthorizer) RequireAuthorized(ctx context.Context, account string) error {
	if a.HasAuthority(ctx, account) {
		return nil
	}

	return domain.ErrNotAuthorized
}

// HasAuthority reports whether the caller holds authority for account.
func (a *ContextAuthorizer) HasAuthority(ctx context.Context, account string) bool {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return false
	}

	if claims.Account == account {
		return true
	}

	for _, s := range claims.Sponsored {
		if s == account {
			return true
		}
	}

	return false
}

// AllowAllAuthorizer grants every request authority for every account.
// Used when authentication is disabled, for local development only.
type AllowAllAuthorizer struct{}

// NewAllowAllAuthorizer creates a new AllowAllAuthorizer.
func NewAllowAllAuthorizer() *AllowAllAuthorizer {
	return &AllowAllAuthorizer{}
}

func (AllowAllAuthorizer) RequireAuthorized(context.Context, string) error { return nil }

func (AllowAllAuthorizer) HasAuthority(context.Context, string) bool { return true }
