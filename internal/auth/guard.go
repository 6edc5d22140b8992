package auth

import (
	"context"

	"github.com/openshelf/openshelf/internal/domain"
)

type identityKey struct{}

// WithIdentity binds the authenticated user id to the request context.
func WithIdentity(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, identityKey{}, userID)
}

// CurrentUser resolves the caller's identity from the request context,
// Unauthorized when absent. Every mutation calls this before touching state.
func CurrentUser(ctx context.Context) (int64, error) {
	uid, ok := ctx.Value(identityKey{}).(int64)
	if !ok || uid == 0 {
		return 0, domain.Unauthorized("authentication required")
	}
	return uid, nil
}

// OwnerLookup resolves the owning user of a guarded resource.
type OwnerLookup func(ctx context.Context) (int64, error)

// RequireOwner composes an ownership check after the identity check:
// the caller must be authenticated and must own the resource the lookup
// points at. Lookup failures pass through untouched (e.g. NotFound).
func RequireOwner(ctx context.Context, lookup OwnerLookup) (int64, error) {
	uid, err := CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	owner, err := lookup(ctx)
	if err != nil {
		return 0, err
	}
	if owner != uid {
		return 0, domain.Forbidden("you do not own this resource")
	}
	return uid, nil
}
