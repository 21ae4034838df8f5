package auth

import (
	"context"
	"errors"

	apperrors "awards-portal/internal/common/errors"
)

var ErrNoIdentity = errors.New("no authenticated caller")

type ctxKey struct{}

// WithTokenInfo stores the authenticated caller on the context.
func WithTokenInfo(ctx context.Context, info *TokenInfo) context.Context {
	return context.WithValue(ctx, ctxKey{}, info)
}

func TokenInfoFromContext(ctx context.Context) (*TokenInfo, bool) {
	info, ok := ctx.Value(ctxKey{}).(*TokenInfo)
	return info, ok && info != nil
}

// ContextIdentity resolves the current user from the request context.
type ContextIdentity struct{}

func (ContextIdentity) CurrentUser(ctx context.Context) (string, error) {
	info, ok := TokenInfoFromContext(ctx)
	if !ok || info.Identity() == "" {
		return "", apperrors.NewIdentityResolutionFailedError(ErrNoIdentity)
	}
	return info.Identity(), nil
}
