package auth

import (
	"context"

	"github.com/fjod/go_cart/storefront-service/domain"
)

type handleKey struct{}

// WithHandle attaches the client handle whose token backend calls should carry
func WithHandle(ctx context.Context, h domain.Handle) context.Context {
	return context.WithValue(ctx, handleKey{}, h)
}

func HandleFromContext(ctx context.Context) (domain.Handle, bool) {
	h, ok := ctx.Value(handleKey{}).(domain.Handle)
	return h, ok
}
