package cache

import (
	"context"
	"errors"

	"github.com/fjod/go_cart/storefront-service/domain"
)

// CartCache keeps the last backend cart listing of each client
type CartCache interface {
	Get(ctx context.Context, client domain.Handle) ([]domain.CartItem, error)
	Set(ctx context.Context, client domain.Handle, items []domain.CartItem) error
	Delete(ctx context.Context, client domain.Handle) error
}

var ErrCacheMiss = errors.New("cache miss")
