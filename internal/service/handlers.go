package service

import (
	"context"
	"errors"
	"time"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/fjod/go_cart/storefront-service/internal/auth"
)

type CartClient interface {
	GetCartItems(ctx context.Context) ([]domain.CartItem, error)
}

type ProfileClient interface {
	CurrentUser(ctx context.Context) (*domain.UserProfile, error)
}

type StoredProfiles interface {
	CurrentUser(ctx context.Context, h domain.Handle) (*domain.UserProfile, error)
}

type OrderClient interface {
	CreateOrder(ctx context.Context, order *domain.OrderRequest) (*domain.OrderRecord, error)
}

type CartHandler struct {
	cartClient CartClient
	timeout    time.Duration
}

func NewCartHandler(cartClient CartClient, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cartClient: cartClient,
		timeout:    timeout,
	}
}

func (h *CartHandler) items(ctx context.Context) ([]domain.CartItem, error) {
	cartCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.cartClient.GetCartItems(cartCtx)
}

// ProfileHandler prefers the profile saved at login and asks the backend otherwise
type ProfileHandler struct {
	stored  StoredProfiles
	remote  ProfileClient
	timeout time.Duration
}

func NewProfileHandler(stored StoredProfiles, remote ProfileClient, timeout time.Duration) *ProfileHandler {
	return &ProfileHandler{
		stored:  stored,
		remote:  remote,
		timeout: timeout,
	}
}

func (h *ProfileHandler) current(ctx context.Context, client domain.Handle) (*domain.UserProfile, error) {
	if h.stored != nil {
		user, err := h.stored.CurrentUser(ctx, client)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, auth.ErrNotAuthenticated) {
			return nil, err
		}
	}
	if h.remote == nil {
		return nil, nil
	}

	profileCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.remote.CurrentUser(profileCtx)
}

type OrderHandler struct {
	orderClient OrderClient
	timeout     time.Duration
}

func NewOrderHandler(orderClient OrderClient, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		orderClient: orderClient,
		timeout:     timeout,
	}
}

func (h *OrderHandler) create(ctx context.Context, order *domain.OrderRequest) (*domain.OrderRecord, error) {
	orderCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.orderClient.CreateOrder(orderCtx, order)
}
