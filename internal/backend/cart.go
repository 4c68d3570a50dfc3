package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fjod/go_cart/storefront-service/domain"
)

type addCartItemRequest struct {
	ItemID   int64 `json:"barang_id"`
	Quantity int32 `json:"jumlah"`
}

type updateCartItemRequest struct {
	Quantity int32 `json:"jumlah"`
}

// GetCartItems returns the authenticated user's cart
func (c *Client) GetCartItems(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := c.doJSON(ctx, http.MethodGet, "/keranjang", nil, &items); err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}

func (c *Client) AddCartItem(ctx context.Context, itemID int64, quantity int32) (*domain.CartItem, error) {
	var item domain.CartItem
	req := addCartItemRequest{ItemID: itemID, Quantity: quantity}
	if err := c.doJSON(ctx, http.MethodPost, "/keranjang", req, &item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	return &item, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, cartItemID int64, quantity int32) (*domain.CartItem, error) {
	var item domain.CartItem
	path := fmt.Sprintf("/keranjang/%d", cartItemID)
	if err := c.doJSON(ctx, http.MethodPut, path, updateCartItemRequest{Quantity: quantity}, &item); err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return &item, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, cartItemID int64) error {
	path := fmt.Sprintf("/keranjang/%d", cartItemID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}
