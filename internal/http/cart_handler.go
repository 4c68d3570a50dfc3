package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/fjod/go_cart/storefront-service/internal/auth"
	"github.com/fjod/go_cart/storefront-service/internal/cache"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartClient interface {
	GetCartItems(ctx context.Context) ([]domain.CartItem, error)
	AddCartItem(ctx context.Context, itemID int64, quantity int32) (*domain.CartItem, error)
	UpdateCartItem(ctx context.Context, cartItemID int64, quantity int32) (*domain.CartItem, error)
	RemoveCartItem(ctx context.Context, cartItemID int64) error
}

type CartHandler struct {
	errorHandler
	cartClient CartClient
	cache      cache.CartCache
	timeout    time.Duration
}

func NewCartHandler(cartClient CartClient, store *auth.Store, timeout time.Duration, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		errorHandler: errorHandler{auth: store, logger: logger},
		cartClient:   cartClient,
		timeout:      timeout,
	}
}

// WithCache serves cart listings from c until the client changes its cart
func (h *CartHandler) WithCache(c cache.CartCache) *CartHandler {
	h.cache = c
	return h
}

type AddItemRequestDTO struct {
	ItemID   int64 `json:"barang_id"`
	Quantity int32 `json:"jumlah"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int32 `json:"jumlah"`
}

// GET /api/v1/clients/{client_id}/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	client := clientFromRequest(r)
	if h.cache != nil {
		items, err := h.cache.Get(ctx, client)
		if err == nil {
			respondJSON(w, http.StatusOK, items)
			return
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			h.logger.Warn("cart cache read failed", zap.String("client", client.String()), zap.Error(err))
		}
	}

	items, err := h.cartClient.GetCartItems(ctx)
	if err != nil {
		h.handle(w, r, err)
		return
	}
	if items == nil {
		items = []domain.CartItem{}
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, client, items); err != nil {
			h.logger.Warn("cart cache write failed", zap.String("client", client.String()), zap.Error(err))
		}
	}
	respondJSON(w, http.StatusOK, items)
}

// POST /api/v1/clients/{client_id}/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ItemID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "barang_id must be positive")
		return
	}
	if req.Quantity <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "jumlah must be positive")
		return
	}

	item, err := h.cartClient.AddCartItem(ctx, req.ItemID, req.Quantity)
	if err != nil {
		h.handle(w, r, err)
		return
	}
	invalidateCart(ctx, h.cache, clientFromRequest(r), h.logger)
	respondJSON(w, http.StatusCreated, item)
}

// PUT /api/v1/clients/{client_id}/cart/items/{item_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	itemID, ok := pathID(w, r, "item_id")
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "jumlah must be positive")
		return
	}

	item, err := h.cartClient.UpdateCartItem(ctx, itemID, req.Quantity)
	if err != nil {
		h.handle(w, r, err)
		return
	}
	invalidateCart(ctx, h.cache, clientFromRequest(r), h.logger)
	respondJSON(w, http.StatusOK, item)
}

// DELETE /api/v1/clients/{client_id}/cart/items/{item_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	itemID, ok := pathID(w, r, "item_id")
	if !ok {
		return
	}

	if err := h.cartClient.RemoveCartItem(ctx, itemID); err != nil {
		h.handle(w, r, err)
		return
	}
	invalidateCart(ctx, h.cache, clientFromRequest(r), h.logger)
	w.WriteHeader(http.StatusNoContent)
}

func invalidateCart(ctx context.Context, c cache.CartCache, client domain.Handle, logger *zap.Logger) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, client); err != nil {
		logger.Warn("cart cache invalidation failed", zap.String("client", client.String()), zap.Error(err))
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_"+name, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
