package service

import (
	"context"
	"fmt"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/fjod/go_cart/storefront-service/internal/auth"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Initialize starts a new checkout from the given lines, replacing any session the client already has.
// The shipping address is pre-filled from the client's profile.
func (s *CheckoutServiceImpl) Initialize(ctx context.Context, client domain.Handle, lines []domain.CartLine) (*domain.CheckoutSession, error) {
	if err := checkLines(lines); err != nil {
		return nil, err
	}
	ctx = auth.WithHandle(ctx, client)

	var profile *domain.UserProfile
	if s.profile != nil {
		p, err := s.profile.current(ctx, client)
		if err != nil {
			return nil, &NetworkError{Op: "fetch profile", Err: err}
		}
		profile = p
	}
	return s.initialize(ctx, client, lines, profile)
}

// InitializeFromCart snapshots the client's backend cart and starts a checkout from it.
// Backend calls carry the client's own token whatever handle ctx holds.
func (s *CheckoutServiceImpl) InitializeFromCart(ctx context.Context, client domain.Handle) (*domain.CheckoutSession, error) {
	if s.cart == nil {
		return nil, fmt.Errorf("cart client is not configured")
	}
	ctx = auth.WithHandle(ctx, client)
	items, err := s.cart.items(ctx)
	if err != nil {
		return nil, &NetworkError{Op: "fetch cart", Err: err}
	}

	lines, err := buildCartLines(items)
	if err != nil {
		return nil, err
	}

	// cart rows embed their owner, which saves a profile round trip
	for _, item := range items {
		if item.User != nil {
			return s.initialize(ctx, client, lines, item.User)
		}
	}
	return s.Initialize(ctx, client, lines)
}

func (s *CheckoutServiceImpl) initialize(
	ctx context.Context,
	client domain.Handle,
	lines []domain.CartLine,
	profile *domain.UserProfile) (*domain.CheckoutSession, error) {

	if err := checkLines(lines); err != nil {
		return nil, err
	}
	normalized, _ := domain.NormalizeLines(lines)

	now := s.now().UTC()
	session := &domain.CheckoutSession{
		ID:              s.newID(),
		IdempotencyKey:  s.newID(),
		Step:            1,
		CartSnapshot:    normalized,
		ShippingAddress: domain.AddressFromProfile(profile),
		Payment:         domain.PaymentSelection{Method: domain.CashOnDelivery{}},
		ComputedTotal:   domain.ComputeTotal(normalized),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.save(ctx, client, session); err != nil {
		return nil, err
	}

	s.logger.Info("checkout session initialized",
		zap.String("client", client.String()),
		zap.String("checkout_id", session.ID),
		zap.Int("lines", len(normalized)),
		zap.String("total", session.ComputedTotal.String()))
	return session, nil
}

// buildCartLines captures backend cart rows with the price they carry right now
func buildCartLines(items []domain.CartItem) ([]domain.CartLine, error) {
	lines := make([]domain.CartLine, 0, len(items))
	for _, item := range items {
		price, err := decimal.NewFromString(item.Item.SellPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: price %q of product %d: %w", ErrInvalidCartLine, item.Item.SellPrice, item.ItemID, err)
		}
		productID := item.ItemID
		if productID == 0 {
			productID = item.Item.ID
		}
		lines = append(lines, domain.CartLine{
			CartItemID:  item.ID,
			ProductID:   productID,
			ProductName: item.Item.Name,
			UnitPrice:   price,
			Quantity:    item.Quantity,
		})
	}
	return lines, nil
}

func checkLines(lines []domain.CartLine) error {
	normalized, err := domain.NormalizeLines(lines)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCartLine, err)
	}
	if len(normalized) == 0 {
		return ErrEmptyCart
	}
	return nil
}
