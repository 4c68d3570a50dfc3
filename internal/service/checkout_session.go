package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/fjod/go_cart/storefront-service/internal/store"
	"go.uber.org/zap"
)

func sessionKey(client domain.Handle) string {
	return client.Key(domain.StateKey)
}

// load returns ErrNoSession when nothing is stored or the stored value cannot be decoded
func (s *CheckoutServiceImpl) load(ctx context.Context, client domain.Handle) (*domain.CheckoutSession, error) {
	raw, err := s.store.Get(ctx, sessionKey(client))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout session: %w", err)
	}

	var session domain.CheckoutSession
	if err := json.Unmarshal(raw, &session); err != nil {
		s.logger.Warn("discarding unreadable checkout session",
			zap.String("client", client.String()),
			zap.Error(err))
		return nil, ErrNoSession
	}
	return &session, nil
}

func (s *CheckoutServiceImpl) save(ctx context.Context, client domain.Handle, session *domain.CheckoutSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}
	if err := s.store.Set(ctx, sessionKey(client), raw); err != nil {
		return fmt.Errorf("failed to save checkout session: %w", err)
	}
	return nil
}

// update loads the session, applies mutate and persists the result with a fresh UpdatedAt
func (s *CheckoutServiceImpl) update(
	ctx context.Context,
	client domain.Handle,
	mutate func(session *domain.CheckoutSession)) (*domain.CheckoutSession, error) {

	session, err := s.load(ctx, client)
	if err != nil {
		return nil, err
	}
	mutate(session)
	session.UpdatedAt = s.now().UTC()

	if err := s.save(ctx, client, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CheckoutServiceImpl) Session(ctx context.Context, client domain.Handle) (*domain.CheckoutSession, error) {
	return s.load(ctx, client)
}

// AdvanceStep sets the wizard step. Steps are not checked for order, the UI may jump back.
func (s *CheckoutServiceImpl) AdvanceStep(ctx context.Context, client domain.Handle, step int) (*domain.CheckoutSession, error) {
	if step < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStep, step)
	}
	return s.update(ctx, client, func(session *domain.CheckoutSession) {
		session.Step = step
	})
}

// SetAddress stores the address as given. Completeness is checked at submission.
func (s *CheckoutServiceImpl) SetAddress(ctx context.Context, client domain.Handle, addr domain.AddressRecord) (*domain.CheckoutSession, error) {
	return s.update(ctx, client, func(session *domain.CheckoutSession) {
		session.ShippingAddress = addr
	})
}

func (s *CheckoutServiceImpl) SetPaymentMethod(ctx context.Context, client domain.Handle, method domain.PaymentMethod) (*domain.CheckoutSession, error) {
	if method == nil {
		method = domain.CashOnDelivery{}
	}
	return s.update(ctx, client, func(session *domain.CheckoutSession) {
		session.Payment = domain.PaymentSelection{Method: method}
	})
}

func (s *CheckoutServiceImpl) SetNote(ctx context.Context, client domain.Handle, note string) (*domain.CheckoutSession, error) {
	return s.update(ctx, client, func(session *domain.CheckoutSession) {
		session.Note = note
	})
}

// Cancel discards the session. Cancelling without a session is not an error.
func (s *CheckoutServiceImpl) Cancel(ctx context.Context, client domain.Handle) error {
	if err := s.store.Delete(ctx, sessionKey(client)); err != nil {
		return fmt.Errorf("failed to delete checkout session: %w", err)
	}
	s.logger.Info("checkout session cancelled", zap.String("client", client.String()))
	return nil
}
