package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/fjod/go_cart/storefront-service/internal/auth"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// Submit validates the session, sends it to the backend as a new order and clears it on success.
// On any failure the session is left as it was so the client can fix it and retry.
func (s *CheckoutServiceImpl) Submit(ctx context.Context, client domain.Handle, proof *domain.ProofArtifact) (*domain.OrderRecord, error) {
	session, err := s.load(ctx, client)
	if err != nil {
		return nil, err
	}

	if err := validateForSubmit(session, proof); err != nil {
		return nil, err
	}

	order := s.buildOrderRequest(session, proof)
	ctx = auth.WithHandle(ctx, client)

	s.logger.Info("submitting checkout",
		zap.String("client", client.String()),
		zap.String("checkout_id", session.ID),
		zap.String("payment_method", order.PaymentMethod),
		zap.String("total", order.TotalPrice))

	record, err := s.orders.create(ctx, order)
	if err != nil {
		s.logger.Warn("order submission failed",
			zap.String("checkout_id", session.ID),
			zap.Error(err))
		return nil, &NetworkError{Op: "create order", Err: err}
	}

	// the order exists at this point, a stale session must not turn into an error the client retries on
	if err := s.store.Delete(ctx, sessionKey(client)); err != nil {
		s.logger.Error("failed to clear submitted checkout session",
			zap.String("checkout_id", session.ID),
			zap.Error(err))
	}

	s.publish(ctx, client, session, record, order)

	s.logger.Info("checkout submitted",
		zap.String("checkout_id", session.ID),
		zap.Int64("order_id", record.ID),
		zap.String("kode_transaksi", record.Code))
	return record, nil
}

func validateForSubmit(session *domain.CheckoutSession, proof *domain.ProofArtifact) error {
	if missing := session.ShippingAddress.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidAddress, strings.Join(missing, ", "))
	}

	method := session.PaymentMethod()
	switch m := method.(type) {
	case domain.BankTransfer:
		if m.Admin == nil || m.User == nil {
			return fmt.Errorf("%w: bank transfer needs both admin and user bank accounts", ErrInvalidPayment)
		}
	case domain.EWalletTransfer:
		if m.Admin == nil || m.User == nil {
			return fmt.Errorf("%w: e-wallet transfer needs both admin and user accounts", ErrInvalidPayment)
		}
	}

	if domain.RequiresProof(method) && !proof.Present() {
		return ErrProofRequired
	}
	if !domain.RequiresProof(method) && proof.Present() {
		return ErrProofNotAllowed
	}
	return nil
}

func (s *CheckoutServiceImpl) buildOrderRequest(session *domain.CheckoutSession, proof *domain.ProofArtifact) *domain.OrderRequest {
	method := session.PaymentMethod()
	now := s.now().UTC()

	total := domain.ComputeTotal(session.CartSnapshot)
	if !total.Equal(session.ComputedTotal) {
		s.logger.Warn("stored checkout total differs from cart snapshot, sending recomputed total",
			zap.String("checkout_id", session.ID),
			zap.String("stored", session.ComputedTotal.String()),
			zap.String("recomputed", total.String()))
	}

	order := &domain.OrderRequest{
		OrderDate:      now.Format(domain.DateLayout),
		TotalPrice:     total.String(),
		PaymentStatus:  domain.PaymentStatusFor(method),
		ShippingStatus: domain.ShippingStatusShipped,
		DeliveryType:   domain.DeliveryTypeShipped,
		PaymentMethod:  domain.MethodString(method),
		DueDate:        now.AddDate(0, 0, domain.PaymentDueDays).Format(domain.DateLayout),
		Address:        session.ShippingAddress.Address,
		PostalCode:     session.ShippingAddress.PostalCode,
		Note:           session.Note,
		IdempotencyKey: session.IdempotencyKey,
	}
	if proof.Present() {
		order.Proof = proof
	}
	return order
}

func (s *CheckoutServiceImpl) publish(
	ctx context.Context,
	client domain.Handle,
	session *domain.CheckoutSession,
	record *domain.OrderRecord,
	order *domain.OrderRequest) {

	if s.publisher == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := domain.CheckoutSubmitted{
		CheckoutID:    session.ID,
		Client:        client,
		OrderID:       record.ID,
		OrderCode:     record.Code,
		TotalAmount:   order.TotalPrice,
		PaymentMethod: order.PaymentMethod,
		SubmittedAt:   s.now().UTC(),
	}
	if err := s.publisher.PublishSubmitted(pubCtx, event); err != nil {
		s.logger.Warn("failed to publish checkout event",
			zap.String("checkout_id", session.ID),
			zap.Error(err))
	}
}
