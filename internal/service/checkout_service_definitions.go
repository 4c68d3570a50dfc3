package service

import (
	"context"
	"time"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/fjod/go_cart/storefront-service/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutService interface {
	Initialize(ctx context.Context, client domain.Handle, lines []domain.CartLine) (*domain.CheckoutSession, error)
	InitializeFromCart(ctx context.Context, client domain.Handle) (*domain.CheckoutSession, error)
	Session(ctx context.Context, client domain.Handle) (*domain.CheckoutSession, error)
	AdvanceStep(ctx context.Context, client domain.Handle, step int) (*domain.CheckoutSession, error)
	SetAddress(ctx context.Context, client domain.Handle, addr domain.AddressRecord) (*domain.CheckoutSession, error)
	SetPaymentMethod(ctx context.Context, client domain.Handle, method domain.PaymentMethod) (*domain.CheckoutSession, error)
	SetNote(ctx context.Context, client domain.Handle, note string) (*domain.CheckoutSession, error)
	Cancel(ctx context.Context, client domain.Handle) error
	Submit(ctx context.Context, client domain.Handle, proof *domain.ProofArtifact) (*domain.OrderRecord, error)
}

// EventPublisher announces submitted checkouts. Failures never fail a submission.
type EventPublisher interface {
	PublishSubmitted(ctx context.Context, event domain.CheckoutSubmitted) error
}

type CheckoutServiceImpl struct {
	store     store.Store
	cart      *CartHandler
	profile   *ProfileHandler
	orders    *OrderHandler
	publisher EventPublisher
	logger    *zap.Logger

	now   func() time.Time
	newID func() string
}

type Option func(*CheckoutServiceImpl)

func WithClock(now func() time.Time) Option {
	return func(s *CheckoutServiceImpl) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *CheckoutServiceImpl) { s.newID = newID }
}

func WithPublisher(p EventPublisher) Option {
	return func(s *CheckoutServiceImpl) { s.publisher = p }
}

func NewCheckoutService(
	st store.Store,
	cart *CartHandler,
	profile *ProfileHandler,
	orders *OrderHandler,
	logger *zap.Logger,
	opts ...Option,
) *CheckoutServiceImpl {
	s := &CheckoutServiceImpl{
		store:   st,
		cart:    cart,
		profile: profile,
		orders:  orders,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ CheckoutService = (*CheckoutServiceImpl)(nil)
