package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/fjod/go_cart/storefront-service/internal/auth"
	"github.com/fjod/go_cart/storefront-service/internal/store"
	"go.uber.org/zap"
)

// MockCartClient implements CartClient for testing
type MockCartClient struct {
	Items []domain.CartItem
	Err   error
	Calls int
}

func (m *MockCartClient) GetCartItems(_ context.Context) ([]domain.CartItem, error) {
	m.Calls++
	return m.Items, m.Err
}

// MockProfileClient implements ProfileClient for testing
type MockProfileClient struct {
	User  *domain.UserProfile
	Err   error
	Calls int
}

func (m *MockProfileClient) CurrentUser(_ context.Context) (*domain.UserProfile, error) {
	m.Calls++
	return m.User, m.Err
}

// MockStoredProfiles implements StoredProfiles for testing
type MockStoredProfiles struct {
	Users map[domain.Handle]*domain.UserProfile
}

func (m *MockStoredProfiles) CurrentUser(_ context.Context, h domain.Handle) (*domain.UserProfile, error) {
	if u, ok := m.Users[h]; ok {
		return u, nil
	}
	return nil, auth.ErrNotAuthenticated
}

// MockOrderClient implements OrderClient and captures every request it receives
type MockOrderClient struct {
	Record   *domain.OrderRecord
	Err      error
	Requests []*domain.OrderRequest
}

func (m *MockOrderClient) CreateOrder(_ context.Context, order *domain.OrderRequest) (*domain.OrderRecord, error) {
	m.Requests = append(m.Requests, order)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Record, nil
}

// MockPublisher implements EventPublisher for testing
type MockPublisher struct {
	Events []domain.CheckoutSubmitted
	Err    error
}

func (m *MockPublisher) PublishSubmitted(_ context.Context, event domain.CheckoutSubmitted) error {
	m.Events = append(m.Events, event)
	return m.Err
}

// FailingStore wraps a store and fails the selected operations
type FailingStore struct {
	store.Store
	SetErr    error
	DeleteErr error
}

func (f *FailingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	return f.Store.Set(ctx, key, value)
}

func (f *FailingStore) Delete(ctx context.Context, key string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	return f.Store.Delete(ctx, key)
}

var errBackendDown = errors.New("backend down")

var fixedNow = time.Date(2024, time.March, 28, 10, 30, 0, 0, time.UTC)

type testDeps struct {
	store     *store.MemoryStore
	cart      *MockCartClient
	profile   *MockProfileClient
	stored    *MockStoredProfiles
	orders    *MockOrderClient
	publisher *MockPublisher
}

func newTestDeps() *testDeps {
	return &testDeps{
		store:   store.NewMemoryStore(),
		cart:    &MockCartClient{},
		profile: &MockProfileClient{User: completeProfile()},
		stored:  &MockStoredProfiles{Users: map[domain.Handle]*domain.UserProfile{}},
		orders: &MockOrderClient{Record: &domain.OrderRecord{
			ID:   42,
			Code: "TRX-20240328-0001",
		}},
		publisher: &MockPublisher{},
	}
}

func (d *testDeps) service(st store.Store) *CheckoutServiceImpl {
	if st == nil {
		st = d.store
	}
	ids := 0
	return NewCheckoutService(
		st,
		NewCartHandler(d.cart, time.Second),
		NewProfileHandler(d.stored, d.profile, time.Second),
		NewOrderHandler(d.orders, time.Second),
		zap.NewNop(),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		}),
		WithPublisher(d.publisher),
	)
}

func completeProfile() *domain.UserProfile {
	return &domain.UserProfile{
		ID:         7,
		Name:       "Budi Santoso",
		Email:      "budi@example.com",
		Phone:      "081234567890",
		Address:    "Jl. Merdeka No. 10, Bandung",
		PostalCode: "40111",
		Role:       "customer",
	}
}
