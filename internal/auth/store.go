package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/fjod/go_cart/storefront-service/internal/store"
	"go.uber.org/zap"
)

const (
	TokenKey = "token"
	UserKey  = "user"
)

var ErrNotAuthenticated = errors.New("client is not logged in")

// Store keeps the bearer token and user profile of each client in the key-value port
type Store struct {
	kv     store.Store
	logger *zap.Logger
}

func NewStore(kv store.Store, logger *zap.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// Save persists a successful login
func (s *Store) Save(ctx context.Context, h domain.Handle, token string, user *domain.UserProfile) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := s.kv.Set(ctx, h.Key(TokenKey), []byte(token)); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if err := s.kv.Set(ctx, h.Key(UserKey), userJSON); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// Clear logs the client out. Clearing a client that is not logged in is a no-op.
func (s *Store) Clear(ctx context.Context, h domain.Handle) error {
	errToken := s.kv.Delete(ctx, h.Key(TokenKey))
	errUser := s.kv.Delete(ctx, h.Key(UserKey))
	if err := errors.Join(errToken, errUser); err != nil {
		return fmt.Errorf("failed to clear auth state: %w", err)
	}
	s.logger.Info("client logged out", zap.String("client", h.String()))
	return nil
}

// TokenFor returns the stored token, empty when the client is not logged in
func (s *Store) TokenFor(ctx context.Context, h domain.Handle) (string, error) {
	token, err := s.kv.Get(ctx, h.Key(TokenKey))
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	return string(token), nil
}

// Token resolves the client from the context, it is the backend client's token source
func (s *Store) Token(ctx context.Context) (string, error) {
	h, ok := HandleFromContext(ctx)
	if !ok {
		return "", nil
	}
	return s.TokenFor(ctx, h)
}

func (s *Store) CurrentUser(ctx context.Context, h domain.Handle) (*domain.UserProfile, error) {
	data, err := s.kv.Get(ctx, h.Key(UserKey))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user domain.UserProfile
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// IsAuthenticated requires both the token and the user to be stored
func (s *Store) IsAuthenticated(ctx context.Context, h domain.Handle) bool {
	token, err := s.TokenFor(ctx, h)
	if err != nil || token == "" {
		return false
	}
	_, err = s.CurrentUser(ctx, h)
	return err == nil
}
