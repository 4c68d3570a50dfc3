package auth

import (
	"context"
	"testing"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/fjod/go_cart/storefront-service/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore() (*Store, *store.MemoryStore) {
	kv := store.NewMemoryStore()
	return NewStore(kv, zap.NewNop()), kv
}

func TestStore_SaveAndResolveToken(t *testing.T) {
	s, kv := newTestStore()
	ctx := context.Background()
	user := &domain.UserProfile{ID: 5, Name: "Budi", Role: "admin"}

	require.NoError(t, s.Save(ctx, "alice", "tok-a", user))

	raw, err := kv.Get(ctx, "token:alice")
	require.NoError(t, err)
	assert.Equal(t, "tok-a", string(raw))

	token, err := s.Token(WithHandle(ctx, "alice"))
	require.NoError(t, err)
	assert.Equal(t, "tok-a", token)

	got, err := s.CurrentUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user, got)
	assert.True(t, got.IsAdmin())
	assert.True(t, s.IsAuthenticated(ctx, "alice"))
}

func TestStore_TokenWithoutHandle(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "alice", "tok-a", &domain.UserProfile{ID: 1}))

	token, err := s.Token(ctx)

	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestStore_ClientsAreIsolated(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "alice", "tok-a", &domain.UserProfile{ID: 1}))

	token, err := s.TokenFor(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = s.CurrentUser(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, s.IsAuthenticated(ctx, "bob"))
}

func TestStore_Clear(t *testing.T) {
	s, kv := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "alice", "tok-a", &domain.UserProfile{ID: 1}))

	require.NoError(t, s.Clear(ctx, "alice"))
	require.NoError(t, s.Clear(ctx, "alice"))

	assert.Equal(t, 0, kv.Len())
	assert.False(t, s.IsAuthenticated(ctx, "alice"))
}
