package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract checks the behavior every Store backend must share
func runStoreContract(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		value, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "checkout_state:alice", []byte(`{"step":1}`)))

		value, err := s.Get(ctx, "checkout_state:alice")
		require.NoError(t, err)
		assert.Equal(t, `{"step":1}`, string(value))
	})

	t.Run("last write wins", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "checkout_state:bob", []byte(`{"step":1}`)))
		require.NoError(t, s.Set(ctx, "checkout_state:bob", []byte(`{"step":3}`)))

		value, err := s.Get(ctx, "checkout_state:bob")
		require.NoError(t, err)
		assert.Equal(t, `{"step":3}`, string(value))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "token:carol", []byte("t1")))
		require.NoError(t, s.Set(ctx, "token:dave", []byte("t2")))
		require.NoError(t, s.Delete(ctx, "token:carol"))

		_, err := s.Get(ctx, "token:carol")
		assert.ErrorIs(t, err, ErrNotFound)
		value, err := s.Get(ctx, "token:dave")
		require.NoError(t, err)
		assert.Equal(t, "t2", string(value))
	})

	t.Run("binary values round trip", func(t *testing.T) {
		raw := []byte{0x00, 0xff, 0xfe, 'o', 'k', 0x00, 0xc3}
		require.NoError(t, s.Set(ctx, "blob:erin", raw))

		value, err := s.Get(ctx, "blob:erin")
		require.NoError(t, err)
		assert.Equal(t, raw, value)
	})

	t.Run("empty value", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "blob:frank", []byte{}))

		value, err := s.Get(ctx, "blob:frank")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("delete missing key", func(t *testing.T) {
		assert.NoError(t, s.Delete(ctx, "never-set"))
	})
}
