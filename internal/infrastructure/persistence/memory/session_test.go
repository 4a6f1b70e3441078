package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewSessionStore()
	store.now = func() time.Time { return now }

	t.Run("会话过期", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, "sid", map[string]string{"subject": "admin"}, time.Minute))

		data, err := store.GetSession(ctx, "sid")
		require.NoError(t, err)
		assert.Equal(t, "admin", data["subject"])

		now = now.Add(2 * time.Minute)
		_, err = store.GetSession(ctx, "sid")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("删除会话", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, "sid2", map[string]string{}, time.Minute))
		require.NoError(t, store.DeleteSession(ctx, "sid2"))
		_, err := store.GetSession(ctx, "sid2")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("黑名单到期后失效", func(t *testing.T) {
		require.NoError(t, store.AddToBlacklist(ctx, "jti", time.Minute))
		revoked, _ := store.IsInBlacklist(ctx, "jti")
		assert.True(t, revoked)

		now = now.Add(2 * time.Minute)
		revoked, _ = store.IsInBlacklist(ctx, "jti")
		assert.False(t, revoked)
	})

	t.Run("非正TTL不拉黑", func(t *testing.T) {
		require.NoError(t, store.AddToBlacklist(ctx, "old", 0))
		revoked, _ := store.IsInBlacklist(ctx, "old")
		assert.False(t, revoked)
	})
}
