package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/catalog"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 需要Redis：LIBRARY_TEST_REDIS_ADDR=localhost:6379（使用15号库，测试前清空）
func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("LIBRARY_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("未设置LIBRARY_TEST_REDIS_ADDR")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.FlushDB(context.Background()).Err())
	t.Cleanup(func() { client.Close() })
	return client
}

func TestCatalogStore(t *testing.T) {
	client := newTestClient(t)
	store := NewCatalogStore(client, "library:test:catalog")
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, catalog.ErrSnapshotNotFound)

	c := catalog.New()
	c.AddBook("Clean Code", "Robert C. Martin", "9780132350884")
	c.AddMember("M001", "Alice")
	require.NoError(t, c.Issue("M001", "9780132350884"))

	require.NoError(t, store.Save(ctx, c.Snapshot()))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, c.Snapshot(), loaded)

	require.NoError(t, client.Set(ctx, "library:test:catalog", "garbage", 0).Err())
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, catalog.ErrCorruptSnapshot)
}

func TestSessionStore(t *testing.T) {
	client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	t.Run("会话读写", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, "sid-1", map[string]string{"subject": "admin"}, time.Minute))

		data, err := store.GetSession(ctx, "sid-1")
		require.NoError(t, err)
		assert.Equal(t, "admin", data["subject"])

		require.NoError(t, store.DeleteSession(ctx, "sid-1"))
		_, err = store.GetSession(ctx, "sid-1")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("黑名单", func(t *testing.T) {
		revoked, err := store.IsInBlacklist(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)

		require.NoError(t, store.AddToBlacklist(ctx, "jti-1", time.Minute))
		revoked, err = store.IsInBlacklist(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		ttl, err := client.TTL(ctx, "blacklist:jti-1").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})
}
