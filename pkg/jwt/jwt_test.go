package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)

	pair, err := m.GenerateToken("admin", RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), pair.ExpiresIn)
	assert.NotEmpty(t, pair.SessionID)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, pair.SessionID, claims.SessionID)
	assert.NotEmpty(t, claims.ID)
}

func TestManager_ParseToken(t *testing.T) {
	t.Run("签名密钥不一致", func(t *testing.T) {
		pair, err := NewManager("a", time.Hour, time.Hour).GenerateToken("admin", RoleAdmin)
		require.NoError(t, err)

		_, err = NewManager("b", time.Hour, time.Hour).ParseToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("Token过期", func(t *testing.T) {
		m := NewManager("s", time.Minute, time.Hour)
		pair, err := m.GenerateToken("admin", RoleAdmin)
		require.NoError(t, err)

		m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		_, err = m.ParseToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("非法格式", func(t *testing.T) {
		_, err := NewManager("s", time.Hour, time.Hour).ParseToken("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestManager_RefreshAccessToken(t *testing.T) {
	m := NewManager("s", time.Hour, 24*time.Hour)
	pair, err := m.GenerateToken("admin", RoleAdmin)
	require.NoError(t, err)

	access, err := m.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := m.ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, pair.SessionID, claims.SessionID)
}
