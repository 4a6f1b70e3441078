package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// SessionStore 管理员会话存储（Redis）
// 设计说明：
// 1. 会话：session:{sid} → Hash（subject、login_at、client_ip），TTL与Refresh Token一致
// 2. 黑名单：blacklist:{jti} → "revoked"，TTL为Token剩余有效期
// 3. 登出时删除会话并拉黑Access Token，两者任一命中即拒绝
type SessionStore struct {
	client redis.UniversalClient
}

func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func blacklistKey(tokenID string) string {
	return fmt.Sprintf("blacklist:%s", tokenID)
}

// SaveSession 保存会话（Pipeline一次往返写入数据和过期时间）
func (s *SessionStore) SaveSession(ctx context.Context, sessionID string, data map[string]string, ttl time.Duration) error {
	key := sessionKey(sessionID)

	values := make(map[string]interface{}, len(data))
	for k, v := range data {
		values[k] = v
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, values)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "保存会话失败")
	}
	return nil
}

// GetSession 获取会话，不存在返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (map[string]string, error) {
	result, err := s.client.HGetAll(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "获取会话失败")
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return result, nil
}

// DeleteSession 删除会话
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "删除会话失败")
	}
	return nil
}

// AddToBlacklist 拉黑Token
func (s *SessionStore) AddToBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // 已过期的Token无需拉黑
	}
	if err := s.client.Set(ctx, blacklistKey(tokenID), "revoked", ttl).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "添加Token到黑名单失败")
	}
	return nil
}

// IsInBlacklist 检查Token是否已拉黑
func (s *SessionStore) IsInBlacklist(ctx context.Context, tokenID string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistKey(tokenID)).Result()
	if err != nil {
		return false, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "检查黑名单失败")
	}
	return exists > 0, nil
}
