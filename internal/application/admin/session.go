package admin

import (
	"context"
	"time"
)

// SessionStore 管理员会话与Token黑名单
// Redis启用时由redis.SessionStore实现，否则使用进程内的memory.SessionStore
type SessionStore interface {
	SaveSession(ctx context.Context, sessionID string, data map[string]string, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (map[string]string, error)
	DeleteSession(ctx context.Context, sessionID string) error
	AddToBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error
	IsInBlacklist(ctx context.Context, tokenID string) (bool, error)
}
