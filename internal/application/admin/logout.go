package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/library/pkg/jwt"
)

// LogoutUseCase 管理员登出用例
// 1. 删除会话（同一会话的Refresh Token随之失效）
// 2. Access Token加入黑名单直到其自然过期
type LogoutUseCase struct {
	sessions SessionStore
	log      *slog.Logger
	now      func() time.Time
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessions SessionStore, log *slog.Logger) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions, log: log, now: time.Now}
}

// Execute 执行登出，claims来自认证中间件
func (uc *LogoutUseCase) Execute(ctx context.Context, claims *jwt.Claims) error {
	if err := uc.sessions.DeleteSession(ctx, claims.SessionID); err != nil {
		return err
	}

	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(uc.now())
	}
	if err := uc.sessions.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		return err
	}

	uc.log.InfoContext(ctx, "管理员登出", "session_id", claims.SessionID)
	return nil
}
