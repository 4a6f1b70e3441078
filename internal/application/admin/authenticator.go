package admin

import (
	"context"

	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/jwt"
)

// Authenticator 校验管理员Token
// 检查顺序：签名与有效期 → 角色 → 黑名单 → 会话存在
type Authenticator struct {
	jwtManager *jwt.Manager
	sessions   SessionStore
}

// NewAuthenticator 创建认证器
func NewAuthenticator(jwtManager *jwt.Manager, sessions SessionStore) *Authenticator {
	return &Authenticator{jwtManager: jwtManager, sessions: sessions}
}

// Authenticate 返回通过校验的Claims
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := a.jwtManager.ParseToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Role != jwt.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	revoked, err := a.sessions.IsInBlacklist(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.New(apperrors.ErrCodeTokenExpired, "Token已失效，请重新登录")
	}

	if _, err := a.sessions.GetSession(ctx, claims.SessionID); err != nil {
		return nil, err
	}
	return claims, nil
}

// RefreshUseCase 用Refresh Token换取新的Access Token
// 会话已登出时拒绝刷新
type RefreshUseCase struct {
	auth *Authenticator
}

// NewRefreshUseCase 创建刷新用例
func NewRefreshUseCase(auth *Authenticator) *RefreshUseCase {
	return &RefreshUseCase{auth: auth}
}

// RefreshResponse 刷新结果
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Execute 执行刷新
func (uc *RefreshUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	if _, err := uc.auth.Authenticate(ctx, refreshToken); err != nil {
		return nil, err
	}
	access, err := uc.auth.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{
		AccessToken: access,
		ExpiresIn:   int64(uc.auth.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}
