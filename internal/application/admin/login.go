package admin

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/xiebiao/library/pkg/jwt"
)

// adminSubject 管理员Token的sub（单一管理员账号）
const adminSubject = "admin"

// LoginUseCase 管理员登录用例
// 设计说明：
// 1. 校验管理员口令
// 2. 生成JWT Token对
// 3. 保存会话（有效期 = Refresh Token有效期），登出时删除
type LoginUseCase struct {
	verifier   *PasswordVerifier
	jwtManager *jwt.Manager
	sessions   SessionStore
	refreshTTL time.Duration
	log        *slog.Logger
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	verifier *PasswordVerifier,
	jwtManager *jwt.Manager,
	sessions SessionStore,
	refreshTTL time.Duration,
	log *slog.Logger,
) *LoginUseCase {
	return &LoginUseCase{
		verifier:   verifier,
		jwtManager: jwtManager,
		sessions:   sessions,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Access Token过期时间（秒）
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 校验口令
	if err := uc.verifier.Verify(req.Password); err != nil {
		uc.log.WarnContext(ctx, "管理员登录失败", "ip", req.ClientIP, "error", err)
		return nil, err
	}

	// 2. 生成Token对
	pair, err := uc.jwtManager.GenerateToken(adminSubject, jwt.RoleAdmin)
	if err != nil {
		return nil, err
	}

	// 3. 保存会话，鉴权时要求会话存在
	session := map[string]string{
		"role":     jwt.RoleAdmin,
		"login_at": strconv.FormatInt(time.Now().Unix(), 10),
		"ip":       req.ClientIP,
	}
	if err := uc.sessions.SaveSession(ctx, pair.SessionID, session, uc.refreshTTL); err != nil {
		return nil, err
	}

	uc.log.InfoContext(ctx, "管理员登录", "session_id", pair.SessionID, "ip", req.ClientIP)
	return &LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
