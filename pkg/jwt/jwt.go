package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

const issuer = "library"

// RoleAdmin 管理员角色（目前唯一需要认证的角色）
const RoleAdmin = "admin"

// Manager JWT管理器
// 设计说明：
// 1. 双Token：Access Token用于接口鉴权，Refresh Token用于续期
// 2. 每个Token带唯一ID（jti），登出时加入黑名单
type Manager struct {
	secret             string
	accessTokenExpire  time.Duration
	refreshTokenExpire time.Duration
	now                func() time.Time
}

// NewManager 创建JWT管理器
func NewManager(secret string, accessTokenExpire, refreshTokenExpire time.Duration) *Manager {
	return &Manager{
		secret:             secret,
		accessTokenExpire:  accessTokenExpire,
		refreshTokenExpire: refreshTokenExpire,
		now:                time.Now,
	}
}

// Claims 自定义JWT Claims
type Claims struct {
	Role      string `json:"role"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// TokenPair Token对（Access + Refresh）
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Access Token过期时间（秒）
	SessionID    string `json:"-"`
}

// GenerateToken 为一次登录会话生成Token对
func (m *Manager) GenerateToken(subject, role string) (*TokenPair, error) {
	sessionID := uuid.NewString()

	access, err := m.sign(subject, role, sessionID, m.accessTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Access Token失败")
	}

	refresh, err := m.sign(subject, role, sessionID, m.refreshTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Refresh Token失败")
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.accessTokenExpire.Seconds()),
		SessionID:    sessionID,
	}, nil
}

func (m *Manager) sign(subject, role, sessionID string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		Role:      role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   subject,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.secret))
}

// ParseToken 解析并验证Token（签名、exp、nbf）
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, apperrors.ErrInvalidToken
}

// RefreshAccessToken 使用Refresh Token换取新的Access Token（会话ID不变）
func (m *Manager) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := m.ParseToken(refreshToken)
	if err != nil {
		return "", err
	}

	token, err := m.sign(claims.Subject, claims.Role, claims.SessionID, m.accessTokenExpire)
	if err != nil {
		return "", apperrors.Wrap(err, "刷新Token失败")
	}
	return token, nil
}

// AccessTokenTTL Access Token有效期
func (m *Manager) AccessTokenTTL() time.Duration {
	return m.accessTokenExpire
}
