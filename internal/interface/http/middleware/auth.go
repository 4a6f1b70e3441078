package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appadmin "github.com/xiebiao/library/internal/application/admin"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/response"
)

const claimsKey = "admin_claims"

// AuthMiddleware 管理员认证中间件
// 设计说明：
// 1. 从Authorization头提取Bearer Token
// 2. 交给Authenticator校验（签名、角色、黑名单、会话）
// 3. 将Claims注入Context，供登出等接口使用
type AuthMiddleware struct {
	auth *appadmin.Authenticator
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(auth *appadmin.Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAdmin 要求管理员登录
// 使用方式：
//
//	admin := v1.Group("/admin")
//	admin.Use(authMiddleware.RequireAdmin())
//	admin.POST("/books", bookHandler.AddBook)
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, apperrors.ErrUnauthorized)
			return
		}

		claims, err := m.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// bearerToken 解析 "Bearer <token>"
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetClaims 从Context获取当前管理员Claims，未经过RequireAdmin时返回nil
func GetClaims(c *gin.Context) *jwt.Claims {
	if v, exists := c.Get(claimsKey); exists {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}
