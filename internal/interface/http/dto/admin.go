package dto

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required" example:"admin123"`
}

// TokenResponse 登录响应
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in" example:"7200"` // Access Token过期时间（秒）
}

// RefreshTokenRequest 刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SaveCatalogResponse 手动保存结果
type SaveCatalogResponse struct {
	Books   int `json:"books" example:"3"`
	Members int `json:"members" example:"2"`
}
