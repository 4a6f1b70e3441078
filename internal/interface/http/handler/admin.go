package handler

import (
	"github.com/gin-gonic/gin"

	appadmin "github.com/xiebiao/library/internal/application/admin"
	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// AdminHandler 管理员HTTP处理器
// 登录、登出、刷新Token、手动保存馆藏
type AdminHandler struct {
	loginUseCase   *appadmin.LoginUseCase
	logoutUseCase  *appadmin.LogoutUseCase
	refreshUseCase *appadmin.RefreshUseCase
	saveUseCase    *library.SaveCatalogUseCase
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(
	loginUseCase *appadmin.LoginUseCase,
	logoutUseCase *appadmin.LogoutUseCase,
	refreshUseCase *appadmin.RefreshUseCase,
	saveUseCase *library.SaveCatalogUseCase,
) *AdminHandler {
	return &AdminHandler{
		loginUseCase:   loginUseCase,
		logoutUseCase:  logoutUseCase,
		refreshUseCase: refreshUseCase,
		saveUseCase:    saveUseCase,
	}
}

// Login 管理员登录
// @Summary      管理员登录
// @Description  校验管理员口令，返回JWT Token
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Param        request body dto.AdminLoginRequest true "管理员口令"
// @Success      200 {object} response.Response{data=dto.TokenResponse}
// @Failure      200 {object} response.Response "40103 管理员密码错误"
// @Router       /api/v1/admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appadmin.LoginRequest{
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.TokenResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

// Refresh 刷新Access Token
// @Summary      刷新Token
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshTokenRequest true "Refresh Token"
// @Success      200 {object} response.Response{data=dto.TokenResponse}
// @Router       /api/v1/admin/refresh [post]
func (h *AdminHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	result, err := h.refreshUseCase.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.TokenResponse{AccessToken: result.AccessToken, ExpiresIn: result.ExpiresIn})
}

// Logout 管理员登出
// @Summary      管理员登出
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.logoutUseCase.Execute(c.Request.Context(), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SaveCatalog 立即保存馆藏
// @Summary      保存馆藏
// @Description  将当前馆藏写入配置的存储（file/mysql/postgres/redis）
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.SaveCatalogResponse}
// @Failure      200 {object} response.Response "50004 存储不可用"
// @Router       /api/v1/admin/catalog/save [post]
func (h *AdminHandler) SaveCatalog(c *gin.Context) {
	result, err := h.saveUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.SaveCatalogResponse{Books: result.Books, Members: result.Members})
}
