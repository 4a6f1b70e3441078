package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Response 统一响应结构
// Code是业务错误码（0表示成功），HTTP状态码始终为200
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListData 列表数据封装
type ListData struct {
	List  interface{} `json:"list"`
	Total int         `json:"total"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithList 列表成功响应
func SuccessWithList(c *gin.Context, list interface{}, total int) {
	Success(c, ListData{List: list, Total: total})
}

// Error 错误响应（自动处理AppError）
// 内部错误只写日志，不返回给客户端
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	if appErr.Err != nil {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"code", appErr.Code,
			"error", appErr.Err,
		)
	}

	c.JSON(http.StatusOK, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// Abort 中间件中终止请求
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
