package errors

import (
	"errors"
	"fmt"
)

// AppError 应用错误
// 设计说明：
// 1. Code供调用方（HTTP/控制台）区分错误类型，不直接对应HTTP状态码
// 2. Message是可直接展示给用户的提示
// 3. Err是内部错误，只进日志，不序列化给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装底层错误（存储、网络等），对外只暴露message
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// WrapCode 使用指定错误码包装底层错误
func WrapCode(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 调用方错误（参数错误、业务规则不满足）
// - 5xxxx: 服务端错误（存储异常、外部服务失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal        = 50000 // 内部错误
	ErrCodeDatabaseError   = 50001 // 数据库错误
	ErrCodeRedisError      = 50002 // Redis错误
	ErrCodeCorruptSnapshot = 50003 // 馆藏快照损坏
	ErrCodeStorageError    = 50004 // 存储不可用

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 密码错误
	ErrCodeForbidden       = 40104 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound       = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeMemberNotFound = 40405 // 会员不存在

	// 借阅业务错误（40000-40099）
	ErrCodeBusinessError       = 40000 // 业务错误(通用)
	ErrCodeBookAlreadyIssued   = 40010 // 图书已借出
	ErrCodeInvalidReturn       = 40011 // 非法归还（会员或图书不存在）
	ErrCodeNotBorrowedByMember = 40012 // 该会员未借阅此ISBN

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "管理员密码错误")
	ErrForbidden       = New(ErrCodeForbidden, "无权限访问")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// CodeOf 返回错误码，nil返回0
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	return GetAppError(err).Code
}
