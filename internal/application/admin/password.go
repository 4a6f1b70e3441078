package admin

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/xiebiao/library/internal/infrastructure/config"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// PasswordVerifier 管理员口令校验
// 设计说明:
// 1. 只在内存中保存bcrypt哈希，明文口令在启动时哈希后丢弃
// 2. 配置了password_hash时直接使用，不再读取password
type PasswordVerifier struct {
	hash []byte
}

// NewPasswordVerifier 从配置创建口令校验器
func NewPasswordVerifier(cfg config.AdminConfig) (*PasswordVerifier, error) {
	if cfg.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
			return nil, apperrors.Wrap(err, "admin.password_hash不是有效的bcrypt哈希")
		}
		return &PasswordVerifier{hash: []byte(cfg.PasswordHash)}, nil
	}

	if cfg.Password == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "必须配置管理员密码")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "管理员密码哈希失败")
	}
	return &PasswordVerifier{hash: hash}, nil
}

// Verify 校验口令，不匹配返回ErrInvalidPassword
func (v *PasswordVerifier) Verify(password string) error {
	err := bcrypt.CompareHashAndPassword(v.hash, []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return apperrors.ErrInvalidPassword
	}
	return apperrors.Wrap(err, "校验管理员密码失败")
}
