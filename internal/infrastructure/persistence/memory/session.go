package memory

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

type entry struct {
	data    map[string]string
	expires time.Time
}

// SessionStore 进程内会话存储，Redis未启用时使用
// 与redis.SessionStore行为一致，过期数据在读取时惰性清理
type SessionStore struct {
	mu        sync.Mutex
	sessions  map[string]entry
	blacklist map[string]time.Time
	now       func() time.Time
}

// NewSessionStore 创建内存会话存储
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions:  make(map[string]entry),
		blacklist: make(map[string]time.Time),
		now:       time.Now,
	}
}

// SaveSession 保存会话，ttl到期后失效
func (s *SessionStore) SaveSession(_ context.Context, sessionID string, data map[string]string, ttl time.Duration) error {
	cp := make(map[string]string, len(data))
	for k, v := range data {
		cp[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = entry{data: cp, expires: s.now().Add(ttl)}
	return nil
}

// GetSession 获取会话，不存在或已过期返回ErrUnauthorized
func (s *SessionStore) GetSession(_ context.Context, sessionID string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	if !s.now().Before(e.expires) {
		delete(s.sessions, sessionID)
		return nil, apperrors.ErrUnauthorized
	}

	out := make(map[string]string, len(e.data))
	for k, v := range e.data {
		out[k] = v
	}
	return out, nil
}

// DeleteSession 删除会话（登出）
func (s *SessionStore) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// AddToBlacklist 将Token加入黑名单，ttl<=0时Token已过期无需记录
func (s *SessionStore) AddToBlacklist(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[tokenID] = s.now().Add(ttl)
	return nil
}

// IsInBlacklist 检查Token是否在黑名单中
func (s *SessionStore) IsInBlacklist(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.blacklist[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expires) {
		delete(s.blacklist, tokenID)
		return false, nil
	}
	return true, nil
}
