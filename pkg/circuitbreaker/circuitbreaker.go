// Package circuitbreaker 熔断器
//
// 状态机：
//
//	CLOSED --(ReadyToTrip)--> OPEN --(Timeout到期)--> HALF_OPEN
//	HALF_OPEN --(成功)--> CLOSED
//	HALF_OPEN --(失败)--> OPEN
//
// 用于保护外部存储（MySQL、PostgreSQL、Redis）。存储故障时快速失败，
// 避免每次保存都等到连接超时。
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpenState 熔断器打开（或半开且试探名额已满）时拒绝请求
var ErrOpenState = errors.New("circuit breaker is open")

// Config 熔断器配置，零值字段使用默认值
type Config struct {
	MaxRequests uint32        // 半开状态允许的试探请求数，默认1
	Interval    time.Duration // 关闭状态下统计窗口，0表示不重置
	Timeout     time.Duration // 打开状态持续时间，默认30秒

	// ReadyToTrip 关闭状态下每次失败后调用，返回true则打开，默认连续失败5次
	ReadyToTrip func(counts Counts) bool

	// IsSuccessful 判断错误是否算作成功，默认只有nil算成功
	// 业务错误（如快照不存在）应算作成功，否则会误熔断
	IsSuccessful func(err error) bool

	// OnStateChange 状态切换回调（在锁内调用，不要阻塞）
	OnStateChange func(name string, from, to State)
}

// Counts 当前统计窗口内的计数
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// FailureRate 失败率
func (c Counts) FailureRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.TotalFailures) / float64(c.Requests)
}

func (c *Counts) success() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) failure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// CircuitBreaker 熔断器，可并发使用
type CircuitBreaker struct {
	name string
	cfg  Config
	now  func() time.Time

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换递增，丢弃上一代请求的结果
	counts     Counts
	expiry     time.Time
}

// New 创建熔断器
func New(name string, cfg Config) *CircuitBreaker {
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.ReadyToTrip == nil {
		cfg.ReadyToTrip = func(c Counts) bool { return c.ConsecutiveFailures >= 5 }
	}
	if cfg.IsSuccessful == nil {
		cfg.IsSuccessful = func(err error) bool { return err == nil }
	}

	cb := &CircuitBreaker{name: name, cfg: cfg, now: time.Now}
	cb.resetWindow(cb.now())
	return cb
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string { return cb.name }

// Execute 在熔断器保护下执行fn
// 熔断时返回ErrOpenState，fn不会被调用；ctx已取消时直接返回ctx.Err()
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	generation, err := cb.before()
	if err != nil {
		return err
	}

	err = fn(ctx)
	cb.after(generation, cb.cfg.IsSuccessful(err))
	return err
}

func (cb *CircuitBreaker) before() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, generation := cb.current(cb.now())
	switch {
	case state == StateOpen:
		return generation, ErrOpenState
	case state == StateHalfOpen && cb.counts.Requests >= cb.cfg.MaxRequests:
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

func (cb *CircuitBreaker) after(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()
	state, generation := cb.current(now)
	if generation != before {
		return
	}

	if success {
		cb.counts.success()
		if state == StateHalfOpen && cb.counts.ConsecutiveSuccesses >= cb.cfg.MaxRequests {
			cb.setState(StateClosed, now)
		}
		return
	}

	cb.counts.failure()
	switch state {
	case StateClosed:
		if cb.cfg.ReadyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

func (cb *CircuitBreaker) current(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.resetWindow(now)
		}
	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}
	return cb.state, cb.generation
}

func (cb *CircuitBreaker) resetWindow(now time.Time) {
	cb.counts = Counts{}
	cb.expiry = time.Time{}
	if cb.cfg.Interval > 0 {
		cb.expiry = now.Add(cb.cfg.Interval)
	}
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.generation++

	switch state {
	case StateClosed:
		cb.resetWindow(now)
	case StateOpen:
		cb.counts = Counts{}
		cb.expiry = now.Add(cb.cfg.Timeout)
	case StateHalfOpen:
		cb.counts = Counts{}
		cb.expiry = time.Time{}
	}

	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.name, prev, state)
	}
}

// State 当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, _ := cb.current(cb.now())
	return state
}

// Counts 当前窗口计数
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.counts
}
