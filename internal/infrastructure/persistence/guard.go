package persistence

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
)

// GuardedRepository 给仓储加熔断和指标
// 快照不存在/已损坏属于数据问题，不计入熔断失败
type GuardedRepository struct {
	inner  catalog.Repository
	driver string
	cb     *circuitbreaker.CircuitBreaker
}

// Guard 包装仓储
func Guard(inner catalog.Repository, driver string, log *slog.Logger) *GuardedRepository {
	name := "storage-" + driver
	cb := circuitbreaker.New(name, circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     15 * time.Second,
		// 连续失败3次，或1分钟内至少10次请求且一半失败
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= 3 ||
				(c.Requests >= 10 && c.FailureRate() >= 0.5)
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, catalog.ErrSnapshotNotFound) ||
				errors.Is(err, catalog.ErrCorruptSnapshot) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn("存储熔断器状态变化", "name", name, "from", from.String(), "to", to.String())
			metrics.SetBreakerState(name, int(to))
		},
	})
	metrics.SetBreakerState(name, int(circuitbreaker.StateClosed))

	return &GuardedRepository{inner: inner, driver: driver, cb: cb}
}

// Load 读取快照
func (g *GuardedRepository) Load(ctx context.Context) (catalog.Snapshot, error) {
	var snap catalog.Snapshot
	err := g.execute(ctx, func(ctx context.Context) error {
		var err error
		snap, err = g.inner.Load(ctx)
		return err
	})
	return snap, err
}

// Save 保存快照并记录耗时
func (g *GuardedRepository) Save(ctx context.Context, snap catalog.Snapshot) error {
	start := time.Now()
	err := g.execute(ctx, func(ctx context.Context) error {
		return g.inner.Save(ctx, snap)
	})
	metrics.RecordSave(g.driver, time.Since(start).Seconds(), err)
	return err
}

// State 熔断器状态
func (g *GuardedRepository) State() circuitbreaker.State {
	return g.cb.State()
}

func (g *GuardedRepository) execute(ctx context.Context, fn func(ctx context.Context) error) error {
	err := g.cb.Execute(ctx, fn)
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.RecordBreakerRequest(g.cb.Name(), "rejected")
		return apperrors.WrapCode(err, apperrors.ErrCodeStorageError, "存储暂不可用，请稍后重试")
	case err != nil && !errors.Is(err, catalog.ErrSnapshotNotFound):
		metrics.RecordBreakerRequest(g.cb.Name(), "failure")
	default:
		metrics.RecordBreakerRequest(g.cb.Name(), "success")
	}
	return err
}
