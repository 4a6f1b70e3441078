package library

import (
	"context"
	"log/slog"

	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/pkg/metrics"
)

// Committer 馆藏发生修改后调用（借还、增删图书/会员）
type Committer interface {
	Commit(ctx context.Context)
}

// AutoSaver storage.autosave开启时每次修改后立即保存
// 保存失败只记日志：修改已经在内存中生效，下次保存或退出时会再写一次
type AutoSaver struct {
	save    *SaveCatalogUseCase
	enabled bool
	log     *slog.Logger
}

// NewAutoSaver 创建自动保存
func NewAutoSaver(save *SaveCatalogUseCase, enabled bool, log *slog.Logger) *AutoSaver {
	return &AutoSaver{save: save, enabled: enabled, log: log}
}

// Commit 刷新指标，开启时保存
func (a *AutoSaver) Commit(ctx context.Context) {
	RecordSize(a.save.cat)
	if !a.enabled {
		return
	}
	if _, err := a.save.Execute(ctx); err != nil {
		a.log.WarnContext(ctx, "自动保存失败", "error", err)
	}
}

// RecordSize 更新馆藏规模指标
func RecordSize(c *catalog.Catalog) {
	books := c.ListAllBooks()
	onLoan := 0
	for _, b := range books {
		if b.OnLoan() {
			onLoan++
		}
	}
	metrics.SetCatalogSize(len(books), onLoan)
}
