package library

import (
	"context"
	"log/slog"
	"sync"

	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/pkg/tracing"
)

// SaveCatalogUseCase 保存馆藏快照
// 保存失败只返回错误，内存中的馆藏不受影响
// 导出和写入在同一把锁内完成，后导出的快照一定后写入
type SaveCatalogUseCase struct {
	mu   sync.Mutex
	cat  *catalog.Catalog
	repo catalog.Repository
	log  *slog.Logger
}

// NewSaveCatalogUseCase 创建保存用例
func NewSaveCatalogUseCase(cat *catalog.Catalog, repo catalog.Repository, log *slog.Logger) *SaveCatalogUseCase {
	return &SaveCatalogUseCase{cat: cat, repo: repo, log: log}
}

// SaveCatalogResponse 保存结果
type SaveCatalogResponse struct {
	Books   int `json:"books"`
	Members int `json:"members"`
}

// Execute 导出快照并写入存储
func (uc *SaveCatalogUseCase) Execute(ctx context.Context) (resp *SaveCatalogResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "library", "SaveCatalog")
	defer func() { tracing.EndSpan(span, err) }()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	snap := uc.cat.Snapshot()
	if err := uc.repo.Save(ctx, snap); err != nil {
		uc.log.ErrorContext(ctx, "馆藏保存失败", "error", err)
		return nil, err
	}

	uc.log.InfoContext(ctx, "馆藏已保存", "books", len(snap.Books), "members", len(snap.Members))
	return &SaveCatalogResponse{
		Books:   len(snap.Books),
		Members: len(snap.Members),
	}, nil
}
