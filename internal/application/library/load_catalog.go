package library

import (
	"context"
	"errors"
	"log/slog"

	"github.com/xiebiao/library/internal/domain/catalog"
)

// 首次启动写入的示例数据
var (
	seedBooks = []catalog.BookRecord{
		{Title: "Clean Code", Author: "Robert C. Martin", ISBN: "9780132350884", Available: true},
		{Title: "Introduction to Algorithms", Author: "Cormen et al", ISBN: "9780262033848", Available: true},
		{Title: "Effective Java", Author: "Joshua Bloch", ISBN: "9780134685991", Available: true},
	}
	seedMembers = []catalog.MemberRecord{
		{MemberID: "M001", Name: "Alice"},
		{MemberID: "M002", Name: "Bob"},
	}
)

// 加载来源
const (
	SourceStore = "store" // 从存储恢复
	SourceEmpty = "empty" // 存储为空或读取失败，使用空馆藏
)

// LoadCatalogUseCase 启动时加载馆藏
// 业务规则:
// 1. 任何读取失败（不存在、损坏、存储故障）都退化为空馆藏，不阻止启动
// 2. SeedOnEmpty时，没有图书则写入示例图书，没有会员则写入示例会员
type LoadCatalogUseCase struct {
	repo        catalog.Repository
	fines       catalog.FinePolicy
	seedOnEmpty bool
	log         *slog.Logger
}

// LoadOptions 加载选项
type LoadOptions struct {
	FinePolicy  catalog.FinePolicy // 零值使用默认规则
	SeedOnEmpty bool
}

// NewLoadCatalogUseCase 创建加载用例
func NewLoadCatalogUseCase(repo catalog.Repository, opts LoadOptions, log *slog.Logger) *LoadCatalogUseCase {
	fines := opts.FinePolicy
	if fines == (catalog.FinePolicy{}) {
		fines = catalog.DefaultFinePolicy()
	}
	return &LoadCatalogUseCase{
		repo:        repo,
		fines:       fines,
		seedOnEmpty: opts.SeedOnEmpty,
		log:         log,
	}
}

// LoadResult 加载结果
type LoadResult struct {
	Catalog *catalog.Catalog
	Source  string
	Seeded  bool
	Err     error // 退化为空馆藏的原因（SourceEmpty时可能非空）
}

// Execute 加载馆藏，始终返回可用的目录
func (uc *LoadCatalogUseCase) Execute(ctx context.Context) LoadResult {
	res := LoadResult{Source: SourceStore}

	snap, err := uc.repo.Load(ctx)
	if err == nil {
		res.Catalog, err = catalog.Restore(snap, catalog.WithFinePolicy(uc.fines))
	}

	if err != nil {
		res.Source = SourceEmpty
		res.Catalog = catalog.New(catalog.WithFinePolicy(uc.fines))
		if !errors.Is(err, catalog.ErrSnapshotNotFound) {
			res.Err = err
			uc.log.WarnContext(ctx, "馆藏加载失败，使用空馆藏", "error", err)
		}
	}

	if uc.seedOnEmpty {
		res.Seeded = seed(res.Catalog)
	}

	RecordSize(res.Catalog)
	uc.log.InfoContext(ctx, "馆藏已加载",
		"source", res.Source,
		"seeded", res.Seeded,
		"books", res.Catalog.BookCount(),
		"members", res.Catalog.MemberCount(),
	)
	return res
}

func seed(c *catalog.Catalog) bool {
	seeded := false
	if c.BookCount() == 0 {
		for _, b := range seedBooks {
			c.AddBook(b.Title, b.Author, b.ISBN)
		}
		seeded = true
	}
	if c.MemberCount() == 0 {
		for _, m := range seedMembers {
			c.AddMember(m.MemberID, m.Name)
		}
		seeded = true
	}
	return seeded
}
