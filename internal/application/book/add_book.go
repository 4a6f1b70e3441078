package book

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/domain/catalog"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/mq"
)

// AddBookUseCase 图书上架用例（管理员）
// 设计说明:
// 1. 目录允许重复ISBN，这里只校验必填字段
// 2. 上架后发布book.added事件，发布失败不影响上架结果
type AddBookUseCase struct {
	cat       *catalog.Catalog
	publisher mq.Publisher
	committer library.Committer
	log       *slog.Logger
}

// NewAddBookUseCase 创建上架用例
func NewAddBookUseCase(cat *catalog.Catalog, publisher mq.Publisher, committer library.Committer, log *slog.Logger) *AddBookUseCase {
	return &AddBookUseCase{
		cat:       cat,
		publisher: publisher,
		committer: committer,
		log:       log,
	}
}

// AddBookRequest 上架请求DTO
type AddBookRequest struct {
	Title  string
	Author string
	ISBN   string
}

// Execute 执行上架
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*BookInfo, error) {
	title := strings.TrimSpace(req.Title)
	isbn := strings.TrimSpace(req.ISBN)
	if title == "" || isbn == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "书名和ISBN不能为空")
	}

	b := uc.cat.AddBook(title, strings.TrimSpace(req.Author), isbn)
	uc.committer.Commit(ctx)

	event := mq.BookEvent{Title: b.Title, Author: b.Author, ISBN: b.ISBN, OccurredAt: time.Now()}
	if err := uc.publisher.Publish(ctx, mq.RoutingBookAdded, event); err != nil {
		uc.log.WarnContext(ctx, "发布上架事件失败", "isbn", b.ISBN, "error", err)
	}

	info := toBookInfo(b)
	return &info, nil
}
