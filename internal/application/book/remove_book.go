package book

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/pkg/mq"
)

// RemoveBookUseCase 图书下架用例（管理员）
// 业务规则:
// 1. 删除所有ISBN匹配的条目，没有匹配时是空操作（Removed=0，不报错）
// 2. 在借图书下架时，借阅人的在借记录一并清除
type RemoveBookUseCase struct {
	cat       *catalog.Catalog
	publisher mq.Publisher
	committer library.Committer
	log       *slog.Logger
}

// NewRemoveBookUseCase 创建下架用例
func NewRemoveBookUseCase(cat *catalog.Catalog, publisher mq.Publisher, committer library.Committer, log *slog.Logger) *RemoveBookUseCase {
	return &RemoveBookUseCase{
		cat:       cat,
		publisher: publisher,
		committer: committer,
		log:       log,
	}
}

// RemoveBookResponse 下架结果
type RemoveBookResponse struct {
	ISBN    string `json:"isbn"`
	Removed int    `json:"removed"`
}

// Execute 执行下架
func (uc *RemoveBookUseCase) Execute(ctx context.Context, isbn string) (*RemoveBookResponse, error) {
	removed := uc.cat.RemoveBook(isbn)
	if removed == 0 {
		return &RemoveBookResponse{ISBN: isbn}, nil
	}

	uc.committer.Commit(ctx)
	event := mq.BookEvent{ISBN: isbn, Removed: removed, OccurredAt: time.Now()}
	if err := uc.publisher.Publish(ctx, mq.RoutingBookRemoved, event); err != nil {
		uc.log.WarnContext(ctx, "发布下架事件失败", "isbn", isbn, "error", err)
	}

	return &RemoveBookResponse{ISBN: isbn, Removed: removed}, nil
}
