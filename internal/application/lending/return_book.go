package lending

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
	"github.com/xiebiao/library/pkg/tracing"
)

// ReturnBookUseCase 还书用例
// 业务规则:
// 1. 会员或图书不存在 → InvalidReturn
// 2. 该会员名下没有这个ISBN（包括借给了别人）→ NotBorrowedByMember
// 3. 罚金 = max(0, 借阅天数 - 免罚借期) * 每日罚金，天数为负按0处理
type ReturnBookUseCase struct {
	cat       *catalog.Catalog
	publisher mq.Publisher
	committer library.Committer
	log       *slog.Logger
}

// NewReturnBookUseCase 创建还书用例
func NewReturnBookUseCase(cat *catalog.Catalog, publisher mq.Publisher, committer library.Committer, log *slog.Logger) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		cat:       cat,
		publisher: publisher,
		committer: committer,
		log:       log,
	}
}

// ReturnBookRequest 还书请求DTO
type ReturnBookRequest struct {
	MemberID string
	ISBN     string
	DaysKept int
}

// ReturnBookResponse 还书响应DTO
type ReturnBookResponse struct {
	MemberID string  `json:"member_id"`
	ISBN     string  `json:"isbn"`
	DaysKept int     `json:"days_kept"`
	Fine     float64 `json:"fine"`
}

// Execute 执行还书
func (uc *ReturnBookUseCase) Execute(ctx context.Context, req ReturnBookRequest) (resp *ReturnBookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ReturnBook")
	span.SetAttributes(
		attribute.String("member.id", req.MemberID),
		attribute.String("book.isbn", req.ISBN),
		attribute.Int("loan.days_kept", req.DaysKept),
	)
	defer func() { tracing.EndSpan(span, err) }()

	fine, err := uc.cat.Return(req.MemberID, req.ISBN, req.DaysKept)
	if err != nil {
		metrics.RecordReturn(0, failureReason(err), false)
		uc.log.InfoContext(ctx, "还书失败", "member_id", req.MemberID, "isbn", req.ISBN, "error", err)
		return nil, err
	}
	metrics.RecordReturn(fine, "", true)
	span.SetAttributes(attribute.Float64("loan.fine", fine))

	uc.committer.Commit(ctx)
	event := mq.LoanEvent{
		MemberID:   req.MemberID,
		ISBN:       req.ISBN,
		DaysKept:   req.DaysKept,
		Fine:       fine,
		OccurredAt: time.Now(),
	}
	if pubErr := uc.publisher.Publish(ctx, mq.RoutingLoanReturned, event); pubErr != nil {
		uc.log.WarnContext(ctx, "发布还书事件失败", "isbn", req.ISBN, "error", pubErr)
	}

	uc.log.InfoContext(ctx, "还书成功", "member_id", req.MemberID, "isbn", req.ISBN, "fine", fine)
	return &ReturnBookResponse{
		MemberID: req.MemberID,
		ISBN:     req.ISBN,
		DaysKept: req.DaysKept,
		Fine:     fine,
	}, nil
}
