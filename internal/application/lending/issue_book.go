package lending

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/domain/catalog"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
	"github.com/xiebiao/library/pkg/tracing"
)

const tracerName = "lending"

// IssueBookUseCase 借书用例
// 业务规则（检查顺序固定）:
// 1. 会员不存在 → MemberNotFound
// 2. 图书不存在 → BookNotFound
// 3. 图书已借出 → BookAlreadyIssued
// 失败时馆藏不变；成功后发布loan.issued事件并提交修改
type IssueBookUseCase struct {
	cat       *catalog.Catalog
	publisher mq.Publisher
	committer library.Committer
	log       *slog.Logger
}

// NewIssueBookUseCase 创建借书用例
func NewIssueBookUseCase(cat *catalog.Catalog, publisher mq.Publisher, committer library.Committer, log *slog.Logger) *IssueBookUseCase {
	return &IssueBookUseCase{
		cat:       cat,
		publisher: publisher,
		committer: committer,
		log:       log,
	}
}

// IssueBookRequest 借书请求DTO
type IssueBookRequest struct {
	MemberID string
	ISBN     string
}

// IssueBookResponse 借书响应DTO
type IssueBookResponse struct {
	MemberID string `json:"member_id"`
	ISBN     string `json:"isbn"`
}

// Execute 执行借书
func (uc *IssueBookUseCase) Execute(ctx context.Context, req IssueBookRequest) (resp *IssueBookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "IssueBook")
	span.SetAttributes(
		attribute.String("member.id", req.MemberID),
		attribute.String("book.isbn", req.ISBN),
	)
	defer func() { tracing.EndSpan(span, err) }()

	if err = uc.cat.Issue(req.MemberID, req.ISBN); err != nil {
		metrics.RecordIssue(failureReason(err), false)
		uc.log.InfoContext(ctx, "借书失败", "member_id", req.MemberID, "isbn", req.ISBN, "error", err)
		return nil, err
	}
	metrics.RecordIssue("", true)

	uc.committer.Commit(ctx)
	event := mq.LoanEvent{MemberID: req.MemberID, ISBN: req.ISBN, OccurredAt: time.Now()}
	if pubErr := uc.publisher.Publish(ctx, mq.RoutingLoanIssued, event); pubErr != nil {
		uc.log.WarnContext(ctx, "发布借书事件失败", "isbn", req.ISBN, "error", pubErr)
	}

	uc.log.InfoContext(ctx, "借书成功", "member_id", req.MemberID, "isbn", req.ISBN)
	return &IssueBookResponse{MemberID: req.MemberID, ISBN: req.ISBN}, nil
}

// failureReason 失败指标的reason标签（错误码）
func failureReason(err error) string {
	return strconv.Itoa(apperrors.CodeOf(err))
}
