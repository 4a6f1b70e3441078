package handler

import (
	"github.com/gin-gonic/gin"

	applending "github.com/xiebiao/library/internal/application/lending"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// LendingHandler 借还HTTP处理器
// 业务失败（会员不存在、已借出、未借阅等）通过响应码区分
type LendingHandler struct {
	issueBookUseCase  *applending.IssueBookUseCase
	returnBookUseCase *applending.ReturnBookUseCase
}

// NewLendingHandler 创建借还处理器
func NewLendingHandler(
	issueBookUseCase *applending.IssueBookUseCase,
	returnBookUseCase *applending.ReturnBookUseCase,
) *LendingHandler {
	return &LendingHandler{
		issueBookUseCase:  issueBookUseCase,
		returnBookUseCase: returnBookUseCase,
	}
}

// IssueBook 借书
// @Summary      借书
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.IssueBookRequest true "借书信息"
// @Success      200 {object} response.Response{data=dto.IssueBookResponse}
// @Failure      200 {object} response.Response "40405 会员不存在 / 40402 图书不存在 / 40010 图书已借出"
// @Router       /api/v1/loans [post]
func (h *LendingHandler) IssueBook(c *gin.Context) {
	var req dto.IssueBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	result, err := h.issueBookUseCase.Execute(c.Request.Context(), applending.IssueBookRequest{
		MemberID: req.MemberID,
		ISBN:     req.ISBN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.IssueBookResponse{MemberID: result.MemberID, ISBN: result.ISBN})
}

// ReturnBook 还书
// @Summary      还书
// @Description  返回罚金：超过免罚借期的天数 × 每日罚金
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.ReturnBookRequest true "还书信息"
// @Success      200 {object} response.Response{data=dto.ReturnBookResponse}
// @Failure      200 {object} response.Response "40011 无效的归还 / 40012 该会员未借阅此ISBN"
// @Router       /api/v1/loans/return [post]
func (h *LendingHandler) ReturnBook(c *gin.Context) {
	var req dto.ReturnBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	result, err := h.returnBookUseCase.Execute(c.Request.Context(), applending.ReturnBookRequest{
		MemberID: req.MemberID,
		ISBN:     req.ISBN,
		DaysKept: req.DaysKept,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.ReturnBookResponse{
		MemberID: result.MemberID,
		ISBN:     result.ISBN,
		DaysKept: result.DaysKept,
		Fine:     result.Fine,
	})
}
