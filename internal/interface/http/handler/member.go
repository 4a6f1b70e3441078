package handler

import (
	"github.com/gin-gonic/gin"

	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// MemberHandler 会员HTTP处理器
type MemberHandler struct {
	addMemberUseCase   *appmember.AddMemberUseCase
	getMemberUseCase   *appmember.GetMemberUseCase
	listMembersUseCase *appmember.ListMembersUseCase
}

// NewMemberHandler 创建会员处理器
func NewMemberHandler(
	addMemberUseCase *appmember.AddMemberUseCase,
	getMemberUseCase *appmember.GetMemberUseCase,
	listMembersUseCase *appmember.ListMembersUseCase,
) *MemberHandler {
	return &MemberHandler{
		addMemberUseCase:   addMemberUseCase,
		getMemberUseCase:   getMemberUseCase,
		listMembersUseCase: listMembersUseCase,
	}
}

// GetMember 查询会员及在借图书
// @Summary      查询会员
// @Tags         会员
// @Produce      json
// @Param        id path string true "会员ID"
// @Success      200 {object} response.Response{data=dto.MemberResponse}
// @Failure      200 {object} response.Response "40405 会员不存在"
// @Router       /api/v1/members/{id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	result, err := h.getMemberUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toMemberResponse(*result))
}

// AddMember 注册会员
// @Summary      注册会员
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddMemberRequest true "会员信息"
// @Success      200 {object} response.Response{data=dto.MemberResponse}
// @Router       /api/v1/admin/members [post]
func (h *MemberHandler) AddMember(c *gin.Context) {
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	result, err := h.addMemberUseCase.Execute(c.Request.Context(), appmember.AddMemberRequest{
		MemberID: req.MemberID,
		Name:     req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toMemberResponse(*result))
}

// ListMembers 会员列表
// @Summary      会员列表
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=response.ListData{list=[]dto.MemberResponse}}
// @Router       /api/v1/admin/members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	result, err := h.listMembersUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.MemberResponse, len(result.List))
	for i, m := range result.List {
		list[i] = toMemberResponse(m)
	}
	response.SuccessWithList(c, list, result.Total)
}

func toMemberResponse(m appmember.MemberInfo) dto.MemberResponse {
	return dto.MemberResponse{
		MemberID:      m.MemberID,
		Name:          m.Name,
		BorrowedISBNs: m.BorrowedISBNs,
	}
}
