package member

import (
	"context"
	"strings"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/domain/catalog"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// MemberInfo 会员信息DTO
type MemberInfo struct {
	MemberID      string   `json:"member_id"`
	Name          string   `json:"name"`
	BorrowedISBNs []string `json:"borrowed_isbns"`
}

func toMemberInfo(m catalog.Member) MemberInfo {
	return MemberInfo{
		MemberID:      m.MemberID,
		Name:          m.Name,
		BorrowedISBNs: m.BorrowedISBNs(),
	}
}

// AddMemberUseCase 注册会员（管理员）
// 会员ID不强制唯一，查找时取第一条
type AddMemberUseCase struct {
	cat       *catalog.Catalog
	committer library.Committer
}

// NewAddMemberUseCase 创建注册用例
func NewAddMemberUseCase(cat *catalog.Catalog, committer library.Committer) *AddMemberUseCase {
	return &AddMemberUseCase{cat: cat, committer: committer}
}

// AddMemberRequest 注册请求DTO
type AddMemberRequest struct {
	MemberID string
	Name     string
}

// Execute 执行注册
func (uc *AddMemberUseCase) Execute(ctx context.Context, req AddMemberRequest) (*MemberInfo, error) {
	id := strings.TrimSpace(req.MemberID)
	if id == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "会员ID不能为空")
	}

	m := uc.cat.AddMember(id, strings.TrimSpace(req.Name))
	uc.committer.Commit(ctx)

	info := toMemberInfo(m)
	return &info, nil
}

// GetMemberUseCase 查询会员及其在借ISBN
type GetMemberUseCase struct {
	cat *catalog.Catalog
}

// NewGetMemberUseCase 创建查询用例
func NewGetMemberUseCase(cat *catalog.Catalog) *GetMemberUseCase {
	return &GetMemberUseCase{cat: cat}
}

// Execute 执行查询
func (uc *GetMemberUseCase) Execute(_ context.Context, memberID string) (*MemberInfo, error) {
	m, err := uc.cat.FindMember(memberID).OrErr(catalog.ErrMemberNotFound)
	if err != nil {
		return nil, err
	}
	info := toMemberInfo(m)
	return &info, nil
}

// ListMembersUseCase 全部会员（注册顺序）
type ListMembersUseCase struct {
	cat *catalog.Catalog
}

// NewListMembersUseCase 创建列表用例
func NewListMembersUseCase(cat *catalog.Catalog) *ListMembersUseCase {
	return &ListMembersUseCase{cat: cat}
}

// ListMembersResponse 会员列表
type ListMembersResponse struct {
	List  []MemberInfo `json:"list"`
	Total int          `json:"total"`
}

// Execute 执行列表查询
func (uc *ListMembersUseCase) Execute(_ context.Context) (*ListMembersResponse, error) {
	members := uc.cat.ListMembers()
	list := make([]MemberInfo, len(members))
	for i, m := range members {
		list[i] = toMemberInfo(m)
	}
	return &ListMembersResponse{List: list, Total: len(list)}, nil
}
