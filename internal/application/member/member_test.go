package member

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/catalog"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

type countingCommitter struct {
	commits int
}

func (c *countingCommitter) Commit(context.Context) { c.commits++ }

func TestAddMemberUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功", func(t *testing.T) {
		cat := catalog.New()
		committer := &countingCommitter{}
		info, err := NewAddMemberUseCase(cat, committer).Execute(ctx, AddMemberRequest{MemberID: "M001", Name: "Alice"})
		require.NoError(t, err)
		assert.Equal(t, &MemberInfo{MemberID: "M001", Name: "Alice", BorrowedISBNs: []string{}}, info)
		assert.Equal(t, 1, committer.commits)
	})

	t.Run("会员ID为空", func(t *testing.T) {
		cat := catalog.New()
		committer := &countingCommitter{}
		_, err := NewAddMemberUseCase(cat, committer).Execute(ctx, AddMemberRequest{MemberID: " ", Name: "Alice"})
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.CodeOf(err))
		assert.Zero(t, cat.MemberCount())
		assert.Zero(t, committer.commits)
	})
}

func TestGetMemberUseCase(t *testing.T) {
	ctx := context.Background()
	cat := catalog.New()
	cat.AddBook("Go", "Pike", "1")
	cat.AddMember("M001", "Alice")
	require.NoError(t, cat.Issue("M001", "1"))

	t.Run("包含在借ISBN", func(t *testing.T) {
		info, err := NewGetMemberUseCase(cat).Execute(ctx, "M001")
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, info.BorrowedISBNs)
	})

	t.Run("会员不存在", func(t *testing.T) {
		_, err := NewGetMemberUseCase(cat).Execute(ctx, "M404")
		assert.ErrorIs(t, err, catalog.ErrMemberNotFound)
	})
}

func TestListMembersUseCase(t *testing.T) {
	cat := catalog.New()
	cat.AddMember("M001", "Alice")
	cat.AddMember("M002", "Bob")

	resp, err := NewListMembersUseCase(cat).Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "M001", resp.List[0].MemberID)
	assert.Equal(t, "Bob", resp.List[1].Name)
}
