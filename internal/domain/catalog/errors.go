package catalog

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 馆藏领域错误定义
// 说明：都是可恢复的业务错误，由调用方决定如何展示
var (
	// ErrMemberNotFound 会员不存在
	ErrMemberNotFound = apperrors.New(apperrors.ErrCodeMemberNotFound, "会员不存在")

	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrBookAlreadyIssued 图书已借出
	ErrBookAlreadyIssued = apperrors.New(apperrors.ErrCodeBookAlreadyIssued, "图书已借出")

	// ErrInvalidReturn 归还时会员或图书不存在
	ErrInvalidReturn = apperrors.New(apperrors.ErrCodeInvalidReturn, "无效的归还操作")

	// ErrNotBorrowedByMember 该会员未借阅此ISBN（包括借给了其他会员的情况）
	ErrNotBorrowedByMember = apperrors.New(apperrors.ErrCodeNotBorrowedByMember, "该会员未借阅此ISBN")

	// ErrSnapshotNotFound 存储中没有馆藏快照
	ErrSnapshotNotFound = apperrors.New(apperrors.ErrCodeNotFound, "馆藏数据不存在")

	// ErrCorruptSnapshot 快照数据违反借阅一致性
	ErrCorruptSnapshot = apperrors.New(apperrors.ErrCodeCorruptSnapshot, "馆藏数据已损坏")
)
