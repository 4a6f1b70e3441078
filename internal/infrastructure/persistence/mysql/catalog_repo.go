package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/catalog"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

const batchSize = 200

// catalogRepository 馆藏仓储实现(MySQL)
// 设计说明:
// 1. 快照整体覆盖写入：一个事务内清空三张表再批量插入
// 2. Position/Seq字段保存顺序，读取时按顺序还原
// 3. catalog_meta没有记录时视为从未保存
type catalogRepository struct {
	db *gorm.DB
	tx *TxManager
}

// NewCatalogRepository 创建馆藏仓储
func NewCatalogRepository(db *gorm.DB) catalog.Repository {
	return &catalogRepository{db: db, tx: NewTxManager(db)}
}

// Load 读取快照
func (r *catalogRepository) Load(ctx context.Context) (catalog.Snapshot, error) {
	var snap catalog.Snapshot
	db := dbFromContext(ctx, r.db)

	var meta CatalogMetaModel
	if err := db.First(&meta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return snap, catalog.ErrSnapshotNotFound
		}
		return snap, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询馆藏失败")
	}

	var books []BookModel
	if err := db.Order("position").Find(&books).Error; err != nil {
		return snap, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询图书失败")
	}

	var members []MemberModel
	err := db.
		Preload("Loans", func(tx *gorm.DB) *gorm.DB { return tx.Order("seq") }).
		Order("position").
		Find(&members).Error
	if err != nil {
		return snap, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询会员失败")
	}

	snap.Books = make([]catalog.BookRecord, 0, len(books))
	for _, m := range books {
		snap.Books = append(snap.Books, toBookRecord(&m))
	}
	snap.Members = make([]catalog.MemberRecord, 0, len(members))
	for _, m := range members {
		snap.Members = append(snap.Members, toMemberRecord(&m))
	}
	return snap, nil
}

// Save 覆盖写入快照
func (r *catalogRepository) Save(ctx context.Context, snap catalog.Snapshot) error {
	return r.tx.Transaction(ctx, func(ctx context.Context) error {
		db := dbFromContext(ctx, r.db)

		// 先删子表
		for _, model := range []interface{}{&LoanModel{}, &MemberModel{}, &BookModel{}} {
			if err := db.Where("1 = 1").Delete(model).Error; err != nil {
				return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "清空馆藏失败")
			}
		}

		if books := toBookModels(snap.Books); len(books) > 0 {
			if err := db.CreateInBatches(books, batchSize).Error; err != nil {
				return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "保存图书失败")
			}
		}

		// 会员带Loans一起插入，GORM自动回填MemberRef
		if members := toMemberModels(snap.Members); len(members) > 0 {
			if err := db.CreateInBatches(members, batchSize).Error; err != nil {
				return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "保存会员失败")
			}
		}

		meta := CatalogMetaModel{ID: 1, SavedAt: time.Now()}
		if err := db.Save(&meta).Error; err != nil {
			return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "保存馆藏元数据失败")
		}
		return nil
	})
}

// =========================================
// 模型转换
// =========================================

func toBookRecord(m *BookModel) catalog.BookRecord {
	return catalog.BookRecord{
		Title:     m.Title,
		Author:    m.Author,
		ISBN:      m.ISBN,
		Available: m.Available,
	}
}

func toMemberRecord(m *MemberModel) catalog.MemberRecord {
	borrowed := make([]string, 0, len(m.Loans))
	for _, l := range m.Loans {
		borrowed = append(borrowed, l.ISBN)
	}
	return catalog.MemberRecord{
		MemberID:      m.MemberID,
		Name:          m.Name,
		BorrowedISBNs: borrowed,
	}
}

func toBookModels(records []catalog.BookRecord) []BookModel {
	out := make([]BookModel, 0, len(records))
	for i, b := range records {
		out = append(out, BookModel{
			Position:  i,
			Title:     b.Title,
			Author:    b.Author,
			ISBN:      b.ISBN,
			Available: b.Available,
		})
	}
	return out
}

func toMemberModels(records []catalog.MemberRecord) []MemberModel {
	out := make([]MemberModel, 0, len(records))
	for i, m := range records {
		model := MemberModel{
			Position: i,
			MemberID: m.MemberID,
			Name:     m.Name,
		}
		for seq, isbn := range m.BorrowedISBNs {
			model.Loans = append(model.Loans, LoanModel{Seq: seq, ISBN: isbn})
		}
		out = append(out, model)
	}
	return out
}
