package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xiebiao/library/internal/domain/catalog"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS catalog_meta (
	id       SMALLINT PRIMARY KEY,
	saved_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS catalog_books (
	position  INTEGER PRIMARY KEY,
	title     TEXT    NOT NULL,
	author    TEXT    NOT NULL,
	isbn      TEXT    NOT NULL,
	available BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_catalog_books_isbn ON catalog_books (isbn);
CREATE TABLE IF NOT EXISTS catalog_members (
	position  INTEGER PRIMARY KEY,
	member_id TEXT NOT NULL,
	name      TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS catalog_loans (
	member_position INTEGER NOT NULL REFERENCES catalog_members (position) ON DELETE CASCADE,
	seq             INTEGER NOT NULL,
	isbn            TEXT    NOT NULL,
	PRIMARY KEY (member_position, seq)
);
`

// CatalogRepo 馆藏仓储（PostgreSQL）
// 表结构与MySQL实现一致：position/seq保存顺序，catalog_meta标记是否保存过
type CatalogRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// NewCatalogRepo 创建仓储，timeout作用于每次Load/Save
func NewCatalogRepo(db *pgxpool.Pool, timeout time.Duration) *CatalogRepo {
	return &CatalogRepo{db: db, timeout: timeout}
}

func (r *CatalogRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// Migrate 建表（幂等）
func (r *CatalogRepo) Migrate(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "创建馆藏表失败")
	}
	return nil
}

// Load 读取快照
func (r *CatalogRepo) Load(ctx context.Context) (catalog.Snapshot, error) {
	var snap catalog.Snapshot
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var savedAt time.Time
	err := r.db.QueryRow(ctx, `SELECT saved_at FROM catalog_meta WHERE id = 1`).Scan(&savedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return snap, catalog.ErrSnapshotNotFound
		}
		return snap, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询馆藏失败")
	}

	rows, err := r.db.Query(ctx, `
		SELECT title, author, isbn, available
		FROM catalog_books
		ORDER BY position`)
	if err != nil {
		return snap, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询图书失败")
	}
	snap.Books, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.BookRecord, error) {
		var b catalog.BookRecord
		err := row.Scan(&b.Title, &b.Author, &b.ISBN, &b.Available)
		return b, err
	})
	if err != nil {
		return snap, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询图书失败")
	}

	members, err := r.loadMembers(ctx)
	if err != nil {
		return snap, err
	}
	snap.Members = members
	return snap, nil
}

func (r *CatalogRepo) loadMembers(ctx context.Context) ([]catalog.MemberRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.position, m.member_id, m.name, l.isbn
		FROM catalog_members m
		LEFT JOIN catalog_loans l ON l.member_position = m.position
		ORDER BY m.position, l.seq`)
	if err != nil {
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询会员失败")
	}
	defer rows.Close()

	members := make([]catalog.MemberRecord, 0)
	last := -1
	for rows.Next() {
		var (
			position int
			id, name string
			isbn     *string
		)
		if err := rows.Scan(&position, &id, &name, &isbn); err != nil {
			return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询会员失败")
		}
		if position != last {
			members = append(members, catalog.MemberRecord{
				MemberID:      id,
				Name:          name,
				BorrowedISBNs: make([]string, 0),
			})
			last = position
		}
		if isbn != nil {
			m := &members[len(members)-1]
			m.BorrowedISBNs = append(m.BorrowedISBNs, *isbn)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询会员失败")
	}
	return members, nil
}

// Save 在一个事务内覆盖写入快照，批量插入用CopyFrom
func (r *CatalogRepo) Save(ctx context.Context, snap catalog.Snapshot) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE catalog_loans, catalog_members, catalog_books`); err != nil {
			return err
		}

		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"catalog_books"},
			[]string{"position", "title", "author", "isbn", "available"},
			pgx.CopyFromSlice(len(snap.Books), func(i int) ([]any, error) {
				b := snap.Books[i]
				return []any{i, b.Title, b.Author, b.ISBN, b.Available}, nil
			}),
		); err != nil {
			return err
		}

		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"catalog_members"},
			[]string{"position", "member_id", "name"},
			pgx.CopyFromSlice(len(snap.Members), func(i int) ([]any, error) {
				m := snap.Members[i]
				return []any{i, m.MemberID, m.Name}, nil
			}),
		); err != nil {
			return err
		}

		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"catalog_loans"},
			[]string{"member_position", "seq", "isbn"},
			pgx.CopyFromRows(loanRows(snap.Members)),
		); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO catalog_meta (id, saved_at) VALUES (1, NOW())
			ON CONFLICT (id) DO UPDATE SET saved_at = EXCLUDED.saved_at`)
		return err
	})
	if err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "保存馆藏失败")
	}
	return nil
}

func loanRows(members []catalog.MemberRecord) [][]any {
	var rows [][]any
	for pos, m := range members {
		for seq, isbn := range m.BorrowedISBNs {
			rows = append(rows, []any{pos, seq, isbn})
		}
	}
	return rows
}
