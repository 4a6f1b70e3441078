package catalog

import (
	"fmt"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Snapshot 馆藏快照（持久化边界使用的纯数据结构）
type Snapshot struct {
	Books   []BookRecord   `json:"books"`
	Members []MemberRecord `json:"members"`
}

// BookRecord 图书记录
type BookRecord struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Available bool   `json:"available"`
}

// MemberRecord 会员记录
type MemberRecord struct {
	MemberID      string   `json:"member_id"`
	Name          string   `json:"name"`
	BorrowedISBNs []string `json:"borrowed_isbns"`
}

// Snapshot 导出当前状态
func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		Books:   make([]BookRecord, len(c.books)),
		Members: make([]MemberRecord, len(c.members)),
	}
	for i, b := range c.books {
		snap.Books[i] = BookRecord{
			Title:     b.Title,
			Author:    b.Author,
			ISBN:      b.ISBN,
			Available: b.Available,
		}
	}
	for i, m := range c.members {
		snap.Members[i] = MemberRecord{
			MemberID:      m.MemberID,
			Name:          m.Name,
			BorrowedISBNs: m.BorrowedISBNs(),
		}
	}
	return snap
}

// Restore 从快照重建目录
// 业务规则:快照必须满足借阅一致性，否则返回ErrCorruptSnapshot
// - 每个在借ISBN只属于一个会员，且对应的第一条图书为借出状态
// - 每本借出的图书必须是该ISBN的第一条，且有会员在借
func Restore(snap Snapshot, opts ...Option) (*Catalog, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	c := New(opts...)
	for _, r := range snap.Books {
		c.books = append(c.books, &Book{
			Title:     r.Title,
			Author:    r.Author,
			ISBN:      r.ISBN,
			Available: r.Available,
		})
	}
	for _, r := range snap.Members {
		m := NewMember(r.MemberID, r.Name)
		for _, isbn := range r.BorrowedISBNs {
			m.Borrow(isbn)
		}
		c.members = append(c.members, m)
	}
	return c, nil
}

// Validate 校验快照一致性
func (s Snapshot) Validate() error {
	first := make(map[string]int, len(s.Books))
	for i, b := range s.Books {
		if _, ok := first[b.ISBN]; !ok {
			first[b.ISBN] = i
		}
	}

	holders := make(map[string]string)
	for _, m := range s.Members {
		for _, isbn := range m.BorrowedISBNs {
			if holder, ok := holders[isbn]; ok {
				return corrupt("ISBN %s 同时被会员 %s 和 %s 借阅", isbn, holder, m.MemberID)
			}
			idx, ok := first[isbn]
			if !ok {
				return corrupt("会员 %s 借阅的ISBN %s 不存在", m.MemberID, isbn)
			}
			if s.Books[idx].Available {
				return corrupt("ISBN %s 在借但图书标记为在架", isbn)
			}
			holders[isbn] = m.MemberID
		}
	}

	for i, b := range s.Books {
		if b.Available {
			continue
		}
		if first[b.ISBN] != i {
			return corrupt("ISBN %s 的重复条目不应处于借出状态", b.ISBN)
		}
		if _, ok := holders[b.ISBN]; !ok {
			return corrupt("ISBN %s 标记为借出但没有借阅人", b.ISBN)
		}
	}
	return nil
}

func corrupt(format string, args ...interface{}) error {
	return apperrors.WrapCode(
		fmt.Errorf("%w: %s", ErrCorruptSnapshot, fmt.Sprintf(format, args...)),
		ErrCorruptSnapshot.Code,
		ErrCorruptSnapshot.Message,
	)
}
