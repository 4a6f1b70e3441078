package catalog

import (
	"strings"
	"sync"
)

// Catalog 馆藏聚合根
// 设计说明:
// 1. 独占图书集合和会员集合，对外只返回副本
// 2. 维护跨实体一致性：ISBN在某会员在借列表中 ⇔ 对应图书Available=false，且最多属于一个会员
// 3. 不做任何I/O，不持有全局状态，罚金规则通过Option注入
// 4. 一把读写锁串行化所有修改，借出/归还不会交错
type Catalog struct {
	mu      sync.RWMutex
	books   []*Book
	members []*Member
	fines   FinePolicy
}

// Option 目录构造选项
type Option func(*Catalog)

// WithFinePolicy 指定罚金规则
func WithFinePolicy(policy FinePolicy) Option {
	return func(c *Catalog) {
		c.fines = policy
	}
}

// New 创建空目录
func New(opts ...Option) *Catalog {
	c := &Catalog{
		books:   make([]*Book, 0),
		members: make([]*Member, 0),
		fines:   DefaultFinePolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FinePolicy 当前罚金规则
func (c *Catalog) FinePolicy() FinePolicy {
	return c.fines
}

// =========================================
// 图书操作
// =========================================

// AddBook 录入图书（不校验ISBN唯一）
func (c *Catalog) AddBook(title, author, isbn string) Book {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := NewBook(title, author, isbn)
	c.books = append(c.books, b)
	return *b
}

// RemoveBook 删除所有匹配ISBN的图书，返回删除条数
// 业务规则:
// - 没有匹配时是空操作，不报错
// - 若该ISBN正被借出，同时清除借阅人的在借记录，保持一致性
func (c *Catalog) RemoveBook(isbn string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.books[:0]
	removed := 0
	for _, b := range c.books {
		if b.ISBN == isbn {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(c.books); i++ {
		c.books[i] = nil
	}
	c.books = kept

	if removed > 0 {
		for _, m := range c.members {
			m.Release(isbn)
		}
	}
	return removed
}

// FindByISBN 按插入顺序返回第一条匹配的图书
func (c *Catalog) FindByISBN(isbn string) Lookup[Book] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if b := c.firstBook(isbn); b != nil {
		return Found(*b)
	}
	return NotFound[Book]()
}

// SearchByTitle 书名包含关键词（不区分大小写），保持插入顺序
func (c *Catalog) SearchByTitle(keyword string) []Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	needle := strings.ToLower(keyword)
	res := make([]Book, 0)
	for _, b := range c.books {
		if strings.Contains(strings.ToLower(b.Title), needle) {
			res = append(res, *b)
		}
	}
	return res
}

// ListAllBooks 全部图书（插入顺序）
func (c *Catalog) ListAllBooks() []Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]Book, len(c.books))
	for i, b := range c.books {
		res[i] = *b
	}
	return res
}

// BookCount 图书条数
func (c *Catalog) BookCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.books)
}

// =========================================
// 会员操作
// =========================================

// AddMember 登记会员（不校验ID唯一）
func (c *Catalog) AddMember(memberID, name string) Member {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := NewMember(memberID, name)
	c.members = append(c.members, m)
	return m.clone()
}

// FindMember 按插入顺序返回第一条匹配的会员
func (c *Catalog) FindMember(memberID string) Lookup[Member] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if m := c.firstMember(memberID); m != nil {
		return Found(m.clone())
	}
	return NotFound[Member]()
}

// ListMembers 全部会员（插入顺序）
func (c *Catalog) ListMembers() []Member {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]Member, len(c.members))
	for i, m := range c.members {
		res[i] = m.clone()
	}
	return res
}

// MemberCount 会员条数
func (c *Catalog) MemberCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.members)
}

// =========================================
// 借阅状态机
// =========================================

// Issue 借出图书
// 前置条件按顺序检查，遇到第一个失败即返回:
// 1. 会员存在，否则ErrMemberNotFound
// 2. 图书存在，否则ErrBookNotFound
// 3. 图书在架，否则ErrBookAlreadyIssued
func (c *Catalog) Issue(memberID, isbn string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.firstMember(memberID)
	if m == nil {
		return ErrMemberNotFound
	}
	b := c.firstBook(isbn)
	if b == nil {
		return ErrBookNotFound
	}
	if b.OnLoan() {
		return ErrBookAlreadyIssued
	}

	b.Available = false
	m.Borrow(isbn)
	return nil
}

// Return 归还图书，返回罚金
// 前置条件:
// 1. 会员和图书都存在，否则ErrInvalidReturn
// 2. 必须从该会员名下移除成功，否则ErrNotBorrowedByMember
// 借给别人的书用错误的会员ID归还同样失败，状态不变
func (c *Catalog) Return(memberID, isbn string, daysKept int) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.firstMember(memberID)
	b := c.firstBook(isbn)
	if m == nil || b == nil {
		return 0, ErrInvalidReturn
	}
	if !m.Release(isbn) {
		return 0, ErrNotBorrowedByMember
	}

	b.Available = true
	return c.fines.Calculate(daysKept), nil
}

func (c *Catalog) firstBook(isbn string) *Book {
	for _, b := range c.books {
		if b.ISBN == isbn {
			return b
		}
	}
	return nil
}

func (c *Catalog) firstMember(memberID string) *Member {
	for _, m := range c.members {
		if m.MemberID == memberID {
			return m
		}
	}
	return nil
}
