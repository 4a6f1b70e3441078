package catalog

// Book 图书实体
// 设计说明:
// 1. ISBN是业务标识，但目录不强制唯一（允许重复录入，查找取第一条）
// 2. 创建后只有Available会变化，且只能由借出/归还操作修改
type Book struct {
	Title     string
	Author    string
	ISBN      string
	Available bool
}

// NewBook 创建新图书(工厂方法)，默认在架可借
func NewBook(title, author, isbn string) *Book {
	return &Book{
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		Available: true,
	}
}

// OnLoan 是否已借出
func (b *Book) OnLoan() bool {
	return !b.Available
}

// Member 会员实体
// 设计说明:
// 1. borrowed保存当前在借的ISBN，保持借出顺序（仅用于展示）
// 2. 外部只能通过Borrow/Release修改，Release返回是否真的移除
type Member struct {
	MemberID string
	Name     string
	borrowed []string
}

// NewMember 创建会员，在借列表为空
func NewMember(memberID, name string) *Member {
	return &Member{
		MemberID: memberID,
		Name:     name,
		borrowed: make([]string, 0),
	}
}

// BorrowedISBNs 返回在借ISBN的副本
func (m Member) BorrowedISBNs() []string {
	out := make([]string, len(m.borrowed))
	copy(out, m.borrowed)
	return out
}

// HasBorrowed 是否在借该ISBN
func (m Member) HasBorrowed(isbn string) bool {
	for _, held := range m.borrowed {
		if held == isbn {
			return true
		}
	}
	return false
}

// Borrow 记录借出
func (m *Member) Borrow(isbn string) {
	m.borrowed = append(m.borrowed, isbn)
}

// Release 移除一条在借记录
// 返回false表示该会员名下没有这个ISBN
func (m *Member) Release(isbn string) bool {
	for i, held := range m.borrowed {
		if held == isbn {
			m.borrowed = append(m.borrowed[:i], m.borrowed[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Member) clone() Member {
	return Member{
		MemberID: m.MemberID,
		Name:     m.Name,
		borrowed: m.BorrowedISBNs(),
	}
}
