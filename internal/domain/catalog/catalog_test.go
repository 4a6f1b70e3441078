package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := New()
	c.AddBook("Clean Code", "Robert C. Martin", "9780132350884")
	c.AddBook("Introduction to Algorithms", "Cormen et al", "9780262033848")
	c.AddBook("Effective Java", "Joshua Bloch", "9780134685991")
	c.AddMember("M001", "Alice")
	c.AddMember("M002", "Bob")
	return c
}

func requireBook(t *testing.T, c *Catalog, isbn string) Book {
	t.Helper()
	b, ok := c.FindByISBN(isbn).Get()
	require.True(t, ok, "图书%s应该存在", isbn)
	return b
}

func requireMember(t *testing.T, c *Catalog, id string) Member {
	t.Helper()
	m, ok := c.FindMember(id).Get()
	require.True(t, ok, "会员%s应该存在", id)
	return m
}

func TestCatalog_IssueReturnRoundTrip(t *testing.T) {
	c := newSeededCatalog(t)

	require.NoError(t, c.Issue("M001", "9780132350884"))
	assert.False(t, requireBook(t, c, "9780132350884").Available)
	assert.Equal(t, []string{"9780132350884"}, requireMember(t, c, "M001").BorrowedISBNs())

	fine, err := c.Return("M001", "9780132350884", 14)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fine)
	assert.True(t, requireBook(t, c, "9780132350884").Available)
	assert.Empty(t, requireMember(t, c, "M001").BorrowedISBNs())
}

func TestCatalog_Issue(t *testing.T) {
	t.Run("会员不存在优先于图书不存在", func(t *testing.T) {
		c := newSeededCatalog(t)
		err := c.Issue("M999", "nope")
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})

	t.Run("图书不存在", func(t *testing.T) {
		c := newSeededCatalog(t)
		err := c.Issue("M001", "nope")
		assert.ErrorIs(t, err, ErrBookNotFound)
		assert.Empty(t, requireMember(t, c, "M001").BorrowedISBNs())
	})

	t.Run("已借出的书不能再借", func(t *testing.T) {
		c := newSeededCatalog(t)
		require.NoError(t, c.Issue("M001", "9780262033848"))

		err := c.Issue("M002", "9780262033848")
		assert.ErrorIs(t, err, ErrBookAlreadyIssued)
		assert.Equal(t, []string{"9780262033848"}, requireMember(t, c, "M001").BorrowedISBNs())
		assert.Empty(t, requireMember(t, c, "M002").BorrowedISBNs())

		// 同一会员重复借同一本也失败
		assert.ErrorIs(t, c.Issue("M001", "9780262033848"), ErrBookAlreadyIssued)
	})

	t.Run("借阅顺序保留", func(t *testing.T) {
		c := newSeededCatalog(t)
		require.NoError(t, c.Issue("M002", "9780134685991"))
		require.NoError(t, c.Issue("M002", "9780132350884"))
		assert.Equal(t, []string{"9780134685991", "9780132350884"}, requireMember(t, c, "M002").BorrowedISBNs())
	})
}

func TestCatalog_Return(t *testing.T) {
	t.Run("会员不存在", func(t *testing.T) {
		c := newSeededCatalog(t)
		_, err := c.Return("M999", "9780132350884", 3)
		assert.ErrorIs(t, err, ErrInvalidReturn)
	})

	t.Run("图书不存在", func(t *testing.T) {
		c := newSeededCatalog(t)
		_, err := c.Return("M001", "nope", 3)
		assert.ErrorIs(t, err, ErrInvalidReturn)
	})

	t.Run("未借阅的书", func(t *testing.T) {
		c := newSeededCatalog(t)
		_, err := c.Return("M001", "9780132350884", 3)
		assert.ErrorIs(t, err, ErrNotBorrowedByMember)
		assert.True(t, requireBook(t, c, "9780132350884").Available)
	})

	t.Run("借给别人的书用错误会员归还", func(t *testing.T) {
		c := newSeededCatalog(t)
		require.NoError(t, c.Issue("M001", "9780132350884"))

		fine, err := c.Return("M002", "9780132350884", 1)
		assert.ErrorIs(t, err, ErrNotBorrowedByMember)
		assert.Equal(t, 0.0, fine)
		assert.False(t, requireBook(t, c, "9780132350884").Available)
		assert.Equal(t, []string{"9780132350884"}, requireMember(t, c, "M001").BorrowedISBNs())
	})

	t.Run("超期罚金", func(t *testing.T) {
		c := newSeededCatalog(t)
		require.NoError(t, c.Issue("M001", "9780132350884"))
		fine, err := c.Return("M001", "9780132350884", 20)
		require.NoError(t, err)
		assert.Equal(t, 60.0, fine)
	})

	t.Run("自定义罚金规则", func(t *testing.T) {
		c := New(WithFinePolicy(FinePolicy{AllowedDays: 7, DailyFine: 2.5}))
		c.AddBook("Go", "Pike", "1")
		c.AddMember("M1", "Rob")
		require.NoError(t, c.Issue("M1", "1"))
		fine, err := c.Return("M1", "1", 9)
		require.NoError(t, err)
		assert.Equal(t, 5.0, fine)
	})
}

func TestCatalog_Books(t *testing.T) {
	t.Run("新书默认在架", func(t *testing.T) {
		c := New()
		b := c.AddBook("Go", "Pike", "1")
		assert.True(t, b.Available)
	})

	t.Run("搜索不区分大小写", func(t *testing.T) {
		c := newSeededCatalog(t)
		res := c.SearchByTitle("clean")
		require.Len(t, res, 1)
		assert.Equal(t, "Clean Code", res[0].Title)

		res = c.SearchByTitle("IN")
		require.Len(t, res, 1)
		assert.Equal(t, "Introduction to Algorithms", res[0].Title)
	})

	t.Run("搜索无结果返回空切片", func(t *testing.T) {
		c := newSeededCatalog(t)
		res := c.SearchByTitle("rust")
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("删除不存在的ISBN是空操作", func(t *testing.T) {
		c := newSeededCatalog(t)
		before := c.ListAllBooks()
		assert.Equal(t, 0, c.RemoveBook("nope"))
		assert.Equal(t, before, c.ListAllBooks())
	})

	t.Run("删除所有重复条目", func(t *testing.T) {
		c := newSeededCatalog(t)
		c.AddBook("Clean Code 2nd", "Robert C. Martin", "9780132350884")
		assert.Equal(t, 2, c.RemoveBook("9780132350884"))
		assert.False(t, c.FindByISBN("9780132350884").IsFound())
		assert.Equal(t, 2, c.BookCount())
	})

	t.Run("重复ISBN查找取第一条", func(t *testing.T) {
		c := New()
		c.AddBook("First", "A", "dup")
		c.AddBook("Second", "B", "dup")
		b := requireBook(t, c, "dup")
		assert.Equal(t, "First", b.Title)
	})

	t.Run("删除在借图书同时清除借阅记录", func(t *testing.T) {
		c := newSeededCatalog(t)
		require.NoError(t, c.Issue("M001", "9780132350884"))
		c.RemoveBook("9780132350884")
		assert.Empty(t, requireMember(t, c, "M001").BorrowedISBNs())
		require.NoError(t, c.Snapshot().Validate())
	})

	t.Run("返回的是副本", func(t *testing.T) {
		c := newSeededCatalog(t)
		books := c.ListAllBooks()
		books[0].Available = false
		assert.True(t, requireBook(t, c, books[0].ISBN).Available)
	})
}

func TestCatalog_Members(t *testing.T) {
	t.Run("查找不存在的会员", func(t *testing.T) {
		c := newSeededCatalog(t)
		_, ok := c.FindMember("nope").Get()
		assert.False(t, ok)
	})

	t.Run("重复ID取第一条", func(t *testing.T) {
		c := New()
		c.AddMember("M1", "First")
		c.AddMember("M1", "Second")
		assert.Equal(t, "First", requireMember(t, c, "M1").Name)
		assert.Equal(t, 2, c.MemberCount())
	})

	t.Run("会员副本不影响目录", func(t *testing.T) {
		c := newSeededCatalog(t)
		require.NoError(t, c.Issue("M001", "9780132350884"))
		m := requireMember(t, c, "M001")
		assert.True(t, m.Release("9780132350884"))
		assert.True(t, requireMember(t, c, "M001").HasBorrowed("9780132350884"))
	})
}

func TestCatalog_ConcurrentIssue(t *testing.T) {
	c := New()
	c.AddBook("Go", "Pike", "1")
	for _, id := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		c.AddMember(id, id)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	success := 0
	for _, m := range c.ListMembers() {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if c.Issue(id, "1") == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(m.MemberID)
	}
	wg.Wait()

	assert.Equal(t, 1, success, "同一本书只能借出一次")
	require.NoError(t, c.Snapshot().Validate())
}
