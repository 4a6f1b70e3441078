package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinePolicy_Calculate(t *testing.T) {
	p := DefaultFinePolicy()
	cases := map[int]float64{
		0:  0,
		10: 0,
		14: 0,
		15: 10,
		20: 60,
		-3: 0,
	}
	for days, want := range cases {
		assert.Equal(t, want, p.Calculate(days), "daysKept=%d", days)
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	c := newSeededCatalog(t)
	require.NoError(t, c.Issue("M002", "9780134685991"))

	restored, err := Restore(c.Snapshot())
	require.NoError(t, err)

	assert.Equal(t, c.ListAllBooks(), restored.ListAllBooks())
	assert.Equal(t, c.Snapshot(), restored.Snapshot())

	// 恢复后的状态机照常工作
	fine, err := restored.Return("M002", "9780134685991", 16)
	require.NoError(t, err)
	assert.Equal(t, 20.0, fine)
}

func TestSnapshot_Validate(t *testing.T) {
	onLoan := BookRecord{Title: "Go", ISBN: "1", Available: false}
	onShelf := BookRecord{Title: "Go", ISBN: "1", Available: true}

	t.Run("空快照合法", func(t *testing.T) {
		assert.NoError(t, Snapshot{}.Validate())
	})

	t.Run("同一ISBN被两个会员借阅", func(t *testing.T) {
		snap := Snapshot{
			Books: []BookRecord{onLoan},
			Members: []MemberRecord{
				{MemberID: "A", BorrowedISBNs: []string{"1"}},
				{MemberID: "B", BorrowedISBNs: []string{"1"}},
			},
		}
		assert.ErrorIs(t, snap.Validate(), ErrCorruptSnapshot)
	})

	t.Run("在借ISBN对应图书在架", func(t *testing.T) {
		snap := Snapshot{
			Books:   []BookRecord{onShelf},
			Members: []MemberRecord{{MemberID: "A", BorrowedISBNs: []string{"1"}}},
		}
		assert.ErrorIs(t, snap.Validate(), ErrCorruptSnapshot)
	})

	t.Run("在借ISBN不存在", func(t *testing.T) {
		snap := Snapshot{Members: []MemberRecord{{MemberID: "A", BorrowedISBNs: []string{"1"}}}}
		assert.ErrorIs(t, snap.Validate(), ErrCorruptSnapshot)
	})

	t.Run("借出的书没有借阅人", func(t *testing.T) {
		snap := Snapshot{Books: []BookRecord{onLoan}}
		assert.ErrorIs(t, snap.Validate(), ErrCorruptSnapshot)
	})

	t.Run("重复条目处于借出状态", func(t *testing.T) {
		snap := Snapshot{
			Books:   []BookRecord{onLoan, onLoan},
			Members: []MemberRecord{{MemberID: "A", BorrowedISBNs: []string{"1"}}},
		}
		assert.ErrorIs(t, snap.Validate(), ErrCorruptSnapshot)
	})

	t.Run("Restore拒绝损坏快照", func(t *testing.T) {
		_, err := Restore(Snapshot{Books: []BookRecord{onLoan}})
		assert.ErrorIs(t, err, ErrCorruptSnapshot)
	})
}

func TestLookup(t *testing.T) {
	l := NotFound[Book]()
	_, err := l.OrErr(ErrBookNotFound)
	assert.ErrorIs(t, err, ErrBookNotFound)

	b, err := Found(Book{ISBN: "1"}).OrErr(ErrBookNotFound)
	require.NoError(t, err)
	assert.Equal(t, "1", b.ISBN)
}
