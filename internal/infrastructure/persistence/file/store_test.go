package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/catalog"
)

func sampleSnapshot() catalog.Snapshot {
	c := catalog.New()
	c.AddBook("Clean Code", "Robert C. Martin", "9780132350884")
	c.AddBook("Effective Java", "Joshua Bloch", "9780134685991")
	c.AddMember("M001", "Alice")
	c.AddMember("M002", "Bob")
	if err := c.Issue("M001", "9780134685991"); err != nil {
		panic(err)
	}
	return c.Snapshot()
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "data", "library_data.json"))

	snap := sampleSnapshot()
	require.NoError(t, store.Save(ctx, snap))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)

	// 覆盖写入
	snap.Books = snap.Books[:1]
	snap.Members[0].BorrowedISBNs = []string{}
	snap.Books[0].Available = true
	require.NoError(t, store.Save(ctx, snap))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Books, 1)

	// 没有遗留临时文件
	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("文件不存在", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "missing.json"))
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, catalog.ErrSnapshotNotFound)
	})

	t.Run("文件内容损坏", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, err := NewStore(path).Load(ctx)
		assert.ErrorIs(t, err, catalog.ErrCorruptSnapshot)
	})

	t.Run("类型不匹配", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wrong.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"books":"oops"}`), 0o600))

		_, err := NewStore(path).Load(ctx)
		assert.ErrorIs(t, err, catalog.ErrCorruptSnapshot)
	})

	t.Run("路径是目录", func(t *testing.T) {
		_, err := NewStore(t.TempDir()).Load(ctx)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, catalog.ErrSnapshotNotFound)
	})
}
