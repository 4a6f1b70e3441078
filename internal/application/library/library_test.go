package library

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/pkg/logger"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Load(ctx context.Context) (catalog.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(catalog.Snapshot), args.Error(1)
}

func (m *mockRepository) Save(ctx context.Context, snap catalog.Snapshot) error {
	return m.Called(ctx, snap).Error(0)
}

func TestLoadCatalogUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("从存储恢复", func(t *testing.T) {
		snap := catalog.Snapshot{
			Books:   []catalog.BookRecord{{Title: "Go", Author: "Pike", ISBN: "1", Available: false}},
			Members: []catalog.MemberRecord{{MemberID: "A", Name: "Ann", BorrowedISBNs: []string{"1"}}},
		}
		repo := new(mockRepository)
		repo.On("Load", mock.Anything).Return(snap, nil)

		res := NewLoadCatalogUseCase(repo, LoadOptions{SeedOnEmpty: true}, logger.Discard()).Execute(ctx)
		assert.Equal(t, SourceStore, res.Source)
		assert.False(t, res.Seeded)
		assert.NoError(t, res.Err)
		assert.Equal(t, snap, res.Catalog.Snapshot())
	})

	t.Run("存储为空时写入示例数据", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Load", mock.Anything).Return(catalog.Snapshot{}, catalog.ErrSnapshotNotFound)

		res := NewLoadCatalogUseCase(repo, LoadOptions{SeedOnEmpty: true}, logger.Discard()).Execute(ctx)
		assert.Equal(t, SourceEmpty, res.Source)
		assert.NoError(t, res.Err, "没有数据不算错误")
		assert.True(t, res.Seeded)
		assert.Equal(t, 3, res.Catalog.BookCount())
		assert.Equal(t, 2, res.Catalog.MemberCount())

		b, ok := res.Catalog.FindByISBN("9780262033848").Get()
		require.True(t, ok)
		assert.Equal(t, "Introduction to Algorithms", b.Title)
	})

	t.Run("损坏的快照退化为空馆藏", func(t *testing.T) {
		corrupt := catalog.Snapshot{Books: []catalog.BookRecord{{ISBN: "1", Available: false}}}
		repo := new(mockRepository)
		repo.On("Load", mock.Anything).Return(corrupt, nil)

		res := NewLoadCatalogUseCase(repo, LoadOptions{}, logger.Discard()).Execute(ctx)
		assert.Equal(t, SourceEmpty, res.Source)
		assert.ErrorIs(t, res.Err, catalog.ErrCorruptSnapshot)
		assert.Equal(t, 0, res.Catalog.BookCount())
		assert.False(t, res.Seeded)
	})

	t.Run("存储故障退化为空馆藏", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Load", mock.Anything).Return(catalog.Snapshot{}, errors.New("connection refused"))

		res := NewLoadCatalogUseCase(repo, LoadOptions{}, logger.Discard()).Execute(ctx)
		assert.Equal(t, SourceEmpty, res.Source)
		assert.Error(t, res.Err)
		require.NotNil(t, res.Catalog)
		assert.Empty(t, res.Catalog.ListAllBooks())
	})

	t.Run("只缺会员时只补会员", func(t *testing.T) {
		snap := catalog.Snapshot{Books: []catalog.BookRecord{{Title: "Go", ISBN: "1", Available: true}}}
		repo := new(mockRepository)
		repo.On("Load", mock.Anything).Return(snap, nil)

		res := NewLoadCatalogUseCase(repo, LoadOptions{SeedOnEmpty: true}, logger.Discard()).Execute(ctx)
		assert.True(t, res.Seeded)
		assert.Equal(t, 1, res.Catalog.BookCount())
		assert.Equal(t, 2, res.Catalog.MemberCount())
	})

	t.Run("罚金规则来自配置", func(t *testing.T) {
		policy := catalog.FinePolicy{AllowedDays: 7, DailyFine: 1}
		repo := new(mockRepository)
		repo.On("Load", mock.Anything).Return(catalog.Snapshot{}, catalog.ErrSnapshotNotFound)

		res := NewLoadCatalogUseCase(repo, LoadOptions{FinePolicy: policy}, logger.Discard()).Execute(ctx)
		assert.Equal(t, policy, res.Catalog.FinePolicy())
	})
}

func TestSaveCatalogUseCase(t *testing.T) {
	ctx := context.Background()
	cat := catalog.New()
	cat.AddBook("Go", "Pike", "1")
	cat.AddMember("A", "Ann")

	t.Run("保存成功", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Save", mock.Anything, cat.Snapshot()).Return(nil).Once()

		resp, err := NewSaveCatalogUseCase(cat, repo, logger.Discard()).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, &SaveCatalogResponse{Books: 1, Members: 1}, resp)
		repo.AssertExpectations(t)
	})

	t.Run("保存失败不影响内存", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := NewSaveCatalogUseCase(cat, repo, logger.Discard()).Execute(ctx)
		assert.Error(t, err)
		assert.Equal(t, 1, cat.BookCount())
	})
}

// lastWriteRepository 只保留最后一次写入的快照，第一次写入故意变慢
type lastWriteRepository struct {
	mu    sync.Mutex
	calls int
	last  catalog.Snapshot
}

func (r *lastWriteRepository) Load(context.Context) (catalog.Snapshot, error) {
	return catalog.Snapshot{}, catalog.ErrSnapshotNotFound
}

func (r *lastWriteRepository) Save(_ context.Context, snap catalog.Snapshot) error {
	r.mu.Lock()
	r.calls++
	first := r.calls == 1
	r.mu.Unlock()

	if first {
		time.Sleep(20 * time.Millisecond)
	}

	r.mu.Lock()
	r.last = snap
	r.mu.Unlock()
	return nil
}

func TestSaveCatalogUseCase_ConcurrentSavesKeepLatest(t *testing.T) {
	ctx := context.Background()
	cat := catalog.New()
	repo := &lastWriteRepository{}
	uc := NewSaveCatalogUseCase(cat, repo, logger.Discard())

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cat.AddBook(fmt.Sprintf("Book %d", i), "A", fmt.Sprintf("isbn-%d", i))
			_, err := uc.Execute(ctx)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, writers, repo.calls)
	assert.Len(t, repo.last.Books, writers, "最后写入的快照必须包含全部修改")
}

func TestAutoSaver(t *testing.T) {
	ctx := context.Background()
	cat := catalog.New()

	t.Run("关闭时不保存", func(t *testing.T) {
		repo := new(mockRepository)
		NewAutoSaver(NewSaveCatalogUseCase(cat, repo, logger.Discard()), false, logger.Discard()).Commit(ctx)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("开启时每次提交都保存", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil).Twice()

		saver := NewAutoSaver(NewSaveCatalogUseCase(cat, repo, logger.Discard()), true, logger.Discard())
		saver.Commit(ctx)
		saver.Commit(ctx)
		repo.AssertExpectations(t)
	})

	t.Run("保存失败不panic", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		saver := NewAutoSaver(NewSaveCatalogUseCase(cat, repo, logger.Discard()), true, logger.Discard())
		assert.NotPanics(t, func() { saver.Commit(ctx) })
	})
}
