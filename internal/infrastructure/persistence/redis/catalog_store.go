package redis

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/internal/domain/catalog"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// CatalogStore 馆藏快照存储（单个String key，整体JSON）
// Key示例：library:catalog
type CatalogStore struct {
	client redis.UniversalClient
	key    string
}

// NewCatalogStore 创建快照存储
func NewCatalogStore(client redis.UniversalClient, key string) *CatalogStore {
	return &CatalogStore{client: client, key: key}
}

// Load 读取快照，key不存在返回ErrSnapshotNotFound
func (s *CatalogStore) Load(ctx context.Context) (catalog.Snapshot, error) {
	var snap catalog.Snapshot

	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return snap, catalog.ErrSnapshotNotFound
		}
		return snap, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "读取馆藏失败")
	}

	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &snap); err != nil {
		return snap, apperrors.WrapCode(
			fmt.Errorf("%w: %v", catalog.ErrCorruptSnapshot, err),
			apperrors.ErrCodeCorruptSnapshot, "馆藏数据已损坏")
	}
	return snap, nil
}

// Save 覆盖写入快照（不过期）
func (s *CatalogStore) Save(ctx context.Context, snap catalog.Snapshot) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(snap)
	if err != nil {
		return apperrors.Wrap(err, "序列化馆藏失败")
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "保存馆藏失败")
	}
	return nil
}
