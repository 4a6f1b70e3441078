package catalog

import (
	"context"
)

// Repository 馆藏存储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口，infrastructure层提供文件/MySQL/Postgres/Redis实现
// 2. 以整份快照为单位读写，目录本身不感知存储
// 3. 存储中没有数据时Load返回ErrSnapshotNotFound
type Repository interface {
	// Load 读取快照
	Load(ctx context.Context) (Snapshot, error)

	// Save 覆盖写入快照
	Save(ctx context.Context, snap Snapshot) error
}
