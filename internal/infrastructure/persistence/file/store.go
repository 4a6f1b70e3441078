package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/xiebiao/library/internal/domain/catalog"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store 本地JSON文件存储（默认驱动）
// 写入先落到同目录临时文件再rename，进程崩溃不会留下半个文件
type Store struct {
	path string
}

// NewStore 创建文件存储
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path 快照文件路径
func (s *Store) Path() string {
	return s.path
}

// Load 读取快照，文件不存在返回ErrSnapshotNotFound
func (s *Store) Load(ctx context.Context) (catalog.Snapshot, error) {
	var snap catalog.Snapshot
	if err := ctx.Err(); err != nil {
		return snap, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return snap, catalog.ErrSnapshotNotFound
		}
		return snap, apperrors.WrapCode(err, apperrors.ErrCodeStorageError, "读取馆藏文件失败")
	}

	if !jsoniter.ConfigFastest.Valid(data) {
		return snap, apperrors.WrapCode(
			fmt.Errorf("%w: %s不是合法的JSON", catalog.ErrCorruptSnapshot, s.path),
			apperrors.ErrCodeCorruptSnapshot, "馆藏数据已损坏")
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, apperrors.WrapCode(
			fmt.Errorf("%w: %v", catalog.ErrCorruptSnapshot, err),
			apperrors.ErrCodeCorruptSnapshot, "馆藏数据已损坏")
	}
	return snap, nil
}

// Save 原子写入快照
func (s *Store) Save(ctx context.Context, snap catalog.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, "序列化馆藏失败")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeStorageError, "创建数据目录失败")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeStorageError, "写入馆藏文件失败")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperrors.WrapCode(err, apperrors.ErrCodeStorageError, "写入馆藏文件失败")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return apperrors.WrapCode(err, apperrors.ErrCodeStorageError, "写入馆藏文件失败")
	}
	if err := tmp.Close(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeStorageError, "写入馆藏文件失败")
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeStorageError, "写入馆藏文件失败")
	}
	return nil
}
