package storage

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore 本地磁盘存储实现
// 存储键格式: scan-<纳秒时间戳>-<随机数><扩展名>
// 时间戳+随机后缀保证并发上传同名文件也不会冲突，无需中心化序号
type LocalStore struct {
	dir string
}

// NewLocalStore 创建本地存储实例，目录不存在时自动创建
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Put 写入图片并返回存储键
func (s *LocalStore) Put(ctx context.Context, data []byte, originalFilename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	key := fmt.Sprintf("scan-%d-%d%s", time.Now().UnixNano(), rand.Int63n(1_000_000_000), ext)

	path := filepath.Join(s.dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob failed: %w", err)
	}

	return key, nil
}

// Delete 删除指定键的图片
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	// 存储键由 Put 生成，这里再做一次基名约束，防止路径穿越
	path := filepath.Join(s.dir, filepath.Base(key))
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove blob failed: %w", err)
	}
	return nil
}

// Dir 返回存储目录（用于静态文件服务挂载）
func (s *LocalStore) Dir() string {
	return s.dir
}
