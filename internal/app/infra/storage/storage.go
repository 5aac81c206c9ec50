package storage

import "context"

// BlobStore 图片存储能力接口
// 核心逻辑只依赖 put/delete，读取由静态文件服务独立完成
type BlobStore interface {
	// Put 写入图片并返回全局唯一存储键
	Put(ctx context.Context, data []byte, originalFilename string) (string, error)

	// Delete 删除指定键的图片
	Delete(ctx context.Context, key string) error
}
