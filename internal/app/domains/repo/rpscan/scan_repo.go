package rpscan

import (
	"context"

	"dermascan/internal/app/domains/entity/etscan"
)

// ScanRepository 扫描记录仓储接口（只定义，不实现）
// 实现在 infra/persistence 层
type ScanRepository interface {
	// Create 创建扫描记录
	Create(ctx context.Context, scan *etscan.Scan) error

	// GetByID 根据ID查询扫描记录，不存在时返回 errorx.ErrScanNotFound
	GetByID(ctx context.Context, scanID string) (*etscan.Scan, error)

	// ListByOwner 分页查询指定用户的扫描记录，按创建时间倒序
	ListByOwner(ctx context.Context, ownerID int64, page, pageSize int) ([]*etscan.Scan, int64, error)

	// UpdateNotes 更新备注并刷新 updated_at
	UpdateNotes(ctx context.Context, scanID string, notes string) error

	// Delete 删除扫描记录
	Delete(ctx context.Context, scanID string) error
}
