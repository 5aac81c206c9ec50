package mdscan

import (
	"context"

	"dermascan/internal/app/domains/entity/etscan"
	"dermascan/internal/app/domains/repo/rpscan"
)

// ScanModule 扫描模块（数据编排层）
type ScanModule struct {
	scanRepo rpscan.ScanRepository
}

// NewScanModule 创建扫描模块
func NewScanModule(scanRepo rpscan.ScanRepository) *ScanModule {
	return &ScanModule{
		scanRepo: scanRepo,
	}
}

// CreateScan 创建扫描记录（数据操作）
func (m *ScanModule) CreateScan(ctx context.Context, scan *etscan.Scan) error {
	return m.scanRepo.Create(ctx, scan)
}

// GetScan 查询扫描记录
func (m *ScanModule) GetScan(ctx context.Context, scanID string) (*etscan.Scan, error) {
	return m.scanRepo.GetByID(ctx, scanID)
}

// ListScansByOwner 分页查询用户的扫描历史
func (m *ScanModule) ListScansByOwner(ctx context.Context, ownerID int64, page, pageSize int) ([]*etscan.Scan, int64, error) {
	return m.scanRepo.ListByOwner(ctx, ownerID, page, pageSize)
}

// UpdateNotes 更新备注
func (m *ScanModule) UpdateNotes(ctx context.Context, scanID string, notes string) error {
	return m.scanRepo.UpdateNotes(ctx, scanID, notes)
}

// DeleteScan 删除扫描记录
func (m *ScanModule) DeleteScan(ctx context.Context, scanID string) error {
	return m.scanRepo.Delete(ctx, scanID)
}
