package rpscan

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"dermascan/internal/app/domains/entity/etscan"
	"dermascan/internal/app/pkg/errorx"
	"dermascan/internal/common/entity"
)

// ScanRepositoryImpl 扫描记录仓储实现（MySQL）
type ScanRepositoryImpl struct {
	db *gorm.DB
}

// NewScanRepository 创建扫描记录仓储实例
func NewScanRepository(db *gorm.DB) ScanRepository {
	return &ScanRepositoryImpl{db: db}
}

// Create 创建扫描记录，将领域对象转换为 GORM 模型后存储
func (r *ScanRepositoryImpl) Create(ctx context.Context, scan *etscan.Scan) error {
	po, err := r.toGormModel(scan)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(po).Error
}

// GetByID 根据ID查询扫描记录，将 GORM 模型转换为领域对象
func (r *ScanRepositoryImpl) GetByID(ctx context.Context, scanID string) (*etscan.Scan, error) {
	var po entity.Scan
	err := r.db.WithContext(ctx).Where("id = ?", scanID).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrScanNotFound
		}
		return nil, err
	}
	return r.toDomainModel(&po)
}

// ListByOwner 分页查询用户的扫描历史
// 按 created_at 倒序（最新在前），同时返回总数用于计算页数
func (r *ScanRepositoryImpl) ListByOwner(ctx context.Context, ownerID int64, page, pageSize int) ([]*etscan.Scan, int64, error) {
	var total int64
	var pos []entity.Scan

	query := r.db.WithContext(ctx).Model(&entity.Scan{}).Where("owner_id = ?", ownerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&pos).Error; err != nil {
		return nil, 0, err
	}

	scans := make([]*etscan.Scan, 0, len(pos))
	for i := range pos {
		scan, err := r.toDomainModel(&pos[i])
		if err != nil {
			return nil, 0, err
		}
		scans = append(scans, scan)
	}

	return scans, total, nil
}

// UpdateNotes 更新备注并刷新 updated_at
func (r *ScanRepositoryImpl) UpdateNotes(ctx context.Context, scanID string, notes string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Scan{}).
		Where("id = ?", scanID).
		Updates(map[string]interface{}{
			"notes":      notes,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errorx.ErrScanNotFound
	}
	return nil
}

// Delete 删除扫描记录
func (r *ScanRepositoryImpl) Delete(ctx context.Context, scanID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", scanID).Delete(&entity.Scan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errorx.ErrScanNotFound
	}
	return nil
}

// toGormModel 领域对象转换为 GORM 模型
func (r *ScanRepositoryImpl) toGormModel(scan *etscan.Scan) (*entity.Scan, error) {
	resultJSON, err := json.Marshal(scan.Result)
	if err != nil {
		return nil, err
	}

	recsJSON, err := json.Marshal(scan.Recommendations)
	if err != nil {
		return nil, err
	}

	return &entity.Scan{
		ID:              scan.ID,
		OwnerID:         scan.OwnerID,
		ImagePath:       scan.ImagePath,
		Result:          resultJSON,
		Recommendations: recsJSON,
		Notes:           scan.Notes,
		CreatedAt:       scan.CreatedAt,
		UpdatedAt:       scan.UpdatedAt,
	}, nil
}

// toDomainModel GORM 模型转换为领域对象
func (r *ScanRepositoryImpl) toDomainModel(po *entity.Scan) (*etscan.Scan, error) {
	var result etscan.Result
	if err := json.Unmarshal(po.Result, &result); err != nil {
		return nil, err
	}

	var recommendations []string
	if err := json.Unmarshal(po.Recommendations, &recommendations); err != nil {
		return nil, err
	}

	return &etscan.Scan{
		ID:              po.ID,
		OwnerID:         po.OwnerID,
		ImagePath:       po.ImagePath,
		Result:          &result,
		Recommendations: recommendations,
		Notes:           po.Notes,
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
	}, nil
}
