package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Scan 扫描记录实体
type Scan struct {
	// 基础字段
	ID      string `gorm:"column:id;primaryKey;type:varchar(64)"`
	OwnerID int64  `gorm:"column:owner_id;not null;index:idx_owner_created,priority:1"`

	// 图片存储键（blob key）
	ImagePath string `gorm:"column:image_path;type:varchar(255);not null"`

	// 分析结果与建议
	Result          datatypes.JSON `gorm:"column:result;type:json;not null"`
	Recommendations datatypes.JSON `gorm:"column:recommendations;type:json;not null"`

	// 用户备注
	Notes string `gorm:"column:notes;type:text"`

	// 时间戳
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_owner_created,priority:2"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (Scan) TableName() string {
	return "scans"
}
