package etscan

import (
	"errors"
	"time"
)

// 错误定义
var (
	ErrInvalidScanID      = errors.New("scan ID cannot be empty")
	ErrInvalidOwnerID     = errors.New("invalid owner ID")
	ErrInvalidImagePath   = errors.New("image path cannot be empty")
	ErrNilResult          = errors.New("analysis result cannot be nil")
	ErrInvalidConfidence  = errors.New("confidence must be within [0,100]")
	ErrInvalidRiskLevel   = errors.New("unknown risk level")
	ErrEmptyRecommendList = errors.New("recommendations cannot be empty")
	ErrEmptyNotes         = errors.New("notes cannot be empty")
)

// RiskLevel 风险分级
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid 判断是否为合法风险分级
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Scan 皮肤扫描聚合根（领域对象）
type Scan struct {
	ID              string    // 扫描ID (UUID)
	OwnerID         int64     // 提交用户ID，创建后不可变
	ImagePath       string    // 图片存储键，创建后不可变
	Result          *Result   // 分析结果
	Recommendations []string  // 建议列表，仅由 RiskLevel 决定
	Notes           string    // 用户备注
	CreatedAt       time.Time // 创建时间
	UpdatedAt       time.Time // 更新时间
}

// Result 分析结果（值对象）
type Result struct {
	Prediction string    `json:"prediction"`
	Confidence float64   `json:"confidence"`
	RiskLevel  RiskLevel `json:"riskLevel"`
	Details    string    `json:"details"`
}

// NewScan 创建扫描记录（工厂方法）
// 记录只能带着完整的分析结果创建，不存在"分析中"的中间态
func NewScan(id string, ownerID int64, imagePath string, result *Result, recommendations []string) (*Scan, error) {
	// 业务规则校验
	if id == "" {
		return nil, ErrInvalidScanID
	}
	if ownerID <= 0 {
		return nil, ErrInvalidOwnerID
	}
	if imagePath == "" {
		return nil, ErrInvalidImagePath
	}
	if result == nil {
		return nil, ErrNilResult
	}
	if !result.RiskLevel.Valid() {
		return nil, ErrInvalidRiskLevel
	}
	if result.Confidence < 0 || result.Confidence > 100 {
		return nil, ErrInvalidConfidence
	}
	if len(recommendations) == 0 {
		return nil, ErrEmptyRecommendList
	}

	now := time.Now()
	return &Scan{
		ID:              id,
		OwnerID:         ownerID,
		ImagePath:       imagePath,
		Result:          result,
		Recommendations: recommendations,
		Notes:           "",
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// UpdateNotes 更新备注（领域行为）
func (s *Scan) UpdateNotes(notes string) error {
	if notes == "" {
		return ErrEmptyNotes
	}
	s.Notes = notes
	s.UpdatedAt = time.Now()
	return nil
}

// AccessibleBy 归属校验：仅记录所有者或管理员可操作
func (s *Scan) AccessibleBy(requesterID int64, requesterRole string) bool {
	return s.OwnerID == requesterID || requesterRole == RoleAdmin
}

// RoleAdmin 管理员角色标识
const RoleAdmin = "admin"
