package svscan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"dermascan/internal/app/domains/entity/etscan"
	"dermascan/internal/app/domains/modules/mdscan"
	"dermascan/internal/app/infra/predictor"
	"dermascan/internal/app/infra/storage"
	"dermascan/internal/app/pkg/errorx"
	"dermascan/internal/app/pkg/logger"
)

// 分页默认值
const (
	defaultPage     = 1
	defaultPageSize = 10
)

// Notifier 分析完成通知能力（可选依赖，nil 时跳过）
type Notifier interface {
	PublishScanAnalyzed(ctx context.Context, scan *etscan.Scan) error
}

// ScanService 扫描服务，负责分析流水线编排和历史记录操作
type ScanService struct {
	scanModule *mdscan.ScanModule
	blobStore  storage.BlobStore
	predictor  predictor.Predictor
	notifier   Notifier
	log        logger.Logger
}

// NewScanService 创建扫描服务实例
func NewScanService(
	scanModule *mdscan.ScanModule,
	blobStore storage.BlobStore,
	pred predictor.Predictor,
	notifier Notifier,
	log logger.Logger,
) *ScanService {
	return &ScanService{
		scanModule: scanModule,
		blobStore:  blobStore,
		predictor:  pred,
		notifier:   notifier,
		log:        log,
	}
}

// Analyze 分析上传图片（完整业务流程）
// 1. 校验上传约束（大小、类型）
// 2. 写入图片存储，取得存储键
// 3. 调用预测引擎（60s 超时，仅一次尝试）
// 4. 引擎不可达时切换降级分支，流水线不会因此失败
// 5. 按风险分级生成建议列表
// 6. 创建记录并落库，落库失败时回收已写入的图片
// 7. 发布分析完成事件（尽力而为）
func (s *ScanService) Analyze(ctx context.Context, ownerID int64, upload *Upload) (*etscan.Scan, error) {
	if ownerID <= 0 {
		return nil, errorx.Validation("invalid owner")
	}

	if err := validateUpload(upload); err != nil {
		return nil, err
	}

	imagePath, err := s.blobStore.Put(ctx, upload.Data, upload.Filename)
	if err != nil {
		s.log.Errorf(ctx, "store image failed: %v", err)
		return nil, errorx.Persistence("failed to store image")
	}

	result, err := s.classify(ctx, upload)
	if err != nil {
		// classify 只会因编程错误失败，降级分支已兜底
		s.cleanupBlob(ctx, imagePath)
		return nil, err
	}

	recommendations := recommendationsFor(result.RiskLevel)

	scan, err := etscan.NewScan(uuid.New().String(), ownerID, imagePath, result, recommendations)
	if err != nil {
		s.cleanupBlob(ctx, imagePath)
		return nil, fmt.Errorf("create scan entity failed: %w", err)
	}

	if err := s.scanModule.CreateScan(ctx, scan); err != nil {
		s.log.Errorf(ctx, "save scan failed: scan_id=%s, error=%v", scan.ID, err)
		// 记录未落库，必须删除已写入的图片，否则产生孤儿文件
		s.cleanupBlob(ctx, imagePath)
		return nil, errorx.Persistence("failed to save scan record")
	}

	// 发布失败只记录日志，不影响分析结果返回
	if s.notifier != nil {
		if err := s.notifier.PublishScanAnalyzed(ctx, scan); err != nil {
			s.log.Warnf(ctx, "publish scan analyzed event failed: scan_id=%s, error=%v", scan.ID, err)
		}
	}

	return scan, nil
}

// classify 调用预测引擎，失败时切换降级分支
// 预测引擎的任何失败都不能透出给最终用户
func (s *ScanService) classify(ctx context.Context, upload *Upload) (*etscan.Result, error) {
	raw, err := s.predictor.Predict(ctx, upload.Data, upload.Filename)
	if err != nil {
		s.log.Warnf(ctx, "prediction unavailable, using fallback mode: %v", err)
		return fallbackResult(), nil
	}
	return mapPredictorResult(raw), nil
}

// mapPredictorResult 将上游结果映射为规范结果
// benign → low，其余标签（含 malignant）→ high；
// 真实引擎不会产出 medium，medium 只来自降级分支
func mapPredictorResult(raw *predictor.Result) *etscan.Result {
	riskLevel := etscan.RiskHigh
	prediction := "High Risk"
	if raw.RawRiskLevel == "benign" {
		riskLevel = etscan.RiskLow
		prediction = "Low Risk"
	}

	// 上游标签存在时原样保留
	if raw.Prediction != "" {
		prediction = raw.Prediction
	}

	details := raw.Details
	if details == "" {
		details = baseDetails
	}

	// 置信度约束在 [0,100]
	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	return &etscan.Result{
		Prediction: prediction,
		Confidence: confidence,
		RiskLevel:  riskLevel,
		Details:    details,
	}
}

// cleanupBlob 尽力回收图片，失败时记录孤儿文件等待离线清理
func (s *ScanService) cleanupBlob(ctx context.Context, imagePath string) {
	if err := s.blobStore.Delete(ctx, imagePath); err != nil {
		s.log.Warnf(ctx, "orphan blob left behind: path=%s, error=%v", imagePath, err)
	}
}

// GetScan 查询扫描记录（带归属校验）
func (s *ScanService) GetScan(ctx context.Context, scanID string, requesterID int64, requesterRole string) (*etscan.Scan, error) {
	scan, err := s.scanModule.GetScan(ctx, scanID)
	if err != nil {
		if err == errorx.ErrScanNotFound {
			return nil, errorx.NotFound("scan not found")
		}
		return nil, fmt.Errorf("get scan failed: %w", err)
	}

	if !scan.AccessibleBy(requesterID, requesterRole) {
		return nil, errorx.Forbidden("not authorized to access this scan")
	}

	return scan, nil
}

// ListScans 分页查询用户自己的扫描历史
// 返回记录列表、总数和总页数（ceil(total/pageSize)）
func (s *ScanService) ListScans(ctx context.Context, ownerID int64, page, pageSize int) ([]*etscan.Scan, int64, int, error) {
	if page == 0 {
		page = defaultPage
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if page < 0 || pageSize < 0 {
		return nil, 0, 0, errorx.Validation("page and pageSize must be positive integers")
	}

	scans, total, err := s.scanModule.ListScansByOwner(ctx, ownerID, page, pageSize)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("list scans failed: %w", err)
	}

	pages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return scans, total, pages, nil
}

// DeleteScan 删除扫描记录及其图片
// 1. 落库前重新读取记录，基于最新归属做校验
// 2. 删除记录（判定删除是否成功以此为准）
// 3. 尽力删除图片，失败只记录孤儿日志，不影响删除结果
func (s *ScanService) DeleteScan(ctx context.Context, scanID string, requesterID int64, requesterRole string) error {
	scan, err := s.scanModule.GetScan(ctx, scanID)
	if err != nil {
		if err == errorx.ErrScanNotFound {
			return errorx.NotFound("scan not found")
		}
		return fmt.Errorf("get scan failed: %w", err)
	}

	if !scan.AccessibleBy(requesterID, requesterRole) {
		return errorx.Forbidden("not authorized to delete this scan")
	}

	if err := s.scanModule.DeleteScan(ctx, scanID); err != nil {
		if err == errorx.ErrScanNotFound {
			return errorx.NotFound("scan not found")
		}
		s.log.Errorf(ctx, "delete scan failed: scan_id=%s, error=%v", scanID, err)
		return errorx.Persistence("failed to delete scan")
	}

	s.cleanupBlob(ctx, scan.ImagePath)

	return nil
}

// UpdateNotes 更新备注（同删除一致的归属规则）
func (s *ScanService) UpdateNotes(ctx context.Context, scanID string, requesterID int64, requesterRole string, notes string) (*etscan.Scan, error) {
	if notes == "" {
		return nil, errorx.Validation("notes are required")
	}

	// 变更前重新读取，避免基于过期的归属信息操作
	scan, err := s.scanModule.GetScan(ctx, scanID)
	if err != nil {
		if err == errorx.ErrScanNotFound {
			return nil, errorx.NotFound("scan not found")
		}
		return nil, fmt.Errorf("get scan failed: %w", err)
	}

	if !scan.AccessibleBy(requesterID, requesterRole) {
		return nil, errorx.Forbidden("not authorized to update this scan")
	}

	if err := scan.UpdateNotes(notes); err != nil {
		return nil, errorx.Validation(err.Error())
	}

	if err := s.scanModule.UpdateNotes(ctx, scanID, notes); err != nil {
		s.log.Errorf(ctx, "update notes failed: scan_id=%s, error=%v", scanID, err)
		return nil, errorx.Persistence("failed to update notes")
	}

	return scan, nil
}
