package response

import (
	"dermascan/internal/app/domains/entity/etscan"
	"dermascan/internal/app/domains/entity/etuser"
)

// FromScanEntity 将扫描领域对象转换为响应 DTO
func FromScanEntity(scan *etscan.Scan) *ScanResponse {
	return &ScanResponse{
		ID:              scan.ID,
		OwnerID:         scan.OwnerID,
		ImagePath:       scan.ImagePath,
		Result: ResultResponse{
			Prediction: scan.Result.Prediction,
			Confidence: scan.Result.Confidence,
			RiskLevel:  string(scan.Result.RiskLevel),
			Details:    scan.Result.Details,
		},
		Recommendations: scan.Recommendations,
		Notes:           scan.Notes,
		CreatedAt:       scan.CreatedAt,
		UpdatedAt:       scan.UpdatedAt,
	}
}

// FromScanEntities 批量转换扫描记录
func FromScanEntities(scans []*etscan.Scan) []*ScanResponse {
	out := make([]*ScanResponse, 0, len(scans))
	for _, scan := range scans {
		out = append(out, FromScanEntity(scan))
	}
	return out
}

// FromUserEntity 将用户领域对象转换为响应 DTO
func FromUserEntity(user *etuser.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
