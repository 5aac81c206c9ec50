package response

import "time"

// ScanResponse 扫描记录响应
type ScanResponse struct {
	ID              string         `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	OwnerID         int64          `json:"owner_id" example:"175910001001"`
	ImagePath       string         `json:"image_path" example:"scan-1735689600123456789-42.jpg"`
	Result          ResultResponse `json:"result"`
	Recommendations []string       `json:"recommendations"`
	Notes           string         `json:"notes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// ResultResponse 分析结果响应
type ResultResponse struct {
	Prediction string  `json:"prediction" example:"Low Risk"`
	Confidence float64 `json:"confidence" example:"92"`
	RiskLevel  string  `json:"riskLevel" example:"low"`
	Details    string  `json:"details"`
}

// ScanListResponse 扫描历史响应（含分页元信息）
type ScanListResponse struct {
	Scans      []*ScanResponse `json:"scans"`
	Pagination Pagination      `json:"pagination"`
}

// Pagination 分页元信息
type Pagination struct {
	Total int64 `json:"total" example:"42"`
	Page  int   `json:"page" example:"1"`
	Pages int   `json:"pages" example:"5"`
}
