package scan

import (
	"errors"

	"github.com/gin-gonic/gin"

	"dermascan/internal/app/domains/services/svscan"
	"dermascan/internal/app/pkg/errorx"
	"dermascan/internal/app/pkg/ginx"
	"dermascan/internal/app/pkg/logger"
)

// ScanHandler 扫描 HTTP 处理器
type ScanHandler struct {
	scanService *svscan.ScanService
	log         logger.Logger
}

// NewScanHandler 创建扫描处理器实例
func NewScanHandler(scanService *svscan.ScanService, log logger.Logger) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		log:         log,
	}
}

// respondError 按错误类型映射响应
// 业务错误带着自身状态码和文案透出，其余一律按 500 通用文案处理
func (h *ScanHandler) respondError(c *gin.Context, err error) {
	var be *errorx.BusinessError
	if errors.As(err, &be) {
		ginx.Error(c, be.Code, be.Message)
		return
	}

	h.log.Errorf(c.Request.Context(), "scan handler internal error: %v", err)
	ginx.InternalError(c, "Something went wrong!")
}
