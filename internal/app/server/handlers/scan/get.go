package scan

import (
	"github.com/gin-gonic/gin"

	"dermascan/internal/app/domains/apimodel/response"
	"dermascan/internal/app/pkg/ginx"
	"dermascan/internal/app/server/middlewares"
)

// Get 查询单条扫描记录
// GET /api/v1/scans/:id
func (h *ScanHandler) Get(c *gin.Context) {
	requesterID, requesterRole, ok := middlewares.Requester(c)
	if !ok {
		ginx.Unauthorized(c, "Access denied. No token provided.")
		return
	}

	scanID := c.Param("id")
	if scanID == "" {
		ginx.BadRequest(c, "scan id required")
		return
	}

	scan, err := h.scanService.GetScan(c.Request.Context(), scanID, requesterID, requesterRole)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Success(c, response.FromScanEntity(scan))
}
