package scan

import (
	"github.com/gin-gonic/gin"

	"dermascan/internal/app/pkg/ginx"
	"dermascan/internal/app/server/middlewares"
)

// Delete 删除扫描记录及其图片
// DELETE /api/v1/scans/:id
func (h *ScanHandler) Delete(c *gin.Context) {
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

	if err := h.scanService.DeleteScan(c.Request.Context(), scanID, requesterID, requesterRole); err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Success(c, gin.H{"message": "Scan deleted successfully"})
}
