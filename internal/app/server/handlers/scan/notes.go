package scan

import (
	"github.com/gin-gonic/gin"

	"dermascan/internal/app/domains/apimodel/request"
	"dermascan/internal/app/domains/apimodel/response"
	"dermascan/internal/app/pkg/ginx"
	"dermascan/internal/app/server/middlewares"
)

// UpdateNotes 更新扫描记录备注
// PUT /api/v1/scans/:id/notes
func (h *ScanHandler) UpdateNotes(c *gin.Context) {
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

	var req request.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	scan, err := h.scanService.UpdateNotes(c.Request.Context(), scanID, requesterID, requesterRole, req.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Success(c, response.FromScanEntity(scan))
}
