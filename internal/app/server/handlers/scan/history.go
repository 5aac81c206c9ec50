package scan

import (
	"github.com/gin-gonic/gin"

	"dermascan/internal/app/domains/apimodel/request"
	"dermascan/internal/app/domains/apimodel/response"
	"dermascan/internal/app/pkg/ginx"
	"dermascan/internal/app/server/middlewares"
)

// History 分页查询当前用户的扫描历史
// GET /api/v1/scans/history?page=1&limit=10
func (h *ScanHandler) History(c *gin.Context) {
	requesterID, _, ok := middlewares.Requester(c)
	if !ok {
		ginx.Unauthorized(c, "Access denied. No token provided.")
		return
	}

	var query request.ListScansQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	scans, total, pages, err := h.scanService.ListScans(c.Request.Context(), requesterID, query.Page, query.PageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Success(c, response.ScanListResponse{
		Scans: response.FromScanEntities(scans),
		Pagination: response.Pagination{
			Total: total,
			Page:  query.Page,
			Pages: pages,
		},
	})
}
