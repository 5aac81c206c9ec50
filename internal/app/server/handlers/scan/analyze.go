package scan

import (
	"io"

	"github.com/gin-gonic/gin"

	"dermascan/internal/app/domains/apimodel/response"
	"dermascan/internal/app/domains/services/svscan"
	"dermascan/internal/app/pkg/ginx"
	"dermascan/internal/app/server/middlewares"
)

// Analyze 上传并分析皮肤图片
// POST /api/v1/scans/analyze （multipart 字段名 image）
func (h *ScanHandler) Analyze(c *gin.Context) {
	requesterID, _, ok := middlewares.Requester(c)
	if !ok {
		ginx.Unauthorized(c, "Access denied. No token provided.")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		ginx.BadRequest(c, "No image file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ginx.BadRequest(c, "Uploaded file not found")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ginx.BadRequest(c, "Failed to read uploaded file")
		return
	}

	upload := &svscan.Upload{
		Data:     data,
		Filename: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
	}

	scan, err := h.scanService.Analyze(c.Request.Context(), requesterID, upload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Success(c, response.FromScanEntity(scan))
}
