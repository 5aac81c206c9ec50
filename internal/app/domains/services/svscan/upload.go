package svscan

import (
	"path/filepath"
	"strings"

	"dermascan/internal/app/pkg/errorx"
)

// 上传约束
const maxUploadSize = 5 << 20 // 5 MiB

// Upload 待分析的上传图片
type Upload struct {
	Data     []byte // 原始字节流
	Filename string // 客户端声明的文件名
	MimeType string // 客户端声明的 MIME 类型
}

// 允许的 MIME 类型与扩展名
var (
	allowedMimeTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
	}
	allowedExtensions = map[string]bool{
		".jpeg": true,
		".jpg":  true,
		".png":  true,
	}
)

// validateUpload 校验上传约束
// MIME 类型与扩展名必须同时合法：两项独立校验，任一不过即拒绝，
// 防止伪造 Content-Type 或改名绕过
func validateUpload(upload *Upload) error {
	if upload == nil || len(upload.Data) == 0 {
		return errorx.Validation("no image file provided")
	}

	if len(upload.Data) > maxUploadSize {
		return errorx.Validation("image exceeds the 5MB size limit")
	}

	if !allowedMimeTypes[strings.ToLower(upload.MimeType)] {
		return errorx.Validation("only image files (jpeg, jpg, png) are allowed")
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !allowedExtensions[ext] {
		return errorx.Validation("only image files (jpeg, jpg, png) are allowed")
	}

	return nil
}
