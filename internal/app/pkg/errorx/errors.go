package errorx

import (
	"errors"
	"net/http"
)

// 定义业务错误
var (
	ErrScanNotFound          = errors.New("scan not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrForbidden             = errors.New("not authorized to access this scan")
	ErrPredictionUnavailable = errors.New("prediction service unavailable")
	ErrInvalidCredentials    = errors.New("invalid credentials")
)

// BusinessError 业务错误结构
type BusinessError struct {
	Code    int
	Message string
	Details []ErrorDetail
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string
	Info string
}

// Error 实现 error 接口
func (e *BusinessError) Error() string {
	return e.Message
}

// NewBusinessError 创建业务错误
func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
	}
}

// Validation 创建校验错误（400，错误信息原样透出给调用方）
func Validation(message string) *BusinessError {
	return NewBusinessError(http.StatusBadRequest, message)
}

// NotFound 创建未找到错误（404）
func NotFound(message string) *BusinessError {
	return NewBusinessError(http.StatusNotFound, message)
}

// Forbidden 创建越权错误（403）
// 注意：不能在 message 中暴露记录真实归属者的任何信息
func Forbidden(message string) *BusinessError {
	return NewBusinessError(http.StatusForbidden, message)
}

// Persistence 创建存储错误（500，对外只透出通用信息）
func Persistence(message string) *BusinessError {
	return NewBusinessError(http.StatusInternalServerError, message)
}

// IsValidation 判断是否为校验错误
func IsValidation(err error) bool {
	var be *BusinessError
	return errors.As(err, &be) && be.Code == http.StatusBadRequest
}

// HTTPCode 提取错误对应的 HTTP 状态码，非业务错误按 500 处理
func HTTPCode(err error) int {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return http.StatusInternalServerError
}
