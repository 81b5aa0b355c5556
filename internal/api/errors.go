package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/genai"
)

// 错误码定义
const (
	// 通用错误码
	ErrCodeInvalidRequest     = "ERR_INVALID_REQUEST"
	ErrCodeMethodNotAllowed   = "ERR_METHOD_NOT_ALLOWED"
	ErrCodeConfiguration      = "ERR_CONFIGURATION"
	ErrCodeUpstream           = "ERR_UPSTREAM"
	ErrCodeInternalError      = "ERR_INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"

	// 管理接口错误码
	ErrCodeUnauthorized   = "ERR_UNAUTHORIZED"
	ErrCodeForbidden      = "ERR_FORBIDDEN"
	ErrCodeRecordNotFound = "ERR_RECORD_NOT_FOUND"
)

// APIError 统一的 API 错误响应结构；error 字段始终存在，code 为补充信息
type APIError struct {
	Message string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse 返回统一格式的错误响应
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Message: message,
		Code:    code,
	})
}

// ErrorResponseWithDetails 返回带详情的错误响应
func ErrorResponseWithDetails(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, APIError{
		Message: message,
		Code:    code,
		Details: details,
	})
}

// 常用错误响应快捷函数

// BadRequest 400 错误请求
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, message)
}

// MethodNotAllowed 405 方法不允许
func MethodNotAllowed(c *gin.Context) {
	ErrorResponse(c, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
}

// ConfigurationError 500 服务端配置缺失或不完整
func ConfigurationError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeConfiguration, message)
}

// UpstreamError 500 供应商调用失败
func UpstreamError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeUpstream, message)
}

// Unauthorized 401 未授权
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, ErrCodeRecordNotFound, message)
}

// InternalError 500 服务器内部错误
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// ServiceUnavailable 503 服务不可用
func ServiceUnavailable(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message)
}

// GenerationError 将供应商客户端返回的错误映射为统一响应
func GenerationError(c *gin.Context, err error) {
	var cfgErr *genai.ConfigurationError
	if errors.As(err, &cfgErr) {
		ConfigurationError(c, cfgErr.Message)
		return
	}
	var upErr *genai.UpstreamError
	if errors.As(err, &upErr) {
		UpstreamError(c, upErr.Message)
		return
	}
	UpstreamError(c, err.Error())
}
