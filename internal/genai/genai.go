package genai

import "net/http"

// ConfigurationError indicates a required vendor credential is absent.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// UpstreamError indicates the vendor call failed: transport failure, a
// non-success HTTP status, an unparseable body, or a vendor error field.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// 出站调用不配置客户端超时，取消只来自请求上下文
var defaultHTTPClient = &http.Client{}
