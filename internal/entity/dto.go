package entity

import "time"

// GenerationType 表示生成内容的类型
type GenerationType string

const (
	TypeImage GenerationType = "image"
	TypeVideo GenerationType = "video"
)

// Valid reports whether the type is one of the accepted generation types.
func (t GenerationType) Valid() bool {
	return t == TypeImage || t == TypeVideo
}

// GenerationOptions 生成参数，按类型识别各自的键；未知键透传时被忽略
type GenerationOptions struct {
	Model    string `json:"model,omitempty"`
	Size     string `json:"size,omitempty"`
	Quality  string `json:"quality,omitempty"`
	Style    string `json:"style,omitempty"`
	Duration int    `json:"duration,omitempty"`
}

// GenerationRequest 生成请求体
type GenerationRequest struct {
	Type       GenerationType    `json:"type"`
	Prompt     string            `json:"prompt"`
	CustomerID string            `json:"customer_id,omitempty"`
	Options    GenerationOptions `json:"options"`
}

// ImageResult 同步图像生成结果
type ImageResult struct {
	ImageURL      string `json:"image_url"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
	Model         string `json:"model"`
	Size          string `json:"size"`
	Quality       string `json:"quality"`
}

// VideoResult 异步视频生成的任务句柄
type VideoResult struct {
	TaskID   string `json:"task_id"`
	Status   string `json:"status"`
	PollURL  string `json:"poll_url"`
	Model    string `json:"model"`
	Duration int    `json:"duration"`
}

// 规范化后的任务状态，供应商状态映射到这三个值
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// TaskStatusResponse 状态查询响应
type TaskStatusResponse struct {
	TaskID      string   `json:"task_id"`
	Status      string   `json:"status"`
	VideoURL    *string  `json:"video_url"`
	Progress    *float64 `json:"progress,omitempty"`
	RawStatus   string   `json:"raw_status"`
	ArchivedURL string   `json:"archived_url,omitempty"`
}

// UsageEvent 一次生成调用的用量事件，只写不读
type UsageEvent struct {
	CustomerID string    `json:"customer_id"`
	Type       string    `json:"type"`
	Cost       float64   `json:"cost"`
	CostKey    string    `json:"cost_key"`
	CreatedAt  time.Time `json:"created_at"`
}

// AdminTokenRequest 管理密钥换取访问令牌的请求体
type AdminTokenRequest struct {
	AdminKey string `json:"admin_key"`
}

// AdminTokenResponse 访问令牌响应
type AdminTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Meta 包含分页元数据。
type Meta struct {
	Page     int64 `json:"page"`
	PageSize int64 `json:"page_size"`
	Total    int64 `json:"total"`
}

// BaseParams 包含通用的分页参数。
type BaseParams struct {
	PageSize int64 `json:"page_size" form:"page_size" query:"page_size"`
	Page     int64 `json:"page" form:"page" query:"page"`
}

// UsageEventQuery 用量事件查询参数
type UsageEventQuery struct {
	BaseParams
	CustomerID string `json:"customer_id" form:"customer_id" query:"customer_id"`
	Type       string `json:"type" form:"type" query:"type"`
}

// UsageEventItem 用量事件的对外视图
type UsageEventItem struct {
	ID         uint      `json:"id"`
	CustomerID string    `json:"customer_id"`
	Type       string    `json:"type"`
	Cost       float64   `json:"cost"`
	CostKey    string    `json:"cost_key"`
	CreatedAt  time.Time `json:"created_at"`
}

// UsageEventListResponse 用量事件列表响应
type UsageEventListResponse struct {
	Events []UsageEventItem `json:"events"`
	Meta   *Meta            `json:"meta"`
}
