package model

import (
	"context"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/entity"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用量事件
	CreateUsageEvent(ctx context.Context, event *entity.DbUsageEvent) error
	ListUsageEvents(ctx context.Context, params *entity.UsageEventQuery) ([]entity.DbUsageEvent, *entity.Meta, error)
	GetUsageEvent(ctx context.Context, id uint) (*entity.DbUsageEvent, error)
	DeleteUsageEvent(ctx context.Context, id uint) error
}
