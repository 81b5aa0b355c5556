package sql

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/entity"
)

// CreateUsageEvent inserts a new usage event into the database.
func (r *GormRepository) CreateUsageEvent(ctx context.Context, event *entity.DbUsageEvent) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if event == nil {
		return fmt.Errorf("event is nil")
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// ListUsageEvents retrieves paginated usage events, newest first.
func (r *GormRepository) ListUsageEvents(ctx context.Context, params *entity.UsageEventQuery) ([]entity.DbUsageEvent, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbUsageEvent{})
	if params != nil {
		if trimmed := strings.TrimSpace(params.CustomerID); trimmed != "" {
			query = query.Where("customer_id = ?", trimmed)
		}
		if trimmed := strings.TrimSpace(params.Type); trimmed != "" {
			query = query.Where("type = ?", trimmed)
		}
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, nil, err
	}

	page := 1
	pageSize := 20
	if params != nil {
		if params.Page > 0 {
			page = int(params.Page)
		}
		if params.PageSize > 0 {
			pageSize = int(params.PageSize)
		}
	}

	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}

	var events []entity.DbUsageEvent
	if err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&events).Error; err != nil {
		return nil, nil, err
	}

	return events, r.calculatePagination(totalCount, page, pageSize), nil
}

// GetUsageEvent retrieves a single usage event by ID.
func (r *GormRepository) GetUsageEvent(ctx context.Context, id uint) (*entity.DbUsageEvent, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid usage event id")
	}

	var event entity.DbUsageEvent
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load usage event: %w", err)
	}
	return &event, nil
}

// DeleteUsageEvent removes a usage event by ID.
func (r *GormRepository) DeleteUsageEvent(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid usage event id")
	}

	result := r.db.WithContext(ctx).Delete(&entity.DbUsageEvent{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
