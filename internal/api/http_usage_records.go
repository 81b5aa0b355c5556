package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/entity"
)

func (h *HTTPHandler) ListUsageEvents(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusOK, entity.UsageEventListResponse{Events: []entity.UsageEventItem{}, Meta: &entity.Meta{Page: 1, PageSize: 0, Total: 0}})
		return
	}

	var params entity.UsageEventQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		BadRequest(c, "invalid query parameters")
		return
	}

	params.CustomerID = strings.TrimSpace(params.CustomerID)
	params.Type = strings.TrimSpace(params.Type)

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = 20
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	events, meta, err := h.repo.ListUsageEvents(ctx, &params)
	if err != nil {
		logrus.WithError(err).Error("failed to list usage events")
		InternalError(c, "failed to load usage events")
		return
	}

	items := make([]entity.UsageEventItem, 0, len(events))
	for _, event := range events {
		items = append(items, event.ToItem())
	}

	if meta == nil {
		meta = &entity.Meta{Page: params.Page, PageSize: params.PageSize, Total: int64(len(items))}
	}

	c.JSON(http.StatusOK, entity.UsageEventListResponse{Events: items, Meta: meta})
}

func (h *HTTPHandler) GetUsageEvent(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "usage event repository not available")
		return
	}

	idValue := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(idValue, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, "invalid usage event id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	event, err := h.repo.GetUsageEvent(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "usage event not found")
			return
		}
		logrus.WithError(err).WithField("id", id).Error("failed to load usage event")
		InternalError(c, "failed to load usage event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event.ToItem()})
}

func (h *HTTPHandler) DeleteUsageEvent(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "usage event repository not available")
		return
	}

	idValue := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(idValue, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, "invalid usage event id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteUsageEvent(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "usage event not found")
			return
		}
		logrus.WithError(err).WithField("id", id).Error("failed to delete usage event")
		InternalError(c, "failed to delete usage event")
		return
	}

	c.Status(http.StatusNoContent)
}
