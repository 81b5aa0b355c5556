package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/entity"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/pricing"
)

// usageLogTimeout 后台用量上报的兜底超时，与请求生命周期解耦
const usageLogTimeout = 15 * time.Second

func (h *HTTPHandler) GenerateCreative(c *gin.Context) {
	var request entity.GenerationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		BadRequest(c, "invalid request payload")
		return
	}

	request.Prompt = strings.TrimSpace(request.Prompt)
	request.CustomerID = strings.TrimSpace(request.CustomerID)
	request.Options.Model = strings.TrimSpace(request.Options.Model)
	request.Options.Size = strings.TrimSpace(request.Options.Size)
	request.Options.Quality = strings.TrimSpace(request.Options.Quality)
	request.Options.Style = strings.TrimSpace(request.Options.Style)

	if !request.Type.Valid() {
		BadRequest(c, fmt.Sprintf("unsupported generation type: %q", string(request.Type)))
		return
	}
	if request.Prompt == "" {
		BadRequest(c, "prompt is required")
		return
	}

	costKey, cost, err := pricing.Resolve(request.Type, request.Options)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"type":    request.Type,
			"size":    request.Options.Size,
			"quality": request.Options.Quality,
		}).Error("no cost entry for generation parameters")
		ConfigurationError(c, "no cost entry for requested generation parameters")
		return
	}

	ctx := c.Request.Context()

	var payload gin.H
	switch request.Type {
	case entity.TypeImage:
		var result *entity.ImageResult
		if pricing.IsSeedreamModel(request.Options.Model) {
			result, err = h.volcengine.GenerateImage(ctx, request.Prompt, request.Options)
		} else {
			result, err = h.openAI.GenerateImage(ctx, request.Prompt, request.Options)
		}
		if err != nil {
			logrus.WithError(err).WithField("model", request.Options.Model).Error("image generation failed")
			GenerationError(c, err)
			return
		}
		payload = gin.H{
			"success":   true,
			"type":      entity.TypeImage,
			"cost":      cost,
			"cost_key":  costKey,
			"image_url": result.ImageURL,
			"model":     result.Model,
			"size":      result.Size,
			"quality":   result.Quality,
		}
		if result.RevisedPrompt != "" {
			payload["revised_prompt"] = result.RevisedPrompt
		}
	case entity.TypeVideo:
		result, err := h.runway.CreateVideoTask(ctx, request.Prompt, request.Options)
		if err != nil {
			logrus.WithError(err).Error("video task creation failed")
			GenerationError(c, err)
			return
		}
		payload = gin.H{
			"success":  true,
			"type":     entity.TypeVideo,
			"cost":     cost,
			"cost_key": costKey,
			"task_id":  result.TaskID,
			"status":   result.Status,
			"poll_url": result.PollURL,
			"model":    result.Model,
			"duration": result.Duration,
		}
	}

	h.recordUsage(request.CustomerID, string(request.Type), cost, costKey)

	c.JSON(http.StatusOK, payload)
}

// recordUsage 在响应路径之外上报用量；无 customer_id 或未配置上报目标时跳过
func (h *HTTPHandler) recordUsage(customerID, genType string, cost float64, costKey string) {
	if customerID == "" || !h.usageLogger.Enabled() {
		return
	}
	event := entity.UsageEvent{
		CustomerID: customerID,
		Type:       genType,
		Cost:       cost,
		CostKey:    costKey,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), usageLogTimeout)
		defer cancel()
		h.usageLogger.Record(ctx, event)
	}()
}
