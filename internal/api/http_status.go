package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/archive"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/entity"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/genai"
)

func (h *HTTPHandler) VideoStatus(c *gin.Context) {
	taskID := strings.TrimSpace(c.Query("task_id"))
	if taskID == "" {
		BadRequest(c, "task_id query parameter is required")
		return
	}

	ctx := c.Request.Context()

	task, err := h.runway.GetTask(ctx, taskID)
	if err != nil {
		logrus.WithError(err).WithField("task_id", taskID).Error("video status lookup failed")
		GenerationError(c, err)
		return
	}

	status := genai.NormalizeStatus(task.Status)
	response := entity.TaskStatusResponse{
		TaskID:    taskID,
		Status:    status,
		RawStatus: task.Status,
		Progress:  task.Progress,
	}
	if status == entity.StatusCompleted {
		response.VideoURL = task.FirstOutput()
	}

	if status == entity.StatusCompleted && response.VideoURL != nil && h.archive != nil {
		if archivedURL := h.archiveVideo(c, taskID, *response.VideoURL); archivedURL != "" {
			response.ArchivedURL = archivedURL
		}
	}

	c.JSON(http.StatusOK, response)
}

// maxArchiveBytes 转存资产的大小上限，超出则跳过归档
const maxArchiveBytes = 256 << 20

// assetClient 下载供应商资产的共享客户端，取消只来自请求上下文
var assetClient = &http.Client{}

// archiveVideo 将完成任务的视频转存到归档后端，失败不影响状态响应
func (h *HTTPHandler) archiveVideo(c *gin.Context, taskID, videoURL string) string {
	ctx := c.Request.Context()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		logrus.WithError(err).WithField("task_id", taskID).Warn("archive skipped: invalid video url")
		return ""
	}
	resp, err := assetClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("task_id", taskID).Warn("archive skipped: video download failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"task_id": taskID,
			"status":  resp.StatusCode,
		}).Warn("archive skipped: video download rejected")
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveBytes+1))
	if err != nil {
		logrus.WithError(err).WithField("task_id", taskID).Warn("archive skipped: video read failed")
		return ""
	}
	if len(data) > maxArchiveBytes {
		logrus.WithField("task_id", taskID).Warn("archive skipped: video exceeds size limit")
		return ""
	}

	archivedURL, err := h.archive.Store(ctx, data, archive.StoreOptions{
		Category:  "videos",
		BaseName:  taskID,
		Extension: ".mp4",
	})
	if err != nil {
		logrus.WithError(err).WithField("task_id", taskID).Warn("archive store failed")
		return ""
	}

	logrus.WithFields(logrus.Fields{
		"task_id":      taskID,
		"archived_url": archivedURL,
	}).Info("video archived")
	return archivedURL
}
