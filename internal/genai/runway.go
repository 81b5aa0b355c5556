package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/config"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/entity"
)

// 视频生成默认参数。水印与宽高比不可配置。
const (
	runwayDefaultModel    = "gen3a_turbo"
	runwayDefaultDuration = 5
	runwayAspectRatio     = "16:9"
	runwayAPIVersion      = "2024-11-06"
)

// Runway drives the asynchronous video generation API: one call to submit
// a task, one call per poll to read it back.
type Runway struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewRunway(cfg config.Config) *Runway {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.RunwayAPIBase), "/")
	if baseURL == "" {
		baseURL = "https://api.dev.runwayml.com"
	}
	return &Runway{
		apiKey:     strings.TrimSpace(cfg.RunwayAPIKey),
		baseURL:    baseURL,
		httpClient: defaultHTTPClient,
	}
}

type runwayCreateRequest struct {
	PromptText string `json:"promptText"`
	Model      string `json:"model"`
	Duration   int    `json:"duration"`
	Ratio      string `json:"ratio"`
	Watermark  bool   `json:"watermark"`
}

type runwayErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e runwayErrorBody) text() string {
	if strings.TrimSpace(e.Error) != "" {
		return e.Error
	}
	return e.Message
}

type runwayCreateResponse struct {
	ID string `json:"id"`
	runwayErrorBody
}

// Task is the vendor task record as returned by the tasks endpoint.
type Task struct {
	ID       string   `json:"id"`
	Status   string   `json:"status"`
	Output   []string `json:"output"`
	Progress *float64 `json:"progress"`
	Failure  string   `json:"failure"`
	Error    string   `json:"error"`
}

// CreateVideoTask submits one generation task and returns its handle.
// Recognized options are duration/model; everything else is ignored.
func (r *Runway) CreateVideoTask(ctx context.Context, prompt string, opts entity.GenerationOptions) (*entity.VideoResult, error) {
	if r.apiKey == "" {
		return nil, &ConfigurationError{Message: "Runway API key not configured"}
	}

	body := runwayCreateRequest{
		PromptText: prompt,
		Model:      runwayDefaultModel,
		Duration:   runwayDefaultDuration,
		Ratio:      runwayAspectRatio,
		Watermark:  false,
	}
	if trimmed := strings.TrimSpace(opts.Model); trimmed != "" {
		body.Model = trimmed
	}
	if opts.Duration > 0 {
		body.Duration = opts.Duration
	}

	logrus.WithFields(logrus.Fields{
		"model":    body.Model,
		"duration": body.Duration,
	}).Info("runway_create_task_start")

	bs, err := json.Marshal(body)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("runway marshal request: %v", err)}
	}

	raw, status, err := r.do(ctx, http.MethodPost, "/v1/text_to_video", bytes.NewReader(bs))
	if err != nil {
		return nil, err
	}

	var parsed runwayCreateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("runway decode response: %v", err)}
	}
	if msg := strings.TrimSpace(parsed.text()); msg != "" {
		return nil, &UpstreamError{Message: msg}
	}
	if status >= 400 {
		return nil, &UpstreamError{Message: fmt.Sprintf("runway http %d: %s", status, strings.TrimSpace(string(raw)))}
	}
	if strings.TrimSpace(parsed.ID) == "" {
		return nil, &UpstreamError{Message: "runway response did not include a task id"}
	}

	return &entity.VideoResult{
		TaskID:   parsed.ID,
		Status:   entity.StatusProcessing,
		PollURL:  "/api/video-status?task_id=" + parsed.ID,
		Model:    body.Model,
		Duration: body.Duration,
	}, nil
}

// GetTask reads the current vendor state of one task.
func (r *Runway) GetTask(ctx context.Context, taskID string) (*Task, error) {
	if r.apiKey == "" {
		return nil, &ConfigurationError{Message: "Runway API key not configured"}
	}

	raw, status, err := r.do(ctx, http.MethodGet, "/v1/tasks/"+taskID, nil)
	if err != nil {
		return nil, err
	}

	var errBody runwayErrorBody
	if err := json.Unmarshal(raw, &errBody); err == nil {
		if msg := strings.TrimSpace(errBody.text()); msg != "" {
			return nil, &UpstreamError{Message: msg}
		}
	}
	if status >= 400 {
		return nil, &UpstreamError{Message: fmt.Sprintf("runway http %d: %s", status, strings.TrimSpace(string(raw)))}
	}

	var task Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("runway decode task: %v", err)}
	}
	return &task, nil
}

func (r *Runway) do(ctx context.Context, method, path string, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return nil, 0, &UpstreamError{Message: fmt.Sprintf("runway create request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("X-Runway-Version", runwayAPIVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, 0, &UpstreamError{Message: fmt.Sprintf("runway request: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &UpstreamError{Message: fmt.Sprintf("runway read response: %v", err)}
	}
	return raw, resp.StatusCode, nil
}

// NormalizeStatus projects a vendor status string onto the three-value
// contract. The match is exact and case-sensitive; anything the mapping
// does not know is still in flight.
func NormalizeStatus(raw string) string {
	switch raw {
	case "SUCCEEDED":
		return entity.StatusCompleted
	case "FAILED":
		return entity.StatusFailed
	default:
		return entity.StatusProcessing
	}
}

// FirstOutput returns the first element of the vendor output list, or nil
// when the list is absent.
func (t *Task) FirstOutput() *string {
	if t == nil || len(t.Output) == 0 {
		return nil
	}
	url := t.Output[0]
	return &url
}
