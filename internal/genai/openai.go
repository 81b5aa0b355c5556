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

// 图像生成默认参数
const (
	openAIDefaultModel   = "dall-e-3"
	openAIDefaultSize    = "1024x1024"
	openAIDefaultQuality = "standard"
	openAIDefaultStyle   = "vivid"
)

// OpenAI calls the images generation endpoint synchronously.
type OpenAI struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAI(cfg config.Config) *OpenAI {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.OpenAIAPIBase), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &OpenAI{
		apiKey:     strings.TrimSpace(cfg.OpenAIAPIKey),
		baseURL:    baseURL,
		httpClient: defaultHTTPClient,
	}
}

type openAIImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	Style          string `json:"style"`
	ResponseFormat string `json:"response_format"`
}

type openAIImageResponse struct {
	Data []struct {
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// GenerateImage requests exactly one image in URL form. Recognized options
// are model/size/quality/style; everything else in the request is ignored.
func (o *OpenAI) GenerateImage(ctx context.Context, prompt string, opts entity.GenerationOptions) (*entity.ImageResult, error) {
	if o.apiKey == "" {
		return nil, &ConfigurationError{Message: "OpenAI API key not configured"}
	}

	body := openAIImageRequest{
		Model:          openAIDefaultModel,
		Prompt:         prompt,
		N:              1,
		Size:           openAIDefaultSize,
		Quality:        openAIDefaultQuality,
		Style:          openAIDefaultStyle,
		ResponseFormat: "url",
	}
	if trimmed := strings.TrimSpace(opts.Model); trimmed != "" {
		body.Model = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Size); trimmed != "" {
		body.Size = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Quality); trimmed != "" {
		body.Quality = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Style); trimmed != "" {
		body.Style = trimmed
	}

	logrus.WithFields(logrus.Fields{
		"model":   body.Model,
		"size":    body.Size,
		"quality": body.Quality,
	}).Info("openai_generate_image_start")

	bs, err := json.Marshal(body)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("openai marshal request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/v1/images/generations", bytes.NewReader(bs))
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("openai create request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("openai request: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("openai read response: %v", err)}
	}

	var parsed openAIImageResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("openai decode response: %v", err)}
	}

	if parsed.Error != nil && strings.TrimSpace(parsed.Error.Message) != "" {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"type":   parsed.Error.Type,
		}).Error("openai_generate_image_failed")
		return nil, &UpstreamError{Message: parsed.Error.Message}
	}
	if resp.StatusCode >= 400 {
		return nil, &UpstreamError{Message: fmt.Sprintf("openai http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))}
	}
	if len(parsed.Data) == 0 || strings.TrimSpace(parsed.Data[0].URL) == "" {
		return nil, &UpstreamError{Message: "openai response did not include an image"}
	}

	return &entity.ImageResult{
		ImageURL:      parsed.Data[0].URL,
		RevisedPrompt: parsed.Data[0].RevisedPrompt,
		Model:         body.Model,
		Size:          body.Size,
		Quality:       body.Quality,
	}, nil
}
