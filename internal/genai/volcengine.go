package genai

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"
	volcModel "github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"
	"github.com/volcengine/volcengine-go-sdk/volcengine"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/config"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/entity"
)

// 文档: https://www.volcengine.com/docs/82379/1824121
const volcDefaultSize = "2K"

var volcAllowedSizes = map[string]struct{}{
	"1K": {},
	"2K": {},
	"4K": {},
}

// Volcengine serves Seedream image models through the Ark runtime SDK as
// the alternate image vendor.
type Volcengine struct {
	apiKey string
}

func NewVolcengine(cfg config.Config) *Volcengine {
	return &Volcengine{apiKey: strings.TrimSpace(cfg.VolcengineAPIKey)}
}

// GenerateImage generates a single Seedream image and returns its URL.
// Group generation stays disabled so the vendor returns exactly one image.
func (v *Volcengine) GenerateImage(ctx context.Context, prompt string, opts entity.GenerationOptions) (*entity.ImageResult, error) {
	if v.apiKey == "" {
		return nil, &ConfigurationError{Message: "Volcengine API key not configured"}
	}

	size := volcDefaultSize
	if trimmed := strings.TrimSpace(opts.Size); trimmed != "" {
		if _, ok := volcAllowedSizes[strings.ToUpper(trimmed)]; ok {
			size = strings.ToUpper(trimmed)
		}
	}

	logrus.WithFields(logrus.Fields{
		"model": opts.Model,
		"size":  size,
	}).Info("volcengine_generate_image_start")

	client := arkruntime.NewClientWithApiKey(v.apiKey)

	var sequentialImageGeneration volcModel.SequentialImageGeneration = "disabled"
	generateReq := volcModel.GenerateImagesRequest{
		Model:                     opts.Model,
		Prompt:                    prompt,
		Size:                      volcengine.String(size),
		ResponseFormat:            volcengine.String(volcModel.GenerateImagesResponseFormatURL),
		Watermark:                 volcengine.Bool(false),
		SequentialImageGeneration: &sequentialImageGeneration,
	}

	stream, err := client.GenerateImagesStreaming(ctx, generateReq)
	if err != nil {
		return nil, &UpstreamError{Message: "volcengine submit: " + err.Error()}
	}
	defer stream.Close()

	var imageURL string
	var vendorErr string

	for {
		recv, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &UpstreamError{Message: "volcengine stream: " + err.Error()}
		}
		switch recv.Type {
		case "image_generation.partial_failed":
			if recv.Error != nil {
				vendorErr = recv.Error.Message
				if strings.EqualFold(recv.Error.Code, "InternalServiceError") {
					return nil, &UpstreamError{Message: vendorErr}
				}
			}
		case "image_generation.partial_succeeded":
			if recv.Error == nil && recv.Url != nil && imageURL == "" {
				imageURL = *recv.Url
			}
		}
	}

	if imageURL == "" {
		if vendorErr == "" {
			vendorErr = "volcengine response did not include an image"
		}
		return nil, &UpstreamError{Message: vendorErr}
	}

	return &entity.ImageResult{
		ImageURL: imageURL,
		Model:    opts.Model,
		Size:     size,
		Quality:  "standard",
	}, nil
}
