package api

import (
	"time"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/archive"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/auth"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/config"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/genai"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/model"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/usage"
)

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg  config.Config
	repo model.Repository

	openAI     *genai.OpenAI
	runway     *genai.Runway
	volcengine *genai.Volcengine

	usageLogger *usage.Logger
	archive     archive.Archive
	authManager *auth.Manager
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository, store archive.Archive) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	handler := &HTTPHandler{
		cfg:         cfg,
		repo:        repo,
		openAI:      genai.NewOpenAI(cfg),
		runway:      genai.NewRunway(cfg),
		volcengine:  genai.NewVolcengine(cfg),
		usageLogger: usage.NewLogger(cfg, repo),
		archive:     store,
		authManager: authManager,
	}

	return handler, nil
}
