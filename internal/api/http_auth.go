package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/auth"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/entity"
)

// IssueToken 用管理密钥换取短期 JWT，供用量查询接口使用
func (h *HTTPHandler) IssueToken(c *gin.Context) {
	if strings.TrimSpace(h.cfg.AdminKeyHash) == "" {
		ServiceUnavailable(c, "admin access not configured")
		return
	}

	var req entity.AdminTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request payload")
		return
	}

	adminKey := strings.TrimSpace(req.AdminKey)
	if adminKey == "" {
		BadRequest(c, "admin_key is required")
		return
	}

	if err := auth.VerifyKey(h.cfg.AdminKeyHash, adminKey); err != nil {
		logrus.WithError(err).Warn("admin key verification failed")
		Unauthorized(c, "invalid admin key")
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken()
	if err != nil {
		logrus.WithError(err).Error("failed to generate admin token")
		InternalError(c, "failed to create session")
		return
	}

	c.JSON(http.StatusOK, entity.AdminTokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
