package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/auth"
)

const adminClaimsContextKey = "admin-claims"

// AuthMiddleware JWT 认证中间件，用量查询接口的前置守卫
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Message: "authorization header is required",
				Code:    ErrCodeUnauthorized,
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Message: "invalid authorization header format",
				Code:    ErrCodeUnauthorized,
			})
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Message: "bearer token is required",
				Code:    ErrCodeUnauthorized,
			})
			return
		}

		claims, err := h.authManager.ParseToken(tokenString)
		if err != nil {
			logrus.WithError(err).Warn("failed to parse jwt token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Message: "token invalid or expired",
				Code:    ErrCodeUnauthorized,
			})
			return
		}

		c.Set(adminClaimsContextKey, claims)
		c.Next()
	}
}

// CurrentClaims 从上下文获取已验证的令牌声明
func CurrentClaims(c *gin.Context) *auth.Claims {
	value, exists := c.Get(adminClaimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
