package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/genai"
)

func TestErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		status         int
		code           string
		message        string
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:           "BadRequest",
			status:         http.StatusBadRequest,
			code:           ErrCodeInvalidRequest,
			message:        "prompt is required",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeInvalidRequest,
			expectedMsg:    "prompt is required",
		},
		{
			name:           "Configuration",
			status:         http.StatusInternalServerError,
			code:           ErrCodeConfiguration,
			message:        "OPENAI_API_KEY is not configured",
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrCodeConfiguration,
			expectedMsg:    "OPENAI_API_KEY is not configured",
		},
		{
			name:           "Upstream",
			status:         http.StatusInternalServerError,
			code:           ErrCodeUpstream,
			message:        "image generation failed",
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrCodeUpstream,
			expectedMsg:    "image generation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			ErrorResponse(c, tt.status, tt.code, tt.message)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			var response struct {
				Error string `json:"error"`
				Code  string `json:"code"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}

			if response.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, response.Code)
			}

			if response.Error != tt.expectedMsg {
				t.Errorf("expected message %s, got %s", tt.expectedMsg, response.Error)
			}
		})
	}
}

func TestErrorPayloadUsesErrorKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	BadRequest(c, "invalid request payload")

	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if _, ok := payload["error"]; !ok {
		t.Fatal("expected payload to carry an error key")
	}
	if _, ok := payload["message"]; ok {
		t.Fatal("did not expect a message key in the payload")
	}
}

func TestShortcutFunctions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("MethodNotAllowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		MethodNotAllowed(c)

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
		}
	})

	t.Run("Unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Unauthorized(c, "authentication required")

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		NotFound(c, "usage event not found")

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})

	t.Run("InternalError", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		InternalError(c, "server error")

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
	})

	t.Run("ServiceUnavailable", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		ServiceUnavailable(c, "repository not available")

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
		}
	})
}

func TestGenerationError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Configuration", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		GenerationError(c, &genai.ConfigurationError{Message: "RUNWAY_API_KEY is not configured"})

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
		var response APIError
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if response.Code != ErrCodeConfiguration {
			t.Fatalf("expected code %s, got %s", ErrCodeConfiguration, response.Code)
		}
	})

	t.Run("Upstream", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		GenerationError(c, &genai.UpstreamError{Message: "video task creation failed"})

		var response APIError
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if response.Code != ErrCodeUpstream {
			t.Fatalf("expected code %s, got %s", ErrCodeUpstream, response.Code)
		}
		if response.Message != "video task creation failed" {
			t.Fatalf("unexpected message: %s", response.Message)
		}
	})
}
