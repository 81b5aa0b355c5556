package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/api"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) { api.MethodNotAllowed(c) })
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/api/generate-creative", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) })
	r.GET("/api/video-status", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })
	return r
}

func TestOptionsPreflightReturnsEmptyOK(t *testing.T) {
	r := newTestRouter()

	for _, path := range []string{"/api/generate-creative", "/api/video-status"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusOK, w.Code)
		}
		if w.Body.Len() != 0 {
			t.Fatalf("%s: expected empty body, got %q", path, w.Body.String())
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("%s: expected wildcard origin header, got %q", path, got)
		}
	}
}

func TestWrongMethodReturns405(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		method string
		path   string
	}{
		{method: http.MethodGet, path: "/api/generate-creative"},
		{method: http.MethodPost, path: "/api/video-status"},
		{method: http.MethodDelete, path: "/health"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tt.method, tt.path, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: expected status %d, got %d", tt.method, tt.path, http.StatusMethodNotAllowed, w.Code)
		}
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newPanickingRouter := func(devMode bool) *gin.Engine {
		r := gin.New()
		r.Use(RecoveryMiddleware(devMode))
		r.GET("/boom", func(c *gin.Context) { panic("vendor exploded") })
		return r
	}

	t.Run("ProdModeHidesStack", func(t *testing.T) {
		r := newPanickingRouter(false)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
		var payload map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if payload["error"] != "vendor exploded" {
			t.Fatalf("expected panic message in error field, got %v", payload["error"])
		}
		if _, ok := payload["stack"]; ok {
			t.Fatal("did not expect a stack key outside dev mode")
		}
	})

	t.Run("DevModeExposesStack", func(t *testing.T) {
		r := newPanickingRouter(true)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
		var payload map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		stack, ok := payload["stack"].(string)
		if !ok || stack == "" {
			t.Fatalf("expected non-empty stack in dev mode, got %v", payload["stack"])
		}
	})
}

func TestAllowedMethodsPerPath(t *testing.T) {
	tests := []struct {
		path    string
		methods string
	}{
		{path: "/api/generate-creative", methods: "POST, OPTIONS"},
		{path: "/api/auth/token", methods: "POST, OPTIONS"},
		{path: "/api/video-status", methods: "GET, OPTIONS"},
		{path: "/health", methods: "GET, OPTIONS"},
		{path: "/api/usage-records", methods: "GET, DELETE, OPTIONS"},
		{path: "/api/usage-records/42", methods: "GET, DELETE, OPTIONS"},
		{path: "/somewhere-else", methods: "GET, POST, DELETE, OPTIONS"},
	}

	r := newTestRouter()
	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, tt.path, nil)
		r.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Methods"); got != tt.methods {
			t.Fatalf("%s: expected allowed methods %q, got %q", tt.path, tt.methods, got)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}
