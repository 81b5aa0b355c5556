package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/config"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/entity"
)

func newOpenAIForTest(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewOpenAI(config.Config{OpenAIAPIKey: "test-key", OpenAIAPIBase: server.URL})
}

func TestGenerateImageDefaults(t *testing.T) {
	var gotBody openAIImageRequest
	client := newOpenAIForTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/images/generations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"data":[{"url":"https://img.example/cat.png","revised_prompt":"a fluffy cat"}]}`))
	})

	result, err := client.GenerateImage(context.Background(), "a cat", entity.GenerationOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody.Model != "dall-e-3" || gotBody.Size != "1024x1024" || gotBody.Quality != "standard" || gotBody.Style != "vivid" {
		t.Errorf("expected defaults in request, got %+v", gotBody)
	}
	if gotBody.N != 1 {
		t.Errorf("expected exactly one image requested, got %d", gotBody.N)
	}
	if gotBody.ResponseFormat != "url" {
		t.Errorf("expected url response format, got %s", gotBody.ResponseFormat)
	}
	if result.ImageURL != "https://img.example/cat.png" {
		t.Errorf("unexpected image url %s", result.ImageURL)
	}
	if result.RevisedPrompt != "a fluffy cat" {
		t.Errorf("unexpected revised prompt %s", result.RevisedPrompt)
	}
}

func TestGenerateImageOptionsOverride(t *testing.T) {
	var gotBody openAIImageRequest
	client := newOpenAIForTest(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"data":[{"url":"https://img.example/wide.png"}]}`))
	})

	result, err := client.GenerateImage(context.Background(), "a cat", entity.GenerationOptions{
		Quality: "hd",
		Size:    "1792x1024",
		Style:   "natural",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody.Quality != "hd" || gotBody.Size != "1792x1024" || gotBody.Style != "natural" {
		t.Errorf("expected overrides in request, got %+v", gotBody)
	}
	if result.Size != "1792x1024" || result.Quality != "hd" {
		t.Errorf("expected request parameters echoed in result, got %+v", result)
	}
}

func TestGenerateImageVendorError(t *testing.T) {
	client := newOpenAIForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"content policy violation","type":"invalid_request_error"}}`))
	})

	_, err := client.GenerateImage(context.Background(), "a cat", entity.GenerationOptions{})
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Message != "content policy violation" {
		t.Errorf("expected vendor message to surface, got %q", upstream.Message)
	}
}

func TestGenerateImageEmptyData(t *testing.T) {
	client := newOpenAIForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.GenerateImage(context.Background(), "a cat", entity.GenerationOptions{})
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestGenerateImageMissingKey(t *testing.T) {
	client := NewOpenAI(config.Config{})
	_, err := client.GenerateImage(context.Background(), "a cat", entity.GenerationOptions{})
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}
