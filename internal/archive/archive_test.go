package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/config"
)

func TestNewArchiveDisabled(t *testing.T) {
	a, err := NewArchive(config.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != nil {
		t.Error("expected nil archive when type is empty")
	}
}

func TestNewArchiveUnsupportedType(t *testing.T) {
	if _, err := NewArchive(config.Config{ArchiveType: "ftp"}); err == nil {
		t.Fatal("expected error for unsupported archive type")
	}
}

func TestLocalArchiveStore(t *testing.T) {
	dir := t.TempDir()
	a, err := NewLocalArchive(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key, err := a.Store(context.Background(), []byte("video-bytes"), StoreOptions{
		Category:  "videos",
		BaseName:  "task-abc",
		Extension: "mp4",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(key, "videos/") || !strings.HasSuffix(key, "task-abc.mp4") {
		t.Errorf("unexpected key %s", key)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "video-bytes" {
		t.Errorf("unexpected stored content %q", data)
	}
}

func TestLocalArchiveEmptyPayload(t *testing.T) {
	a, err := NewLocalArchive(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := a.Store(context.Background(), nil, StoreOptions{}); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestBuildObjectKeySanitizes(t *testing.T) {
	key := buildObjectKey("Videos!", "Task ABC/123", "MP4")
	if strings.Contains(key, "!") || strings.Contains(key, " ") {
		t.Errorf("expected sanitized key, got %s", key)
	}
	if !strings.HasSuffix(key, ".mp4") {
		t.Errorf("expected lowercased extension, got %s", key)
	}
}

func TestPublicURL(t *testing.T) {
	if got := publicURL("", "videos/a.mp4"); got != "videos/a.mp4" {
		t.Errorf("expected bare key, got %s", got)
	}
	if got := publicURL("https://cdn.example/", "/videos/a.mp4"); got != "https://cdn.example/videos/a.mp4" {
		t.Errorf("unexpected url %s", got)
	}
}
