package archive

import (
	"context"
	"fmt"
	"strings"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/config"
)

const (
	// TypeLocal 表示本地文件系统归档。
	TypeLocal = "local"
	// TypeS3 表示 Amazon S3 或兼容的归档后端。
	TypeS3 = "s3"
	// TypeR2 表示 Cloudflare R2 归档。
	TypeR2 = "r2"
	// TypeOSS 表示阿里云 OSS 归档。
	TypeOSS = "oss"
	// TypeCOS 表示腾讯云 COS 归档。
	TypeCOS = "cos"
)

// StoreOptions 控制归档后端如何持久化资产。
//
// Category 用于组织对象，Extension 提示首选扩展名（不含前导点）。
type StoreOptions struct {
	Category  string
	BaseName  string
	Extension string
}

// Archive persists vendor assets durably and returns a URL (or key when no
// public base is configured) for the stored copy. Vendor download links
// expire; the archive copy does not.
type Archive interface {
	Store(ctx context.Context, data []byte, opts StoreOptions) (string, error)
}

// NewArchive 根据配置实例化归档后端。空类型表示关闭归档，返回 nil。
func NewArchive(cfg config.Config) (Archive, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.ArchiveType))
	switch typeName {
	case "":
		return nil, nil
	case TypeLocal:
		return NewLocalArchive(cfg.ArchiveLocalDir)
	case TypeS3:
		return NewS3Archive(cfg)
	case TypeR2:
		return NewR2Archive(cfg)
	case TypeOSS:
		return NewOSSArchive(cfg)
	case TypeCOS:
		return NewCOSArchive(cfg)
	default:
		return nil, fmt.Errorf("unsupported archive type: %s", cfg.ArchiveType)
	}
}
