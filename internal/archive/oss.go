package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/config"
)

type ossArchive struct {
	bucket     *oss.Bucket
	prefix     string
	publicBase string
}

func NewOSSArchive(cfg config.Config) (Archive, error) {
	endpoint := strings.TrimSpace(cfg.ArchiveOSSEndpoint)
	if endpoint == "" {
		return nil, errors.New("archive: missing OSS endpoint")
	}
	bucketName := strings.TrimSpace(cfg.ArchiveOSSBucket)
	if bucketName == "" {
		return nil, errors.New("archive: missing OSS bucket")
	}
	accessKey := strings.TrimSpace(cfg.ArchiveOSSAccessKeyID)
	secretKey := strings.TrimSpace(cfg.ArchiveOSSAccessKeySecret)
	if accessKey == "" || secretKey == "" {
		return nil, errors.New("archive: missing OSS credentials")
	}

	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("archive: create OSS client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("archive: open OSS bucket: %w", err)
	}

	return &ossArchive{
		bucket:     bucket,
		prefix:     trimPrefix(cfg.ArchiveOSSPrefix),
		publicBase: cfg.ArchiveOSSPublicBaseURL,
	}, nil
}

func (a *ossArchive) Store(ctx context.Context, data []byte, opts StoreOptions) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty payload")
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	key := buildObjectKey(opts.Category, opts.BaseName, opts.Extension)
	if a.prefix != "" {
		key = joinPrefix(a.prefix, key)
	}

	options := []oss.Option{oss.WithContext(ctx)}
	if ct := detectContentType(opts.Extension); ct != "" {
		options = append(options, oss.ContentType(ct))
	}

	if err := a.bucket.PutObject(key, bytes.NewReader(data), options...); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return publicURL(a.publicBase, key), nil
}

var _ Archive = (*ossArchive)(nil)
