package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tencentyun/cos-go-sdk-v5"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/config"
)

type cosArchive struct {
	client    *cos.Client
	prefix    string
	bucketURL string
}

func NewCOSArchive(cfg config.Config) (Archive, error) {
	baseURL := strings.TrimSpace(cfg.ArchiveCOSBucketURL)
	if baseURL == "" {
		return nil, errors.New("archive: missing COS bucket URL")
	}
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("archive: parse COS bucket URL: %w", err)
	}

	secretID := strings.TrimSpace(cfg.ArchiveCOSSecretID)
	secretKey := strings.TrimSpace(cfg.ArchiveCOSSecretKey)
	if secretID == "" || secretKey == "" {
		return nil, errors.New("archive: missing COS credentials")
	}

	transport := &cos.AuthorizationTransport{
		SecretID:  secretID,
		SecretKey: secretKey,
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: parsedURL}, &http.Client{Transport: transport})

	return &cosArchive{
		client:    client,
		prefix:    trimPrefix(cfg.ArchiveCOSPrefix),
		bucketURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (a *cosArchive) Store(ctx context.Context, data []byte, opts StoreOptions) (string, error) {
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

	options := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{},
	}
	if ct := detectContentType(opts.Extension); ct != "" {
		options.ObjectPutHeaderOptions.ContentType = ct
	}

	resp, err := a.client.Object.Put(ctx, key, bytes.NewReader(data), options)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return publicURL(a.bucketURL, key), nil
}

var _ Archive = (*cosArchive)(nil)
