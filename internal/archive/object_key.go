package archive

import (
	"fmt"
	"mime"
	"path"
	"strings"
	"time"
)

func sanitizeSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	builder := strings.Builder{}
	builder.Grow(len(value))
	for i := 0; i < len(value); i++ {
		ch := value[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			builder.WriteByte(ch)
		case ch >= 'A' && ch <= 'Z':
			builder.WriteByte(ch + 32)
		case ch == '-', ch == '_':
			builder.WriteByte(ch)
		}
	}
	return builder.String()
}

func normalizeExtension(ext string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if trimmed == "" {
		return "bin"
	}
	return sanitizeSegment(trimmed)
}

// buildObjectKey 生成 category/yyyy/mm/dd/base.ext 形式的对象键
func buildObjectKey(category, baseName, ext string) string {
	now := time.Now().UTC()
	category = sanitizeSegment(category)
	if category == "" {
		category = "assets"
	}
	base := sanitizeSegment(strings.ReplaceAll(strings.TrimSpace(baseName), " ", "-"))
	if base == "" {
		base = fmt.Sprintf("%d", now.UnixNano())
	}
	datedir := fmt.Sprintf("%04d/%02d/%02d", now.Year(), now.Month(), now.Day())
	return path.Join(category, datedir, fmt.Sprintf("%s.%s", base, normalizeExtension(ext)))
}

func detectContentType(ext string) string {
	typeName := mime.TypeByExtension("." + normalizeExtension(ext))
	if typeName == "" {
		return "application/octet-stream"
	}
	return typeName
}

func joinPrefix(prefix, key string) string {
	cleanPrefix := trimPrefix(prefix)
	if cleanPrefix == "" {
		return strings.TrimLeft(key, "/")
	}
	return path.Join(cleanPrefix, strings.TrimLeft(key, "/"))
}

func trimPrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

// publicURL 拼接公共访问地址；未配置 base 时直接返回对象键
func publicURL(base, key string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return key
	}
	return trimmed + "/" + strings.TrimLeft(key, "/")
}
