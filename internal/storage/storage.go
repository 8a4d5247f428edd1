package storage

import (
	"academy/internal/config"
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	TypeLocal = "local"
	TypeS3    = "s3"
	TypeOSS   = "oss"
	TypeCOS   = "cos"
	TypeR2    = "r2"
)

// Object is one file to archive. Category groups objects under a top-level folder and
// BaseName, when set, replaces the generated timestamp name.
type Object struct {
	Category    string
	BaseName    string
	Extension   string
	ContentType string
	Body        []byte
}

// Storage persists an object and returns its backend key.
type Storage interface {
	Put(ctx context.Context, obj Object) (string, error)
}

// NewStorage 根据配置实例化存储后端。
func NewStorage(cfg config.Config) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.StorageType)) {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeOSS:
		return NewOSSStorage(cfg)
	case TypeCOS:
		return NewCOSStorage(cfg)
	case TypeR2:
		return NewR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}

// prepare validates obj and returns the prefixed key and content type every backend uses.
func prepare(ctx context.Context, prefix string, obj Object) (string, string, error) {
	if len(obj.Body) == 0 {
		return "", "", errors.New("empty payload")
	}
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	key := buildObjectPath(obj.Category, obj.BaseName, obj.Extension)
	if prefix != "" {
		key = joinPrefix(prefix, key)
	}
	contentType := strings.TrimSpace(obj.ContentType)
	if contentType == "" {
		contentType = detectContentType(obj.Extension)
	}
	return key, contentType, nil
}
