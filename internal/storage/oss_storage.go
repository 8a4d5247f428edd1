package storage

import (
	"academy/internal/config"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// ossStorage archives to Alibaba Cloud OSS.
type ossStorage struct {
	bucket *oss.Bucket
	prefix string
}

func NewOSSStorage(cfg config.Config) (Storage, error) {
	endpoint := strings.TrimSpace(cfg.StorageOSSEndpoint)
	bucketName := strings.TrimSpace(cfg.StorageOSSBucket)
	accessKey := strings.TrimSpace(cfg.StorageOSSAccessKeyID)
	secretKey := strings.TrimSpace(cfg.StorageOSSAccessKeySecret)
	switch {
	case endpoint == "":
		return nil, errors.New("storage: missing OSS endpoint")
	case bucketName == "":
		return nil, errors.New("storage: missing OSS bucket")
	case accessKey == "" || secretKey == "":
		return nil, errors.New("storage: missing OSS credentials")
	}

	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("storage: create OSS client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("storage: open OSS bucket: %w", err)
	}
	return &ossStorage{bucket: bucket, prefix: trimPrefix(cfg.StorageOSSPrefix)}, nil
}

func (s *ossStorage) Put(ctx context.Context, obj Object) (string, error) {
	key, contentType, err := prepare(ctx, s.prefix, obj)
	if err != nil {
		return "", err
	}
	err = s.bucket.PutObject(key, bytes.NewReader(obj.Body),
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ForbidOverWrite(true),
	)
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}

var _ Storage = (*ossStorage)(nil)
