package storage

import (
	"academy/internal/config"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tencentyun/cos-go-sdk-v5"
)

// cosStorage archives to Tencent Cloud COS.
type cosStorage struct {
	client *cos.Client
	prefix string
}

func NewCOSStorage(cfg config.Config) (Storage, error) {
	baseURL := strings.TrimSpace(cfg.StorageCOSBucketURL)
	if baseURL == "" {
		return nil, errors.New("storage: missing COS bucket URL")
	}
	bucketURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("storage: parse COS bucket URL: %w", err)
	}

	secretID := strings.TrimSpace(cfg.StorageCOSSecretID)
	secretKey := strings.TrimSpace(cfg.StorageCOSSecretKey)
	if secretID == "" || secretKey == "" {
		return nil, errors.New("storage: missing COS credentials")
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{SecretID: secretID, SecretKey: secretKey},
	})
	return &cosStorage{client: client, prefix: trimPrefix(cfg.StorageCOSPrefix)}, nil
}

func (s *cosStorage) Put(ctx context.Context, obj Object) (string, error) {
	key, contentType, err := prepare(ctx, s.prefix, obj)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Object.Put(ctx, key, bytes.NewReader(obj.Body), &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType:   contentType,
			ContentLength: int64(len(obj.Body)),
		},
	})
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}

var _ Storage = (*cosStorage)(nil)
