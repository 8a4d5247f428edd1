package storage

import (
	"academy/internal/config"
	"errors"
	"fmt"
	"strings"
)

// NewR2Storage targets Cloudflare R2 through its S3-compatible API.
func NewR2Storage(cfg config.Config) (Storage, error) {
	bucket := strings.TrimSpace(cfg.StorageR2Bucket)
	if bucket == "" {
		return nil, errors.New("storage: missing R2 bucket")
	}

	endpoint := strings.TrimSpace(cfg.StorageR2Endpoint)
	if endpoint == "" {
		accountID := strings.TrimSpace(cfg.StorageR2AccountID)
		if accountID == "" {
			return nil, errors.New("storage: missing R2 endpoint or account id")
		}
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	}

	region := strings.TrimSpace(cfg.StorageR2Region)
	if region == "" {
		region = "auto"
	}

	client, err := newS3Client(s3ClientOptions{
		Region:          region,
		Endpoint:        endpoint,
		AccessKeyID:     strings.TrimSpace(cfg.StorageR2AccessKeyID),
		SecretAccessKey: strings.TrimSpace(cfg.StorageR2SecretAccessKey),
		ForcePathStyle:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create R2 client: %w", err)
	}

	return &s3Storage{
		client: client,
		bucket: bucket,
		prefix: trimPrefix(cfg.StorageR2Prefix),
	}, nil
}
