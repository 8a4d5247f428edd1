package storage

import (
	"academy/internal/config"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type s3ClientOptions struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	ForcePathStyle  bool
}

// s3Storage serves both AWS S3 and S3-compatible services such as R2.
type s3Storage struct {
	client *s3.Client
	bucket string
	prefix string
}

func (s *s3Storage) Put(ctx context.Context, obj Object) (string, error) {
	key, contentType, err := prepare(ctx, s.prefix, obj)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(obj.Body),
		ContentLength: aws.Int64(int64(len(obj.Body))),
		ContentType:   aws.String(contentType),
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", describeS3Error(key, err)
	}
	return key, nil
}

var _ Storage = (*s3Storage)(nil)

// describeS3Error keeps the service error code visible in logs.
func describeS3Error(key string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("put object %s: %s: %w", key, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("put object %s: %w", key, err)
}

func NewS3Storage(cfg config.Config) (Storage, error) {
	bucket := strings.TrimSpace(cfg.StorageS3Bucket)
	if bucket == "" {
		return nil, errors.New("storage: missing S3 bucket")
	}

	client, err := newS3Client(s3ClientOptions{
		Region:          strings.TrimSpace(cfg.StorageS3Region),
		Endpoint:        strings.TrimSpace(cfg.StorageS3Endpoint),
		AccessKeyID:     strings.TrimSpace(cfg.StorageS3AccessKeyID),
		SecretAccessKey: strings.TrimSpace(cfg.StorageS3SecretAccessKey),
		SessionToken:    strings.TrimSpace(cfg.StorageS3SessionToken),
		ForcePathStyle:  cfg.StorageS3ForcePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create S3 client: %w", err)
	}

	return &s3Storage{
		client: client,
		bucket: bucket,
		prefix: trimPrefix(cfg.StorageS3Prefix),
	}, nil
}

func newS3Client(opts s3ClientOptions) (*s3.Client, error) {
	if opts.Region == "" {
		return nil, errors.New("storage: missing S3 region")
	}
	if opts.AccessKeyID == "" || opts.SecretAccessKey == "" {
		return nil, errors.New("storage: missing S3 credentials")
	}

	awsCfg := aws.Config{
		Region: opts.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, opts.SessionToken),
		),
	}

	endpoint := opts.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = opts.ForcePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}
