package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3PresignerConfig struct {
	Bucket string
	Region string
	// Endpoint переопределяет адрес S3 для совместимых провайдеров (R2, MinIO).
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

type s3Presigner struct {
	client *s3.PresignClient
	bucket string
}

// NewS3Presigner загружает конфигурацию AWS SDK. Без явных ключей
// используется стандартная цепочка провайдеров (env, shared config, IAM).
func NewS3Presigner(ctx context.Context, cfg S3PresignerConfig) (URLSigner, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("invalid S3 configuration: bucket is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return newS3Presigner(sdkCfg, cfg.Bucket, cfg.Endpoint), nil
}

func newS3Presigner(sdkCfg aws.Config, bucket, endpoint string) *s3Presigner {
	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Presigner{
		client: s3.NewPresignClient(client),
		bucket: bucket,
	}
}

func (p *s3Presigner) PresignPut(ctx context.Context, key string, contentType string, ttl time.Duration) (string, error) {
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload (key: %s): %w", key, err)
	}
	return req.URL, nil
}
