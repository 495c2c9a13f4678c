// Package storage implements listing image storage over S3-compatible
// object stores using presigned URLs.
package storage

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentx/internal/rentx/config"
	"rentx/internal/rentx/ports/storage"
	"rentx/pkg/logger"
)

// Error messages.
const (
	ErrLoadAWSConfig   = "failed to load AWS configuration"
	ErrPresignUpload   = "failed to presign upload URL"
	ErrPresignDownload = "failed to presign download URL"
)

// S3ImageStorage implements storage.ImageStorage over an S3 bucket.
type S3ImageStorage struct {
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

// NewS3ImageStorage creates an image storage backed by the configured
// bucket. A non-empty endpoint points the client at an S3-compatible store
// such as MinIO.
func NewS3ImageStorage(ctx context.Context, cfg *config.S3Config) (*S3ImageStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrLoadAWSConfig, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3ImageStorage{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		expiry:  cfg.PresignTTL,
	}, nil
}

// objectKey namespaces uploads per user and randomizes the final segment so
// concurrent uploads of the same file name never collide.
func objectKey(userID, fileName string) string {
	return fmt.Sprintf("listings/%s/%s%s", userID, uuid.New(), path.Ext(fileName))
}

// PresignUpload issues a presigned PUT URL for a new listing image.
func (s *S3ImageStorage) PresignUpload(ctx context.Context, userID, fileName, contentType string) (*storage.PresignedURL, error) {
	log := logger.Log(ctx).With(zap.String("storage", "s3"), zap.String("method", "PresignUpload"))

	key := objectKey(userID, fileName)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	req, err := s.presign.PresignPutObject(ctx, input, s3.WithPresignExpires(s.expiry))
	if err != nil {
		log.Error(ctx, ErrPresignUpload, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPresignUpload, err)
	}

	return &storage.PresignedURL{
		URL:       req.URL,
		Key:       key,
		ExpiresAt: time.Now().Add(s.expiry),
	}, nil
}

// PresignDownload issues a presigned GET URL for a stored image.
func (s *S3ImageStorage) PresignDownload(ctx context.Context, key string) (*storage.PresignedURL, error) {
	log := logger.Log(ctx).With(zap.String("storage", "s3"), zap.String("method", "PresignDownload"))

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		log.Error(ctx, ErrPresignDownload, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPresignDownload, err)
	}

	return &storage.PresignedURL{
		URL:       req.URL,
		Key:       key,
		ExpiresAt: time.Now().Add(s.expiry),
	}, nil
}
