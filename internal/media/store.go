// Package media talks to the external blob storage that holds
// uploaded post images. The content model stores only the reference
// string returned from Put.
package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkwell/inkwell/pkg/config"
	"github.com/inkwell/inkwell/pkg/logging"
)

// Store accepts an uploaded file and returns a stable reference path
type Store interface {
	Put(ctx context.Context, filename string, body io.Reader) (string, error)
}

// S3Store stores uploads in an S3 bucket
type S3Store struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// NewS3 creates an S3-backed media store. Returns nil when blob
// storage is not configured; callers treat a nil store as disabled.
func NewS3(ctx context.Context, cfg *config.MediaConfig) (*S3Store, error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Blob storage disabled")
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logging.GetLogger().Info("Blob storage configured", zap.String("bucket", cfg.S3Bucket))

	return &S3Store{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
		logger: logging.WithComponent("media"),
	}, nil
}

// Put uploads the file body and returns its object key
func (s *S3Store) Put(ctx context.Context, filename string, body io.Reader) (string, error) {
	key := "posts/" + uuid.New().String() + filepath.Ext(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload media: %w", err)
	}

	s.logger.Debug("Media uploaded", zap.String("key", key))
	return key, nil
}
