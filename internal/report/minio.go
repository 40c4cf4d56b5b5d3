package report

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/config"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/logger"
)

// MinioSink mirrors artifacts into an S3-compatible bucket
type MinioSink struct {
	client *minio.Client
	bucket string
	prefix string
	log    logger.Logger
}

func NewMinioSink(cfg config.MinioConfig, log logger.Logger) (*MinioSink, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Minio client: %w", err)
	}

	return &MinioSink{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		log:    log.WithField("component", "minio_sink"),
	}, nil
}

func (s *MinioSink) Prepare(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.log.Infof("Created bucket: %s", s.bucket)
	}
	return nil
}

func (s *MinioSink) Write(ctx context.Context, name string, data []byte) error {
	key := path.Join(s.prefix, name)
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.log.Debugf("Uploaded %s to bucket %s", key, s.bucket)
	return nil
}
