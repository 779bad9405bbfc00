// Package storage implements the object storage port on MinIO.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// Config carries the MinIO connection settings
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool

	// PublicURL is the base URL clients fetch objects from; falls back to
	// the endpoint when empty.
	PublicURL string
}

// MinioStorage implements out.FileStorage on a MinIO (or S3-compatible)
// bucket.
type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	log       zerolog.Logger
}

func NewMinioStorage(cfg Config, log zerolog.Logger) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}

	return &MinioStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		log:       log.With().Str("component", "minio_storage").Logger(),
	}, nil
}

// EnsureBucket creates the bucket on first boot if it does not exist yet
func (s *MinioStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket check: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket: %w", err)
	}
	s.log.Info().Str("bucket", s.bucket).Msg("created bucket")
	return nil
}

func (s *MinioStorage) Put(ctx context.Context, path, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", path, err)
	}

	s.log.Debug().Str("path", path).Int("bytes", len(data)).Msg("stored object")
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, path), nil
}

// RemoveFolder deletes every object under the prefix. Listing and removal
// stream concurrently through the errors channel minio provides.
func (s *MinioStorage) RemoveFolder(ctx context.Context, folderPath string) error {
	prefix := strings.TrimSuffix(folderPath, "/") + "/"

	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	removed := 0
	for result := range s.client.RemoveObjects(ctx, s.bucket, objects, minio.RemoveObjectsOptions{}) {
		if result.Err != nil {
			return fmt.Errorf("remove %s: %w", result.ObjectName, result.Err)
		}
		removed++
	}

	if removed > 0 {
		s.log.Debug().Str("prefix", prefix).Int("removed", removed).Msg("cleared folder")
	}
	return nil
}
