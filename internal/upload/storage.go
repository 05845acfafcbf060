package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage stores uploaded images in an S3-compatible bucket and hands
// back their public URLs.
type Storage interface {
	Put(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error)
}

type s3Storage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewStorage builds the bucket client from S3_* environment variables.
func NewStorage() (Storage, error) {
	endpoint := os.Getenv("S3_ENDPOINT")
	if endpoint == "" {
		return nil, fmt.Errorf("S3_ENDPOINT is not set")
	}
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is not set")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("S3_ACCESS_KEY"), os.Getenv("S3_SECRET_KEY"), ""),
		Secure: os.Getenv("S3_USE_SSL") != "false",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build storage client: %w", err)
	}

	publicURL := strings.TrimRight(os.Getenv("S3_PUBLIC_URL"), "/")
	if publicURL == "" {
		scheme := "https"
		if os.Getenv("S3_USE_SSL") == "false" {
			scheme = "http"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket)
	}

	return &s3Storage{client: client, bucket: bucket, publicURL: publicURL}, nil
}

func (s *s3Storage) Put(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	key := objectKey(filename)
	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return s.publicURL + "/" + key, nil
}

// objectKey builds a collision-free key, keeping the original extension
// for content-type sniffing on the CDN side.
func objectKey(filename string) string {
	ext := ""
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		ext = strings.ToLower(filename[idx:])
	}
	return fmt.Sprintf("uploads/%s_%d%s", uuid.NewString(), time.Now().Unix(), ext)
}
