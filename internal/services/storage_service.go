package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"beanmart/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// objectKeyPrefix namespaces every uploaded image inside the bucket.
const objectKeyPrefix = "product-images/"

// UploadResult is what the store hands back after a successful put.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// StorageService is the S3-compatible object store client used for variant
// images.
type StorageService interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (*UploadResult, error)
	// Delete returns false rather than an error on failure: "file already
	// gone" is an expected, non-fatal case on every cleanup path.
	Delete(ctx context.Context, key string) bool
	// KeyFromURL extracts the object key from a previously issued public
	// URL, or returns "" when the URL does not match the expected shape.
	KeyFromURL(url string) string
	UniqueFilename(originalName string) string
}

type minioStorage struct {
	client         *minio.Client
	bucket         string
	publicEndpoint string
	logger         zerolog.Logger
}

// NewStorageService builds the minio-backed store. Configuration is validated
// here so a misconfigured deployment fails at startup, not on the first
// upload.
func NewStorageService(cfg config.StorageConfig, logger zerolog.Logger) (StorageService, error) {
	if cfg.Endpoint == "" || cfg.Region == "" || cfg.AccessKey == "" ||
		cfg.SecretKey == "" || cfg.BucketName == "" || cfg.PublicEndpoint == "" {
		return nil, fmt.Errorf("storage configuration incomplete: endpoint, region, credentials, bucket and public endpoint are all required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}

	return &minioStorage{
		client:         client,
		bucket:         cfg.BucketName,
		publicEndpoint: strings.TrimRight(cfg.PublicEndpoint, "/"),
		logger:         logger,
	}, nil
}

func (s *minioStorage) Upload(ctx context.Context, data []byte, filename, contentType string) (*UploadResult, error) {
	key := objectKeyPrefix + s.UniqueFilename(filename)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	return &UploadResult{
		URL: fmt.Sprintf("%s/%s/%s", s.publicEndpoint, s.bucket, key),
		Key: key,
	}, nil
}

func (s *minioStorage) Delete(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("object delete failed")
		return false
	}
	return true
}

func (s *minioStorage) KeyFromURL(url string) string {
	return ExtractObjectKey(url, s.publicEndpoint, s.bucket)
}

func (s *minioStorage) UniqueFilename(originalName string) string {
	return UniqueObjectFilename(originalName)
}

// ExtractObjectKey reverses the public URL construction. It returns "" when
// the URL was not issued by this store.
func ExtractObjectKey(url, publicEndpoint, bucket string) string {
	prefix := strings.TrimRight(publicEndpoint, "/") + "/" + bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	key := strings.TrimPrefix(url, prefix)
	if !strings.HasPrefix(key, objectKeyPrefix) {
		return ""
	}
	return key
}

// UniqueObjectFilename combines a fresh UUID with the original file's
// extension.
func UniqueObjectFilename(originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	return uuid.New().String() + ext
}
