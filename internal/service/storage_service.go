package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/minio/minio-go/v7"

	"grievance-portal/internal/config"
)

// ErrStorageUnavailable is returned when the blob store was not configured
// or could not be reached at startup. Callers branch on Available() and
// degrade instead of crashing the request.
var ErrStorageUnavailable = errors.New("blob storage is not available")

type StorageService interface {
	Available() bool
	Put(ctx context.Context, path string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
}

type storageService struct {
	client *minio.Client
	cfg    *config.Config
}

// NewStorageService accepts a nil client: the service then reports
// unavailable rather than panicking on first use.
func NewStorageService(client *minio.Client, cfg *config.Config) StorageService {
	return &storageService{
		client: client,
		cfg:    cfg,
	}
}

func (s *storageService) Available() bool {
	return s.client != nil
}

func (s *storageService) Put(ctx context.Context, path string, reader io.Reader, size int64, contentType string) error {
	if s.client == nil {
		return ErrStorageUnavailable
	}

	_, err := s.client.PutObject(ctx, s.cfg.MinIOBucket, path, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload to MinIO: %w", err)
	}
	return nil
}

func (s *storageService) Delete(ctx context.Context, path string) error {
	if s.client == nil {
		return ErrStorageUnavailable
	}
	return s.client.RemoveObject(ctx, s.cfg.MinIOBucket, path, minio.RemoveObjectOptions{})
}

func (s *storageService) PublicURL(path string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(path))
}
