package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const publicReadPolicy = `{
	"Version": "2012-10-17",
	"Statement": [{
		"Effect": "Allow",
		"Principal": {"AWS": ["*"]},
		"Action": ["s3:GetObject"],
		"Resource": ["arn:aws:s3:::%s/*"]
	}]
}`

var credentialErrorCodes = map[string]bool{
	"AccessDenied":          true,
	"InvalidAccessKeyId":    true,
	"SignatureDoesNotMatch": true,
	"ExpiredToken":          true,
	"InvalidToken":          true,
}

// MinIOService implements Uploader using MinIO.
type MinIOService struct {
	client      *minio.Client
	bucket      string
	baseURL     string
	maxFileSize int64
}

// NewMinIOService creates a new MinIO storage service.
func NewMinIOService(cfg Config) (*MinIOService, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("%w: MinIO is not configured", ErrCredentials)
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinIOService{
		client:      client,
		bucket:      cfg.GetMinIOBucket(),
		baseURL:     publicBaseURL(cfg),
		maxFileSize: cfg.GetMinIOMaxFileSize(),
	}, nil
}

// EnsureBucketExists creates the bucket if it doesn't exist and makes its
// objects publicly readable.
func (s *MinIOService) EnsureBucketExists(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", classify(err))
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, classify(err))
	}
	if err := s.client.SetBucketPolicy(ctx, s.bucket, fmt.Sprintf(publicReadPolicy, s.bucket)); err != nil {
		return fmt.Errorf("failed to set bucket policy %s: %w", s.bucket, classify(err))
	}
	return nil
}

// Upload stores the object under a unique key and returns its public URL.
func (s *MinIOService) Upload(ctx context.Context, in UploadInput) (Object, error) {
	key := objectKey(in.Folder, in.FileName)

	_, err := s.client.PutObject(ctx, s.bucket, key, in.Reader, in.Size, minio.PutObjectOptions{
		ContentType: in.ContentType,
	})
	if err != nil {
		return Object{}, fmt.Errorf("failed to upload file %s: %w", key, classify(err))
	}

	return Object{Key: key, URL: s.baseURL + "/" + s.bucket + "/" + key}, nil
}

// Delete removes an object from storage.
func (s *MinIOService) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, classify(err))
	}
	return nil
}

// MaxFileSize returns the configured maximum file size in bytes.
func (s *MinIOService) MaxFileSize() int64 {
	return s.maxFileSize
}

// objectKey appends the first eight characters of a UUID to the base name so
// repeated uploads of the same file never overwrite each other.
func objectKey(folder, fileName string) string {
	fileName = path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if fileName == "." || fileName == "/" {
		fileName = "image"
	}
	ext := strings.ToLower(path.Ext(fileName))
	baseName := strings.TrimSuffix(fileName, path.Ext(fileName))
	baseName = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, baseName)
	if baseName == "" {
		baseName = "image"
	}
	return path.Join(folder, fmt.Sprintf("%s_%s%s", baseName, uuid.New().String()[:8], ext))
}

func publicBaseURL(cfg Config) string {
	if base := strings.TrimRight(cfg.GetMinIOPublicBaseURL(), "/"); base != "" {
		return base
	}
	scheme := "http"
	if cfg.GetMinIOUseSSL() {
		scheme = "https"
	}
	return scheme + "://" + cfg.GetMinIOEndpoint()
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}
	if credentialErrorCodes[minio.ToErrorResponse(err).Code] {
		return fmt.Errorf("%w: %w", ErrCredentials, err)
	}
	return fmt.Errorf("%w: %w", ErrTransient, err)
}

var _ Uploader = (*MinIOService)(nil)
