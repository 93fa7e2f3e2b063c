// Package objectstore wraps the S3-compatible blob storage behind a narrow
// interface so services and tests never touch the minio client directly.
package objectstore

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"chitchat_server/internal/config"
	"chitchat_server/pkg/errorx"
)

// Store is the blob operations the attachment service needs.
type Store interface {
	Put(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) error
	PresignedGet(ctx context.Context, objectKey, fileName string, expiry time.Duration) (string, error)
	Remove(ctx context.Context, objectKey string) error
}

// MinioStore stores blobs in one bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

var _ Store = (*MinioStore)(nil)

// NewMinioStore connects and ensures the bucket exists.
func NewMinioStore(cfg config.MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "connect object store")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "check bucket")
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errorx.Wrap(err, errorx.CodeServerBusy, "create bucket")
		}
		zap.L().Info("created object store bucket", zap.String("bucket", cfg.Bucket))
	}
	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) Put(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectKey, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "store object")
	}
	return nil
}

// PresignedGet returns a time-limited download link that forces the original
// file name on the browser.
func (s *MinioStore) PresignedGet(ctx context.Context, objectKey, fileName string, expiry time.Duration) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", `attachment; filename="`+fileName+`"`)
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, expiry, params)
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeServerBusy, "presign object")
	}
	return u.String(), nil
}

func (s *MinioStore) Remove(ctx context.Context, objectKey string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "remove object")
	}
	return nil
}
