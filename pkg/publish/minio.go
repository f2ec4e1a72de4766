package publish

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioUploader uploads through the MinIO client to any S3-compatible store.
type MinioUploader struct {
	client *minio.Client
	bucket string
}

// NewMinio connects to opts.Endpoint with static credentials.
func NewMinio(opts Options) (*MinioUploader, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("minio backend needs an endpoint")
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioUploader{client: client, bucket: opts.Bucket}, nil
}

func (u *MinioUploader) Upload(ctx context.Context, key, localPath, contentType string) error {
	_, err := u.client.FPutObject(ctx, u.bucket, key, localPath, minio.PutObjectOptions{ContentType: contentType})
	return err
}
