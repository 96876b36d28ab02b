package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds the object-store connection settings. A zero Endpoint disables
// archiving.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Archive keeps original lease uploads in an object store so the raw file
// survives past analysis.
type Archive struct {
	client *minio.Client
	bucket string
}

// NewArchive connects to the object store and ensures the bucket exists.
func NewArchive(ctx context.Context, cfg Config) (*Archive, error) {
	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("bucket check: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("make bucket: %w", err)
		}
	}

	return &Archive{client: cli, bucket: cfg.Bucket}, nil
}

// Put uploads a local file under the given key and returns its URL. Private
// buckets would need a presigned URL instead.
func (a *Archive) Put(ctx context.Context, localPath, key, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := a.client.FPutObject(ctx, a.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return fmt.Sprintf("http://%s/%s/%s", a.client.EndpointURL().Host, a.bucket, key), nil
}
