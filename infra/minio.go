package infra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tranvu/cinesync/config"
	"github.com/tranvu/cinesync/entity"
)

// ErrObjectMissing is returned when the requested key is not in the bucket.
var ErrObjectMissing = errors.New("object not found")

type MinioClient struct {
	Client *minio.Client
	Bucket string
}

func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	if cfg.Minio.Endpoint == "" {
		panic("MinIO endpoint is not configured")
	}

	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	m := &MinioClient{
		Client: client,
		Bucket: cfg.Minio.Bucket,
	}

	if err := m.EnsureBucket(context.Background()); err != nil {
		panic(fmt.Sprintf("Failed to ensure media bucket: %v", err))
	}

	log.Println("Connected to MinIO storage:", cfg.Minio.Endpoint)

	return m
}

// EnsureBucket creates the media bucket if it does not exist yet.
func (m *MinioClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.Client.BucketExists(ctx, m.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := m.Client.MakeBucket(ctx, m.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// ListPage returns at most limit objects with keys after cursor, plus a
// truncation flag and the cursor for the next page.
func (m *MinioClient) ListPage(ctx context.Context, cursor string, limit int) ([]entity.StoredObject, bool, string, error) {
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := make([]entity.StoredObject, 0, limit)
	for info := range m.Client.ListObjects(listCtx, m.Bucket, minio.ListObjectsOptions{
		Recursive:  true,
		StartAfter: cursor,
		MaxKeys:    limit,
	}) {
		if info.Err != nil {
			return nil, false, "", fmt.Errorf("failed to list objects: %w", info.Err)
		}
		objects = append(objects, entity.StoredObject{
			Key:         info.Key,
			SizeBytes:   info.Size,
			ContentType: info.ContentType,
			ETag:        info.ETag,
			UploadedAt:  info.LastModified,
		})
		if len(objects) == limit {
			break
		}
	}

	truncated := len(objects) == limit
	nextCursor := ""
	if truncated {
		nextCursor = objects[len(objects)-1].Key
	}
	return objects, truncated, nextCursor, nil
}

// StatObject resolves the metadata of one object, or ErrObjectMissing.
func (m *MinioClient) StatObject(ctx context.Context, key string) (entity.StoredObject, error) {
	info, err := m.Client.StatObject(ctx, m.Bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return entity.StoredObject{}, ErrObjectMissing
		}
		return entity.StoredObject{}, fmt.Errorf("failed to stat object %s: %w", key, err)
	}
	return entity.StoredObject{
		Key:         info.Key,
		SizeBytes:   info.Size,
		ContentType: info.ContentType,
		ETag:        info.ETag,
		UploadedAt:  info.LastModified,
	}, nil
}

// GetObjectRange opens a reader over the inclusive byte range [start, end].
// A negative end reads to the end of the object.
func (m *MinioClient) GetObjectRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, error) {
	opts := minio.GetObjectOptions{}
	if end >= 0 {
		if err := opts.SetRange(start, end); err != nil {
			return nil, fmt.Errorf("failed to set range: %w", err)
		}
	} else if start > 0 {
		// from start to the end of the object
		if err := opts.SetRange(start, 0); err != nil {
			return nil, fmt.Errorf("failed to set range: %w", err)
		}
	}
	obj, err := m.Client.GetObject(ctx, m.Bucket, key, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	return obj, nil
}

func (m *MinioClient) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := m.Client.PutObject(ctx, m.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

func (m *MinioClient) RemoveObject(ctx context.Context, key string) error {
	if err := m.Client.RemoveObject(ctx, m.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}
