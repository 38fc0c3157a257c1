package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/tranvu/cinesync/entity"
	"github.com/tranvu/cinesync/infra"
	"github.com/tranvu/cinesync/utils"
)

// BucketClient is the object bucket collaborator. Listing is paginated:
// callers must keep paging until truncated is false.
type BucketClient interface {
	ListPage(ctx context.Context, cursor string, limit int) (objects []entity.StoredObject, truncated bool, nextCursor string, err error)
	StatObject(ctx context.Context, key string) (entity.StoredObject, error)
	GetObjectRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, error)
	PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	RemoveObject(ctx context.Context, key string) error
}

// EnforceResult reports what an eviction pass removed.
type EnforceResult struct {
	DeletedCount int   `json:"deleted_count"`
	FreedBytes   int64 `json:"freed_bytes"`
}

// ObjectRepository fronts the media bucket and keeps its total size within
// the configured byte budget.
type ObjectRepository struct {
	bucket     BucketClient
	quotaBytes int64
	logger     *infra.LoggerClient

	// serializes enforce-then-upload so concurrent uploads cannot race the
	// listing pass past the budget
	mu sync.Mutex
}

const listPageSize = 1000

func NewObjectRepository(bucket BucketClient, quotaBytes int64, logger *infra.LoggerClient) *ObjectRepository {
	return &ObjectRepository{
		bucket:     bucket,
		quotaBytes: quotaBytes,
		logger:     logger,
	}
}

// ListAll pages through the bucket until the listing is exhausted.
func (r *ObjectRepository) ListAll(ctx context.Context) ([]entity.StoredObject, error) {
	var all []entity.StoredObject
	cursor := ""
	for {
		objects, truncated, nextCursor, err := r.bucket.ListPage(ctx, cursor, listPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, objects...)
		if !truncated {
			return all, nil
		}
		cursor = nextCursor
	}
}

// EnforceQuota guarantees the bucket stays at or below maxBytes once an
// incoming object of incomingBytes lands. Eviction is oldest-first and stops
// as soon as the budget is met. An incoming object larger than the budget by
// itself evicts everything; rejecting it is the caller's decision.
func (r *ObjectRepository) EnforceQuota(ctx context.Context, maxBytes, incomingBytes int64) (EnforceResult, error) {
	var result EnforceResult

	objects, err := r.ListAll(ctx)
	if err != nil {
		return result, fmt.Errorf("quota listing failed: %w", err)
	}

	total := incomingBytes
	for _, obj := range objects {
		total += obj.SizeBytes
	}
	if total <= maxBytes {
		return result, nil
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].UploadedAt.Before(objects[j].UploadedAt)
	})

	for _, obj := range objects {
		if total <= maxBytes {
			break
		}
		if err := r.bucket.RemoveObject(ctx, obj.Key); err != nil {
			return result, fmt.Errorf("quota eviction failed at %s: %w", obj.Key, err)
		}
		total -= obj.SizeBytes
		result.DeletedCount++
		result.FreedBytes += obj.SizeBytes
		if r.logger != nil {
			r.logger.InfoWithContextf(ctx, "[Quota] Evicted %s (%d bytes), resident total now %d", obj.Key, obj.SizeBytes, total-incomingBytes)
		}
	}

	return result, nil
}

// Upload runs the enforce-then-put critical section: the eviction pass
// completes before the object is written, so a successful upload never
// leaves the bucket over budget.
func (r *ObjectRepository) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (EnforceResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.EnforceQuota(ctx, r.quotaBytes, size)
	if err != nil {
		return result, err
	}
	if err := r.bucket.PutObject(ctx, key, reader, size, contentType); err != nil {
		return result, err
	}
	return result, nil
}

// Stat resolves object metadata, mapping a missing key to NotFound.
func (r *ObjectRepository) Stat(ctx context.Context, key string) (entity.StoredObject, error) {
	obj, err := r.bucket.StatObject(ctx, key)
	if err != nil {
		if errors.Is(err, infra.ErrObjectMissing) {
			return entity.StoredObject{}, &utils.NotFoundError{Key: key}
		}
		return entity.StoredObject{}, err
	}
	return obj, nil
}

// OpenRange opens a reader over [start, end] inclusive; end < 0 reads to the
// end of the object.
func (r *ObjectRepository) OpenRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, error) {
	return r.bucket.GetObjectRange(ctx, key, start, end)
}

// Delete removes one object. Deleting racing a read is legitimate; the read
// surfaces a plain NotFound.
func (r *ObjectRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.Stat(ctx, key); err != nil {
		return err
	}
	return r.bucket.RemoveObject(ctx, key)
}
