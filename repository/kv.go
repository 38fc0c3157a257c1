package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tranvu/cinesync/infra"
	"github.com/tranvu/cinesync/utils"
)

// KVStore is the durable key-value collaborator. No transactional multi-key
// guarantee is assumed.
type KVStore interface {
	SetBytes(ctx context.Context, key string, value []byte) error
	GetBytes(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
}

// KVRepository stores small configuration values (stored API keys, the public
// base URL) under an isolated key prefix.
type KVRepository struct {
	kv KVStore
}

const kvPrefix = "kv:"

func NewKVRepository(kv KVStore) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.kv.GetBytes(ctx, kvPrefix+key)
	if err != nil {
		if errors.Is(err, infra.ErrCacheMiss) {
			return nil, &utils.NotFoundError{Key: key}
		}
		return nil, fmt.Errorf("failed to read kv %s: %w", key, err)
	}
	return data, nil
}

func (r *KVRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := r.kv.SetBytes(ctx, kvPrefix+key, value); err != nil {
		return fmt.Errorf("failed to write kv %s: %w", key, err)
	}
	return nil
}

func (r *KVRepository) Delete(ctx context.Context, key string) error {
	if err := r.kv.Delete(ctx, kvPrefix+key); err != nil {
		return fmt.Errorf("failed to delete kv %s: %w", key, err)
	}
	return nil
}
