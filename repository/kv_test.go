package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvu/cinesync/entity"
	"github.com/tranvu/cinesync/infra"
	"github.com/tranvu/cinesync/utils"
)

type fakeKV struct {
	data map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}}
}

func (f *fakeKV) SetBytes(_ context.Context, key string, value []byte) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) GetBytes(_ context.Context, key string) ([]byte, error) {
	value, ok := f.data[key]
	if !ok {
		return nil, infra.ErrCacheMiss
	}
	return value, nil
}

func (f *fakeKV) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func TestKVRepository_RoundTrip(t *testing.T) {
	kv := newFakeKV()
	repo := NewKVRepository(kv)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "public_base_url", []byte("https://media.example")))

	value, err := repo.Get(ctx, "public_base_url")
	require.NoError(t, err)
	assert.Equal(t, "https://media.example", string(value))

	// values live under an isolated prefix
	_, raw := kv.data["public_base_url"]
	assert.False(t, raw)
	_, prefixed := kv.data["kv:public_base_url"]
	assert.True(t, prefixed)

	require.NoError(t, repo.Delete(ctx, "public_base_url"))
	_, err = repo.Get(ctx, "public_base_url")
	var notFound *utils.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "public_base_url", notFound.Key)
}

func TestRoomStateRepository_MissReturnsDefault(t *testing.T) {
	repo := NewRoomStateRepository(newFakeKV())

	state, found, err := repo.Load(context.Background(), "never-written")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, entity.DefaultPlaybackState(), state)
}

func TestRoomStateRepository_SaveThenLoad(t *testing.T) {
	repo := NewRoomStateRepository(newFakeKV())
	ctx := context.Background()

	saved := entity.PlaybackState{
		PrimaryURL: "https://cdn.example/v.mp4",
		Timestamp:  33.25,
		Paused:     false,
		Queue:      []string{"v.mp4", "next.mp4"},
	}
	require.NoError(t, repo.Save(ctx, "movie-night", saved))

	loaded, found, err := repo.Load(ctx, "movie-night")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, saved, loaded)
}

func TestRoomStateRepository_NilQueueNormalized(t *testing.T) {
	kv := newFakeKV()
	kv.data["room:state:legacy"] = []byte(`{"primaryUrl":"a","timestamp":1,"paused":true}`)
	repo := NewRoomStateRepository(kv)

	state, found, err := repo.Load(context.Background(), "legacy")
	require.NoError(t, err)
	assert.True(t, found)
	assert.NotNil(t, state.Queue)
	assert.Empty(t, state.Queue)
}
