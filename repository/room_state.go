package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tranvu/cinesync/entity"
	"github.com/tranvu/cinesync/infra"
)

// RoomStateRepository persists one playback record per room name. Room state
// is never explicitly deleted; it remains until the store is purged.
type RoomStateRepository struct {
	kv KVStore
}

const roomStatePrefix = "room:state:"

func NewRoomStateRepository(kv KVStore) *RoomStateRepository {
	return &RoomStateRepository{kv: kv}
}

// Load returns the persisted state for a room, or (default, false) when the
// room has never been written.
func (r *RoomStateRepository) Load(ctx context.Context, roomName string) (entity.PlaybackState, bool, error) {
	data, err := r.kv.GetBytes(ctx, roomStatePrefix+roomName)
	if err != nil {
		if errors.Is(err, infra.ErrCacheMiss) {
			return entity.DefaultPlaybackState(), false, nil
		}
		return entity.PlaybackState{}, false, fmt.Errorf("failed to load room %s: %w", roomName, err)
	}

	var state entity.PlaybackState
	if err := json.Unmarshal(data, &state); err != nil {
		return entity.PlaybackState{}, false, fmt.Errorf("corrupt state for room %s: %w", roomName, err)
	}
	if state.Queue == nil {
		state.Queue = []string{}
	}
	return state, true, nil
}

// Save persists the merged state. Called synchronously before any broadcast.
func (r *RoomStateRepository) Save(ctx context.Context, roomName string, state entity.PlaybackState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state for room %s: %w", roomName, err)
	}
	if err := r.kv.SetBytes(ctx, roomStatePrefix+roomName, data); err != nil {
		return fmt.Errorf("failed to persist room %s: %w", roomName, err)
	}
	return nil
}
