package room

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/tranvu/cinesync/entity"
	"github.com/tranvu/cinesync/infra"
)

// StateStore persists one playback record per room.
type StateStore interface {
	Load(ctx context.Context, roomName string) (entity.PlaybackState, bool, error)
	Save(ctx context.Context, roomName string, state entity.PlaybackState) error
}

// Hub is the arena of live rooms, keyed by room name. Each entry owns the
// set of sessions connected to that room; an entry is evicted once the set
// becomes empty.
type Hub struct {
	store  StateStore
	logger *infra.LoggerClient

	upgrader websocket.Upgrader

	mu    sync.Mutex
	rooms map[string]*Room
}

func NewHub(store StateStore, logger *infra.LoggerClient) *Hub {
	return &Hub{
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		rooms: make(map[string]*Room),
	}
}

// Join upgrades the request and registers the connection with the room's
// actor. The upgrade happens first: a request that never becomes a session
// must not create a room.
func (h *Hub) Join(w http.ResponseWriter, r *http.Request, roomName string) error {
	if roomName == "" {
		return fmt.Errorf("room name is required")
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade failed: %w", err)
	}

	rm := h.checkout(roomName)
	s := newSession(rm, conn)
	rm.register <- s

	go s.writePump()
	go s.readPump()
	return nil
}

// checkout returns the single live actor for the room, creating it when
// absent, and reserves a pending registration so the actor cannot be evicted
// before the new session reaches it. Persisted state is loaded by the actor
// itself, so a slow load never stalls joins to other rooms.
func (h *Hub) checkout(roomName string) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()

	rm, ok := h.rooms[roomName]
	if !ok {
		rm = newRoom(h, roomName)
		h.rooms[roomName] = rm
		go rm.run()
	}
	rm.pending.Add(1)
	return rm
}

func (h *Hub) loadState(ctx context.Context, roomName string) entity.PlaybackState {
	state, found, err := h.store.Load(ctx, roomName)
	if err != nil {
		h.logger.ErrorWithContextf(ctx, err, "[Room %s] Failed to load persisted state, starting from default", roomName)
		return entity.DefaultPlaybackState()
	}
	if !found {
		return entity.DefaultPlaybackState()
	}
	return state
}

// tryEvict removes the room from the arena unless a registration is in
// flight. Returns true when the actor may stop.
func (h *Hub) tryEvict(rm *Room) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if rm.pending.Load() > 0 {
		return false
	}
	delete(h.rooms, rm.name)
	return true
}

// RoomCount reports the number of live rooms, for the health endpoint.
func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}
