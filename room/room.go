package room

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/tranvu/cinesync/entity"
)

type inbound struct {
	from *Session
	data []byte
}

// Room is the single-writer actor for one room name: all state mutation and
// fan-out is serialized through its run loop.
type Room struct {
	name string
	hub  *Hub

	state    entity.PlaybackState
	sessions map[*Session]bool

	register   chan *Session
	unregister chan *Session
	messages   chan inbound

	// registrations reserved by the hub but not yet processed by the loop
	pending atomic.Int64
}

func newRoom(hub *Hub, name string) *Room {
	return &Room{
		name:       name,
		hub:        hub,
		sessions:   make(map[*Session]bool),
		register:   make(chan *Session, 32),
		unregister: make(chan *Session, 32),
		messages:   make(chan inbound, 128),
	}
}

func (r *Room) run() {
	ctx := context.Background()
	// loaded before the first registration is served, so every joiner sees
	// the persisted record
	r.state = r.hub.loadState(ctx, r.name)
	for {
		select {
		case s := <-r.register:
			r.pending.Add(-1)
			r.sessions[s] = true
			// the joiner sees the canonical state before any later broadcast
			if payload, err := json.Marshal(r.state); err == nil {
				r.send(s, payload)
			}

		case s := <-r.unregister:
			r.drop(s)
			if len(r.sessions) == 0 && r.hub.tryEvict(r) {
				return
			}

		case m := <-r.messages:
			r.handleMessage(ctx, m)
			if len(r.sessions) == 0 && r.hub.tryEvict(r) {
				return
			}
		}
	}
}

func (r *Room) handleMessage(ctx context.Context, m inbound) {
	update, err := entity.ParsePlaybackUpdate(m.data)
	if err != nil {
		r.hub.logger.WarningWithContextf(ctx, "[Room %s] Dropped malformed message from %s: %v", r.name, m.from.id, err)
		return
	}
	if update.IsZero() {
		// nothing to merge, nothing to tell the peers
		return
	}

	r.state.Apply(update)

	if err := r.hub.store.Save(ctx, r.name, r.state); err != nil {
		// not durably recorded, so peers must not observe it
		r.hub.logger.ErrorWithContextf(ctx, err, "[Room %s] Failed to persist state, skipping broadcast", r.name)
		return
	}

	payload, err := json.Marshal(r.state)
	if err != nil {
		r.hub.logger.ErrorWithContextf(ctx, err, "[Room %s] Failed to encode state", r.name)
		return
	}

	for s := range r.sessions {
		if s == m.from {
			continue
		}
		r.send(s, payload)
	}
}

// send delivers to one session; a peer that cannot keep up is dropped and
// the fan-out continues.
func (r *Room) send(s *Session, payload []byte) {
	select {
	case s.send <- payload:
	default:
		r.hub.logger.WarningWithContextf(context.Background(), "[Room %s] Session %s send buffer full, dropping peer", r.name, s.id)
		r.drop(s)
	}
}

func (r *Room) drop(s *Session) {
	if _, ok := r.sessions[s]; !ok {
		return
	}
	delete(r.sessions, s)
	close(s.closed)
	close(s.send)
	_ = s.conn.Close()
}
