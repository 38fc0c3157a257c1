package entity

import (
	"bytes"
	"encoding/json"
)

// PlaybackState is the canonical playback record for one room. Field names on
// the wire match what the player clients send.
type PlaybackState struct {
	PrimaryURL   string   `json:"primaryUrl"`
	SecondaryURL string   `json:"secondaryUrl"`
	Timestamp    float64  `json:"timestamp"`
	Paused       bool     `json:"paused"`
	Queue        []string `json:"queue"`
}

// DefaultPlaybackState is the state of a room nobody has touched yet.
func DefaultPlaybackState() PlaybackState {
	return PlaybackState{
		Timestamp: 0,
		Paused:    true,
		Queue:     []string{},
	}
}

// PlaybackUpdate is a sparse update: only non-nil fields are applied.
// Unknown fields are rejected at decode time, see ParsePlaybackUpdate.
type PlaybackUpdate struct {
	PrimaryURL   *string   `json:"primaryUrl,omitempty"`
	SecondaryURL *string   `json:"secondaryUrl,omitempty"`
	Timestamp    *float64  `json:"timestamp,omitempty"`
	Paused       *bool     `json:"paused,omitempty"`
	Queue        *[]string `json:"queue,omitempty"`
}

// Apply merges the update into the state, field-level last-writer-wins.
func (s *PlaybackState) Apply(u PlaybackUpdate) {
	if u.PrimaryURL != nil {
		s.PrimaryURL = *u.PrimaryURL
	}
	if u.SecondaryURL != nil {
		s.SecondaryURL = *u.SecondaryURL
	}
	if u.Timestamp != nil {
		s.Timestamp = *u.Timestamp
	}
	if u.Paused != nil {
		s.Paused = *u.Paused
	}
	if u.Queue != nil {
		s.Queue = *u.Queue
	}
}

// IsZero reports whether the update carries no fields at all.
func (u PlaybackUpdate) IsZero() bool {
	return u.PrimaryURL == nil && u.SecondaryURL == nil && u.Timestamp == nil &&
		u.Paused == nil && u.Queue == nil
}

// ParsePlaybackUpdate decodes a client message. Payloads carrying fields
// outside the allow-list are rejected rather than silently merged.
func ParsePlaybackUpdate(data []byte) (PlaybackUpdate, error) {
	var update PlaybackUpdate
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&update); err != nil {
		return PlaybackUpdate{}, err
	}
	return update, nil
}
