// Package gateway fans committed draft events out to WebSocket clients. It
// is a pure delivery layer: clients that miss a frame recover by refetching
// the draft detail, which always reflects committed state.
package gateway

import (
	"encoding/json"
	"time"
)

// RoomEventType identifies a frame sent to draft room clients.
type RoomEventType string

const (
	RoomEventStatusChanged  RoomEventType = "draft_status_changed"
	RoomEventPickMade       RoomEventType = "pick_made"
	RoomEventDraftCompleted RoomEventType = "draft_completed"
)

// RoomEvent is the frame delivered over a room WebSocket.
type RoomEvent struct {
	ID        string          `json:"id"`
	DraftID   string          `json:"draft_id"`
	Type      RoomEventType   `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}
