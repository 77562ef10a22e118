package realtime

import (
	"encoding/json"
	"fmt"

	"blogify/internal/core/posts"
)

// WireEvent is a row-level change message as the store's realtime
// endpoint delivers it over the websocket.
type WireEvent struct {
	New   *posts.Record `json:"record,omitempty"`
	Old   *posts.Record `json:"old_record,omitempty"`
	Table string        `json:"table"`
	Event string        `json:"event"` // "INSERT", "UPDATE", "DELETE"
}

// DecodeEvent parses a raw websocket message into a ChangeEvent for the
// given table. ok is false for messages about other tables; malformed
// JSON is an error.
func DecodeEvent(message []byte, table string) (posts.ChangeEvent, bool, error) {
	var wire WireEvent
	if err := json.Unmarshal(message, &wire); err != nil {
		return posts.ChangeEvent{}, false, fmt.Errorf("failed to parse change event: %w", err)
	}

	if wire.Table != table {
		return posts.ChangeEvent{}, false, nil
	}

	return posts.ChangeEvent{
		Action: posts.EventAction(wire.Event),
		New:    wire.New,
		Old:    wire.Old,
	}, true, nil
}
