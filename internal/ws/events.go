package ws

import (
	"encoding/json"

	"crestgold_backend/internal/ledger"
)

// Event is one message on the live feed.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

const (
	EventReady       = "ready"
	EventNoteSpawn   = "note"
	EventNoteExpire  = "note_expired"
	EventGeodeFound  = "geode_found"
	EventUserCount   = "user_count"
	EventRequestSeen = "request_update"
)

// server → client payloads

type NoteExpirePayload struct {
	ID int64 `json:"id"`
}

type UserCountPayload struct {
	Count int64 `json:"count"`
}

type RequestUpdatePayload struct {
	Kind   string `json:"kind"` // deposit | withdrawal
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Marshal encodes an event, falling back to a bare type marker if the
// payload cannot be encoded.
func Marshal(typ string, data any) []byte {
	msg, err := json.Marshal(Event{Type: typ, Data: data})
	if err != nil {
		return []byte(`{"type":"` + typ + `"}`)
	}
	return msg
}

// NoteEvent encodes a floating note spawn.
func NoteEvent(n ledger.Note) []byte {
	return Marshal(EventNoteSpawn, n)
}
