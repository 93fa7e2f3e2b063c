// Package chat carries the realtime side: room events, the broker that
// transports them, and the websocket hub that fans them out to clients.
package chat

import (
	"encoding/json"
	"time"
)

// Event kinds.
const (
	EventMessageSent = "MESSAGE_SENT"
	EventUserJoined  = "USER_JOINED"
	EventUserLeft    = "USER_LEFT"
	EventTyping      = "TYPING"
)

// Event is one room-scoped broadcast. Data holds the kind-specific payload
// already marshaled, so the broker and hub never need to know payload types.
type Event struct {
	Kind   string          `json:"kind"`
	RoomId string          `json:"roomId"`
	At     time.Time       `json:"at"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// MessageSentData is the payload of a MESSAGE_SENT event.
type MessageSentData struct {
	MessageId  string `json:"messageId"`
	SenderId   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Content    string `json:"content"`
	Type       string `json:"type"`
}

// RoomUserData is the payload of USER_JOINED, USER_LEFT and TYPING events.
type RoomUserData struct {
	UserId      string `json:"userId"`
	DisplayName string `json:"displayName,omitempty"`
}

// NewEvent builds an event, marshaling the payload. Marshal errors cannot
// occur for the payload types above, so they are swallowed into empty data.
func NewEvent(kind, roomId string, data any) Event {
	raw, _ := json.Marshal(data)
	return Event{Kind: kind, RoomId: roomId, At: time.Now(), Data: raw}
}

// Publisher is the narrow producer view of a broker, what the room and
// message services depend on.
type Publisher interface {
	Publish(e Event) error
}
