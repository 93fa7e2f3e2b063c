package respond

import (
	"strconv"
	"time"

	"chitchat_server/internal/model"
)

// MessageRespond is the client view of a message. Uuid is rendered as a
// string because snowflake ids overflow JS numbers.
type MessageRespond struct {
	Uuid         string     `json:"uuid"`
	RoomId       string     `json:"roomId"`
	SenderId     string     `json:"senderId"`
	SenderName   string     `json:"senderName"`
	SenderAvatar string     `json:"senderAvatar,omitempty"`
	Content      string     `json:"content"`
	Type         string     `json:"type"`
	SentAt       time.Time  `json:"sentAt"`
	EditedAt     *time.Time `json:"editedAt,omitempty"`
	Deleted      bool       `json:"deleted"`
}

// NewMessageRespond converts a message row. Deleted messages keep their slot
// in pages but carry no content.
func NewMessageRespond(m *model.Message) MessageRespond {
	r := MessageRespond{
		Uuid:         strconv.FormatInt(m.Uuid, 10),
		RoomId:       m.RoomUuid,
		SenderId:     m.SenderId,
		SenderName:   m.SenderName,
		SenderAvatar: m.SenderAvatar,
		Content:      m.Content,
		Type:         model.MessageTypeName(m.Type),
		SentAt:       m.SentAt,
	}
	if m.EditedAt.Valid {
		t := m.EditedAt.Time
		r.EditedAt = &t
	}
	if !m.IsActive() {
		r.Deleted = true
		r.Content = ""
	}
	return r
}

// MessagePageRespond is one page of messages, newest first.
type MessagePageRespond struct {
	Messages []MessageRespond `json:"messages"`
	Page     int              `json:"page"`
	Size     int              `json:"size"`
}
