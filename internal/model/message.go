package model

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// Message types.
const (
	MessageTypeText   int8 = 0
	MessageTypeImage  int8 = 1
	MessageTypeFile   int8 = 2
	MessageTypeSystem int8 = 3
)

// Message statuses.
const (
	MessageStatusActive  int8 = 0
	MessageStatusDeleted int8 = 1
)

// Message is append-only except for Content/EditedAt on edit and Status on
// soft delete. Rows are never physically removed, preserving history and
// making delete idempotent. EditedAt is set iff the content has been edited
// at least once.
type Message struct {
	gorm.Model

	// Uuid is a snowflake id: monotonic per node, a stable tiebreak for
	// messages sharing a sentAt.
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:message snowflake id"`

	RoomUuid string `gorm:"column:room_uuid;index;type:char(36);not null;comment:room id"`
	SenderId string `gorm:"column:sender_id;index;type:char(36);not null;comment:sender user id"`

	// SenderName/SenderAvatar are denormalized so listing messages does not
	// join the user table.
	SenderName   string `gorm:"column:sender_name;type:varchar(100);not null;comment:sender display name"`
	SenderAvatar string `gorm:"column:sender_avatar;type:varchar(255);comment:sender avatar url"`

	Content  string       `gorm:"column:content;type:TEXT;comment:message content"`
	Type     int8         `gorm:"column:type;not null;comment:0 text 1 image 2 file 3 system"`
	SentAt   time.Time    `gorm:"column:sent_at;index;not null;comment:send time"`
	EditedAt sql.NullTime `gorm:"column:edited_at;comment:last edit time"`
	Status   int8         `gorm:"column:status;index;not null;comment:0 active 1 deleted"`
}

func (Message) TableName() string {
	return "message"
}

// IsActive reports whether the message is visible (not soft-deleted).
func (m *Message) IsActive() bool {
	return m.Status == MessageStatusActive
}

// MessageTypeFromName maps the wire name to the column value.
// Unknown names report ok=false.
func MessageTypeFromName(name string) (int8, bool) {
	switch name {
	case "TEXT":
		return MessageTypeText, true
	case "IMAGE":
		return MessageTypeImage, true
	case "FILE":
		return MessageTypeFile, true
	case "SYSTEM":
		return MessageTypeSystem, true
	default:
		return 0, false
	}
}

// MessageTypeName maps the column value back to the wire name.
func MessageTypeName(t int8) string {
	switch t {
	case MessageTypeImage:
		return "IMAGE"
	case MessageTypeFile:
		return "FILE"
	case MessageTypeSystem:
		return "SYSTEM"
	default:
		return "TEXT"
	}
}
