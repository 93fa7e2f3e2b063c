package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// Room statuses.
const (
	RoomStatusActive   int8 = 0
	RoomStatusDisabled int8 = 1
)

// Room is a message container: a group (N participants, admin-moderated) or a
// direct room (exactly 2 participants, no admin distinction). At most one
// active direct room exists per unordered pair of users; DirectKey holds the
// sorted "a:b" user pair for direct rooms and NULL for groups, so the unique
// index enforces the pair invariant at the database.
type Room struct {
	gorm.Model

	Uuid        string         `gorm:"column:uuid;uniqueIndex;type:char(36);not null;comment:room id"`
	Name        string         `gorm:"column:name;type:varchar(100);not null;comment:room name"`
	IsGroup     bool           `gorm:"column:is_group;not null;comment:group room or direct room"`
	DirectKey   sql.NullString `gorm:"column:direct_key;uniqueIndex;type:varchar(80);comment:sorted user pair, direct rooms only"`
	CreatorId   string         `gorm:"column:creator_id;index;type:char(36);not null;comment:creator user id"`
	Description string         `gorm:"column:description;type:varchar(500);comment:room description"`
	Status      int8           `gorm:"column:status;index;not null;comment:0 active 1 disabled"`
}

func (Room) TableName() string {
	return "room"
}

// IsActive reports whether the room accepts reads and writes.
func (r *Room) IsActive() bool {
	return r.Status == RoomStatusActive
}
