package model

import "gorm.io/gorm"

// Participant roles.
const (
	RoleMember int8 = 1
	RoleAdmin  int8 = 2
)

// Participant statuses.
const (
	ParticipantStatusActive  int8 = 0
	ParticipantStatusRemoved int8 = 1
)

// Participant records a user's membership and role within a room. At most one
// active row exists per (room, user); removal soft-deactivates the row so that
// re-adding creates a fresh one.
type Participant struct {
	gorm.Model

	RoomUuid string `gorm:"column:room_uuid;index:idx_room_user;type:char(36);not null;comment:room id"`
	UserUuid string `gorm:"column:user_uuid;index:idx_room_user;index;type:char(36);not null;comment:user id"`
	Role     int8   `gorm:"column:role;not null;comment:1 member 2 admin"`
	Status   int8   `gorm:"column:status;not null;comment:0 active 1 removed"`
}

func (Participant) TableName() string {
	return "participant"
}

// IsAdmin reports whether this membership carries moderation rights.
func (p *Participant) IsAdmin() bool {
	return p.Role == RoleAdmin
}
