package model

import "gorm.io/gorm"

// Contact statuses. There is no persisted "rejected" state: rejection and
// friend removal hard-delete the row.
const (
	ContactStatusPending  int8 = 0
	ContactStatusAccepted int8 = 1
)

// Contact is one directed edge of the friend graph, from requester (UserId)
// to recipient (FriendId). A friendship is two ACCEPTED edges, one per
// direction; Accept is the only operation that materializes the second edge.
type Contact struct {
	gorm.Model

	Uuid     string `gorm:"column:uuid;uniqueIndex;type:char(36);not null;comment:request id"`
	UserId   string `gorm:"column:user_id;uniqueIndex:uk_user_friend;type:char(36);not null;comment:edge source user id"`
	FriendId string `gorm:"column:friend_id;uniqueIndex:uk_user_friend;index;type:char(36);not null;comment:edge target user id"`
	Status   int8   `gorm:"column:status;not null;comment:0 pending 1 accepted"`
}

func (Contact) TableName() string {
	return "contact"
}
