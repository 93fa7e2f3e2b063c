package respond

import (
	"time"

	"chitchat_server/internal/model"
)

// Friendship status names between two users.
const (
	FriendStatusNone     = "NONE"
	FriendStatusPending  = "PENDING"
	FriendStatusReceived = "RECEIVED"
	FriendStatusFriends  = "FRIENDS"
)

// FriendRequestRespond is one pending request as seen by the receiver.
type FriendRequestRespond struct {
	Uuid      string      `json:"uuid"`
	SenderId  string      `json:"senderId"`
	Sender    UserRespond `json:"sender"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewFriendRequestRespond converts a pending contact row plus its sender.
func NewFriendRequestRespond(c *model.Contact, sender *model.User) FriendRequestRespond {
	return FriendRequestRespond{
		Uuid:      c.Uuid,
		SenderId:  c.UserId,
		Sender:    NewUserRespond(sender),
		CreatedAt: c.CreatedAt,
	}
}

// FriendStatusRespond reports the relation between the caller and a user.
type FriendStatusRespond struct {
	Status string `json:"status"`
}
