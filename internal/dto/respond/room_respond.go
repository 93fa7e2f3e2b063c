package respond

import (
	"time"

	"chitchat_server/internal/model"
)

// RoomRespond is the list/detail view of a room.
type RoomRespond struct {
	Uuid             string        `json:"uuid"`
	Name             string        `json:"name"`
	IsGroup          bool          `json:"isGroup"`
	CreatorId        string        `json:"creatorId"`
	Description      string        `json:"description"`
	CreatedAt        time.Time     `json:"createdAt"`
	ParticipantCount int64         `json:"participantCount"`
	Participants     []UserRespond `json:"participants,omitempty"`
}

// NewRoomRespond converts a room row. Participants are filled by the caller
// when the detail view asks for them.
func NewRoomRespond(r *model.Room, count int64) RoomRespond {
	return RoomRespond{
		Uuid:             r.Uuid,
		Name:             r.Name,
		IsGroup:          r.IsGroup,
		CreatorId:        r.CreatorId,
		Description:      r.Description,
		CreatedAt:        r.CreatedAt,
		ParticipantCount: count,
	}
}
