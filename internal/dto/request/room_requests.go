package request

// CreateRoomRequest creates a group or direct room. ParticipantIds are added
// as members; the creator is seeded as admin automatically.
type CreateRoomRequest struct {
	Name           string   `json:"name" binding:"required,min=1,max=100"`
	IsGroup        bool     `json:"isGroup"`
	Description    string   `json:"description" binding:"max=500"`
	ParticipantIds []string `json:"participantIds"`
}

// DirectRoomRequest finds or creates the direct room with another user.
type DirectRoomRequest struct {
	UserId string `json:"userId" binding:"required"`
}

// ParticipantRequest targets one user in one room (add/remove).
type ParticipantRequest struct {
	UserId string `json:"userId" binding:"required"`
}
