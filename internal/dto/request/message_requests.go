package request

// SendMessageRequest appends a message to a room. Type uses the wire names
// TEXT/IMAGE/FILE/SYSTEM; empty means TEXT.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
	Type    string `json:"type" binding:"omitempty,oneof=TEXT IMAGE FILE SYSTEM"`
}

// EditMessageRequest replaces the content of a message the caller sent.
type EditMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// PageRequest selects one page of messages, newest first. Page is 0-based.
type PageRequest struct {
	Page int `form:"page" binding:"min=0"`
	Size int `form:"size" binding:"min=0,max=200"`
}

// SearchRequest searches message content. RoomId empty means "all rooms the
// caller participates in".
type SearchRequest struct {
	RoomId string `form:"roomId"`
	Query  string `form:"q" binding:"required"`
	Page   int    `form:"page" binding:"min=0"`
	Size   int    `form:"size" binding:"min=0,max=200"`
}
