package handler

import (
	"chitchat_server/internal/service"
	"chitchat_server/internal/service/chat"
)

// Handlers aggregates the HTTP handlers; the router depends on this struct.
type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Room       *RoomHandler
	Message    *MessageHandler
	Friend     *FriendHandler
	Attachment *AttachmentHandler
	AI         *AIHandler
	Ws         *WsHandler
}

// NewHandlers wires every handler to its service.
func NewHandlers(svc *service.Services, hub *chat.Hub, sender chat.MessageSender) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(svc.User),
		User:       NewUserHandler(svc.User),
		Room:       NewRoomHandler(svc.Room),
		Message:    NewMessageHandler(svc.Message),
		Friend:     NewFriendHandler(svc.Friend),
		Attachment: NewAttachmentHandler(svc.Attachment),
		AI:         NewAIHandler(svc.AI),
		Ws:         NewWsHandler(hub, sender, svc.User),
	}
}
