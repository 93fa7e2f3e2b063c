// Package service defines the business-layer interfaces consumed by the
// handler layer, plus the aggregate that wires the concrete implementations.
package service

import (
	"context"
	"io"

	"chitchat_server/internal/dto/request"
	"chitchat_server/internal/dto/respond"
)

// UserService handles accounts: registration, authentication, profiles.
type UserService interface {
	Register(req request.RegisterRequest) (respond.LoginRespond, error)
	Login(req request.LoginRequest) (respond.LoginRespond, error)
	Refresh(refreshToken string) (respond.LoginRespond, error)
	GetUserInfo(userId string) (respond.UserRespond, error)
	UpdateProfile(userId string, req request.UpdateProfileRequest) (respond.UserRespond, error)
	FindByEmail(email string) (respond.UserRespond, error)
	OnlineUsers() ([]string, error)
}

// RoomService handles room lifecycle and rosters.
type RoomService interface {
	CreateRoom(creatorId string, req request.CreateRoomRequest) (respond.RoomRespond, error)
	FindOrCreateDirectRoom(callerId, otherId string) (respond.RoomRespond, error)
	AddParticipant(callerId, roomId, userId string) error
	RemoveParticipant(callerId, roomId, userId string) error
	RoomsForUser(userId string) ([]respond.RoomRespond, error)
	RoomDetails(callerId, roomId string) (respond.RoomRespond, error)
}

// MessageService handles message operations within rooms. SendFromClient is
// the websocket entry point; it also satisfies chat.MessageSender.
type MessageService interface {
	Send(senderId, roomId string, req request.SendMessageRequest) (respond.MessageRespond, error)
	SendFromClient(senderId, roomId, content, typeName string) error
	Edit(callerId string, messageId int64, req request.EditMessageRequest) (respond.MessageRespond, error)
	Delete(callerId string, messageId int64) error
	Page(callerId, roomId string, req request.PageRequest) (respond.MessagePageRespond, error)
	Search(callerId string, req request.SearchRequest) (respond.MessagePageRespond, error)
}

// FriendService handles the friend graph.
type FriendService interface {
	SendRequest(callerId, email string) (respond.FriendRequestRespond, error)
	Accept(callerId, requestId string) error
	Reject(callerId, requestId string) error
	RemoveFriend(callerId, friendId string) error
	ListFriends(callerId string) ([]respond.UserRespond, error)
	ListRequests(callerId string) ([]respond.FriendRequestRespond, error)
	StatusBetween(callerId, otherId string) (respond.FriendStatusRespond, error)
}

// AttachmentService handles file uploads bound to messages.
type AttachmentService interface {
	Upload(ctx context.Context, callerId string, messageId int64, fileName, contentType string, size int64, r io.Reader) (respond.AttachmentRespond, error)
	Download(ctx context.Context, callerId, attachmentId string) (respond.AttachmentRespond, error)
	ListForMessage(callerId string, messageId int64) ([]respond.AttachmentRespond, error)
}

// AIService routes prompts to configured model providers.
type AIService interface {
	Ask(ctx context.Context, provider, model, prompt string) (string, error)
	Providers() []string
	Models(provider string) ([]string, error)
	TestConnection(ctx context.Context, provider string) error
}
