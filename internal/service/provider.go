package service

import (
	"chitchat_server/internal/config"
	"chitchat_server/internal/dao/mysql/repository"
	"chitchat_server/internal/infrastructure/objectstore"
	"chitchat_server/internal/service/access"
	"chitchat_server/internal/service/ai"
	"chitchat_server/internal/service/attachment"
	"chitchat_server/internal/service/chat"
	"chitchat_server/internal/service/friend"
	"chitchat_server/internal/service/message"
	"chitchat_server/internal/service/room"
	"chitchat_server/internal/service/user"
)

// Services aggregates the business layer. Handlers depend on this struct and
// the interfaces above, never on the concrete packages.
type Services struct {
	User       UserService
	Room       RoomService
	Message    MessageService
	Friend     FriendService
	Attachment AttachmentService
	AI         AIService

	Access *access.Service
}

// NewServices builds the full business layer over the given repositories,
// event publisher and blob store.
func NewServices(repos repository.Repositories, events chat.Publisher, blobs objectstore.Store, aiCfg config.AIConfig, cacheEnabled bool) (*Services, error) {
	accessSvc := access.NewService(repos)
	registry, err := ai.NewRegistry(aiCfg)
	if err != nil {
		return nil, err
	}
	return &Services{
		User:       user.NewService(repos, cacheEnabled),
		Room:       room.NewService(repos, accessSvc, events),
		Message:    message.NewService(repos, accessSvc, events),
		Friend:     friend.NewService(repos),
		Attachment: attachment.NewService(repos, accessSvc, blobs),
		AI:         ai.NewService(registry),
		Access:     accessSvc,
	}, nil
}
