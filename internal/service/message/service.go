// Package message implements sending, editing, deleting, paging and searching
// of room messages.
package message

import (
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"chitchat_server/internal/dao/mysql/repository"
	"chitchat_server/internal/dto/request"
	"chitchat_server/internal/dto/respond"
	"chitchat_server/internal/model"
	"chitchat_server/internal/service/access"
	"chitchat_server/internal/service/chat"
	"chitchat_server/pkg/constants"
	"chitchat_server/pkg/errorx"
	"chitchat_server/pkg/util/snowflake"
)

type Service struct {
	repos  repository.Repositories
	access *access.Service
	events chat.Publisher

	// now is swappable in tests to step the clock across the edit window.
	now func() time.Time
}

func NewService(repos repository.Repositories, access *access.Service, events chat.Publisher) *Service {
	return &Service{repos: repos, access: access, events: events, now: time.Now}
}

// Send appends a message to a room the sender participates in and publishes
// the MESSAGE_SENT event after the row is committed.
func (s *Service) Send(senderId, roomId string, req request.SendMessageRequest) (respond.MessageRespond, error) {
	content := req.Content
	if l := len([]rune(content)); l == 0 || l > constants.MESSAGE_MAX_LEN {
		return respond.MessageRespond{}, errorx.New(errorx.CodeInvalidParam, "message content must be 1-1000 characters")
	}
	msgType := model.MessageTypeText
	if req.Type != "" {
		t, ok := model.MessageTypeFromName(req.Type)
		if !ok {
			return respond.MessageRespond{}, errorx.Newf(errorx.CodeInvalidParam, "unknown message type %q", req.Type)
		}
		msgType = t
	}

	ok, err := s.access.CanAccessRoom(senderId, roomId)
	if err != nil {
		return respond.MessageRespond{}, err
	}
	if !ok {
		return respond.MessageRespond{}, errorx.New(errorx.CodeUnauthorized, "not a participant of this room")
	}
	sender, err := s.repos.Users().FindByUuid(senderId)
	if err != nil {
		return respond.MessageRespond{}, err
	}
	senderName := sender.DisplayName
	if senderName == "" {
		senderName = sender.Username
	}

	msg := model.Message{
		Uuid:         snowflake.GenerateID(),
		RoomUuid:     roomId,
		SenderId:     senderId,
		SenderName:   senderName,
		SenderAvatar: sender.Avatar,
		Content:      content,
		Type:         msgType,
		SentAt:       s.now(),
		Status:       model.MessageStatusActive,
	}
	if err := s.repos.Messages().Create(&msg); err != nil {
		return respond.MessageRespond{}, err
	}

	rsp := respond.NewMessageRespond(&msg)
	if err := s.events.Publish(chat.NewEvent(chat.EventMessageSent, roomId, chat.MessageSentData{
		MessageId:  rsp.Uuid,
		SenderId:   senderId,
		SenderName: msg.SenderName,
		Content:    msg.Content,
		Type:       rsp.Type,
	})); err != nil {
		zap.L().Warn("publish MESSAGE_SENT failed", zap.String("room", roomId), zap.Error(err))
	}
	return rsp, nil
}

// SendFromClient adapts websocket frames to Send.
func (s *Service) SendFromClient(senderId, roomId, content, typeName string) error {
	_, err := s.Send(senderId, roomId, request.SendMessageRequest{Content: content, Type: typeName})
	return err
}

// Edit replaces the content of a message. Only the sender may edit, only
// while the message is active, and only within 24 hours of sending.
func (s *Service) Edit(callerId string, messageId int64, req request.EditMessageRequest) (respond.MessageRespond, error) {
	content := req.Content
	if l := len([]rune(content)); l == 0 || l > constants.MESSAGE_MAX_LEN {
		return respond.MessageRespond{}, errorx.New(errorx.CodeInvalidParam, "message content must be 1-1000 characters")
	}

	var edited model.Message
	err := s.repos.Transaction(func(tx repository.Repositories) error {
		msg, err := tx.Messages().FindByUuid(messageId)
		if err != nil {
			return err
		}
		if !msg.IsActive() {
			return errorx.New(errorx.CodeNotFound, "message not found")
		}
		if msg.SenderId != callerId {
			return errorx.New(errorx.CodeUnauthorized, "only the sender can edit a message")
		}
		if s.now().Sub(msg.SentAt) >= constants.EDIT_WINDOW {
			return errorx.New(errorx.CodeEditWindowExpired, "messages can only be edited within 24 hours")
		}
		msg.Content = content
		msg.EditedAt = sql.NullTime{Time: s.now(), Valid: true}
		if err := tx.Messages().Update(msg); err != nil {
			return err
		}
		edited = *msg
		return nil
	})
	if err != nil {
		return respond.MessageRespond{}, err
	}
	return respond.NewMessageRespond(&edited), nil
}

// Delete soft-deletes a message. The sender or a room moderator may delete;
// deleting an already-deleted message is a no-op.
func (s *Service) Delete(callerId string, messageId int64) error {
	return s.repos.Transaction(func(tx repository.Repositories) error {
		msg, err := tx.Messages().FindByUuid(messageId)
		if err != nil {
			return err
		}
		if !msg.IsActive() {
			return nil
		}
		ok, err := s.access.WithRepos(tx).CanMutateMessage(callerId, msg, true)
		if err != nil {
			return err
		}
		if !ok {
			return errorx.New(errorx.CodeUnauthorized, "not allowed to delete this message")
		}
		msg.Status = model.MessageStatusDeleted
		return tx.Messages().Update(msg)
	})
}

// Page returns one page of a room's active messages, newest first.
func (s *Service) Page(callerId, roomId string, req request.PageRequest) (respond.MessagePageRespond, error) {
	ok, err := s.access.CanAccessRoom(callerId, roomId)
	if err != nil {
		return respond.MessagePageRespond{}, err
	}
	if !ok {
		return respond.MessagePageRespond{}, errorx.New(errorx.CodeUnauthorized, "not a participant of this room")
	}
	page, size := clampPaging(req.Page, req.Size)
	msgs, err := s.repos.Messages().PageByRoom(roomId, page, size)
	if err != nil {
		return respond.MessagePageRespond{}, err
	}
	return buildPage(msgs, page, size), nil
}

// Search finds active messages containing the query, case-insensitively.
// With a room id the search is scoped to that room (caller must participate);
// without one it spans every room the caller participates in.
func (s *Service) Search(callerId string, req request.SearchRequest) (respond.MessagePageRespond, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return respond.MessagePageRespond{}, errorx.New(errorx.CodeInvalidParam, "search query must not be empty")
	}
	var roomIds []string
	if req.RoomId != "" {
		ok, err := s.access.CanAccessRoom(callerId, req.RoomId)
		if err != nil {
			return respond.MessagePageRespond{}, err
		}
		if !ok {
			return respond.MessagePageRespond{}, errorx.New(errorx.CodeUnauthorized, "not a participant of this room")
		}
		roomIds = []string{req.RoomId}
	} else {
		memberships, err := s.repos.Participants().FindActiveByUser(callerId)
		if err != nil {
			return respond.MessagePageRespond{}, err
		}
		for i := range memberships {
			roomIds = append(roomIds, memberships[i].RoomUuid)
		}
	}
	page, size := clampPaging(req.Page, req.Size)
	if len(roomIds) == 0 {
		return respond.MessagePageRespond{Messages: []respond.MessageRespond{}, Page: page, Size: size}, nil
	}
	msgs, err := s.repos.Messages().SearchInRooms(roomIds, query, page, size)
	if err != nil {
		return respond.MessagePageRespond{}, err
	}
	return buildPage(msgs, page, size), nil
}

func clampPaging(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = constants.DEFAULT_PAGE_SIZE
	}
	if size > constants.MAX_PAGE_SIZE {
		size = constants.MAX_PAGE_SIZE
	}
	return page, size
}

func buildPage(msgs []model.Message, page, size int) respond.MessagePageRespond {
	out := respond.MessagePageRespond{
		Messages: make([]respond.MessageRespond, 0, len(msgs)),
		Page:     page,
		Size:     size,
	}
	for i := range msgs {
		out.Messages = append(out.Messages, respond.NewMessageRespond(&msgs[i]))
	}
	return out
}
