// Package room implements room lifecycle and roster management.
package room

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chitchat_server/internal/dao/mysql/repository"
	"chitchat_server/internal/dto/request"
	"chitchat_server/internal/dto/respond"
	"chitchat_server/internal/model"
	"chitchat_server/internal/service/access"
	"chitchat_server/internal/service/chat"
	"chitchat_server/pkg/constants"
	"chitchat_server/pkg/errorx"
)

type Service struct {
	repos  repository.Repositories
	access *access.Service
	events chat.Publisher
}

func NewService(repos repository.Repositories, access *access.Service, events chat.Publisher) *Service {
	return &Service{repos: repos, access: access, events: events}
}

// CreateRoom creates a room with the caller as admin. ParticipantIds are
// deduplicated; the caller is always a participant regardless of the list.
// Every listed participant must resolve to an active user.
func (s *Service) CreateRoom(creatorId string, req request.CreateRoomRequest) (respond.RoomRespond, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len([]rune(name)) > constants.ROOM_NAME_MAX_LEN {
		return respond.RoomRespond{}, errorx.New(errorx.CodeInvalidParam, "room name must be 1-100 characters")
	}

	memberIds := dedupe(req.ParticipantIds, creatorId)
	users, err := s.repos.Users().FindByUuids(memberIds)
	if err != nil {
		return respond.RoomRespond{}, err
	}
	active := map[string]bool{}
	for i := range users {
		if users[i].IsActive() {
			active[users[i].Uuid] = true
		}
	}
	for _, id := range memberIds {
		if !active[id] {
			return respond.RoomRespond{}, errorx.Newf(errorx.CodeNotFound, "participant %s not found", id)
		}
	}

	room := model.Room{
		Uuid:        uuid.NewString(),
		Name:        name,
		IsGroup:     req.IsGroup,
		CreatorId:   creatorId,
		Description: req.Description,
		Status:      model.RoomStatusActive,
	}
	err = s.repos.Transaction(func(tx repository.Repositories) error {
		if err := tx.Rooms().Create(&room); err != nil {
			return err
		}
		if err := tx.Participants().Create(&model.Participant{
			RoomUuid: room.Uuid,
			UserUuid: creatorId,
			Role:     model.RoleAdmin,
			Status:   model.ParticipantStatusActive,
		}); err != nil {
			return err
		}
		for _, id := range memberIds {
			if err := tx.Participants().Create(&model.Participant{
				RoomUuid: room.Uuid,
				UserUuid: id,
				Role:     model.RoleMember,
				Status:   model.ParticipantStatusActive,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return respond.RoomRespond{}, err
	}

	s.publishJoin(room.Uuid, creatorId)
	for _, id := range memberIds {
		s.publishJoin(room.Uuid, id)
	}
	return respond.NewRoomRespond(&room, int64(len(memberIds)+1)), nil
}

// FindOrCreateDirectRoom returns the active direct room between the caller
// and the other user, creating it when absent. The unique direct-key index
// makes two concurrent calls converge on one room: the loser's insert fails
// with a conflict and it adopts the winner's row.
func (s *Service) FindOrCreateDirectRoom(callerId, otherId string) (respond.RoomRespond, error) {
	if otherId == callerId {
		return respond.RoomRespond{}, errorx.New(errorx.CodeInvalidParam, "cannot open a direct room with yourself")
	}
	other, err := s.repos.Users().FindByUuid(otherId)
	if err != nil {
		return respond.RoomRespond{}, err
	}
	if !other.IsActive() {
		return respond.RoomRespond{}, errorx.New(errorx.CodePrecondition, "user is not active")
	}

	var room *model.Room
	created := false
	err = s.repos.Transaction(func(tx repository.Repositories) error {
		existing, err := tx.Rooms().FindActiveDirectRoom(callerId, otherId)
		if err != nil {
			return err
		}
		if existing != nil {
			room = existing
			return nil
		}
		key := directRoomName(callerId, otherId)
		room = &model.Room{
			Uuid:      uuid.NewString(),
			Name:      key,
			IsGroup:   false,
			DirectKey: sql.NullString{String: key, Valid: true},
			CreatorId: callerId,
			Status:    model.RoomStatusActive,
		}
		if err := tx.Rooms().Create(room); err != nil {
			return err
		}
		for _, id := range []string{callerId, otherId} {
			if err := tx.Participants().Create(&model.Participant{
				RoomUuid: room.Uuid,
				UserUuid: id,
				Role:     model.RoleMember,
				Status:   model.ParticipantStatusActive,
			}); err != nil {
				return err
			}
		}
		created = true
		return nil
	})
	if err != nil && errorx.IsCode(err, errorx.CodeConflict) {
		// Lost the insert race on the direct-key index. The winner has
		// committed, so a fresh lookup outside our snapshot finds its room.
		room, err = s.repos.Rooms().FindActiveDirectRoom(callerId, otherId)
		created = false
	}
	if err != nil {
		return respond.RoomRespond{}, err
	}
	if room == nil {
		return respond.RoomRespond{}, errorx.New(errorx.CodeConflict, "direct room already being created")
	}
	if created {
		s.publishJoin(room.Uuid, callerId)
		s.publishJoin(room.Uuid, otherId)
	}
	count, err := s.repos.Participants().CountActiveByRoom(room.Uuid)
	if err != nil {
		return respond.RoomRespond{}, err
	}
	return respond.NewRoomRespond(room, count), nil
}

// AddParticipant adds a user to a group room. The caller must be a moderator;
// adding an already-active member is a conflict.
func (s *Service) AddParticipant(callerId, roomId, userId string) error {
	room, err := s.repos.Rooms().FindByUuid(roomId)
	if err != nil {
		return err
	}
	if !room.IsGroup {
		return errorx.New(errorx.CodeInvalidState, "direct rooms have a fixed roster")
	}
	ok, err := s.access.CanModerate(callerId, roomId)
	if err != nil {
		return err
	}
	if !ok {
		return errorx.New(errorx.CodeUnauthorized, "only room moderators can add participants")
	}
	user, err := s.repos.Users().FindByUuid(userId)
	if err != nil {
		return err
	}
	if !user.IsActive() {
		return errorx.New(errorx.CodePrecondition, "user is not active")
	}

	err = s.repos.Transaction(func(tx repository.Repositories) error {
		existing, err := tx.Participants().FindActive(roomId, userId)
		if err != nil && !errorx.IsNotFound(err) {
			return err
		}
		if existing != nil {
			return errorx.New(errorx.CodeConflict, "user is already a participant")
		}
		return tx.Participants().Create(&model.Participant{
			RoomUuid: roomId,
			UserUuid: userId,
			Role:     model.RoleMember,
			Status:   model.ParticipantStatusActive,
		})
	})
	if err != nil {
		return err
	}
	s.publishJoin(roomId, userId)
	return nil
}

// RemoveParticipant removes a user from a group room. Moderators can remove
// anyone; a plain member can only remove themselves (leave).
func (s *Service) RemoveParticipant(callerId, roomId, userId string) error {
	room, err := s.repos.Rooms().FindByUuid(roomId)
	if err != nil {
		return err
	}
	if !room.IsGroup {
		return errorx.New(errorx.CodeInvalidState, "direct rooms have a fixed roster")
	}
	if callerId != userId {
		ok, err := s.access.CanModerate(callerId, roomId)
		if err != nil {
			return err
		}
		if !ok {
			return errorx.New(errorx.CodeUnauthorized, "only room moderators can remove participants")
		}
	}
	if _, err := s.repos.Participants().FindActive(roomId, userId); err != nil {
		return err
	}
	if err := s.repos.Participants().Deactivate(roomId, userId); err != nil {
		return err
	}
	s.publishLeave(roomId, userId)
	return nil
}

// RoomsForUser lists the active rooms the user participates in, with
// participant counts.
func (s *Service) RoomsForUser(userId string) ([]respond.RoomRespond, error) {
	memberships, err := s.repos.Participants().FindActiveByUser(userId)
	if err != nil {
		return nil, err
	}
	roomIds := make([]string, 0, len(memberships))
	for i := range memberships {
		roomIds = append(roomIds, memberships[i].RoomUuid)
	}
	rooms, err := s.repos.Rooms().FindByUuids(roomIds)
	if err != nil {
		return nil, err
	}
	out := make([]respond.RoomRespond, 0, len(rooms))
	for i := range rooms {
		if !rooms[i].IsActive() {
			continue
		}
		count, err := s.repos.Participants().CountActiveByRoom(rooms[i].Uuid)
		if err != nil {
			return nil, err
		}
		out = append(out, respond.NewRoomRespond(&rooms[i], count))
	}
	return out, nil
}

// RoomDetails returns one room with its full participant list. The caller
// must be a participant.
func (s *Service) RoomDetails(callerId, roomId string) (respond.RoomRespond, error) {
	ok, err := s.access.CanAccessRoom(callerId, roomId)
	if err != nil {
		return respond.RoomRespond{}, err
	}
	if !ok {
		return respond.RoomRespond{}, errorx.New(errorx.CodeUnauthorized, "not a participant of this room")
	}
	room, err := s.repos.Rooms().FindByUuid(roomId)
	if err != nil {
		return respond.RoomRespond{}, err
	}
	members, err := s.repos.Participants().FindActiveByRoom(roomId)
	if err != nil {
		return respond.RoomRespond{}, err
	}
	userIds := make([]string, 0, len(members))
	for i := range members {
		userIds = append(userIds, members[i].UserUuid)
	}
	users, err := s.repos.Users().FindByUuids(userIds)
	if err != nil {
		return respond.RoomRespond{}, err
	}
	rsp := respond.NewRoomRespond(room, int64(len(members)))
	for i := range users {
		rsp.Participants = append(rsp.Participants, respond.NewUserRespond(&users[i]))
	}
	return rsp, nil
}

func (s *Service) publishJoin(roomId, userId string) {
	if err := s.events.Publish(chat.NewEvent(chat.EventUserJoined, roomId, chat.RoomUserData{UserId: userId})); err != nil {
		zap.L().Warn("publish USER_JOINED failed", zap.String("room", roomId), zap.Error(err))
	}
}

func (s *Service) publishLeave(roomId, userId string) {
	if err := s.events.Publish(chat.NewEvent(chat.EventUserLeft, roomId, chat.RoomUserData{UserId: userId})); err != nil {
		zap.L().Warn("publish USER_LEFT failed", zap.String("room", roomId), zap.Error(err))
	}
}

// dedupe returns ids with duplicates and the excluded id removed, order kept.
func dedupe(ids []string, exclude string) []string {
	seen := map[string]bool{exclude: true}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// directRoomName builds the canonical sorted pair key, used both as the
// room's display name and as its unique direct key.
func directRoomName(a, b string) string {
	if a < b {
		return a + ":" + b
	}
	return b + ":" + a
}
