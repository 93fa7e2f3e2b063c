// Package access centralizes the authorization predicates shared by the room,
// message and websocket surfaces.
package access

import (
	"chitchat_server/internal/dao/mysql/repository"
	"chitchat_server/internal/model"
	"chitchat_server/pkg/errorx"
)

type Service struct {
	repos repository.Repositories
}

func NewService(repos repository.Repositories) *Service {
	return &Service{repos: repos}
}

// WithRepos returns a Service bound to the given repositories, so callers
// already inside a transaction can evaluate predicates on the same
// connection instead of acquiring a second one.
func (s *Service) WithRepos(repos repository.Repositories) *Service {
	return &Service{repos: repos}
}

// CanAccessRoom reports whether the user is an active participant of an
// active room. Both the room and the membership must be live.
func (s *Service) CanAccessRoom(userId, roomId string) (bool, error) {
	room, err := s.repos.Rooms().FindByUuid(roomId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if !room.IsActive() {
		return false, nil
	}
	p, err := s.repos.Participants().FindActive(roomId, userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return p != nil, nil
}

// CanModerate reports whether the user may manage the room's roster: an
// active admin participant, and nobody else. The creator gets an admin
// membership at creation time and holds no standing beyond it; direct rooms
// never have admins, so they have no moderators.
func (s *Service) CanModerate(userId, roomId string) (bool, error) {
	if _, err := s.repos.Rooms().FindByUuid(roomId); err != nil {
		if errorx.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	p, err := s.repos.Participants().FindActive(roomId, userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return p.IsAdmin(), nil
}

// CanMutateMessage reports whether the user may edit or delete the message.
// Edits are sender-only; deletes also allow room moderators.
func (s *Service) CanMutateMessage(userId string, m *model.Message, delete bool) (bool, error) {
	if m.SenderId == userId {
		return true, nil
	}
	if !delete {
		return false, nil
	}
	return s.CanModerate(userId, m.RoomUuid)
}
