// Package friend implements the friend graph: requests, acceptance,
// rejection, removal and listings.
package friend

import (
	"sort"

	"github.com/google/uuid"

	"chitchat_server/internal/dao/mysql/repository"
	"chitchat_server/internal/dto/respond"
	"chitchat_server/internal/model"
	"chitchat_server/pkg/errorx"
)

type Service struct {
	repos repository.Repositories
}

func NewService(repos repository.Repositories) *Service {
	return &Service{repos: repos}
}

// SendRequest creates a pending edge from the caller to the user owning the
// email. Any existing row between the pair, in either direction and either
// status, is a conflict; mutual concurrent requests resolve to one winner.
func (s *Service) SendRequest(callerId, email string) (respond.FriendRequestRespond, error) {
	target, err := s.repos.Users().FindByEmail(email)
	if err != nil {
		return respond.FriendRequestRespond{}, err
	}
	if target.Uuid == callerId {
		return respond.FriendRequestRespond{}, errorx.New(errorx.CodeInvalidParam, "cannot send a friend request to yourself")
	}
	if !target.IsActive() {
		return respond.FriendRequestRespond{}, errorx.New(errorx.CodePrecondition, "user is not active")
	}

	edge := model.Contact{
		Uuid:     uuid.NewString(),
		UserId:   callerId,
		FriendId: target.Uuid,
		Status:   model.ContactStatusPending,
	}
	err = s.repos.Transaction(func(tx repository.Repositories) error {
		existing, err := tx.Contacts().FindBetween(callerId, target.Uuid)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return errorx.New(errorx.CodeConflict, "a request or friendship already exists")
		}
		return tx.Contacts().Create(&edge)
	})
	if err != nil {
		return respond.FriendRequestRespond{}, err
	}
	caller, err := s.repos.Users().FindByUuid(callerId)
	if err != nil {
		return respond.FriendRequestRespond{}, err
	}
	return respond.NewFriendRequestRespond(&edge, caller), nil
}

// Accept turns a pending request into a friendship. Only the recipient of a
// PENDING request may accept; accepting materializes the reciprocal edge so
// the friendship reads the same from both sides.
func (s *Service) Accept(callerId, requestId string) error {
	return s.repos.Transaction(func(tx repository.Repositories) error {
		req, err := tx.Contacts().FindByUuid(requestId)
		if err != nil {
			return err
		}
		if req.FriendId != callerId {
			return errorx.New(errorx.CodeUnauthorized, "only the recipient can accept a request")
		}
		if req.Status != model.ContactStatusPending {
			return errorx.New(errorx.CodeInvalidState, "request is not pending")
		}
		req.Status = model.ContactStatusAccepted
		if err := tx.Contacts().Update(req); err != nil {
			return err
		}
		reciprocal, err := tx.Contacts().FindPair(callerId, req.UserId)
		if err != nil {
			if !errorx.IsNotFound(err) {
				return err
			}
			return tx.Contacts().Create(&model.Contact{
				Uuid:     uuid.NewString(),
				UserId:   callerId,
				FriendId: req.UserId,
				Status:   model.ContactStatusAccepted,
			})
		}
		if reciprocal.Status != model.ContactStatusAccepted {
			reciprocal.Status = model.ContactStatusAccepted
			return tx.Contacts().Update(reciprocal)
		}
		return nil
	})
}

// Reject removes a pending request. Only the recipient may reject; the row is
// hard-deleted so a future request starts clean.
func (s *Service) Reject(callerId, requestId string) error {
	return s.repos.Transaction(func(tx repository.Repositories) error {
		req, err := tx.Contacts().FindByUuid(requestId)
		if err != nil {
			return err
		}
		if req.FriendId != callerId {
			return errorx.New(errorx.CodeUnauthorized, "only the recipient can reject a request")
		}
		if req.Status != model.ContactStatusPending {
			return errorx.New(errorx.CodeInvalidState, "request is not pending")
		}
		return tx.Contacts().DeletePair(req.UserId, req.FriendId)
	})
}

// RemoveFriend hard-deletes both edges between the caller and the friend.
// Removing a non-friend is a no-op.
func (s *Service) RemoveFriend(callerId, friendId string) error {
	return s.repos.Transaction(func(tx repository.Repositories) error {
		if err := tx.Contacts().DeletePair(callerId, friendId); err != nil {
			return err
		}
		return tx.Contacts().DeletePair(friendId, callerId)
	})
}

// ListFriends returns the caller's accepted friends, deduplicated across the
// two edge directions, active users only, ordered by display name.
func (s *Service) ListFriends(callerId string) ([]respond.UserRespond, error) {
	edges, err := s.repos.Contacts().FindAcceptedInvolving(callerId)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var friendIds []string
	for i := range edges {
		other := edges[i].FriendId
		if other == callerId {
			other = edges[i].UserId
		}
		if !seen[other] {
			seen[other] = true
			friendIds = append(friendIds, other)
		}
	}
	users, err := s.repos.Users().FindByUuids(friendIds)
	if err != nil {
		return nil, err
	}
	out := make([]respond.UserRespond, 0, len(users))
	for i := range users {
		if users[i].IsActive() {
			out = append(out, respond.NewUserRespond(&users[i]))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

// ListRequests returns the pending requests addressed to the caller, newest
// first, with sender profiles attached.
func (s *Service) ListRequests(callerId string) ([]respond.FriendRequestRespond, error) {
	pending, err := s.repos.Contacts().FindPendingTo(callerId)
	if err != nil {
		return nil, err
	}
	senderIds := make([]string, 0, len(pending))
	for i := range pending {
		senderIds = append(senderIds, pending[i].UserId)
	}
	users, err := s.repos.Users().FindByUuids(senderIds)
	if err != nil {
		return nil, err
	}
	byId := map[string]*model.User{}
	for i := range users {
		byId[users[i].Uuid] = &users[i]
	}
	out := make([]respond.FriendRequestRespond, 0, len(pending))
	for i := range pending {
		sender := byId[pending[i].UserId]
		if sender == nil {
			continue
		}
		out = append(out, respond.NewFriendRequestRespond(&pending[i], sender))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// StatusBetween reports the relation from the caller's point of view:
// FRIENDS, PENDING (caller sent), RECEIVED (caller must act) or NONE.
func (s *Service) StatusBetween(callerId, otherId string) (respond.FriendStatusRespond, error) {
	edges, err := s.repos.Contacts().FindBetween(callerId, otherId)
	if err != nil {
		return respond.FriendStatusRespond{}, err
	}
	status := respond.FriendStatusNone
	for i := range edges {
		e := &edges[i]
		if e.Status == model.ContactStatusAccepted {
			status = respond.FriendStatusFriends
			break
		}
		if e.UserId == callerId {
			status = respond.FriendStatusPending
		} else {
			status = respond.FriendStatusReceived
		}
	}
	return respond.FriendStatusRespond{Status: status}, nil
}
