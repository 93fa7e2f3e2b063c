// Package repository defines the data-access boundary. Interfaces live here;
// the gorm implementations sit alongside, and tests substitute the in-memory
// implementation from internal/dao/memory.
package repository

import (
	"chitchat_server/internal/model"
)

// UserRepository persists identity records.
type UserRepository interface {
	Create(user *model.User) error
	FindByUuid(uuid string) (*model.User, error)
	FindByUuids(uuids []string) ([]model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	Update(user *model.User) error
}

// RoomRepository persists rooms. FindActiveDirectRoom resolves the unique
// active direct room for an unordered user pair, if any.
type RoomRepository interface {
	Create(room *model.Room) error
	FindByUuid(uuid string) (*model.Room, error)
	FindByUuids(uuids []string) ([]model.Room, error)
	FindActiveDirectRoom(userA, userB string) (*model.Room, error)
	Update(room *model.Room) error
}

// ParticipantRepository persists room memberships.
type ParticipantRepository interface {
	Create(p *model.Participant) error
	FindActive(roomUuid, userUuid string) (*model.Participant, error)
	FindActiveByRoom(roomUuid string) ([]model.Participant, error)
	FindActiveByUser(userUuid string) ([]model.Participant, error)
	CountActiveByRoom(roomUuid string) (int64, error)
	Deactivate(roomUuid, userUuid string) error
}

// MessageRepository persists messages. Paging and search return active rows
// ordered by sent_at descending, uuid descending as tiebreak.
type MessageRepository interface {
	Create(m *model.Message) error
	FindByUuid(uuid int64) (*model.Message, error)
	PageByRoom(roomUuid string, page, size int) ([]model.Message, error)
	SearchInRooms(roomUuids []string, query string, page, size int) ([]model.Message, error)
	Update(m *model.Message) error
}

// ContactRepository persists directed friend-graph edges. DeletePair is a
// hard delete and a no-op when the row is absent.
type ContactRepository interface {
	Create(c *model.Contact) error
	FindByUuid(uuid string) (*model.Contact, error)
	FindPair(userId, friendId string) (*model.Contact, error)
	FindBetween(a, b string) ([]model.Contact, error)
	FindAcceptedInvolving(userId string) ([]model.Contact, error)
	FindPendingTo(userId string) ([]model.Contact, error)
	Update(c *model.Contact) error
	DeletePair(userId, friendId string) error
}

// AttachmentRepository persists attachment metadata rows.
type AttachmentRepository interface {
	Create(a *model.MessageAttachment) error
	FindByUuid(uuid string) (*model.MessageAttachment, error)
	FindByMessage(messageUuid int64) ([]model.MessageAttachment, error)
}

// Repositories aggregates the per-entity repositories and scopes them to a
// transaction on demand. Every mutating service operation runs inside one
// Transaction call; the fn receives repositories bound to that transaction.
type Repositories interface {
	Users() UserRepository
	Rooms() RoomRepository
	Participants() ParticipantRepository
	Messages() MessageRepository
	Contacts() ContactRepository
	Attachments() AttachmentRepository
	Transaction(fn func(tx Repositories) error) error
}
