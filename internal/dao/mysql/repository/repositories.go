package repository

import (
	"gorm.io/gorm"
)

// gormRepositories is the gorm-backed Repositories aggregate.
type gormRepositories struct {
	db          *gorm.DB
	user        UserRepository
	room        RoomRepository
	participant ParticipantRepository
	message     MessageRepository
	contact     ContactRepository
	attachment  AttachmentRepository
}

// NewRepositories builds the aggregate over a gorm DB handle. Passing a
// transaction handle yields an aggregate scoped to that transaction.
func NewRepositories(db *gorm.DB) Repositories {
	return &gormRepositories{
		db:          db,
		user:        NewUserRepository(db),
		room:        NewRoomRepository(db),
		participant: NewParticipantRepository(db),
		message:     NewMessageRepository(db),
		contact:     NewContactRepository(db),
		attachment:  NewAttachmentRepository(db),
	}
}

func (r *gormRepositories) Users() UserRepository               { return r.user }
func (r *gormRepositories) Rooms() RoomRepository               { return r.room }
func (r *gormRepositories) Participants() ParticipantRepository { return r.participant }
func (r *gormRepositories) Messages() MessageRepository         { return r.message }
func (r *gormRepositories) Contacts() ContactRepository         { return r.contact }
func (r *gormRepositories) Attachments() AttachmentRepository   { return r.attachment }

// Transaction runs fn inside one database transaction; all operations through
// the passed aggregate commit or roll back together.
func (r *gormRepositories) Transaction(fn func(tx Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
