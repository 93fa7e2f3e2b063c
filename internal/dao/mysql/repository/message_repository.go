package repository

import (
	"strings"

	"chitchat_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates the gorm-backed MessageRepository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(m *model.Message) error {
	if err := r.db.Create(m).Error; err != nil {
		return wrapDBError(err, "create message")
	}
	return nil
}

func (r *messageRepository) FindByUuid(uuid int64) (*model.Message, error) {
	var m model.Message
	if err := r.db.Where("uuid = ?", uuid).First(&m).Error; err != nil {
		return nil, wrapDBErrorf(err, "find message uuid=%d", uuid)
	}
	return &m, nil
}

func (r *messageRepository) PageByRoom(roomUuid string, page, size int) ([]model.Message, error) {
	var ms []model.Message
	if err := r.db.Where("room_uuid = ? AND status = ?", roomUuid, model.MessageStatusActive).
		Order("sent_at DESC, uuid DESC").
		Offset(page * size).Limit(size).
		Find(&ms).Error; err != nil {
		return nil, wrapDBErrorf(err, "page messages room=%s", roomUuid)
	}
	return ms, nil
}

// SearchInRooms does a case-insensitive substring match on content, scoped to
// the given rooms (the caller restricts these to rooms the user is in).
func (r *messageRepository) SearchInRooms(roomUuids []string, query string, page, size int) ([]model.Message, error) {
	if len(roomUuids) == 0 {
		return []model.Message{}, nil
	}
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	var ms []model.Message
	if err := r.db.Where("room_uuid IN ? AND status = ? AND LOWER(content) LIKE ?",
		roomUuids, model.MessageStatusActive, pattern).
		Order("sent_at DESC, uuid DESC").
		Offset(page * size).Limit(size).
		Find(&ms).Error; err != nil {
		return nil, wrapDBError(err, "search messages")
	}
	return ms, nil
}

func (r *messageRepository) Update(m *model.Message) error {
	if err := r.db.Save(m).Error; err != nil {
		return wrapDBErrorf(err, "update message uuid=%d", m.Uuid)
	}
	return nil
}
