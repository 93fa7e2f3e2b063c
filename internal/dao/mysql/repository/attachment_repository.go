package repository

import (
	"chitchat_server/internal/model"

	"gorm.io/gorm"
)

type attachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates the gorm-backed AttachmentRepository.
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(a *model.MessageAttachment) error {
	if err := r.db.Create(a).Error; err != nil {
		return wrapDBError(err, "create attachment")
	}
	return nil
}

func (r *attachmentRepository) FindByUuid(uuid string) (*model.MessageAttachment, error) {
	var a model.MessageAttachment
	if err := r.db.Where("uuid = ?", uuid).First(&a).Error; err != nil {
		return nil, wrapDBErrorf(err, "find attachment uuid=%s", uuid)
	}
	return &a, nil
}

func (r *attachmentRepository) FindByMessage(messageUuid int64) ([]model.MessageAttachment, error) {
	var as []model.MessageAttachment
	if err := r.db.Where("message_uuid = ?", messageUuid).Find(&as).Error; err != nil {
		return nil, wrapDBErrorf(err, "find attachments message=%d", messageUuid)
	}
	return as, nil
}
