package repository

import (
	"chitchat_server/internal/model"

	"gorm.io/gorm"
)

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates the gorm-backed ContactRepository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(c *model.Contact) error {
	if err := r.db.Create(c).Error; err != nil {
		return wrapDBError(err, "create contact edge")
	}
	return nil
}

func (r *contactRepository) FindByUuid(uuid string) (*model.Contact, error) {
	var c model.Contact
	if err := r.db.Where("uuid = ?", uuid).First(&c).Error; err != nil {
		return nil, wrapDBErrorf(err, "find contact uuid=%s", uuid)
	}
	return &c, nil
}

func (r *contactRepository) FindPair(userId, friendId string) (*model.Contact, error) {
	var c model.Contact
	if err := r.db.Where("user_id = ? AND friend_id = ?", userId, friendId).First(&c).Error; err != nil {
		return nil, wrapDBErrorf(err, "find contact %s->%s", userId, friendId)
	}
	return &c, nil
}

func (r *contactRepository) FindBetween(a, b string) ([]model.Contact, error) {
	var cs []model.Contact
	if err := r.db.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		a, b, b, a).Find(&cs).Error; err != nil {
		return nil, wrapDBErrorf(err, "find contacts between %s and %s", a, b)
	}
	return cs, nil
}

func (r *contactRepository) FindAcceptedInvolving(userId string) ([]model.Contact, error) {
	var cs []model.Contact
	if err := r.db.Where("(user_id = ? OR friend_id = ?) AND status = ?",
		userId, userId, model.ContactStatusAccepted).Find(&cs).Error; err != nil {
		return nil, wrapDBErrorf(err, "find accepted contacts user=%s", userId)
	}
	return cs, nil
}

func (r *contactRepository) FindPendingTo(userId string) ([]model.Contact, error) {
	var cs []model.Contact
	if err := r.db.Where("friend_id = ? AND status = ?",
		userId, model.ContactStatusPending).Find(&cs).Error; err != nil {
		return nil, wrapDBErrorf(err, "find pending contacts to user=%s", userId)
	}
	return cs, nil
}

func (r *contactRepository) Update(c *model.Contact) error {
	if err := r.db.Save(c).Error; err != nil {
		return wrapDBErrorf(err, "update contact uuid=%s", c.Uuid)
	}
	return nil
}

// DeletePair removes one directed edge for good. Rejected/removed
// relationships carry no audit requirement, so this bypasses gorm's soft
// delete. Absent rows are a no-op.
func (r *contactRepository) DeletePair(userId, friendId string) error {
	if err := r.db.Unscoped().Where("user_id = ? AND friend_id = ?", userId, friendId).
		Delete(&model.Contact{}).Error; err != nil {
		return wrapDBErrorf(err, "delete contact %s->%s", userId, friendId)
	}
	return nil
}
