package repository

import (
	"chitchat_server/internal/model"

	"gorm.io/gorm"
)

type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates the gorm-backed ParticipantRepository.
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Create(p *model.Participant) error {
	if err := r.db.Create(p).Error; err != nil {
		return wrapDBError(err, "create participant")
	}
	return nil
}

func (r *participantRepository) FindActive(roomUuid, userUuid string) (*model.Participant, error) {
	var p model.Participant
	if err := r.db.Where("room_uuid = ? AND user_uuid = ? AND status = ?",
		roomUuid, userUuid, model.ParticipantStatusActive).First(&p).Error; err != nil {
		return nil, wrapDBErrorf(err, "find participant room=%s user=%s", roomUuid, userUuid)
	}
	return &p, nil
}

func (r *participantRepository) FindActiveByRoom(roomUuid string) ([]model.Participant, error) {
	var ps []model.Participant
	if err := r.db.Where("room_uuid = ? AND status = ?",
		roomUuid, model.ParticipantStatusActive).Find(&ps).Error; err != nil {
		return nil, wrapDBErrorf(err, "find participants room=%s", roomUuid)
	}
	return ps, nil
}

func (r *participantRepository) FindActiveByUser(userUuid string) ([]model.Participant, error) {
	var ps []model.Participant
	if err := r.db.Where("user_uuid = ? AND status = ?",
		userUuid, model.ParticipantStatusActive).Find(&ps).Error; err != nil {
		return nil, wrapDBErrorf(err, "find participants user=%s", userUuid)
	}
	return ps, nil
}

func (r *participantRepository) CountActiveByRoom(roomUuid string) (int64, error) {
	var n int64
	if err := r.db.Model(&model.Participant{}).Where("room_uuid = ? AND status = ?",
		roomUuid, model.ParticipantStatusActive).Count(&n).Error; err != nil {
		return 0, wrapDBErrorf(err, "count participants room=%s", roomUuid)
	}
	return n, nil
}

func (r *participantRepository) Deactivate(roomUuid, userUuid string) error {
	if err := r.db.Model(&model.Participant{}).
		Where("room_uuid = ? AND user_uuid = ? AND status = ?",
			roomUuid, userUuid, model.ParticipantStatusActive).
		Update("status", model.ParticipantStatusRemoved).Error; err != nil {
		return wrapDBErrorf(err, "deactivate participant room=%s user=%s", roomUuid, userUuid)
	}
	return nil
}
