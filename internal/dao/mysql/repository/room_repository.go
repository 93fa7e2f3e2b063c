package repository

import (
	"errors"

	"chitchat_server/internal/model"

	"gorm.io/gorm"
)

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates the gorm-backed RoomRepository.
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(room *model.Room) error {
	if err := r.db.Create(room).Error; err != nil {
		return wrapDBError(err, "create room")
	}
	return nil
}

func (r *roomRepository) FindByUuid(uuid string) (*model.Room, error) {
	var room model.Room
	if err := r.db.Where("uuid = ?", uuid).First(&room).Error; err != nil {
		return nil, wrapDBErrorf(err, "find room uuid=%s", uuid)
	}
	return &room, nil
}

func (r *roomRepository) FindByUuids(uuids []string) ([]model.Room, error) {
	if len(uuids) == 0 {
		return []model.Room{}, nil
	}
	var rooms []model.Room
	if err := r.db.Where("uuid IN ?", uuids).Find(&rooms).Error; err != nil {
		return nil, wrapDBError(err, "find rooms by uuids")
	}
	return rooms, nil
}

// FindActiveDirectRoom joins the participant table twice to locate the active
// direct room holding exactly this pair. Returns (nil, nil) when none exists.
func (r *roomRepository) FindActiveDirectRoom(userA, userB string) (*model.Room, error) {
	var room model.Room
	err := r.db.
		Joins("JOIN participant pa ON pa.room_uuid = room.uuid AND pa.user_uuid = ? AND pa.status = ? AND pa.deleted_at IS NULL",
			userA, model.ParticipantStatusActive).
		Joins("JOIN participant pb ON pb.room_uuid = room.uuid AND pb.user_uuid = ? AND pb.status = ? AND pb.deleted_at IS NULL",
			userB, model.ParticipantStatusActive).
		Where("room.is_group = ? AND room.status = ?", false, model.RoomStatusActive).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapDBErrorf(err, "find direct room %s/%s", userA, userB)
	}
	return &room, nil
}

func (r *roomRepository) Update(room *model.Room) error {
	if err := r.db.Save(room).Error; err != nil {
		return wrapDBErrorf(err, "update room uuid=%s", room.Uuid)
	}
	return nil
}
