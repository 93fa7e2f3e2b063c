package model

import "gorm.io/gorm"

// MessageAttachment links uploaded file metadata to a message. The bytes live
// in the object store under ObjectKey; only metadata is persisted here.
type MessageAttachment struct {
	gorm.Model

	Uuid        string `gorm:"column:uuid;uniqueIndex;type:char(36);not null;comment:attachment id"`
	MessageUuid int64  `gorm:"column:message_uuid;index;type:bigint;not null;comment:owning message id"`
	FileName    string `gorm:"column:file_name;type:varchar(255);not null;comment:original file name"`
	FileType    string `gorm:"column:file_type;type:varchar(100);comment:mime type"`
	FileSize    int64  `gorm:"column:file_size;comment:size in bytes"`
	ObjectKey   string `gorm:"column:object_key;type:varchar(255);not null;comment:object store key"`
}

func (MessageAttachment) TableName() string {
	return "message_attachment"
}
