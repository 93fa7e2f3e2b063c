// Package attachment binds uploaded files to messages and hands out
// time-limited download links.
package attachment

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"chitchat_server/internal/dao/mysql/repository"
	"chitchat_server/internal/dto/respond"
	"chitchat_server/internal/infrastructure/objectstore"
	"chitchat_server/internal/model"
	"chitchat_server/internal/service/access"
	"chitchat_server/pkg/constants"
	"chitchat_server/pkg/errorx"
)

const downloadLinkExpiry = 15 * time.Minute

type Service struct {
	repos  repository.Repositories
	access *access.Service
	blobs  objectstore.Store
}

func NewService(repos repository.Repositories, access *access.Service, blobs objectstore.Store) *Service {
	return &Service{repos: repos, access: access, blobs: blobs}
}

// Upload stores a file and binds it to a message the caller sent.
func (s *Service) Upload(ctx context.Context, callerId string, messageId int64, fileName, contentType string, size int64, r io.Reader) (respond.AttachmentRespond, error) {
	if fileName == "" {
		return respond.AttachmentRespond{}, errorx.New(errorx.CodeInvalidParam, "file name required")
	}
	if size <= 0 || size > constants.FILE_MAX_SIZE {
		return respond.AttachmentRespond{}, errorx.New(errorx.CodeInvalidParam, "file size out of range")
	}
	msg, err := s.repos.Messages().FindByUuid(messageId)
	if err != nil {
		return respond.AttachmentRespond{}, err
	}
	if !msg.IsActive() {
		return respond.AttachmentRespond{}, errorx.New(errorx.CodeNotFound, "message not found")
	}
	if msg.SenderId != callerId {
		return respond.AttachmentRespond{}, errorx.New(errorx.CodeUnauthorized, "only the sender can attach files")
	}

	id := uuid.NewString()
	objectKey := id + "/" + fileName
	if err := s.blobs.Put(ctx, objectKey, r, size, contentType); err != nil {
		return respond.AttachmentRespond{}, err
	}
	row := model.MessageAttachment{
		Uuid:        id,
		MessageUuid: messageId,
		FileName:    fileName,
		FileType:    contentType,
		FileSize:    size,
		ObjectKey:   objectKey,
	}
	if err := s.repos.Attachments().Create(&row); err != nil {
		// Best effort: the blob is orphaned otherwise.
		_ = s.blobs.Remove(ctx, objectKey)
		return respond.AttachmentRespond{}, err
	}
	return respond.NewAttachmentRespond(&row), nil
}

// Download returns the attachment metadata with a presigned link. The caller
// must be able to read the message's room.
func (s *Service) Download(ctx context.Context, callerId, attachmentId string) (respond.AttachmentRespond, error) {
	row, err := s.repos.Attachments().FindByUuid(attachmentId)
	if err != nil {
		return respond.AttachmentRespond{}, err
	}
	msg, err := s.repos.Messages().FindByUuid(row.MessageUuid)
	if err != nil {
		return respond.AttachmentRespond{}, err
	}
	if !msg.IsActive() {
		return respond.AttachmentRespond{}, errorx.New(errorx.CodeNotFound, "message not found")
	}
	ok, err := s.access.CanAccessRoom(callerId, msg.RoomUuid)
	if err != nil {
		return respond.AttachmentRespond{}, err
	}
	if !ok {
		return respond.AttachmentRespond{}, errorx.New(errorx.CodeUnauthorized, "not a participant of this room")
	}
	link, err := s.blobs.PresignedGet(ctx, row.ObjectKey, row.FileName, downloadLinkExpiry)
	if err != nil {
		return respond.AttachmentRespond{}, err
	}
	rsp := respond.NewAttachmentRespond(row)
	rsp.DownloadUrl = link
	return rsp, nil
}

// ListForMessage returns the attachments of one message the caller can read.
func (s *Service) ListForMessage(callerId string, messageId int64) ([]respond.AttachmentRespond, error) {
	msg, err := s.repos.Messages().FindByUuid(messageId)
	if err != nil {
		return nil, err
	}
	ok, err := s.access.CanAccessRoom(callerId, msg.RoomUuid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorx.New(errorx.CodeUnauthorized, "not a participant of this room")
	}
	rows, err := s.repos.Attachments().FindByMessage(messageId)
	if err != nil {
		return nil, err
	}
	out := make([]respond.AttachmentRespond, 0, len(rows))
	for i := range rows {
		out = append(out, respond.NewAttachmentRespond(&rows[i]))
	}
	return out, nil
}
