package respond

import "chitchat_server/internal/model"

// AttachmentRespond is the metadata of an uploaded file. DownloadUrl is a
// presigned link with a short expiry.
type AttachmentRespond struct {
	Uuid        string `json:"uuid"`
	MessageId   string `json:"messageId,omitempty"`
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
	FileSize    int64  `json:"fileSize"`
	DownloadUrl string `json:"downloadUrl,omitempty"`
}

// NewAttachmentRespond converts an attachment row.
func NewAttachmentRespond(a *model.MessageAttachment) AttachmentRespond {
	return AttachmentRespond{
		Uuid:     a.Uuid,
		FileName: a.FileName,
		FileType: a.FileType,
		FileSize: a.FileSize,
	}
}
