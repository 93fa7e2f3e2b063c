package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"chitchat_server/internal/infrastructure/middleware"
	"chitchat_server/internal/service"
	"chitchat_server/pkg/constants"
	"chitchat_server/pkg/errorx"
)

// AttachmentHandler serves file upload and download-link endpoints.
type AttachmentHandler struct {
	attachmentSvc service.AttachmentService
}

func NewAttachmentHandler(attachmentSvc service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentSvc: attachmentSvc}
}

// Upload handles POST /attachments: multipart form with "file" and
// "messageId" fields.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	messageId, err := strconv.ParseInt(c.PostForm("messageId"), 10, 64)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "invalid message id"))
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "file field required"))
		return
	}
	if fileHeader.Size > constants.FILE_MAX_SIZE {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "file too large"))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		HandleError(c, err)
		return
	}
	defer f.Close()

	data, err := h.attachmentSvc.Upload(c.Request.Context(), middleware.UserID(c), messageId,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, f)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Download handles GET /attachments/:id: returns metadata with a presigned
// link rather than proxying the bytes.
func (h *AttachmentHandler) Download(c *gin.Context) {
	data, err := h.attachmentSvc.Download(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListForMessage handles GET /messages/:messageId/attachments.
func (h *AttachmentHandler) ListForMessage(c *gin.Context) {
	id, ok := messageIdParam(c)
	if !ok {
		return
	}
	data, err := h.attachmentSvc.ListForMessage(middleware.UserID(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
