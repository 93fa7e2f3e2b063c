package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"chitchat_server/internal/dto/request"
	"chitchat_server/internal/infrastructure/middleware"
	"chitchat_server/internal/service"
	"chitchat_server/pkg/errorx"
)

// MessageHandler serves message CRUD, paging and search.
type MessageHandler struct {
	messageSvc service.MessageService
}

func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

func messageIdParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("messageId"), 10, 64)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "invalid message id"))
		return 0, false
	}
	return id, true
}

// Send handles POST /rooms/:id/messages.
func (h *MessageHandler) Send(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.Send(middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Page handles GET /rooms/:id/messages.
func (h *MessageHandler) Page(c *gin.Context) {
	var req request.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.Page(middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Edit handles PUT /messages/:messageId.
func (h *MessageHandler) Edit(c *gin.Context) {
	id, ok := messageIdParam(c)
	if !ok {
		return
	}
	var req request.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.Edit(middleware.UserID(c), id, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Delete handles DELETE /messages/:messageId.
func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := messageIdParam(c)
	if !ok {
		return
	}
	if err := h.messageSvc.Delete(middleware.UserID(c), id); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Search handles GET /messages/search.
func (h *MessageHandler) Search(c *gin.Context) {
	var req request.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.Search(middleware.UserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
