package handler

import (
	"github.com/gin-gonic/gin"

	"chitchat_server/internal/dto/request"
	"chitchat_server/internal/infrastructure/middleware"
	"chitchat_server/internal/service"
)

// FriendHandler serves the friend graph endpoints.
type FriendHandler struct {
	friendSvc service.FriendService
}

func NewFriendHandler(friendSvc service.FriendService) *FriendHandler {
	return &FriendHandler{friendSvc: friendSvc}
}

// SendRequest handles POST /friends/requests.
func (h *FriendHandler) SendRequest(c *gin.Context) {
	var req request.FriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.friendSvc.SendRequest(middleware.UserID(c), req.Email)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListRequests handles GET /friends/requests.
func (h *FriendHandler) ListRequests(c *gin.Context) {
	data, err := h.friendSvc.ListRequests(middleware.UserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Accept handles POST /friends/requests/accept.
func (h *FriendHandler) Accept(c *gin.Context) {
	var req request.FriendActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.friendSvc.Accept(middleware.UserID(c), req.RequestId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Reject handles POST /friends/requests/reject.
func (h *FriendHandler) Reject(c *gin.Context) {
	var req request.FriendActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.friendSvc.Reject(middleware.UserID(c), req.RequestId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// List handles GET /friends.
func (h *FriendHandler) List(c *gin.Context) {
	data, err := h.friendSvc.ListFriends(middleware.UserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Remove handles DELETE /friends/:userId.
func (h *FriendHandler) Remove(c *gin.Context) {
	if err := h.friendSvc.RemoveFriend(middleware.UserID(c), c.Param("userId")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Status handles GET /friends/status/:userId.
func (h *FriendHandler) Status(c *gin.Context) {
	data, err := h.friendSvc.StatusBetween(middleware.UserID(c), c.Param("userId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
