package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"chitchat_server/internal/dto/request"
	"chitchat_server/internal/infrastructure/middleware"
	"chitchat_server/internal/service"
)

// UserHandler serves profile reads and updates.
type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c *gin.Context) {
	data, err := h.userSvc.GetUserInfo(middleware.UserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUser handles GET /users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	data, err := h.userSvc.GetUserInfo(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ByEmail handles GET /users/by-email?email=..., the lookup behind the
// add-friend form.
func (h *UserHandler) ByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		HandleParamError(c, errors.New("email query parameter required"))
		return
	}
	data, err := h.userSvc.FindByEmail(email)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Online handles GET /users/online.
func (h *UserHandler) Online(c *gin.Context) {
	ids, err := h.userSvc.OnlineUsers()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, ids)
}

// UpdateProfile handles PUT /users/me.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.UpdateProfile(middleware.UserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
