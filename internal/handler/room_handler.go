package handler

import (
	"github.com/gin-gonic/gin"

	"chitchat_server/internal/dto/request"
	"chitchat_server/internal/infrastructure/middleware"
	"chitchat_server/internal/service"
)

// RoomHandler serves room lifecycle and roster endpoints.
type RoomHandler struct {
	roomSvc service.RoomService
}

func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// Create handles POST /rooms.
func (h *RoomHandler) Create(c *gin.Context) {
	var req request.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.roomSvc.CreateRoom(middleware.UserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Direct handles POST /rooms/direct.
func (h *RoomHandler) Direct(c *gin.Context) {
	var req request.DirectRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.roomSvc.FindOrCreateDirectRoom(middleware.UserID(c), req.UserId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// List handles GET /rooms.
func (h *RoomHandler) List(c *gin.Context) {
	data, err := h.roomSvc.RoomsForUser(middleware.UserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Detail handles GET /rooms/:id.
func (h *RoomHandler) Detail(c *gin.Context) {
	data, err := h.roomSvc.RoomDetails(middleware.UserID(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AddParticipant handles POST /rooms/:id/participants.
func (h *RoomHandler) AddParticipant(c *gin.Context) {
	var req request.ParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomSvc.AddParticipant(middleware.UserID(c), c.Param("id"), req.UserId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RemoveParticipant handles DELETE /rooms/:id/participants/:userId.
func (h *RoomHandler) RemoveParticipant(c *gin.Context) {
	if err := h.roomSvc.RemoveParticipant(middleware.UserID(c), c.Param("id"), c.Param("userId")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
