package router

import (
	"github.com/gin-gonic/gin"

	"chitchat_server/internal/infrastructure/middleware"
)

func (rt *Router) registerRoomRoutes(r *gin.Engine) {
	rooms := r.Group("/rooms")
	rooms.Use(middleware.JWTAuth())
	{
		rooms.POST("", rt.h.Room.Create)
		rooms.GET("", rt.h.Room.List)
		rooms.POST("/direct", rt.h.Room.Direct)
		rooms.GET("/:id", rt.h.Room.Detail)
		rooms.POST("/:id/participants", rt.h.Room.AddParticipant)
		rooms.DELETE("/:id/participants/:userId", rt.h.Room.RemoveParticipant)

		rooms.POST("/:id/messages", rt.h.Message.Send)
		rooms.GET("/:id/messages", rt.h.Message.Page)
	}
}
