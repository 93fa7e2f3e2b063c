package router

import (
	"github.com/gin-gonic/gin"

	"chitchat_server/internal/infrastructure/middleware"
)

func (rt *Router) registerMessageRoutes(r *gin.Engine) {
	messages := r.Group("/messages")
	messages.Use(middleware.JWTAuth())
	{
		messages.GET("/search", rt.h.Message.Search)
		messages.PUT("/:messageId", rt.h.Message.Edit)
		messages.DELETE("/:messageId", rt.h.Message.Delete)
		messages.GET("/:messageId/attachments", rt.h.Attachment.ListForMessage)
	}
}
