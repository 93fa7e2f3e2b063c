package router

import (
	"github.com/gin-gonic/gin"

	"chitchat_server/internal/infrastructure/middleware"
)

func (rt *Router) registerAttachmentRoutes(r *gin.Engine) {
	attachments := r.Group("/attachments")
	attachments.Use(middleware.JWTAuth())
	{
		attachments.POST("", rt.h.Attachment.Upload)
		attachments.GET("/:id", rt.h.Attachment.Download)
	}
}
