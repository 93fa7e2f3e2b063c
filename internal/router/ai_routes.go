package router

import (
	"github.com/gin-gonic/gin"

	"chitchat_server/internal/infrastructure/middleware"
)

func (rt *Router) registerAIRoutes(r *gin.Engine) {
	ai := r.Group("/ai")
	ai.Use(middleware.JWTAuth())
	{
		ai.POST("/ask", rt.h.AI.Ask)
		ai.GET("/providers", rt.h.AI.Providers)
		ai.GET("/providers/:name/models", rt.h.AI.Models)
		ai.POST("/providers/:name/test", rt.h.AI.Test)
	}
}
