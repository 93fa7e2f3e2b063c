package router

import (
	"github.com/gin-gonic/gin"

	"chitchat_server/internal/infrastructure/middleware"
)

func (rt *Router) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	users.Use(middleware.JWTAuth())
	{
		users.GET("/me", rt.h.User.Me)
		users.PUT("/me", rt.h.User.UpdateProfile)
		users.GET("/online", rt.h.User.Online)
		users.GET("/by-email", rt.h.User.ByEmail)
		users.GET("/:id", rt.h.User.GetUser)
	}
}
