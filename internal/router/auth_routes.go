package router

import "github.com/gin-gonic/gin"

func (rt *Router) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", rt.h.Auth.Register)
		auth.POST("/login", rt.h.Auth.Login)
		auth.POST("/refresh", rt.h.Auth.Refresh)
	}
}
