package router

import (
	"github.com/gin-gonic/gin"

	"chitchat_server/internal/infrastructure/middleware"
)

func (rt *Router) registerFriendRoutes(r *gin.Engine) {
	friends := r.Group("/friends")
	friends.Use(middleware.JWTAuth())
	{
		friends.GET("", rt.h.Friend.List)
		friends.POST("/requests", rt.h.Friend.SendRequest)
		friends.GET("/requests", rt.h.Friend.ListRequests)
		friends.POST("/requests/accept", rt.h.Friend.Accept)
		friends.POST("/requests/reject", rt.h.Friend.Reject)
		friends.GET("/status/:userId", rt.h.Friend.Status)
		friends.DELETE("/:userId", rt.h.Friend.Remove)
	}
}
