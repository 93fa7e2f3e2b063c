// Package router registers the HTTP routes, grouped by module.
package router

import (
	"github.com/gin-gonic/gin"

	"chitchat_server/internal/handler"
)

// Router binds the handler aggregate to the gin engine.
type Router struct {
	h *handler.Handlers
}

func NewRouter(h *handler.Handlers) *Router {
	return &Router{h: h}
}

// RegisterRoutes registers every module's routes.
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.registerAuthRoutes(r)
	rt.registerUserRoutes(r)
	rt.registerRoomRoutes(r)
	rt.registerMessageRoutes(r)
	rt.registerFriendRoutes(r)
	rt.registerAttachmentRoutes(r)
	rt.registerAIRoutes(r)
	rt.registerWsRoutes(r)
}
