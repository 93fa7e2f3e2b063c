package router

import "github.com/gin-gonic/gin"

func (rt *Router) registerWsRoutes(r *gin.Engine) {
	// Auth happens inside the handler: the token arrives as a query
	// parameter, not an Authorization header.
	r.GET("/ws", rt.h.Ws.Connect)
}
