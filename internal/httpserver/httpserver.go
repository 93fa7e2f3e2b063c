// Package httpserver assembles the gin engine: middleware chain plus routes.
package httpserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"chitchat_server/internal/config"
	"chitchat_server/internal/handler"
	"chitchat_server/internal/infrastructure/logger"
	"chitchat_server/internal/infrastructure/middleware"
	"chitchat_server/internal/router"
)

// Init builds the engine with zap logging, panic recovery and cors, then
// registers all routes.
func Init(conf *config.Config, handlers *handler.Handlers) *gin.Engine {
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))
	if conf.MainConfig.EnableTLS {
		engine.Use(middleware.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port))
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine)

	return engine
}
