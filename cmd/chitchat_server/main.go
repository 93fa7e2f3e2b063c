package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chitchat_server/internal/config"
	dao "chitchat_server/internal/dao/mysql"
	myredis "chitchat_server/internal/dao/redis"
	"chitchat_server/internal/handler"
	"chitchat_server/internal/httpserver"
	"chitchat_server/internal/infrastructure/logger"
	"chitchat_server/internal/infrastructure/objectstore"
	"chitchat_server/internal/service"
	"chitchat_server/internal/service/chat"
	"chitchat_server/pkg/util/jwt"
	"chitchat_server/pkg/util/snowflake"
)

func main() {
	conf := config.GetConfig()

	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	if conf.MainConfig.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	repos := dao.Init()
	myredis.Init()
	defer myredis.Close()

	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init(conf.SnowflakeConfig.MachineID)
	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("init validator translator failed", zap.Error(err))
	}

	broker, err := chat.NewBroker(conf)
	if err != nil {
		zap.L().Fatal("init event broker failed", zap.Error(err))
	}
	defer broker.Close()

	blobs, err := objectstore.NewMinioStore(conf.MinioConfig)
	if err != nil {
		zap.L().Fatal("init object store failed", zap.Error(err))
	}

	svc, err := service.NewServices(repos, broker, blobs, conf.AIConfig, true)
	if err != nil {
		zap.L().Fatal("init services failed", zap.Error(err))
	}

	hub := chat.NewHub(broker, svc.Access, chat.RedisPresence{})
	go hub.Run()

	handlers := handler.NewHandlers(svc, hub, svc.Message)
	engine := httpserver.Init(conf, handlers)

	addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
	go func() {
		zap.L().Info("server listening", zap.String("addr", addr), zap.Bool("tls", conf.MainConfig.EnableTLS))
		var err error
		if conf.MainConfig.EnableTLS {
			err = engine.RunTLS(addr, conf.MainConfig.CertFile, conf.MainConfig.KeyFile)
		} else {
			err = engine.Run(addr)
		}
		if err != nil {
			zap.L().Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")
}
