package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chitchat_server/internal/service"
	"chitchat_server/internal/service/chat"
	"chitchat_server/pkg/errorx"
	"chitchat_server/pkg/util/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin is enforced by the cors middleware on the HTTP side.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WsHandler upgrades GET /ws?token=... connections. The token travels as a
// query parameter because browsers cannot set headers on websocket dials.
type WsHandler struct {
	hub     *chat.Hub
	sender  chat.MessageSender
	userSvc service.UserService
}

func NewWsHandler(hub *chat.Hub, sender chat.MessageSender, userSvc service.UserService) *WsHandler {
	return &WsHandler{hub: hub, sender: sender, userSvc: userSvc}
}

// Connect authenticates the token, upgrades the connection and hands it to
// the hub.
func (h *WsHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "token required",
		})
		return
	}
	claims, err := jwt.ParseToken(token)
	if err != nil || claims.Subject != "access_token" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "token expired or invalid",
		})
		return
	}
	profile, err := h.userSvc.GetUserInfo(claims.UserID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if !profile.Active {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "account is disabled",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("websocket upgrade failed", zap.Error(err))
		return
	}
	chat.NewClient(h.hub, conn, h.sender, profile.Uuid, profile.DisplayName)
}
