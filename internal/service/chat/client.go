package chat

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chitchat_server/pkg/constants"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxFrameSize = 4096
)

// Client frame actions.
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
	ActionTyping      = "typing"
	ActionMessage     = "message"
)

// ClientFrame is one inbound websocket frame.
type ClientFrame struct {
	Action  string `json:"action"`
	RoomId  string `json:"roomId"`
	Content string `json:"content,omitempty"`
	Type    string `json:"type,omitempty"`
}

// Client is one websocket connection bound to an authenticated user. Outbound
// traffic goes through the send channel so only the write pump touches the
// connection for writes.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	sender      MessageSender
	userId      string
	displayName string
	send        chan []byte
	rooms       map[string]bool
}

// NewClient wires a freshly upgraded connection into the hub and starts its
// pumps.
func NewClient(hub *Hub, conn *websocket.Conn, sender MessageSender, userId, displayName string) *Client {
	c := &Client{
		hub:         hub,
		conn:        conn,
		sender:      sender,
		userId:      userId,
		displayName: displayName,
		send:        make(chan []byte, constants.CHANNEL_SIZE),
		rooms:       make(map[string]bool),
	}
	hub.register <- c
	go c.writePump()
	go c.readPump()
	return c
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("websocket read failed", zap.String("user", c.userId), zap.Error(err))
			}
			return
		}
		var frame ClientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			zap.L().Debug("bad client frame", zap.String("user", c.userId), zap.Error(err))
			continue
		}
		c.handle(frame)
	}
}

func (c *Client) handle(frame ClientFrame) {
	if frame.RoomId == "" {
		return
	}
	switch frame.Action {
	case ActionSubscribe:
		ok, err := c.hub.auth.CanAccessRoom(c.userId, frame.RoomId)
		if err != nil {
			zap.L().Error("subscribe check failed", zap.String("user", c.userId), zap.Error(err))
			return
		}
		if !ok {
			return
		}
		c.rooms[frame.RoomId] = true
		c.hub.subscribe <- subscription{client: c, roomId: frame.RoomId}
		c.hub.broker.Publish(NewEvent(EventUserJoined, frame.RoomId, RoomUserData{
			UserId:      c.userId,
			DisplayName: c.displayName,
		}))

	case ActionUnsubscribe:
		if !c.rooms[frame.RoomId] {
			return
		}
		delete(c.rooms, frame.RoomId)
		c.hub.unsubscribe <- subscription{client: c, roomId: frame.RoomId}
		c.hub.broker.Publish(NewEvent(EventUserLeft, frame.RoomId, RoomUserData{
			UserId:      c.userId,
			DisplayName: c.displayName,
		}))

	case ActionTyping:
		if !c.rooms[frame.RoomId] {
			return
		}
		c.hub.broker.Publish(NewEvent(EventTyping, frame.RoomId, RoomUserData{
			UserId:      c.userId,
			DisplayName: c.displayName,
		}))

	case ActionMessage:
		if err := c.sender.SendFromClient(c.userId, frame.RoomId, frame.Content, frame.Type); err != nil {
			zap.L().Warn("websocket send rejected",
				zap.String("user", c.userId), zap.String("room", frame.RoomId), zap.Error(err))
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
