package chat

import (
	"encoding/json"

	"go.uber.org/zap"
)

// RoomAuthorizer guards subscriptions: only active participants may receive a
// room's events.
type RoomAuthorizer interface {
	CanAccessRoom(userId, roomId string) (bool, error)
}

// MessageSender persists an inbound websocket message; the resulting
// MESSAGE_SENT event flows back through the broker.
type MessageSender interface {
	SendFromClient(senderId, roomId, content, typeName string) error
}

// PresenceTracker records which users hold a live connection.
type PresenceTracker interface {
	MarkOnline(userId string) error
	MarkOffline(userId string) error
}

type subscription struct {
	client *Client
	roomId string
}

// Hub owns the connected clients and fans broker events out to the rooms they
// subscribed to. A single Run goroutine handles both control traffic and
// event dispatch, so events of a room reach clients in broker order.
type Hub struct {
	broker   Broker
	auth     RoomAuthorizer
	presence PresenceTracker

	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscription
	unsubscribe chan subscription

	clients map[*Client]bool
	rooms   map[string]map[*Client]bool
	// userConns counts live connections per user, so a user with several
	// tabs stays online until the last one closes.
	userConns map[string]int
}

func NewHub(broker Broker, auth RoomAuthorizer, presence PresenceTracker) *Hub {
	return &Hub{
		broker:      broker,
		auth:        auth,
		presence:    presence,
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan subscription),
		unsubscribe: make(chan subscription),
		clients:     make(map[*Client]bool),
		rooms:       make(map[string]map[*Client]bool),
		userConns:   make(map[string]int),
	}
}

// Run dispatches until the broker's event channel closes.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.userConns[c.userId]++
			if h.userConns[c.userId] == 1 {
				if err := h.presence.MarkOnline(c.userId); err != nil {
					zap.L().Warn("mark online failed", zap.String("user", c.userId), zap.Error(err))
				}
			}

		case c := <-h.unregister:
			if !h.clients[c] {
				continue
			}
			delete(h.clients, c)
			for roomId := range c.rooms {
				h.dropFromRoom(c, roomId)
			}
			close(c.send)
			h.userConns[c.userId]--
			if h.userConns[c.userId] <= 0 {
				delete(h.userConns, c.userId)
				if err := h.presence.MarkOffline(c.userId); err != nil {
					zap.L().Warn("mark offline failed", zap.String("user", c.userId), zap.Error(err))
				}
			}

		case sub := <-h.subscribe:
			if h.rooms[sub.roomId] == nil {
				h.rooms[sub.roomId] = make(map[*Client]bool)
			}
			h.rooms[sub.roomId][sub.client] = true

		case sub := <-h.unsubscribe:
			h.dropFromRoom(sub.client, sub.roomId)

		case e, ok := <-h.broker.Events():
			if !ok {
				return
			}
			h.broadcast(e)
		}
	}
}

func (h *Hub) dropFromRoom(c *Client, roomId string) {
	if members := h.rooms[roomId]; members != nil {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, roomId)
		}
	}
}

// broadcast marshals the event once and pushes it to every subscriber of its
// room. Slow clients are skipped rather than stalling the room.
func (h *Hub) broadcast(e Event) {
	members := h.rooms[e.RoomId]
	if len(members) == 0 {
		return
	}
	frame, err := json.Marshal(e)
	if err != nil {
		zap.L().Error("event marshal failed", zap.Error(err))
		return
	}
	for c := range members {
		select {
		case c.send <- frame:
		default:
			zap.L().Warn("client send buffer full, dropping event",
				zap.String("user", c.userId), zap.String("room", e.RoomId))
		}
	}
}
