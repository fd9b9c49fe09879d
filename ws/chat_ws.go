package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ChatHub fans chat messages out over WebSocket. Rooms are keyed by the
// canonical (user, mechanic) pair, so both sides land in the same room no
// matter who connected first.
type ChatHub struct {
	clients    map[RoomKey]map[*websocket.Conn]bool
	broadcast  chan BroadcastMessage
	register   chan Subscription
	unregister chan Subscription
	mu         sync.Mutex
	service    *services.ChatService
}

type RoomKey struct {
	UserID     uint
	MechanicID uint
}

// Subscription is one connected client inside a room.
type Subscription struct {
	Conn   *websocket.Conn
	Room   RoomKey
	FromID uint
	Role   string
	PeerID uint
}

type BroadcastMessage struct {
	Room    RoomKey
	Message *entity.ChatMessage
}

func NewChatHub(service *services.ChatService) *ChatHub {
	return &ChatHub{
		clients:    make(map[RoomKey]map[*websocket.Conn]bool),
		broadcast:  make(chan BroadcastMessage),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		service:    service,
	}
}

// Run loops over register/unregister/broadcast until the process exits.
func (h *ChatHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.Room] == nil {
				h.clients[sub.Room] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.Room][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.Room][sub.Conn]; ok {
				delete(h.clients[sub.Room], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[msg.Room] {
				if err := conn.WriteJSON(msg.Message); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[msg.Room], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/chat/:peerId
func (h *ChatHub) HandleWebSocket(c *gin.Context) {
	var peerID uint
	fmt.Sscan(c.Param("peerId"), &peerID)

	// identity comes from the JWT, never from the client payload
	userIDVal, _ := c.Get("userId")
	fromID := userIDVal.(uint)
	roleVal, _ := c.Get("role")
	role, _ := roleVal.(string)

	ownerID, mechanicID, err := h.service.Pair(fromID, role, peerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "peer not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := Subscription{
		Conn:   conn,
		Room:   RoomKey{UserID: ownerID, MechanicID: mechanicID},
		FromID: fromID,
		Role:   role,
		PeerID: peerID,
	}
	h.register <- sub

	go h.listenMessages(sub)
}

func (h *ChatHub) listenMessages(sub Subscription) {
	defer func() { h.unregister <- sub }()

	for {
		_, msgData, err := sub.Conn.ReadMessage()
		if err != nil {
			log.Printf("ws read error: %v", err)
			break
		}

		var payload struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(msgData, &payload); err != nil {
			log.Printf("invalid payload: %v", err)
			continue
		}

		msg, err := h.service.Send(sub.FromID, sub.Role, sub.PeerID, payload.Text)
		if err != nil {
			log.Printf("save msg error: %v", err)
			continue
		}

		h.broadcast <- BroadcastMessage{Room: sub.Room, Message: msg}
	}
}
