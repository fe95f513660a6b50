package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// client wraps a connection with a write mutex; gorilla/websocket allows at
// most one concurrent writer per connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans play and entry events out to everyone watching a game.
type Hub struct {
	mu    sync.RWMutex
	games map[uint]map[*websocket.Conn]*client
}

func NewHub() *Hub {
	return &Hub{
		games: make(map[uint]map[*websocket.Conn]*client),
	}
}

func (h *Hub) AddConnection(gameID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.games[gameID] == nil {
		h.games[gameID] = make(map[*websocket.Conn]*client)
	}
	h.games[gameID][conn] = &client{conn: conn}
	log.Printf("ws: client connected to game %d (total: %d)", gameID, len(h.games[gameID]))
}

func (h *Hub) RemoveConnection(gameID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.games[gameID]; ok {
		if _, present := conns[conn]; !present {
			return
		}
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.games, gameID)
		}
		log.Printf("ws: client disconnected from game %d", gameID)
	}
}

// Broadcast writes the message to every connection watching the game. The
// connection set is snapshotted under the read lock and each write is
// serialized by the client mutex; failed connections are removed afterwards
// under the write lock, so concurrent broadcasts never write to one
// connection at the same time and never mutate a map they iterate.
func (h *Hub) Broadcast(gameID uint, message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.games[gameID]))
	for _, c := range h.games[gameID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	var failed []*websocket.Conn
	for _, c := range clients {
		if err := c.write(data); err != nil {
			log.Printf("ws: write error: %v", err)
			failed = append(failed, c.conn)
		}
	}

	for _, conn := range failed {
		h.RemoveConnection(gameID, conn)
	}
}
