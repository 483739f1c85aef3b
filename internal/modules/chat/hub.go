package chat

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks open websockets per group room. A user holds at most one
// connection per group.
type Hub struct {
	rooms map[int64]map[int64]*websocket.Conn
	mutex sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[int64]map[int64]*websocket.Conn),
	}
}

func (h *Hub) Join(groupID, userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	room, ok := h.rooms[groupID]
	if !ok {
		room = make(map[int64]*websocket.Conn)
		h.rooms[groupID] = room
	}

	if oldConn, exists := room[userID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}
	room[userID] = conn
}

func (h *Hub) Leave(groupID, userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	room, ok := h.rooms[groupID]
	if !ok {
		return
	}
	if conn, exists := room[userID]; exists && conn != nil {
		_ = conn.Close()
		delete(room, userID)
	}
	if len(room) == 0 {
		delete(h.rooms, groupID)
	}
}

// Broadcast sends the message to every open connection in the room and
// returns the number of sockets reached. Dead connections are evicted.
func (h *Hub) Broadcast(groupID int64, message interface{}) int {
	h.mutex.RLock()
	room := h.rooms[groupID]
	conns := make(map[int64]*websocket.Conn, len(room))
	for userID, conn := range room {
		conns[userID] = conn
	}
	h.mutex.RUnlock()

	sent := 0
	for userID, conn := range conns {
		if conn == nil {
			continue
		}
		if err := conn.WriteJSON(message); err != nil {
			h.Leave(groupID, userID)
			continue
		}
		sent++
	}
	return sent
}

func (h *Hub) OnlineCount(groupID int64) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[groupID])
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for groupID, room := range h.rooms {
		for _, conn := range room {
			if conn != nil {
				_ = conn.Close()
			}
		}
		delete(h.rooms, groupID)
	}
}
