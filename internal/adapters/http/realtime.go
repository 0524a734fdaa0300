package web

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"clubhouse/internal/adapters/http/middleware"
	chatDomain "clubhouse/internal/domain/chat"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second // must be less than pongWait
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Session cookie auth happens before the upgrade; same-origin only.
	CheckOrigin: func(r *http.Request) bool {
		return r.Header.Get("Origin") == "" || r.Host == hostOf(r.Header.Get("Origin"))
	},
}

func hostOf(origin string) string {
	for i := 0; i < len(origin)-2; i++ {
		if origin[i] == ':' && origin[i+1] == '/' && origin[i+2] == '/' {
			return origin[i+3:]
		}
	}
	return origin
}

// messageEvent is the wire format pushed to subscribers.
type messageEvent struct {
	MessageID string `json:"messageId"`
	RoomID    string `json:"roomId"`
	SenderID  string `json:"senderId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// subscriber is one websocket connection listening on a room.
type subscriber struct {
	conn *websocket.Conn
	send chan messageEvent
}

// Hub fans stored chat messages out to room subscribers.
// Delivery is best effort: a subscriber that cannot keep up is dropped.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*subscriber]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*subscriber]bool)}
}

// NotifyMessage pushes a stored message to every subscriber of its room.
// POST: Slow subscribers are detached rather than blocking the send.
// The fan-out runs under the write lock so a dropped subscriber is
// removed and its channel closed exactly once, even with concurrent
// notifiers.
func (h *Hub) NotifyMessage(roomID string, m chatDomain.Message) {
	event := messageEvent{
		MessageID: m.ID,
		RoomID:    m.RoomID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.rooms[roomID] {
		select {
		case s.send <- event:
		default:
			h.removeLocked(roomID, s)
			close(s.send)
		}
	}
}

func (h *Hub) attach(roomID string, s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*subscriber]bool)
	}
	h.rooms[roomID][s] = true
}

func (h *Hub) detach(roomID string, s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(roomID, s)
}

// removeLocked drops a subscriber from its room. Caller holds mu.
func (h *Hub) removeLocked(roomID string, s *subscriber) {
	if subs, ok := h.rooms[roomID]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// SubscriberCount reports how many connections listen on a room.
// Intended for tests and diagnostics.
func (h *Hub) SubscriberCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// handleChatSubscribe upgrades the connection and streams new messages
// for one room until the client goes away.
func handleChatSubscribe(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	roomID := r.PathValue("id")
	if _, err := stores.ChatStore.GetRoomByID(r.Context(), roomID); err != nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws_upgrade_failed", "error", err, "room_id", roomID)
		return
	}

	s := &subscriber{conn: conn, send: make(chan messageEvent, 16)}
	hub.attach(roomID, s)
	slog.Info("chat_event", "event", "subscribed", "room_id", roomID, "member_id", sess.MemberID)

	go writePump(s)
	readPump(roomID, s)
}

// readPump drains client frames so pongs are processed, and tears the
// subscriber down when the connection drops.
func readPump(roomID string, s *subscriber) {
	defer func() {
		hub.detach(roomID, s)
		s.conn.Close()
	}()
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump serializes events and pings to the client.
func writePump(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()
	for {
		select {
		case event, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
