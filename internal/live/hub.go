package live

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// The three dashboard topics. recent-scans and daily-overview are pushed by
// the ingestion path; start-stop only relays operator frames between clients.
const (
	TopicRecentScans   = "recent-scans"
	TopicDailyOverview = "daily-overview"
	TopicStartStop     = "start-stop"
)

type topic struct {
	connections map[*websocket.Conn]struct{}
}

type Hub struct {
	mu     sync.Mutex
	topics map[string]*topic
}

type Stats struct {
	RecentScans   int `json:"recent_scans"`
	DailyOverview int `json:"daily_overview"`
	StartStop     int `json:"start_stop"`
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]*topic)}
}

func (h *Hub) Join(name string, ws *websocket.Conn) {
	h.mu.Lock()
	h.topicLocked(name).connections[ws] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Leave(name string, ws *websocket.Conn) {
	h.mu.Lock()
	if t, ok := h.topics[name]; ok {
		delete(t.connections, ws)
	}
	h.mu.Unlock()
	_ = ws.Close()
}

// Broadcast marshals v once and writes it to every subscriber of the topic.
// Delivery is fire and forget: there is no queueing or replay, and a failed
// write just drops that connection. A topic with no subscribers is a no-op.
func (h *Hub) Broadcast(name string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	h.broadcastRaw(name, payload)
}

// BroadcastRaw relays an already-encoded frame verbatim, used by the
// start-stop topic so operator messages pass through untouched.
func (h *Hub) BroadcastRaw(name string, payload []byte) {
	h.broadcastRaw(name, payload)
}

func (h *Hub) broadcastRaw(name string, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.topics[name]
	if !ok {
		return
	}

	for ws := range t.connections {
		if err := ws.WriteMessage(websocket.TextMessage, payload); err != nil {
			_ = ws.Close()
			delete(t.connections, ws)
		}
	}
}

func (h *Hub) Count(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.topics[name]; ok {
		return len(t.connections)
	}
	return 0
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		RecentScans:   h.countLocked(TopicRecentScans),
		DailyOverview: h.countLocked(TopicDailyOverview),
		StartStop:     h.countLocked(TopicStartStop),
	}
}

func (h *Hub) countLocked(name string) int {
	if t, ok := h.topics[name]; ok {
		return len(t.connections)
	}
	return 0
}

func (h *Hub) topicLocked(name string) *topic {
	t, ok := h.topics[name]
	if !ok {
		t = &topic{connections: make(map[*websocket.Conn]struct{})}
		h.topics[name] = t
	}
	return t
}
