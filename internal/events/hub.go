// Package events fans mutation notices out to in-process listeners and
// Server-Sent Events clients.
package events

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Event types
const (
	TypeCreated = "created"
	TypeUpdated = "updated"
	TypeDeleted = "deleted"
)

// Event is a single mutation notice
type Event struct {
	Seq    uint64    `json:"seq"`
	Type   string    `json:"type"`
	Entity string    `json:"entity"`
	ID     uint      `json:"id,omitempty"`
	At     time.Time `json:"at"`
}

// Name is the SSE event name, e.g. "room.updated"
func (e Event) Name() string {
	return e.Entity + "." + e.Type
}

// Client is a connected stream subscriber
type Client struct {
	ID      string
	UserID  uint
	Channel chan Event
}

// Publisher is what services depend on
type Publisher interface {
	Publish(entity, eventType string, id uint)
}

// Hub manages stream clients and in-process listeners
type Hub struct {
	mu        sync.RWMutex
	clients   map[string]*Client
	listeners []func(Event)
	seq       atomic.Uint64
	now       func() time.Time
}

// NewHub creates a new hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		now:     time.Now,
	}
}

// Register adds a stream client
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	log.Printf("📡 SSE client registered: %s (user=%d) | total=%d", client.ID, client.UserID, len(h.clients))
}

// Unregister removes a stream client and closes its channel
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Channel)
		delete(h.clients, clientID)
		log.Printf("📡 SSE client unregistered: %s | total=%d", clientID, len(h.clients))
	}
}

// Subscribe registers a listener that runs synchronously on every publish.
// Listeners must be quick and must not publish.
func (h *Hub) Subscribe(fn func(Event)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Publish stamps and broadcasts a mutation notice
func (h *Hub) Publish(entity, eventType string, id uint) {
	h.Broadcast(Event{
		Seq:    h.seq.Add(1),
		Type:   eventType,
		Entity: entity,
		ID:     id,
		At:     h.now(),
	})
}

// Broadcast delivers an event to listeners, then to every client.
// Clients with a full buffer miss the event.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, fn := range h.listeners {
		fn(event)
	}

	for _, client := range h.clients {
		select {
		case client.Channel <- event:
		default:
			log.Printf("⚠️ SSE channel full for client %s, skipping %s", client.ID, event.Name())
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Nop discards events
type Nop struct{}

func (Nop) Publish(string, string, uint) {}
