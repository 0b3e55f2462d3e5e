package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gin-gonic/gin"

	"adlytics/domain/model"
)

// Event is an SSE payload pushed to the UI: session changes, upload
// progress ticks, queue snapshot replacements and connect outcomes.
type Event struct {
	Type     string `json:"type"`
	State    string `json:"state,omitempty"`
	Filename string `json:"filename,omitempty"`
	Percent  int    `json:"percent,omitempty"`
	Status   string `json:"status,omitempty"`
	Platform string `json:"platform,omitempty"`
	Message  string `json:"message,omitempty"`
	Payload  any    `json:"payload,omitempty"`
}

// Hub fans events out to every connected UI stream. The client is
// single-user, so there is no per-user keying.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Serve registers an SSE stream until the UI disconnects.
func (h *Hub) Serve(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering

	ch := make(chan Event, 8)
	h.add(ch)
	defer h.remove(ch)

	// Initial comment to keep connection open
	_, _ = c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()

	for {
		select {
		case evt, ok := <-ch:
			if !ok {
				return
			}
			data, _ := json.Marshal(evt)
			_, _ = c.Writer.Write([]byte("event: " + evt.Type + "\n"))
			_, _ = c.Writer.Write([]byte("data: "))
			_, _ = c.Writer.Write(data)
			_, _ = c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *Hub) add(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[ch] = struct{}{}
}

func (h *Hub) remove(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

// Broadcast delivers to all subscribers without blocking; a slow
// stream drops events rather than stalling the producer.
func (h *Hub) Broadcast(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

func (h *Hub) BroadcastSession(evt model.SessionEvent) {
	h.Broadcast(Event{Type: "session", State: evt.State.String(), Payload: evt.Session})
}

func (h *Hub) BroadcastUploadProgress(filename string, percent int) {
	h.Broadcast(Event{Type: "upload_progress", Filename: filename, Percent: percent})
}

func (h *Hub) BroadcastQueue(snapshot model.QueueSnapshot) {
	h.Broadcast(Event{Type: "queue", Payload: snapshot})
}

func (h *Hub) BroadcastConnect(platform model.Platform, status model.OAuthStatus, message string) {
	h.Broadcast(Event{
		Type:     "oauth_status",
		Status:   string(status),
		Platform: string(platform),
		Message:  message,
	})
}
