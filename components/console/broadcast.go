package console

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// BroadcastHook fans console events out to in-process subscribers. Slow
// subscribers drop events rather than block the shell.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{
		subs: make(map[int]chan Event),
	}
}

// ConsoleUpdated satisfies EventHook.
func (h *BroadcastHook) ConsoleUpdated(_ context.Context, event Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel of events and a cancel func.
func (h *BroadcastHook) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan Event, 16)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// MultiHook fans an event out to several hooks, stopping at the first error.
type MultiHook []EventHook

func (m MultiHook) ConsoleUpdated(ctx context.Context, event Event) error {
	for _, hook := range m {
		if hook == nil {
			continue
		}
		if err := hook.ConsoleUpdated(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// stream subscribes, calls ready, then hands each event to send until the
// context ends, the hook drops the subscriber, or send fails.
func (h *BroadcastHook) stream(ctx context.Context, ready func() error, send func(Event) error) {
	events, cancel := h.Subscribe()
	defer cancel()
	if err := ready(); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok || send(event) != nil {
				return
			}
		}
	}
}

// ServeWebSocket upgrades the request and writes each event as a JSON frame.
// The stream ends when the peer closes its side.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	var conn *websocket.Conn
	h.stream(ctx, func() error {
		var err error
		conn, err = upgrader.Upgrade(w, r, nil)
		if err != nil {
			return err
		}
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
		return nil
	}, func(event Event) error {
		return conn.WriteJSON(event)
	})
	if conn != nil {
		_ = conn.Close()
	}
}

// ServeSSE streams events as Server-Sent Events named after the event kind.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, _ := w.(http.Flusher)
	flush := func() {
		if flusher != nil {
			flusher.Flush()
		}
	}
	h.stream(r.Context(), func() error {
		header := w.Header()
		header.Set("Content-Type", "text/event-stream")
		header.Set("Cache-Control", "no-cache")
		header.Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flush()
		return nil
	}, func(event Event) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Kind, payload); err != nil {
			return err
		}
		flush()
		return nil
	})
}
