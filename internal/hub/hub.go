package hub

import (
	"encoding/json"
	"sync"

	"wearable-server/internal/model"
)

type Writer interface {
	Write(message []byte) error
	Close() error
}

// Connection is one live observer. Observers carry no identity: the stream
// is a single shared feed of whatever sample arrived last.
type Connection struct {
	Writer Writer
}

// Hub owns the observer set and the single latest-sample slot. Every
// accepted telemetry write flows through Publish regardless of how many
// observers exist, and the slot is last-write-wins.
type Hub struct {
	mu          sync.Mutex
	connections map[*Connection]struct{}
	latest      model.TelemetrySample
}

func New() *Hub {
	return &Hub{
		connections: make(map[*Connection]struct{}),
		latest:      model.DefaultSample(),
	}
}

// Latest returns the most recently published sample.
func (h *Hub) Latest() model.TelemetrySample {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Register adds the connection and immediately pushes the current latest
// sample so a new observer is never left stale. A connection whose first
// write fails is closed and never joins the set.
func (h *Hub) Register(conn *Connection) {
	h.mu.Lock()
	payload, err := json.Marshal(h.latest)
	if err == nil {
		h.connections[conn] = struct{}{}
	}
	h.mu.Unlock()
	if err != nil {
		return
	}

	if err := conn.Writer.Write(payload); err != nil {
		_ = conn.Writer.Close()
		h.Unregister(conn)
	}
}

// Unregister removes the connection. Safe to call for connections that
// never completed registration.
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections, conn)
}

// Publish overwrites the latest-sample slot and pushes the sample to every
// live observer. A failed write only removes that one observer; it never
// blocks delivery to the rest or surfaces to the publishing writer.
func (h *Hub) Publish(sample model.TelemetrySample) {
	payload, err := json.Marshal(sample)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.latest = sample
	conns := make([]*Connection, 0, len(h.connections))
	for c := range h.connections {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	var failed []*Connection
	for _, c := range conns {
		if err := c.Writer.Write(payload); err != nil {
			failed = append(failed, c)
		}
	}
	for _, c := range failed {
		_ = c.Writer.Close()
		h.Unregister(c)
	}
}
