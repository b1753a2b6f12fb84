// Package ws exposes the marketplace's realtime channel. Each websocket
// connection authenticates once at the handshake, joins named rooms
// (client-<id>, shop-<id>, delivery-<id>) and receives the order lifecycle
// events emitted for those rooms. Emission is best effort: there is no
// acknowledgement, no replay, and a slow consumer is dropped rather than
// allowed to block the fan-out.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"marketplace/internal/core/ports"
)

// outboundMessage is the frame sent to subscribers.
type outboundMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub is the room registry. It owns every live connection and the
// room membership index, and fans events out to room members.
// It is safe for concurrent use.
type Hub struct {
	logger *slog.Logger

	mu    sync.Mutex
	conns map[*connection]struct{}
	rooms map[string]map[*connection]struct{}
}

// NewHub creates an empty room registry.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With("component", "ws_hub"),
		conns:  make(map[*connection]struct{}),
		rooms:  make(map[string]map[*connection]struct{}),
	}
}

// Name identifies the hub among notification sinks.
func (h *Hub) Name() string {
	return "ws"
}

// Deliver sends the event to every connection joined to at least one of
// its rooms. A connection subscribed to several target rooms receives
// the frame once.
func (h *Hub) Deliver(_ context.Context, event ports.Event) error {
	frame, err := json.Marshal(outboundMessage{Event: event.Name, Data: event.Payload})
	if err != nil {
		return err
	}

	h.mu.Lock()
	targets := make(map[*connection]struct{})
	for _, room := range event.Rooms {
		for conn := range h.rooms[room] {
			targets[conn] = struct{}{}
		}
	}
	h.mu.Unlock()

	for conn := range targets {
		if !conn.enqueue(frame) {
			h.logger.Warn("dropping slow websocket consumer",
				"user_id", conn.principal.ID.String(),
				"event", event.Name)
			h.unregister(conn)
		}
	}

	return nil
}

func (h *Hub) register(conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[conn] = struct{}{}
}

// unregister removes the connection from every room it joined and closes
// its send queue. Safe to call more than once for the same connection.
func (h *Hub) unregister(conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[conn]; !ok {
		return
	}

	delete(h.conns, conn)
	for room := range conn.rooms {
		members := h.rooms[room]
		delete(members, conn)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	conn.close()
}

func (h *Hub) join(conn *connection, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[conn]; !ok {
		return
	}

	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*connection]struct{})
		h.rooms[room] = members
	}
	members[conn] = struct{}{}
	conn.rooms[room] = struct{}{}
}

// roomSize reports the current member count of a room.
func (h *Hub) roomSize(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.rooms[room])
}
