package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestConnection(role user.Role) *connection {
	return newConnection(user.Principal{ID: kernel.NewUUID(), Role: role}, nil)
}

func receivedFrame(t *testing.T, conn *connection) outboundMessage {
	t.Helper()

	select {
	case frame := <-conn.send:
		var msg outboundMessage
		require.NoError(t, json.Unmarshal(frame, &msg))
		return msg
	default:
		t.Fatal("expected a queued frame")
		return outboundMessage{}
	}
}

func TestHub_Deliver(t *testing.T) {
	t.Run("fans event out to every room member", func(t *testing.T) {
		hub := newTestHub()
		clientID := kernel.NewUUID()

		first := newTestConnection(user.RoleClient)
		second := newTestConnection(user.RoleClient)
		outsider := newTestConnection(user.RoleClient)
		for _, conn := range []*connection{first, second, outsider} {
			hub.register(conn)
		}
		hub.join(first, ports.RoomClient(clientID))
		hub.join(second, ports.RoomClient(clientID))

		err := hub.Deliver(t.Context(), ports.Event{
			Name:    ports.EventOrderStatusUpdated,
			Rooms:   []string{ports.RoomClient(clientID)},
			Payload: map[string]string{"status": "confirmed"},
		})

		require.NoError(t, err)
		assert.Equal(t, ports.EventOrderStatusUpdated, receivedFrame(t, first).Event)
		assert.Equal(t, ports.EventOrderStatusUpdated, receivedFrame(t, second).Event)
		assert.Empty(t, outsider.send)
	})

	t.Run("connection in several target rooms receives the frame once", func(t *testing.T) {
		hub := newTestHub()
		clientID := kernel.NewUUID()
		shopID := kernel.NewUUID()

		conn := newTestConnection(user.RoleAdmin)
		hub.register(conn)
		hub.join(conn, ports.RoomClient(clientID))
		hub.join(conn, ports.RoomShop(shopID))

		err := hub.Deliver(t.Context(), ports.Event{
			Name:    ports.EventDeliveryLocationUpdated,
			Rooms:   []string{ports.RoomClient(clientID), ports.RoomShop(shopID)},
			Payload: map[string]float64{"lat": -33.45, "lng": -70.66},
		})

		require.NoError(t, err)
		receivedFrame(t, conn)
		assert.Empty(t, conn.send)
	})

	t.Run("drops a consumer whose queue is full", func(t *testing.T) {
		hub := newTestHub()
		clientID := kernel.NewUUID()

		conn := newTestConnection(user.RoleClient)
		hub.register(conn)
		hub.join(conn, ports.RoomClient(clientID))
		for range sendQueueSize {
			require.True(t, conn.enqueue([]byte("{}")))
		}

		err := hub.Deliver(t.Context(), ports.Event{
			Name:  ports.EventOrderCreated,
			Rooms: []string{ports.RoomClient(clientID)},
		})

		require.NoError(t, err)
		assert.Zero(t, hub.roomSize(ports.RoomClient(clientID)))
	})
}

func TestHub_Unregister(t *testing.T) {
	t.Run("removes the connection from all rooms", func(t *testing.T) {
		hub := newTestHub()
		clientID := kernel.NewUUID()
		courierID := kernel.NewUUID()

		conn := newTestConnection(user.RoleAdmin)
		hub.register(conn)
		hub.join(conn, ports.RoomClient(clientID))
		hub.join(conn, ports.RoomCourier(courierID))

		hub.unregister(conn)

		assert.Zero(t, hub.roomSize(ports.RoomClient(clientID)))
		assert.Zero(t, hub.roomSize(ports.RoomCourier(courierID)))
	})

	t.Run("is idempotent", func(t *testing.T) {
		hub := newTestHub()
		conn := newTestConnection(user.RoleClient)
		hub.register(conn)

		hub.unregister(conn)
		hub.unregister(conn)

		assert.False(t, conn.enqueue([]byte("{}")))
	})

	t.Run("join after unregister is ignored", func(t *testing.T) {
		hub := newTestHub()
		clientID := kernel.NewUUID()
		conn := newTestConnection(user.RoleClient)
		hub.register(conn)
		hub.unregister(conn)

		hub.join(conn, ports.RoomClient(clientID))

		assert.Zero(t, hub.roomSize(ports.RoomClient(clientID)))
	})
}
