package ws

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
)

type MockShopOwnershipVerifier struct {
	mock.Mock
}

func (m *MockShopOwnershipVerifier) Handle(
	ctx context.Context,
	query queries.CheckShopOwnerQuery,
) (bool, error) {
	args := m.Called(ctx, query)
	return args.Bool(0), args.Error(1)
}

type MockCourierRoomsResolver struct {
	mock.Mock
}

func (m *MockCourierRoomsResolver) Handle(
	ctx context.Context,
	query queries.GetCourierDeliveryRoomsQuery,
) ([]string, error) {
	args := m.Called(ctx, query)
	if rooms, ok := args.Get(0).([]string); ok {
		return rooms, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event ports.Event) {
	m.Called(ctx, event)
}

type gatewayFixture struct {
	gateway    *Gateway
	hub        *Hub
	publisher  *MockPublisher
	rooms      *MockCourierRoomsResolver
	shopOwners *MockShopOwnershipVerifier
}

func newGatewayFixture() gatewayFixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := NewHub(logger)
	publisher := &MockPublisher{}
	rooms := &MockCourierRoomsResolver{}
	shopOwners := &MockShopOwnershipVerifier{}

	return gatewayFixture{
		gateway:    NewGateway(logger, hub, nil, publisher, rooms, shopOwners),
		hub:        hub,
		publisher:  publisher,
		rooms:      rooms,
		shopOwners: shopOwners,
	}
}

func (f gatewayFixture) connect(principal user.Principal) *connection {
	conn := newConnection(principal, nil)
	f.hub.register(conn)
	return conn
}

func joinFrame(role string, id kernel.UUID) []byte {
	return fmt.Appendf(nil, `{"event":"join-room","data":{"role":%q,"id":%q}}`, role, id.String())
}

func TestGateway_HandleJoin(t *testing.T) {
	t.Run("client joins its own room", func(t *testing.T) {
		f := newGatewayFixture()
		principal := user.Principal{ID: kernel.NewUUID(), Role: user.RoleClient}
		conn := f.connect(principal)

		f.gateway.handleInbound(t.Context(), conn, joinFrame("client", principal.ID))

		assert.Equal(t, 1, f.hub.roomSize(ports.RoomClient(principal.ID)))
	})

	t.Run("client cannot join another client's room", func(t *testing.T) {
		f := newGatewayFixture()
		conn := f.connect(user.Principal{ID: kernel.NewUUID(), Role: user.RoleClient})
		other := kernel.NewUUID()

		f.gateway.handleInbound(t.Context(), conn, joinFrame("client", other))

		assert.Zero(t, f.hub.roomSize(ports.RoomClient(other)))
	})

	t.Run("courier joins its own delivery room", func(t *testing.T) {
		f := newGatewayFixture()
		principal := user.Principal{ID: kernel.NewUUID(), Role: user.RoleCourier}
		conn := f.connect(principal)

		f.gateway.handleInbound(t.Context(), conn, joinFrame("delivery", principal.ID))

		assert.Equal(t, 1, f.hub.roomSize(ports.RoomCourier(principal.ID)))
	})

	t.Run("admin joins any room", func(t *testing.T) {
		f := newGatewayFixture()
		conn := f.connect(user.Principal{ID: kernel.NewUUID(), Role: user.RoleAdmin})
		clientID := kernel.NewUUID()
		shopID := kernel.NewUUID()

		f.gateway.handleInbound(t.Context(), conn, joinFrame("client", clientID))
		f.gateway.handleInbound(t.Context(), conn, joinFrame("shop", shopID))

		assert.Equal(t, 1, f.hub.roomSize(ports.RoomClient(clientID)))
		assert.Equal(t, 1, f.hub.roomSize(ports.RoomShop(shopID)))
	})

	t.Run("shop owner joins a shop it owns", func(t *testing.T) {
		f := newGatewayFixture()
		principal := user.Principal{ID: kernel.NewUUID(), Role: user.RoleShopOwner}
		conn := f.connect(principal)
		shopID := kernel.NewUUID()

		f.shopOwners.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.CheckShopOwnerQuery) bool {
			return q.ShopID().IsEqual(shopID) && q.OwnerID().IsEqual(principal.ID)
		})).Return(true, nil).Once()

		f.gateway.handleInbound(t.Context(), conn, joinFrame("shop", shopID))

		assert.Equal(t, 1, f.hub.roomSize(ports.RoomShop(shopID)))
		f.shopOwners.AssertExpectations(t)
	})

	t.Run("shop owner cannot join another shop's room", func(t *testing.T) {
		f := newGatewayFixture()
		conn := f.connect(user.Principal{ID: kernel.NewUUID(), Role: user.RoleShopOwner})
		shopID := kernel.NewUUID()

		f.shopOwners.On("Handle", mock.Anything, mock.Anything).Return(false, nil).Once()

		f.gateway.handleInbound(t.Context(), conn, joinFrame("shop", shopID))

		assert.Zero(t, f.hub.roomSize(ports.RoomShop(shopID)))
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		f := newGatewayFixture()
		principal := user.Principal{ID: kernel.NewUUID(), Role: user.RoleClient}
		conn := f.connect(principal)

		f.gateway.handleInbound(t.Context(), conn, joinFrame("warehouse", principal.ID))

		assert.Empty(t, conn.rooms)
	})

	t.Run("malformed frame is dropped", func(t *testing.T) {
		f := newGatewayFixture()
		conn := f.connect(user.Principal{ID: kernel.NewUUID(), Role: user.RoleClient})

		f.gateway.handleInbound(t.Context(), conn, []byte(`{"event":"join-room","data":"nope"}`))

		assert.Empty(t, conn.rooms)
	})
}

func TestGateway_HandleLocation(t *testing.T) {
	locationFrame := []byte(`{"event":"update-location","data":{"lat":-33.45,"lng":-70.66}}`)

	t.Run("forwards position to the courier's delivery rooms", func(t *testing.T) {
		f := newGatewayFixture()
		principal := user.Principal{ID: kernel.NewUUID(), Role: user.RoleCourier}
		conn := f.connect(principal)
		rooms := []string{"client-a", "shop-b"}

		f.rooms.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetCourierDeliveryRoomsQuery) bool {
			return q.CourierID().IsEqual(principal.ID)
		})).Return(rooms, nil).Once()
		f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(event ports.Event) bool {
			payload, ok := event.Payload.(locationEventPayload)
			return ok &&
				event.Name == ports.EventDeliveryLocationUpdated &&
				assert.ObjectsAreEqual(rooms, event.Rooms) &&
				payload.CourierID == principal.ID.String() &&
				payload.Lat == -33.45 && payload.Lng == -70.66
		})).Once()

		f.gateway.handleInbound(t.Context(), conn, locationFrame)

		f.rooms.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("non-courier frames are dropped", func(t *testing.T) {
		f := newGatewayFixture()
		conn := f.connect(user.Principal{ID: kernel.NewUUID(), Role: user.RoleClient})

		f.gateway.handleInbound(t.Context(), conn, locationFrame)

		f.rooms.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("courier with no active delivery produces no event", func(t *testing.T) {
		f := newGatewayFixture()
		conn := f.connect(user.Principal{ID: kernel.NewUUID(), Role: user.RoleCourier})

		f.rooms.On("Handle", mock.Anything, mock.Anything).Return([]string{}, nil).Once()

		f.gateway.handleInbound(t.Context(), conn, locationFrame)

		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestBearerToken(t *testing.T) {
	require.Equal(t, "abc123", bearerToken("Bearer abc123"))
	require.Empty(t, bearerToken("Basic abc123"))
	require.Empty(t, bearerToken(""))
}
