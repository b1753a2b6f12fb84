package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// TokenAuthenticator resolves a bearer token into a principal at the
// websocket handshake.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (user.Principal, error)
}

// CourierRoomsResolver lists the rooms interested in a courier's
// live location.
type CourierRoomsResolver interface {
	Handle(ctx context.Context, query queries.GetCourierDeliveryRoomsQuery) ([]string, error)
}

// ShopOwnershipVerifier reports whether a shop belongs to a principal.
type ShopOwnershipVerifier interface {
	Handle(ctx context.Context, query queries.CheckShopOwnerQuery) (bool, error)
}

// inboundMessage is the frame received from a subscriber.
type inboundMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type joinRoomRequest struct {
	Role string `json:"role"`
	ID   string `json:"id"`
}

type locationUpdate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type locationEventPayload struct {
	CourierID string  `json:"deliveryPersonId"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// Gateway upgrades HTTP requests to websocket connections, authenticates
// them and routes their inbound frames. Room joins are verified against
// the authenticated principal: a client or courier may only join its own
// room, a shop owner only rooms of shops it owns, an admin any room.
type Gateway struct {
	logger       *slog.Logger
	hub          *Hub
	auth         TokenAuthenticator
	publisher    ports.NotificationPublisher
	courierRooms CourierRoomsResolver
	shopOwners   ShopOwnershipVerifier
	upgrader     websocket.Upgrader
}

// NewGateway creates the realtime entry point.
func NewGateway(
	logger *slog.Logger,
	hub *Hub,
	auth TokenAuthenticator,
	publisher ports.NotificationPublisher,
	courierRooms CourierRoomsResolver,
	shopOwners ShopOwnershipVerifier,
) *Gateway {
	return &Gateway{
		logger:       logger.With("component", "ws_gateway"),
		hub:          hub,
		auth:         auth,
		publisher:    publisher,
		courierRooms: courierRooms,
		shopOwners:   shopOwners,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Handle serves GET /ws. The token comes from the Authorization header
// or, for browser clients that cannot set headers on websockets, from
// the token query parameter.
func (g *Gateway) Handle(c echo.Context) error {
	token := bearerToken(c.Request().Header.Get("Authorization"))
	if token == "" {
		token = c.QueryParam("token")
	}

	principal, err := g.auth.Authenticate(c.Request().Context(), token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	socket, err := g.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	conn := newConnection(principal, socket)
	g.hub.register(conn)

	go conn.writePump()
	go g.readPump(conn)

	return nil
}

func (g *Gateway) readPump(conn *connection) {
	defer func() {
		g.hub.unregister(conn)
		_ = conn.ws.Close()
	}()

	conn.ws.SetReadLimit(maxMessageSize)
	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.Warn("websocket read failed",
					"user_id", conn.principal.ID.String(), "error", err)
			}
			return
		}

		g.handleInbound(context.Background(), conn, raw)
	}
}

// handleInbound routes one frame. Malformed or unauthorized frames are
// logged and dropped; the channel has no error replies.
func (g *Gateway) handleInbound(ctx context.Context, conn *connection, raw []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		g.logger.Warn("discarding malformed websocket frame",
			"user_id", conn.principal.ID.String(), "error", err)
		return
	}

	switch msg.Event {
	case "join-room":
		g.handleJoin(ctx, conn, msg.Data)
	case "update-location":
		g.handleLocation(ctx, conn, msg.Data)
	default:
		g.logger.Warn("discarding unknown websocket event",
			"user_id", conn.principal.ID.String(), "event", msg.Event)
	}
}

func (g *Gateway) handleJoin(ctx context.Context, conn *connection, data json.RawMessage) {
	var req joinRoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		g.logger.Warn("discarding malformed join-room frame",
			"user_id", conn.principal.ID.String(), "error", err)
		return
	}

	targetID, err := kernel.UUIDFromString(req.ID)
	if err != nil {
		g.logger.Warn("discarding join-room with invalid id",
			"user_id", conn.principal.ID.String(), "room_id", req.ID)
		return
	}

	room, err := g.authorizeJoin(ctx, conn.principal, req.Role, targetID)
	if err != nil {
		g.logger.Warn("rejecting room join",
			"user_id", conn.principal.ID.String(),
			"role", req.Role, "room_id", req.ID, "error", err)
		return
	}

	g.hub.join(conn, room)
	g.logger.Debug("joined room", "user_id", conn.principal.ID.String(), "room", room)
}

// authorizeJoin maps a join request to a room name, enforcing that the
// announced identity matches the authenticated principal.
func (g *Gateway) authorizeJoin(
	ctx context.Context,
	principal user.Principal,
	role string,
	targetID kernel.UUID,
) (string, error) {
	switch role {
	case "client":
		if !principal.IsAdmin() &&
			(principal.Role != user.RoleClient || !principal.ID.IsEqual(targetID)) {
			return "", errs.NewForbiddenError("join another client's room")
		}
		return ports.RoomClient(targetID), nil

	case "delivery":
		if !principal.IsAdmin() &&
			(!principal.IsCourier() || !principal.ID.IsEqual(targetID)) {
			return "", errs.NewForbiddenError("join another courier's room")
		}
		return ports.RoomCourier(targetID), nil

	case "shop":
		if !principal.IsAdmin() {
			if principal.Role != user.RoleShopOwner {
				return "", errs.NewForbiddenError("join a shop room")
			}
			query, err := queries.NewCheckShopOwnerQuery(targetID, principal.ID)
			if err != nil {
				return "", err
			}
			owns, err := g.shopOwners.Handle(ctx, query)
			if err != nil {
				return "", err
			}
			if !owns {
				return "", errs.NewForbiddenError("join another shop's room")
			}
		}
		return ports.RoomShop(targetID), nil

	default:
		return "", errs.NewValueIsInvalidError("role")
	}
}

// handleLocation forwards a courier's position to the client and shop
// rooms of its in-delivery orders. Couriers with no active delivery
// produce no event.
func (g *Gateway) handleLocation(ctx context.Context, conn *connection, data json.RawMessage) {
	if !conn.principal.IsCourier() {
		g.logger.Warn("discarding update-location from non-courier",
			"user_id", conn.principal.ID.String())
		return
	}

	var update locationUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		g.logger.Warn("discarding malformed update-location frame",
			"user_id", conn.principal.ID.String(), "error", err)
		return
	}

	query, err := queries.NewGetCourierDeliveryRoomsQuery(conn.principal.ID)
	if err != nil {
		g.logger.Warn("cannot resolve delivery rooms",
			"user_id", conn.principal.ID.String(), "error", err)
		return
	}

	rooms, err := g.courierRooms.Handle(ctx, query)
	if err != nil {
		g.logger.Warn("cannot resolve delivery rooms",
			"user_id", conn.principal.ID.String(), "error", err)
		return
	}
	if len(rooms) == 0 {
		return
	}

	g.publisher.Publish(ctx, ports.Event{
		Name:  ports.EventDeliveryLocationUpdated,
		Rooms: rooms,
		Payload: locationEventPayload{
			CourierID: conn.principal.ID.String(),
			Lat:       update.Lat,
			Lng:       update.Lng,
		},
	})
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, prefix))
	}
	return ""
}
