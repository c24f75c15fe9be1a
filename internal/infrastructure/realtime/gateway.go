// Package realtime delivers push events to connected browsers over WebSocket.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/askstack/qa-platform/internal/api/metrics"
	"github.com/askstack/qa-platform/internal/core/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Authenticator resolves a bearer token into the connecting actor.
type Authenticator func(token string) (domain.Actor, error)

// Listener streams the raw push payloads addressed to one recipient.
type Listener interface {
	Listen(ctx context.Context, recipientID string) (<-chan []byte, error)
}

// Gateway upgrades authenticated requests and relays the recipient's push
// channel to the socket. Clients never send application messages; reads only
// service control frames.
type Gateway struct {
	upgrader websocket.Upgrader
	auth     Authenticator
	listener Listener
	log      zerolog.Logger
}

func NewGateway(auth Authenticator, listener Listener, log zerolog.Logger) *Gateway {
	return &Gateway{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		auth:     auth,
		listener: listener,
		log:      log,
	}
}

type helloMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

// Serve handles GET /ws?token=<jwt>.
//
// @Summary      Real-time notification stream
// @Description  Upgrades to a WebSocket and streams push events for the authenticated user.
// @Tags         realtime
// @Param        token  query  string  true  "JWT"
// @Success      101  {string}  string  "Switching Protocols"
// @Failure      401  {object}  map[string]string
// @Router       /ws [get]
func (g *Gateway) Serve(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	actor, err := g.auth(token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	events, err := g.listener.Listen(ctx, actor.ID)
	if err != nil {
		return err
	}

	conn, err := g.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		g.log.Debug().Err(err).Str("user_id", actor.ID).Msg("websocket upgrade failed")
		return nil
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	log := g.log.With().Str("session_id", sessionID).Str("user_id", actor.ID).Logger()
	log.Info().Msg("websocket connected")
	metrics.WebsocketConnections.Inc()
	defer func() {
		metrics.WebsocketConnections.Dec()
		log.Info().Msg("websocket disconnected")
	}()

	hello, _ := json.Marshal(helloMessage{Type: "connected", SessionID: sessionID, UserID: actor.ID})
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, hello); err != nil {
		return nil
	}

	go readPump(conn, cancel, log)
	writePump(ctx, conn, events, log)
	return nil
}

// readPump drains control frames and cancels the session when the peer goes away.
func readPump(conn *websocket.Conn, cancel context.CancelFunc, log zerolog.Logger) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("websocket read error")
			}
			return
		}
	}
}

// writePump forwards events and keeps the connection alive with pings.
func writePump(ctx context.Context, conn *websocket.Conn, events <-chan []byte, log zerolog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case payload, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Warn().Err(err).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
