package realtime

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // allow all origins in dev; restrict in production
	},
}

// WSMessage is the WebSocket message envelope for text frames.
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Handlers receives inbound traffic from connected clients.
// Fragment gets binary frames from the studio room (recorder data-available
// events). Position and Ended get player room playback reports; the handle
// ties the event to one attachment of a track.
type Handlers struct {
	Fragment func(data []byte)
	Position func(handle uint64, seconds float64)
	Ended    func(handle uint64)
}

// Client represents a single WebSocket connection in a room.
type Client struct {
	ID       string
	Room     string
	hub      *Hub
	handlers Handlers
	conn     *websocket.Conn
	send     chan WSMessage
	logger   *zap.Logger
}

// ServeWs upgrades the connection and runs the client loop. The room comes
// from the `room` query parameter.
func ServeWs(hub *Hub, logger *zap.Logger, handlers Handlers) gin.HandlerFunc {
	return func(c *gin.Context) {
		room := c.Query("room")
		if room != RoomStudio && room != RoomPlayer {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room must be studio or player"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &Client{
			ID:       uuid.New().String(),
			Room:     room,
			hub:      hub,
			handlers: handlers,
			conn:     conn,
			send:     make(chan WSMessage, 256),
			logger:   logger,
		}
		hub.Register(client)
		go client.writePump()
		client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(1 << 20) // capture fragments can be sizable
	_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))
		return nil
	})

	for {
		msgType, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))

		if msgType == websocket.BinaryMessage {
			if c.Room == RoomStudio && c.handlers.Fragment != nil {
				c.handlers.Fragment(raw)
			}
			continue
		}

		var msg WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		switch msg.Event {
		case "position":
			if c.Room != RoomPlayer || c.handlers.Position == nil {
				continue
			}
			var payload struct {
				Handle  uint64  `json:"handle"`
				Seconds float64 `json:"position_seconds"`
			}
			if err := json.Unmarshal(msg.Data, &payload); err == nil {
				c.handlers.Position(payload.Handle, payload.Seconds)
			}
		case "ended":
			if c.Room != RoomPlayer || c.handlers.Ended == nil {
				continue
			}
			var payload struct {
				Handle uint64 `json:"handle"`
			}
			if err := json.Unmarshal(msg.Data, &payload); err == nil {
				c.handlers.Ended(payload.Handle)
			}
		default:
			// ignore
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(PingInterval * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
