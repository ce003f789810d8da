package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pong/internal/config"
	"pong/internal/game"
	"pong/internal/net"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev
	},
}

// Connection is one browser or ebiten client playing its own game.
type Connection struct {
	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
	cfg    config.Config
	gameID int
	loop   *game.Loop
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

func NewConnection(conn *websocket.Conn, hub *Hub, cfg config.Config) *Connection {
	return &Connection{
		conn: conn,
		send: make(chan []byte, 256),
		hub:  hub,
		cfg:  cfg,
	}
}

func (c *Connection) SendMessage(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full for game %d", c.gameID)
	}
}

// Close stops the game and lets the write pump send a close frame.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
	close(c.send)
}

// start registers and runs the game for this connection until Close.
func (c *Connection) start(name string) error {
	id, err := c.hub.Register(c)
	if err != nil {
		return err
	}
	c.gameID = id

	state := game.NewState(c.cfg.Field(), c.hub.newRand())
	c.loop = game.NewLoop(state, c.cfg.TickInterval(), func(s *game.State, ev game.Events) {
		if ev.Has(game.BallReset) {
			log.Printf("Game %d: ball reset at tick %d", c.gameID, s.Tick)
		}
		c.SendMessage(s.GetSnap())
	})

	ctx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	if c.closed {
		// CloseAll ran between Register and here
		c.mu.Unlock()
		cancel()
		return ErrHubClosing
	}
	c.cancel = cancel
	c.mu.Unlock()

	log.Printf("Game %d started for %q", c.gameID, name)

	c.SendMessage(net.WelcomeMessage{
		Type:   "welcome",
		GameID: c.gameID,
		Field:  state.FieldInfo(),
	})

	go func() {
		if err := c.loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Game %d loop error: %v", c.gameID, err)
		}
		log.Printf("Game %d stopped", c.gameID)
	}()
	return nil
}

func (c *Connection) readPump() {
	defer func() {
		if c.gameID != 0 {
			c.hub.Unregister(c.gameID)
		}
		c.Close()
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var baseMsg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(message, &baseMsg); err != nil {
			continue
		}

		switch baseMsg.Type {
		case "hello":
			var hello net.HelloMessage
			if err := json.Unmarshal(message, &hello); err != nil || c.loop != nil {
				continue
			}
			if hello.Version != net.ProtocolVersion {
				log.Printf("Rejecting %q: protocol version %d, want %d", hello.Name, hello.Version, net.ProtocolVersion)
				return
			}
			if err := c.start(hello.Name); err != nil {
				log.Printf("Rejecting %q: %v", hello.Name, err)
				return
			}

		case "pointer":
			var pointer net.PointerMessage
			if err := json.Unmarshal(message, &pointer); err == nil && c.loop != nil {
				c.loop.Send(game.PointerMoved{Y: pointer.Y})
			}
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func HandleWebSocket(hub *Hub, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade error: %v", err)
			return
		}

		c := NewConnection(conn, hub, cfg)
		go c.writePump()
		go c.readPump()

		log.Printf("Client connected from %s", r.RemoteAddr)
	}
}
