package client

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"pong/internal/net"
)

// NetClient plays against a remote server: pointer moves go up, snapshots
// come back down.
type NetClient struct {
	conn     *websocket.Conn
	send     chan []byte
	snapshot chan net.SnapMessage
	welcome  chan net.WelcomeMessage
	done     chan struct{}
	mu       sync.Mutex
	closed   bool
}

func NewNetClient(addr, name string) (*NetClient, error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, err
	}

	nc := &NetClient{
		conn:     conn,
		send:     make(chan []byte, 256),
		snapshot: make(chan net.SnapMessage, 10),
		welcome:  make(chan net.WelcomeMessage, 1),
		done:     make(chan struct{}),
	}

	go nc.readPump()
	go nc.writePump()

	nc.SendMessage(net.HelloMessage{
		Type:    "hello",
		Name:    name,
		Version: net.ProtocolVersion,
	})

	return nc, nil
}

func (nc *NetClient) SendMessage(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	nc.mu.Lock()
	defer nc.mu.Unlock()
	if nc.closed {
		return
	}
	select {
	case nc.send <- data:
	default:
	}
}

func (nc *NetClient) SendPointer(y float64) {
	nc.SendMessage(net.PointerMessage{Type: "pointer", Y: y})
}

func (nc *NetClient) readPump() {
	defer func() {
		nc.conn.Close()
		close(nc.done)
	}()

	for {
		_, message, err := nc.conn.ReadMessage()
		if err != nil {
			log.Printf("Read error: %v", err)
			return
		}

		var baseMsg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(message, &baseMsg); err != nil {
			continue
		}

		switch baseMsg.Type {
		case "welcome":
			var welcome net.WelcomeMessage
			if err := json.Unmarshal(message, &welcome); err == nil {
				select {
				case nc.welcome <- welcome:
				default:
				}
			}

		case "snap":
			var snap net.SnapMessage
			if err := json.Unmarshal(message, &snap); err == nil {
				select {
				case nc.snapshot <- snap:
				default:
					// Drop if buffer full
				}
			}
		}
	}
}

func (nc *NetClient) writePump() {
	defer nc.conn.Close()

	for message := range nc.send {
		if err := nc.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	nc.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// GetSnapshot returns the newest buffered snapshot, or nil.
func (nc *NetClient) GetSnapshot() *net.SnapMessage {
	var latest *net.SnapMessage
	for {
		select {
		case snap := <-nc.snapshot:
			latest = &snap
		default:
			return latest
		}
	}
}

func (nc *NetClient) GetWelcome() *net.WelcomeMessage {
	select {
	case welcome := <-nc.welcome:
		return &welcome
	default:
		return nil
	}
}

// Done is closed once the server connection is gone.
func (nc *NetClient) Done() <-chan struct{} {
	return nc.done
}

func (nc *NetClient) Close() {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	if !nc.closed {
		nc.closed = true
		close(nc.send)
	}
}
