package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"pong/internal/config"
	"pong/internal/net"
)

func newTestServer(t *testing.T) (*httptest.Server, *Hub, config.Config) {
	t.Helper()

	cfg := config.Config{Width: 800, Height: 600, TickRate: 60, WebDir: t.TempDir()}
	hub := NewHub(1)
	srv := httptest.NewServer(NewMux(hub, cfg))
	t.Cleanup(func() {
		hub.CloseAll()
		srv.Close()
	})
	return srv, hub, cfg
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func writeJSON(t *testing.T, conn *websocket.Conn, v interface{}) {
	t.Helper()
	if err := conn.WriteJSON(v); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestWebSocketGameRoundTrip(t *testing.T) {
	srv, hub, _ := newTestServer(t)
	conn := dial(t, srv)
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	writeJSON(t, conn, net.HelloMessage{Type: "hello", Name: "tester", Version: net.ProtocolVersion})

	var welcome net.WelcomeMessage
	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	if welcome.Type != "welcome" || welcome.GameID != 1 {
		t.Fatalf("unexpected welcome %+v", welcome)
	}
	if welcome.Field.W != 800 || welcome.Field.H != 600 || welcome.Field.PaddleHeight != 100 {
		t.Fatalf("unexpected field %+v", welcome.Field)
	}
	if hub.Count() != 1 {
		t.Fatalf("expected 1 registered game, got %d", hub.Count())
	}

	writeJSON(t, conn, net.PointerMessage{Type: "pointer", Y: 10})

	for {
		var snap net.SnapMessage
		if err := conn.ReadJSON(&snap); err != nil {
			t.Fatalf("read snap: %v", err)
		}
		if snap.Type != "snap" {
			t.Fatalf("expected snap, got %q", snap.Type)
		}
		if snap.Player.Y == 0 {
			if snap.Player.X != 20 || snap.Player.H != 100 {
				t.Fatalf("unexpected player rect %+v", snap.Player)
			}
			break
		}
	}
}

func TestWebSocketIgnoresPointerBeforeHello(t *testing.T) {
	srv, hub, _ := newTestServer(t)
	conn := dial(t, srv)

	writeJSON(t, conn, net.PointerMessage{Type: "pointer", Y: 10})
	writeJSON(t, conn, net.HelloMessage{Type: "hello", Name: "late", Version: net.ProtocolVersion})

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var welcome net.WelcomeMessage
	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	if welcome.Type != "welcome" {
		t.Fatalf("expected welcome first, got %q", welcome.Type)
	}

	var snap net.SnapMessage
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read snap: %v", err)
	}
	if snap.Player.Y != 250 {
		t.Fatalf("pointer sent before hello must be ignored, player Y = %v", snap.Player.Y)
	}
	if hub.Count() != 1 {
		t.Fatalf("expected 1 game, got %d", hub.Count())
	}
}

func TestWebSocketRejectsVersionMismatch(t *testing.T) {
	srv, hub, _ := newTestServer(t)
	conn := dial(t, srv)

	writeJSON(t, conn, net.HelloMessage{Type: "hello", Name: "old", Version: net.ProtocolVersion + 1})

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected connection to be closed")
	}
	if hub.Count() != 0 {
		t.Fatalf("expected no games, got %d", hub.Count())
	}
}

func TestDisconnectUnregistersGame(t *testing.T) {
	srv, hub, _ := newTestServer(t)
	conn := dial(t, srv)

	writeJSON(t, conn, net.HelloMessage{Type: "hello", Name: "leaver", Version: net.ProtocolVersion})
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for hub.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("game still registered after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServesIndex(t *testing.T) {
	srv, _, cfg := newTestServer(t)
	if err := os.WriteFile(filepath.Join(cfg.WebDir, "index.html"), []byte("<canvas></canvas>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get /: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "<canvas></canvas>" {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, body)
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(0)

	a, errA := hub.Register(&Connection{})
	b, errB := hub.Register(&Connection{})
	if errA != nil || errB != nil {
		t.Fatalf("register: %v, %v", errA, errB)
	}
	if a != 1 || b != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", a, b)
	}
	if hub.Count() != 2 {
		t.Fatalf("expected 2 games, got %d", hub.Count())
	}

	hub.Unregister(a)
	hub.Unregister(a)
	if hub.Count() != 1 {
		t.Fatalf("expected 1 game, got %d", hub.Count())
	}
}

func TestHubSeededRandIsReproducible(t *testing.T) {
	first := NewHub(9).newRand().Int63()
	second := NewHub(9).newRand().Int63()
	if first != second {
		t.Fatalf("expected equal draws for equal seeds, got %d and %d", first, second)
	}
}

func TestHubCloseAllClosesConnections(t *testing.T) {
	hub := NewHub(0)
	c := &Connection{send: make(chan []byte, 1)}
	if _, err := hub.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}

	hub.CloseAll()

	if _, ok := <-c.send; ok {
		t.Fatal("expected send channel to be closed")
	}
	c.SendMessage(json.RawMessage(`{}`)) // must not panic after close
}

func TestHubRefusesRegisterAfterCloseAll(t *testing.T) {
	hub := NewHub(0)
	hub.CloseAll()

	if _, err := hub.Register(&Connection{}); !errors.Is(err, ErrHubClosing) {
		t.Fatalf("expected ErrHubClosing, got %v", err)
	}
	if hub.Count() != 0 {
		t.Fatalf("expected no games, got %d", hub.Count())
	}
}

func TestHelloDuringShutdownIsRejected(t *testing.T) {
	srv, hub, _ := newTestServer(t)
	conn := dial(t, srv)

	hub.CloseAll()
	writeJSON(t, conn, net.HelloMessage{Type: "hello", Name: "late", Version: net.ProtocolVersion})

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected connection to be closed")
	}
	if hub.Count() != 0 {
		t.Fatalf("expected no games, got %d", hub.Count())
	}
}
