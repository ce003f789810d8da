package server

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"
)

// Hub tracks the games currently running, one per connection.
type Hub struct {
	games      map[int]*Connection
	nextGameID int
	seed       int64
	seeded     int64
	closing    bool
	mu         sync.Mutex
}

var ErrHubClosing = errors.New("server is shutting down")

// NewHub creates an empty hub. A non-zero seed makes every game's ball
// directions reproducible.
func NewHub(seed int64) *Hub {
	return &Hub{
		games:      make(map[int]*Connection),
		nextGameID: 1,
		seed:       seed,
	}
}

// Register assigns the next game id. It refuses once CloseAll has started.
func (h *Hub) Register(c *Connection) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closing {
		return 0, ErrHubClosing
	}
	id := h.nextGameID
	h.nextGameID++
	h.games[id] = c

	log.Printf("Registered game %d (total: %d)", id, len(h.games))
	return id, nil
}

func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.games[id]; !ok {
		return
	}
	delete(h.games, id)
	log.Printf("Unregistered game %d (total: %d)", id, len(h.games))
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.games)
}

// CloseAll stops every running game and refuses new ones. Connections
// unregister themselves as their read pumps exit.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	h.closing = true
	conns := make([]*Connection, 0, len(h.games))
	for _, c := range h.games {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	log.Printf("Closing %d games", len(conns))
	for _, c := range conns {
		c.Close()
	}
}

func (h *Hub) newRand() *rand.Rand {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.seed == 0 {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	h.seeded++
	return rand.New(rand.NewSource(h.seed + h.seeded))
}
