package server

import (
	"net/http"
	"path/filepath"

	"pong/internal/config"
)

// NewMux serves the web client from cfg.WebDir and games on /ws.
func NewMux(hub *Hub, cfg config.Config) *http.ServeMux {
	mux := http.NewServeMux()

	fs := http.FileServer(http.Dir(cfg.WebDir))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.ServeFile(w, r, filepath.Join(cfg.WebDir, "index.html"))
			return
		}
		fs.ServeHTTP(w, r)
	})

	mux.HandleFunc("/ws", HandleWebSocket(hub, cfg))

	return mux
}
