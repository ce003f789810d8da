package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pong/internal/config"
	"pong/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if _, err := os.Stat(cfg.WebDir); os.IsNotExist(err) {
		log.Fatalf("Web directory not found: %s", cfg.WebDir)
	}
	log.Printf("Serving static files from: %s", cfg.WebDir)

	hub := server.NewHub(cfg.Seed)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.NewMux(hub, cfg),
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on :%s (%dx%d field, %d ticks/s)", cfg.Port, cfg.Width, cfg.Height, cfg.TickRate)
		log.Printf("WebSocket endpoint: ws://localhost:%s/ws", cfg.Port)
		log.Printf("Web interface: http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")
	hub.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
