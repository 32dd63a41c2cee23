// Package websocket fans import progress out to browser clients. Progress
// records arrive on a Redis stream written by the importer process, so the
// API service can broadcast backfills it did not run itself.
package websocket

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/alexanderkazanski/ufc-database/internal/cache"
	"github.com/alexanderkazanski/ufc-database/internal/publisher"
	"github.com/alexanderkazanski/ufc-database/internal/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// Server represents the WebSocket server
type Server struct {
	port   string
	server *http.Server
	hub    *Hub
	db     *store.Database
	cache  *cache.RedisCache
}

// NewServer creates a new WebSocket server
func NewServer(db *store.Database, redisCache *cache.RedisCache) *Server {
	return &Server{
		hub:   NewHub(),
		db:    db,
		cache: redisCache,
	}
}

// Start starts the WebSocket server and the Redis stream consumer
func (s *Server) Start(ctx context.Context, port string) error {
	s.port = port

	go s.hub.Run()
	go s.consumeProgressStream(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/import/progress", s.handleProgress)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}

	log.Printf("WebSocket server listening on :%s", port)
	return s.server.ListenAndServe()
}

// consumeProgressStream tails the import progress stream and broadcasts
// each record to connected clients.
func (s *Server) consumeProgressStream(ctx context.Context) {
	client := s.cache.Client()
	lastID := "$"

	for {
		if ctx.Err() != nil {
			return
		}

		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{publisher.ProgressStream, lastID},
			Block:   5 * time.Second,
			Count:   10,
		}).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			log.Printf("Progress stream read error: %v", err)
			time.Sleep(2 * time.Second)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				lastID = message.ID
				if data, ok := message.Values["data"].(string); ok {
					s.hub.Broadcast([]byte(data))
				}
			}
		}
	}
}

// handleProgress upgrades the connection and registers it with the hub
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status, degraded when the
// database is unreachable
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err != nil {
			status = "degraded"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "%s", "clients": %d}`, status, s.hub.ClientCount())
}

// BroadcastProgress sends an already-encoded progress record to all
// connected clients
func (s *Server) BroadcastProgress(data []byte) {
	s.hub.Broadcast(data)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
