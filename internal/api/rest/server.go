package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/alexanderkazanski/ufc-database/internal/cache"
	"github.com/alexanderkazanski/ufc-database/internal/store"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server. The cache may be nil, in which
// case lookups always hit the database.
func NewServer(port string, db *store.Database, redisCache *cache.RedisCache) *Server {
	handler := NewHandler(db, redisCache)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Fighters
	api.HandleFunc("/fighters/search", handler.SearchFighters).Methods("GET")
	api.HandleFunc("/fighters/{name}/stats", handler.GetFighterStats).Methods("GET")
	api.HandleFunc("/fighters/{name}/history", handler.GetFighterHistory).Methods("GET")
	api.HandleFunc("/fighters/{name}/record", handler.GetFighterRecord).Methods("GET")

	// Events
	api.HandleFunc("/events", handler.GetEventsByDateRange).Methods("GET")
	api.HandleFunc("/events/{eventID}", handler.GetEvent).Methods("GET")
	api.HandleFunc("/events/{eventID}/fights", handler.GetEventFights).Methods("GET")

	// Fights
	api.HandleFunc("/fights/{fightID}/rounds", handler.GetFightRounds).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
