package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/alexanderkazanski/ufc-database/internal/cache"
	"github.com/alexanderkazanski/ufc-database/internal/store"
	"github.com/alexanderkazanski/ufc-database/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db          *store.Database
	cache       *cache.RedisCache
	eventRepo   *repository.EventRepository
	fighterRepo *repository.FighterRepository
	fightRepo   *repository.FightRepository
	roundRepo   *repository.RoundStatRepository
	historyRepo *repository.FighterHistoryRepository
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, redisCache *cache.RedisCache) *Handler {
	return &Handler{
		db:          db,
		cache:       redisCache,
		eventRepo:   repository.NewEventRepository(db),
		fighterRepo: repository.NewFighterRepository(db),
		fightRepo:   repository.NewFightRepository(db),
		roundRepo:   repository.NewRoundStatRepository(db),
		historyRepo: repository.NewFighterHistoryRepository(db),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "ufc-database",
	})
}

// SearchFighters returns fighters whose name matches the query
func (h *Handler) SearchFighters(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameter 'q'", nil)
		return
	}

	fighters, err := h.fighterRepo.Search(r.Context(), query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search fighters", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"fighters": fighters,
		"count":    len(fighters),
	})
}

// GetFighterStats returns a fighter's profile and career statistics
func (h *Handler) GetFighterStats(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if h.serveCached(w, r, cache.FighterStatsKey(name)) {
		return
	}

	fighter, err := h.fighterRepo.GetByName(r.Context(), name)
	if err != nil {
		respondError(w, http.StatusNotFound, "Fighter not found", err)
		return
	}

	h.respondAndCache(w, r, cache.FighterStatsKey(name), fighter)
}

// GetFighterHistory returns a fighter's bouts, most recent event first
func (h *Handler) GetFighterHistory(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if h.serveCached(w, r, cache.FighterHistoryKey(name)) {
		return
	}

	history, err := h.fightRepo.HistoryByFighterName(r.Context(), name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch fight history", err)
		return
	}

	h.respondAndCache(w, r, cache.FighterHistoryKey(name), map[string]interface{}{
		"fighter": name,
		"fights":  history,
		"count":   len(history),
	})
}

// GetFighterRecord returns a fighter's scraped career table, covering
// bouts from events that were never imported
func (h *Handler) GetFighterRecord(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if h.serveCached(w, r, cache.FighterRecordKey(name)) {
		return
	}

	record, err := h.historyRepo.GetByFighterName(r.Context(), name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch fighter record", err)
		return
	}

	h.respondAndCache(w, r, cache.FighterRecordKey(name), map[string]interface{}{
		"fighter": name,
		"record":  record,
		"count":   len(record),
	})
}

// GetEventsByDateRange returns events between ?from and ?to (YYYY-MM-DD)
func (h *Handler) GetEventsByDateRange(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r, "from", time.Now().AddDate(-1, 0, 0))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'from' date (use YYYY-MM-DD)", err)
		return
	}
	to, err := parseDateParam(r, "to", time.Now())
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'to' date (use YYYY-MM-DD)", err)
		return
	}

	events, err := h.eventRepo.GetByDateRange(r.Context(), from, to)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch events", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// GetEvent returns a single event by id
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["eventID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event id", err)
		return
	}

	event, err := h.eventRepo.GetByID(r.Context(), eventID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Event not found", err)
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// GetEventFights returns the fight rows of one event
func (h *Handler) GetEventFights(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["eventID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event id", err)
		return
	}

	fights, err := h.fightRepo.GetByEventID(r.Context(), eventID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch fights", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"fights": fights,
		"count":  len(fights),
	})
}

// GetFightRounds returns round stats for a fight, round 1 first
func (h *Handler) GetFightRounds(w http.ResponseWriter, r *http.Request) {
	fightID, err := strconv.Atoi(mux.Vars(r)["fightID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid fight id", err)
		return
	}

	rounds, err := h.roundRepo.GetByFightID(r.Context(), fightID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch round stats", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"fight_id": fightID,
		"rounds":   rounds,
		"count":    len(rounds),
	})
}

// serveCached writes a cached response body if one exists.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if h.cache == nil {
		return false
	}
	body, err := h.cache.Get(r.Context(), key)
	if err != nil {
		// Miss or cache trouble, either way fall through to the database.
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "HIT")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
	return true
}

// respondAndCache writes the response and stores the encoded body.
func (h *Handler) respondAndCache(w http.ResponseWriter, r *http.Request, key string, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to encode response", err)
		return
	}
	if h.cache != nil {
		h.cache.Set(r.Context(), key, string(body), cache.DefaultTTL)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func parseDateParam(r *http.Request, name string, def time.Time) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return def, nil
	}
	return time.Parse("2006-01-02", value)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
