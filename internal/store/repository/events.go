package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderkazanski/ufc-database/internal/store"
)

// EventRepository handles event data access
type EventRepository struct {
	db *store.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *store.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Upsert inserts the event if the (name, date) pair is unseen and otherwise
// fills a previously missing location. The returned bool reports whether a
// new row was inserted. Existing non-null locations are never overwritten.
func (r *EventRepository) Upsert(ctx context.Context, event *store.Event) (bool, error) {
	var (
		id       int
		location sql.NullString
	)
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT event_id, event_location FROM events WHERE event_name = $1 AND event_date = $2`,
		event.Name, event.Date,
	).Scan(&id, &location)

	if err == sql.ErrNoRows {
		err = r.db.DB().QueryRowContext(ctx,
			`INSERT INTO events (event_name, event_date, event_location)
			 VALUES ($1, $2, $3)
			 RETURNING event_id`,
			event.Name, event.Date, event.Location,
		).Scan(&event.EventID)
		if err != nil {
			return false, fmt.Errorf("inserting event: %w", err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying event: %w", err)
	}

	event.EventID = id
	if !location.Valid && event.Location.Valid {
		_, err = r.db.DB().ExecContext(ctx,
			`UPDATE events SET event_location = $2, updated_at = NOW() WHERE event_id = $1`,
			id, event.Location,
		)
		if err != nil {
			return false, fmt.Errorf("updating event location: %w", err)
		}
	}

	return false, nil
}

// GetByID finds an event by ID
func (r *EventRepository) GetByID(ctx context.Context, eventID int) (*store.Event, error) {
	query := `
		SELECT event_id, event_name, event_date, event_location, created_at, updated_at
		FROM events
		WHERE event_id = $1
	`

	event := &store.Event{}
	err := r.db.DB().QueryRowContext(ctx, query, eventID).Scan(
		&event.EventID, &event.Name, &event.Date, &event.Location,
		&event.CreatedAt, &event.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event not found: %d", eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}

	return event, nil
}

// GetByDateRange returns events within a date range, newest first
func (r *EventRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*store.Event, error) {
	query := `
		SELECT event_id, event_name, event_date, event_location, created_at, updated_at
		FROM events
		WHERE event_date >= $1 AND event_date <= $2
		ORDER BY event_date DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []*store.Event
	for rows.Next() {
		event := &store.Event{}
		err := rows.Scan(
			&event.EventID, &event.Name, &event.Date, &event.Location,
			&event.CreatedAt, &event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
