package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderkazanski/ufc-database/internal/store"
)

// FightRepository handles fight data access
type FightRepository struct {
	db *store.Database
}

// NewFightRepository creates a new fight repository
func NewFightRepository(db *store.Database) *FightRepository {
	return &FightRepository{db: db}
}

// Insert persists a single participant-facing fight row
func (r *FightRepository) Insert(ctx context.Context, fight *store.Fight) error {
	query := `
		INSERT INTO fights (event_id, fighter_id, opponent_id, weight_class,
			kd, sig_str, td, sub_att,
			result, method, method_detail, round, time, detail_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING fight_id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		fight.EventID, fight.FighterID, fight.OpponentID, fight.WeightClass,
		fight.KD, fight.SigStr, fight.TD, fight.SubAtt,
		fight.Result, fight.Method, fight.MethodDetail, fight.Round, fight.Time, fight.DetailURL,
	).Scan(&fight.FightID)

	if err != nil {
		return fmt.Errorf("inserting fight: %w", err)
	}

	return nil
}

// InsertPair persists both participant rows of a bout. Both inserts are
// always attempted; if the first fails the second still runs, so a partial
// pair is possible and the returned error reports which sides failed.
// There is no dedup key on fights, so re-importing the same bout inserts a
// fresh pair.
func (r *FightRepository) InsertPair(ctx context.Context, first, second *store.Fight) error {
	var firstErr, secondErr error

	if firstErr = r.Insert(ctx, first); firstErr != nil {
		firstErr = fmt.Errorf("fighter 1 row: %w", firstErr)
	}
	if secondErr = r.Insert(ctx, second); secondErr != nil {
		secondErr = fmt.Errorf("fighter 2 row: %w", secondErr)
	}

	if firstErr != nil && secondErr != nil {
		return fmt.Errorf("inserting fight pair: %v; %v", firstErr, secondErr)
	}
	if firstErr != nil {
		return fmt.Errorf("inserting fight pair: %w", firstErr)
	}
	if secondErr != nil {
		return fmt.Errorf("inserting fight pair: %w", secondErr)
	}

	return nil
}

// FightHistoryEntry is a fight row joined with its event and opponent context
type FightHistoryEntry struct {
	*store.Fight
	EventName    string         `json:"event_name"`
	EventDate    string         `json:"event_date"`
	OpponentName sql.NullString `json:"opponent_name,omitempty"`
}

// HistoryByFighterName returns all fight rows for a fighter, newest event first
func (r *FightRepository) HistoryByFighterName(ctx context.Context, name string) ([]*FightHistoryEntry, error) {
	query := `
		SELECT f.fight_id, f.event_id, f.fighter_id, f.opponent_id, f.weight_class,
			f.kd, f.sig_str, f.td, f.sub_att,
			f.result, f.method, f.method_detail, f.round, f.time, f.detail_url, f.created_at,
			e.event_name, e.event_date,
			opp.name AS opponent_name
		FROM fights f
		JOIN fighters ftr ON f.fighter_id = ftr.fighter_id
		JOIN events e ON f.event_id = e.event_id
		LEFT JOIN fighters opp ON f.opponent_id = opp.fighter_id
		WHERE ftr.name = $1
		ORDER BY e.event_date DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("querying fight history: %w", err)
	}
	defer rows.Close()

	var history []*FightHistoryEntry
	for rows.Next() {
		fight := &store.Fight{}
		entry := &FightHistoryEntry{Fight: fight}
		var eventDate sql.NullTime

		err := rows.Scan(
			&fight.FightID, &fight.EventID, &fight.FighterID, &fight.OpponentID, &fight.WeightClass,
			&fight.KD, &fight.SigStr, &fight.TD, &fight.SubAtt,
			&fight.Result, &fight.Method, &fight.MethodDetail, &fight.Round, &fight.Time,
			&fight.DetailURL, &fight.CreatedAt,
			&entry.EventName, &eventDate,
			&entry.OpponentName,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning fight history: %w", err)
		}

		if eventDate.Valid {
			entry.EventDate = eventDate.Time.Format("2006-01-02")
		}

		history = append(history, entry)
	}

	return history, rows.Err()
}

// GetByEventID returns all fight rows for an event
func (r *FightRepository) GetByEventID(ctx context.Context, eventID int) ([]*store.Fight, error) {
	query := `
		SELECT fight_id, event_id, fighter_id, opponent_id, weight_class,
			kd, sig_str, td, sub_att,
			result, method, method_detail, round, time, detail_url, created_at
		FROM fights
		WHERE event_id = $1
		ORDER BY fight_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("querying fights: %w", err)
	}
	defer rows.Close()

	var fights []*store.Fight
	for rows.Next() {
		fight := &store.Fight{}
		err := rows.Scan(
			&fight.FightID, &fight.EventID, &fight.FighterID, &fight.OpponentID, &fight.WeightClass,
			&fight.KD, &fight.SigStr, &fight.TD, &fight.SubAtt,
			&fight.Result, &fight.Method, &fight.MethodDetail, &fight.Round, &fight.Time,
			&fight.DetailURL, &fight.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning fight: %w", err)
		}
		fights = append(fights, fight)
	}

	return fights, rows.Err()
}
