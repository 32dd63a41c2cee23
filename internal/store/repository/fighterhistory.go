package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderkazanski/ufc-database/internal/store"
)

// FighterHistoryRepository handles fighter career-record data access
type FighterHistoryRepository struct {
	db *store.Database
}

// NewFighterHistoryRepository creates a new fighter history repository
func NewFighterHistoryRepository(db *store.Database) *FighterHistoryRepository {
	return &FighterHistoryRepository{db: db}
}

const historyColumns = `history_id, fighter_id, opponent_name, opponent_url, result,
	kd, str, td, sub, method, round, time,
	event_name, event_url, event_date, created_at`

// ReplaceByIdentityKey swaps the stored career record of one fighter for the
// freshly scraped one. The fighter page always renders the full history, so
// a partial merge would only preserve stale rows. No-op when the identity
// key is unknown; the fighter row is upserted by the import that precedes
// the history write.
func (r *FighterHistoryRepository) ReplaceByIdentityKey(ctx context.Context, identityKey string, entries []*store.FighterHistory) error {
	var fighterID int
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT fighter_id FROM fighters WHERE identity_key = $1`,
		identityKey,
	).Scan(&fighterID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("fighter not found for history: %s", identityKey)
	}
	if err != nil {
		return fmt.Errorf("looking up fighter for history: %w", err)
	}

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting history transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM fighter_history WHERE fighter_id = $1`, fighterID,
	); err != nil {
		return fmt.Errorf("clearing fighter history: %w", err)
	}

	query := `
		INSERT INTO fighter_history (fighter_id, opponent_name, opponent_url, result,
			kd, str, td, sub, method, round, time,
			event_name, event_url, event_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING history_id
	`

	for _, entry := range entries {
		entry.FighterID = fighterID
		err := tx.QueryRowContext(ctx, query,
			entry.FighterID, entry.OpponentName, entry.OpponentURL, entry.Result,
			entry.KD, entry.Str, entry.TD, entry.Sub,
			entry.Method, entry.Round, entry.Time,
			entry.EventName, entry.EventURL, entry.EventDate,
		).Scan(&entry.HistoryID)
		if err != nil {
			return fmt.Errorf("inserting history row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing fighter history: %w", err)
	}

	return nil
}

// GetByFighterID returns a fighter's stored career record in page order,
// most recent bout first
func (r *FighterHistoryRepository) GetByFighterID(ctx context.Context, fighterID int) ([]*store.FighterHistory, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM fighter_history
		WHERE fighter_id = $1
		ORDER BY history_id ASC
	`, historyColumns)

	rows, err := r.db.DB().QueryContext(ctx, query, fighterID)
	if err != nil {
		return nil, fmt.Errorf("querying fighter history: %w", err)
	}
	defer rows.Close()

	return scanHistory(rows)
}

// GetByFighterName returns the career record of the fighter with the given
// display name
func (r *FighterHistoryRepository) GetByFighterName(ctx context.Context, name string) ([]*store.FighterHistory, error) {
	query := `
		SELECT h.history_id, h.fighter_id, h.opponent_name, h.opponent_url, h.result,
			h.kd, h.str, h.td, h.sub, h.method, h.round, h.time,
			h.event_name, h.event_url, h.event_date, h.created_at
		FROM fighter_history h
		JOIN fighters f ON f.fighter_id = h.fighter_id
		WHERE f.name = $1
		ORDER BY h.history_id ASC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("querying fighter history: %w", err)
	}
	defer rows.Close()

	return scanHistory(rows)
}

func scanHistory(rows *sql.Rows) ([]*store.FighterHistory, error) {
	var entries []*store.FighterHistory
	for rows.Next() {
		entry := &store.FighterHistory{}
		err := rows.Scan(
			&entry.HistoryID, &entry.FighterID,
			&entry.OpponentName, &entry.OpponentURL, &entry.Result,
			&entry.KD, &entry.Str, &entry.TD, &entry.Sub,
			&entry.Method, &entry.Round, &entry.Time,
			&entry.EventName, &entry.EventURL, &entry.EventDate,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
