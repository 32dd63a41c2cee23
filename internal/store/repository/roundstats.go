package repository

import (
	"context"
	"fmt"

	"github.com/alexanderkazanski/ufc-database/internal/store"
)

// RoundStatRepository handles round-by-round stat data access
type RoundStatRepository struct {
	db *store.Database
}

// NewRoundStatRepository creates a new round stat repository
func NewRoundStatRepository(db *store.Database) *RoundStatRepository {
	return &RoundStatRepository{db: db}
}

// Insert appends one round record. Round stats are never updated in place.
func (r *RoundStatRepository) Insert(ctx context.Context, stat *store.RoundStat) error {
	query := `
		INSERT INTO round_stats (fight_id, round_number,
			kd, sig_str, sig_str_pct, total_str, td, td_pct, sub_att, rev, ctrl)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING stat_id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		stat.FightID, stat.RoundNumber,
		stat.KD, stat.SigStr, stat.SigStrPct, stat.TotalStr,
		stat.TD, stat.TDPct, stat.SubAtt, stat.Rev, stat.Ctrl,
	).Scan(&stat.StatID)

	if err != nil {
		return fmt.Errorf("inserting round stat: %w", err)
	}

	return nil
}

// GetByFightID returns all round records for a fight, earliest round first
func (r *RoundStatRepository) GetByFightID(ctx context.Context, fightID int) ([]*store.RoundStat, error) {
	query := `
		SELECT stat_id, fight_id, round_number,
			kd, sig_str, sig_str_pct, total_str, td, td_pct, sub_att, rev, ctrl, created_at
		FROM round_stats
		WHERE fight_id = $1
		ORDER BY round_number ASC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, fightID)
	if err != nil {
		return nil, fmt.Errorf("querying round stats: %w", err)
	}
	defer rows.Close()

	var stats []*store.RoundStat
	for rows.Next() {
		stat := &store.RoundStat{}
		err := rows.Scan(
			&stat.StatID, &stat.FightID, &stat.RoundNumber,
			&stat.KD, &stat.SigStr, &stat.SigStrPct, &stat.TotalStr,
			&stat.TD, &stat.TDPct, &stat.SubAtt, &stat.Rev, &stat.Ctrl,
			&stat.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning round stat: %w", err)
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}
