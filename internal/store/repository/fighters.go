package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderkazanski/ufc-database/internal/store"
)

// FighterRepository handles fighter data access
type FighterRepository struct {
	db *store.Database
}

// NewFighterRepository creates a new fighter repository
func NewFighterRepository(db *store.Database) *FighterRepository {
	return &FighterRepository{db: db}
}

// Upsert inserts the fighter on first sighting of its identity key, and
// otherwise coalesces the supplied values into the stored row: a supplied
// value fills a stored null, but never replaces a stored non-null value.
// The identity key itself is immutable. The returned bool reports whether
// a new row was inserted.
func (r *FighterRepository) Upsert(ctx context.Context, fighter *store.Fighter) (bool, error) {
	var id int
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT fighter_id FROM fighters WHERE identity_key = $1`,
		fighter.IdentityKey,
	).Scan(&id)

	if err == sql.ErrNoRows {
		query := `
			INSERT INTO fighters (identity_key, name, nickname, profile_url,
				height, weight, reach, stance, dob,
				slpm, str_acc, sapm, str_def, td_avg, td_acc, td_def, sub_avg)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			RETURNING fighter_id
		`
		err = r.db.DB().QueryRowContext(ctx, query,
			fighter.IdentityKey, fighter.Name, fighter.Nickname, fighter.ProfileURL,
			fighter.Height, fighter.Weight, fighter.Reach, fighter.Stance, fighter.DOB,
			fighter.SLpM, fighter.StrAcc, fighter.SApM, fighter.StrDef,
			fighter.TDAvg, fighter.TDAcc, fighter.TDDef, fighter.SubAvg,
		).Scan(&fighter.FighterID)
		if err != nil {
			return false, fmt.Errorf("inserting fighter: %w", err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying fighter: %w", err)
	}

	fighter.FighterID = id

	query := `
		UPDATE fighters SET
			nickname = COALESCE(nickname, $2),
			profile_url = COALESCE(profile_url, $3),
			height = COALESCE(height, $4),
			weight = COALESCE(weight, $5),
			reach = COALESCE(reach, $6),
			stance = COALESCE(stance, $7),
			dob = COALESCE(dob, $8),
			slpm = COALESCE(slpm, $9),
			str_acc = COALESCE(str_acc, $10),
			sapm = COALESCE(sapm, $11),
			str_def = COALESCE(str_def, $12),
			td_avg = COALESCE(td_avg, $13),
			td_acc = COALESCE(td_acc, $14),
			td_def = COALESCE(td_def, $15),
			sub_avg = COALESCE(sub_avg, $16),
			updated_at = NOW()
		WHERE fighter_id = $1
	`
	_, err = r.db.DB().ExecContext(ctx, query,
		id, fighter.Nickname, fighter.ProfileURL,
		fighter.Height, fighter.Weight, fighter.Reach, fighter.Stance, fighter.DOB,
		fighter.SLpM, fighter.StrAcc, fighter.SApM, fighter.StrDef,
		fighter.TDAvg, fighter.TDAcc, fighter.TDDef, fighter.SubAvg,
	)
	if err != nil {
		return false, fmt.Errorf("updating fighter: %w", err)
	}

	return false, nil
}

const fighterColumns = `fighter_id, identity_key, name, nickname, profile_url,
	height, weight, reach, stance, dob,
	slpm, str_acc, sapm, str_def, td_avg, td_acc, td_def, sub_avg,
	created_at, updated_at`

// GetByID finds a fighter by ID
func (r *FighterRepository) GetByID(ctx context.Context, fighterID int) (*store.Fighter, error) {
	query := `SELECT ` + fighterColumns + ` FROM fighters WHERE fighter_id = $1`

	fighter := &store.Fighter{}
	err := r.scanFighter(r.db.DB().QueryRowContext(ctx, query, fighterID), fighter)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("fighter not found: %d", fighterID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying fighter: %w", err)
	}

	return fighter, nil
}

// GetByName finds a fighter by exact display name
func (r *FighterRepository) GetByName(ctx context.Context, name string) (*store.Fighter, error) {
	query := `SELECT ` + fighterColumns + ` FROM fighters WHERE name = $1 LIMIT 1`

	fighter := &store.Fighter{}
	err := r.scanFighter(r.db.DB().QueryRowContext(ctx, query, name), fighter)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("fighter not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("querying fighter: %w", err)
	}

	return fighter, nil
}

// Search returns fighters matching a name fragment (case-insensitive)
func (r *FighterRepository) Search(ctx context.Context, name string) ([]*store.Fighter, error) {
	query := `SELECT ` + fighterColumns + ` FROM fighters
		WHERE name ILIKE $1 OR nickname ILIKE $1
		ORDER BY name
		LIMIT 50`

	rows, err := r.db.DB().QueryContext(ctx, query, "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("querying fighters: %w", err)
	}
	defer rows.Close()

	var fighters []*store.Fighter
	for rows.Next() {
		fighter := &store.Fighter{}
		if err := r.scanFighter(rows, fighter); err != nil {
			return nil, fmt.Errorf("scanning fighter: %w", err)
		}
		fighters = append(fighters, fighter)
	}

	return fighters, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *FighterRepository) scanFighter(row rowScanner, fighter *store.Fighter) error {
	return row.Scan(
		&fighter.FighterID, &fighter.IdentityKey, &fighter.Name, &fighter.Nickname, &fighter.ProfileURL,
		&fighter.Height, &fighter.Weight, &fighter.Reach, &fighter.Stance, &fighter.DOB,
		&fighter.SLpM, &fighter.StrAcc, &fighter.SApM, &fighter.StrDef,
		&fighter.TDAvg, &fighter.TDAcc, &fighter.TDDef, &fighter.SubAvg,
		&fighter.CreatedAt, &fighter.UpdatedAt,
	)
}
