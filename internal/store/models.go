package store

import (
	"database/sql"
	"time"
)

// Event represents a single UFC event card.
// Identity is the (name, date) pair; location may arrive on a later sighting.
type Event struct {
	EventID   int            `json:"event_id" db:"event_id"`
	Name      string         `json:"event_name" db:"event_name"`
	Date      time.Time      `json:"event_date" db:"event_date"`
	Location  sql.NullString `json:"event_location,omitempty" db:"event_location"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// Fighter represents a fighter profile.
// IdentityKey is the ufcstats profile URL when one was scraped, otherwise the
// display name. It is set on first sighting and never altered afterwards.
type Fighter struct {
	FighterID   int            `json:"fighter_id" db:"fighter_id"`
	IdentityKey string         `json:"identity_key" db:"identity_key"`
	Name        string         `json:"name" db:"name"`
	Nickname    sql.NullString `json:"nickname,omitempty" db:"nickname"`
	ProfileURL  sql.NullString `json:"profile_url,omitempty" db:"profile_url"`

	// Physical attributes are kept as the site renders them (`5' 11"`,
	// `155 lbs.`, `72"`) rather than parsed numerics.
	Height sql.NullString `json:"height,omitempty" db:"height"`
	Weight sql.NullString `json:"weight,omitempty" db:"weight"`
	Reach  sql.NullString `json:"reach,omitempty" db:"reach"`
	Stance sql.NullString `json:"stance,omitempty" db:"stance"`

	// DOB holds "2006-01-02" when the source date parsed, or the raw scraped
	// text when it did not.
	DOB sql.NullString `json:"dob,omitempty" db:"dob"`

	// Career rate statistics.
	SLpM   sql.NullFloat64 `json:"slpm,omitempty" db:"slpm"`
	StrAcc sql.NullFloat64 `json:"str_acc,omitempty" db:"str_acc"`
	SApM   sql.NullFloat64 `json:"sapm,omitempty" db:"sapm"`
	StrDef sql.NullFloat64 `json:"str_def,omitempty" db:"str_def"`
	TDAvg  sql.NullFloat64 `json:"td_avg,omitempty" db:"td_avg"`
	TDAcc  sql.NullFloat64 `json:"td_acc,omitempty" db:"td_acc"`
	TDDef  sql.NullFloat64 `json:"td_def,omitempty" db:"td_def"`
	SubAvg sql.NullFloat64 `json:"sub_avg,omitempty" db:"sub_avg"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Fight is one participant's view of a bout. A bout always produces two
// Fight rows, one per fighter, each carrying that fighter's counted stats
// and a reference to the opponent. Rows are immutable once inserted.
type Fight struct {
	FightID    int           `json:"fight_id" db:"fight_id"`
	EventID    int           `json:"event_id" db:"event_id"`
	FighterID  int           `json:"fighter_id" db:"fighter_id"`
	OpponentID sql.NullInt32 `json:"opponent_id,omitempty" db:"opponent_id"`

	WeightClass sql.NullString `json:"weight_class,omitempty" db:"weight_class"`

	// Summary counts for this participant.
	KD     int `json:"kd" db:"kd"`
	SigStr int `json:"sig_str" db:"sig_str"`
	TD     int `json:"td" db:"td"`
	SubAtt int `json:"sub_att" db:"sub_att"`

	Result       sql.NullString `json:"result,omitempty" db:"result"`
	Method       sql.NullString `json:"method,omitempty" db:"method"`
	MethodDetail sql.NullString `json:"method_detail,omitempty" db:"method_detail"`
	Round        sql.NullInt32  `json:"round,omitempty" db:"round"`
	Time         sql.NullString `json:"time,omitempty" db:"time"`
	DetailURL    sql.NullString `json:"detail_url,omitempty" db:"detail_url"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RoundStat holds one fighter's counted stats for a single round of a fight.
// Append-only; never updated after insertion.
type RoundStat struct {
	StatID      int `json:"stat_id" db:"stat_id"`
	FightID     int `json:"fight_id" db:"fight_id"`
	RoundNumber int `json:"round_number" db:"round_number"`

	KD        int            `json:"kd" db:"kd"`
	SigStr    int            `json:"sig_str" db:"sig_str"`
	SigStrPct sql.NullString `json:"sig_str_pct,omitempty" db:"sig_str_pct"`
	TotalStr  int            `json:"total_str" db:"total_str"`
	TD        int            `json:"td" db:"td"`
	TDPct     sql.NullString `json:"td_pct,omitempty" db:"td_pct"`
	SubAtt    int            `json:"sub_att" db:"sub_att"`
	Rev       int            `json:"rev" db:"rev"`
	Ctrl      sql.NullString `json:"ctrl,omitempty" db:"ctrl"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FighterHistory is one row of a fighter's career record as the fighter
// page renders it. Values stay raw text; the history is a snapshot of the
// source table, not normalized bout data, and covers fights from events
// that were never imported. Replaced wholesale on each profile scrape.
type FighterHistory struct {
	HistoryID int `json:"history_id" db:"history_id"`
	FighterID int `json:"fighter_id" db:"fighter_id"`

	OpponentName sql.NullString `json:"opponent_name,omitempty" db:"opponent_name"`
	OpponentURL  sql.NullString `json:"opponent_url,omitempty" db:"opponent_url"`
	Result       sql.NullString `json:"result,omitempty" db:"result"`
	KD           sql.NullString `json:"kd,omitempty" db:"kd"`
	Str          sql.NullString `json:"str,omitempty" db:"str"`
	TD           sql.NullString `json:"td,omitempty" db:"td"`
	Sub          sql.NullString `json:"sub,omitempty" db:"sub"`
	Method       sql.NullString `json:"method,omitempty" db:"method"`
	Round        sql.NullString `json:"round,omitempty" db:"round"`
	Time         sql.NullString `json:"time,omitempty" db:"time"`
	EventName    sql.NullString `json:"event_name,omitempty" db:"event_name"`
	EventURL     sql.NullString `json:"event_url,omitempty" db:"event_url"`
	EventDate    sql.NullString `json:"event_date,omitempty" db:"event_date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Result values stored on Fight rows.
const (
	ResultWin       = "Win"
	ResultLoss      = "Loss"
	ResultDraw      = "Draw"
	ResultNoContest = "No Contest"
)
