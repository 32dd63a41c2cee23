package ingest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderkazanski/ufc-database/internal/ingest/parse"
	"github.com/alexanderkazanski/ufc-database/internal/store"
)

// Store is the persistence surface the importer writes through.
// Implemented by the postgres repositories and by in-memory fakes in tests.
type Store interface {
	UpsertEvent(ctx context.Context, event *store.Event) (bool, error)
	UpsertFighter(ctx context.Context, fighter *store.Fighter) (bool, error)
	InsertFightPair(ctx context.Context, first, second *store.Fight) error
	InsertRoundStat(ctx context.Context, stat *store.RoundStat) error
}

// Counts reports what a batch import wrote. Skipped covers whole rows that
// could not be processed plus round blocks whose fight row never landed.
type Counts struct {
	Events   int `json:"events"`
	Fighters int `json:"fighters"`
	Fights   int `json:"fights"`
	Rounds   int `json:"rounds"`
	Skipped  int `json:"skipped"`
}

// Importer drives rows through event, fighter, fight, and round resolution.
// Processing is strictly sequential: each row completes before the next
// begins.
type Importer struct {
	store       Store
	defaultDate time.Time
	progress    func(Counts)
}

func NewImporter(s Store, defaultDate time.Time) *Importer {
	return &Importer{store: s, defaultDate: defaultDate}
}

// OnProgress registers a callback invoked after each row with the running
// totals.
func (im *Importer) OnProgress(fn func(Counts)) {
	im.progress = fn
}

// ImportRows processes rows in order. Row-level problems are counted and
// logged, never fatal; only unrecoverable storage errors abort the batch,
// and the counts accumulated so far are returned alongside the error.
func (im *Importer) ImportRows(ctx context.Context, rows []*Row) (Counts, error) {
	var counts Counts
	for i, row := range rows {
		if err := im.importRow(ctx, row, &counts); err != nil {
			return counts, fmt.Errorf("row %d: %w", i+1, err)
		}
		if im.progress != nil {
			im.progress(counts)
		}
	}
	return counts, nil
}

// ImportCSV reads a wide-format CSV export and imports every record.
func (im *Importer) ImportCSV(ctx context.Context, src io.Reader) (Counts, error) {
	rows, err := ReadCSV(src)
	if err != nil {
		return Counts{}, err
	}
	return im.ImportRows(ctx, rows)
}

// importRow resolves one row end to end: event, both fighters, the fight
// pair, then round blocks. Returns an error only for fatal storage
// failures.
func (im *Importer) importRow(ctx context.Context, row *Row, counts *Counts) error {
	eventName := row.Get("Event Name")
	if parse.IsPlaceholder(eventName) {
		log.Printf("⊘ Skipping row: no event name")
		counts.Skipped++
		return nil
	}

	event := BuildEvent(eventName, row.Get("Event Date"), row.Get("Event Location"), im.defaultDate)
	inserted, err := im.store.UpsertEvent(ctx, event)
	if err != nil {
		if isFatal(err) {
			return err
		}
		log.Printf("⊘ Skipping row: event %q: %v", event.Name, err)
		counts.Skipped++
		return nil
	}
	if inserted {
		counts.Events++
	}

	fighter1 := BuildFighter(fighterInput(row, 1))
	fighter2 := BuildFighter(fighterInput(row, 2))
	if fighter1.IdentityKey == "" || fighter2.IdentityKey == "" {
		log.Printf("⊘ Skipping row: event %q: missing fighter identity", event.Name)
		counts.Skipped++
		return nil
	}

	for _, fighter := range []*store.Fighter{fighter1, fighter2} {
		inserted, err := im.store.UpsertFighter(ctx, fighter)
		if err != nil {
			if isFatal(err) {
				return err
			}
			log.Printf("⊘ Skipping row: fighter %q: %v", fighter.Name, err)
			counts.Skipped++
			return nil
		}
		if inserted {
			counts.Fighters++
		}
	}

	fight1 := buildFight(row, 1, event.EventID, fighter1.FighterID, fighter2.FighterID)
	fight2 := buildFight(row, 2, event.EventID, fighter2.FighterID, fighter1.FighterID)

	if err := im.store.InsertFightPair(ctx, fight1, fight2); err != nil {
		if isFatal(err) {
			return err
		}
		log.Printf("⊘ Fight pair %q vs %q: %v", fighter1.Name, fighter2.Name, err)
	}
	fightIDBySlot := map[int]int{}
	for slot, fight := range map[int]*store.Fight{1: fight1, 2: fight2} {
		if fight.FightID != 0 {
			fightIDBySlot[slot] = fight.FightID
			counts.Fights++
		}
	}

	for _, draft := range ReconstructRounds(row) {
		fightID, ok := fightIDBySlot[draft.Slot]
		if !ok {
			log.Printf("⊘ Round %d block for fighter slot %d has no fight row", draft.Round, draft.Slot)
			counts.Skipped++
			continue
		}
		stat := draft.Stat
		stat.FightID = fightID
		if err := im.store.InsertRoundStat(ctx, &stat); err != nil {
			if isFatal(err) {
				return err
			}
			log.Printf("⊘ Round %d stat for fight %d: %v", draft.Round, fightID, err)
			counts.Skipped++
			continue
		}
		counts.Rounds++
	}

	return nil
}

// fighterInput pulls one fighter's columns out of the wide row. Both the
// export's original headers ("Fighter 1", "Fighter 1 Career_SLpM") and the
// shorter variants ("Fighter 1 Name", "Fighter 1 SLpM") are accepted.
func fighterInput(row *Row, slot int) FighterInput {
	p := "Fighter " + strconv.Itoa(slot)
	return FighterInput{
		Name:       firstValue(row, p+" Name", p),
		Nickname:   row.Get(p + " Nickname"),
		ProfileURL: row.Get(p + " URL"),
		Height:     row.Get(p + " Height"),
		Weight:     row.Get(p + " Weight"),
		Reach:      row.Get(p + " Reach"),
		Stance:     firstValue(row, p+" STANCE", p+" Stance"),
		DOB:        row.Get(p + " DOB"),
		SLpM:       firstValue(row, p+" Career_SLpM", p+" SLpM"),
		StrAcc:     firstValue(row, p+" Career_Str. Acc.", p+" Str. Acc."),
		SApM:       firstValue(row, p+" Career_SApM", p+" SApM"),
		StrDef:     firstValue(row, p+" Career_Str. Def", p+" Str. Def"),
		TDAvg:      firstValue(row, p+" Career_TD Avg.", p+" TD Avg."),
		TDAcc:      firstValue(row, p+" Career_TD Acc.", p+" TD Acc."),
		TDDef:      firstValue(row, p+" Career_TD Def.", p+" TD Def."),
		SubAvg:     firstValue(row, p+" Career_Sub. Avg.", p+" Sub. Avg."),
	}
}

// buildFight assembles one participant's fight row from the shared and
// per-fighter columns. Opponent and event ids must already be resolved.
func buildFight(row *Row, slot int, eventID, fighterID, opponentID int) *store.Fight {
	p := "Fighter " + strconv.Itoa(slot)
	sigStr, _ := parse.AsLandedAttempted(row.Get(p + " Str"))
	td, _ := parse.AsLandedAttempted(row.Get(p + " TD"))
	method, detail := splitMethod(row.Get("Method"))

	fight := &store.Fight{
		EventID:      eventID,
		FighterID:    fighterID,
		OpponentID:   sql.NullInt32{Int32: int32(opponentID), Valid: opponentID != 0},
		WeightClass:  parse.AsCleanString(row.Get("Weight Class")),
		KD:           parse.AsInt(row.Get(p+" KD"), 0),
		SigStr:       sigStr,
		TD:           td,
		SubAtt:       parse.AsInt(row.Get(p+" Sub"), 0),
		Result:       mapResult(row.Get(p + " Result")),
		Method:       method,
		MethodDetail: detail,
		Time:         parse.AsCleanString(row.Get("Time")),
		DetailURL:    parse.AsCleanString(row.Get("Fight Detail URL")),
	}
	if round := parse.AsInt(row.Get("Round"), 0); round > 0 {
		fight.Round = sql.NullInt32{Int32: int32(round), Valid: true}
	}
	return fight
}

// splitMethod separates "KO/TKO\nPunches" style cells into the method and
// its detail line.
func splitMethod(v string) (sql.NullString, sql.NullString) {
	method := parse.AsCleanString(v)
	if !method.Valid {
		return sql.NullString{}, sql.NullString{}
	}
	if head, tail, found := strings.Cut(method.String, "\n"); found {
		return parse.AsCleanString(head), parse.AsCleanString(tail)
	}
	return method, sql.NullString{}
}

// mapResult expands the scraped result flags. Already-expanded values pass
// through unchanged.
func mapResult(v string) sql.NullString {
	s := parse.AsCleanString(v)
	if !s.Valid {
		return s
	}
	switch strings.ToUpper(s.String) {
	case "W":
		return sql.NullString{String: store.ResultWin, Valid: true}
	case "L":
		return sql.NullString{String: store.ResultLoss, Valid: true}
	case "D":
		return sql.NullString{String: store.ResultDraw, Valid: true}
	case "NC":
		return sql.NullString{String: store.ResultNoContest, Valid: true}
	}
	return s
}

func firstValue(row *Row, columns ...string) string {
	for _, col := range columns {
		if row.Has(col) && row.Get(col) != "" {
			return row.Get(col)
		}
	}
	return ""
}

// isFatal reports whether a storage error should abort the whole batch
// rather than skip the row.
func isFatal(err error) bool {
	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
