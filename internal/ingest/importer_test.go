package ingest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderkazanski/ufc-database/internal/store"
)

// fakeStore mirrors the repository contracts in memory: events keyed by
// (name, date), fighters keyed by identity key with coalesce updates,
// fights and round stats append-only.
type fakeStore struct {
	events   []*store.Event
	fighters []*store.Fighter
	fights   []*store.Fight
	rounds   []*store.RoundStat

	eventErr      error
	failFirstRow  bool
	nextFightID   int
	nextEventID   int
	nextFighterID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) UpsertEvent(_ context.Context, event *store.Event) (bool, error) {
	if s.eventErr != nil {
		return false, s.eventErr
	}
	for _, existing := range s.events {
		if existing.Name == event.Name && existing.Date.Equal(event.Date) {
			if !existing.Location.Valid && event.Location.Valid {
				existing.Location = event.Location
			}
			event.EventID = existing.EventID
			return false, nil
		}
	}
	s.nextEventID++
	event.EventID = s.nextEventID
	stored := *event
	s.events = append(s.events, &stored)
	return true, nil
}

func (s *fakeStore) UpsertFighter(_ context.Context, fighter *store.Fighter) (bool, error) {
	for _, existing := range s.fighters {
		if existing.IdentityKey == fighter.IdentityKey {
			coalesceFighter(existing, fighter)
			fighter.FighterID = existing.FighterID
			return false, nil
		}
	}
	s.nextFighterID++
	fighter.FighterID = s.nextFighterID
	stored := *fighter
	s.fighters = append(s.fighters, &stored)
	return true, nil
}

func (s *fakeStore) InsertFightPair(_ context.Context, first, second *store.Fight) error {
	var firstErr error
	if s.failFirstRow {
		firstErr = fmt.Errorf("fighter 1 row: duplicate key")
	} else {
		s.nextFightID++
		first.FightID = s.nextFightID
		stored := *first
		s.fights = append(s.fights, &stored)
	}
	s.nextFightID++
	second.FightID = s.nextFightID
	stored := *second
	s.fights = append(s.fights, &stored)
	return firstErr
}

func (s *fakeStore) InsertRoundStat(_ context.Context, stat *store.RoundStat) error {
	stored := *stat
	stored.StatID = len(s.rounds) + 1
	s.rounds = append(s.rounds, &stored)
	return nil
}

func coalesceFighter(existing, incoming *store.Fighter) {
	strs := []struct{ dst, src *sql.NullString }{
		{&existing.Nickname, &incoming.Nickname},
		{&existing.ProfileURL, &incoming.ProfileURL},
		{&existing.Height, &incoming.Height},
		{&existing.Weight, &incoming.Weight},
		{&existing.Reach, &incoming.Reach},
		{&existing.Stance, &incoming.Stance},
		{&existing.DOB, &incoming.DOB},
	}
	for _, c := range strs {
		if !c.dst.Valid && c.src.Valid {
			*c.dst = *c.src
		}
	}
	floats := []struct{ dst, src *sql.NullFloat64 }{
		{&existing.SLpM, &incoming.SLpM},
		{&existing.StrAcc, &incoming.StrAcc},
		{&existing.SApM, &incoming.SApM},
		{&existing.StrDef, &incoming.StrDef},
		{&existing.TDAvg, &incoming.TDAvg},
		{&existing.TDAcc, &incoming.TDAcc},
		{&existing.TDDef, &incoming.TDDef},
		{&existing.SubAvg, &incoming.SubAvg},
	}
	for _, c := range floats {
		if !c.dst.Valid && c.src.Valid {
			*c.dst = *c.src
		}
	}
}

func ufc320Row() *Row {
	row := NewRow()
	for col, val := range map[string]string{
		"Event Name":        "UFC 320",
		"Event Date":        "Oct. 04, 2025",
		"Event Location":    "Las Vegas, Nevada, USA",
		"Fighter 1 Name":    "A",
		"Fighter 2 Name":    "B",
		"Fighter 1 Result":  "W",
		"Fighter 2 Result":  "L",
		"Fighter 1 KD":      "0",
		"Fighter 2 KD":      "1",
		"Weight Class":      "Light Heavyweight Bout",
		"Method":            "KO/TKO\nPunches",
		"Round":             "1",
		"Time":              "3:02",
		"F1_Totals_KD":      "0",
		"F1_Totals_Sig_Str": "28 of 50",
		"F2_Totals_KD":      "1",
		"F2_Totals_Sig_Str": "10 of 20",
	} {
		row.Set(col, val)
	}
	return row
}

func TestImportRowEndToEnd(t *testing.T) {
	s := newFakeStore()
	im := NewImporter(s, time.Time{})

	counts, err := im.ImportRows(context.Background(), []*Row{ufc320Row()})
	require.NoError(t, err)

	assert.Equal(t, Counts{Events: 1, Fighters: 2, Fights: 2, Rounds: 2}, counts)

	require.Len(t, s.events, 1)
	assert.Equal(t, "UFC 320", s.events[0].Name)
	assert.True(t, time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC).Equal(s.events[0].Date))

	require.Len(t, s.fights, 2)
	first, second := s.fights[0], s.fights[1]
	assert.Equal(t, second.FighterID, int(first.OpponentID.Int32))
	assert.Equal(t, first.FighterID, int(second.OpponentID.Int32))
	assert.Equal(t, sql.NullString{String: store.ResultWin, Valid: true}, first.Result)
	assert.Equal(t, sql.NullString{String: store.ResultLoss, Valid: true}, second.Result)
	assert.Equal(t, sql.NullString{String: "KO/TKO", Valid: true}, first.Method)
	assert.Equal(t, sql.NullString{String: "Punches", Valid: true}, first.MethodDetail)
	assert.Equal(t, sql.NullInt32{Int32: 1, Valid: true}, first.Round)

	require.Len(t, s.rounds, 2)
	assert.Equal(t, first.FightID, s.rounds[0].FightID)
	assert.Equal(t, 1, s.rounds[0].RoundNumber)
	assert.Equal(t, 28, s.rounds[0].SigStr)
	assert.Equal(t, second.FightID, s.rounds[1].FightID)
	assert.Equal(t, 10, s.rounds[1].SigStr)
}

func TestImportRowsIdempotentEntities(t *testing.T) {
	s := newFakeStore()
	im := NewImporter(s, time.Time{})

	_, err := im.ImportRows(context.Background(), []*Row{ufc320Row()})
	require.NoError(t, err)

	counts, err := im.ImportRows(context.Background(), []*Row{ufc320Row()})
	require.NoError(t, err)

	// Events and fighters dedupe; fights have no dedup key, so a re-import
	// appends a fresh pair.
	assert.Equal(t, 0, counts.Events)
	assert.Equal(t, 0, counts.Fighters)
	assert.Equal(t, 2, counts.Fights)
	assert.Len(t, s.events, 1)
	assert.Len(t, s.fighters, 2)
	assert.Len(t, s.fights, 4)
}

func TestImportRowsCoalescesFighterProfile(t *testing.T) {
	s := newFakeStore()
	im := NewImporter(s, time.Time{})

	bare := ufc320Row()
	_, err := im.ImportRows(context.Background(), []*Row{bare})
	require.NoError(t, err)
	require.False(t, s.fighters[0].SLpM.Valid)

	enriched := ufc320Row()
	enriched.Set("Fighter 1 Career_SLpM", "5.05")
	enriched.Set("Fighter 1 Stance", "Orthodox")
	_, err = im.ImportRows(context.Background(), []*Row{enriched})
	require.NoError(t, err)

	assert.Equal(t, sql.NullFloat64{Float64: 5.05, Valid: true}, s.fighters[0].SLpM)
	assert.Equal(t, sql.NullString{String: "Orthodox", Valid: true}, s.fighters[0].Stance)
	assert.Len(t, s.fighters, 2)
}

func TestImportRowsTransposedEventFields(t *testing.T) {
	s := newFakeStore()
	im := NewImporter(s, time.Time{})

	normal := ufc320Row()
	swapped := ufc320Row()
	swapped.Set("Event Date", "Las Vegas, Nevada, USA")
	swapped.Set("Event Location", "Oct. 04, 2025")

	counts, err := im.ImportRows(context.Background(), []*Row{normal, swapped})
	require.NoError(t, err)

	assert.Equal(t, 1, counts.Events)
	require.Len(t, s.events, 1)
	assert.Equal(t, sql.NullString{String: "Las Vegas, Nevada, USA", Valid: true}, s.events[0].Location)
}

func TestImportRowsSkipsRowWithoutEventName(t *testing.T) {
	s := newFakeStore()
	im := NewImporter(s, time.Time{})

	row := ufc320Row()
	row.Set("Event Name", "N/A")

	counts, err := im.ImportRows(context.Background(), []*Row{row, ufc320Row()})
	require.NoError(t, err)

	assert.Equal(t, 1, counts.Skipped)
	assert.Equal(t, 1, counts.Events)
	assert.Len(t, s.events, 1)
}

func TestImportRowsOrphanedRoundBlockIsCounted(t *testing.T) {
	s := newFakeStore()
	s.failFirstRow = true
	im := NewImporter(s, time.Time{})

	counts, err := im.ImportRows(context.Background(), []*Row{ufc320Row()})
	require.NoError(t, err)

	// Fighter 1's fight row failed, so its round block has nowhere to go.
	assert.Equal(t, 1, counts.Fights)
	assert.Equal(t, 1, counts.Rounds)
	assert.Equal(t, 1, counts.Skipped)
	require.Len(t, s.rounds, 1)
	assert.Equal(t, 10, s.rounds[0].SigStr)
}

func TestImportRowsFatalStorageErrorAborts(t *testing.T) {
	s := newFakeStore()
	s.eventErr = fmt.Errorf("upserting event: %w", driver.ErrBadConn)
	im := NewImporter(s, time.Time{})

	counts, err := im.ImportRows(context.Background(), []*Row{ufc320Row(), ufc320Row()})
	require.Error(t, err)
	assert.Equal(t, Counts{}, counts)
	assert.Empty(t, s.events)
}

func TestImportCSV(t *testing.T) {
	csvData := strings.Join([]string{
		`Event Name,Event Date,Event Location,Fighter 1,Fighter 1 Result,Fighter 2,Fighter 2 Result,Fighter 1 KD,Fighter 2 KD,Weight Class,Method,Round,Time,F1_Totals_KD,F2_Totals_KD`,
		`UFC 320,"Oct. 04, 2025","Las Vegas, Nevada, USA",A,W,B,L,0,1,Light Heavyweight Bout,KO/TKO,1,3:02,0,1`,
	}, "\n")

	s := newFakeStore()
	im := NewImporter(s, time.Time{})

	var ticks int
	im.OnProgress(func(Counts) { ticks++ })

	counts, err := im.ImportCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, Counts{Events: 1, Fighters: 2, Fights: 2, Rounds: 2}, counts)
	assert.Equal(t, 1, ticks)
	assert.Equal(t, "A", s.fighters[0].Name)
	assert.Equal(t, "B", s.fighters[1].Name)
}
