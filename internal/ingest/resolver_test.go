package ingest

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildEventParsesDate(t *testing.T) {
	tests := []struct {
		name    string
		rawDate string
		want    time.Time
	}{
		{"month day year", "Oct 04, 2025", time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC)},
		{"dotted month", "Oct. 04, 2025", time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC)},
		{"iso", "2025-10-04", time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := BuildEvent("UFC 320", tt.rawDate, "Las Vegas, Nevada, USA", time.Time{})
			assert.Equal(t, "UFC 320", e.Name)
			assert.True(t, tt.want.Equal(e.Date))
			assert.Equal(t, sql.NullString{String: "Las Vegas, Nevada, USA", Valid: true}, e.Location)
		})
	}
}

func TestBuildEventRepairsTransposition(t *testing.T) {
	normal := BuildEvent("UFC 320", "Oct 04, 2025", "Las Vegas, Nevada, USA", time.Time{})
	swapped := BuildEvent("UFC 320", "Las Vegas, Nevada, USA", "Oct 04, 2025", time.Time{})

	assert.True(t, normal.Date.Equal(swapped.Date))
	assert.Equal(t, normal.Location, swapped.Location)
}

func TestBuildEventMonthPrefixedCityTransposition(t *testing.T) {
	// Cities like Augusta, Decatur, or Marseille start with a month token.
	// The city alone must not count as date-shaped, or a swapped pair
	// would be taken for normal order and the real date lost.
	for _, city := range []string{"Augusta, Georgia", "Decatur, Illinois", "Marseille, France"} {
		e := BuildEvent("UFC Fight Night", city, "Oct 04, 2025", time.Time{})
		assert.True(t, time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC).Equal(e.Date), city)
		assert.Equal(t, sql.NullString{String: city, Valid: true}, e.Location)
	}
}

func TestBuildEventNeitherDateShaped(t *testing.T) {
	def := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	e := BuildEvent("UFC 1", "somewhere", "Denver, Colorado", def)
	assert.True(t, def.Equal(e.Date))
	assert.Equal(t, sql.NullString{String: "Denver, Colorado", Valid: true}, e.Location)

	e = BuildEvent("UFC 1", "Denver, Colorado", "", def)
	assert.True(t, def.Equal(e.Date))
	assert.Equal(t, sql.NullString{String: "Denver, Colorado", Valid: true}, e.Location)
}

func TestBuildEventUnparseableDateFallsBack(t *testing.T) {
	def := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	e := BuildEvent("UFC 1", "Octember 99, 2025", "Denver", def)
	assert.True(t, def.Equal(e.Date))

	before := time.Now()
	e = BuildEvent("UFC 1", "nonsense", "nonsense", time.Time{})
	assert.False(t, e.Date.Before(before))
}

func TestBuildFighterIdentityKey(t *testing.T) {
	byURL := BuildFighter(FighterInput{Name: "Alex Pereira", ProfileURL: "http://ufcstats.com/fighter-details/abc"})
	assert.Equal(t, "http://ufcstats.com/fighter-details/abc", byURL.IdentityKey)

	byName := BuildFighter(FighterInput{Name: "Alex Pereira"})
	assert.Equal(t, "Alex Pereira", byName.IdentityKey)
}

func TestBuildFighterFields(t *testing.T) {
	f := BuildFighter(FighterInput{
		Name:   "Alex Pereira",
		Height: `6' 4"`,
		Weight: "205 lbs.",
		Reach:  `79"`,
		Stance: "Orthodox",
		DOB:    "Jul 7, 1987",
		SLpM:   "5.05",
		StrAcc: "61%",
		SubAvg: "---",
	})

	assert.Equal(t, sql.NullString{String: "1987-07-07", Valid: true}, f.DOB)
	assert.Equal(t, sql.NullFloat64{Float64: 5.05, Valid: true}, f.SLpM)
	assert.Equal(t, sql.NullFloat64{Float64: 61, Valid: true}, f.StrAcc)
	assert.Equal(t, sql.NullFloat64{}, f.SubAvg)
	assert.Equal(t, sql.NullString{String: "Orthodox", Valid: true}, f.Stance)
}

func TestBuildFighterKeepsRawDOBOnParseFailure(t *testing.T) {
	f := BuildFighter(FighterInput{Name: "A", DOB: "unknown 1987"})
	assert.Equal(t, sql.NullString{String: "unknown 1987", Valid: true}, f.DOB)

	f = BuildFighter(FighterInput{Name: "A", DOB: "--"})
	assert.Equal(t, sql.NullString{String: "--", Valid: true}, f.DOB)
}
