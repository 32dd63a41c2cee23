package ingest

import (
	"database/sql"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderkazanski/ufc-database/internal/ingest/parse"
	"github.com/alexanderkazanski/ufc-database/internal/store"
)

// Date formats seen on ufcstats.com, tried in order. The site mixes
// "Oct 04, 2025" and "Oct. 04, 2025" across pages.
var eventDateFormats = []string{"Jan 2, 2006", "Jan. 2, 2006", "2006-01-02"}

var dobFormats = []string{"Jan 2, 2006", "Jan. 2, 2006"}

var (
	yearPattern  = regexp.MustCompile(`\b\d{4}\b`)
	isoPattern   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	monthPattern = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d`)
)

// isDateShaped reports whether s looks like a date: a 4-digit year, a
// month name followed by a day, or an ISO date. The month token alone is
// not enough; city names like "Augusta" or "Decatur" start with one.
// Used to detect transposed date/location cells, which the source data
// carries on a handful of older events.
func isDateShaped(s string) bool {
	return yearPattern.MatchString(s) || isoPattern.MatchString(s) || monthPattern.MatchString(s)
}

// parseEventDate tries each known format in order, then the caller default,
// then the current date. Never fails.
func parseEventDate(s string, defaultDate time.Time) time.Time {
	s = strings.TrimSpace(s)
	for _, format := range eventDateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	if !defaultDate.IsZero() {
		return defaultDate
	}
	return time.Now()
}

// BuildEvent classifies the raw date/location pair, repairs transposition,
// and parses the date. When neither input is date-shaped the default date
// is used and whatever text exists survives as the location.
func BuildEvent(name, rawDate, rawLocation string, defaultDate time.Time) *store.Event {
	dateCandidate, locCandidate := rawDate, rawLocation
	switch {
	case isDateShaped(rawDate):
		// normal order
	case isDateShaped(rawLocation):
		dateCandidate, locCandidate = rawLocation, rawDate
	default:
		dateCandidate = ""
		if parse.IsPlaceholder(rawLocation) {
			locCandidate = rawDate
		}
	}

	return &store.Event{
		Name:     strings.TrimSpace(name),
		Date:     parseEventDate(dateCandidate, defaultDate),
		Location: parse.AsCleanString(locCandidate),
	}
}

// FighterInput is the per-fighter slice of a wide row, before typing.
type FighterInput struct {
	Name       string
	Nickname   string
	ProfileURL string
	Height     string
	Weight     string
	Reach      string
	Stance     string
	DOB        string
	SLpM       string
	StrAcc     string
	SApM       string
	StrDef     string
	TDAvg      string
	TDAcc      string
	TDDef      string
	SubAvg     string
}

// BuildFighter types a FighterInput. The identity key is the profile URL
// when present, else the display name; two unlinked fighters sharing a
// name will collapse into one row, a known source-data limitation.
func BuildFighter(in FighterInput) *store.Fighter {
	key := strings.TrimSpace(in.ProfileURL)
	if key == "" {
		key = strings.TrimSpace(in.Name)
	}
	return &store.Fighter{
		IdentityKey: key,
		Name:        strings.TrimSpace(in.Name),
		Nickname:    parse.AsCleanString(in.Nickname),
		ProfileURL:  parse.AsCleanString(in.ProfileURL),
		Height:      parse.AsCleanString(in.Height),
		Weight:      parse.AsCleanString(in.Weight),
		Reach:       parse.AsCleanString(in.Reach),
		Stance:      parse.AsCleanString(in.Stance),
		DOB:         parseDOB(in.DOB),
		SLpM:        parse.AsNullFloat(in.SLpM),
		StrAcc:      parse.AsNullFloat(in.StrAcc),
		SApM:        parse.AsNullFloat(in.SApM),
		StrDef:      parse.AsNullFloat(in.StrDef),
		TDAvg:       parse.AsNullFloat(in.TDAvg),
		TDAcc:       parse.AsNullFloat(in.TDAcc),
		TDDef:       parse.AsNullFloat(in.TDDef),
		SubAvg:      parse.AsNullFloat(in.SubAvg),
	}
}

// parseDOB normalizes a birth date to ISO form. Unparseable non-empty
// values are stored raw rather than discarded.
func parseDOB(s string) sql.NullString {
	if parse.IsPlaceholder(s) {
		return sql.NullString{}
	}
	trimmed := strings.TrimSpace(s)
	for _, format := range dobFormats {
		if t, err := time.Parse(format, trimmed); err == nil {
			return sql.NullString{String: t.Format("2006-01-02"), Valid: true}
		}
	}
	return sql.NullString{String: trimmed, Valid: true}
}
