// Package parse turns raw scraped cell text into typed values.
//
// ufcstats.com renders every statistic as free text and pads missing data
// with placeholder tokens, so nothing here ever fails: every function is
// total and degrades to a caller default or null on malformed input. All
// consumers share this one placeholder policy instead of re-checking "N/A"
// at each call site.
package parse

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"
)

var (
	intPattern   = regexp.MustCompile(`[+-]?\d+`)
	floatPattern = regexp.MustCompile(`[+-]?\d+(\.\d+)?`)
)

// IsPlaceholder reports whether the trimmed value is one of the site's
// "no data" tokens: empty, "N/A" (any case), or "---".
func IsPlaceholder(v string) bool {
	s := strings.TrimSpace(v)
	return s == "" || s == "---" || strings.EqualFold(s, "N/A")
}

// AsInt returns the first integer literal found in v, or def when v is a
// placeholder or contains no integer.
func AsInt(v string, def int) int {
	if IsPlaceholder(v) {
		return def
	}
	match := intPattern.FindString(v)
	if match == "" {
		return def
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return def
	}
	return n
}

// AsFloat returns the first numeric literal found in v, or def when v is a
// placeholder or contains no number. A trailing "%" is stripped first so
// accuracy figures like "52%" parse as 52.
func AsFloat(v string, def float64) float64 {
	if IsPlaceholder(v) {
		return def
	}
	s := strings.TrimSuffix(strings.TrimSpace(v), "%")
	match := floatPattern.FindString(s)
	if match == "" {
		return def
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return def
	}
	return f
}

// AsNullFloat is AsFloat with a null default, for nullable rate columns.
func AsNullFloat(v string) sql.NullFloat64 {
	if IsPlaceholder(v) {
		return sql.NullFloat64{}
	}
	s := strings.TrimSuffix(strings.TrimSpace(v), "%")
	match := floatPattern.FindString(s)
	if match == "" {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

// AsPercent extracts the first numeric literal from v and re-renders it as
// "<num>%". Returns null when v is empty or has no numeric literal.
func AsPercent(v string) sql.NullString {
	if IsPlaceholder(v) {
		return sql.NullString{}
	}
	match := floatPattern.FindString(v)
	if match == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: match + "%", Valid: true}
}

// AsLandedAttempted parses the site's "X of Y" strike counts, returning the
// landed count and a nullable attempted count. Placeholders and values with
// no integers yield (0, null); a lone integer yields (n, null).
//
// Malformed fight pages occasionally run two fragments together with no
// separator ("2 of 52 of 8"). The middle digit run then ends with the next
// fragment's leading digit, so when more than two integers are present the
// attempted run drops its final digit. This recovers only the first
// fragment and is deliberately lossy.
func AsLandedAttempted(v string) (int, sql.NullInt32) {
	if IsPlaceholder(v) {
		return 0, sql.NullInt32{}
	}

	ints := intPattern.FindAllString(v, -1)
	if len(ints) == 0 {
		return 0, sql.NullInt32{}
	}

	landed, err := strconv.Atoi(ints[0])
	if err != nil {
		return 0, sql.NullInt32{}
	}
	if len(ints) == 1 {
		return landed, sql.NullInt32{}
	}

	attempted := ints[1]
	if len(ints) > 2 && len(attempted) > 1 {
		attempted = attempted[:len(attempted)-1]
	}
	n, err := strconv.Atoi(attempted)
	if err != nil {
		return landed, sql.NullInt32{}
	}
	return landed, sql.NullInt32{Int32: int32(n), Valid: true}
}

// AsCleanString trims v and returns it, or null when the result is empty or
// a placeholder token.
func AsCleanString(v string) sql.NullString {
	if IsPlaceholder(v) {
		return sql.NullString{}
	}
	return sql.NullString{String: strings.TrimSpace(v), Valid: true}
}
