package parse

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder(""))
	assert.True(t, IsPlaceholder("   "))
	assert.True(t, IsPlaceholder("N/A"))
	assert.True(t, IsPlaceholder("n/a"))
	assert.True(t, IsPlaceholder("---"))
	assert.False(t, IsPlaceholder("0"))
	assert.False(t, IsPlaceholder("5 of 10"))
}

func TestAsInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   int
		want  int
	}{
		{"plain integer", "3", 0, 3},
		{"integer with suffix", "3 KD", 0, 3},
		{"leading text", "Round 2", 0, 2},
		{"negative", "-1", 0, -1},
		{"empty uses default", "", 7, 7},
		{"n/a uses default", "N/A", 7, 7},
		{"dashes use default", "---", 7, 7},
		{"no digits uses default", "none", 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsInt(tt.input, tt.def))
		})
	}
}

func TestAsFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   float64
		want  float64
	}{
		{"plain float", "4.50", 0, 4.5},
		{"percent stripped", "52%", 0, 52},
		{"integer", "15", 0, 15},
		{"empty uses default", "", 1.5, 1.5},
		{"dashes use default", "---", 1.5, 1.5},
		{"n/a uses default", "n/a", 1.5, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsFloat(tt.input, tt.def))
		})
	}
}

func TestAsNullFloat(t *testing.T) {
	assert.Equal(t, sql.NullFloat64{Float64: 4.5, Valid: true}, AsNullFloat("4.50"))
	assert.Equal(t, sql.NullFloat64{Float64: 52, Valid: true}, AsNullFloat("52%"))
	assert.Equal(t, sql.NullFloat64{}, AsNullFloat("---"))
	assert.Equal(t, sql.NullFloat64{}, AsNullFloat(""))
}

func TestAsPercent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  sql.NullString
	}{
		{"already a percent", "52%", sql.NullString{String: "52%", Valid: true}},
		{"bare number", "52", sql.NullString{String: "52%", Valid: true}},
		{"decimal", "62.5 %", sql.NullString{String: "62.5%", Valid: true}},
		{"dashes", "---", sql.NullString{}},
		{"empty", "", sql.NullString{}},
		{"no number", "N/A", sql.NullString{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsPercent(tt.input))
		})
	}
}

func TestAsLandedAttempted(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantLanded    int
		wantAttempted sql.NullInt32
	}{
		{"standard pair", "4 of 9", 4, sql.NullInt32{Int32: 9, Valid: true}},
		{"two digit pair", "28 of 50", 28, sql.NullInt32{Int32: 50, Valid: true}},
		{"lone integer", "12", 12, sql.NullInt32{}},
		{"concatenated zeros", "0 of 00 of 0", 0, sql.NullInt32{Int32: 0, Valid: true}},
		{"concatenated fragments", "2 of 52 of 8", 2, sql.NullInt32{Int32: 5, Valid: true}},
		{"dashes", "---", 0, sql.NullInt32{}},
		{"empty", "", 0, sql.NullInt32{}},
		{"no digits", "of", 0, sql.NullInt32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			landed, attempted := AsLandedAttempted(tt.input)
			assert.Equal(t, tt.wantLanded, landed)
			assert.Equal(t, tt.wantAttempted, attempted)
		})
	}
}

func TestAsCleanString(t *testing.T) {
	assert.Equal(t, sql.NullString{String: "KO/TKO", Valid: true}, AsCleanString("  KO/TKO "))
	assert.Equal(t, sql.NullString{}, AsCleanString(""))
	assert.Equal(t, sql.NullString{}, AsCleanString("  "))
	assert.Equal(t, sql.NullString{}, AsCleanString("N/A"))
	assert.Equal(t, sql.NullString{}, AsCleanString("---"))
}
