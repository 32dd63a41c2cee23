package ingest

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundRow(cells map[string]string) *Row {
	row := NewRow()
	for _, col := range []string{
		"F1_Totals_KD", "F1_Totals_Sig_Str", "F1_Totals_Sig_Str_Pct",
		"F1_Totals_Total_Str", "F1_Totals_TD", "F1_Totals_TD_Pct",
		"F1_Totals_Sub_Att", "F1_Totals_Rev", "F1_Totals_Ctrl",
		"F2_Totals_KD", "F2_Totals_Sig_Str",
		"F3_Totals_KD", "F3_Totals_Sig_Str",
		"F4_Totals_KD", "F4_Totals_Sig_Str",
	} {
		row.Set(col, cells[col])
	}
	return row
}

func TestReconstructRoundsBlockMapping(t *testing.T) {
	row := NewRow()
	row.Set("F1_Totals_KD", "0")
	row.Set("F2_Totals_KD", "1")
	row.Set("F3_Totals_KD", "0")
	row.Set("F4_Totals_KD", "2")

	drafts := ReconstructRounds(row)
	require.Len(t, drafts, 4)

	assert.Equal(t, 1, drafts[0].Slot)
	assert.Equal(t, 1, drafts[0].Round)
	assert.Equal(t, 2, drafts[1].Slot)
	assert.Equal(t, 1, drafts[1].Round)
	assert.Equal(t, 1, drafts[2].Slot)
	assert.Equal(t, 2, drafts[2].Round)
	assert.Equal(t, 2, drafts[3].Slot)
	assert.Equal(t, 2, drafts[3].Round)
	assert.Equal(t, 2, drafts[3].Stat.KD)
}

func TestReconstructRoundsParsesFields(t *testing.T) {
	row := roundRow(map[string]string{
		"F1_Totals_KD":          "1",
		"F1_Totals_Sig_Str":     "28 of 50",
		"F1_Totals_Sig_Str_Pct": "56%",
		"F1_Totals_Total_Str":   "40 of 70",
		"F1_Totals_TD":          "2 of 4",
		"F1_Totals_TD_Pct":      "50%",
		"F1_Totals_Sub_Att":     "1",
		"F1_Totals_Rev":         "0",
		"F1_Totals_Ctrl":        "2:15",
	})

	drafts := ReconstructRounds(row)
	require.Len(t, drafts, 1)

	stat := drafts[0].Stat
	assert.Equal(t, 1, stat.RoundNumber)
	assert.Equal(t, 1, stat.KD)
	assert.Equal(t, 28, stat.SigStr)
	assert.Equal(t, sql.NullString{String: "56%", Valid: true}, stat.SigStrPct)
	assert.Equal(t, 40, stat.TotalStr)
	assert.Equal(t, 2, stat.TD)
	assert.Equal(t, sql.NullString{String: "50%", Valid: true}, stat.TDPct)
	assert.Equal(t, 1, stat.SubAtt)
	assert.Equal(t, 0, stat.Rev)
	assert.Equal(t, sql.NullString{String: "2:15", Valid: true}, stat.Ctrl)
}

func TestReconstructRoundsSkipsEmptyBlocks(t *testing.T) {
	row := roundRow(map[string]string{
		"F1_Totals_KD":      "0",
		"F1_Totals_Sig_Str": "28 of 50",
		"F2_Totals_KD":      "1",
		"F2_Totals_Sig_Str": "10 of 20",
		"F3_Totals_KD":      "---",
		"F3_Totals_Sig_Str": "",
		"F4_Totals_KD":      "N/A",
		"F4_Totals_Sig_Str": "---",
	})

	drafts := ReconstructRounds(row)
	require.Len(t, drafts, 2)
	assert.Equal(t, 1, drafts[0].Round)
	assert.Equal(t, 1, drafts[1].Round)
}

func TestReconstructRoundsNonContiguousBlocks(t *testing.T) {
	row := NewRow()
	row.Set("F1_Totals_KD", "0")
	row.Set("F2_Totals_KD", "0")
	row.Set("F5_Totals_KD", "1")
	row.Set("F6_Totals_KD", "0")

	drafts := ReconstructRounds(row)
	require.Len(t, drafts, 4)
	assert.Equal(t, 3, drafts[2].Round)
	assert.Equal(t, 1, drafts[2].Slot)
	assert.Equal(t, 3, drafts[3].Round)
	assert.Equal(t, 2, drafts[3].Slot)
}

func TestReconstructRoundsNoBlocks(t *testing.T) {
	row := NewRow()
	row.Set("Event Name", "UFC 320")
	row.Set("Fighter 1 Name", "A")

	assert.Empty(t, ReconstructRounds(row))
}
