package ingest

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderkazanski/ufc-database/internal/ingest/parse"
	"github.com/alexanderkazanski/ufc-database/internal/store"
)

// Round-stat columns arrive wide: F<block>_<section>_<field>, two blocks
// per round, odd block = fighter 1, even block = fighter 2. The section
// label is usually "Totals" but is not relied on.
var blockPattern = regexp.MustCompile(`^F(\d+)_`)

// RoundDraft is a parsed round block waiting for its fight id. Slot says
// which side of the bout it belongs to.
type RoundDraft struct {
	Slot  int
	Round int
	Stat  store.RoundStat
}

// ReconstructRounds walks the row's columns, groups them into numbered
// blocks, and parses each block into a RoundDraft. Blocks with no KD,
// Sig_Str, or Total_Str data are skipped so rounds that never happened do
// not produce all-null rows. Block numbers need not be contiguous.
func ReconstructRounds(row *Row) []RoundDraft {
	seen := make(map[int]bool)
	var blocks []int
	for _, col := range row.Columns() {
		m := blockPattern.FindStringSubmatch(col)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		blocks = append(blocks, n)
	}
	sort.Ints(blocks)

	var drafts []RoundDraft
	for _, b := range blocks {
		if !blockHasData(row, b) {
			continue
		}

		sigStr, _ := parse.AsLandedAttempted(blockValue(row, b, "Sig_Str"))
		totalStr, _ := parse.AsLandedAttempted(blockValue(row, b, "Total_Str"))
		td, _ := parse.AsLandedAttempted(blockValue(row, b, "TD"))

		drafts = append(drafts, RoundDraft{
			Slot:  slotForBlock(b),
			Round: roundForBlock(b),
			Stat: store.RoundStat{
				RoundNumber: roundForBlock(b),
				KD:          parse.AsInt(blockValue(row, b, "KD"), 0),
				SigStr:      sigStr,
				SigStrPct:   parse.AsPercent(blockValue(row, b, "Sig_Str_Pct")),
				TotalStr:    totalStr,
				TD:          td,
				TDPct:       parse.AsPercent(blockValue(row, b, "TD_Pct")),
				SubAtt:      parse.AsInt(blockValue(row, b, "Sub_Att"), 0),
				Rev:         parse.AsInt(blockValue(row, b, "Rev"), 0),
				Ctrl:        parse.AsCleanString(blockValue(row, b, "Ctrl")),
			},
		})
	}
	return drafts
}

// Blocks 1,2 belong to round 1, blocks 3,4 to round 2, and so on.
func roundForBlock(b int) int {
	return (b + 1) / 2
}

func slotForBlock(b int) int {
	if b%2 == 1 {
		return 1
	}
	return 2
}

// blockValue finds the row column matching F<b>_<anything>_<field>. Field
// names never suffix each other, so a suffix match is unambiguous.
func blockValue(row *Row, b int, field string) string {
	prefix := "F" + strconv.Itoa(b) + "_"
	suffix := "_" + field
	for _, col := range row.Columns() {
		if strings.HasPrefix(col, prefix) && strings.HasSuffix(col, suffix) {
			return row.Get(col)
		}
	}
	return ""
}

func blockHasData(row *Row, b int) bool {
	for _, field := range []string{"KD", "Sig_Str", "Total_Str"} {
		if !parse.IsPlaceholder(blockValue(row, b, field)) {
			return true
		}
	}
	return false
}
