// Package ingest normalizes scraped fight records and loads them into the
// store. A Row is the unit of work: one wide record covering an event, two
// fighters, the fight outcome, and up to ten per-round stat blocks.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Row is a single wide record keyed by column name. Column order is
// preserved so round-block discovery walks columns in source order.
type Row struct {
	columns []string
	values  map[string]string
}

func NewRow() *Row {
	return &Row{values: make(map[string]string)}
}

// Set records a value, appending the column on first sight.
func (r *Row) Set(column, value string) {
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Get returns the value for column, empty string when absent. Absent and
// empty are equivalent downstream: both are placeholders.
func (r *Row) Get(column string) string {
	return r.values[column]
}

// Has reports whether the column exists in the row at all.
func (r *Row) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Columns returns the column names in insertion order.
func (r *Row) Columns() []string {
	return r.columns
}

// ReadCSV reads a header-first CSV stream into Rows. Records shorter than
// the header are padded with empties rather than rejected.
func ReadCSV(src io.Reader) ([]*Row, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows []*Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		row := NewRow()
		for i, col := range header {
			if i < len(record) {
				row.Set(col, record[i])
			} else {
				row.Set(col, "")
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
