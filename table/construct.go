package table

import (
	"fmt"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
)

// FromRows creates a Table from row-major data. Every row must have one value per
// column; column types are inferred from the values.
func FromRows(rows [][]interface{}, opts Options) (*Table, error) {
	width := len(opts.Names)
	if opts.Names == nil {
		if len(rows) == 0 {
			return New(nil, opts)
		}
		width = len(rows[0])
	}
	cols := make([][]interface{}, width)
	for i := range cols {
		cols[i] = make([]interface{}, len(rows))
	}
	for r, row := range rows {
		if len(row) != width {
			return nil, errors.LengthMismatchError{Name: fmt.Sprintf("row %d", r), Expected: width, Actual: len(row)}
		}
		for c, v := range row {
			cols[c][r] = v
		}
	}
	data := make([]interface{}, width)
	for i, c := range cols {
		data[i] = c
	}
	return New(data, opts)
}

// FromRecords creates a Table from a list of records. Columns are named by
// opts.Names, or by every key found in the records (in order of first appearance,
// each record's keys sorted). Keys absent from a record produce missing values.
func FromRecords(records []map[string]interface{}, opts Options) (*Table, error) {
	names := opts.Names
	if names == nil {
		seen := make(map[string]bool)
		for _, rec := range records {
			keys := tabula.Meta(rec).Keys()
			for _, k := range keys {
				if !seen[k] {
					seen[k] = true
					names = append(names, k)
				}
			}
		}
	}
	known := make(map[string]bool, len(names))
	for _, name := range names {
		known[name] = true
	}
	rows := make([][]interface{}, len(records))
	for r, rec := range records {
		for k := range rec {
			if !known[k] {
				return nil, errors.ColumnNotFound(k)
			}
		}
		row := make([]interface{}, len(names))
		for i, name := range names {
			v, ok := rec[name]
			if !ok {
				v = tabula.Missing
			}
			row[i] = v
		}
		rows[r] = row
	}
	opts.Names = names
	return FromRows(rows, opts)
}

// Records returns every row as a map from column name to value
func (t *Table) Records() ([]map[string]interface{}, error) {
	records := make([]map[string]interface{}, t.rows)
	for i := range records {
		r := &Row{t: t, idx: i}
		rec, err := r.AsMap()
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}
