package table

import (
	"fmt"
	"strings"
)

// Row is a lightweight, non-owning view of one row of a Table. Reads and writes go
// straight to the Table's columns. A Row whose position no longer exists reports
// a NotFoundError on every access.
type Row struct {
	t   *Table
	idx int
}

// Row returns a view of row i
func (t *Table) Row(i int) (*Row, error) {
	if err := t.checkRow(i); err != nil {
		return nil, err
	}
	return &Row{t: t, idx: i}, nil
}

// Index returns the position of this Row within its Table
func (r *Row) Index() int {
	return r.idx
}

// Table returns the Table this Row belongs to
func (r *Row) Table() *Table {
	return r.t
}

// Get reads the value of the named column at this Row's position
func (r *Row) Get(name string) (interface{}, error) {
	return r.t.Value(name, r.idx)
}

// Set writes the value of the named column at this Row's position
func (r *Row) Set(name string, v interface{}) error {
	return r.t.SetValue(name, r.idx, v)
}

// SetAll overwrites every value of this Row, in column order
func (r *Row) SetAll(values []interface{}) error {
	return r.t.SetRow(r.idx, values)
}

// Values returns a restartable iterator over this Row's values, in column order
func (r *Row) Values() *RowValues {
	return &RowValues{row: r, pos: -1}
}

// AsSlice returns this Row's values, in column order
func (r *Row) AsSlice() ([]interface{}, error) {
	if err := r.t.checkRow(r.idx); err != nil {
		return nil, err
	}
	fields := r.t.schema.Fields()
	values := make([]interface{}, len(fields))
	for i, f := range fields {
		v, err := f.At(r.idx)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// AsMap returns this Row's values, keyed by column name
func (r *Row) AsMap() (map[string]interface{}, error) {
	values, err := r.AsSlice()
	if err != nil {
		return nil, err
	}
	return r.t.named(values), nil
}

// String renders this Row's values
func (r *Row) String() string {
	values, err := r.AsSlice()
	if err != nil {
		return fmt.Sprintf("<invalid row %d>", r.idx)
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("Row %d: (%s)", r.idx, strings.Join(parts, ", "))
}

// RowValues iterates over the values of a Row, in column order. Iteration has no
// side effects and may be restarted with Reset.
type RowValues struct {
	row   *Row
	pos   int
	value interface{}
	err   error
}

// Next advances to the next value, returning false once every column was visited or an error occurred
func (it *RowValues) Next() bool {
	if it.err != nil {
		return false
	}
	fields := it.row.t.schema.Fields()
	if it.pos+1 >= len(fields) {
		it.pos = len(fields)
		return false
	}
	if err := it.row.t.checkRow(it.row.idx); err != nil {
		it.err = err
		return false
	}
	it.pos++
	it.value, it.err = fields[it.pos].At(it.row.idx)
	return it.err == nil
}

// Name returns the name of the current column
func (it *RowValues) Name() string {
	fields := it.row.t.schema.Fields()
	if it.pos < 0 || it.pos >= len(fields) {
		return ""
	}
	return fields[it.pos].Name()
}

// Value returns the current value
func (it *RowValues) Value() interface{} {
	return it.value
}

// Err returns the error which stopped iteration, if any
func (it *RowValues) Err() error {
	return it.err
}

// Reset restarts iteration from the first column
func (it *RowValues) Reset() {
	it.pos = -1
	it.value = nil
	it.err = nil
}
