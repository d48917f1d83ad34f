package table

import (
	"fmt"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/internal/util"
	"github.com/go-sif/tabula/schema"
)

// coerceRow converts one value per column, in column order, without writing anything
func (t *Table) coerceRow(values []interface{}) ([]interface{}, error) {
	fields := t.schema.Fields()
	if len(values) != len(fields) {
		return nil, errors.LengthMismatchError{Name: "row", Expected: len(fields), Actual: len(values)}
	}
	coerced := make([]interface{}, len(values))
	for i, f := range fields {
		v, err := f.Coerce(values[i])
		if err != nil {
			return nil, err
		}
		coerced[i] = v
	}
	return coerced, nil
}

// rowMap turns a named set of values into a row, in column order. Omitted columns are missing.
func (t *Table) rowMap(values map[string]interface{}) ([]interface{}, error) {
	for name := range values {
		if !t.schema.HasColumn(name) {
			return nil, errors.ColumnNotFound(name)
		}
	}
	fields := t.schema.Fields()
	row := make([]interface{}, len(fields))
	for i, f := range fields {
		v, ok := values[f.Name()]
		if !ok {
			v = tabula.Missing
		}
		row[i] = v
	}
	return row, nil
}

func (t *Table) named(values []interface{}) map[string]interface{} {
	named := make(map[string]interface{}, len(values))
	for i, name := range t.schema.ColumnNames() {
		named[name] = values[i]
	}
	return named
}

// AddRow appends one row. values holds one value per column, in column order;
// tabula.Missing marks a value as missing. Either every column grows, or none do.
func (t *Table) AddRow(values []interface{}) error {
	return t.InsertRow(t.rows, values)
}

// AddRowMap appends one row from named values. Omitted columns are missing.
func (t *Table) AddRowMap(values map[string]interface{}) error {
	row, err := t.rowMap(values)
	if err != nil {
		return err
	}
	return t.InsertRow(t.rows, row)
}

// InsertRow inserts one row at position pos, shifting later rows down
func (t *Table) InsertRow(pos int, values []interface{}) error {
	if pos < 0 || pos > t.rows {
		return errors.RowOutOfRange("table", pos, t.rows+1)
	}
	if t.schema.NumColumns() == 0 {
		return fmt.Errorf("Cannot add a row to a table without columns")
	}
	coerced, err := t.coerceRow(values)
	if err != nil {
		return err
	}
	fields := t.schema.Fields()
	for _, f := range fields {
		if err := f.CanMutate(); err != nil {
			return err
		}
	}
	// a row which does not exist yet has no key; -1 never matches an index entry
	if err := t.checkNewKeys(t.named(coerced)); err != nil {
		return err
	}
	for i, f := range fields {
		if err := t.insertValue(f, pos, coerced[i]); err != nil {
			// unreachable for coerced values, but never leave a partial row
			for _, done := range fields[:i] {
				_ = t.deleteRows(done, []int{pos})
			}
			return err
		}
	}
	t.rows++
	for _, idx := range t.indexes {
		src, err := t.keys(idx.Columns(), nil, t.rows)
		if err == nil {
			err = idx.InsertRow(pos, src)
		}
		if err != nil {
			return t.rollbackInsert(pos, err)
		}
	}
	return nil
}

func (t *Table) rollbackInsert(pos int, cause error) error {
	for _, f := range t.schema.Fields() {
		_ = t.deleteRows(f, []int{pos})
	}
	t.rows--
	if err := t.rebuild(t.indexes); err != nil {
		t.logger.Error("failed to rebuild indexes after rollback", "table", t.id, "error", err)
	}
	return cause
}

// checkNewKeys verifies that every index can accept the key of a row made of values
func (t *Table) checkNewKeys(values map[string]interface{}) error {
	for _, idx := range t.indexes {
		key := make([]interface{}, 0, len(idx.Columns()))
		for _, name := range idx.Columns() {
			key = append(key, values[name])
		}
		if _, err := idx.Lookup(key...); err != nil {
			return err
		}
	}
	return nil
}

// RemoveRow removes the row at position i
func (t *Table) RemoveRow(i int) error {
	return t.RemoveRows([]int{i})
}

// RemoveRows removes the rows at the given positions. Either all are removed, or none are.
func (t *Table) RemoveRows(rows []int) error {
	rows = util.NormalizeRows(rows)
	for _, r := range rows {
		if err := t.checkRow(r); err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		return nil
	}
	fields := t.schema.Fields()
	for _, f := range fields {
		if err := f.CanMutate(); err != nil {
			return err
		}
	}
	for _, f := range fields {
		if err := t.deleteRows(f, rows); err != nil {
			return err
		}
	}
	t.rows -= len(rows)
	for _, idx := range t.indexes {
		for i := len(rows) - 1; i >= 0; i-- {
			idx.DeleteRow(rows[i])
		}
	}
	return nil
}

// SetRow overwrites every value of row i. values holds one value per column, in
// column order. On any error no column is modified.
func (t *Table) SetRow(i int, values []interface{}) error {
	if err := t.checkRow(i); err != nil {
		return err
	}
	coerced, err := t.coerceRow(values)
	if err != nil {
		return err
	}
	if err := t.checkKeys(i, t.named(coerced)); err != nil {
		return err
	}
	for j, f := range t.schema.Fields() {
		if err := f.SetAt(i, coerced[j]); err != nil {
			return err
		}
	}
	return t.takeIndexErr()
}

// SetRowMap overwrites the named values of row i, leaving other columns untouched
func (t *Table) SetRowMap(i int, values map[string]interface{}) error {
	if err := t.checkRow(i); err != nil {
		return err
	}
	coerced := make(map[string]interface{}, len(values))
	for name, v := range values {
		f, err := t.schema.GetField(name)
		if err != nil {
			return err
		}
		if coerced[name], err = f.Coerce(v); err != nil {
			return err
		}
	}
	if err := t.checkKeys(i, coerced); err != nil {
		return err
	}
	for name, v := range coerced {
		f, _ := t.schema.GetField(name)
		if err := f.SetAt(i, v); err != nil {
			return err
		}
	}
	return t.takeIndexErr()
}

// SetValue overwrites a single value
func (t *Table) SetValue(name string, i int, v interface{}) error {
	return t.SetRowMap(i, map[string]interface{}{name: v})
}

// Value reads a single value
func (t *Table) Value(name string, i int) (interface{}, error) {
	field, err := t.schema.GetField(name)
	if err != nil {
		return nil, err
	}
	if err := t.checkRow(i); err != nil {
		return nil, err
	}
	return field.At(i)
}

func (t *Table) insertValue(f *schema.Field, pos int, v interface{}) error {
	return t.structural(f, func() error {
		return f.Insert(pos, v)
	})
}

func (t *Table) deleteRows(f *schema.Field, rows []int) error {
	return t.structural(f, func() error {
		return f.Delete(rows)
	})
}
