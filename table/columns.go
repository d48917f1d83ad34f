package table

import (
	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/schema"
)

// AddColumn appends a new column. data may be a Go slice, a *column.Column or a
// tabula.MixinColumn, and is copied.
func (t *Table) AddColumn(name string, data interface{}) error {
	return t.InsertColumn(t.schema.NumColumns(), name, data)
}

// InsertColumn adds a new column at position pos
func (t *Table) InsertColumn(pos int, name string, data interface{}) error {
	if t.schema.HasColumn(name) {
		return errors.DuplicateNameError{Name: name}
	}
	col, err := t.toColumn(name, data)
	if err != nil {
		return err
	}
	_, err = t.store(pos, col)
	return err
}

// SetColumn replaces the named column entirely, or appends it if it does not exist.
// The replacement may have a different type.
func (t *Table) SetColumn(name string, data interface{}) error {
	if !t.schema.HasColumn(name) {
		return t.AddColumn(name, data)
	}
	return t.ReplaceColumn(name, data)
}

// ReplaceColumn replaces an existing column, keeping its position. Indexes over it are rebuilt.
func (t *Table) ReplaceColumn(name string, data interface{}) error {
	if !t.schema.HasColumn(name) {
		return errors.ColumnNotFound(name)
	}
	col, err := t.toColumn(name, data)
	if err != nil {
		return err
	}
	return t.replace(name, col)
}

// replace swaps in an already converted column
func (t *Table) replace(name string, col tabula.Column) error {
	if col.Len() != t.rows {
		return errors.LengthMismatchError{Name: name, Expected: t.rows, Actual: col.Len()}
	}
	field, err := schema.NewField(col)
	if err != nil {
		return err
	}
	if err := t.prebuild(name, field); err != nil {
		return err
	}
	old, field, err := t.schema.ReplaceColumn(name, col)
	if err != nil {
		return err
	}
	t.detach(old)
	t.watch(field)
	var affected []tabula.Index
	for _, idx := range t.indexes {
		if covers(idx, name) {
			affected = append(affected, idx)
		}
	}
	return t.rebuild(affected)
}

// RemoveColumn removes the named column. Indexes over it are dropped.
func (t *Table) RemoveColumn(name string) error {
	field, err := t.schema.RemoveColumn(name)
	if err != nil {
		return err
	}
	t.detach(field)
	kept := t.indexes[:0]
	for _, idx := range t.indexes {
		if covers(idx, name) {
			t.logger.Debug("dropping index over removed column", "table", t.id, "column", name)
			continue
		}
		kept = append(kept, idx)
	}
	t.indexes = kept
	if t.schema.NumColumns() == 0 {
		t.rows = 0
	}
	return nil
}

// RemoveColumns removes several columns. Either all are removed, or none are.
func (t *Table) RemoveColumns(names ...string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if !t.schema.HasColumn(name) {
			return errors.ColumnNotFound(name)
		}
		if seen[name] {
			return errors.DuplicateNameError{Name: name}
		}
		seen[name] = true
	}
	for _, name := range names {
		if err := t.RemoveColumn(name); err != nil {
			return err
		}
	}
	return nil
}

// RenameColumn renames a column, keeping its data and position
func (t *Table) RenameColumn(oldName string, newName string) error {
	if err := t.schema.RenameColumn(oldName, newName); err != nil {
		return err
	}
	for _, idx := range t.indexes {
		cols := idx.Columns()
		for i, c := range cols {
			if c == oldName {
				cols[i] = newName
			}
		}
		idx.SetColumns(cols)
	}
	return nil
}

// SelectColumns returns a new Table holding independent copies of the named columns, in the given order
func (t *Table) SelectColumns(names ...string) (*Table, error) {
	res, err := t.derive()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		field, err := t.schema.GetField(name)
		if err != nil {
			return nil, err
		}
		if res.schema.HasColumn(name) {
			return nil, errors.DuplicateNameError{Name: name}
		}
		copied, err := field.Copy()
		if err != nil {
			return nil, err
		}
		if _, err := res.store(res.schema.NumColumns(), copied.Column()); err != nil {
			return nil, err
		}
	}
	for _, idx := range t.indexes {
		if res.hasColumns(idx.Columns()) {
			if _, err := res.AddIndexWith(idx.Engine(), idx.MissingPolicy(), idx.Columns()...); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

func (t *Table) hasColumns(names []string) bool {
	for _, name := range names {
		if !t.schema.HasColumn(name) {
			return false
		}
	}
	return true
}
