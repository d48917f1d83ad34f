package table

import (
	"fmt"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/internal/util"
	"github.com/hashicorp/go-multierror"
)

// Validate checks every invariant of this Table, reporting all violations at once:
// column lengths and masks match the row count, stored names match column names,
// and every index covers existing columns and holds no stale entries.
func (t *Table) Validate() error {
	var errs *multierror.Error
	for _, f := range t.schema.Fields() {
		col := f.Column()
		if col.Len() != t.rows {
			errs = multierror.Append(errs, errors.LengthMismatchError{Name: f.Name(), Expected: t.rows, Actual: col.Len()})
		}
		if m, ok := col.(tabula.Maskable); ok && m.HasMask() && len(m.Mask()) != col.Len() {
			errs = multierror.Append(errs, errors.InvalidMaskError{Name: f.Name(), Expected: col.Len(), Actual: len(m.Mask())})
		}
	}
	for _, name := range t.schema.ColumnNames() {
		f, err := t.schema.GetField(name)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if f.Name() != name {
			errs = multierror.Append(errs, fmt.Errorf("Column stored as %s is named %s", name, f.Name()))
		}
	}
	for _, idx := range t.indexes {
		if !t.hasColumns(idx.Columns()) {
			errs = multierror.Append(errs, errors.NotFoundError{What: "index column", Name: fmt.Sprint(idx.Columns()), Index: -1})
			continue
		}
		if err := t.checkIndex(idx); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if errs != nil {
		errs.ErrorFormat = util.FormatMultiError
	}
	return errs.ErrorOrNil()
}

// checkIndex compares an index against a fresh build over the current data
func (t *Table) checkIndex(idx tabula.Index) error {
	src, err := t.keys(idx.Columns(), nil, t.rows)
	if err != nil {
		return err
	}
	fresh, err := newIndexLike(idx)
	if err != nil {
		return err
	}
	if err := fresh.Build(src); err != nil {
		return err
	}
	if !sameRows(fresh.Positions(), idx.Positions()) || !sameRows(fresh.LookupMissing(), idx.LookupMissing()) {
		return fmt.Errorf("Index over %v is stale", idx.Columns())
	}
	return nil
}

func sameRows(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
