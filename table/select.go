package table

import (
	"sort"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/internal/util"
	"github.com/go-sif/tabula/schema"
)

// derived builds a new Table from a transformation of every field, with equivalent indexes
func (t *Table) derived(transform func(f *schema.Field) (*schema.Field, error)) (*Table, error) {
	res, err := t.derive()
	if err != nil {
		return nil, err
	}
	for _, f := range t.schema.Fields() {
		nf, err := transform(f)
		if err != nil {
			return nil, err
		}
		if _, err := res.store(res.schema.NumColumns(), nf.Column()); err != nil {
			return nil, err
		}
	}
	if err := t.copyIndexes(res); err != nil {
		return nil, err
	}
	return res, nil
}

// Copy returns an independent copy of this Table, including its metadata and indexes
func (t *Table) Copy() (*Table, error) {
	return t.derived(func(f *schema.Field) (*schema.Field, error) {
		return f.Copy()
	})
}

// Slice returns a new, independent Table holding rows [lo, hi)
func (t *Table) Slice(lo, hi int) (*Table, error) {
	if lo < 0 || lo > t.rows {
		return nil, errors.RowOutOfRange("table", lo, t.rows)
	}
	if hi < lo || hi > t.rows {
		return nil, errors.RowOutOfRange("table", hi, t.rows)
	}
	return t.derived(func(f *schema.Field) (*schema.Field, error) {
		return f.Slice(lo, hi)
	})
}

// Take returns a new, independent Table holding the given rows, in order.
// -1 produces a row of missing values.
func (t *Table) Take(rows []int) (*Table, error) {
	for _, r := range rows {
		if r != -1 {
			if err := t.checkRow(r); err != nil {
				return nil, err
			}
		}
	}
	return t.derived(func(f *schema.Field) (*schema.Field, error) {
		return f.Take(rows)
	})
}

// SelectMask returns a new, independent Table holding the rows flagged in mask
func (t *Table) SelectMask(mask []bool) (*Table, error) {
	if len(mask) != t.rows {
		return nil, errors.LengthMismatchError{Name: "mask", Expected: t.rows, Actual: len(mask)}
	}
	rows := make([]int, 0, t.rows)
	for i, keep := range mask {
		if keep {
			rows = append(rows, i)
		}
	}
	return t.Take(rows)
}

// Filter returns a new Table holding the rows for which fn returns true.
// Panics within fn are recovered and reported as errors.
func (t *Table) Filter(fn func(r *Row) (bool, error)) (*Table, error) {
	pred := util.SafeRowPredicate(func(i int) (bool, error) {
		return fn(&Row{t: t, idx: i})
	}, t.describeRow)
	rows := make([]int, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		keep, err := pred(i)
		if err != nil {
			return nil, err
		}
		if keep {
			rows = append(rows, i)
		}
	}
	return t.Take(rows)
}

func (t *Table) describeRow(i int) string {
	return (&Row{t: t, idx: i}).String()
}

// compareCells orders two values of the same column, with missing values last
func compareCells(a, b interface{}) (int, error) {
	am, bm := tabula.IsMissing(a), tabula.IsMissing(b)
	switch {
	case am && bm:
		return 0, nil
	case am:
		return 1, nil
	case bm:
		return -1, nil
	}
	return tabula.CompareValues(a, b)
}

// SortedOrder returns the row positions which would sort this Table by the named columns.
// The order is stable, and missing values sort last.
func (t *Table) SortedOrder(names ...string) ([]int, error) {
	fields := make([]*schema.Field, len(names))
	for i, name := range names {
		f, err := t.schema.GetField(name)
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	cmp := util.SafeRowComparison(func(i, j int) (int, error) {
		for _, f := range fields {
			a, err := f.At(i)
			if err != nil {
				return 0, err
			}
			b, err := f.At(j)
			if err != nil {
				return 0, err
			}
			if c, err := compareCells(a, b); err != nil || c != 0 {
				return c, err
			}
		}
		return 0, nil
	}, t.describeRow)
	order := make([]int, t.rows)
	for i := range order {
		order[i] = i
	}
	var sortErr error
	sort.SliceStable(order, func(i, j int) bool {
		c, err := cmp(order[i], order[j])
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return order, nil
}

// Sort reorders the rows of this Table by the named columns. Each column is
// replaced by a sorted copy, and indexes are rebuilt.
func (t *Table) Sort(names ...string) error {
	order, err := t.SortedOrder(names...)
	if err != nil {
		return err
	}
	return t.permute(order)
}

// Reverse reverses the order of the rows of this Table in place
func (t *Table) Reverse() error {
	order := make([]int, t.rows)
	for i := range order {
		order[i] = t.rows - 1 - i
	}
	return t.permute(order)
}

// permute rearranges every column in place so that new row i is old row order[i]
func (t *Table) permute(order []int) error {
	fields := t.schema.Fields()
	taken := make([]*schema.Field, len(fields))
	for i, f := range fields {
		nf, err := f.Take(order)
		if err != nil {
			return err
		}
		taken[i] = nf
	}
	for i, f := range fields {
		old, nf, err := t.schema.ReplaceColumn(f.Name(), taken[i].Column())
		if err != nil {
			return err
		}
		t.detach(old)
		t.watch(nf)
	}
	return t.rebuild(t.indexes)
}
