package mixin

import (
	"time"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/internal/util"
)

var _ tabula.MutableMixin = (*Time)(nil)

// Time is a mixin column of time.Time values
type Time struct {
	base
	values []time.Time
	layout string
}

// NewTime creates a Time column from a sequence of times
func NewTime(name string, values []time.Time) *Time {
	return &Time{
		base:   base{info: tabula.ColumnInfo{Name: name}},
		values: append([]time.Time(nil), values...),
		layout: time.RFC3339,
	}
}

// NewTimeMasked creates a Time column where positions flagged in mask are missing
func NewTimeMasked(name string, values []time.Time, mask []bool) (*Time, error) {
	t := NewTime(name, values)
	if err := t.checkMask(mask, len(values)); err != nil {
		return nil, err
	}
	if mask != nil {
		t.mask = append([]bool(nil), mask...)
	}
	return t, nil
}

// ParseTimes creates a Time column by parsing strings with layout (time.RFC3339 when empty).
// Empty strings become missing values.
func ParseTimes(name string, layout string, values []string) (*Time, error) {
	if layout == "" {
		layout = time.RFC3339
	}
	t := NewTime(name, nil)
	t.layout = layout
	for _, s := range values {
		var v interface{} = s
		if s == "" {
			v = tabula.Missing
		}
		coerced, err := t.Coerce(v)
		if err != nil {
			return nil, err
		}
		if err := t.Append(coerced); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Len returns the number of values in this Time column
func (t *Time) Len() int {
	return len(t.values)
}

// MixinType returns "time"
func (t *Time) MixinType() string {
	return TimeType
}

// Layout returns the layout used to parse and render times
func (t *Time) Layout() string {
	return t.layout
}

// At returns the time.Time at position i, or tabula.Missing
func (t *Time) At(i int) (interface{}, error) {
	if err := t.checkRow(i, len(t.values)); err != nil {
		return nil, err
	}
	if t.masked(i) {
		return tabula.Missing, nil
	}
	return t.values[i], nil
}

// SetLayout changes the layout used to parse strings assigned to this column
func (t *Time) SetLayout(layout string) {
	t.layout = layout
}

// Times returns a copy of the underlying times. Masked positions hold the zero time.
func (t *Time) Times() []time.Time {
	return append([]time.Time(nil), t.values...)
}

// String renders a short description of this column
func (t *Time) String() string {
	return t.describe("Time", len(t.values))
}

// Slice returns an independent copy of positions [lo, hi)
func (t *Time) Slice(lo, hi int) (tabula.MixinColumn, error) {
	if err := t.checkRange(lo, hi, len(t.values)); err != nil {
		return nil, err
	}
	res := &Time{base: t.clone(), layout: t.layout}
	res.mask = t.sliceMasked(lo, hi)
	res.values = append([]time.Time(nil), t.values[lo:hi]...)
	return res, nil
}

// Take returns an independent copy of the given positions. -1 produces a missing value.
func (t *Time) Take(rows []int) (tabula.MixinColumn, error) {
	if err := t.checkRows(rows, len(t.values)); err != nil {
		return nil, err
	}
	res := &Time{base: t.clone(), layout: t.layout}
	res.values, _ = util.TakeRows(t.values, rows, time.Time{})
	res.mask = util.TakeMask(t.mask, rows)
	return res, nil
}

// Coerce accepts time.Time values, strings in this column's layout and tabula.Missing
func (t *Time) Coerce(v interface{}) (interface{}, error) {
	switch tv := v.(type) {
	case time.Time:
		return tv, nil
	case string:
		parsed, err := time.Parse(t.layout, tv)
		if err != nil {
			return nil, t.incompatible(v, "time", "expected layout "+t.layout)
		}
		return parsed, nil
	}
	if tabula.IsMissing(v) {
		return v, nil
	}
	return nil, t.incompatible(v, "time", "")
}

// SetAt overwrites position i and notifies watchers
func (t *Time) SetAt(i int, v interface{}) error {
	if err := t.checkRow(i, len(t.values)); err != nil {
		return err
	}
	coerced, err := t.Coerce(v)
	if err != nil {
		return err
	}
	t.store(i, coerced)
	t.watchers.Notify(i)
	return nil
}

func (t *Time) store(i int, v interface{}) {
	if tabula.IsMissing(v) {
		t.values[i] = time.Time{}
		t.setMasked(i, true, len(t.values))
		return
	}
	t.values[i] = v.(time.Time)
	t.setMasked(i, false, len(t.values))
}

// Append adds a value to the end of this column
func (t *Time) Append(v interface{}) error {
	return t.Insert(len(t.values), v)
}

// Insert adds a value at position i
func (t *Time) Insert(i int, v interface{}) error {
	if err := t.resizable("row insertion"); err != nil {
		return err
	}
	if i < 0 || i > len(t.values) {
		return t.checkRow(i, len(t.values))
	}
	coerced, err := t.Coerce(v)
	if err != nil {
		return err
	}
	missing := tabula.IsMissing(coerced)
	t.insertMasked(i, missing, len(t.values))
	if missing {
		t.values = util.InsertAt(t.values, i, time.Time{})
	} else {
		t.values = util.InsertAt(t.values, i, coerced.(time.Time))
	}
	return nil
}

// Delete removes the given sorted, unique positions
func (t *Time) Delete(rows []int) error {
	if err := t.checkDelete(rows, len(t.values)); err != nil {
		return err
	}
	t.values = util.DeleteRows(t.values, rows)
	t.deleteMasked(rows)
	return nil
}

// Copy returns an independent copy of this column, without watchers
func (t *Time) Copy() tabula.MutableMixin {
	return &Time{base: t.clone(), values: t.Times(), layout: t.layout}
}
