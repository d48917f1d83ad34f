package mixin

import (
	"math"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/internal/util"
)

var _ tabula.MutableMixin = (*Quantity)(nil)

// Quantity is a mixin column of float64 magnitudes sharing a single physical unit.
// Unit conversion is not performed; the unit is a label carried with the values.
type Quantity struct {
	base
	values []float64
}

// NewQuantity creates a Quantity column
func NewQuantity(name string, values []float64, unit tabula.Unit) *Quantity {
	return &Quantity{
		base:   base{info: tabula.ColumnInfo{Name: name, Unit: unit}},
		values: append([]float64(nil), values...),
	}
}

// NewQuantityMasked creates a Quantity column where positions flagged in mask are missing
func NewQuantityMasked(name string, values []float64, unit tabula.Unit, mask []bool) (*Quantity, error) {
	q := NewQuantity(name, values, unit)
	if err := q.checkMask(mask, len(values)); err != nil {
		return nil, err
	}
	if mask != nil {
		q.mask = append([]bool(nil), mask...)
	}
	return q, nil
}

// Len returns the number of values in this Quantity
func (q *Quantity) Len() int {
	return len(q.values)
}

// MixinType returns "quantity"
func (q *Quantity) MixinType() string {
	return QuantityType
}

// Unit returns the unit shared by all values
func (q *Quantity) Unit() tabula.Unit {
	return q.info.Unit
}

// SetUnit relabels the values of this Quantity
func (q *Quantity) SetUnit(u tabula.Unit) {
	q.info.Unit = u
}

// At returns the float64 magnitude at position i, or tabula.Missing
func (q *Quantity) At(i int) (interface{}, error) {
	if err := q.checkRow(i, len(q.values)); err != nil {
		return nil, err
	}
	if q.masked(i) {
		return tabula.Missing, nil
	}
	return q.values[i], nil
}

// Values returns a copy of the magnitudes. Masked positions hold NaN.
func (q *Quantity) Values() []float64 {
	out := append([]float64(nil), q.values...)
	for i := range out {
		if q.masked(i) {
			out[i] = math.NaN()
		}
	}
	return out
}

// String renders a short description of this column
func (q *Quantity) String() string {
	return q.describe("Quantity", len(q.values))
}

// Slice returns an independent copy of positions [lo, hi)
func (q *Quantity) Slice(lo, hi int) (tabula.MixinColumn, error) {
	if err := q.checkRange(lo, hi, len(q.values)); err != nil {
		return nil, err
	}
	res := &Quantity{base: q.clone()}
	res.mask = q.sliceMasked(lo, hi)
	res.values = append([]float64(nil), q.values[lo:hi]...)
	return res, nil
}

// Take returns an independent copy of the given positions. -1 produces a missing value.
func (q *Quantity) Take(rows []int) (tabula.MixinColumn, error) {
	if err := q.checkRows(rows, len(q.values)); err != nil {
		return nil, err
	}
	res := &Quantity{base: q.clone()}
	res.values, _ = util.TakeRows(q.values, rows, 0)
	res.mask = util.TakeMask(q.mask, rows)
	return res, nil
}

// Coerce accepts any Go number and tabula.Missing
func (q *Quantity) Coerce(v interface{}) (interface{}, error) {
	if tabula.IsMissing(v) {
		return v, nil
	}
	f, ok := tabula.ToFloat64(v)
	if !ok {
		return nil, q.incompatible(v, "quantity", "not a number")
	}
	return f, nil
}

// SetAt overwrites position i and notifies watchers
func (q *Quantity) SetAt(i int, v interface{}) error {
	if err := q.checkRow(i, len(q.values)); err != nil {
		return err
	}
	coerced, err := q.Coerce(v)
	if err != nil {
		return err
	}
	if tabula.IsMissing(coerced) {
		q.values[i] = 0
		q.setMasked(i, true, len(q.values))
	} else {
		q.values[i] = coerced.(float64)
		q.setMasked(i, false, len(q.values))
	}
	q.watchers.Notify(i)
	return nil
}

// Append adds a value to the end of this column
func (q *Quantity) Append(v interface{}) error {
	return q.Insert(len(q.values), v)
}

// Insert adds a value at position i
func (q *Quantity) Insert(i int, v interface{}) error {
	if err := q.resizable("row insertion"); err != nil {
		return err
	}
	if i < 0 || i > len(q.values) {
		return q.checkRow(i, len(q.values))
	}
	coerced, err := q.Coerce(v)
	if err != nil {
		return err
	}
	missing := tabula.IsMissing(coerced)
	q.insertMasked(i, missing, len(q.values))
	if missing {
		q.values = util.InsertAt(q.values, i, 0)
	} else {
		q.values = util.InsertAt(q.values, i, coerced.(float64))
	}
	return nil
}

// Delete removes the given sorted, unique positions
func (q *Quantity) Delete(rows []int) error {
	if err := q.checkDelete(rows, len(q.values)); err != nil {
		return err
	}
	q.values = util.DeleteRows(q.values, rows)
	q.deleteMasked(rows)
	return nil
}

// Copy returns an independent copy of this column, without watchers
func (q *Quantity) Copy() tabula.MutableMixin {
	return &Quantity{base: q.clone(), values: append([]float64(nil), q.values...)}
}
