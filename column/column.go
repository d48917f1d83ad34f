// Package column implements the regular, typed column stored by Tables
package column

import (
	"fmt"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/internal/util"
)

// Column is a named, typed, mutable sequence of values with an optional mask
// marking missing entries. Values are stored in the canonical representation of
// the Column's type; masked positions hold the type's zero value.
type Column struct {
	tabula.Ownership
	info     tabula.ColumnInfo
	colType  tabula.ColumnType
	data     []interface{}
	mask     []bool
	watchers tabula.Watchers
}

var _ tabula.Column = (*Column)(nil)
var _ tabula.Typed = (*Column)(nil)
var _ tabula.Maskable = (*Column)(nil)
var _ tabula.Owned = (*Column)(nil)

// New creates a Column of the given type. Each value is coerced to colType;
// tabula.Missing entries produce a masked Column.
func New(name string, colType tabula.ColumnType, values []interface{}) (*Column, error) {
	c := &Column{
		info:    tabula.ColumnInfo{Name: name},
		colType: colType,
		data:    make([]interface{}, len(values)),
	}
	for i, v := range values {
		coerced, err := c.Coerce(v)
		if err != nil {
			return nil, err
		}
		c.store(i, coerced)
	}
	return c, nil
}

// NewMasked creates a Column of the given type where positions flagged in mask are missing
func NewMasked(name string, colType tabula.ColumnType, values []interface{}, mask []bool) (*Column, error) {
	if mask != nil && len(mask) != len(values) {
		return nil, errors.InvalidMaskError{Name: name, Expected: len(values), Actual: len(mask)}
	}
	c, err := New(name, colType, values)
	if err != nil {
		return nil, err
	}
	if mask != nil {
		c.EnsureMask()
		for i, m := range mask {
			if m {
				c.data[i] = colType.Zero()
				c.mask[i] = true
			}
		}
	}
	return c, nil
}

// Empty creates a masked Column of length n where every value is missing
func Empty(name string, colType tabula.ColumnType, n int) *Column {
	c := &Column{
		info:    tabula.ColumnInfo{Name: name},
		colType: colType,
		data:    make([]interface{}, n),
		mask:    make([]bool, n),
	}
	for i := range c.data {
		c.data[i] = colType.Zero()
		c.mask[i] = true
	}
	return c
}

// Name returns the name of this Column
func (c *Column) Name() string {
	return c.info.Name
}

// Type returns the ColumnType of this Column
func (c *Column) Type() tabula.ColumnType {
	return c.colType
}

// Len returns the number of values in this Column
func (c *Column) Len() int {
	return len(c.data)
}

// Kind is always tabula.RegularKind
func (c *Column) Kind() tabula.ColumnKind {
	return tabula.RegularKind
}

// Info exposes this Column's metadata
func (c *Column) Info() *tabula.ColumnInfo {
	return &c.info
}

// String renders a short description of this Column
func (c *Column) String() string {
	s := fmt.Sprintf("Column(%s)[%d] %s", c.info.Name, len(c.data), c.colType.Name())
	if c.info.Unit != tabula.NoUnit {
		s += " " + c.info.Unit.String()
	}
	return s
}

// Unit returns the unit attached to this Column, if any
func (c *Column) Unit() tabula.Unit {
	return c.info.Unit
}

// SetUnit attaches a unit to this Column
func (c *Column) SetUnit(u tabula.Unit) {
	c.info.Unit = u
}

// Format returns the fmt verb used to render single values
func (c *Column) Format() string {
	return c.info.Format
}

// SetFormat sets the fmt verb used to render single values
func (c *Column) SetFormat(format string) {
	c.info.Format = format
}

// Description returns the free-form description of this Column
func (c *Column) Description() string {
	return c.info.Description
}

// SetDescription sets the free-form description of this Column
func (c *Column) SetDescription(desc string) {
	c.info.Description = desc
}

// Meta returns this Column's metadata, creating it if necessary
func (c *Column) Meta() tabula.Meta {
	if c.info.Meta == nil {
		c.info.Meta = tabula.Meta{}
	}
	return c.info.Meta
}

// Watch registers a callback invoked after values change in place
func (c *Column) Watch(fn tabula.ChangeFunc) (unwatch func()) {
	return c.watchers.Watch(fn)
}

func (c *Column) checkRow(i int) error {
	if i < 0 || i >= len(c.data) {
		return errors.RowOutOfRange(c.info.Name, i, len(c.data))
	}
	return nil
}

// At returns the value at position i, or tabula.Missing when it is masked
func (c *Column) At(i int) (interface{}, error) {
	if err := c.checkRow(i); err != nil {
		return nil, err
	}
	if c.mask != nil && c.mask[i] {
		return tabula.Missing, nil
	}
	return c.data[i], nil
}

// Get is an alias of At
func (c *Column) Get(i int) (interface{}, error) {
	return c.At(i)
}

// Coerce validates and converts v to this Column's type without storing it.
// tabula.Missing is always accepted.
func (c *Column) Coerce(v interface{}) (interface{}, error) {
	if tabula.IsMissing(v) {
		return v, nil
	}
	coerced, err := c.colType.Coerce(v)
	if err != nil {
		return nil, errors.TypeIncompatibleError{Name: c.info.Name, Value: v, Expected: c.colType.Name(), Reason: err.Error()}
	}
	return coerced, nil
}

// store writes a coerced value, maintaining the mask
func (c *Column) store(i int, v interface{}) {
	if tabula.IsMissing(v) {
		c.EnsureMask()
		c.data[i] = c.colType.Zero()
		c.mask[i] = true
		return
	}
	c.data[i] = v
	if c.mask != nil {
		c.mask[i] = false
	}
}

// Set overwrites position i. Assigning tabula.Missing masks the position,
// giving an unmasked Column a mask.
func (c *Column) Set(i int, v interface{}) error {
	if err := c.checkRow(i); err != nil {
		return err
	}
	coerced, err := c.Coerce(v)
	if err != nil {
		return err
	}
	c.store(i, coerced)
	c.watchers.Notify(i)
	return nil
}

// SetAt is an alias of Set
func (c *Column) SetAt(i int, v interface{}) error {
	return c.Set(i, v)
}

// SetSlice overwrites positions [lo, lo+len(values)). Either every value is
// written, or none are.
func (c *Column) SetSlice(lo int, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}
	if err := c.checkRow(lo); err != nil {
		return err
	}
	if err := c.checkRow(lo + len(values) - 1); err != nil {
		return err
	}
	coerced := make([]interface{}, len(values))
	for i, v := range values {
		cv, err := c.Coerce(v)
		if err != nil {
			return err
		}
		coerced[i] = cv
	}
	for i, v := range coerced {
		c.store(lo+i, v)
	}
	c.watchers.Notify(-1)
	return nil
}

// HasMask returns true iff this Column carries a mask
func (c *Column) HasMask() bool {
	return c.mask != nil
}

// EnsureMask gives this Column an all-false mask if it does not already have one
func (c *Column) EnsureMask() {
	if c.mask == nil {
		c.mask = make([]bool, len(c.data))
	}
}

// Mask returns a copy of this Column's mask, or nil if it is unmasked
func (c *Column) Mask() []bool {
	if c.mask == nil {
		return nil
	}
	return append([]bool(nil), c.mask...)
}

// SetMask replaces the mask of this Column. A nil mask unmasks every value.
func (c *Column) SetMask(mask []bool) error {
	if mask != nil && len(mask) != len(c.data) {
		return errors.InvalidMaskError{Name: c.info.Name, Expected: len(c.data), Actual: len(mask)}
	}
	if mask == nil {
		c.mask = nil
	} else {
		c.mask = append([]bool(nil), mask...)
	}
	c.watchers.Notify(-1)
	return nil
}

// IsMasked returns true iff position i is missing
func (c *Column) IsMasked(i int) bool {
	return c.mask != nil && i >= 0 && i < len(c.mask) && c.mask[i]
}

// NumMasked returns the number of missing values
func (c *Column) NumMasked() int {
	n := 0
	for _, m := range c.mask {
		if m {
			n++
		}
	}
	return n
}

// Data returns a copy of the stored values. Masked positions hold the type's zero value.
func (c *Column) Data() []interface{} {
	return append([]interface{}(nil), c.data...)
}

// Values returns a copy of the values, with tabula.Missing at masked positions
func (c *Column) Values() []interface{} {
	return c.Filled(tabula.Missing)
}

// Filled returns a copy of the values, with fill at masked positions
func (c *Column) Filled(fill interface{}) []interface{} {
	out := c.Data()
	for i := range out {
		if c.mask != nil && c.mask[i] {
			out[i] = fill
		}
	}
	return out
}

// FormatValue renders the value at position i using this Column's format,
// or "--" when it is missing
func (c *Column) FormatValue(i int) (string, error) {
	v, err := c.At(i)
	if err != nil {
		return "", err
	}
	if tabula.IsMissing(v) {
		return tabula.Missing.(fmt.Stringer).String(), nil
	}
	if c.info.Format != "" {
		return fmt.Sprintf(c.info.Format, v), nil
	}
	return c.colType.ToString(v), nil
}

// clone copies everything except data, watchers and ownership
func (c *Column) clone() *Column {
	return &Column{
		info:    *c.info.Clone(),
		colType: c.colType,
	}
}

// Copy returns an independent copy of this Column, without watchers
func (c *Column) Copy() *Column {
	res := c.clone()
	res.data = c.copyData(0, len(c.data))
	res.mask = c.Mask()
	return res
}

func (c *Column) copyData(lo, hi int) []interface{} {
	out := make([]interface{}, hi-lo)
	copy(out, c.data[lo:hi])
	if _, ok := c.colType.(*tabula.BytesColumnType); ok {
		for i, v := range out {
			out[i] = append([]byte(nil), v.([]byte)...)
		}
	}
	return out
}

// Slice returns an independent copy of positions [lo, hi)
func (c *Column) Slice(lo, hi int) (*Column, error) {
	if lo < 0 || lo > len(c.data) {
		return nil, errors.RowOutOfRange(c.info.Name, lo, len(c.data))
	}
	if hi < lo || hi > len(c.data) {
		return nil, errors.RowOutOfRange(c.info.Name, hi, len(c.data))
	}
	res := c.clone()
	res.data = c.copyData(lo, hi)
	if c.mask != nil {
		res.mask = append([]bool(nil), c.mask[lo:hi]...)
	}
	return res, nil
}

// Take returns an independent copy of the given positions. -1 produces a missing value.
func (c *Column) Take(rows []int) (*Column, error) {
	for _, r := range rows {
		if r < -1 || r >= len(c.data) {
			return nil, errors.RowOutOfRange(c.info.Name, r, len(c.data))
		}
	}
	res := c.clone()
	res.data, _ = util.TakeRows(c.data, rows, c.colType.Zero())
	res.mask = util.TakeMask(c.mask, rows)
	return res, nil
}

// Cast returns an independent copy of this Column converted to colType
func (c *Column) Cast(colType tabula.ColumnType) (*Column, error) {
	res := c.clone()
	res.colType = colType
	res.data = make([]interface{}, len(c.data))
	res.mask = c.Mask()
	for i, v := range c.data {
		if c.IsMasked(i) {
			res.data[i] = colType.Zero()
			continue
		}
		coerced, err := res.Coerce(v)
		if err != nil {
			return nil, err
		}
		res.data[i] = coerced
	}
	return res, nil
}

// Append adds a value to the end of this Column
func (c *Column) Append(v interface{}) error {
	return c.Insert(len(c.data), v)
}

// Insert adds a value at position i, shifting later values up
func (c *Column) Insert(i int, v interface{}) error {
	if err := c.resizable("row insertion"); err != nil {
		return err
	}
	if i < 0 || i > len(c.data) {
		return errors.RowOutOfRange(c.info.Name, i, len(c.data))
	}
	coerced, err := c.Coerce(v)
	if err != nil {
		return err
	}
	missing := tabula.IsMissing(coerced)
	if missing {
		c.EnsureMask()
		coerced = c.colType.Zero()
	}
	c.data = util.InsertAt(c.data, i, coerced)
	if c.mask != nil {
		c.mask = util.InsertAt(c.mask, i, missing)
	}
	return nil
}

// Delete removes the given sorted, unique positions
func (c *Column) Delete(rows []int) error {
	if err := c.resizable("row removal"); err != nil {
		return err
	}
	for _, r := range rows {
		if err := c.checkRow(r); err != nil {
			return err
		}
	}
	c.data = util.DeleteRows(c.data, rows)
	if c.mask != nil {
		c.mask = util.DeleteRows(c.mask, rows)
	}
	return nil
}

// resizable rejects structural mutations of a Column claimed by a Table
func (c *Column) resizable(operation string) error {
	if !c.Resizable() {
		return errors.UnsupportedOperationError{Name: c.info.Name, Operation: operation + " outside of its table"}
	}
	return nil
}
