// Package mixin provides column types backed by foreign value types (times,
// physical quantities, coordinates) which a Table stores without converting
// them into regular columns.
package mixin

import (
	"fmt"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/internal/util"
)

// Names of the built-in mixin types
const (
	TimeType     = "time"
	QuantityType = "quantity"
	CoordsType   = "coords"
)

// base holds the state shared by every built-in mixin
type base struct {
	tabula.Ownership
	info     tabula.ColumnInfo
	mask     []bool
	watchers tabula.Watchers
}

// Info exposes this column's metadata
func (b *base) Info() *tabula.ColumnInfo {
	return &b.info
}

// Kind is always tabula.MixinKind
func (b *base) Kind() tabula.ColumnKind {
	return tabula.MixinKind
}

// Watch registers a callback for in-place value changes
func (b *base) Watch(fn tabula.ChangeFunc) (unwatch func()) {
	return b.watchers.Watch(fn)
}

// HasMask returns true iff this column carries a mask
func (b *base) HasMask() bool {
	return b.mask != nil
}

// Mask returns a copy of this column's mask, or nil
func (b *base) Mask() []bool {
	if b.mask == nil {
		return nil
	}
	return append([]bool(nil), b.mask...)
}

func (b *base) masked(i int) bool {
	return b.mask != nil && b.mask[i]
}

func (b *base) checkRow(i int, length int) error {
	if i < 0 || i >= length {
		return errors.RowOutOfRange(b.info.Name, i, length)
	}
	return nil
}

func (b *base) checkRange(lo, hi int, length int) error {
	if lo < 0 || lo > length {
		return errors.RowOutOfRange(b.info.Name, lo, length)
	}
	if hi < lo || hi > length {
		return errors.RowOutOfRange(b.info.Name, hi, length)
	}
	return nil
}

// checkRows validates positions for Take, where -1 requests a missing entry
func (b *base) checkRows(rows []int, length int) error {
	for _, r := range rows {
		if r >= length || r < -1 {
			return errors.RowOutOfRange(b.info.Name, r, length)
		}
	}
	return nil
}

// checkDelete validates positions for removal. Unlike Take, -1 is never a valid position.
func (b *base) checkDelete(rows []int, length int) error {
	if err := b.resizable("row removal"); err != nil {
		return err
	}
	for _, r := range rows {
		if r < 0 || r >= length {
			return errors.RowOutOfRange(b.info.Name, r, length)
		}
	}
	return nil
}

// resizable rejects structural mutations of a column claimed by a Table
func (b *base) resizable(operation string) error {
	if !b.Resizable() {
		return errors.UnsupportedOperationError{Name: b.info.Name, Operation: operation + " outside of its table"}
	}
	return nil
}

func (b *base) checkMask(mask []bool, length int) error {
	if mask != nil && len(mask) != length {
		return errors.InvalidMaskError{Name: b.info.Name, Expected: length, Actual: len(mask)}
	}
	return nil
}

// setMasked records whether position i is missing, materializing the mask on demand.
// length is the current number of values.
func (b *base) setMasked(i int, missing bool, length int) {
	if b.mask == nil {
		if !missing {
			return
		}
		b.mask = make([]bool, length)
	}
	b.mask[i] = missing
}

// insertMasked grows the mask by one at position i. length is the number of values before insertion.
func (b *base) insertMasked(i int, missing bool, length int) {
	if b.mask == nil {
		if !missing {
			return
		}
		b.mask = make([]bool, length)
	}
	b.mask = util.InsertAt(b.mask, i, missing)
}

func (b *base) deleteMasked(rows []int) {
	if b.mask != nil {
		b.mask = util.DeleteRows(b.mask, rows)
	}
}

func (b *base) sliceMasked(lo, hi int) []bool {
	if b.mask == nil {
		return nil
	}
	return append([]bool(nil), b.mask[lo:hi]...)
}

// clone copies metadata and mask, but never watchers or ownership
func (b *base) clone() base {
	return base{
		info: *b.info.Clone(),
		mask: b.Mask(),
	}
}

func (b *base) describe(kind string, length int) string {
	s := fmt.Sprintf("%s(%s)[%d]", kind, b.info.Name, length)
	if b.info.Unit != tabula.NoUnit {
		s += " " + b.info.Unit.String()
	}
	return s
}

func (b *base) incompatible(v interface{}, expected string, reason string) error {
	return errors.TypeIncompatibleError{Name: b.info.Name, Value: v, Expected: expected, Reason: reason}
}
