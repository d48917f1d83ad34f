package schema

import (
	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/column"
	"github.com/go-sif/tabula/errors"
)

// Field is a column stored within a Schema. It is a tagged variant over the
// two column representations, resolved once when the column is inserted.
type Field struct {
	idx     int
	kind    tabula.ColumnKind
	regular *column.Column
	mixin   tabula.MixinColumn
}

// NewField wraps a column, resolving its representation
func NewField(col tabula.Column) (*Field, error) {
	switch c := col.(type) {
	case *column.Column:
		return &Field{idx: -1, kind: tabula.RegularKind, regular: c}, nil
	case tabula.MixinColumn:
		return &Field{idx: -1, kind: tabula.MixinKind, mixin: c}, nil
	}
	return nil, errors.UnsupportedOperationError{Name: col.Info().Name, Operation: "storage in a table"}
}

// Index returns the position of this Field within its Schema
func (f *Field) Index() int {
	return f.idx
}

// Kind returns the representation of this Field
func (f *Field) Kind() tabula.ColumnKind {
	return f.kind
}

// Name returns the name of this Field
func (f *Field) Name() string {
	return f.Column().Info().Name
}

// Column returns the stored column object
func (f *Field) Column() tabula.Column {
	if f.kind == tabula.MixinKind {
		return f.mixin
	}
	return f.regular
}

// Regular returns the stored column if it is a regular column, nil otherwise
func (f *Field) Regular() *column.Column {
	return f.regular
}

// Mixin returns the stored column if it is a mixin column, nil otherwise
func (f *Field) Mixin() tabula.MixinColumn {
	return f.mixin
}

// TypeName returns a stable name for the value type of this Field
func (f *Field) TypeName() string {
	return tabula.TypeName(f.Column())
}

// Len returns the number of values in this Field
func (f *Field) Len() int {
	return f.Column().Len()
}

// At returns the value at position i, or tabula.Missing
func (f *Field) At(i int) (interface{}, error) {
	if f.kind == tabula.MixinKind {
		return f.mixin.At(i)
	}
	return f.regular.At(i)
}

func (f *Field) mutable(operation string) (tabula.MutableMixin, error) {
	m, ok := f.mixin.(tabula.MutableMixin)
	if !ok {
		return nil, errors.UnsupportedOperationError{Name: f.Name(), Operation: operation}
	}
	return m, nil
}

// Coerce validates and converts a value for storage in this Field
func (f *Field) Coerce(v interface{}) (interface{}, error) {
	if f.kind == tabula.RegularKind {
		return f.regular.Coerce(v)
	}
	m, err := f.mutable("assignment")
	if err != nil {
		return nil, err
	}
	return m.Coerce(v)
}

// SetAt overwrites a single value
func (f *Field) SetAt(i int, v interface{}) error {
	if f.kind == tabula.RegularKind {
		return f.regular.Set(i, v)
	}
	m, err := f.mutable("assignment")
	if err != nil {
		return err
	}
	return m.SetAt(i, v)
}

// Insert adds a value at position i
func (f *Field) Insert(i int, v interface{}) error {
	if f.kind == tabula.RegularKind {
		return f.regular.Insert(i, v)
	}
	m, err := f.mutable("row insertion")
	if err != nil {
		return err
	}
	return m.Insert(i, v)
}

// Delete removes the given sorted, unique positions
func (f *Field) Delete(rows []int) error {
	if f.kind == tabula.RegularKind {
		return f.regular.Delete(rows)
	}
	m, err := f.mutable("row removal")
	if err != nil {
		return err
	}
	return m.Delete(rows)
}

// CanMutate returns nil iff rows can be added to and removed from this Field
func (f *Field) CanMutate() error {
	if f.kind == tabula.RegularKind {
		return nil
	}
	_, err := f.mutable("row mutation")
	return err
}

// Watch registers a callback for in-place value changes. Immutable mixins never change.
func (f *Field) Watch(fn tabula.ChangeFunc) (unwatch func()) {
	if f.kind == tabula.RegularKind {
		return f.regular.Watch(fn)
	}
	if m, ok := f.mixin.(tabula.MutableMixin); ok {
		return m.Watch(fn)
	}
	return func() {}
}

// Slice returns a detached Field holding an independent copy of positions [lo, hi)
func (f *Field) Slice(lo, hi int) (*Field, error) {
	if f.kind == tabula.RegularKind {
		c, err := f.regular.Slice(lo, hi)
		if err != nil {
			return nil, err
		}
		return &Field{idx: -1, kind: f.kind, regular: c}, nil
	}
	m, err := f.mixin.Slice(lo, hi)
	if err != nil {
		return nil, err
	}
	return &Field{idx: -1, kind: f.kind, mixin: m}, nil
}

// Take returns a detached Field holding an independent copy of the given positions.
// -1 produces a missing value.
func (f *Field) Take(rows []int) (*Field, error) {
	if f.kind == tabula.RegularKind {
		c, err := f.regular.Take(rows)
		if err != nil {
			return nil, err
		}
		return &Field{idx: -1, kind: f.kind, regular: c}, nil
	}
	m, err := f.mixin.Take(rows)
	if err != nil {
		return nil, err
	}
	return &Field{idx: -1, kind: f.kind, mixin: m}, nil
}

// Copy returns a detached Field holding an independent copy of this Field's column
func (f *Field) Copy() (*Field, error) {
	if f.kind == tabula.RegularKind {
		return &Field{idx: -1, kind: f.kind, regular: f.regular.Copy()}, nil
	}
	if m, ok := f.mixin.(tabula.MutableMixin); ok {
		return &Field{idx: -1, kind: f.kind, mixin: m.Copy()}, nil
	}
	return f.Slice(0, f.Len())
}
