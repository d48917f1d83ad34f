package operations

import (
	"fmt"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/column"
	"github.com/go-sif/tabula/errors"
)

// unifyTypes picks a ColumnType able to hold values of every given type.
// Integers are promoted to floats when mixed with them.
func unifyTypes(name string, types []tabula.ColumnType) (tabula.ColumnType, error) {
	first := types[0]
	same, numeric, integer := true, true, true
	for _, t := range types {
		same = same && t.Name() == first.Name()
		numeric = numeric && tabula.IsNumeric(t)
		integer = integer && tabula.IsInteger(t)
	}
	switch {
	case same:
		return first, nil
	case integer:
		return &tabula.Int64ColumnType{}, nil
	case numeric:
		return &tabula.Float64ColumnType{}, nil
	}
	for _, t := range types {
		if t.Name() != first.Name() {
			return nil, errors.TypeIncompatibleError{Name: name, Value: t.Name(), Expected: first.Name(), Reason: "column types cannot be combined"}
		}
	}
	return first, nil
}

// takeColumn copies the given positions of col. -1 produces a missing value.
func takeColumn(col tabula.Column, rows []int) (tabula.Column, error) {
	switch c := col.(type) {
	case *column.Column:
		return c.Take(rows)
	case tabula.MixinColumn:
		return c.Take(rows)
	}
	return nil, errors.UnsupportedOperationError{Name: col.Info().Name, Operation: "taking rows"}
}

// sliceColumn copies positions [lo, hi) of col
func sliceColumn(col tabula.Column, lo, hi int) (tabula.Column, error) {
	switch c := col.(type) {
	case *column.Column:
		return c.Slice(lo, hi)
	case tabula.MixinColumn:
		return c.Slice(lo, hi)
	}
	return nil, errors.UnsupportedOperationError{Name: col.Info().Name, Operation: "slicing"}
}

// fill overwrites single positions of a column copy
func fill(col tabula.Column, values map[int]interface{}) error {
	var set func(i int, v interface{}) error
	switch c := col.(type) {
	case *column.Column:
		set = c.Set
	case tabula.MutableMixin:
		set = c.SetAt
	default:
		if len(values) > 0 {
			return errors.UnsupportedOperationError{Name: col.Info().Name, Operation: "assignment"}
		}
	}
	for i, v := range values {
		if err := set(i, v); err != nil {
			return err
		}
	}
	return nil
}

// stacker concatenates the parts of one output column. A nil part stands for
// an input without this column, and contributes missing values.
type stacker struct {
	name   string
	parts  []tabula.Column
	lens   []int
	merger *MetaMerger
}

func (s *stacker) present() []tabula.Column {
	var res []tabula.Column
	for _, p := range s.parts {
		if p != nil {
			res = append(res, p)
		}
	}
	return res
}

func (s *stacker) info() (*tabula.ColumnInfo, error) {
	present := s.present()
	info := present[0].Info().Clone()
	metas := make([]tabula.Meta, len(present))
	for i, p := range present {
		if p.Info().Unit != info.Unit {
			return nil, errors.TypeIncompatibleError{Name: s.name, Value: p.Info().Unit, Expected: fmt.Sprintf("unit %q", info.Unit), Reason: "units differ"}
		}
		metas[i] = p.Info().Meta
	}
	meta, err := s.merger.Merge(metas...)
	if err != nil {
		return nil, err
	}
	if len(meta) > 0 {
		info.Meta = meta
	}
	info.Name = s.name
	return info, nil
}

func (s *stacker) stack() (tabula.Column, error) {
	present := s.present()
	regular := make([]*column.Column, 0, len(present))
	for _, p := range present {
		if c, ok := p.(*column.Column); ok {
			regular = append(regular, c)
		}
	}
	info, err := s.info()
	if err != nil {
		return nil, err
	}
	switch {
	case len(regular) == len(present):
		return s.stackRegular(regular, info)
	case len(regular) == 0:
		return s.stackMixins(present, info)
	}
	return nil, errors.TypeIncompatibleError{Name: s.name, Value: tabula.TypeName(regular[0]), Expected: tabula.TypeName(present[0]), Reason: "cannot stack regular and mixin columns"}
}

func (s *stacker) stackRegular(regular []*column.Column, info *tabula.ColumnInfo) (tabula.Column, error) {
	types := make([]tabula.ColumnType, len(regular))
	for i, c := range regular {
		types[i] = c.Type()
	}
	colType, err := unifyTypes(s.name, types)
	if err != nil {
		return nil, err
	}
	var values []interface{}
	for i, p := range s.parts {
		if p == nil {
			for j := 0; j < s.lens[i]; j++ {
				values = append(values, tabula.Missing)
			}
			continue
		}
		values = append(values, p.(*column.Column).Values()...)
	}
	res, err := column.New(s.name, colType, values)
	if err != nil {
		return nil, err
	}
	*res.Info() = *info
	return res, nil
}

func (s *stacker) stackMixins(present []tabula.Column, info *tabula.ColumnInfo) (tabula.Column, error) {
	first, ok := present[0].(tabula.MutableMixin)
	if !ok {
		return nil, errors.UnsupportedOperationError{Name: s.name, Operation: "stacking"}
	}
	for _, p := range present[1:] {
		if tabula.TypeName(p) != tabula.TypeName(first) {
			return nil, errors.TypeIncompatibleError{Name: s.name, Value: tabula.TypeName(p), Expected: tabula.TypeName(first), Reason: "mixin types differ"}
		}
	}
	res := first.Copy()
	if err := res.Delete(allRows(res.Len())); err != nil {
		return nil, err
	}
	for i, p := range s.parts {
		for j := 0; j < s.lens[i]; j++ {
			v := tabula.Missing
			if p != nil {
				var err error
				if v, err = p.At(j); err != nil {
					return nil, err
				}
			}
			coerced, err := res.Coerce(v)
			if err != nil {
				return nil, err
			}
			if err := res.Append(coerced); err != nil {
				return nil, err
			}
		}
	}
	*res.Info() = *info
	return res, nil
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

// castColumn converts a regular column to colType, returning col itself when it already has that type
func castColumn(col tabula.Column, colType tabula.ColumnType) (tabula.Column, error) {
	c, ok := col.(*column.Column)
	if !ok || c.Type().Name() == colType.Name() {
		return col, nil
	}
	return c.Cast(colType)
}
