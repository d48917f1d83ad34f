package table

import (
	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/column"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/mixin"
	"github.com/go-sif/tabula/schema"
)

// toColumn turns user data into an independent column named name, applying the
// Table's unit policy and masking mode
func (t *Table) toColumn(name string, data interface{}) (tabula.Column, error) {
	var col tabula.Column
	switch d := data.(type) {
	case *column.Column:
		col = d.Copy()
	case tabula.MutableMixin:
		col = d.Copy()
	case tabula.MixinColumn:
		copied, err := d.Slice(0, d.Len())
		if err != nil {
			return nil, err
		}
		col = copied
	case tabula.Column:
		return nil, errors.UnsupportedOperationError{Name: name, Operation: "storage in a table"}
	default:
		if !column.IsSequence(data) {
			return nil, errors.TypeIncompatibleError{Name: name, Value: data, Expected: "a sequence or column"}
		}
		c, err := column.FromSlice(name, data)
		if err != nil {
			return nil, err
		}
		col = c
	}
	col.Info().Name = name
	col, err := t.applyUnitPolicy(col)
	if err != nil {
		return nil, err
	}
	if c, ok := col.(*column.Column); ok && t.masked {
		c.EnsureMask()
	}
	return col, nil
}

// applyUnitPolicy converts between quantity mixins and plain unit-bearing columns
func (t *Table) applyUnitPolicy(col tabula.Column) (tabula.Column, error) {
	switch c := col.(type) {
	case *mixin.Quantity:
		if t.unitPolicy == tabula.AlwaysPlainColumn {
			t.logger.Debug("converting quantity to plain column", "column", c.Info().Name, "unit", c.Unit())
			return column.FromQuantity(c), nil
		}
	case *column.Column:
		if t.unitPolicy == tabula.PreferQuantityMixin && c.Unit() != tabula.NoUnit && tabula.IsNumeric(c.Type()) {
			t.logger.Debug("converting plain column to quantity", "column", c.Name(), "unit", c.Unit())
			return c.ToQuantity()
		}
	}
	return col, nil
}

// store inserts an already converted column at position pos, and starts watching it
func (t *Table) store(pos int, col tabula.Column) (*schema.Field, error) {
	if t.schema.NumColumns() > 0 && col.Len() != t.rows {
		return nil, errors.LengthMismatchError{Name: col.Info().Name, Expected: t.rows, Actual: col.Len()}
	}
	field, err := t.schema.InsertColumn(pos, col)
	if err != nil {
		return nil, err
	}
	t.rows = col.Len()
	t.watch(field)
	return field, nil
}

// watch claims a stored column and follows its in-place changes
func (t *Table) watch(field *schema.Field) {
	if o, ok := field.Column().(tabula.Owned); ok && !o.Claim(t.owner) {
		// columns are copied on the way in, so this only happens through misuse of Owned
		t.logger.Warn("column is already claimed by another table", "table", t.id, "column", field.Name())
	}
	t.unwatch[field] = field.Watch(func(row int) {
		t.columnChanged(field, row)
	})
}

func (t *Table) detach(field *schema.Field) {
	if unwatch, ok := t.unwatch[field]; ok {
		unwatch()
		delete(t.unwatch, field)
	}
	if o, ok := field.Column().(tabula.Owned); ok {
		o.Release(t.owner)
	}
}

// structural runs a length-changing mutation of a stored column
func (t *Table) structural(field *schema.Field, fn func() error) error {
	if o, ok := field.Column().(tabula.Owned); ok {
		return o.Structural(t.owner, fn)
	}
	return fn()
}

// SetUnit attaches a unit to the named column. Tables which prefer quantity
// mixins convert numeric regular columns into quantities.
func (t *Table) SetUnit(name string, unit tabula.Unit) error {
	field, err := t.schema.GetField(name)
	if err != nil {
		return err
	}
	if q, ok := field.Mixin().(*mixin.Quantity); ok {
		q.SetUnit(unit)
		return nil
	}
	if field.Kind() != tabula.RegularKind {
		field.Column().Info().Unit = unit
		return nil
	}
	c := field.Regular()
	if t.unitPolicy != tabula.PreferQuantityMixin || unit == tabula.NoUnit || !tabula.IsNumeric(c.Type()) {
		c.SetUnit(unit)
		return nil
	}
	converted := c.Copy()
	converted.SetUnit(unit)
	q, err := t.applyUnitPolicy(converted)
	if err != nil {
		return err
	}
	return t.replace(name, q)
}
