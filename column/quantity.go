package column

import (
	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/mixin"
)

// ToQuantity converts this Column into a Quantity mixin. The Column must carry a unit
// and hold numbers.
func (c *Column) ToQuantity() (*mixin.Quantity, error) {
	if c.info.Unit == tabula.NoUnit {
		return nil, errors.TypeIncompatibleError{Name: c.info.Name, Value: c.colType.Name(), Expected: "quantity", Reason: "column has no unit"}
	}
	if !tabula.IsNumeric(c.colType) {
		return nil, errors.TypeIncompatibleError{Name: c.info.Name, Value: c.colType.Name(), Expected: "quantity", Reason: "column is not numeric"}
	}
	values := make([]float64, len(c.data))
	for i, v := range c.data {
		values[i], _ = tabula.ToFloat64(v)
	}
	q, err := mixin.NewQuantityMasked(c.info.Name, values, c.info.Unit, c.Mask())
	if err != nil {
		return nil, err
	}
	*q.Info() = *c.info.Clone()
	return q, nil
}

// FromQuantity converts a Quantity mixin into a float64 Column carrying its unit
func FromQuantity(q *mixin.Quantity) *Column {
	values := q.Values()
	c := &Column{
		info:    *q.Info().Clone(),
		colType: &tabula.Float64ColumnType{},
		data:    make([]interface{}, len(values)),
		mask:    q.Mask(),
	}
	for i, v := range values {
		if c.mask != nil && c.mask[i] {
			v = 0
		}
		c.data[i] = v
	}
	return c
}
