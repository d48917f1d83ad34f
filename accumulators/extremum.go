package accumulators

import (
	"fmt"

	"github.com/go-sif/tabula"
)

// Minimizer returns a new Extremum Accumulator tracking the smallest value of a column
func Minimizer(colName string) tabula.AccumulatorFactory {
	return func() tabula.Accumulator {
		return &Extremum{colName: colName, sign: -1}
	}
}

// Maximizer returns a new Extremum Accumulator tracking the largest value of a column
func Maximizer(colName string) tabula.AccumulatorFactory {
	return func() tabula.Accumulator {
		return &Extremum{colName: colName, sign: 1}
	}
}

// Extremum tracks the smallest or largest non-missing value of an orderable column
type Extremum struct {
	colName string
	sign    int
	value   interface{}
	seen    bool
}

func (a *Extremum) offer(v interface{}) error {
	if tabula.IsMissing(v) {
		return nil
	}
	if !a.seen {
		a.value, a.seen = v, true
		return nil
	}
	c, err := tabula.CompareValues(v, a.value)
	if err != nil {
		return err
	}
	if c*a.sign > 0 {
		a.value = v
	}
	return nil
}

// Accumulate adds a row to this Accumulator
func (a *Extremum) Accumulate(row tabula.RowReader) error {
	v, err := row.Get(a.colName)
	if err != nil {
		return err
	}
	return a.offer(v)
}

// Merge merges another Accumulator into this one
func (a *Extremum) Merge(o tabula.Accumulator) error {
	ca, ok := o.(*Extremum)
	if !ok || ca.sign != a.sign {
		return fmt.Errorf("Incoming accumulator is not a matching Extremum Accumulator")
	}
	if !ca.seen {
		return nil
	}
	return a.offer(ca.value)
}

// Result returns the extreme value, or tabula.Missing if no values were seen
func (a *Extremum) Result() interface{} {
	if !a.seen {
		return tabula.Missing
	}
	return a.value
}
