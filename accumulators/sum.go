package accumulators

import (
	"fmt"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
)

// numeric reads a numeric value from a row. ok is false for missing values.
func numeric(row tabula.RowReader, colName string) (f float64, ok bool, err error) {
	v, err := row.Get(colName)
	if err != nil {
		return 0, false, err
	}
	if tabula.IsMissing(v) {
		return 0, false, nil
	}
	f, isNumber := tabula.ToFloat64(v)
	if !isNumber {
		return 0, false, errors.TypeIncompatibleError{Name: colName, Value: v, Expected: "number"}
	}
	return f, true, nil
}

// Adder returns a new Sum Accumulator
func Adder(colName string) tabula.AccumulatorFactory {
	return func() tabula.Accumulator {
		return &Sum{colName: colName}
	}
}

// Sum sums the non-missing values of a numeric column
type Sum struct {
	colName string
	sum     float64
}

// GetSum returns the sum from this Accumulator
func (a *Sum) GetSum() float64 {
	return a.sum
}

// Accumulate adds a row to this Accumulator
func (a *Sum) Accumulate(row tabula.RowReader) error {
	v, ok, err := numeric(row, a.colName)
	if err != nil {
		return err
	}
	if ok {
		a.sum += v
	}
	return nil
}

// Merge merges another Accumulator into this one
func (a *Sum) Merge(o tabula.Accumulator) error {
	ca, ok := o.(*Sum)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Sum Accumulator")
	}
	a.sum += ca.sum
	return nil
}

// Result returns the sum
func (a *Sum) Result() interface{} {
	return a.sum
}

// Averager returns a new Mean Accumulator
func Averager(colName string) tabula.AccumulatorFactory {
	return func() tabula.Accumulator {
		return &Mean{colName: colName}
	}
}

// Mean averages the non-missing values of a numeric column
type Mean struct {
	colName string
	sum     float64
	count   int64
}

// Accumulate adds a row to this Accumulator
func (a *Mean) Accumulate(row tabula.RowReader) error {
	v, ok, err := numeric(row, a.colName)
	if err != nil {
		return err
	}
	if ok {
		a.sum += v
		a.count++
	}
	return nil
}

// Merge merges another Accumulator into this one
func (a *Mean) Merge(o tabula.Accumulator) error {
	ca, ok := o.(*Mean)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Mean Accumulator")
	}
	a.sum += ca.sum
	a.count += ca.count
	return nil
}

// Result returns the mean, or tabula.Missing if no values were seen
func (a *Mean) Result() interface{} {
	if a.count == 0 {
		return tabula.Missing
	}
	return a.sum / float64(a.count)
}
