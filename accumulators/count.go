package accumulators

import (
	"fmt"

	"github.com/go-sif/tabula"
)

// Counter returns a new Count Accumulator
func Counter() tabula.Accumulator {
	return new(Count)
}

// Count counts records
type Count struct {
	count int64
}

// GetCount returns the row count from this Accumulator
func (a *Count) GetCount() int64 {
	return a.count
}

// Accumulate adds a row to this Accumulator
func (a *Count) Accumulate(row tabula.RowReader) error {
	a.count++
	return nil
}

// Merge merges another Accumulator into this one
func (a *Count) Merge(o tabula.Accumulator) error {
	ca, ok := o.(*Count)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Count Accumulator")
	}
	a.count += ca.count
	return nil
}

// Result returns the row count
func (a *Count) Result() interface{} {
	return a.count
}
