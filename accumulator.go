package tabula

// RowReader reads the values of a single row by column name
type RowReader interface {
	Get(name string) (interface{}, error)
}

// An Accumulator is a reduction technique which siphons rows into a custom data
// structure. Accumulators which saw different subsets of rows can be merged.
type Accumulator interface {
	Accumulate(row RowReader) error // Accumulate adds a row to this Accumulator
	Merge(o Accumulator) error      // Merge merges another Accumulator into this one
	Result() interface{}            // Result returns the reduced value, or Missing when nothing was accumulated
}

// AccumulatorFactory produces fresh Accumulators
type AccumulatorFactory func() Accumulator
