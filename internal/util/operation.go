package util

import (
	"fmt"
)

// SafeRowPredicate wraps a row predicate such that panics are recovered and nice error
// messages are constructed. describe renders the row for the message.
func SafeRowPredicate(pred func(row int) (bool, error), describe func(row int) string) func(row int) (bool, error) {
	return func(row int) (keep bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Filter Panic: %w\nRow: %s\n%s", anErr, describe(row), GetTrace())
				} else {
					err = fmt.Errorf("Filter Panic: %v\nRow: %s\n%s", r, describe(row), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Filter Error: %w\nRow: %s", err, describe(row))
			}
		}()
		keep, err = pred(row)
		return
	}
}

// SafeRowComparison wraps a comparison of two rows such that panics are recovered and nice
// error messages are constructed
func SafeRowComparison(cmp func(i, j int) (int, error), describe func(row int) string) func(i, j int) (int, error) {
	return func(i, j int) (c int, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Comparison Panic: %w\nLRow: %s\nRRow: %s\n%s", anErr, describe(i), describe(j), GetTrace())
				} else {
					err = fmt.Errorf("Comparison Panic: %v\nLRow: %s\nRRow: %s\n%s", r, describe(i), describe(j), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Comparison Error: %w\nLRow: %s\nRRow: %s", err, describe(i), describe(j))
			}
		}()
		c, err = cmp(i, j)
		return
	}
}

// SafeAccumulation wraps the accumulation of a single value such that panics are recovered
// and nice error messages are constructed
func SafeAccumulation(acc func(v interface{}) error, column string) func(v interface{}) error {
	return func(v interface{}) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Accumulation Panic: %w\nColumn: %s\nValue: %#v\n%s", anErr, column, v, GetTrace())
				} else {
					err = fmt.Errorf("Accumulation Panic: %v\nColumn: %s\nValue: %#v\n%s", r, column, v, GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Accumulation Error: %w\nColumn: %s\nValue: %#v", err, column, v)
			}
		}()
		err = acc(v)
		return
	}
}
