package errors

import (
	"fmt"
)

// MissingValueError occurs when a typed accessor reads a masked value
type MissingValueError struct {
	Name string
	Row  int
}

// Error returns a textual representation of this MissingValueError
func (e MissingValueError) Error() string {
	return fmt.Sprintf("Value for column %s at row %d is missing", e.Name, e.Row)
}

// LengthMismatchError occurs when a column or row does not have the length
// required by the Table it is being assigned to
type LengthMismatchError struct {
	Name     string // column name, or "row" for row-wise assignments
	Expected int
	Actual   int
}

// Error returns a textual representation of this LengthMismatchError
func (e LengthMismatchError) Error() string {
	return fmt.Sprintf("Length mismatch for %s: expected %d, got %d", e.Name, e.Expected, e.Actual)
}

// DuplicateNameError occurs when a column (or index) name collides with an existing one
type DuplicateNameError struct {
	Name string
	What string
}

// Error returns a textual representation of this DuplicateNameError
func (e DuplicateNameError) Error() string {
	what := e.What
	if what == "" {
		what = "column"
	}
	return fmt.Sprintf("Duplicate %s name %s", what, e.Name)
}

// NotFoundError occurs when a column name is unknown, or a row index is out of range
type NotFoundError struct {
	What   string // "column", "row", "index"
	Name   string
	Index  int
	Length int
}

// ColumnNotFound builds a NotFoundError for an unknown column name
func ColumnNotFound(name string) NotFoundError {
	return NotFoundError{What: "column", Name: name, Index: -1}
}

// RowOutOfRange builds a NotFoundError for a row position outside of [0, length)
func RowOutOfRange(name string, idx int, length int) NotFoundError {
	return NotFoundError{What: "row", Name: name, Index: idx, Length: length}
}

// Error returns a textual representation of this NotFoundError
func (e NotFoundError) Error() string {
	switch e.What {
	case "row":
		if e.Name != "" {
			return fmt.Sprintf("Row %d is out of range [0, %d) in %s", e.Index, e.Length, e.Name)
		}
		return fmt.Sprintf("Row %d is out of range [0, %d)", e.Index, e.Length)
	case "":
		return fmt.Sprintf("%s does not exist", e.Name)
	default:
		return fmt.Sprintf("No %s named %s", e.What, e.Name)
	}
}

// TypeIncompatibleError occurs when a value cannot be coerced into a column's element type or unit
type TypeIncompatibleError struct {
	Name     string
	Value    interface{}
	Expected string
	Reason   string
}

// Error returns a textual representation of this TypeIncompatibleError
func (e TypeIncompatibleError) Error() string {
	msg := fmt.Sprintf("Column %s: value %#v is not compatible with %s", e.Name, e.Value, e.Expected)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// InvalidMaskError occurs when a mask does not match the length of its column
type InvalidMaskError struct {
	Name     string
	Expected int
	Actual   int
}

// Error returns a textual representation of this InvalidMaskError
func (e InvalidMaskError) Error() string {
	return fmt.Sprintf("Mask for column %s has length %d, expected %d", e.Name, e.Actual, e.Expected)
}

// MergeConflictError occurs when metadata from two sources disagree and the
// conflict policy does not allow either to win
type MergeConflictError struct {
	Key   string
	Left  interface{}
	Right interface{}
}

// Error returns a textual representation of this MergeConflictError
func (e MergeConflictError) Error() string {
	return fmt.Sprintf("Metadata conflict for key %s: %#v != %#v", e.Key, e.Left, e.Right)
}

// UnsupportedOperationError occurs when a column does not provide the capability an operation requires
type UnsupportedOperationError struct {
	Name      string
	Operation string
}

// Error returns a textual representation of this UnsupportedOperationError
func (e UnsupportedOperationError) Error() string {
	return fmt.Sprintf("Column %s does not support %s", e.Name, e.Operation)
}
