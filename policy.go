package tabula

import "fmt"

// UnitPolicy controls how a Table stores unit-bearing columns. It is fixed when
// the Table is constructed and consulted whenever a column is assigned.
type UnitPolicy int

const (
	// AlwaysPlainColumn converts quantity mixins into plain float64 columns which carry the unit as metadata
	AlwaysPlainColumn UnitPolicy = iota
	// PreferQuantityMixin keeps quantity mixins, and converts numeric plain columns with a unit into quantities
	PreferQuantityMixin
)

// String returns the configuration name of this UnitPolicy
func (p UnitPolicy) String() string {
	if p == PreferQuantityMixin {
		return "prefer-quantity"
	}
	return "plain"
}

// ParseUnitPolicy parses a configuration name produced by UnitPolicy.String
func ParseUnitPolicy(name string) (UnitPolicy, error) {
	switch name {
	case "", "plain":
		return AlwaysPlainColumn, nil
	case "prefer-quantity", "quantity":
		return PreferQuantityMixin, nil
	}
	return AlwaysPlainColumn, fmt.Errorf("Unknown unit policy %s", name)
}

// MissingPolicy controls how an Index treats rows whose key contains a missing value
type MissingPolicy int

const (
	// ExcludeMissing leaves rows with missing keys out of the Index entirely
	ExcludeMissing MissingPolicy = iota
	// MissingBucket keeps rows with missing keys in a reserved bucket, reachable via
	// LookupMissing or Lookup(Missing). Ranges never include them.
	MissingBucket
)

// String returns the configuration name of this MissingPolicy
func (p MissingPolicy) String() string {
	if p == MissingBucket {
		return "bucket"
	}
	return "exclude"
}

// ParseMissingPolicy parses a configuration name produced by MissingPolicy.String
func ParseMissingPolicy(name string) (MissingPolicy, error) {
	switch name {
	case "", "exclude":
		return ExcludeMissing, nil
	case "bucket":
		return MissingBucket, nil
	}
	return ExcludeMissing, fmt.Errorf("Unknown missing-value policy %s", name)
}

// IndexEngine selects the data structure backing an Index
type IndexEngine int

const (
	// SortedArrayEngine keeps keys in a sorted array. Efficient range queries.
	SortedArrayEngine IndexEngine = iota
	// HashEngine buckets rows by a hash of their key. Efficient exact-match queries.
	HashEngine
)

// String returns the configuration name of this IndexEngine
func (e IndexEngine) String() string {
	if e == HashEngine {
		return "hash"
	}
	return "sorted"
}

// ParseIndexEngine parses a configuration name produced by IndexEngine.String
func ParseIndexEngine(name string) (IndexEngine, error) {
	switch name {
	case "", "sorted":
		return SortedArrayEngine, nil
	case "hash":
		return HashEngine, nil
	}
	return SortedArrayEngine, fmt.Errorf("Unknown index engine %s", name)
}

// MetaConflictPolicy controls how conflicting metadata values are resolved when Tables are combined
type MetaConflictPolicy int

const (
	// FirstWins keeps the value from the first source, logging a warning
	FirstWins MetaConflictPolicy = iota
	// LastWins keeps the value from the last source, logging a warning
	LastWins
	// ErrorOnConflict fails the operation, reporting every conflicting key
	ErrorOnConflict
)

// String returns the configuration name of this MetaConflictPolicy
func (p MetaConflictPolicy) String() string {
	switch p {
	case LastWins:
		return "last-wins"
	case ErrorOnConflict:
		return "error"
	}
	return "first-wins"
}

// ParseMetaConflictPolicy parses a configuration name produced by MetaConflictPolicy.String
func ParseMetaConflictPolicy(name string) (MetaConflictPolicy, error) {
	switch name {
	case "", "first-wins":
		return FirstWins, nil
	case "last-wins":
		return LastWins, nil
	case "error":
		return ErrorOnConflict, nil
	}
	return FirstWins, fmt.Errorf("Unknown metadata conflict policy %s", name)
}

// JoinType selects which rows (or columns, when stacking) survive a combination of Tables
type JoinType int

const (
	// InnerJoin keeps only matching rows (or common columns)
	InnerJoin JoinType = iota
	// LeftJoin keeps every row of the left Table
	LeftJoin
	// RightJoin keeps every row of the right Table
	RightJoin
	// OuterJoin keeps every row (or column), filling gaps with missing values
	OuterJoin
	// ExactJoin requires both sides to match exactly (stacking only)
	ExactJoin
)

// String returns a readable name for this JoinType
func (j JoinType) String() string {
	switch j {
	case LeftJoin:
		return "left"
	case RightJoin:
		return "right"
	case OuterJoin:
		return "outer"
	case ExactJoin:
		return "exact"
	}
	return "inner"
}
