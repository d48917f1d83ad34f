package tabula

// ColumnKind tags the two representations a Table can hold
type ColumnKind int

const (
	// RegularKind columns are backed by a column.Column
	RegularKind ColumnKind = iota
	// MixinKind columns are backed by a foreign type implementing MixinColumn
	MixinKind
)

// String returns a readable name for this ColumnKind
func (k ColumnKind) String() string {
	if k == MixinKind {
		return "mixin"
	}
	return "regular"
}

// ColumnInfo is the minimal metadata every column exposes. Tables keep
// Name in sync with the name the column is stored under.
type ColumnInfo struct {
	Name        string
	Unit        Unit
	Format      string // fmt verb used to render a single value, e.g. "%.3f"
	Description string
	Meta        Meta
}

// Clone returns a deep copy of this ColumnInfo
func (ci *ColumnInfo) Clone() *ColumnInfo {
	return &ColumnInfo{
		Name:        ci.Name,
		Unit:        ci.Unit,
		Format:      ci.Format,
		Description: ci.Description,
		Meta:        ci.Meta.Clone(),
	}
}

// Column is the capability set shared by every column stored in a Table
type Column interface {
	Len() int                      // Len returns the number of values in this Column
	At(i int) (interface{}, error) // At returns the value at position i, or Missing
	Info() *ColumnInfo             // Info exposes this Column's (mutable) metadata
	Kind() ColumnKind              // Kind reports whether this is a regular or mixin Column
	String() string                // String produces a short description of this Column
}

// Typed is implemented by columns with a single ColumnType for all their values
type Typed interface {
	Type() ColumnType
}

// MixinColumn is a column backed by a foreign value type (times, coordinates,
// quantities...), stored in a Table without conversion
type MixinColumn interface {
	Column
	MixinType() string                     // MixinType names the foreign type, e.g. "time"
	Slice(lo, hi int) (MixinColumn, error) // Slice returns an independent copy of positions [lo, hi)
	Take(rows []int) (MixinColumn, error)  // Take returns an independent copy of the given positions. -1 yields a missing entry, if supported.
}

// MutableMixin is a MixinColumn which supports the row-structural mutations
// a Table performs (adding, inserting, deleting and assigning rows)
type MutableMixin interface {
	MixinColumn
	Coerce(v interface{}) (interface{}, error) // Coerce validates and converts a value without storing it
	SetAt(i int, v interface{}) error          // SetAt overwrites a single value. Notifies watchers.
	Append(v interface{}) error                // Append adds a previously coerced value to the end
	Insert(i int, v interface{}) error         // Insert adds a previously coerced value at position i
	Delete(rows []int) error                   // Delete removes the given (sorted, unique) positions
	Copy() MutableMixin                        // Copy returns an independent copy without watchers
	Watch(fn ChangeFunc) (unwatch func())      // Watch registers a callback for in-place value changes
}

// TypeName produces a stable name for the value type of a column,
// used when comparing the layouts of two Tables
func TypeName(col Column) string {
	if t, ok := col.(Typed); ok {
		return t.Type().Name()
	}
	if m, ok := col.(MixinColumn); ok {
		return "mixin:" + m.MixinType()
	}
	return "unknown"
}

// Maskable is implemented by columns which can mark individual values as missing
type Maskable interface {
	HasMask() bool // HasMask returns true iff this column carries a mask
	Mask() []bool  // Mask returns a copy of the mask, or nil when unmasked
}

// IsMaskedAt returns true iff position i of col holds a missing value
func IsMaskedAt(col Column, i int) bool {
	v, err := col.At(i)
	return err == nil && IsMissing(v)
}
