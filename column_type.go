package tabula

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"
)

// ColumnType is an interface which is implemented to define the element type of a regular column.
// Values are always stored in their canonical Go representation (e.g. int64 for Int64ColumnType),
// which Coerce produces from any compatible input.
type ColumnType interface {
	Name() string                              // Name returns a stable identifier for this type, e.g. "int64"
	Zero() interface{}                         // Zero returns the value stored under a masked entry
	Coerce(v interface{}) (interface{}, error) // Coerce converts v into the canonical representation, or fails
	Compare(a, b interface{}) int              // Compare orders two coerced values
	ToString(v interface{}) string             // ToString produces a string representation of a coerced value
}

// IsNumeric returns true iff values of colType can be viewed as float64s
func IsNumeric(colType ColumnType) bool {
	switch colType.(type) {
	case *Int8ColumnType, *Int16ColumnType, *Int32ColumnType, *Int64ColumnType,
		*Uint8ColumnType, *Uint16ColumnType, *Uint32ColumnType, *Uint64ColumnType,
		*Float32ColumnType, *Float64ColumnType:
		return true
	}
	return false
}

// IsInteger returns true iff colType stores signed or unsigned integers
func IsInteger(colType ColumnType) bool {
	return IsNumeric(colType) && !isFloat(colType)
}

func isFloat(colType ColumnType) bool {
	switch colType.(type) {
	case *Float32ColumnType, *Float64ColumnType:
		return true
	}
	return false
}

// ColumnTypeByName returns a fresh ColumnType for a name produced by ColumnType.Name
func ColumnTypeByName(name string) (ColumnType, error) {
	switch name {
	case "bool":
		return &BoolColumnType{}, nil
	case "int8":
		return &Int8ColumnType{}, nil
	case "int16":
		return &Int16ColumnType{}, nil
	case "int32":
		return &Int32ColumnType{}, nil
	case "int64":
		return &Int64ColumnType{}, nil
	case "uint8":
		return &Uint8ColumnType{}, nil
	case "uint16":
		return &Uint16ColumnType{}, nil
	case "uint32":
		return &Uint32ColumnType{}, nil
	case "uint64":
		return &Uint64ColumnType{}, nil
	case "float32":
		return &Float32ColumnType{}, nil
	case "float64":
		return &Float64ColumnType{}, nil
	case "string":
		return &StringColumnType{}, nil
	case "bytes":
		return &BytesColumnType{}, nil
	case "object":
		return &ObjectColumnType{}, nil
	}
	if strings.HasPrefix(name, "time") {
		format := strings.TrimPrefix(strings.TrimPrefix(name, "time"), ":")
		return &TimeColumnType{Format: format}, nil
	}
	return nil, fmt.Errorf("Unknown column type %s", name)
}

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// Name of a BoolColumnType
func (b *BoolColumnType) Name() string { return "bool" }

// Zero value of a BoolColumnType
func (b *BoolColumnType) Zero() interface{} { return false }

// Coerce converts v into a bool
func (b *BoolColumnType) Coerce(v interface{}) (interface{}, error) {
	bv, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("not a boolean")
	}
	return bv, nil
}

// Compare orders false before true
func (b *BoolColumnType) Compare(x, y interface{}) int {
	bx, by := x.(bool), y.(bool)
	switch {
	case bx == by:
		return 0
	case !bx:
		return -1
	default:
		return 1
	}
}

// ToString produces a string representation of a value of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%t", v.(bool))
}

// signedColumnType implements the shared behaviour of the signed integer column types
type signedColumnType struct {
	name     string
	min, max int64
}

func (s signedColumnType) coerce(v interface{}) (int64, error) {
	iv, ok := ToInt64(v)
	if !ok {
		return 0, fmt.Errorf("not an integer")
	}
	if iv < s.min || iv > s.max {
		return 0, fmt.Errorf("out of range for %s", s.name)
	}
	return iv, nil
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareFloat64 orders NaNs after every other value, and equal to each other
func compareFloat64(a, b float64) int {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Int8ColumnType is a column type which stores a int8 value
type Int8ColumnType struct{}

var int8Range = signedColumnType{"int8", math.MinInt8, math.MaxInt8}

// Name of a Int8ColumnType
func (b *Int8ColumnType) Name() string { return "int8" }

// Zero value of a Int8ColumnType
func (b *Int8ColumnType) Zero() interface{} { return int8(0) }

// Coerce converts v into an int8
func (b *Int8ColumnType) Coerce(v interface{}) (interface{}, error) {
	iv, err := int8Range.coerce(v)
	return int8(iv), err
}

// Compare orders two int8 values
func (b *Int8ColumnType) Compare(x, y interface{}) int {
	return compareInt64(int64(x.(int8)), int64(y.(int8)))
}

// ToString produces a string representation of a value of a Int8ColumnType value
func (b *Int8ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int8))
}

// Int16ColumnType is a column type which stores a int16 value
type Int16ColumnType struct{}

var int16Range = signedColumnType{"int16", math.MinInt16, math.MaxInt16}

// Name of a Int16ColumnType
func (b *Int16ColumnType) Name() string { return "int16" }

// Zero value of a Int16ColumnType
func (b *Int16ColumnType) Zero() interface{} { return int16(0) }

// Coerce converts v into an int16
func (b *Int16ColumnType) Coerce(v interface{}) (interface{}, error) {
	iv, err := int16Range.coerce(v)
	return int16(iv), err
}

// Compare orders two int16 values
func (b *Int16ColumnType) Compare(x, y interface{}) int {
	return compareInt64(int64(x.(int16)), int64(y.(int16)))
}

// ToString produces a string representation of a value of a Int16ColumnType value
func (b *Int16ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int16))
}

// Int32ColumnType is a column type which stores a int32 value
type Int32ColumnType struct{}

var int32Range = signedColumnType{"int32", math.MinInt32, math.MaxInt32}

// Name of a Int32ColumnType
func (b *Int32ColumnType) Name() string { return "int32" }

// Zero value of a Int32ColumnType
func (b *Int32ColumnType) Zero() interface{} { return int32(0) }

// Coerce converts v into an int32
func (b *Int32ColumnType) Coerce(v interface{}) (interface{}, error) {
	iv, err := int32Range.coerce(v)
	return int32(iv), err
}

// Compare orders two int32 values
func (b *Int32ColumnType) Compare(x, y interface{}) int {
	return compareInt64(int64(x.(int32)), int64(y.(int32)))
}

// ToString produces a string representation of a value of a Int32ColumnType value
func (b *Int32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int32))
}

// Int64ColumnType is a column type which stores a int64 value
type Int64ColumnType struct{}

var int64Range = signedColumnType{"int64", math.MinInt64, math.MaxInt64}

// Name of a Int64ColumnType
func (b *Int64ColumnType) Name() string { return "int64" }

// Zero value of a Int64ColumnType
func (b *Int64ColumnType) Zero() interface{} { return int64(0) }

// Coerce converts v into an int64
func (b *Int64ColumnType) Coerce(v interface{}) (interface{}, error) {
	iv, err := int64Range.coerce(v)
	return iv, err
}

// Compare orders two int64 values
func (b *Int64ColumnType) Compare(x, y interface{}) int {
	return compareInt64(x.(int64), y.(int64))
}

// ToString produces a string representation of a value of a Int64ColumnType value
func (b *Int64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int64))
}

// unsignedColumnType implements the shared behaviour of the unsigned integer column types
type unsignedColumnType struct {
	name string
	max  uint64
}

func (u unsignedColumnType) coerce(v interface{}) (uint64, error) {
	uv, ok := ToUint64(v)
	if !ok {
		return 0, fmt.Errorf("not a non-negative integer")
	}
	if uv > u.max {
		return 0, fmt.Errorf("out of range for %s", u.name)
	}
	return uv, nil
}

// Uint8ColumnType is a column type which stores a uint8 value
type Uint8ColumnType struct{}

var uint8Range = unsignedColumnType{"uint8", math.MaxUint8}

// Name of a Uint8ColumnType
func (b *Uint8ColumnType) Name() string { return "uint8" }

// Zero value of a Uint8ColumnType
func (b *Uint8ColumnType) Zero() interface{} { return uint8(0) }

// Coerce converts v into a uint8
func (b *Uint8ColumnType) Coerce(v interface{}) (interface{}, error) {
	uv, err := uint8Range.coerce(v)
	return uint8(uv), err
}

// Compare orders two uint8 values
func (b *Uint8ColumnType) Compare(x, y interface{}) int {
	return compareUint64(uint64(x.(uint8)), uint64(y.(uint8)))
}

// ToString produces a string representation of a value of a Uint8ColumnType value
func (b *Uint8ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint8))
}

// Uint16ColumnType is a column type which stores a uint16 value
type Uint16ColumnType struct{}

var uint16Range = unsignedColumnType{"uint16", math.MaxUint16}

// Name of a Uint16ColumnType
func (b *Uint16ColumnType) Name() string { return "uint16" }

// Zero value of a Uint16ColumnType
func (b *Uint16ColumnType) Zero() interface{} { return uint16(0) }

// Coerce converts v into a uint16
func (b *Uint16ColumnType) Coerce(v interface{}) (interface{}, error) {
	uv, err := uint16Range.coerce(v)
	return uint16(uv), err
}

// Compare orders two uint16 values
func (b *Uint16ColumnType) Compare(x, y interface{}) int {
	return compareUint64(uint64(x.(uint16)), uint64(y.(uint16)))
}

// ToString produces a string representation of a value of a Uint16ColumnType value
func (b *Uint16ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint16))
}

// Uint32ColumnType is a column type which stores a uint32 value
type Uint32ColumnType struct{}

var uint32Range = unsignedColumnType{"uint32", math.MaxUint32}

// Name of a Uint32ColumnType
func (b *Uint32ColumnType) Name() string { return "uint32" }

// Zero value of a Uint32ColumnType
func (b *Uint32ColumnType) Zero() interface{} { return uint32(0) }

// Coerce converts v into a uint32
func (b *Uint32ColumnType) Coerce(v interface{}) (interface{}, error) {
	uv, err := uint32Range.coerce(v)
	return uint32(uv), err
}

// Compare orders two uint32 values
func (b *Uint32ColumnType) Compare(x, y interface{}) int {
	return compareUint64(uint64(x.(uint32)), uint64(y.(uint32)))
}

// ToString produces a string representation of a value of a Uint32ColumnType value
func (b *Uint32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint32))
}

// Uint64ColumnType is a column type which stores a uint64 value
type Uint64ColumnType struct{}

var uint64Range = unsignedColumnType{"uint64", math.MaxUint64}

// Name of a Uint64ColumnType
func (b *Uint64ColumnType) Name() string { return "uint64" }

// Zero value of a Uint64ColumnType
func (b *Uint64ColumnType) Zero() interface{} { return uint64(0) }

// Coerce converts v into a uint64
func (b *Uint64ColumnType) Coerce(v interface{}) (interface{}, error) {
	return uint64Range.coerce(v)
}

// Compare orders two uint64 values
func (b *Uint64ColumnType) Compare(x, y interface{}) int {
	return compareUint64(x.(uint64), y.(uint64))
}

// ToString produces a string representation of a value of a Uint64ColumnType value
func (b *Uint64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint64))
}

// Float32ColumnType is a column type which stores a float32 value
type Float32ColumnType struct{}

// Name of a Float32ColumnType
func (b *Float32ColumnType) Name() string { return "float32" }

// Zero value of a Float32ColumnType
func (b *Float32ColumnType) Zero() interface{} { return float32(0) }

// Coerce converts v into a float32
func (b *Float32ColumnType) Coerce(v interface{}) (interface{}, error) {
	fv, ok := ToFloat64(v)
	if !ok {
		return nil, fmt.Errorf("not a number")
	}
	return float32(fv), nil
}

// Compare orders two float32 values, with NaNs last
func (b *Float32ColumnType) Compare(x, y interface{}) int {
	return compareFloat64(float64(x.(float32)), float64(y.(float32)))
}

// ToString produces a string representation of a value of a Float32ColumnType value
func (b *Float32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%g", v.(float32))
}

// Float64ColumnType is a column type which stores a float64 value
type Float64ColumnType struct{}

// Name of a Float64ColumnType
func (b *Float64ColumnType) Name() string { return "float64" }

// Zero value of a Float64ColumnType
func (b *Float64ColumnType) Zero() interface{} { return float64(0) }

// Coerce converts v into a float64
func (b *Float64ColumnType) Coerce(v interface{}) (interface{}, error) {
	fv, ok := ToFloat64(v)
	if !ok {
		return nil, fmt.Errorf("not a number")
	}
	return fv, nil
}

// Compare orders two float64 values, with NaNs last
func (b *Float64ColumnType) Compare(x, y interface{}) int {
	return compareFloat64(x.(float64), y.(float64))
}

// ToString produces a string representation of a value of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%g", v.(float64))
}

// StringColumnType is a column type which stores a variable-length string value
type StringColumnType struct{}

// Name of a StringColumnType
func (b *StringColumnType) Name() string { return "string" }

// Zero value of a StringColumnType
func (b *StringColumnType) Zero() interface{} { return "" }

// Coerce converts v into a string. Byte slices are accepted.
func (b *StringColumnType) Coerce(v interface{}) (interface{}, error) {
	switch sv := v.(type) {
	case string:
		return sv, nil
	case []byte:
		return string(sv), nil
	}
	return nil, fmt.Errorf("not a string")
}

// Compare orders two strings lexically
func (b *StringColumnType) Compare(x, y interface{}) int {
	return strings.Compare(x.(string), y.(string))
}

// ToString produces a string representation of a value of a StringColumnType value
func (b *StringColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}

// BytesColumnType is a column type which stores variable-length byte arrays
type BytesColumnType struct{}

// Name of a BytesColumnType
func (b *BytesColumnType) Name() string { return "bytes" }

// Zero value of a BytesColumnType
func (b *BytesColumnType) Zero() interface{} { return []byte{} }

// Coerce converts v into a (copied) byte slice. Strings are accepted.
func (b *BytesColumnType) Coerce(v interface{}) (interface{}, error) {
	switch bv := v.(type) {
	case []byte:
		return append([]byte(nil), bv...), nil
	case string:
		return []byte(bv), nil
	}
	return nil, fmt.Errorf("not a byte slice")
}

// Compare orders two byte slices lexically
func (b *BytesColumnType) Compare(x, y interface{}) int {
	return bytes.Compare(x.([]byte), y.([]byte))
}

// ToString produces a string representation of a value of a BytesColumnType value
func (b *BytesColumnType) ToString(v interface{}) string {
	bs := v.([]byte)
	var res strings.Builder
	fmt.Fprint(&res, "[")
	for i, v := range bs {
		// don't print more than 5 entries
		if i > 5 {
			fmt.Fprintf(&res, "... %d more", len(bs)-5)
			break
		}
		fmt.Fprintf(&res, "%x", v)
	}
	fmt.Fprint(&res, "]")
	return res.String()
}

// TimeColumnType is a column type which stores a time.Time value. Strings are parsed
// using Format (time.RFC3339 when empty).
type TimeColumnType struct {
	Format string
}

func (b *TimeColumnType) layout() string {
	if b.Format == "" {
		return time.RFC3339
	}
	return b.Format
}

// Name of a TimeColumnType
func (b *TimeColumnType) Name() string {
	if b.Format == "" {
		return "time"
	}
	return "time:" + b.Format
}

// Zero value of a TimeColumnType
func (b *TimeColumnType) Zero() interface{} { return time.Time{} }

// Coerce converts v into a time.Time
func (b *TimeColumnType) Coerce(v interface{}) (interface{}, error) {
	switch tv := v.(type) {
	case time.Time:
		return tv, nil
	case string:
		parsed, err := time.Parse(b.layout(), tv)
		if err != nil {
			return nil, fmt.Errorf("could not be parsed with format %s", b.layout())
		}
		return parsed, nil
	}
	return nil, fmt.Errorf("not a time")
}

// Compare orders two times chronologically
func (b *TimeColumnType) Compare(x, y interface{}) int {
	tx, ty := x.(time.Time), y.(time.Time)
	switch {
	case tx.Before(ty):
		return -1
	case tx.After(ty):
		return 1
	}
	return 0
}

// ToString produces a string representation of a value of a TimeColumnType value
func (b *TimeColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(time.Time).Format(b.layout()))
}

// ObjectColumnType is a column type which stores arbitrary values
type ObjectColumnType struct{}

// Name of an ObjectColumnType
func (b *ObjectColumnType) Name() string { return "object" }

// Zero value of an ObjectColumnType
func (b *ObjectColumnType) Zero() interface{} { return nil }

// Coerce accepts any value
func (b *ObjectColumnType) Coerce(v interface{}) (interface{}, error) {
	return v, nil
}

// Compare orders two values when they are comparable, falling back to their string forms
func (b *ObjectColumnType) Compare(x, y interface{}) int {
	c, err := CompareValues(x, y)
	if err != nil {
		return strings.Compare(fmt.Sprint(x), fmt.Sprint(y))
	}
	return c
}

// ToString produces a string representation of a value of an ObjectColumnType value
func (b *ObjectColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%v", v)
}
