package tabula

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"
)

type missingValue struct{}

func (missingValue) String() string { return "--" }

// Missing is the sentinel returned when reading a masked value. Assigning
// Missing to a column masks the target position.
var Missing interface{} = missingValue{}

// IsMissing returns true iff v is the Missing sentinel
func IsMissing(v interface{}) bool {
	_, ok := v.(missingValue)
	return ok
}

// ToInt64 converts any Go integer, or a float with an integral value, to an int64
func ToInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// ToUint64 converts any non-negative Go integer, or a float with a non-negative integral value, to a uint64
func ToUint64(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case float32, float64:
		f, _ := ToFloat64(n)
		if math.IsNaN(f) || f < 0 || f != math.Trunc(f) || f >= math.MaxUint64 {
			return 0, false
		}
		return uint64(f), true
	}
	iv, ok := ToInt64(v)
	if !ok || iv < 0 {
		return 0, false
	}
	return uint64(iv), true
}

// ToFloat64 converts any Go number to a float64
func ToFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func isNumber(v interface{}) bool {
	_, ok := ToFloat64(v)
	return ok
}

func isUnsigned(v interface{}) bool {
	switch v.(type) {
	case uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func isFloatValue(v interface{}) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return false
}

// InferColumnType picks the narrowest built-in ColumnType able to hold all
// non-missing values: integers widen to float64 when mixed with floats, and
// anything heterogeneous becomes an object column
func InferColumnType(values []interface{}) ColumnType {
	var sawInt, sawFloat, sawString, sawBool, sawTime, sawBytes, sawOther bool
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		switch v.(type) {
		case bool:
			sawBool = true
		case string:
			sawString = true
		case []byte:
			sawBytes = true
		case time.Time:
			sawTime = true
		case float32, float64:
			sawFloat = true
		default:
			if isNumber(v) {
				sawInt = true
			} else {
				sawOther = true
			}
		}
	}
	kinds := 0
	for _, saw := range []bool{sawInt || sawFloat, sawString, sawBool, sawTime, sawBytes, sawOther} {
		if saw {
			kinds++
		}
	}
	switch {
	case kinds == 0:
		return &Float64ColumnType{}
	case kinds > 1:
		return &ObjectColumnType{}
	case sawFloat:
		return &Float64ColumnType{}
	case sawInt:
		return &Int64ColumnType{}
	case sawString:
		return &StringColumnType{}
	case sawBool:
		return &BoolColumnType{}
	case sawTime:
		return &TimeColumnType{}
	case sawBytes:
		return &BytesColumnType{}
	}
	return &ObjectColumnType{}
}

// Comparable may be implemented by foreign values stored in mixin or object columns, to make them orderable
type Comparable interface {
	CompareTo(other interface{}) (int, error)
}

// KeyEncoder may be implemented by foreign values stored in mixin or object columns, to make them hashable
type KeyEncoder interface {
	AppendKey(buf []byte) []byte
}

// CompareValues orders two canonical values. Numbers of any Go type compare
// numerically with each other. Returns an error for values which cannot be ordered.
func CompareValues(a, b interface{}) (int, error) {
	if isNumber(a) && isNumber(b) {
		if !isFloatValue(a) && !isFloatValue(b) {
			if isUnsigned(a) || isUnsigned(b) {
				ua, aok := ToUint64(a)
				ub, bok := ToUint64(b)
				if aok && bok {
					return compareUint64(ua, ub), nil
				}
				// one side is negative, so it is the smaller
				if !aok {
					return -1, nil
				}
				return 1, nil
			}
			ia, _ := ToInt64(a)
			ib, _ := ToInt64(b)
			return compareInt64(ia, ib), nil
		}
		fa, _ := ToFloat64(a)
		fb, _ := ToFloat64(b)
		return compareFloat64(fa, fb), nil
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), nil
		}
	case []byte:
		if bv, ok := b.([]byte); ok {
			return bytes.Compare(av, bv), nil
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return (&BoolColumnType{}).Compare(av, bv), nil
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return (&TimeColumnType{}).Compare(av, bv), nil
		}
	case Comparable:
		return av.CompareTo(b)
	}
	return 0, fmt.Errorf("Values of type %T and %T cannot be ordered", a, b)
}

// CompareKeys orders two tuples of canonical values lexicographically
func CompareKeys(a, b []interface{}) (int, error) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		c, err := CompareValues(a[i], b[i])
		if err != nil || c != 0 {
			return c, err
		}
	}
	return compareInt64(int64(len(a)), int64(len(b))), nil
}

const (
	keyTagMissing = 'm'
	keyTagInt     = 'i'
	keyTagFloat   = 'f'
	keyTagString  = 's'
	keyTagBytes   = 'b'
	keyTagBool    = 'B'
	keyTagTime    = 't'
	keyTagCustom  = 'c'
)

// maxExactFloat bounds the integers which convert to float64 exactly
const maxExactFloat = 1 << 53

// EncodeKey produces a byte encoding of a tuple of canonical values, suitable for hashing.
// Values which compare as equal with CompareValues produce identical encodings.
func EncodeKey(key []interface{}) ([]byte, error) {
	buf := make([]byte, 0, 16*len(key))
	var scratch [8]byte
	for _, v := range key {
		switch {
		case IsMissing(v):
			buf = append(buf, keyTagMissing)
			continue
		case isNumber(v):
			// integral values share an encoding regardless of their Go type. Beyond
			// 2^53 integers compare equal to their nearest float64, so they encode as one.
			if iv, ok := ToInt64(v); ok && iv >= -maxExactFloat && iv <= maxExactFloat {
				binary.LittleEndian.PutUint64(scratch[:], uint64(iv))
				buf = append(append(buf, keyTagInt), scratch[:]...)
			} else {
				fv, _ := ToFloat64(v)
				if math.IsNaN(fv) {
					fv = math.NaN()
				}
				binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(fv))
				buf = append(append(buf, keyTagFloat), scratch[:]...)
			}
			continue
		}
		switch tv := v.(type) {
		case string:
			buf = appendLengthPrefixed(append(buf, keyTagString), []byte(tv))
		case []byte:
			buf = appendLengthPrefixed(append(buf, keyTagBytes), tv)
		case bool:
			b := byte(0)
			if tv {
				b = 1
			}
			buf = append(buf, keyTagBool, b)
		case time.Time:
			binary.LittleEndian.PutUint64(scratch[:], uint64(tv.UnixNano()))
			buf = append(append(buf, keyTagTime), scratch[:]...)
		case KeyEncoder:
			buf = tv.AppendKey(append(buf, keyTagCustom))
		default:
			return nil, fmt.Errorf("Values of type %T cannot be used as keys", v)
		}
	}
	return buf, nil
}

func appendLengthPrefixed(buf []byte, data []byte) []byte {
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], uint64(len(data)))
	return append(append(buf, scratch[:n]...), data...)
}
