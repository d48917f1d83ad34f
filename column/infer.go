package column

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-sif/tabula"
)

var timeType = reflect.TypeOf(time.Time{})

// columnTypeFor maps the element type of a Go slice to a ColumnType
func columnTypeFor(t reflect.Type) tabula.ColumnType {
	if t == timeType {
		return &tabula.TimeColumnType{}
	}
	switch t.Kind() {
	case reflect.Bool:
		return &tabula.BoolColumnType{}
	case reflect.Int, reflect.Int64:
		return &tabula.Int64ColumnType{}
	case reflect.Int8:
		return &tabula.Int8ColumnType{}
	case reflect.Int16:
		return &tabula.Int16ColumnType{}
	case reflect.Int32:
		return &tabula.Int32ColumnType{}
	case reflect.Uint, reflect.Uint64:
		return &tabula.Uint64ColumnType{}
	case reflect.Uint8:
		return &tabula.Uint8ColumnType{}
	case reflect.Uint16:
		return &tabula.Uint16ColumnType{}
	case reflect.Uint32:
		return &tabula.Uint32ColumnType{}
	case reflect.Float32:
		return &tabula.Float32ColumnType{}
	case reflect.Float64:
		return &tabula.Float64ColumnType{}
	case reflect.String:
		return &tabula.StringColumnType{}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return &tabula.BytesColumnType{}
		}
	}
	return &tabula.ObjectColumnType{}
}

// FromSlice creates a Column from any Go slice, inferring its type from the
// slice's element type. The elements of a []interface{} are inspected instead,
// see tabula.InferColumnType.
func FromSlice(name string, data interface{}) (*Column, error) {
	if values, ok := data.([]interface{}); ok {
		return New(name, tabula.InferColumnType(values), values)
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("Cannot create column %s from %T", name, data)
	}
	values := make([]interface{}, rv.Len())
	for i := range values {
		values[i] = rv.Index(i).Interface()
	}
	return New(name, columnTypeFor(rv.Type().Elem()), values)
}

// IsSequence returns true iff FromSlice can build a Column from data
func IsSequence(data interface{}) bool {
	if _, ok := data.([]interface{}); ok {
		return true
	}
	k := reflect.ValueOf(data).Kind()
	return k == reflect.Slice || k == reflect.Array
}
