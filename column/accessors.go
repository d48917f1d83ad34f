package column

import (
	"time"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
)

func (c *Column) present(i int) (interface{}, error) {
	v, err := c.At(i)
	if err != nil {
		return nil, err
	}
	if tabula.IsMissing(v) {
		return nil, errors.MissingValueError{Name: c.info.Name, Row: i}
	}
	return v, nil
}

func (c *Column) wrongType(v interface{}, expected string) error {
	return errors.TypeIncompatibleError{Name: c.info.Name, Value: v, Expected: expected}
}

// GetInt64 retrieves the value at position i as an int64
func (c *Column) GetInt64(i int) (int64, error) {
	v, err := c.present(i)
	if err != nil {
		return 0, err
	}
	n, ok := tabula.ToInt64(v)
	if !ok {
		return 0, c.wrongType(v, "int64")
	}
	return n, nil
}

// GetFloat64 retrieves the value at position i as a float64
func (c *Column) GetFloat64(i int) (float64, error) {
	v, err := c.present(i)
	if err != nil {
		return 0, err
	}
	f, ok := tabula.ToFloat64(v)
	if !ok {
		return 0, c.wrongType(v, "float64")
	}
	return f, nil
}

// GetString retrieves the value at position i as a string
func (c *Column) GetString(i int) (string, error) {
	v, err := c.present(i)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", c.wrongType(v, "string")
	}
	return s, nil
}

// GetBool retrieves the value at position i as a bool
func (c *Column) GetBool(i int) (bool, error) {
	v, err := c.present(i)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, c.wrongType(v, "bool")
	}
	return b, nil
}

// GetTime retrieves the value at position i as a time.Time
func (c *Column) GetTime(i int) (time.Time, error) {
	v, err := c.present(i)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, c.wrongType(v, "time")
	}
	return t, nil
}
