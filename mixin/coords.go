package mixin

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/internal/util"
)

// Coord is a single longitude/latitude pair, in degrees
type Coord struct {
	Lon float64
	Lat float64
}

// String renders this Coord as "lon,lat"
func (c Coord) String() string {
	return fmt.Sprintf("%g,%g", c.Lon, c.Lat)
}

// AppendKey makes Coords usable as index and join keys
func (c Coord) AppendKey(buf []byte) []byte {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(c.Lon))
	buf = append(buf, scratch[:]...)
	binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(c.Lat))
	return append(buf, scratch[:]...)
}

// CompareTo orders Coords by longitude, then latitude
func (c Coord) CompareTo(other interface{}) (int, error) {
	o, ok := other.(Coord)
	if !ok {
		return 0, fmt.Errorf("Cannot compare Coord with %T", other)
	}
	if c.Lon != o.Lon {
		if c.Lon < o.Lon {
			return -1, nil
		}
		return 1, nil
	}
	switch {
	case c.Lat < o.Lat:
		return -1, nil
	case c.Lat > o.Lat:
		return 1, nil
	}
	return 0, nil
}

var _ tabula.MutableMixin = (*Coords)(nil)

// Coords is a mixin column of coordinate pairs in a named reference frame.
// Coords cannot hold missing values.
type Coords struct {
	base
	frame string
	lon   []float64
	lat   []float64
}

// NewCoords creates a Coords column from parallel longitude and latitude sequences
func NewCoords(name string, frame string, lon []float64, lat []float64) (*Coords, error) {
	if len(lon) != len(lat) {
		return nil, errors.LengthMismatchError{Name: name, Expected: len(lon), Actual: len(lat)}
	}
	return &Coords{
		base:  base{info: tabula.ColumnInfo{Name: name, Unit: "deg"}},
		frame: frame,
		lon:   append([]float64(nil), lon...),
		lat:   append([]float64(nil), lat...),
	}, nil
}

// Len returns the number of coordinates
func (c *Coords) Len() int {
	return len(c.lon)
}

// MixinType returns "coords"
func (c *Coords) MixinType() string {
	return CoordsType
}

// Frame returns the name of the reference frame
func (c *Coords) Frame() string {
	return c.frame
}

// Lon returns a copy of the longitudes
func (c *Coords) Lon() []float64 {
	return append([]float64(nil), c.lon...)
}

// Lat returns a copy of the latitudes
func (c *Coords) Lat() []float64 {
	return append([]float64(nil), c.lat...)
}

// At returns the Coord at position i
func (c *Coords) At(i int) (interface{}, error) {
	if err := c.checkRow(i, len(c.lon)); err != nil {
		return nil, err
	}
	return Coord{Lon: c.lon[i], Lat: c.lat[i]}, nil
}

// String renders a short description of this column
func (c *Coords) String() string {
	return c.describe("Coords<"+c.frame+">", len(c.lon))
}

// Slice returns an independent copy of positions [lo, hi)
func (c *Coords) Slice(lo, hi int) (tabula.MixinColumn, error) {
	if err := c.checkRange(lo, hi, len(c.lon)); err != nil {
		return nil, err
	}
	return &Coords{
		base:  c.clone(),
		frame: c.frame,
		lon:   append([]float64(nil), c.lon[lo:hi]...),
		lat:   append([]float64(nil), c.lat[lo:hi]...),
	}, nil
}

// Take returns an independent copy of the given positions. Coords cannot represent
// missing values, so -1 is rejected.
func (c *Coords) Take(rows []int) (tabula.MixinColumn, error) {
	for _, r := range rows {
		if r == -1 {
			return nil, errors.UnsupportedOperationError{Name: c.info.Name, Operation: "missing values"}
		}
	}
	if err := c.checkRows(rows, len(c.lon)); err != nil {
		return nil, err
	}
	res := &Coords{base: c.clone(), frame: c.frame}
	res.lon, _ = util.TakeRows(c.lon, rows, 0)
	res.lat, _ = util.TakeRows(c.lat, rows, 0)
	return res, nil
}

// Coerce accepts Coord, [2]float64 and two-element numeric slices
func (c *Coords) Coerce(v interface{}) (interface{}, error) {
	switch tv := v.(type) {
	case Coord:
		return tv, nil
	case *Coord:
		if tv != nil {
			return *tv, nil
		}
	case [2]float64:
		return Coord{Lon: tv[0], Lat: tv[1]}, nil
	case []float64:
		if len(tv) == 2 {
			return Coord{Lon: tv[0], Lat: tv[1]}, nil
		}
	case []interface{}:
		if len(tv) == 2 {
			lon, lok := tabula.ToFloat64(tv[0])
			lat, rok := tabula.ToFloat64(tv[1])
			if lok && rok {
				return Coord{Lon: lon, Lat: lat}, nil
			}
		}
	}
	if tabula.IsMissing(v) {
		return nil, errors.UnsupportedOperationError{Name: c.info.Name, Operation: "missing values"}
	}
	return nil, c.incompatible(v, "coords", "expected a lon/lat pair")
}

// SetAt overwrites position i and notifies watchers
func (c *Coords) SetAt(i int, v interface{}) error {
	if err := c.checkRow(i, len(c.lon)); err != nil {
		return err
	}
	coerced, err := c.Coerce(v)
	if err != nil {
		return err
	}
	coord := coerced.(Coord)
	c.lon[i], c.lat[i] = coord.Lon, coord.Lat
	c.watchers.Notify(i)
	return nil
}

// Append adds a value to the end of this column
func (c *Coords) Append(v interface{}) error {
	return c.Insert(len(c.lon), v)
}

// Insert adds a value at position i
func (c *Coords) Insert(i int, v interface{}) error {
	if err := c.resizable("row insertion"); err != nil {
		return err
	}
	if i < 0 || i > len(c.lon) {
		return c.checkRow(i, len(c.lon))
	}
	coerced, err := c.Coerce(v)
	if err != nil {
		return err
	}
	coord := coerced.(Coord)
	c.lon = util.InsertAt(c.lon, i, coord.Lon)
	c.lat = util.InsertAt(c.lat, i, coord.Lat)
	return nil
}

// Delete removes the given sorted, unique positions
func (c *Coords) Delete(rows []int) error {
	if err := c.checkDelete(rows, len(c.lon)); err != nil {
		return err
	}
	c.lon = util.DeleteRows(c.lon, rows)
	c.lat = util.DeleteRows(c.lat, rows)
	return nil
}

// Copy returns an independent copy of this column, without watchers
func (c *Coords) Copy() tabula.MutableMixin {
	return &Coords{base: c.clone(), frame: c.frame, lon: c.Lon(), lat: c.Lat()}
}
