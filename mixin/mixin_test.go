package mixin

import (
	"testing"
	"time"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/stretchr/testify/require"
)

func TestTimeColumn(t *testing.T) {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	col := NewTime("when", []time.Time{t0, t0.Add(time.Hour)})
	require.Equal(t, 2, col.Len())
	require.Equal(t, tabula.MixinKind, col.Kind())
	require.Equal(t, TimeType, col.MixinType())
	v, err := col.At(1)
	require.Nil(t, err)
	require.Equal(t, t0.Add(time.Hour), v)

	require.Nil(t, col.Append("2020-01-02T00:00:00Z"))
	require.Equal(t, 3, col.Len())
	_, err = col.Coerce("yesterday")
	_, ok := err.(errors.TypeIncompatibleError)
	require.True(t, ok)

	require.Nil(t, col.SetAt(0, tabula.Missing))
	v, err = col.At(0)
	require.Nil(t, err)
	require.True(t, tabula.IsMissing(v))
	require.Equal(t, []bool{true, false, false}, col.Mask())

	_, err = col.At(3)
	_, ok = err.(errors.NotFoundError)
	require.True(t, ok)
}

func TestTimeSliceIsIndependent(t *testing.T) {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	col := NewTime("when", []time.Time{t0, t0, t0})
	sliced, err := col.Slice(0, 2)
	require.Nil(t, err)
	require.Equal(t, 2, sliced.Len())
	require.Nil(t, sliced.(*Time).SetAt(0, t0.Add(time.Minute)))
	v, _ := col.At(0)
	require.Equal(t, t0, v)
}

func TestParseTimes(t *testing.T) {
	col, err := ParseTimes("d", "2006-01-02", []string{"2021-03-04", ""})
	require.Nil(t, err)
	v, _ := col.At(0)
	require.Equal(t, 2021, v.(time.Time).Year())
	v, _ = col.At(1)
	require.True(t, tabula.IsMissing(v))
	_, err = ParseTimes("d", "2006-01-02", []string{"nope"})
	require.NotNil(t, err)
}

func TestQuantity(t *testing.T) {
	q := NewQuantity("dist", []float64{1, 2, 3}, "km")
	require.Equal(t, tabula.Unit("km"), q.Unit())
	require.Equal(t, "Quantity(dist)[3] km", q.String())
	require.Nil(t, q.SetAt(1, int64(7)))
	v, _ := q.At(1)
	require.Equal(t, 7.0, v)

	changed := -2
	unwatch := q.Watch(func(row int) { changed = row })
	require.Nil(t, q.SetAt(2, tabula.Missing))
	require.Equal(t, 2, changed)
	unwatch()
	require.Nil(t, q.SetAt(0, 4))
	require.Equal(t, 2, changed)

	taken, err := q.Take([]int{2, -1, 0})
	require.Nil(t, err)
	v, _ = taken.At(0)
	require.True(t, tabula.IsMissing(v))
	v, _ = taken.At(1)
	require.True(t, tabula.IsMissing(v))
	v, _ = taken.At(2)
	require.Equal(t, 4.0, v)
	require.Equal(t, tabula.Unit("km"), taken.Info().Unit)

	_, ok := q.Delete([]int{-1}).(errors.NotFoundError)
	require.True(t, ok)
	require.Equal(t, 3, q.Len())
	require.Nil(t, q.Delete([]int{0, 2}))
	require.Equal(t, 1, q.Len())
	require.Equal(t, []bool{false}, q.Mask())

	_, err = NewQuantityMasked("x", []float64{1}, "m", []bool{true, false})
	_, ok = err.(errors.InvalidMaskError)
	require.True(t, ok)
}

func TestCoords(t *testing.T) {
	_, err := NewCoords("pos", "icrs", []float64{1, 2}, []float64{3})
	_, ok := err.(errors.LengthMismatchError)
	require.True(t, ok)

	c, err := NewCoords("pos", "icrs", []float64{10, 20}, []float64{-5, 5})
	require.Nil(t, err)
	v, _ := c.At(1)
	require.Equal(t, Coord{Lon: 20, Lat: 5}, v)
	require.Nil(t, c.Insert(0, [2]float64{1, 1}))
	require.Equal(t, []float64{1, 10, 20}, c.Lon())

	_, err = c.Coerce(tabula.Missing)
	_, ok = err.(errors.UnsupportedOperationError)
	require.True(t, ok)
	_, err = c.Take([]int{0, -1})
	require.NotNil(t, err)
	require.NotNil(t, c.Delete([]int{-1}))
	require.Equal(t, 3, c.Len())

	cmp, err := Coord{Lon: 1, Lat: 2}.CompareTo(Coord{Lon: 1, Lat: 3})
	require.Nil(t, err)
	require.Equal(t, -1, cmp)
	k1, err := tabula.EncodeKey([]interface{}{Coord{Lon: 1, Lat: 2}})
	require.Nil(t, err)
	k2, _ := tabula.EncodeKey([]interface{}{Coord{Lon: 1, Lat: 2}})
	require.Equal(t, k1, k2)
}
