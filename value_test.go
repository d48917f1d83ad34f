package tabula

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMissing(t *testing.T) {
	require.True(t, IsMissing(Missing))
	require.False(t, IsMissing(nil))
	require.False(t, IsMissing(0))
}

func TestNumberConversions(t *testing.T) {
	i, ok := ToInt64(uint8(7))
	require.True(t, ok)
	require.Equal(t, int64(7), i)
	_, ok = ToInt64(2.5)
	require.False(t, ok)
	_, ok = ToInt64(uint64(math.MaxUint64))
	require.False(t, ok)
	i, ok = ToInt64(float32(-3))
	require.True(t, ok)
	require.Equal(t, int64(-3), i)

	u, ok := ToUint64(4.0)
	require.True(t, ok)
	require.Equal(t, uint64(4), u)
	_, ok = ToUint64(-1)
	require.False(t, ok)

	f, ok := ToFloat64(int16(3))
	require.True(t, ok)
	require.Equal(t, 3.0, f)
	_, ok = ToFloat64("3")
	require.False(t, ok)
}

func TestInferColumnType(t *testing.T) {
	require.Equal(t, "int64", InferColumnType([]interface{}{1, Missing, int8(2)}).Name())
	require.Equal(t, "float64", InferColumnType([]interface{}{1, 2.5}).Name())
	require.Equal(t, "float64", InferColumnType([]interface{}{Missing}).Name())
	require.Equal(t, "string", InferColumnType([]interface{}{"a"}).Name())
	require.Equal(t, "time", InferColumnType([]interface{}{time.Now()}).Name())
	require.Equal(t, "object", InferColumnType([]interface{}{"a", 1}).Name())
}

func TestCompareValues(t *testing.T) {
	cases := []struct {
		a, b interface{}
		want int
	}{
		{1, 2.5, -1},
		{int8(-1), uint64(math.MaxUint64), -1},
		{uint64(math.MaxUint64), int64(math.MaxInt64), 1},
		{3, 3.0, 0},
		{"b", "a", 1},
		{[]byte("a"), []byte("a"), 0},
		{false, true, -1},
		{math.NaN(), 1.0, 1},
	}
	for _, c := range cases {
		got, err := CompareValues(c.a, c.b)
		require.Nil(t, err)
		require.Equal(t, c.want, got, "%v vs %v", c.a, c.b)
	}
	_, err := CompareValues("a", 1)
	require.NotNil(t, err)

	c, err := CompareKeys([]interface{}{1, "a"}, []interface{}{1, "b"})
	require.Nil(t, err)
	require.Equal(t, -1, c)
	c, err = CompareKeys([]interface{}{1}, []interface{}{1, "b"})
	require.Nil(t, err)
	require.Equal(t, -1, c)
}

func TestEncodeKey(t *testing.T) {
	a, err := EncodeKey([]interface{}{int8(3), "x", Missing})
	require.Nil(t, err)
	b, err := EncodeKey([]interface{}{3.0, "x", Missing})
	require.Nil(t, err)
	require.Equal(t, a, b)

	c, err := EncodeKey([]interface{}{"ab", "c"})
	require.Nil(t, err)
	d, err := EncodeKey([]interface{}{"a", "bc"})
	require.Nil(t, err)
	require.NotEqual(t, c, d)

	_, err = EncodeKey([]interface{}{struct{}{}})
	require.NotNil(t, err)
}

func TestEncodeKeyLargeIntegers(t *testing.T) {
	for _, pair := range [][2]interface{}{
		{int64(1<<53 + 1), float64(1 << 53)},
		{int64(-(1<<53 + 1)), float64(-(1 << 53))},
		{uint64(1 << 63), float64(1 << 63)},
		{int64(1 << 60), float64(1 << 60)},
	} {
		c, err := CompareValues(pair[0], pair[1])
		require.Nil(t, err)
		require.Equal(t, 0, c)
		a, err := EncodeKey([]interface{}{pair[0]})
		require.Nil(t, err)
		b, err := EncodeKey([]interface{}{pair[1]})
		require.Nil(t, err)
		require.Equal(t, a, b, "%v and %v", pair[0], pair[1])
	}
	// integers which share a float64 still order apart
	c, err := CompareValues(int64(1<<53+1), int64(1<<53+2))
	require.Nil(t, err)
	require.Equal(t, -1, c)
}

func TestMetaClone(t *testing.T) {
	m := Meta{"list": []interface{}{Meta{"a": 1}}, "map": map[string]interface{}{"b": 2}}
	c := m.Clone()
	c["list"].([]interface{})[0].(Meta)["a"] = 5
	c["map"].(map[string]interface{})["b"] = 6
	require.Equal(t, 1, m["list"].([]interface{})[0].(Meta)["a"])
	require.Equal(t, 2, m["map"].(map[string]interface{})["b"])
	require.Equal(t, []string{"list", "map"}, m.Keys())
	require.Nil(t, Meta(nil).Clone())
}

func TestWatchers(t *testing.T) {
	var w Watchers
	var seen []int
	unwatch := w.Watch(func(row int) { seen = append(seen, row) })
	w.Notify(2)
	unwatch()
	w.Notify(3)
	require.Equal(t, []int{2}, seen)
	require.Equal(t, 0, w.Len())
}
