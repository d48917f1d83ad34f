package table

import (
	"testing"
	"time"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/column"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/logging"
	"github.com/go-sif/tabula/mixin"
	"github.com/stretchr/testify/require"
)

func TestMixinColumnsAreStoredNatively(t *testing.T) {
	t0 := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	when := mixin.NewTime("when", []time.Time{t0, t0.Add(time.Hour)})
	pos, err := mixin.NewCoords("pos", "icrs", []float64{10, 20}, []float64{-1, 1})
	require.Nil(t, err)
	tbl, err := New([]interface{}{when, pos, []int{1, 2}}, Options{Names: []string{"when", "pos", "n"}, Logger: logging.Discard()})
	require.Nil(t, err)

	col, err := tbl.Column("when")
	require.Nil(t, err)
	_, ok := col.(*mixin.Time)
	require.True(t, ok)
	_, err = tbl.Regular("when")
	_, ok = err.(errors.UnsupportedOperationError)
	require.True(t, ok)

	r, err := tbl.Row(1)
	require.Nil(t, err)
	v, err := r.Get("when")
	require.Nil(t, err)
	require.Equal(t, t0.Add(time.Hour), v)
	v, err = r.Get("pos")
	require.Nil(t, err)
	require.Equal(t, mixin.Coord{Lon: 20, Lat: 1}, v)

	require.Nil(t, tbl.AddRow([]interface{}{"2021-06-02T00:00:00Z", mixin.Coord{Lon: 5, Lat: 5}, 3}))
	require.Equal(t, 3, tbl.Len())
	requireConsistent(t, tbl)

	// coordinates cannot be missing, so the row is rejected as a whole
	err = tbl.AddRowMap(map[string]interface{}{"when": t0, "n": 4})
	_, ok = err.(errors.UnsupportedOperationError)
	require.True(t, ok)
	require.Equal(t, 3, tbl.Len())
	requireConsistent(t, tbl)

	idx, err := tbl.AddIndex("pos")
	require.Nil(t, err)
	rows, err := idx.Lookup(mixin.Coord{Lon: 5, Lat: 5})
	require.Nil(t, err)
	require.Equal(t, []int{2}, rows)

	sliced, err := tbl.Slice(1, 3)
	require.Nil(t, err)
	slicedWhen, _ := sliced.Column("when")
	require.Nil(t, slicedWhen.(*mixin.Time).SetAt(0, t0))
	v, _ = tbl.Value("when", 1)
	require.Equal(t, t0.Add(time.Hour), v)
}

func TestStoredMixinsCannotBeResized(t *testing.T) {
	t0 := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	tbl, err := New([]interface{}{mixin.NewTime("when", []time.Time{t0, t0.Add(time.Hour)}), []int{1, 2}}, Options{Names: []string{"when", "n"}, Logger: logging.Discard()})
	require.Nil(t, err)
	col, err := tbl.Column("when")
	require.Nil(t, err)
	when := col.(tabula.MutableMixin)
	_, ok := when.Append(t0).(errors.UnsupportedOperationError)
	require.True(t, ok)
	_, ok = when.Delete([]int{0}).(errors.UnsupportedOperationError)
	require.True(t, ok)
	require.Nil(t, when.SetAt(0, t0.Add(time.Minute)))
	require.Equal(t, 2, when.Len())

	require.Nil(t, tbl.InsertRow(0, []interface{}{t0, 0}))
	require.Equal(t, 3, when.Len())
	require.Nil(t, tbl.Validate())
}

func TestPlainTableConvertsQuantities(t *testing.T) {
	q := mixin.NewQuantity("d", []float64{1, 2}, "km")
	tbl, err := New([]interface{}{q}, Options{Logger: logging.Discard()})
	require.Nil(t, err)
	require.Equal(t, tabula.AlwaysPlainColumn, tbl.UnitPolicy())
	d, err := tbl.Regular("d")
	require.Nil(t, err)
	require.Equal(t, "float64", d.Type().Name())
	require.Equal(t, tabula.Unit("km"), d.Unit())
}

func TestQTablePrefersQuantities(t *testing.T) {
	q := mixin.NewQuantity("d", []float64{1, 2}, "km")
	plain, err := column.FromSlice("e", []int{3, 4})
	require.Nil(t, err)
	plain.SetUnit("s")
	tbl, err := NewQTable([]interface{}{q, plain, []string{"a", "b"}}, Options{Logger: logging.Discard()})
	require.Nil(t, err)
	require.Equal(t, tabula.PreferQuantityMixin, tbl.UnitPolicy())

	d, _ := tbl.Column("d")
	_, ok := d.(*mixin.Quantity)
	require.True(t, ok)
	e, _ := tbl.Column("e")
	eq, ok := e.(*mixin.Quantity)
	require.True(t, ok)
	require.Equal(t, tabula.Unit("s"), eq.Unit())
	v, _ := tbl.Value("e", 1)
	require.Equal(t, 4.0, v)

	// assigning a unit to a numeric plain column converts it
	require.Nil(t, tbl.AddColumn("f", []float64{5, 6}))
	require.Nil(t, tbl.SetUnit("f", "kg"))
	f, _ := tbl.Column("f")
	_, ok = f.(*mixin.Quantity)
	require.True(t, ok)
	require.Equal(t, []string{"d", "e", "col2", "f"}, tbl.ColumnNames())

	// strings stay plain
	require.Nil(t, tbl.SetUnit("col2", "m"))
	c2, err := tbl.Regular("col2")
	require.Nil(t, err)
	require.Equal(t, tabula.Unit("m"), c2.Unit())

	// derived tables keep the policy
	sliced, err := tbl.Slice(0, 1)
	require.Nil(t, err)
	require.Equal(t, tabula.PreferQuantityMixin, sliced.UnitPolicy())
}
