package operations

import (
	"testing"
	"time"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/mixin"
	"github.com/go-sif/tabula/table"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestVStackJoinTypes(t *testing.T) {
	t1 := mk(t, []string{"a", "b"}, tabula.Meta{"n": 1}, []int{1, 2}, []string{"x", "y"})
	t2 := mk(t, []string{"a", "c"}, tabula.Meta{"m": 2}, []float64{2.5}, []bool{true})

	res, err := VStack([]*table.Table{t1, t2}, StackOptions{})
	require.Nil(t, err)
	requireValid(t, res)
	require.Equal(t, []string{"a"}, res.ColumnNames())
	require.Equal(t, []interface{}{1.0, 2.0, 2.5}, colValues(t, res, "a"))
	require.Equal(t, tabula.Meta{"n": 1, "m": 2}, res.Meta())

	res, err = VStack([]*table.Table{t1, t2}, StackOptions{Type: tabula.OuterJoin})
	require.Nil(t, err)
	requireValid(t, res)
	require.Equal(t, []string{"a", "b", "c"}, res.ColumnNames())
	require.Equal(t, []interface{}{"x", "y", tabula.Missing}, colValues(t, res, "b"))
	require.Equal(t, []interface{}{tabula.Missing, tabula.Missing, true}, colValues(t, res, "c"))

	_, err = VStack([]*table.Table{t1, t2}, StackOptions{Type: tabula.ExactJoin})
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 2)

	_, err = VStack([]*table.Table{t1, t2}, StackOptions{Type: tabula.LeftJoin})
	_, ok = err.(errors.UnsupportedOperationError)
	require.True(t, ok)
}

func TestVStackIntegersStayIntegers(t *testing.T) {
	t1 := mk(t, []string{"a"}, nil, []int32{1})
	t2 := mk(t, []string{"a"}, nil, []int64{2})
	res, err := VStack([]*table.Table{t1, t2}, StackOptions{Type: tabula.ExactJoin})
	require.Nil(t, err)
	col, err := res.Regular("a")
	require.Nil(t, err)
	require.Equal(t, "int64", col.Type().Name())
	require.Equal(t, []interface{}{int64(1), int64(2)}, col.Values())
}

func TestVStackIncompatible(t *testing.T) {
	t1 := mk(t, []string{"a"}, nil, []int{1})
	t2 := mk(t, []string{"a"}, nil, []string{"s"})
	_, err := VStack([]*table.Table{t1, t2}, StackOptions{})
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	_, ok = merr.Errors[0].(errors.TypeIncompatibleError)
	require.True(t, ok)

	km := mk(t, []string{"d"}, nil, mixin.NewQuantity("d", []float64{1}, "km"))
	m := mk(t, []string{"d"}, nil, mixin.NewQuantity("d", []float64{1}, "m"))
	_, err = VStack([]*table.Table{km, m}, StackOptions{})
	merr, ok = err.(*multierror.Error)
	require.True(t, ok)
	_, ok = merr.Errors[0].(errors.TypeIncompatibleError)
	require.True(t, ok)
}

func TestVStackMixins(t *testing.T) {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := mk(t, []string{"when"}, nil, mixin.NewTime("when", []time.Time{t0}))
	t2 := mk(t, []string{"when", "x"}, nil, mixin.NewTime("when", []time.Time{t0.Add(time.Hour)}), []int{7})
	t3 := mk(t, []string{"x"}, nil, []int{8})

	res, err := VStack([]*table.Table{t1, t2, t3}, StackOptions{Type: tabula.OuterJoin})
	require.Nil(t, err)
	requireValid(t, res)
	col, err := res.Column("when")
	require.Nil(t, err)
	require.Equal(t, tabula.MixinKind, col.Kind())
	require.Equal(t, []interface{}{t0, t0.Add(time.Hour), tabula.Missing}, colValues(t, res, "when"))
	require.Equal(t, []interface{}{tabula.Missing, int64(7), int64(8)}, colValues(t, res, "x"))
}

func TestHStackRenamesAroundExistingNames(t *testing.T) {
	t1 := mk(t, []string{"a", "a_2"}, nil, []int{1}, []int{2})
	t2 := mk(t, []string{"a"}, nil, []int{3})
	res, err := HStack([]*table.Table{t1, t2}, StackOptions{})
	require.Nil(t, err)
	requireValid(t, res)
	require.Equal(t, []string{"a_1", "a_2", "a_2_2"}, res.ColumnNames())
	require.Equal(t, []interface{}{int64(3)}, colValues(t, res, "a_2_2"))
}

func TestHStack(t *testing.T) {
	t1 := mk(t, []string{"a"}, nil, []int{1, 2, 3})
	t2 := mk(t, []string{"a", "b"}, nil, []int{4, 5}, []string{"x", "y"})

	_, err := HStack([]*table.Table{t1, t2}, StackOptions{Type: tabula.ExactJoin})
	_, ok := err.(errors.LengthMismatchError)
	require.True(t, ok)

	res, err := HStack([]*table.Table{t1, t2}, StackOptions{})
	require.Nil(t, err)
	requireValid(t, res)
	require.Equal(t, []string{"a_1", "a_2", "b"}, res.ColumnNames())
	require.Equal(t, 2, res.Len())

	res, err = HStack([]*table.Table{t1, t2}, StackOptions{Type: tabula.OuterJoin})
	require.Nil(t, err)
	requireValid(t, res)
	require.Equal(t, 3, res.Len())
	require.Equal(t, []interface{}{"x", "y", tabula.Missing}, colValues(t, res, "b"))
	require.Equal(t, []interface{}{int64(1), int64(2), int64(3)}, colValues(t, res, "a_1"))

	t3 := mk(t, []string{"a"}, nil, []int{6, 7})
	res, err = HStack([]*table.Table{t1, t2, t3}, StackOptions{})
	require.Nil(t, err)
	require.Equal(t, []string{"a_1", "a_2", "b", "a_3"}, res.ColumnNames())

	// inputs are never modified
	require.Equal(t, []string{"a"}, t1.ColumnNames())
	require.Equal(t, 3, t1.Len())
}

func TestStackNothing(t *testing.T) {
	res, err := VStack(nil, StackOptions{})
	require.Nil(t, err)
	require.Equal(t, 0, res.NumColumns())
	res, err = HStack(nil, StackOptions{})
	require.Nil(t, err)
	require.Equal(t, 0, res.Len())
}
