package util

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRows(t *testing.T) {
	require.Equal(t, []int{0, 2, 5}, NormalizeRows([]int{5, 2, 0, 2}))
	require.Equal(t, []int{}, NormalizeRows([]int{}))
	require.Equal(t, []int{}, NormalizeRows(nil))
}

func TestDeleteRows(t *testing.T) {
	s := []string{"a", "b", "c", "d", "e"}
	s = DeleteRows(s, []int{1, 3})
	require.Equal(t, []string{"a", "c", "e"}, s)
	require.Equal(t, []string{"a", "c", "e"}, DeleteRows(s, nil))
}

func TestInsertAt(t *testing.T) {
	require.Equal(t, []int{1, 9, 2}, InsertAt([]int{1, 2}, 1, 9))
	require.Equal(t, []int{1, 2, 9}, InsertAt([]int{1, 2}, 2, 9))
}

func TestTakeRows(t *testing.T) {
	out, mask := TakeRows([]int{10, 20, 30}, []int{2, -1, 0}, 0)
	require.Equal(t, []int{30, 0, 10}, out)
	require.Equal(t, []bool{false, true, false}, mask)
	_, mask = TakeRows([]int{10, 20, 30}, []int{1}, 0)
	require.Nil(t, mask)
	require.Equal(t, []bool{true, false}, TakeMask([]bool{false, true}, []int{1, 0}))
	require.Nil(t, TakeMask(nil, []int{1, 0}))
}

func TestSafeRowPredicateRecoversPanics(t *testing.T) {
	pred := SafeRowPredicate(func(row int) (bool, error) {
		if row == 1 {
			panic("boom")
		}
		if row == 2 {
			return false, fmt.Errorf("bad row")
		}
		return true, nil
	}, func(row int) string { return fmt.Sprintf("<row %d>", row) })
	keep, err := pred(0)
	require.Nil(t, err)
	require.True(t, keep)
	_, err = pred(1)
	require.NotNil(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "Filter Panic: boom"))
	_, err = pred(2)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "<row 2>")
}

func TestFormatMultiError(t *testing.T) {
	msg := FormatMultiError([]error{fmt.Errorf("one"), fmt.Errorf("two")})
	require.Contains(t, msg, "2 errors occurred")
	require.Contains(t, msg, "* two")
	require.Equal(t, "one", FormatMultiError([]error{fmt.Errorf("one")}))
}
