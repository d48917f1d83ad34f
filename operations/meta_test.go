package operations

import (
	"fmt"
	"testing"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/logging"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestMergeMetaRecursive(t *testing.T) {
	merger := &MetaMerger{Logger: logging.Discard()}
	left := tabula.Meta{"a": 1, "nested": map[string]interface{}{"x": 1}, "history": []interface{}{"read"}}
	right := tabula.Meta{"a": 2, "b": 3, "nested": tabula.Meta{"y": 2}, "history": []interface{}{"joined"}}
	res, err := merger.Merge(left, right)
	require.Nil(t, err)
	require.Equal(t, 1, res["a"])
	require.Equal(t, 3, res["b"])
	require.Equal(t, tabula.Meta{"x": 1, "y": 2}, res["nested"])
	require.Equal(t, []interface{}{"read", "joined"}, res["history"])
	// inputs are untouched
	require.Equal(t, map[string]interface{}{"x": 1}, left["nested"])
	require.Equal(t, []interface{}{"read"}, left["history"])
}

func TestMergeMetaPolicies(t *testing.T) {
	left := tabula.Meta{"a": 1, "nested": tabula.Meta{"x": 1}}
	right := tabula.Meta{"a": 2, "nested": tabula.Meta{"x": 2}}

	res, err := (&MetaMerger{Policy: tabula.LastWins}).Merge(left, right)
	require.Nil(t, err)
	require.Equal(t, 2, res["a"])
	require.Equal(t, tabula.Meta{"x": 2}, res["nested"])

	_, err = (&MetaMerger{Policy: tabula.ErrorOnConflict}).Merge(left, right)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 2)
	keys := []string{}
	for _, e := range merr.Errors {
		conflict, ok := e.(errors.MergeConflictError)
		require.True(t, ok)
		keys = append(keys, conflict.Key)
	}
	require.ElementsMatch(t, []string{"a", "nested.x"}, keys)

	res, err = (&MetaMerger{Policy: tabula.ErrorOnConflict, Func: func(key string, l, r interface{}) (interface{}, error) {
		return fmt.Sprintf("%v|%v", l, r), nil
	}}).Merge(left, right)
	require.Nil(t, err)
	require.Equal(t, "1|2", res["a"])
	require.Equal(t, tabula.Meta{"x": "1|2"}, res["nested"])
}

func TestMergeMetaEqualValuesDoNotConflict(t *testing.T) {
	res, err := (&MetaMerger{Policy: tabula.ErrorOnConflict}).Merge(tabula.Meta{"a": []byte("x")}, tabula.Meta{"a": []byte("x")}, nil)
	require.Nil(t, err)
	require.Equal(t, []byte("x"), res["a"])
}
