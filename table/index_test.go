package table

import (
	"testing"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/config"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/logging"
	"github.com/stretchr/testify/require"
)

func indexed(t *testing.T, engine tabula.IndexEngine, policy tabula.MissingPolicy) (*Table, tabula.Index) {
	tbl, err := New([]interface{}{
		[]interface{}{"b", "a", tabula.Missing, "b"},
		[]int{1, 2, 3, 4},
	}, Options{Names: []string{"k", "v"}, Logger: logging.Discard()})
	require.Nil(t, err)
	idx, err := tbl.AddIndexWith(engine, policy, "k")
	require.Nil(t, err)
	return tbl, idx
}

var engines = []tabula.IndexEngine{tabula.SortedArrayEngine, tabula.HashEngine}

func lookup(t *testing.T, idx tabula.Index, key ...interface{}) []int {
	rows, err := idx.Lookup(key...)
	require.Nil(t, err)
	return rows
}

func TestIndexFollowsMutations(t *testing.T) {
	for _, engine := range engines {
		t.Run(engine.String(), func(t *testing.T) {
			tbl, idx := indexed(t, engine, tabula.MissingBucket)
			require.Equal(t, []int{0, 3}, lookup(t, idx, "b"))
			require.Equal(t, []int{2}, idx.LookupMissing())

			require.Nil(t, tbl.AddRow([]interface{}{"a", 5}))
			require.Equal(t, []int{1, 4}, lookup(t, idx, "a"))

			require.Nil(t, tbl.InsertRow(0, []interface{}{"b", 0}))
			require.Equal(t, []int{0, 1, 4}, lookup(t, idx, "b"))
			require.Equal(t, []int{3}, idx.LookupMissing())

			require.Nil(t, tbl.RemoveRows([]int{1, 3}))
			require.Equal(t, []int{0, 2}, lookup(t, idx, "b"))
			require.Empty(t, idx.LookupMissing())

			require.Nil(t, tbl.SetValue("k", 0, "c"))
			require.Equal(t, []int{0}, lookup(t, idx, "c"))
			require.Equal(t, []int{2}, lookup(t, idx, "b"))

			// changes made through the column object itself are observed too
			k, err := tbl.Regular("k")
			require.Nil(t, err)
			require.Nil(t, k.Set(2, tabula.Missing))
			require.Empty(t, lookup(t, idx, "b"))
			require.Equal(t, []int{2}, idx.LookupMissing())
			require.Nil(t, k.SetMask(nil))
			require.Equal(t, []int{2}, lookup(t, idx, ""))

			require.Nil(t, tbl.Validate())
		})
	}
}

func TestIndexRangeAndLoc(t *testing.T) {
	tbl, err := New([]interface{}{[]int{50, 10, 30, 20, 40}}, Options{Names: []string{"x"}, Logger: logging.Discard()})
	require.Nil(t, err)
	idx, err := tbl.AddIndex("x")
	require.Nil(t, err)
	rows, err := idx.Range([]interface{}{20}, []interface{}{40})
	require.Nil(t, err)
	require.Equal(t, []int{3, 2, 4}, rows)

	sub, err := tbl.LocRange([]string{"x"}, []interface{}{20}, []interface{}{40})
	require.Nil(t, err)
	x, _ := sub.Regular("x")
	require.Equal(t, []interface{}{int64(20), int64(30), int64(40)}, x.Values())
	// derived tables carry an equivalent index
	subIdx, err := sub.Index("x")
	require.Nil(t, err)
	require.NotEqual(t, idx.ID(), subIdx.ID())
	require.Equal(t, []int{1}, lookup(t, subIdx, 30))

	one, err := tbl.Loc([]string{"x"}, 10)
	require.Nil(t, err)
	require.Equal(t, 1, one.Len())
}

func TestIndexPolicies(t *testing.T) {
	tbl, idx := indexed(t, tabula.SortedArrayEngine, tabula.ExcludeMissing)
	require.Equal(t, 3, idx.Len())
	require.Empty(t, lookup(t, idx, tabula.Missing))

	_, err := tbl.AddIndex("k")
	dup, ok := err.(errors.DuplicateNameError)
	require.True(t, ok)
	require.Equal(t, "index", dup.What)

	// configured defaults apply to AddIndex
	conf := config.Default()
	conf.IndexEngine = tabula.HashEngine
	conf.MissingPolicy = tabula.MissingBucket
	tbl2, err := New([]interface{}{[]string{"x"}}, Options{Names: []string{"k"}, Config: conf, Logger: logging.Discard()})
	require.Nil(t, err)
	idx2, err := tbl2.AddIndex("k")
	require.Nil(t, err)
	require.Equal(t, tabula.HashEngine, idx2.Engine())
	require.Equal(t, tabula.MissingBucket, idx2.MissingPolicy())
}

func TestIndexStructuralChanges(t *testing.T) {
	tbl, _ := indexed(t, tabula.HashEngine, tabula.ExcludeMissing)
	_, err := tbl.AddIndex("k", "v")
	require.Nil(t, err)

	require.Nil(t, tbl.RenameColumn("k", "key"))
	idx, err := tbl.Index("key")
	require.Nil(t, err)
	require.Equal(t, []string{"key"}, idx.Columns())
	_, err = tbl.Index("key", "v")
	require.Nil(t, err)

	require.Nil(t, tbl.ReplaceColumn("key", []string{"z", "z", "y", "z"}))
	require.Equal(t, []int{0, 1, 3}, lookup(t, idx, "z"))

	require.Nil(t, tbl.Sort("key"))
	require.Equal(t, []int{0}, lookup(t, idx, "y"))
	require.Nil(t, tbl.Validate())

	require.Nil(t, tbl.RemoveColumn("v"))
	require.Equal(t, 1, len(tbl.Indexes()))
	require.Nil(t, tbl.RemoveIndex("key"))
	require.Empty(t, tbl.Indexes())
	require.NotNil(t, tbl.RemoveIndex("key"))
}

func TestIndexRejectsUncomparableValues(t *testing.T) {
	tbl, err := New([]interface{}{[]interface{}{"a", 1}}, Options{Names: []string{"o"}, Logger: logging.Discard()})
	require.Nil(t, err)
	_, err = tbl.AddIndex("o")
	require.NotNil(t, err)
	require.Empty(t, tbl.Indexes())

	tbl, err = New([]interface{}{[]interface{}{"a", "b"}}, Options{Names: []string{"o"}, Logger: logging.Discard()})
	require.Nil(t, err)
	require.Nil(t, tbl.ReplaceColumn("o", []interface{}{"a", "b"}))
	_, err = tbl.AddIndex("o")
	require.Nil(t, err)
	// the object column accepts anything, but the index cannot order it
	err = tbl.ReplaceColumn("o", []interface{}{"a", 2})
	require.NotNil(t, err)
	v, _ := tbl.Value("o", 1)
	require.Equal(t, "b", v)
}
