package table

import (
	"testing"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/logging"
	"github.com/stretchr/testify/require"
)

func TestFromRows(t *testing.T) {
	tbl, err := FromRows([][]interface{}{
		{1, 2.0, "x"},
		{4, 5.0, "y"},
		{5, 8.2, "z"},
	}, Options{Names: []string{"a", "b", "c"}, Logger: logging.Discard()})
	require.Nil(t, err)
	require.Equal(t, 3, tbl.Len())
	v, _ := tbl.Value("a", 1)
	require.Equal(t, int64(4), v)

	_, err = FromRows([][]interface{}{{1, 2}, {3}}, Options{Logger: logging.Discard()})
	mismatch, ok := err.(errors.LengthMismatchError)
	require.True(t, ok)
	require.Equal(t, "row 1", mismatch.Name)

	empty, err := FromRows(nil, Options{Logger: logging.Discard()})
	require.Nil(t, err)
	require.Equal(t, 0, empty.Len())
	require.Equal(t, 0, empty.NumColumns())
}

func TestFromRecords(t *testing.T) {
	tbl, err := FromRecords([]map[string]interface{}{
		{"name": "a", "n": 1},
		{"name": "b", "extra": true},
	}, Options{Logger: logging.Discard()})
	require.Nil(t, err)
	require.Equal(t, []string{"n", "name", "extra"}, tbl.ColumnNames())
	v, _ := tbl.Value("n", 1)
	require.True(t, tabula.IsMissing(v))
	v, _ = tbl.Value("extra", 0)
	require.True(t, tabula.IsMissing(v))

	records, err := tbl.Records()
	require.Nil(t, err)
	require.Equal(t, "b", records[1]["name"])

	_, err = FromRecords([]map[string]interface{}{{"x": 1}}, Options{Names: []string{"y"}, Logger: logging.Discard()})
	_, ok := err.(errors.NotFoundError)
	require.True(t, ok)
}
