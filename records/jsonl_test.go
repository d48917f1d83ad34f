package records

import (
	"strings"
	"testing"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/logging"
	"github.com/go-sif/tabula/table"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const people = `{"name": "Sean", "meta": { "index": 1, "first": "Sean", "last": "McIntyre"}, "score": 1.5}
# skipped
{"name": "Chris", "meta": { "index": 3, "first": "Chris", "last": "Dickson"}, "score": null}

{"name": "Phil", "meta": { "index": 2, "first": "Phil"}, "tags": ["a", "b"]}
`

func TestParseJSONLPaths(t *testing.T) {
	tbl, err := ParseJSONL(strings.NewReader(people), ParserConf{
		Comment: '#',
		Columns: []ColumnDef{
			{Name: "name"},
			{Name: "index", Path: "meta.index", Type: &tabula.Int8ColumnType{}},
			{Name: "last", Path: "meta.last"},
			{Name: "score"},
		},
	}, table.Options{Logger: logging.Discard()})
	require.Nil(t, err)
	require.Equal(t, 3, tbl.Len())
	require.Equal(t, []string{"name", "index", "last", "score"}, tbl.ColumnNames())

	v, err := tbl.Value("index", 1)
	require.Nil(t, err)
	require.Equal(t, int8(3), v)
	v, err = tbl.Value("last", 2)
	require.Nil(t, err)
	require.True(t, tabula.IsMissing(v))
	v, err = tbl.Value("score", 1)
	require.Nil(t, err)
	require.True(t, tabula.IsMissing(v))
	v, err = tbl.Value("score", 0)
	require.Nil(t, err)
	require.Equal(t, 1.5, v)
}

func TestParseJSONLInfersColumns(t *testing.T) {
	tbl, err := ParseJSONL(strings.NewReader(people), ParserConf{Comment: '#'}, table.Options{Logger: logging.Discard()})
	require.Nil(t, err)
	require.Equal(t, []string{"name", "meta", "score", "tags"}, tbl.ColumnNames())
	col, err := tbl.Regular("tags")
	require.Nil(t, err)
	require.Equal(t, "object", col.Type().Name())
	v, err := col.At(2)
	require.Nil(t, err)
	require.Equal(t, []interface{}{"a", "b"}, v)
}

func TestParseJSONLHeaderAndErrors(t *testing.T) {
	tbl, err := ParseJSONL(strings.NewReader("header\n{\"a\": 1}\n{\"a\": 2}"), ParserConf{HeaderLines: 1}, table.Options{Logger: logging.Discard()})
	require.Nil(t, err)
	require.Equal(t, 2, tbl.Len())
	v, err := tbl.Value("a", 1)
	require.Nil(t, err)
	require.Equal(t, int64(2), v)

	_, err = ParseJSONL(strings.NewReader("{\"a\": 1}\n{oops"), ParserConf{}, table.Options{Logger: logging.Discard()})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "line 2")

	_, err = ParseJSONL(strings.NewReader("{\"a\": \"x\"}"), ParserConf{Columns: []ColumnDef{{Name: "a", Type: &tabula.Int64ColumnType{}}}}, table.Options{Logger: logging.Discard()})
	require.NotNil(t, err)
}

func TestToValue(t *testing.T) {
	require.Equal(t, int64(7), ToValue(gjsonGet(`{"v": 7}`)))
	require.Equal(t, 7.0, ToValue(gjsonGet(`{"v": 7.0}`)))
	require.Equal(t, true, ToValue(gjsonGet(`{"v": true}`)))
	require.True(t, tabula.IsMissing(ToValue(gjsonGet(`{}`))))
	require.Equal(t, map[string]interface{}{"x": "y"}, ToValue(gjsonGet(`{"v": {"x": "y"}}`)))
}

func gjsonGet(json string) gjson.Result {
	return gjson.Get(json, "v")
}
