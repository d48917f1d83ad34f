package records

import (
	"strings"
	"testing"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/logging"
	"github.com/go-sif/tabula/table"
	"github.com/stretchr/testify/require"
)

const trips = `# trips export
id|fare|paid|note|when
1|2.5|true||2020-01-02
2|NA|false|late|2020-01-03
`

func TestParseDSVHeader(t *testing.T) {
	tbl, err := ParseDSV(strings.NewReader(trips), DSVConf{
		Header:    true,
		Delimiter: '|',
		Comment:   '#',
		NilValue:  "NA",
		Columns: []ColumnDef{
			{Type: &tabula.Uint16ColumnType{}},
			{},
			{},
			{},
			{Type: &tabula.TimeColumnType{Format: "2006-01-02"}},
		},
	}, table.Options{Logger: logging.Discard()})
	require.Nil(t, err)
	require.Equal(t, []string{"id", "fare", "paid", "note", "when"}, tbl.ColumnNames())
	require.Equal(t, 2, tbl.Len())

	v, err := tbl.Value("id", 1)
	require.Nil(t, err)
	require.Equal(t, uint16(2), v)
	v, err = tbl.Value("fare", 1)
	require.Nil(t, err)
	require.True(t, tabula.IsMissing(v))
	v, err = tbl.Value("paid", 0)
	require.Nil(t, err)
	require.Equal(t, true, v)
	v, err = tbl.Value("note", 0)
	require.Nil(t, err)
	require.True(t, tabula.IsMissing(v))
	col, err := tbl.Regular("when")
	require.Nil(t, err)
	require.Equal(t, "time:2006-01-02", col.Type().Name())
}

func TestParseDSVDefaultNames(t *testing.T) {
	tbl, err := ParseDSV(strings.NewReader("skip me\n1,a\n2,b\n"), DSVConf{HeaderLines: 1}, table.Options{Logger: logging.Discard()})
	require.Nil(t, err)
	require.Equal(t, []string{"col0", "col1"}, tbl.ColumnNames())
	v, err := tbl.Value("col0", 1)
	require.Nil(t, err)
	require.Equal(t, int64(2), v)
}

func TestParseDSVErrors(t *testing.T) {
	_, err := ParseDSV(strings.NewReader("x\n"), DSVConf{Columns: []ColumnDef{{Name: "n", Type: &tabula.Int64ColumnType{}}}}, table.Options{Logger: logging.Discard()})
	require.NotNil(t, err)
	_, err = ParseDSV(strings.NewReader("1,2\n3\n"), DSVConf{}, table.Options{Logger: logging.Discard()})
	require.NotNil(t, err)
}

func TestParseDSVSkipsBannerOfAnyWidth(t *testing.T) {
	tbl, err := ParseDSV(strings.NewReader("# generated by tool\nx,y\n1,2\n"), DSVConf{HeaderLines: 1, Header: true}, table.Options{Logger: logging.Discard()})
	require.Nil(t, err)
	require.Equal(t, []string{"x", "y"}, tbl.ColumnNames())
	require.Equal(t, 1, tbl.Len())

	conf := DSVConf{
		HeaderLines: 2,
		Columns:     []ColumnDef{{Name: "a", Type: &tabula.Int64ColumnType{}}, {Name: "b"}},
	}
	tbl, err = ParseDSV(strings.NewReader("banner\nwide,banner,line\n1,x\n2,y\n"), conf, table.Options{Logger: logging.Discard()})
	require.Nil(t, err)
	require.Equal(t, 2, tbl.Len())

	// configured columns still fix the width of data records
	_, err = ParseDSV(strings.NewReader("banner\nwide,banner,line\n1,x,extra\n"), conf, table.Options{Logger: logging.Discard()})
	require.NotNil(t, err)
}
