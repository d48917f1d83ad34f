package operations

import (
	"testing"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/logging"
	"github.com/go-sif/tabula/table"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func mk(t *testing.T, names []string, meta tabula.Meta, cols ...interface{}) *table.Table {
	tbl, err := table.New(cols, table.Options{Names: names, Meta: meta, Logger: logging.Discard()})
	require.Nil(t, err)
	return tbl
}

func colValues(t *testing.T, tbl *table.Table, name string) []interface{} {
	col, err := tbl.Column(name)
	require.Nil(t, err)
	values := make([]interface{}, col.Len())
	for i := range values {
		values[i], err = col.At(i)
		require.Nil(t, err)
	}
	return values
}

func requireValid(t *testing.T, tbl *table.Table) {
	for _, col := range tbl.Columns() {
		require.Equal(t, tbl.Len(), col.Len(), col.Info().Name)
	}
	require.Nil(t, tbl.Validate())
}
