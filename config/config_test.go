package config

import (
	"strings"
	"testing"

	"github.com/go-sif/tabula"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.Nil(t, c.Validate())
	require.Equal(t, "col3", c.ColumnName(3))
	require.Equal(t, "a_left", c.UniqueName("a", "left"))
}

func TestLoad(t *testing.T) {
	doc := `
masked: true
unit_policy: prefer-quantity
index_engine: hash
missing_policy: bucket
meta_conflict: error
table_names: [left, right]
log_level: debug
`
	c, err := Load(strings.NewReader(doc))
	require.Nil(t, err)
	require.True(t, c.Masked)
	require.Equal(t, tabula.PreferQuantityMixin, c.UnitPolicy)
	require.Equal(t, tabula.HashEngine, c.IndexEngine)
	require.Equal(t, tabula.MissingBucket, c.MissingPolicy)
	require.Equal(t, tabula.ErrorOnConflict, c.MetaConflict)
	require.Equal(t, []string{"left", "right"}, c.TableNames)
	require.Equal(t, "col%d", c.DefaultNameFormat)

	roundTrip, err := c.Marshal()
	require.Nil(t, err)
	again, err := Load(strings.NewReader(string(roundTrip)))
	require.Nil(t, err)
	require.Equal(t, c, again)
}

func TestLoadEmptyDocument(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	require.Nil(t, err)
	require.Equal(t, Default(), c)
}

func TestLoadReportsEveryProblem(t *testing.T) {
	doc := `
unit_policy: sometimes
default_name_format: column
table_names: [only]
log_level: loud
`
	_, err := Load(strings.NewReader(doc))
	require.NotNil(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Equal(t, 4, len(merr.Errors))
	require.Contains(t, err.Error(), "4 errors occurred")
	require.Contains(t, err.Error(), "* unknown log level \"loud\"")
}

func TestValidateSingleProblemMessage(t *testing.T) {
	c := Default()
	c.LogLevel = "loud"
	err := c.Validate()
	require.NotNil(t, err)
	require.Equal(t, `unknown log level "loud"`, err.Error())
}

func TestOverrideRestores(t *testing.T) {
	restore, err := Override(func(c *Config) {
		c.Masked = true
		c.IndexEngine = tabula.HashEngine
	})
	require.Nil(t, err)
	require.True(t, Global().Masked)
	require.Equal(t, tabula.HashEngine, Global().IndexEngine)
	restore()
	require.False(t, Global().Masked)

	_, err = Override(func(c *Config) { c.TableNames = nil })
	require.NotNil(t, err)
	require.Equal(t, []string{"1", "2"}, Global().TableNames)
}

func TestGlobalReturnsCopies(t *testing.T) {
	c := Global()
	c.TableNames[0] = "changed"
	require.Equal(t, "1", Global().TableNames[0])

	bad := Default()
	bad.UniqueNameTemplate = "{name}"
	require.NotNil(t, Init(bad))
	require.Nil(t, Init(Default()))
}
