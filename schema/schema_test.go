package schema

import (
	"testing"
	"time"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/column"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/mixin"
	"github.com/stretchr/testify/require"
)

func mustColumn(t *testing.T, name string, data interface{}) *column.Column {
	col, err := column.FromSlice(name, data)
	require.Nil(t, err)
	return col
}

func TestSchemaEqualityBasic(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn(mustColumn(t, "col1", []uint64{1}))
	require.Nil(t, err)
	_, err = schema1.CreateColumn(mustColumn(t, "col2", []string{"a"}))
	require.Nil(t, err)
	_, err = schema1.CreateColumn(mixin.NewTime("col3", []time.Time{time.Now()}))
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn(mustColumn(t, "col1", []uint64{2}))
	require.Nil(t, err)
	_, err = schema2.CreateColumn(mustColumn(t, "col2", []string{"b"}))
	require.Nil(t, err)
	_, err = schema2.CreateColumn(mixin.NewTime("col3", []time.Time{time.Now()}))
	require.Nil(t, err)

	require.Nil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityDifferentType(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn(mustColumn(t, "col1", []uint64{1}))
	require.Nil(t, err)
	_, err = schema1.CreateColumn(mustColumn(t, "col2", []uint32{1}))
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn(mustColumn(t, "col1", []uint64{1}))
	require.Nil(t, err)
	_, err = schema2.CreateColumn(mustColumn(t, "col2", []int32{1}))
	require.Nil(t, err)

	require.NotNil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityOrder(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn(mustColumn(t, "col1", []uint64{1}))
	require.Nil(t, err)
	_, err = schema1.CreateColumn(mustColumn(t, "col2", []uint32{1}))
	require.Nil(t, err)
	_, err = schema1.CreateColumn(mustColumn(t, "col3", []string{"x"}))
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn(mustColumn(t, "col1", []uint64{1}))
	require.Nil(t, err)
	_, err = schema2.CreateColumn(mustColumn(t, "col3", []string{"x"}))
	require.Nil(t, err)
	_, err = schema2.CreateColumn(mustColumn(t, "col2", []uint32{1}))
	require.Nil(t, err)

	require.NotNil(t, schema1.Equals(schema2))
}

func TestCreateDuplicateColumn(t *testing.T) {
	s := CreateSchema()
	_, err := s.CreateColumn(mustColumn(t, "col1", []int{1}))
	require.Nil(t, err)
	_, err = s.CreateColumn(mustColumn(t, "col1", []int{2}))
	dup, ok := err.(errors.DuplicateNameError)
	require.True(t, ok)
	require.Equal(t, "col1", dup.Name)
}

func TestFieldsResolveKindOnInsertion(t *testing.T) {
	s := CreateSchema()
	regular, err := s.CreateColumn(mustColumn(t, "a", []int{1}))
	require.Nil(t, err)
	require.Equal(t, tabula.RegularKind, regular.Kind())
	require.NotNil(t, regular.Regular())
	require.Nil(t, regular.Mixin())

	q, err := s.CreateColumn(mixin.NewQuantity("b", []float64{1}, "m"))
	require.Nil(t, err)
	require.Equal(t, tabula.MixinKind, q.Kind())
	require.Nil(t, q.Regular())
	require.Equal(t, "mixin:quantity", q.TypeName())
}

func TestInsertRemoveRenameKeepOrder(t *testing.T) {
	s := CreateSchema()
	for _, name := range []string{"a", "b", "c"} {
		_, err := s.CreateColumn(mustColumn(t, name, []int{1}))
		require.Nil(t, err)
	}
	_, err := s.InsertColumn(1, mustColumn(t, "x", []int{1}))
	require.Nil(t, err)
	require.Equal(t, []string{"a", "x", "b", "c"}, s.ColumnNames())

	removed, err := s.RemoveColumn("x")
	require.Nil(t, err)
	require.Equal(t, -1, removed.Index())
	require.Equal(t, []string{"a", "b", "c"}, s.ColumnNames())

	require.Nil(t, s.RenameColumn("b", "B"))
	require.Equal(t, []string{"a", "B", "c"}, s.ColumnNames())
	field, err := s.GetField("B")
	require.Nil(t, err)
	require.Equal(t, "B", field.Column().Info().Name)

	err = s.RenameColumn("a", "c")
	_, ok := err.(errors.DuplicateNameError)
	require.True(t, ok)
	err = s.RenameColumn("zzz", "y")
	_, ok = err.(errors.NotFoundError)
	require.True(t, ok)
	_, err = s.RemoveColumn("zzz")
	require.NotNil(t, err)

	require.Nil(t, s.Reorder([]string{"c", "a", "B"}))
	require.Equal(t, []string{"c", "a", "B"}, s.ColumnNames())
	require.NotNil(t, s.Reorder([]string{"c", "c", "a"}))
}

func TestReplaceColumnKeepsPosition(t *testing.T) {
	s := CreateSchema()
	_, err := s.CreateColumn(mustColumn(t, "a", []int{1}))
	require.Nil(t, err)
	_, err = s.CreateColumn(mustColumn(t, "b", []int{1}))
	require.Nil(t, err)
	replaced, field, err := s.ReplaceColumn("a", mustColumn(t, "other", []string{"z"}))
	require.Nil(t, err)
	require.Equal(t, "int64", replaced.TypeName())
	require.Equal(t, "string", field.TypeName())
	require.Equal(t, []string{"a", "b"}, s.ColumnNames())
}

func TestCloneIsIndependent(t *testing.T) {
	s := CreateSchema()
	_, err := s.CreateColumn(mustColumn(t, "a", []int{1, 2}))
	require.Nil(t, err)
	clone, err := s.Clone()
	require.Nil(t, err)
	require.Nil(t, clone.Equals(s))
	field, _ := clone.GetField("a")
	require.Nil(t, field.SetAt(0, 10))
	orig, _ := s.GetField("a")
	v, _ := orig.At(0)
	require.Equal(t, int64(1), v)
}
