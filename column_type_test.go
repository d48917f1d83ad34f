package tabula

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestColumnTypeByName(t *testing.T) {
	for _, name := range []string{"bool", "int8", "int16", "int32", "int64", "uint8", "uint16", "uint32", "uint64", "float32", "float64", "string", "bytes", "object", "time", "time:2006-01-02"} {
		colType, err := ColumnTypeByName(name)
		require.Nil(t, err)
		require.Equal(t, name, colType.Name())
	}
	_, err := ColumnTypeByName("complex128")
	require.NotNil(t, err)
}

func TestCoerce(t *testing.T) {
	v, err := (&Int8ColumnType{}).Coerce(int64(12))
	require.Nil(t, err)
	require.Equal(t, int8(12), v)
	_, err = (&Int8ColumnType{}).Coerce(300)
	require.NotNil(t, err)
	_, err = (&Int64ColumnType{}).Coerce("1")
	require.NotNil(t, err)

	v, err = (&Float64ColumnType{}).Coerce(int32(2))
	require.Nil(t, err)
	require.Equal(t, 2.0, v)

	v, err = (&StringColumnType{}).Coerce([]byte("abc"))
	require.Nil(t, err)
	require.Equal(t, "abc", v)

	raw := []byte("abc")
	v, err = (&BytesColumnType{}).Coerce(raw)
	require.Nil(t, err)
	raw[0] = 'z'
	require.Equal(t, []byte("abc"), v)

	_, err = (&BoolColumnType{}).Coerce(1)
	require.NotNil(t, err)
}

func TestTimeColumnType(t *testing.T) {
	colType := &TimeColumnType{Format: "2006-01-02"}
	v, err := colType.Coerce("2020-05-06")
	require.Nil(t, err)
	require.Equal(t, time.Date(2020, 5, 6, 0, 0, 0, 0, time.UTC), v)
	require.Equal(t, "\"2020-05-06\"", colType.ToString(v))
	_, err = colType.Coerce("May 6")
	require.NotNil(t, err)
	require.Equal(t, -1, colType.Compare(v, v.(time.Time).Add(time.Hour)))
}

func TestNumericClassification(t *testing.T) {
	require.True(t, IsNumeric(&Uint16ColumnType{}))
	require.True(t, IsInteger(&Uint16ColumnType{}))
	require.False(t, IsInteger(&Float32ColumnType{}))
	require.False(t, IsNumeric(&StringColumnType{}))
}

func TestPolicyNames(t *testing.T) {
	p, err := ParseUnitPolicy(PreferQuantityMixin.String())
	require.Nil(t, err)
	require.Equal(t, PreferQuantityMixin, p)
	e, err := ParseIndexEngine(HashEngine.String())
	require.Nil(t, err)
	require.Equal(t, HashEngine, e)
	m, err := ParseMissingPolicy(MissingBucket.String())
	require.Nil(t, err)
	require.Equal(t, MissingBucket, m)
	c, err := ParseMetaConflictPolicy(ErrorOnConflict.String())
	require.Nil(t, err)
	require.Equal(t, ErrorOnConflict, c)
	_, err = ParseIndexEngine("btree")
	require.NotNil(t, err)
	require.Equal(t, "outer", OuterJoin.String())
}
