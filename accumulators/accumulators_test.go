package accumulators

import (
	"testing"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/stretchr/testify/require"
)

type mapRow map[string]interface{}

func (r mapRow) Get(name string) (interface{}, error) {
	v, ok := r[name]
	if !ok {
		return nil, errors.ColumnNotFound(name)
	}
	return v, nil
}

var rows = []mapRow{
	{"n": int64(3), "s": "b"},
	{"n": tabula.Missing, "s": "a"},
	{"n": int64(1), "s": "c"},
}

func accumulate(t *testing.T, acc tabula.Accumulator, rs []mapRow) tabula.Accumulator {
	for _, r := range rs {
		require.Nil(t, acc.Accumulate(r))
	}
	return acc
}

func TestCountSumMean(t *testing.T) {
	require.Equal(t, int64(3), accumulate(t, Counter(), rows).Result())
	require.Equal(t, 4.0, accumulate(t, Adder("n")(), rows).Result())
	require.Equal(t, 2.0, accumulate(t, Averager("n")(), rows).Result())
	require.True(t, tabula.IsMissing(Averager("n")().Result()))

	err := Adder("s")().Accumulate(rows[0])
	_, ok := err.(errors.TypeIncompatibleError)
	require.True(t, ok)
	err = Adder("zzz")().Accumulate(rows[0])
	_, ok = err.(errors.NotFoundError)
	require.True(t, ok)
}

func TestExtremum(t *testing.T) {
	require.Equal(t, int64(1), accumulate(t, Minimizer("n")(), rows).Result())
	require.Equal(t, int64(3), accumulate(t, Maximizer("n")(), rows).Result())
	require.Equal(t, "c", accumulate(t, Maximizer("s")(), rows).Result())
	require.True(t, tabula.IsMissing(Minimizer("n")().Result()))
}

func TestMerge(t *testing.T) {
	facc := Compose(Counter, Adder("n"), Averager("n"), Minimizer("n"))
	left := accumulate(t, facc(), rows[:1])
	right := accumulate(t, facc(), rows[1:])
	require.Nil(t, left.Merge(right))
	require.Equal(t, []interface{}{int64(3), 4.0, 2.0, int64(1)}, left.Result())

	require.NotNil(t, Counter().Merge(Adder("n")()))
	require.NotNil(t, Minimizer("n")().Merge(Maximizer("n")()))
	require.NotNil(t, left.Merge(Compose(Counter)()))
}
