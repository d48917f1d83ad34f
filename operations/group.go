package operations

import (
	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/column"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/index"
	"github.com/go-sif/tabula/internal/util"
	"github.com/go-sif/tabula/table"
)

// Groups partitions the rows of a Table, sorted by its key columns, into runs of equal keys
type Groups struct {
	table   *table.Table
	keys    []string
	offsets []int
}

// Aggregation reduces each group to a single value, stored in a column called Name
type Aggregation struct {
	Name    string
	Factory tabula.AccumulatorFactory
}

func sameKey(a, b []interface{}) (bool, error) {
	ha, err := index.HashKey(a)
	if err != nil {
		return false, err
	}
	hb, err := index.HashKey(b)
	if err != nil {
		return false, err
	}
	if ha != hb {
		return false, nil
	}
	for i := range a {
		am, bm := tabula.IsMissing(a[i]), tabula.IsMissing(b[i])
		if am || bm {
			if am != bm {
				return false, nil
			}
			continue
		}
		c, err := tabula.CompareValues(a[i], b[i])
		if err != nil || c != 0 {
			return false, err
		}
	}
	return true, nil
}

func rowKey(t *table.Table, names []string, row int) ([]interface{}, error) {
	key := make([]interface{}, len(names))
	for i, name := range names {
		v, err := t.Value(name, row)
		if err != nil {
			return nil, err
		}
		key[i] = v
	}
	return key, nil
}

// GroupBy sorts a copy of t by the named key columns, and splits it into groups
// of rows with equal keys. Missing keys form their own group, sorted last.
func GroupBy(t *table.Table, keys ...string) (*Groups, error) {
	if len(keys) == 0 {
		return nil, errors.UnsupportedOperationError{Name: t.String(), Operation: "grouping without key columns"}
	}
	order, err := t.SortedOrder(keys...)
	if err != nil {
		return nil, err
	}
	sorted, err := t.Take(order)
	if err != nil {
		return nil, err
	}
	offsets := []int{}
	var prev []interface{}
	for row := 0; row < sorted.Len(); row++ {
		key, err := rowKey(sorted, keys, row)
		if err != nil {
			return nil, err
		}
		same := false
		if prev != nil {
			if same, err = sameKey(prev, key); err != nil {
				return nil, err
			}
		}
		if !same {
			offsets = append(offsets, row)
		}
		prev = key
	}
	offsets = append(offsets, sorted.Len())
	sorted.Logger().Debug("grouped table", "keys", keys, "groups", len(offsets)-1)
	return &Groups{table: sorted, keys: keys, offsets: offsets}, nil
}

// Unique returns the first row of each group of rows sharing the same values
// in the named columns, sorted by those columns. All columns are used when none are named.
func Unique(t *table.Table, keys ...string) (*table.Table, error) {
	if len(keys) == 0 {
		keys = t.ColumnNames()
	}
	g, err := GroupBy(t, keys...)
	if err != nil {
		return nil, err
	}
	return g.table.Take(g.offsets[:g.NumGroups()])
}

// Table returns the sorted Table underlying these Groups
func (g *Groups) Table() *table.Table {
	return g.table
}

// KeyNames returns the names of the key columns
func (g *Groups) KeyNames() []string {
	return append([]string(nil), g.keys...)
}

// NumGroups returns the number of groups
func (g *Groups) NumGroups() int {
	return len(g.offsets) - 1
}

// Indices returns the row offset of each group in Table(), followed by its length
func (g *Groups) Indices() []int {
	return append([]int(nil), g.offsets...)
}

// Keys returns a Table holding the key values of each group
func (g *Groups) Keys() (*table.Table, error) {
	keys, err := g.table.SelectColumns(g.keys...)
	if err != nil {
		return nil, err
	}
	return keys.Take(g.offsets[:g.NumGroups()])
}

// Group returns a copy of the rows in group i
func (g *Groups) Group(i int) (*table.Table, error) {
	if i < 0 || i >= g.NumGroups() {
		return nil, errors.RowOutOfRange("groups", i, g.NumGroups())
	}
	return g.table.Slice(g.offsets[i], g.offsets[i+1])
}

// Aggregate reduces every group with the given Aggregations. The result holds the
// key columns, followed by one column per Aggregation.
func (g *Groups) Aggregate(aggs ...Aggregation) (*table.Table, error) {
	res, err := g.Keys()
	if err != nil {
		return nil, err
	}
	for _, agg := range aggs {
		results := make([]interface{}, g.NumGroups())
		for i := range results {
			acc := agg.Factory()
			accumulate := util.SafeAccumulation(func(v interface{}) error {
				return acc.Accumulate(v.(*table.Row))
			}, agg.Name)
			for row := g.offsets[i]; row < g.offsets[i+1]; row++ {
				r, err := g.table.Row(row)
				if err != nil {
					return nil, err
				}
				if err := accumulate(r); err != nil {
					return nil, err
				}
			}
			results[i] = acc.Result()
		}
		col, err := column.FromSlice(agg.Name, results)
		if err != nil {
			return nil, err
		}
		if err := res.AddColumn(agg.Name, col); err != nil {
			return nil, err
		}
	}
	return res, nil
}
