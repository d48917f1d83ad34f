package operations

import (
	"fmt"
	"sort"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/index"
	"github.com/go-sif/tabula/table"
)

// JoinOptions configure Join
type JoinOptions struct {
	Options
	Keys []string        // Keys defaults to every column name the two Tables share
	Type tabula.JoinType // Type defaults to tabula.InnerJoin
}

type joinSide struct {
	t    *table.Table
	keys [][]interface{}
}

func readKeys(t *table.Table, names []string) ([][]interface{}, error) {
	cols := make([]tabula.Column, len(names))
	for i, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	keys := make([][]interface{}, t.Len())
	for r := range keys {
		key := make([]interface{}, len(cols))
		for i, col := range cols {
			v, err := col.At(r)
			if err != nil {
				return nil, err
			}
			if tabula.IsMissing(v) {
				return nil, errors.UnsupportedOperationError{Name: names[i], Operation: "joining on missing keys"}
			}
			key[i] = v
		}
		keys[r] = key
	}
	return keys, nil
}

func commonNames(left, right *table.Table) []string {
	var names []string
	for _, name := range left.ColumnNames() {
		if right.HasColumn(name) {
			names = append(names, name)
		}
	}
	return names
}

// pair matches a left row with a right row. -1 marks an absent side.
type pair struct {
	l, r int
}

func match(left, right *joinSide, joinType tabula.JoinType) ([]pair, error) {
	buckets := make(map[uint64][]int)
	for r, key := range right.keys {
		h, err := index.HashKey(key)
		if err != nil {
			return nil, err
		}
		buckets[h] = append(buckets[h], r)
	}
	var pairs []pair
	matchedRight := make([]bool, len(right.keys))
	unmatchedLeft := 0
	for l, key := range left.keys {
		h, err := index.HashKey(key)
		if err != nil {
			return nil, err
		}
		found := false
		for _, r := range buckets[h] {
			c, err := tabula.CompareKeys(key, right.keys[r])
			if err != nil {
				return nil, err
			}
			if c == 0 {
				pairs = append(pairs, pair{l, r})
				matchedRight[r] = true
				found = true
			}
		}
		if !found {
			unmatchedLeft++
			if joinType == tabula.LeftJoin || joinType == tabula.OuterJoin {
				pairs = append(pairs, pair{l, -1})
			}
		}
	}
	unmatchedRight := 0
	for r, matched := range matchedRight {
		if matched {
			continue
		}
		unmatchedRight++
		if joinType == tabula.RightJoin || joinType == tabula.OuterJoin {
			pairs = append(pairs, pair{-1, r})
		}
	}
	if joinType == tabula.ExactJoin && (unmatchedLeft > 0 || unmatchedRight > 0) {
		return nil, fmt.Errorf("Exact join requires every row to match: %d left and %d right rows are unmatched", unmatchedLeft, unmatchedRight)
	}
	return pairs, nil
}

func (p pair) key(left, right *joinSide) []interface{} {
	if p.l >= 0 {
		return left.keys[p.l]
	}
	return right.keys[p.r]
}

// Join combines the rows of two Tables which share the same values in the key columns.
// The result is sorted by key; rows with equal keys keep their input order.
// Non-key columns present in both Tables are renamed using Config.UniqueNameTemplate.
func Join(left, right *table.Table, opts JoinOptions) (*table.Table, error) {
	conf, logger := opts.resolve(left)
	keyNames := opts.Keys
	if len(keyNames) == 0 {
		keyNames = commonNames(left, right)
		if len(keyNames) == 0 {
			return nil, fmt.Errorf("Cannot join Tables without any columns in common")
		}
	}
	sides := [2]*joinSide{{t: left}, {t: right}}
	for _, s := range sides {
		keys, err := readKeys(s.t, keyNames)
		if err != nil {
			return nil, err
		}
		s.keys = keys
	}
	pairs, err := match(sides[0], sides[1], opts.Type)
	if err != nil {
		return nil, err
	}
	var sortErr error
	sort.SliceStable(pairs, func(i, j int) bool {
		c, err := tabula.CompareKeys(pairs[i].key(sides[0], sides[1]), pairs[j].key(sides[0], sides[1]))
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	lrows, rrows := make([]int, len(pairs)), make([]int, len(pairs))
	for i, p := range pairs {
		lrows[i], rrows[i] = p.l, p.r
	}

	var names []string
	var cols []interface{}
	isKey := make(map[string]bool, len(keyNames))
	for pos, name := range keyNames {
		isKey[name] = true
		col, err := joinKeyColumn(pos, name, sides, lrows, rrows)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		cols = append(cols, col)
	}
	renames := newRenamer(conf, left, right)
	for i, s := range sides {
		other := sides[1-i].t
		rows := lrows
		if i == 1 {
			rows = rrows
		}
		for _, name := range s.t.ColumnNames() {
			if isKey[name] {
				continue
			}
			col, err := s.t.Column(name)
			if err != nil {
				return nil, err
			}
			taken, err := takeColumn(col, rows)
			if err != nil {
				return nil, err
			}
			outName := name
			if other.HasColumn(name) {
				outName = renames.rename(name, i)
			}
			names = append(names, outName)
			cols = append(cols, taken)
		}
	}

	merger := &MetaMerger{Policy: conf.MetaConflict, Func: opts.MergeMeta, Logger: logger}
	meta, err := merger.Merge(left.Meta(), right.Meta())
	if err != nil {
		return nil, err
	}
	logger.Debug("joined tables", "type", opts.Type.String(), "keys", keyNames, "rows", len(pairs))
	return table.New(cols, table.Options{
		Names:  names,
		Meta:   meta,
		Masked: anyMasked([]*table.Table{left, right}),
		Config: conf,
		Logger: logger,
	})
}

// joinKeyColumn takes key values from the left Table, and from the right Table for unmatched right rows
func joinKeyColumn(pos int, name string, sides [2]*joinSide, lrows, rrows []int) (tabula.Column, error) {
	lcol, err := sides[0].t.Column(name)
	if err != nil {
		return nil, err
	}
	rcol, err := sides[1].t.Column(name)
	if err != nil {
		return nil, err
	}
	var src tabula.Column = lcol
	if lt, ok := lcol.(tabula.Typed); ok {
		if rt, ok := rcol.(tabula.Typed); ok {
			colType, err := unifyTypes(name, []tabula.ColumnType{lt.Type(), rt.Type()})
			if err != nil {
				return nil, err
			}
			if src, err = castColumn(lcol, colType); err != nil {
				return nil, err
			}
		}
	}
	res, err := takeColumn(src, lrows)
	if err != nil {
		return nil, err
	}
	fills := make(map[int]interface{})
	for i, l := range lrows {
		if l < 0 {
			fills[i] = sides[1].keys[rrows[i]][pos]
		}
	}
	if err := fill(res, fills); err != nil {
		return nil, err
	}
	return res, nil
}
