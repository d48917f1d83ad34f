// Package index implements the lookup structures a Table maintains over its columns
package index

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-sif/tabula"
	"github.com/gofrs/uuid"
	"golang.org/x/sync/errgroup"
)

// New builds an empty Index over the named columns. Build must be called
// before it can answer queries.
func New(engine tabula.IndexEngine, columns []string, policy tabula.MissingPolicy) (tabula.Index, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("Cannot create an index over zero columns")
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	b := base{
		id:      id.String(),
		columns: append([]string(nil), columns...),
		policy:  policy,
	}
	switch engine {
	case tabula.SortedArrayEngine:
		return &SortedArray{base: b}, nil
	case tabula.HashEngine:
		return &Hash{base: b, buckets: make(map[uint64][]int)}, nil
	}
	return nil, fmt.Errorf("Unknown index engine %d", engine)
}

// Job pairs an Index with the rows it should be built from
type Job struct {
	Index  tabula.Index
	Source tabula.KeySource
}

// BuildAll builds several indexes concurrently, returning once every build has finished
func BuildAll(ctx context.Context, jobs []Job) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return job.Index.Build(job.Source)
		})
	}
	return g.Wait()
}

// SameColumns returns true iff two column lists are identical, including order
func SameColumns(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// base holds the state shared by every Index engine
type base struct {
	id      string
	columns []string
	policy  tabula.MissingPolicy
	missing []int // ascending
}

// ID uniquely identifies this Index
func (b *base) ID() string {
	return b.id
}

// MissingPolicy returns how rows with missing keys are treated
func (b *base) MissingPolicy() tabula.MissingPolicy {
	return b.policy
}

// Columns returns the names of the indexed columns, in key order
func (b *base) Columns() []string {
	return append([]string(nil), b.columns...)
}

// SetColumns renames the indexed columns
func (b *base) SetColumns(names []string) {
	b.columns = append([]string(nil), names...)
}

// LookupMissing returns the positions of rows in the missing bucket
func (b *base) LookupMissing() []int {
	return append([]int{}, b.missing...)
}

func (b *base) checkKey(key []interface{}) error {
	if len(key) != len(b.columns) {
		return fmt.Errorf("Index over %v expects %d key values, got %d", b.columns, len(b.columns), len(key))
	}
	return nil
}

// isMissingKey returns true iff any component of key is tabula.Missing
func isMissingKey(key []interface{}) bool {
	for _, v := range key {
		if tabula.IsMissing(v) {
			return true
		}
	}
	return false
}

func (b *base) addMissing(row int) {
	if b.policy != tabula.MissingBucket {
		return
	}
	i := sort.SearchInts(b.missing, row)
	b.missing = append(b.missing, 0)
	copy(b.missing[i+1:], b.missing[i:])
	b.missing[i] = row
}

// removeMissing forgets row, returning true iff it was in the missing bucket
func (b *base) removeMissing(row int) bool {
	i := sort.SearchInts(b.missing, row)
	if i < len(b.missing) && b.missing[i] == row {
		b.missing = append(b.missing[:i], b.missing[i+1:]...)
		return true
	}
	return false
}

// shiftMissing adds delta to every position >= from
func (b *base) shiftMissing(from int, delta int) {
	for i, r := range b.missing {
		if r >= from {
			b.missing[i] = r + delta
		}
	}
}

// compareEntry orders (key, row) pairs by key, then row
func compareEntry(ak []interface{}, ar int, bk []interface{}, br int) (int, error) {
	c, err := tabula.CompareKeys(ak, bk)
	if err != nil || c != 0 {
		return c, err
	}
	switch {
	case ar < br:
		return -1, nil
	case ar > br:
		return 1, nil
	}
	return 0, nil
}

// inRange returns true iff lo <= key <= hi. nil bounds are open.
func inRange(key []interface{}, lo []interface{}, hi []interface{}) (bool, error) {
	if lo != nil {
		c, err := tabula.CompareKeys(key, lo)
		if err != nil || c < 0 {
			return false, err
		}
	}
	if hi != nil {
		c, err := tabula.CompareKeys(key, hi)
		if err != nil || c > 0 {
			return false, err
		}
	}
	return true, nil
}
