package index

import (
	"sort"

	"github.com/go-sif/tabula"
)

type entry struct {
	key []interface{}
	row int
}

// SortedArray is an Index which keeps (key, row) entries in a sorted slice.
// Lookups and range queries use binary search.
type SortedArray struct {
	base
	entries []entry
}

var _ tabula.Index = (*SortedArray)(nil)

// Engine returns tabula.SortedArrayEngine
func (s *SortedArray) Engine() tabula.IndexEngine {
	return tabula.SortedArrayEngine
}

// Len returns the number of indexed rows, including the missing bucket
func (s *SortedArray) Len() int {
	return len(s.entries) + len(s.missing)
}

// Build discards all entries and indexes every row of src
func (s *SortedArray) Build(src tabula.KeySource) error {
	entries := make([]entry, 0, src.Len())
	var missing []int
	for row := 0; row < src.Len(); row++ {
		key, isMissing, err := src.Key(row)
		if err != nil {
			return err
		}
		if isMissing {
			if s.policy == tabula.MissingBucket {
				missing = append(missing, row)
			}
			continue
		}
		entries = append(entries, entry{key: key, row: row})
	}
	var sortErr error
	sort.SliceStable(entries, func(i, j int) bool {
		c, err := tabula.CompareKeys(entries[i].key, entries[j].key)
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return c < 0
	})
	if sortErr != nil {
		return sortErr
	}
	s.entries = entries
	s.missing = missing
	return nil
}

// search returns the first position whose entry is >= (key, row)
func (s *SortedArray) search(key []interface{}, row int) (int, error) {
	var searchErr error
	i := sort.Search(len(s.entries), func(i int) bool {
		c, err := compareEntry(s.entries[i].key, s.entries[i].row, key, row)
		if err != nil && searchErr == nil {
			searchErr = err
		}
		return c >= 0
	})
	return i, searchErr
}

// Lookup returns the ascending positions of rows whose key equals key.
// Looking up a missing key returns the missing bucket.
func (s *SortedArray) Lookup(key ...interface{}) ([]int, error) {
	if err := s.checkKey(key); err != nil {
		return nil, err
	}
	if isMissingKey(key) {
		return s.LookupMissing(), nil
	}
	i, err := s.search(key, -1)
	if err != nil {
		return nil, err
	}
	rows := []int{}
	for ; i < len(s.entries); i++ {
		c, err := tabula.CompareKeys(s.entries[i].key, key)
		if err != nil {
			return nil, err
		}
		if c != 0 {
			break
		}
		rows = append(rows, s.entries[i].row)
	}
	return rows, nil
}

// Range returns the positions of rows with lo <= key <= hi, ordered by key then position
func (s *SortedArray) Range(lo, hi []interface{}) ([]int, error) {
	start := 0
	if lo != nil {
		var err error
		if start, err = s.search(lo, -1); err != nil {
			return nil, err
		}
	}
	rows := []int{}
	for i := start; i < len(s.entries); i++ {
		ok, err := inRange(s.entries[i].key, nil, hi)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		rows = append(rows, s.entries[i].row)
	}
	return rows, nil
}

// Positions returns all non-missing positions, ordered by key then position
func (s *SortedArray) Positions() []int {
	rows := make([]int, len(s.entries))
	for i, e := range s.entries {
		rows[i] = e.row
	}
	return rows
}

func (s *SortedArray) add(row int, src tabula.KeySource) error {
	key, isMissing, err := src.Key(row)
	if err != nil {
		return err
	}
	if isMissing {
		s.addMissing(row)
		return nil
	}
	i, err := s.search(key, row)
	if err != nil {
		return err
	}
	s.entries = append(s.entries, entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = entry{key: key, row: row}
	return nil
}

func (s *SortedArray) remove(row int) {
	if s.removeMissing(row) {
		return
	}
	for i, e := range s.entries {
		if e.row == row {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// InsertRow shifts positions >= row up by one, then indexes row
func (s *SortedArray) InsertRow(row int, src tabula.KeySource) error {
	for i := range s.entries {
		if s.entries[i].row >= row {
			s.entries[i].row++
		}
	}
	s.shiftMissing(row, 1)
	return s.add(row, src)
}

// DeleteRow forgets row and shifts positions > row down by one
func (s *SortedArray) DeleteRow(row int) {
	s.remove(row)
	for i := range s.entries {
		if s.entries[i].row > row {
			s.entries[i].row--
		}
	}
	s.shiftMissing(row+1, -1)
}

// UpdateRow re-indexes row after its key changed
func (s *SortedArray) UpdateRow(row int, src tabula.KeySource) error {
	s.remove(row)
	return s.add(row, src)
}
