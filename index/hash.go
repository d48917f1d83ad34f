package index

import (
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/go-sif/tabula"
)

// Hash is an Index which buckets rows by the xxhash of their encoded key.
// Exact lookups are constant time; range queries scan every row.
type Hash struct {
	base
	keys    [][]interface{} // by row; nil for missing rows
	buckets map[uint64][]int
}

var _ tabula.Index = (*Hash)(nil)

// Engine returns tabula.HashEngine
func (h *Hash) Engine() tabula.IndexEngine {
	return tabula.HashEngine
}

// Len returns the number of indexed rows, including the missing bucket
func (h *Hash) Len() int {
	n := 0
	for _, rows := range h.buckets {
		n += len(rows)
	}
	return n + len(h.missing)
}

// HashKey hashes a key tuple. Keys which compare as equal hash identically.
func HashKey(key []interface{}) (uint64, error) {
	buf, err := tabula.EncodeKey(key)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(buf), nil
}

// Build discards all entries and indexes every row of src
func (h *Hash) Build(src tabula.KeySource) error {
	h.keys = make([][]interface{}, src.Len())
	h.buckets = make(map[uint64][]int)
	h.missing = nil
	for row := 0; row < src.Len(); row++ {
		if err := h.add(row, src); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hash) add(row int, src tabula.KeySource) error {
	key, isMissing, err := src.Key(row)
	if err != nil {
		return err
	}
	if isMissing {
		h.keys[row] = nil
		h.addMissing(row)
		return nil
	}
	hash, err := HashKey(key)
	if err != nil {
		return err
	}
	h.keys[row] = key
	rows := h.buckets[hash]
	i := sort.SearchInts(rows, row)
	rows = append(rows, 0)
	copy(rows[i+1:], rows[i:])
	rows[i] = row
	h.buckets[hash] = rows
	return nil
}

func (h *Hash) remove(row int) {
	if h.removeMissing(row) {
		return
	}
	key := h.keys[row]
	if key == nil {
		return
	}
	h.keys[row] = nil
	hash, err := HashKey(key)
	if err != nil {
		return
	}
	rows := h.buckets[hash]
	i := sort.SearchInts(rows, row)
	if i < len(rows) && rows[i] == row {
		rows = append(rows[:i], rows[i+1:]...)
	}
	if len(rows) == 0 {
		delete(h.buckets, hash)
	} else {
		h.buckets[hash] = rows
	}
}

// Lookup returns the ascending positions of rows whose key equals key.
// Looking up a missing key returns the missing bucket.
func (h *Hash) Lookup(key ...interface{}) ([]int, error) {
	if err := h.checkKey(key); err != nil {
		return nil, err
	}
	if isMissingKey(key) {
		return h.LookupMissing(), nil
	}
	hash, err := HashKey(key)
	if err != nil {
		return nil, err
	}
	rows := []int{}
	for _, row := range h.buckets[hash] {
		// guard against hash collisions
		c, err := tabula.CompareKeys(h.keys[row], key)
		if err != nil {
			return nil, err
		}
		if c == 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// Range returns the positions of rows with lo <= key <= hi, ordered by key then position
func (h *Hash) Range(lo, hi []interface{}) ([]int, error) {
	rows := []int{}
	for row, key := range h.keys {
		if key == nil {
			continue
		}
		ok, err := inRange(key, lo, hi)
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, row)
		}
	}
	return rows, h.sortRows(rows)
}

// Positions returns all non-missing positions, ordered by key then position
func (h *Hash) Positions() []int {
	rows, _ := h.Range(nil, nil)
	return rows
}

func (h *Hash) sortRows(rows []int) error {
	var sortErr error
	sort.SliceStable(rows, func(i, j int) bool {
		c, err := compareEntry(h.keys[rows[i]], rows[i], h.keys[rows[j]], rows[j])
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return c < 0
	})
	return sortErr
}

// InsertRow shifts positions >= row up by one, then indexes row
func (h *Hash) InsertRow(row int, src tabula.KeySource) error {
	for _, rows := range h.buckets {
		for i, r := range rows {
			if r >= row {
				rows[i] = r + 1
			}
		}
	}
	h.shiftMissing(row, 1)
	h.keys = append(h.keys, nil)
	copy(h.keys[row+1:], h.keys[row:])
	h.keys[row] = nil
	return h.add(row, src)
}

// DeleteRow forgets row and shifts positions > row down by one
func (h *Hash) DeleteRow(row int) {
	h.remove(row)
	for _, rows := range h.buckets {
		for i, r := range rows {
			if r > row {
				rows[i] = r - 1
			}
		}
	}
	h.shiftMissing(row+1, -1)
	h.keys = append(h.keys[:row], h.keys[row+1:]...)
}

// UpdateRow re-indexes row after its key changed
func (h *Hash) UpdateRow(row int, src tabula.KeySource) error {
	h.remove(row)
	return h.add(row, src)
}
