package util

import "sort"

// NormalizeRows sorts and de-duplicates a list of row positions, returning a fresh slice
func NormalizeRows(rows []int) []int {
	out := make([]int, len(rows))
	copy(out, rows)
	sort.Ints(out)
	j := 0
	for i, r := range out {
		if i == 0 || r != out[j-1] {
			out[j] = r
			j++
		}
	}
	return out[:j]
}

// DeleteRows removes the given sorted, unique positions from s, in place
func DeleteRows[T any](s []T, rows []int) []T {
	if len(rows) == 0 {
		return s
	}
	out := s[:0]
	next := 0
	for i, v := range s {
		if next < len(rows) && rows[next] == i {
			next++
			continue
		}
		out = append(out, v)
	}
	// clear the tail so dropped values can be collected
	var zero T
	for i := len(out); i < len(s); i++ {
		s[i] = zero
	}
	return out
}

// InsertAt returns s with v inserted at position i
func InsertAt[T any](s []T, i int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// TakeRows copies the given positions of s into a new slice. Negative positions
// produce fill, and are reported through the returned mask (nil when none).
func TakeRows[T any](s []T, rows []int, fill T) ([]T, []bool) {
	out := make([]T, len(rows))
	var mask []bool
	for i, r := range rows {
		if r < 0 {
			if mask == nil {
				mask = make([]bool, len(rows))
			}
			mask[i] = true
			out[i] = fill
			continue
		}
		out[i] = s[r]
	}
	return out, mask
}

// TakeMask copies the given positions of a (possibly nil) mask, masking negative positions.
// Returns nil when no position is masked.
func TakeMask(mask []bool, rows []int) []bool {
	var out []bool
	for i, r := range rows {
		if r < 0 || (mask != nil && mask[r]) {
			if out == nil {
				out = make([]bool, len(rows))
			}
			out[i] = true
		}
	}
	return out
}
