// The sliceutils package collects small helpers for working with sorted slices.
package sliceutils

import (
	"cmp"
	"slices"
)

// Unique() returns a sorted copy of the slice with duplicates removed.
func Unique[E cmp.Ordered](s []E) []E {
	unique := make([]E, len(s))
	copy(unique, s)

	slices.Sort(unique)
	return slices.Compact(unique)
}

/*
Difference() returns the elements of slice1 that are not in slice2; in set notation:

- difference = slice1 - slice2

Both slices are sorted in place. Time complexity is O(n*logn + m*logm), which is
faster than converting to sets for sizes smaller than ~10^6.
*/
func Difference[E cmp.Ordered](slice1, slice2 []E) []E {
	slices.Sort(slice1)
	slices.Sort(slice2)
	difference := []E{}

	i, j := 0, 0
	for i < len(slice1) && j < len(slice2) {
		switch {
		case slice1[i] < slice2[j]:
			// the element is in slice1 but not in slice2
			difference = append(difference, slice1[i])
			i++

		case slice1[i] > slice2[j]:
			j++

		default:
			i++
			j++
		}
	}

	// add all elements not traversed
	difference = append(difference, slice1[i:]...)
	return difference
}
