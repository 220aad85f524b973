package sortutil

import "sort"

// SortedKeys returns the keys of m sorted lexicographically (byte-wise).
// The input map is not modified.
func SortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
