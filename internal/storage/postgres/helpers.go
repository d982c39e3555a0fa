package postgres

import (
	"sort"

	"gallery-backend/pkg/ordering"
)

// sortByPosition orders rows by their decimal position key with creation
// time as the tie-breaker. Sorting happens here rather than in SQL so that a
// key that fails to parse degrades to the ordering engine's lexical fallback
// instead of failing the whole query on a bad cast.
func sortByPosition[T any](items []T, keyOf func(T) (string, int64)) {
	sort.SliceStable(items, func(i, j int) bool {
		keyI, createdI := keyOf(items[i])
		keyJ, createdJ := keyOf(items[j])
		if cmp := ordering.Compare(keyI, keyJ); cmp != 0 {
			return cmp < 0
		}
		return createdI < createdJ
	})
}
