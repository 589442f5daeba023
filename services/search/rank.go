package search

import (
	"cmp"
	"slices"
)

// Rank orders results by price in place. "high" sorts descending,
// anything else ascending. The sort is stable so listings with equal
// prices keep the engine's original ordering as a tiebreak.
func Rank(results []Result, direction string) {
	if direction == "high" {
		slices.SortStableFunc(results, func(a, b Result) int {
			return cmp.Compare(b.PriceValue, a.PriceValue)
		})
		return
	}
	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(a.PriceValue, b.PriceValue)
	})
}
