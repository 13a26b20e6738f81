// Package sitemap enumerates the comparison-page URL space — every
// unordered ticker pair crossed with every period — and serves it as
// paginated sitemap XML. The full cross-product is never materialized:
// any page is computed directly from its index range.
package sitemap

import "math"

// PairCount returns the number of unordered pairs over n tickers.
func PairCount(n int) int64 {
	if n < 2 {
		return 0
	}
	return int64(n) * int64(n-1) / 2
}

// rowStart returns the flat index of pair (i, i+1), the first pair in
// row i of the upper-triangular enumeration.
func rowStart(n int, i int64) int64 {
	return i * (2*int64(n) - i - 1) / 2
}

// PairAt inverts the triangular numbering: it returns the pair (i, j),
// i < j, at position k in the row-major enumeration of all unordered
// pairs over n tickers. Runs in O(1): the row is recovered from the
// quadratic formula rather than walked.
//
// The floating-point square root is only a candidate; the row is
// verified against exact integer bounds and nudged if the root landed
// on the wrong side of a triangular boundary.
func PairAt(n int, k int64) (int, int) {
	t := 2*int64(n) - 1
	disc := float64(t*t) - 8*float64(k)
	i := int64(math.Floor((float64(t) - math.Sqrt(disc)) / 2))

	// Clamp and correct the candidate row
	if i < 0 {
		i = 0
	}
	if i > int64(n)-2 {
		i = int64(n) - 2
	}
	for i > 0 && k < rowStart(n, i) {
		i--
	}
	for i < int64(n)-2 && k >= rowStart(n, i+1) {
		i++
	}

	j := k - rowStart(n, i) + i + 1
	return int(i), int(j)
}
