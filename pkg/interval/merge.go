package interval

import (
	"slices"
)

// adjacent reports whether a ends exactly where b starts with at least one
// of the touching edges closed, so that their union has no gap.
func adjacent[T any](a, b Interval[T]) bool {
	return a.compare(a.upper.value, b.lower.value) == 0 &&
		(a.upper.kind == Inclusive || b.lower.kind == Inclusive)
}

// Merge returns the minimal sorted set of intervals covering rr. Zero
// intervals are dropped and the input slice is not modified.
func Merge[T any](rr []Interval[T]) []Interval[T] {
	rr = slices.DeleteFunc(slices.Clone(rr), Interval[T].IsZero)
	switch len(rr) {
	case 0:
		return nil
	case 1:
		return []Interval[T]{rr[0]}
	}

	sorted := rr
	slices.SortFunc(sorted, func(a, b Interval[T]) int {
		return compareLower(a.compare, a.lower, b.lower)
	})

	out := make([]Interval[T], 1, len(sorted))
	out[0] = sorted[0]
	for _, r := range sorted[1:] {
		prev := &out[len(out)-1]
		switch {
		case prev.EntirelyBefore(r) && !adjacent(*prev, r):
			// No overlap and not adjacent, no merging possible.
			//
			//   prev       r
			// f------t  f-----t
			out = append(out, r)
		case compareUpper(prev.compare, prev.upper, r.upper) < 0:
			// Partial overlap or touching edges, extend prev.
			//
			//   prev
			// f------t
			//     f-----t
			//        r
			prev.upper = r.upper
		default:
			// r entirely contained in prev, nothing to do.
			//
			//    prev
			// f--------t
			//  f-----t
			//     r
		}
	}
	return out
}
