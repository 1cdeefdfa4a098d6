package interval

import (
	"github.com/pkg/errors"
)

// Intersects reports whether either interval contains the lower bound of the
// other.
func (r Interval[T]) Intersects(other Interval[T]) bool {
	if r.IsZero() || other.IsZero() {
		return false
	}
	return r.ContainsBound(other.lower) || other.ContainsBound(r.lower)
}

// IsSubsetOf reports whether other contains both bounds of r.
func (r Interval[T]) IsSubsetOf(other Interval[T]) bool {
	if r.IsZero() || other.IsZero() {
		return false
	}
	return other.ContainsBound(r.lower) && other.ContainsBound(r.upper)
}

// IsSupersetOf reports whether r contains both bounds of other.
func (r Interval[T]) IsSupersetOf(other Interval[T]) bool {
	if r.IsZero() || other.IsZero() {
		return false
	}
	return r.ContainsBound(other.lower) && r.ContainsBound(other.upper)
}

// EntirelyBefore reports whether r ends before other starts, without a
// shared point.
func (r Interval[T]) EntirelyBefore(other Interval[T]) bool {
	if r.IsZero() || other.IsZero() {
		return false
	}
	c := r.compare(r.upper.value, other.lower.value)
	return c < 0 || (c == 0 && (r.upper.kind == Exclusive || other.lower.kind == Exclusive))
}

// Intersect returns the region both intervals share.
func (r Interval[T]) Intersect(other Interval[T]) (Interval[T], error) {
	if !r.Intersects(other) {
		return Interval[T]{}, errors.Wrapf(ErrNoOverlap, "intersect %s and %s", r, other)
	}
	iv, err := NewFunc(r.compare,
		MaxFunc(r.compare, r.lower, other.lower),
		MinFunc(r.compare, r.upper, other.upper),
	)
	if err != nil {
		// only the exclusive edges touch
		return Interval[T]{}, errors.Wrapf(ErrNoOverlap, "intersect %s and %s", r, other)
	}
	return iv, nil
}

// Union returns the interval spanning both intervals.
func (r Interval[T]) Union(other Interval[T]) (Interval[T], error) {
	if !r.Intersects(other) {
		return Interval[T]{}, errors.Wrapf(ErrNoOverlap, "union %s and %s", r, other)
	}
	return NewFunc(r.compare,
		MinFunc(r.compare, r.lower, other.lower),
		MaxFunc(r.compare, r.upper, other.upper),
	)
}

// Subtract returns the parts of r that are not covered by other, in
// ascending order. The result holds zero, one or two intervals; a disjoint
// or zero other leaves r untouched.
func (r Interval[T]) Subtract(other Interval[T]) []Interval[T] {
	if r.IsZero() {
		return nil
	}
	if other.IsZero() {
		return []Interval[T]{r}
	}
	var out []Interval[T]

	// part of r below other
	upper := other.lower.flip()
	if compareUpper(r.compare, r.upper, upper) < 0 {
		upper = r.upper
	}
	if iv, err := NewFunc(r.compare, r.lower, upper); err == nil {
		out = append(out, iv)
	}

	// part of r above other
	lower := other.upper.flip()
	if compareLower(r.compare, r.lower, lower) > 0 {
		lower = r.lower
	}
	if iv, err := NewFunc(r.compare, lower, r.upper); err == nil {
		out = append(out, iv)
	}
	return out
}

// Canonical returns the closed interval holding the same points of a
// discrete domain, where next and prev step to the neighbouring values. It
// fails with ErrInvalidRange when r holds no point, as (5,6) over integers.
func (r Interval[T]) Canonical(prev, next func(T) T) (Interval[T], error) {
	lower, upper := r.lower, r.upper
	if lower.kind == Exclusive {
		lower = InclusiveBound(next(lower.value))
	}
	if upper.kind == Exclusive {
		upper = InclusiveBound(prev(upper.value))
	}
	return NewFunc(r.compare, lower, upper)
}
