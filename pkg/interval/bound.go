package interval

import (
	"cmp"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Kind tells whether a bound value belongs to the interval.
type Kind int

const (
	Inclusive Kind = iota
	Exclusive
)

func (k Kind) String() string {
	switch k {
	case Inclusive:
		return "inclusive"
	case Exclusive:
		return "exclusive"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// CompareFunc returns a negative number when a < b, zero when a == b and a
// positive number when a > b.
type CompareFunc[T any] func(a, b T) int

// OrderedCompare returns the natural ordering for ordered types.
func OrderedCompare[T constraints.Ordered]() CompareFunc[T] {
	return cmp.Compare[T]
}

// Bound is an interval endpoint.
type Bound[T any] struct {
	value T
	kind  Kind
}

func NewBound[T any](value T, kind Kind) Bound[T] {
	return Bound[T]{value: value, kind: kind}
}

// InclusiveBound returns a closed endpoint at v.
func InclusiveBound[T any](v T) Bound[T] { return Bound[T]{value: v, kind: Inclusive} }

// ExclusiveBound returns an open endpoint at v.
func ExclusiveBound[T any](v T) Bound[T] { return Bound[T]{value: v, kind: Exclusive} }

func (b Bound[T]) Value() T          { return b.value }
func (b Bound[T]) Kind() Kind        { return b.kind }
func (b Bound[T]) IsInclusive() bool { return b.kind == Inclusive }

func (b Bound[T]) String() string {
	return fmt.Sprintf("%v(%s)", b.value, b.kind)
}

// Equal reports whether both bounds have the same value and kind.
func (b Bound[T]) Equal(compare CompareFunc[T], other Bound[T]) bool {
	return b.kind == other.kind && compare(b.value, other.value) == 0
}

// flip returns the bound at the same value with the opposite kind.
func (b Bound[T]) flip() Bound[T] {
	if b.kind == Inclusive {
		return Bound[T]{value: b.value, kind: Exclusive}
	}
	return Bound[T]{value: b.value, kind: Inclusive}
}

// MaxFunc returns the bound with the greater value. When the values are equal
// the inclusive bound wins, whatever side it is passed on.
func MaxFunc[T any](compare CompareFunc[T], a, b Bound[T]) Bound[T] {
	switch c := compare(a.value, b.value); {
	case c < 0:
		return b
	case c > 0:
		return a
	case a.kind == Exclusive:
		return b
	default:
		return a
	}
}

// MinFunc returns the bound with the smaller value. When the values are equal
// the inclusive bound wins, whatever side it is passed on.
func MinFunc[T any](compare CompareFunc[T], a, b Bound[T]) Bound[T] {
	switch c := compare(a.value, b.value); {
	case c < 0:
		return a
	case c > 0:
		return b
	case a.kind == Exclusive:
		return b
	default:
		return a
	}
}

// Max is MaxFunc using the natural ordering of T.
func Max[T constraints.Ordered](a, b Bound[T]) Bound[T] {
	return MaxFunc(cmp.Compare[T], a, b)
}

// Min is MinFunc using the natural ordering of T.
func Min[T constraints.Ordered](a, b Bound[T]) Bound[T] {
	return MinFunc(cmp.Compare[T], a, b)
}

// compareLower orders two bounds used as lower edges: on equal values the
// inclusive edge starts first.
func compareLower[T any](compare CompareFunc[T], a, b Bound[T]) int {
	if c := compare(a.value, b.value); c != 0 {
		return c
	}
	switch {
	case a.kind == b.kind:
		return 0
	case a.kind == Inclusive:
		return -1
	default:
		return 1
	}
}

// compareUpper orders two bounds used as upper edges: on equal values the
// exclusive edge ends first.
func compareUpper[T any](compare CompareFunc[T], a, b Bound[T]) int {
	if c := compare(a.value, b.value); c != 0 {
		return c
	}
	switch {
	case a.kind == b.kind:
		return 0
	case a.kind == Exclusive:
		return -1
	default:
		return 1
	}
}
