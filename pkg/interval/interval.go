package interval

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

var (
	// ErrInvalidRange is returned when the upper bound lies below the lower
	// bound, or when a zero-width interval has an exclusive edge.
	ErrInvalidRange = errors.New("invalid range")
	// ErrNoOverlap is returned by set operations on intervals that do not
	// intersect.
	ErrNoOverlap = errors.New("intervals do not overlap")
)

// Interval is a contiguous range between a lower and an upper bound. The
// zero Interval carries no ordering and is reported by IsZero; it contains
// no key and intersects no interval.
type Interval[T any] struct {
	lower   Bound[T]
	upper   Bound[T]
	compare CompareFunc[T]
}

// NewFunc returns the interval between lower and upper ordered by compare.
func NewFunc[T any](compare CompareFunc[T], lower, upper Bound[T]) (Interval[T], error) {
	if compare == nil {
		return Interval[T]{}, errors.Wrap(ErrInvalidRange, "no compare function")
	}
	c := compare(upper.value, lower.value)
	if c < 0 {
		return Interval[T]{}, errors.Wrapf(ErrInvalidRange, "upper bound %v is less than lower bound %v", upper.value, lower.value)
	}
	if c == 0 && (lower.kind == Exclusive || upper.kind == Exclusive) {
		return Interval[T]{}, errors.Wrapf(ErrInvalidRange, "upper bound equals lower bound %v and one of the bounds is exclusive", lower.value)
	}
	return Interval[T]{lower: lower, upper: upper, compare: compare}, nil
}

// ClosedFunc returns [lower,upper] ordered by compare.
func ClosedFunc[T any](compare CompareFunc[T], lower, upper T) (Interval[T], error) {
	return NewFunc(compare, InclusiveBound(lower), InclusiveBound(upper))
}

// New returns the interval between lower and upper using the natural
// ordering of T.
func New[T constraints.Ordered](lower T, lowerKind Kind, upper T, upperKind Kind) (Interval[T], error) {
	return NewFunc(cmp.Compare[T], NewBound(lower, lowerKind), NewBound(upper, upperKind))
}

// Closed returns [lower,upper] using the natural ordering of T.
func Closed[T constraints.Ordered](lower, upper T) (Interval[T], error) {
	return ClosedFunc(cmp.Compare[T], lower, upper)
}

// Point returns the single point interval [v,v].
func Point[T constraints.Ordered](v T) Interval[T] {
	return Interval[T]{lower: InclusiveBound(v), upper: InclusiveBound(v), compare: cmp.Compare[T]}
}

func (r Interval[T]) Lower() Bound[T] { return r.lower }
func (r Interval[T]) Upper() Bound[T] { return r.upper }

// CompareFunc returns the ordering the interval was built with.
func (r Interval[T]) CompareFunc() CompareFunc[T] { return r.compare }

func (r Interval[T]) IsZero() bool { return r.compare == nil }

func (r Interval[T]) String() string {
	if r.IsZero() {
		return "<nil>"
	}
	var sb strings.Builder
	if r.lower.kind == Exclusive {
		sb.WriteByte('(')
	} else {
		sb.WriteByte('[')
	}
	fmt.Fprintf(&sb, "%v,%v", r.lower.value, r.upper.value)
	if r.upper.kind == Exclusive {
		sb.WriteByte(')')
	} else {
		sb.WriteByte(']')
	}
	return sb.String()
}

// Contains reports whether key lies inside the interval.
func (r Interval[T]) Contains(key T) bool {
	if r.IsZero() {
		return false
	}
	lo := r.compare(r.lower.value, key)
	hi := r.compare(key, r.upper.value)

	switch r.lower.kind {
	case Inclusive:
		switch r.upper.kind {
		case Inclusive:
			return lo <= 0 && hi <= 0
		case Exclusive:
			return lo <= 0 && hi < 0
		}
	case Exclusive:
		switch r.upper.kind {
		case Inclusive:
			return lo < 0 && hi <= 0
		case Exclusive:
			return lo < 0 && hi < 0
		}
	}
	return false
}

// ContainsBound reports whether the bound probe lands in the interval, see
// CompareBound.
func (r Interval[T]) ContainsBound(b Bound[T]) bool {
	return r.CompareBound(b) == 0
}

// CompareKey locates key relative to the interval: -1 below, 1 above and 0
// inside. A key on an exclusive lower edge resolves to -1, a key on an
// exclusive upper edge to 1. The zero Interval reports -1 for every key.
func (r Interval[T]) CompareKey(key T) int {
	if r.IsZero() {
		return -1
	}
	lres := r.compare(key, r.lower.value)
	ures := r.compare(key, r.upper.value)

	switch {
	case lres < 0:
		return -1
	case ures > 0:
		return 1
	case lres == 0 && r.lower.kind == Exclusive:
		return -1
	case ures == 0 && r.upper.kind == Exclusive:
		return 1
	default:
		return 0
	}
}

// CompareBound locates the bound relative to the interval like CompareKey,
// except that an exclusive probe anywhere within [lower,upper], edges
// included, is treated as overlapping and returns 0.
func (r Interval[T]) CompareBound(b Bound[T]) int {
	if r.IsZero() {
		return -1
	}
	lres := r.compare(b.value, r.lower.value)
	ures := r.compare(b.value, r.upper.value)

	switch {
	case lres < 0:
		return -1
	case ures > 0:
		return 1
	case b.kind == Exclusive:
		return 0
	case lres == 0 && r.lower.kind == Exclusive:
		return -1
	case ures == 0 && r.upper.kind == Exclusive:
		return 1
	default:
		return 0
	}
}

// Compare orders intervals by their lower bound. On equal lower values an
// exclusive lower bound sorts before an inclusive one. The zero Interval
// sorts first.
func (r Interval[T]) Compare(other Interval[T]) int {
	switch {
	case r.IsZero() && other.IsZero():
		return 0
	case r.IsZero():
		return -1
	case other.IsZero():
		return 1
	}
	if c := r.compare(r.lower.value, other.lower.value); c != 0 {
		if c < 0 {
			return -1
		}
		return 1
	}
	switch {
	case r.lower.kind == Exclusive && other.lower.kind == Inclusive:
		return -1
	case r.lower.kind == Inclusive && other.lower.kind == Exclusive:
		return 1
	default:
		return 0
	}
}

func (r Interval[T]) Less(other Interval[T]) bool { return r.Compare(other) < 0 }

// Equal reports whether both intervals have the same bounds.
func (r Interval[T]) Equal(other Interval[T]) bool {
	if r.IsZero() || other.IsZero() {
		return r.IsZero() && other.IsZero()
	}
	return r.lower.Equal(r.compare, other.lower) && r.upper.Equal(r.compare, other.upper)
}
