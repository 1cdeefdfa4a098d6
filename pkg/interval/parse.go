package interval

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseValueFunc converts one endpoint of a textual interval.
type ParseValueFunc[T any] func(s string) (T, error)

// Parse reads an interval in bracket notation, "[1,5]", "(1,5]", "[1,5)" or
// "(1,5)", or the closed hyphen form "1-5".
func Parse[T any](s string, parse ParseValueFunc[T], compare CompareFunc[T]) (Interval[T], error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Interval[T]{}, fmt.Errorf("empty interval")
	}

	lowerKind, upperKind := Inclusive, Inclusive
	var from, to string
	switch s[0] {
	case '[', '(':
		if s[0] == '(' {
			lowerKind = Exclusive
		}
		switch s[len(s)-1] {
		case ']':
		case ')':
			upperKind = Exclusive
		default:
			return Interval[T]{}, fmt.Errorf("no closing bracket in interval %q", s)
		}
		c := strings.IndexByte(s, ',')
		if c == -1 {
			return Interval[T]{}, fmt.Errorf("no comma in interval %q", s)
		}
		from, to = s[1:c], s[c+1:len(s)-1]
	default:
		// skip a leading sign
		h := strings.IndexByte(s[1:], '-')
		if h == -1 {
			return Interval[T]{}, fmt.Errorf("no hyphen in range %q", s)
		}
		from, to = s[:h+1], s[h+2:]
	}

	lower, err := parse(strings.TrimSpace(from))
	if err != nil {
		return Interval[T]{}, errors.Wrapf(err, "invalid lower bound %q in interval %q", from, s)
	}
	upper, err := parse(strings.TrimSpace(to))
	if err != nil {
		return Interval[T]{}, errors.Wrapf(err, "invalid upper bound %q in interval %q", to, s)
	}
	return NewFunc(compare, NewBound(lower, lowerKind), NewBound(upper, upperKind))
}

// ParseInt parses an interval of base 10 integers.
func ParseInt(s string) (Interval[int64], error) {
	return Parse(s, func(v string) (int64, error) {
		return strconv.ParseInt(v, 10, 64)
	}, cmp.Compare[int64])
}

// MustParseInt is like ParseInt but panics on error.
func MustParseInt(s string) Interval[int64] {
	iv, err := ParseInt(s)
	if err != nil {
		panic(err)
	}
	return iv
}
