package intervaldict

import (
	"github.com/henderiw/intervaldict/pkg/interval"
	"github.com/henderiw/intervaldict/pkg/tree"
	"github.com/pkg/errors"
)

var (
	// ErrNullArgument is returned when a required interval or key is absent.
	ErrNullArgument = errors.New("argument is nil")
	// ErrOverlapConflict is returned when an added interval intersects an
	// existing entry. The dictionary is left unchanged.
	ErrOverlapConflict = tree.ErrOverlap
	// ErrNotFound is returned when no entry matches the interval or key.
	ErrNotFound = tree.ErrNotFound
	// ErrInvalidRange is returned for an upper bound below the lower bound or
	// a zero-width interval with an exclusive edge.
	ErrInvalidRange = interval.ErrInvalidRange
	// ErrNoOverlap is returned by interval set operations on intervals that
	// do not intersect.
	ErrNoOverlap = interval.ErrNoOverlap
)
