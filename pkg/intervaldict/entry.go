package intervaldict

import (
	"fmt"

	"github.com/henderiw/intervaldict/pkg/interval"
)

// Entry is an interval/value pair.
type Entry[B, V any] interface {
	Interval() interval.Interval[B]
	Value() V
	String() string
}

type entry[B, V any] struct {
	iv    interval.Interval[B]
	value V
}

type Entries[B, V any] []Entry[B, V]

func (r entry[B, V]) Interval() interval.Interval[B] { return r.iv }
func (r entry[B, V]) Value() V                       { return r.value }
func (r entry[B, V]) String() string                 { return fmt.Sprintf("%s: %v", r.iv, r.value) }

func NewEntry[B, V any](iv interval.Interval[B], v V) Entry[B, V] {
	return entry[B, V]{
		iv:    iv,
		value: v,
	}
}
