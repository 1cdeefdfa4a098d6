package rangetable

import (
	"fmt"

	"github.com/henderiw/intervaldict/pkg/interval"
	"k8s.io/apimachinery/pkg/labels"
)

type Entry[B any] interface {
	Interval() interval.Interval[B]
	Labels() labels.Set
	String() string
	Equal(e2 Entry[B]) bool
}

type entry[B any] struct {
	iv     interval.Interval[B]
	labels labels.Set
}
type Entries[B any] []Entry[B]

func (r entry[B]) Interval() interval.Interval[B] { return r.iv }
func (r entry[B]) Labels() labels.Set             { return r.labels }
func (r entry[B]) String() string {
	return fmt.Sprintf("range: %s, labels: %s", r.iv, r.labels.String())
}
func (r entry[B]) Equal(e2 Entry[B]) bool {
	return r.iv.Equal(e2.Interval()) &&
		r.labels.String() == e2.Labels().String()
}

func NewEntry[B any](iv interval.Interval[B], labels labels.Set) Entry[B] {
	return entry[B]{
		iv:     iv,
		labels: labels,
	}
}
