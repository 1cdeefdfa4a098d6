package rangetable

import (
	"github.com/henderiw/intervaldict/pkg/tree"
	"k8s.io/apimachinery/pkg/labels"
)

type Iterator[B any] struct {
	iter *tree.Iterator[B, labels.Set]
}

func (r *Iterator[B]) Next() bool {
	return r.iter.Next()
}

func (r *Iterator[B]) Entry() Entry[B] {
	return NewEntry(r.iter.Interval(), r.iter.Value())
}
