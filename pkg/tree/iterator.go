package tree

import (
	"iter"

	"github.com/henderiw/intervaldict/pkg/interval"
)

// Iterator is a stateful in-order iterator over a tree. It is important for
// the tree to not be modified while using the iterator.
type Iterator[B, V any] struct {
	t           *Tree[B, V]
	nodeIndex   uint
	nodeHistory []uint // nodes whose left subtree is being visited
}

// Iterate returns an iterator positioned before the lowest interval.
func (r *Tree[B, V]) Iterate() *Iterator[B, V] {
	iter := &Iterator[B, V]{
		t:           r,
		nodeHistory: []uint{},
	}
	iter.pushLeft(r.root)
	return iter
}

func (iter *Iterator[B, V]) pushLeft(nodeIndex uint) {
	for nodeIndex != 0 {
		iter.nodeHistory = append(iter.nodeHistory, nodeIndex)
		nodeIndex = iter.t.nodes[nodeIndex].Left
	}
}

// Next jumps to the next element of a tree. It returns false if there
// is none.
func (iter *Iterator[B, V]) Next() bool {
	nodeHistoryLen := len(iter.nodeHistory)
	if nodeHistoryLen == 0 {
		iter.nodeIndex = 0
		return false
	}
	iter.nodeIndex = iter.nodeHistory[nodeHistoryLen-1]
	iter.nodeHistory = iter.nodeHistory[:nodeHistoryLen-1]
	iter.pushLeft(iter.t.nodes[iter.nodeIndex].Right)
	return true
}

// Interval returns the interval at the current position.
func (iter *Iterator[B, V]) Interval() interval.Interval[B] {
	return iter.t.nodes[iter.nodeIndex].Interval
}

// Value returns the value at the current position.
func (iter *Iterator[B, V]) Value() V {
	return iter.t.nodes[iter.nodeIndex].Value
}

// All returns an iterator over all interval/value pairs in ascending
// interval order. Every call starts a fresh sequence.
func (r *Tree[B, V]) All() iter.Seq2[interval.Interval[B], V] {
	return func(yield func(interval.Interval[B], V) bool) {
		it := r.Iterate()
		for it.Next() {
			if !yield(it.Interval(), it.Value()) {
				return
			}
		}
	}
}

// Intervals returns the stored intervals in ascending order.
func (r *Tree[B, V]) Intervals() []interval.Interval[B] {
	ret := make([]interval.Interval[B], 0, r.Len())
	for iv := range r.All() {
		ret = append(ret, iv)
	}
	return ret
}

// Values returns the stored values in ascending interval order.
func (r *Tree[B, V]) Values() []V {
	ret := make([]V, 0, r.Len())
	for _, v := range r.All() {
		ret = append(ret, v)
	}
	return ret
}

// Overlapping returns an iterator over the stored intervals that intersect
// iv, in ascending order. Subtrees that cannot hold a match are skipped.
func (r *Tree[B, V]) Overlapping(iv interval.Interval[B]) iter.Seq2[interval.Interval[B], V] {
	return func(yield func(interval.Interval[B], V) bool) {
		if iv.IsZero() {
			return
		}
		r.eachOverlapping(r.root, iv, yield)
	}
}

func (r *Tree[B, V]) eachOverlapping(nodeIndex uint, iv interval.Interval[B], yield func(interval.Interval[B], V) bool) bool {
	if nodeIndex == 0 {
		return true
	}
	compare := iv.CompareFunc()
	node := &r.nodes[nodeIndex]

	// everything on the left ends before node starts
	if compare(iv.Lower().Value(), node.Interval.Upper().Value()) <= 0 {
		if !r.eachOverlapping(node.Left, iv, yield) {
			return false
		}
	}
	if node.Interval.Intersects(iv) {
		if !yield(node.Interval, node.Value) {
			return false
		}
	}
	// everything on the right starts after node starts
	if compare(iv.Upper().Value(), node.Interval.Lower().Value()) >= 0 {
		return r.eachOverlapping(node.Right, iv, yield)
	}
	return true
}
