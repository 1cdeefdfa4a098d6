// Package tree implements an AVL tree of non-overlapping intervals. Nodes
// live in an arena and reference each other by index; every node keeps the
// size and height of its subtree.
package tree

import (
	"github.com/henderiw/intervaldict/pkg/interval"
	"github.com/pkg/errors"
)

var (
	// ErrOverlap is returned when an inserted interval intersects a stored one.
	ErrOverlap = errors.New("interval overlaps an existing interval")
	// ErrNotFound is returned when no stored interval matches.
	ErrNotFound = errors.New("interval not found")
)

// Tree is not safe for concurrent use. The zero value is an empty tree.
type Tree[B, V any] struct {
	nodes            []treeNode[B, V] // [0] is unused and stands for "no node"
	availableIndexes []uint           // a place to store node indexes that we deleted, and are available
	root             uint
}

func NewTree[B, V any]() *Tree[B, V] {
	return &Tree[B, V]{
		nodes:            make([]treeNode[B, V], 1),
		availableIndexes: make([]uint, 0),
	}
}

// Clone creates an identical copy of the tree
// - Note: the values in the tree are not deep copied
func (r *Tree[B, V]) Clone() *Tree[B, V] {
	ret := &Tree[B, V]{
		nodes:            make([]treeNode[B, V], len(r.nodes), cap(r.nodes)),
		availableIndexes: make([]uint, len(r.availableIndexes), cap(r.availableIndexes)),
		root:             r.root,
	}
	copy(ret.nodes, r.nodes)
	copy(ret.availableIndexes, r.availableIndexes)
	return ret
}

// Len returns the number of stored intervals.
func (r *Tree[B, V]) Len() int { return r.count(r.root) }

// Height returns the height of the root, -1 for an empty tree.
func (r *Tree[B, V]) Height() int { return r.height(r.root) }

// Clear removes all intervals.
func (r *Tree[B, V]) Clear() {
	r.nodes = make([]treeNode[B, V], 1)
	r.availableIndexes = r.availableIndexes[:0]
	r.root = 0
}

// Insert adds iv with value v. It fails with ErrOverlap, leaving the tree
// untouched, when iv intersects a stored interval.
func (r *Tree[B, V]) Insert(iv interval.Interval[B], v V) error {
	if iv.IsZero() {
		return errors.Wrap(interval.ErrInvalidRange, "zero interval")
	}
	if r.root == 0 {
		r.root = r.newNode(iv, v, 0)
		return nil
	}

	nodeIndex := r.root
	for {
		node := &r.nodes[nodeIndex]
		if node.Interval.Intersects(iv) {
			return errors.Wrapf(ErrOverlap, "%s intersects %s", iv, node.Interval)
		}
		if iv.Compare(node.Interval) < 0 {
			if node.Left == 0 {
				// newNode may grow the arena, node is stale afterwards
				newNodeIndex := r.newNode(iv, v, nodeIndex)
				r.nodes[nodeIndex].Left = newNodeIndex
				break
			}
			nodeIndex = node.Left
			continue
		}
		if node.Right == 0 {
			newNodeIndex := r.newNode(iv, v, nodeIndex)
			r.nodes[nodeIndex].Right = newNodeIndex
			break
		}
		nodeIndex = node.Right
	}
	r.retrace(nodeIndex)
	return nil
}

// find returns the index of the node holding exactly iv, 0 if none.
func (r *Tree[B, V]) find(iv interval.Interval[B]) uint {
	if iv.IsZero() {
		return 0
	}
	nodeIndex := r.root
	for nodeIndex != 0 {
		node := &r.nodes[nodeIndex]
		if node.Interval.Equal(iv) {
			return nodeIndex
		}
		if iv.Compare(node.Interval) < 0 {
			nodeIndex = node.Left
		} else {
			nodeIndex = node.Right
		}
	}
	return 0
}

// findKey returns the index of the node whose interval contains key, 0 if
// none.
func (r *Tree[B, V]) findKey(key B) uint {
	nodeIndex := r.root
	for nodeIndex != 0 {
		node := &r.nodes[nodeIndex]
		switch c := node.Interval.CompareKey(key); {
		case c == 0:
			return nodeIndex
		case c < 0:
			nodeIndex = node.Left
		default:
			nodeIndex = node.Right
		}
	}
	return 0
}

// Get returns the value stored for exactly iv.
func (r *Tree[B, V]) Get(iv interval.Interval[B]) (V, bool) {
	var v V
	i := r.find(iv)
	if i == 0 {
		return v, false
	}
	return r.nodes[i].Value, true
}

// Lookup returns the stored interval containing key and its value.
func (r *Tree[B, V]) Lookup(key B) (interval.Interval[B], V, bool) {
	var v V
	i := r.findKey(key)
	if i == 0 {
		return interval.Interval[B]{}, v, false
	}
	return r.nodes[i].Interval, r.nodes[i].Value, true
}

// Has reports whether exactly iv is stored.
func (r *Tree[B, V]) Has(iv interval.Interval[B]) bool { return r.find(iv) != 0 }

// HasKey reports whether a stored interval contains key.
func (r *Tree[B, V]) HasKey(key B) bool { return r.findKey(key) != 0 }

// SetValue replaces the value stored for exactly iv.
func (r *Tree[B, V]) SetValue(iv interval.Interval[B], v V) error {
	i := r.find(iv)
	if i == 0 {
		return errors.Wrapf(ErrNotFound, "interval %s", iv)
	}
	r.nodes[i].Value = v
	return nil
}

// SetKeyValue replaces the value of the stored interval containing key.
func (r *Tree[B, V]) SetKeyValue(key B, v V) error {
	i := r.findKey(key)
	if i == 0 {
		return errors.Wrapf(ErrNotFound, "key %v", key)
	}
	r.nodes[i].Value = v
	return nil
}

// Delete removes exactly iv, returning whether it was stored.
func (r *Tree[B, V]) Delete(iv interval.Interval[B]) bool {
	i := r.find(iv)
	if i == 0 {
		return false
	}
	r.deleteNode(i)
	return true
}

// DeleteKey removes the stored interval containing key, returning whether
// there was one.
func (r *Tree[B, V]) DeleteKey(key B) bool {
	i := r.findKey(key)
	if i == 0 {
		return false
	}
	r.deleteNode(i)
	return true
}

// deleteNode unlinks the target node and rebalances from the lowest node
// whose subtree changed.
func (r *Tree[B, V]) deleteNode(targetNodeIndex uint) {
	target := r.nodes[targetNodeIndex]

	var start uint
	if target.Left == 0 || target.Right == 0 {
		// leaf or a single child that takes the target's slot
		child := target.Left
		if child == 0 {
			child = target.Right
		}
		r.setChild(target.Parent, targetNodeIndex, child)
		start = target.Parent
	} else {
		// two children: the in-order successor takes the target's place
		successor := r.leftmost(target.Right)
		if successor == target.Right {
			start = successor
		} else {
			start = r.nodes[successor].Parent
			r.setChild(start, successor, r.nodes[successor].Right)
			r.nodes[successor].Right = target.Right
			r.nodes[target.Right].Parent = successor
		}
		r.nodes[successor].Left = target.Left
		r.nodes[target.Left].Parent = successor
		r.setChild(target.Parent, targetNodeIndex, successor)
	}

	r.freeNode(targetNodeIndex)
	r.retrace(start)
}

// Min returns the lowest stored interval and its value.
func (r *Tree[B, V]) Min() (interval.Interval[B], V, bool) {
	var v V
	if r.root == 0 {
		return interval.Interval[B]{}, v, false
	}
	n := &r.nodes[r.leftmost(r.root)]
	return n.Interval, n.Value, true
}

// Max returns the highest stored interval and its value.
func (r *Tree[B, V]) Max() (interval.Interval[B], V, bool) {
	var v V
	if r.root == 0 {
		return interval.Interval[B]{}, v, false
	}
	n := &r.nodes[r.rightmost(r.root)]
	return n.Interval, n.Value, true
}
