package tree

import (
	"github.com/henderiw/intervaldict/pkg/interval"
)

type treeNode[B, V any] struct {
	Interval interval.Interval[B]
	Value    V
	Left     uint // left node index: 0 for not set
	Right    uint // right node index: 0 for not set
	Parent   uint // parent node index: 0 for the root
	Count    int  // nodes in this subtree, including this one
	Height   int  // edges on the longest downward path; a leaf is 0
}

// create a new node in the tree, return its index
func (r *Tree[B, V]) newNode(iv interval.Interval[B], v V, parent uint) uint {
	if len(r.nodes) == 0 {
		r.nodes = make([]treeNode[B, V], 1) // index 0 is the nil sentinel
	}
	n := treeNode[B, V]{Interval: iv, Value: v, Parent: parent, Count: 1}

	availCount := len(r.availableIndexes)
	if availCount > 0 {
		index := r.availableIndexes[availCount-1]
		r.availableIndexes = r.availableIndexes[:availCount-1]
		r.nodes[index] = n
		return index
	}

	r.nodes = append(r.nodes, n)
	return uint(len(r.nodes) - 1)
}

// freeNode clears the slot so the value can be collected and makes the
// index available for reuse.
func (r *Tree[B, V]) freeNode(i uint) {
	r.nodes[i] = treeNode[B, V]{}
	r.availableIndexes = append(r.availableIndexes, i)
}

func (r *Tree[B, V]) height(i uint) int {
	if i == 0 {
		return -1
	}
	return r.nodes[i].Height
}

func (r *Tree[B, V]) count(i uint) int {
	if i == 0 {
		return 0
	}
	return r.nodes[i].Count
}

// fix re-derives count and height of i from its children.
func (r *Tree[B, V]) fix(i uint) {
	n := &r.nodes[i]
	n.Count = 1 + r.count(n.Left) + r.count(n.Right)
	n.Height = 1 + max(r.height(n.Left), r.height(n.Right))
}

func (r *Tree[B, V]) balanceFactor(i uint) int {
	return r.height(r.nodes[i].Left) - r.height(r.nodes[i].Right)
}

// setChild replaces old by child in the slot parent holds for old. A zero
// parent means old is the root.
func (r *Tree[B, V]) setChild(parent, old, child uint) {
	switch {
	case parent == 0:
		r.root = child
	case r.nodes[parent].Left == old:
		r.nodes[parent].Left = child
	case r.nodes[parent].Right == old:
		r.nodes[parent].Right = child
	default:
		panic("node isn't left or right child of its parent - should be impossible!")
	}
	if child != 0 {
		r.nodes[child].Parent = parent
	}
}

// rotateLeft lifts the right child of i into its place and returns it.
//
//	  i                p
//	 / \              / \
//	a   p     =>     i   c
//	   / \          / \
//	  b   c        a   b
func (r *Tree[B, V]) rotateLeft(i uint) uint {
	parent := r.nodes[i].Parent
	pivot := r.nodes[i].Right
	moved := r.nodes[pivot].Left

	r.nodes[i].Right = moved
	if moved != 0 {
		r.nodes[moved].Parent = i
	}
	r.setChild(parent, i, pivot)
	r.nodes[pivot].Left = i
	r.nodes[i].Parent = pivot

	r.fix(i)
	r.fix(pivot)
	return pivot
}

// rotateRight lifts the left child of i into its place and returns it.
//
//	    i            p
//	   / \          / \
//	  p   c   =>   a   i
//	 / \              / \
//	a   b            b   c
func (r *Tree[B, V]) rotateRight(i uint) uint {
	parent := r.nodes[i].Parent
	pivot := r.nodes[i].Left
	moved := r.nodes[pivot].Right

	r.nodes[i].Left = moved
	if moved != 0 {
		r.nodes[moved].Parent = i
	}
	r.setChild(parent, i, pivot)
	r.nodes[pivot].Right = i
	r.nodes[i].Parent = pivot

	r.fix(i)
	r.fix(pivot)
	return pivot
}

// rebalance restores the AVL invariant at i, whose children are balanced,
// and returns the root of the resulting subtree.
func (r *Tree[B, V]) rebalance(i uint) uint {
	bf := r.balanceFactor(i)
	switch {
	case bf < -1:
		// right heavy
		if r.balanceFactor(r.nodes[i].Right) > 0 {
			r.rotateRight(r.nodes[i].Right)
		}
		return r.rotateLeft(i)
	case bf > 1:
		// left heavy
		if r.balanceFactor(r.nodes[i].Left) < 0 {
			r.rotateLeft(r.nodes[i].Left)
		}
		return r.rotateRight(i)
	}
	return i
}

// retrace walks from i up to the root, re-deriving counts and heights and
// rebalancing every node on the way.
func (r *Tree[B, V]) retrace(i uint) {
	for i != 0 {
		r.fix(i)
		i = r.rebalance(i)
		i = r.nodes[i].Parent
	}
}

func (r *Tree[B, V]) leftmost(i uint) uint {
	for r.nodes[i].Left != 0 {
		i = r.nodes[i].Left
	}
	return i
}

func (r *Tree[B, V]) rightmost(i uint) uint {
	for r.nodes[i].Right != 0 {
		i = r.nodes[i].Right
	}
	return i
}
