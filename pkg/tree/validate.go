package tree

import (
	"github.com/pkg/errors"
)

// Validate checks the structural invariants of the tree: parent links,
// subtree counts and heights, AVL balance and strictly ascending,
// non-overlapping intervals in order.
func (r *Tree[B, V]) Validate() error {
	if r.root == 0 {
		return nil
	}
	if p := r.nodes[r.root].Parent; p != 0 {
		return errors.Errorf("root %d has parent %d", r.root, p)
	}
	if _, _, err := r.validateNode(r.root); err != nil {
		return err
	}

	var prev uint
	it := r.Iterate()
	seen := 0
	for it.Next() {
		seen++
		if prev != 0 {
			a, b := r.nodes[prev].Interval, r.nodes[it.nodeIndex].Interval
			if a.Compare(b) >= 0 {
				return errors.Errorf("intervals out of order: %s before %s", a, b)
			}
			if a.Intersects(b) {
				return errors.Errorf("intervals overlap: %s and %s", a, b)
			}
		}
		prev = it.nodeIndex
	}
	if seen != r.Len() {
		return errors.Errorf("iterated %d nodes, root count is %d", seen, r.Len())
	}
	return nil
}

// validateNode returns the recomputed count and height of the subtree at i.
func (r *Tree[B, V]) validateNode(i uint) (int, int, error) {
	if i == 0 {
		return 0, -1, nil
	}
	n := &r.nodes[i]
	for _, child := range []uint{n.Left, n.Right} {
		if child != 0 && r.nodes[child].Parent != i {
			return 0, 0, errors.Errorf("node %d has parent %d, expected %d", child, r.nodes[child].Parent, i)
		}
	}
	lc, lh, err := r.validateNode(n.Left)
	if err != nil {
		return 0, 0, err
	}
	rc, rh, err := r.validateNode(n.Right)
	if err != nil {
		return 0, 0, err
	}
	count, height := 1+lc+rc, 1+max(lh, rh)
	if n.Count != count {
		return 0, 0, errors.Errorf("node %d %s has count %d, expected %d", i, n.Interval, n.Count, count)
	}
	if n.Height != height {
		return 0, 0, errors.Errorf("node %d %s has height %d, expected %d", i, n.Interval, n.Height, height)
	}
	if bf := lh - rh; bf < -1 || bf > 1 {
		return 0, 0, errors.Errorf("node %d %s is out of balance: %d", i, n.Interval, bf)
	}
	return count, height, nil
}
