package tree

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes the tree structure to w, one node per line, indented by
// depth, right subtree first so the output reads like the tree turned on
// its side.
func (r *Tree[B, V]) Dump(w io.Writer) {
	if r.root == 0 {
		fmt.Fprintln(w, "<empty>")
		return
	}
	r.dump(w, r.root, 0)
}

func (r *Tree[B, V]) dump(w io.Writer, nodeIndex uint, depth int) {
	if nodeIndex == 0 {
		return
	}
	n := &r.nodes[nodeIndex]
	r.dump(w, n.Right, depth+1)
	fmt.Fprintf(w, "%s%s: %v (count=%d height=%d)\n", strings.Repeat("    ", depth), n.Interval, n.Value, n.Count, n.Height)
	r.dump(w, n.Left, depth+1)
}
