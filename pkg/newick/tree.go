// Package newick reads and writes trees in Newick format and draws them
// as ASCII art, which is enough to look at what a tree program gave us.
package newick

import (
	"bytes"
	"fmt"
	"strings"
)

// Tree is one node of a tree and, through its children, everything
// below it.
type Tree struct {
	// All children of this node, which may be empty.
	Children []Tree

	// The label of this node. If it is empty, the node has no name.
	Label string

	// Distance to the parent node. nil if there was none.
	Length *float64

	// Support value, such as a bootstrap percentage. Only internal
	// nodes get one, from a numeric label.
	Confidence *float64
}

// IsTerminal says if a node is a leaf.
func (t *Tree) IsTerminal() bool { return len(t.Children) == 0 }

// Terminals returns the leaves in the order they appear in the tree.
func (t *Tree) Terminals() []*Tree {
	var leaves []*Tree
	var walk func(n *Tree)
	walk = func(n *Tree) {
		if n.IsTerminal() {
			leaves = append(leaves, n)
			return
		}
		for i := range n.Children {
			walk(&n.Children[i])
		}
	}
	walk(t)
	return leaves
}

// StripInternalNames clears the label of every internal node that has no
// confidence. Leaves keep their names.
func (t *Tree) StripInternalNames() {
	if t.IsTerminal() {
		return
	}
	if t.Confidence == nil {
		t.Label = ""
	}
	for i := range t.Children {
		t.Children[i].StripInternalNames()
	}
}

// String recursively converts a tree to a string, with whitespace indenting
// to indicate depth.
func (t *Tree) String() string {
	buf := new(bytes.Buffer)
	var out func(n *Tree, depth int)
	out = func(n *Tree, depth int) {
		name, length := n.Label, ""
		if len(name) == 0 {
			name = "N/A"
		}
		if n.Length != nil {
			length = fmt.Sprintf(" (%f)", *n.Length)
		}
		if n.Confidence != nil {
			length += fmt.Sprintf(" [%g]", *n.Confidence)
		}
		fmt.Fprintf(buf, "%s%s%s\n", strings.Repeat("  ", depth), name, length)
		for i := range n.Children {
			out(&n.Children[i], depth+1)
		}
	}
	out(t, 0)
	return buf.String()
}
