package newick

import (
	"bufio"
	"errors"
	"io"
	"math"
	"strings"
)

// depths gives the distance of every node from the root. With unit set,
// every branch counts as one.
func depths(t *Tree, unit bool) map[*Tree]float64 {
	d := make(map[*Tree]float64)
	var walk func(n *Tree, x float64)
	walk = func(n *Tree, x float64) {
		d[n] = x
		for i := range n.Children {
			c := &n.Children[i]
			step := 1.0
			if !unit {
				step = 0
				if c.Length != nil {
					step = *c.Length
				}
			}
			walk(c, x+step)
		}
	}
	root := 0.0
	if t.Length != nil {
		root = *t.Length
	}
	walk(t, root)
	return d
}

func maxVal(d map[*Tree]float64) float64 {
	m := 0.0
	for _, x := range d {
		if x > m {
			m = x
		}
	}
	return m
}

// DrawASCII draws a tree sideways, root on the left, leaves on the
// right with their names. Each leaf gets every second line. width is
// the number of columns for drawing and labels together.
// If no branch has a length, all branches are drawn the same length.
func DrawASCII(w io.Writer, t *Tree, width int) error {
	taxa := t.Terminals()
	maxLabel := 0
	for _, leaf := range taxa {
		if n := len(leaf.Label); n > maxLabel {
			maxLabel = n
		}
	}
	drawWidth := width - maxLabel - 1
	height := 2*len(taxa) - 1
	if drawWidth < 2 {
		return errors.New("not enough columns to draw tree")
	}

	dpth := depths(t, false)
	if maxVal(dpth) == 0 {
		dpth = depths(t, true)
	}
	fudge := int(math.Ceil(math.Log2(float64(len(taxa))))) // rounding, one column per layer
	if drawWidth-fudge < 1 {
		return errors.New("not enough columns to draw tree")
	}
	maxDepth := maxVal(dpth)
	if maxDepth == 0 {
		maxDepth = 1
	}
	perUnit := float64(drawWidth-fudge) / maxDepth
	cols := make(map[*Tree]int, len(dpth))
	for n, x := range dpth {
		c := int(x*perUnit + 1.0)
		if c >= drawWidth {
			c = drawWidth - 1
		}
		cols[n] = max(c, 0)
	}

	rows := make(map[*Tree]int, len(dpth))
	for i, leaf := range taxa {
		rows[leaf] = 2 * i
	}
	var calcRow func(n *Tree)
	calcRow = func(n *Tree) {
		for i := range n.Children {
			if _, ok := rows[&n.Children[i]]; !ok {
				calcRow(&n.Children[i])
			}
		}
		if !n.IsTerminal() {
			rows[n] = (rows[&n.Children[0]] + rows[&n.Children[len(n.Children)-1]]) / 2
		}
	}
	calcRow(t)

	grid := make([][]byte, height)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", drawWidth))
	}
	var draw func(n *Tree, startCol int)
	draw = func(n *Tree, startCol int) {
		thisCol, thisRow := cols[n], rows[n]
		for c := startCol; c < thisCol; c++ {
			grid[thisRow][c] = '_'
		}
		if n.IsTerminal() {
			return
		}
		first, last := &n.Children[0], &n.Children[len(n.Children)-1]
		top, bot := rows[first], rows[last]
		for r := top + 1; r <= bot; r++ {
			grid[r][thisCol] = '|'
		}
		if cols[first]-thisCol < 2 { // short branches need something to stop trimming
			grid[top][thisCol] = ','
		}
		for i := range n.Children {
			draw(&n.Children[i], thisCol+1)
		}
	}
	draw(t, 0)

	bw := bufio.NewWriter(w)
	for i, row := range grid {
		bw.WriteString(strings.TrimRight(string(row), " "))
		if i%2 == 0 {
			bw.WriteString(" " + taxa[i/2].Label)
		}
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')
	return bw.Flush()
}
