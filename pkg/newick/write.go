package newick

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	lengthFmt = "%1.5f"
	confFmt   = "%1.2f"
)

// quoteLabel puts a label in single quotes if it has anything in it
// that would confuse a reader.
func quoteLabel(s string) string {
	if !strings.ContainsAny(s, labelStop) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// info is what follows the label. Leaves always get a length, zero if
// they had none. Internal nodes get their support and length if they
// have them.
func info(t *Tree) string {
	if t.IsTerminal() {
		x := 0.0
		if t.Length != nil {
			x = *t.Length
		}
		return ":" + fmt.Sprintf(lengthFmt, x)
	}
	var s string
	if t.Confidence != nil {
		s = fmt.Sprintf(confFmt, *t.Confidence)
	}
	if t.Length != nil {
		s += ":" + fmt.Sprintf(lengthFmt, *t.Length)
	}
	return s
}

func writeNode(w *bufio.Writer, t *Tree) {
	if !t.IsTerminal() {
		w.WriteByte(descStart)
		for i := range t.Children {
			if i > 0 {
				w.WriteByte(descDelim)
			}
			writeNode(w, &t.Children[i])
		}
		w.WriteByte(descEnd)
	}
	w.WriteString(quoteLabel(t.Label))
	w.WriteString(info(t))
}

// Write writes a tree on one line, finished by ';' and a newline.
func Write(w io.Writer, t *Tree) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, t)
	bw.WriteString(";\n")
	return bw.Flush()
}

// WriteFile writes trees to fname, one per line.
func WriteFile(fname string, trees ...*Tree) error {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	for _, t := range trees {
		if err = Write(fp, t); err != nil {
			break
		}
	}
	if e := fp.Close(); err == nil {
		err = e
	}
	return err
}
