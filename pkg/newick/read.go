package newick

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	terminal    = ';'
	descStart   = '('
	descEnd     = ')'
	descDelim   = ','
	lengthStart = ':'
	quote       = '\''
	cmmtStart   = '['
	cmmtEnd     = ']'
)

// labelStop are the bytes that end an unquoted label or length.
const labelStop = " \t\r\n()[]':;,"

// Reader reads trees from Newick formatted input. Comments in square
// brackets are skipped.
type Reader struct {
	rdr  *bufio.Reader
	line int
}

// NewReader returns a reader ready for reading trees from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{rdr: bufio.NewReader(r), line: 1}
}

func (r *Reader) errf(format string, v ...interface{}) error {
	return fmt.Errorf("newick line %d: %s", r.line, fmt.Sprintf(format, v...))
}

func (r *Reader) getc() (byte, error) {
	c, err := r.rdr.ReadByte()
	if err == nil && c == '\n' {
		r.line++
	}
	return c, err
}

func (r *Reader) ungetc(c byte) {
	r.rdr.UnreadByte()
	if c == '\n' {
		r.line--
	}
}

// peek skips white space and comments and returns the next byte without
// using it up.
func (r *Reader) peek() (byte, error) {
	for {
		c, err := r.getc()
		if err != nil {
			return 0, err
		}
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case cmmtStart:
			for c != cmmtEnd {
				if c, err = r.getc(); err != nil {
					return 0, r.errf("comment not closed")
				}
			}
			continue
		}
		r.ungetc(c)
		return c, nil
	}
}

// unexpected turns end of input in the middle of a tree into an error.
func (r *Reader) unexpected(err error) error {
	if err == io.EOF {
		return r.errf("unexpected end of input")
	}
	return err
}

// ReadAll returns all of the trees in the input. The first error that
// occurs is returned with no trees. The error is never io.EOF.
func (r *Reader) ReadAll() ([]*Tree, error) {
	var trees []*Tree
	for {
		t, err := r.ReadTree()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

// ReadTree reads a single tree. If the input is finished, it returns
// a nil tree and io.EOF. A missing ';' at the very end is forgiven.
func (r *Reader) ReadTree() (*Tree, error) {
	if _, err := r.peek(); err != nil {
		return nil, err
	}
	t := new(Tree)
	if err := r.node(t); err != nil {
		return nil, err
	}
	c, err := r.peek()
	if err == io.EOF {
		return t, nil
	} else if err != nil {
		return nil, err
	}
	if c != terminal {
		return nil, r.errf("expected '%c', got '%c'", terminal, c)
	}
	r.getc()
	return t, nil
}

// node reads a subtree, which is an optional list of children in
// brackets, then an optional label and an optional length.
func (r *Reader) node(t *Tree) error {
	c, err := r.peek()
	if err != nil {
		return r.unexpected(err)
	}
	if c == descStart {
		r.getc()
		for {
			var child Tree
			if err := r.node(&child); err != nil {
				return err
			}
			t.Children = append(t.Children, child)
			c, err := r.peek()
			if err != nil {
				return r.unexpected(err)
			}
			r.getc()
			if c == descEnd {
				break
			} else if c != descDelim {
				return r.errf("expected '%c' or '%c', got '%c'", descDelim, descEnd, c)
			}
		}
	}
	label, err := r.label()
	if err != nil {
		return err
	}
	if c, err := r.peek(); err == nil && c == lengthStart {
		r.getc()
		if err := r.length(t); err != nil {
			return err
		}
	}
	return setLabel(t, label)
}

// setLabel stores a label. Numbers on internal nodes are support values.
func setLabel(t *Tree, label string) error {
	if label == "" {
		return nil
	}
	if !t.IsTerminal() {
		if x, err := strconv.ParseFloat(label, 64); err == nil {
			t.Confidence = &x
			return nil
		}
	}
	t.Label = label
	return nil
}

// token reads bytes up to the next delimiter.
func (r *Reader) token() (string, error) {
	var b strings.Builder
	for {
		c, err := r.getc()
		if err == io.EOF {
			return b.String(), nil
		} else if err != nil {
			return "", err
		}
		if strings.IndexByte(labelStop, c) != -1 {
			r.ungetc(c)
			return b.String(), nil
		}
		b.WriteByte(c)
	}
}

// label reads a plain or quoted label. In a quoted label, two quotes
// stand for one.
func (r *Reader) label() (string, error) {
	c, err := r.peek()
	if err == io.EOF {
		return "", nil
	} else if err != nil {
		return "", err
	}
	if c != quote {
		return r.token()
	}
	r.getc()
	var b strings.Builder
	for {
		c, err := r.getc()
		if err != nil {
			return "", r.errf("quoted label not closed")
		}
		if c == quote {
			if c2, err := r.getc(); err == nil {
				if c2 == quote {
					b.WriteByte(quote)
					continue
				}
				r.ungetc(c2)
			}
			return b.String(), nil
		}
		b.WriteByte(c)
	}
}

func (r *Reader) length(t *Tree) error {
	if _, err := r.peek(); err != nil {
		return r.unexpected(err)
	}
	s, err := r.token()
	if err != nil {
		return err
	}
	if s == "" {
		return r.errf("empty branch length")
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return r.errf("invalid branch length: %v", err)
	}
	t.Length = &x
	return nil
}

// ReadFile reads the first tree in a file.
func ReadFile(fname string) (*Tree, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	t, err := NewReader(fp).ReadTree()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: no tree found", fname)
	} else if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return t, nil
}
