// Reader for fasta format files.

package seq

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	. "github.com/andrew-torda/hastruct/pkg/seq/common"
)

// lexer walks through the input a line at a time. The state functions
// decide if a line belongs to a comment or a sequence.
type lexer struct {
	rdr    *bufio.Reader
	seqgrp *SeqGrp
	s_opts *Options
	line   []byte // current line, newline removed
	cmmt   string // comment of the sequence being built
	seq    []byte // partial sequence
	eof    bool
	err    error
}

type stateFn func(*lexer) stateFn

// next gets the next line into l.line. It returns false at the end
// of input or on a read error.
func (l *lexer) next() bool {
	if l.eof {
		return false
	}
	line, err := l.rdr.ReadBytes('\n')
	if err != nil {
		if err != io.EOF {
			l.err = err // a real error
			return false
		}
		l.eof = true
		if len(line) == 0 {
			return false
		}
	}
	l.line = bytes.TrimRight(line, "\r\n")
	return true
}

// removeWhite removes all white space from a byte slice in place.
func removeWhite(s []byte) []byte {
	t := s[:0]
	for _, c := range s {
		switch c {
		case ' ', '\t', '\v', '\f', '\r', '\n':
		default:
			t = append(t, c)
		}
	}
	return t
}

// flush finishes off the sequence we are building.
func (l *lexer) flush() {
	if len(l.seq) == 0 {
		l.err = errors.New("zero length sequence after >" + l.cmmt)
		return
	}
	l.seqgrp.Add(Seq{cmmt: l.cmmt, seq: l.seq})
	l.cmmt = ""
	l.seq = nil
}

// gstart skips blank lines until we see the first comment.
func gstart(l *lexer) stateFn {
	for l.next() {
		if len(bytes.TrimSpace(l.line)) == 0 {
			continue
		}
		if l.line[0] != cmmtChar {
			l.err = errors.New("fasta input does not start with '>'")
			return nil
		}
		return gcmmt
	}
	return nil
}

// We have a comment line in l.line
func gcmmt(l *lexer) stateFn {
	l.cmmt = string(l.line[1:])
	return gseq
}

// We are reading a sequence
func gseq(l *lexer) stateFn {
	for l.next() {
		if len(l.line) > 0 && l.line[0] == cmmtChar {
			if l.flush(); l.err != nil {
				return nil
			}
			return gcmmt
		}
		r := removeWhite(l.line)
		if l.s_opts.RmvGapsRd {
			t := r[:0]
			for _, c := range r {
				if c != GapChar {
					t = append(t, c)
				}
			}
			r = t
		}
		l.seq = append(l.seq, r...)
	}
	if l.err == nil {
		l.flush()
	}
	return nil
}

// ReadFasta reads fasta formatted sequences from rdr and appends them
// to seqgrp.
func ReadFasta(rdr io.Reader, seqgrp *SeqGrp, s_opts *Options) error {
	l := lexer{rdr: bufio.NewReader(rdr), seqgrp: seqgrp, s_opts: s_opts}

	for state := stateFn(gstart); state != nil; {
		state = state(&l)
	}
	if l.err != nil {
		return l.err
	}
	if seqgrp.NSeq() == 0 {
		return errors.New("no sequences found")
	}
	return nil
}
