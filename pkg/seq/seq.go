// 20 Dec 2017

// Package seq provides functions for sequences,
// which usually begin their lives in fasta format. It can
// read and write them.
package seq

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	. "github.com/andrew-torda/hastruct/pkg/seq/common"
)

// Seq is one sequence and the comment line that came with it.
type Seq struct {
	cmmt string
	seq  []byte
}

// Options contains all the choices passed in from the caller.
type Options struct {
	DiffLenSeq bool // false, unless we expect sequences to be different lengths
	RmvGapsRd  bool // Remove gaps upon reading
	RmvGapsWrt bool // Remove gaps on output
}

// Constants
const cmmtChar byte = '>' // and this introduces comments in fasta format

// SeqGrp is a group of sequences, in the order they were read.
type SeqGrp struct {
	seqs []Seq
}

// NewSeq makes a sequence from a comment (without the ">") and the
// residues.
func NewSeq(cmmt string, s []byte) Seq { return Seq{cmmt: cmmt, seq: s} }

// GetSeq returns the sequence as the original byte slice
func (s Seq) GetSeq() []byte { return s.seq }

// GetCmmt returns the comment, without the leading ">"
func (s Seq) GetCmmt() string { return s.cmmt }

// Len
func (s Seq) Len() int { return len(s.seq) }

// Empty returns true if a sequence has no residues.
func (s Seq) Empty() bool { return len(s.seq) == 0 }

// ID returns the first word of the comment. For most databases, this
// is the sequence identifier. An empty comment gives an empty ID.
func (s Seq) ID() string {
	if f := strings.Fields(s.cmmt); len(f) > 0 {
		return f[0]
	}
	return ""
}

// Ungapped returns a copy of the sequence with gap characters removed.
// The original is not touched.
func (s Seq) Ungapped() []byte {
	t := make([]byte, 0, len(s.seq))
	for _, c := range s.seq {
		if c != GapChar {
			t = append(t, c)
		}
	}
	return t
}

// trimStr trims a string to n bytes if it is longer
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// GetLen returns the length of the first sequence.
// If we are reading a multiple sequence alignment, this should be the length
// of all sequences.
func (seqgrp *SeqGrp) GetLen() int {
	if len(seqgrp.seqs) == 0 {
		return 0
	}
	return len(seqgrp.seqs[0].GetSeq())
}

// NSeq returns the number of sequences
func (seqgrp *SeqGrp) NSeq() int { return len(seqgrp.seqs) }

// SeqSlc returns the slice of sequences
func (seqgrp *SeqGrp) SeqSlc() []Seq { return seqgrp.seqs }

// Add appends a sequence to the group.
func (seqgrp *SeqGrp) Add(s Seq) { seqgrp.seqs = append(seqgrp.seqs, s) }

// checkLengths should only be called if we think we have an alignment.
// Then all the sequences must be the same length.
func (seqgrp *SeqGrp) checkLengths() error {
	const msg = "sequence lengths are not the same. First sequence length %d, " +
		"but sequence %d length: %d. Comment starts \"%s\""
	if len(seqgrp.seqs) == 0 {
		return nil
	}
	iwant := seqgrp.GetLen()
	for i := 1; i < len(seqgrp.seqs); i++ {
		if ilen := seqgrp.seqs[i].Len(); ilen != iwant {
			return fmt.Errorf(msg, iwant, i+1, ilen, trimStr(seqgrp.seqs[i].GetCmmt(), 40))
		}
	}
	return nil
}

// Readfile takes a filename and reads sequences from it.
// An empty filename means standard input.
// Unless s_opts.DiffLenSeq is set, we treat the file as an alignment and
// complain if sequences have different lengths.
func Readfile(fname string, s_opts *Options) (*SeqGrp, error) {
	var seqgrp = new(SeqGrp)
	var fp io.ReadCloser // don't use a file. It could be stdin.

	if fname != "" {
		var err error
		if fp, err = os.Open(fname); err != nil {
			return nil, err
		}
		defer fp.Close()
	} else {
		fp = os.Stdin
	}

	if err := ReadFasta(fp, seqgrp, s_opts); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}

	if !s_opts.DiffLenSeq {
		if err := seqgrp.checkLengths(); err != nil {
			return nil, fmt.Errorf("%s: %w", fname, err)
		}
	}
	return seqgrp, nil
}

// WriteToF takes a filename and a slice of sequences.
// It writes the sequences to the file. An empty filename means stdout.
func WriteToF(outseq_fname string, seq_set []Seq, s_opts *Options) error {
	var outfile_fp io.Writer
	if outseq_fname == "" {
		outfile_fp = os.Stdout
	} else {
		t, err := os.Create(outseq_fname)
		if err != nil {
			return fmt.Errorf("creating output sequence file: %w", err)
		}
		defer t.Close()
		outfile_fp = t
	}
	return Write(outfile_fp, seq_set, s_opts)
}

// Write writes sequences in fasta format, 60 residues per line.
// Sequences with no residues are skipped.
func Write(w io.Writer, seq_set []Seq, s_opts *Options) error {
	const c_per_line = 60
	var buf bytes.Buffer
	for _, seq := range seq_set {
		if seq.Empty() {
			continue
		}
		buf.WriteByte(cmmtChar)
		buf.WriteString(seq.GetCmmt())
		buf.WriteByte('\n')

		s := seq.GetSeq()
		if s_opts.RmvGapsWrt {
			s = seq.Ungapped()
		}
		for ; len(s) > c_per_line; s = s[c_per_line:] {
			buf.Write(s[:c_per_line])
			buf.WriteByte('\n')
		}
		buf.Write(s)
		buf.WriteByte('\n')
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
		buf.Reset()
	}
	return nil
}
