package pdb

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/andrew-torda/hastruct/pdb/cmmn"
)

// Selector decides which models and chains get written.
type Selector interface {
	AcceptModel(m *cmmn.Model) bool
	AcceptChain(c *cmmn.Chain) bool
}

// all accepts everything
type all struct{}

func (all) AcceptModel(*cmmn.Model) bool { return true }
func (all) AcceptChain(*cmmn.Chain) bool { return true }

// All is the Selector that writes a whole structure.
var All Selector = all{}

// ChainSelect accepts one model, picked by its index (from zero), and
// the chains named in Chains.
type ChainSelect struct {
	Model  int
	Chains []string
}

func (cs ChainSelect) AcceptModel(m *cmmn.Model) bool { return m.Index == cs.Model }

func (cs ChainSelect) AcceptChain(c *cmmn.Chain) bool {
	for _, id := range cs.Chains {
		if id == c.ChainID {
			return true
		}
	}
	return false
}

const (
	atomFmt = "%s%5d %-4s%c%3s %s%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f      %-4s%2s%2s\n"
	terFmt  = "TER   %5d      %3s %s%4d%c\n"
)

// writeChain writes the atoms of a chain, then a TER record. serial is
// the serial number of the next atom, which it returns updated.
func writeChain(w io.Writer, c *cmmn.Chain, serial int) (int, error) {
	var last *cmmn.Residue
	for ir := range c.Residues {
		r := &c.Residues[ir]
		rec := "ATOM  "
		if !r.Std() {
			rec = "HETATM"
		}
		for _, a := range r.Atoms {
			_, err := fmt.Fprintf(w, atomFmt, rec, serial, a.FullName, a.AltLoc,
				r.Name, c.ChainID, r.Num, r.ICode, a.Xyz.X, a.Xyz.Y, a.Xyz.Z,
				a.Occupancy, a.BFactor, a.SegID, a.Element, a.Charge)
			if err != nil {
				return serial, err
			}
			serial++
			last = r
		}
	}
	if last == nil {
		return serial, nil
	}
	if _, err := fmt.Fprintf(w, terFmt, serial, last.Name, c.ChainID, last.Num, last.ICode); err != nil {
		return serial, err
	}
	return serial + 1, nil
}

// Write writes the parts of a structure accepted by sel in PDB format.
// Atoms are numbered from 1. MODEL / ENDMDL records are only written
// if more than one model is accepted.
func Write(w io.Writer, s *cmmn.Structure, sel Selector) error {
	var mdls []*cmmn.Model
	for i := range s.Models {
		if sel.AcceptModel(&s.Models[i]) {
			mdls = append(mdls, &s.Models[i])
		}
	}
	multi := len(mdls) > 1
	for _, m := range mdls {
		if multi {
			fmt.Fprintf(w, "MODEL     %4d\n", m.Index+1)
		}
		serial := 1
		for ic := range m.Chains {
			c := &m.Chains[ic]
			if !sel.AcceptChain(c) {
				continue
			}
			var err error
			if serial, err = writeChain(w, c, serial); err != nil {
				return err
			}
		}
		if multi {
			fmt.Fprintln(w, "ENDMDL")
		}
	}
	_, err := fmt.Fprintln(w, "END")
	return err
}

// WriteFile is Write to a named file, which is overwritten.
func WriteFile(fname string, s *cmmn.Structure, sel Selector) error {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(fp)
	if err = Write(bw, s, sel); err == nil {
		err = bw.Flush()
	}
	if e := fp.Close(); err == nil {
		err = e
	}
	return err
}
