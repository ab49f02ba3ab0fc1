// 16 Oct 2025
// Pull some chains out of one model of a PDB file, so programs which
// want a single chain (foldmason, for example) are happy.

package pdbchain

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/hastruct/pdb"
	"github.com/andrew-torda/hastruct/pdb/cmmn"
	"github.com/andrew-torda/hastruct/pkg/seq/common"
)

// ChainList collects chain names from the command line. It takes
// "-c A,B" as well as "-c A -c B".
type ChainList []string

func (cl *ChainList) String() string {
	if cl == nil {
		return ""
	}
	return strings.Join(*cl, ",")
}

func (cl *ChainList) Set(s string) error {
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c == "" {
			return fmt.Errorf("empty chain name in \"%s\"", s)
		}
		*cl = append(*cl, c)
	}
	return nil
}

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	Infile  string
	Outfile string
	Chains  ChainList
	Model   int // counts from zero
	LogFile string
}

func (flags *CmdFlag) check() error {
	switch {
	case flags.Infile == "":
		return errors.New("no input file given")
	case flags.Outfile == "":
		return errors.New("no output file given")
	case len(flags.Chains) == 0:
		return errors.New("no chains given")
	case flags.Model < 0:
		return fmt.Errorf("model %d, but models count from 0", flags.Model)
	}
	return nil
}

// nSelected counts the atoms that sel lets through.
func nSelected(s *cmmn.Structure, sel pdb.Selector) int {
	n := 0
	for i := range s.Models {
		m := &s.Models[i]
		if !sel.AcceptModel(m) {
			continue
		}
		for j := range m.Chains {
			if sel.AcceptChain(&m.Chains[j]) {
				n += m.Chains[j].NAtom()
			}
		}
	}
	return n
}

// Mymain reads the input structure and writes the chosen chains.
func Mymain(flags *CmdFlag) error {
	return run(os.Stdout, flags)
}

func run(w io.Writer, flags *CmdFlag) error {
	if err := flags.check(); err != nil {
		return err
	}
	outlog, err := common.LogWhere(flags.LogFile)
	if err != nil {
		return err
	}
	s, err := pdb.ReadFile(flags.Infile)
	if err != nil {
		return err
	}
	sel := pdb.ChainSelect{Model: flags.Model, Chains: flags.Chains}
	n := nSelected(s, sel)
	outlog.Println(flags.Infile, len(s.Models), "models,", n, "atoms selected")
	if n == 0 {
		common.Warnf(w, "no atoms in model %d, chains %v of %s\n", flags.Model, []string(flags.Chains), flags.Infile)
		if flags.Model < len(s.Models) {
			have := cmmn.ChnSl(s.Models[flags.Model].Chains).ChainNames()
			fmt.Fprintf(w, "model %d has chains %v\n", flags.Model, have)
		} else {
			fmt.Fprintf(w, "there are only %d models\n", len(s.Models))
		}
	}

	if err := os.MkdirAll(filepath.Dir(flags.Outfile), 0755); err != nil {
		return err
	}
	if err := pdb.WriteFile(flags.Outfile, s, sel); err != nil {
		return fmt.Errorf("writing %s: %w", flags.Outfile, err)
	}
	fmt.Fprintf(w, "Extracted chains %v from %s to %s\n", []string(flags.Chains), flags.Infile, flags.Outfile)
	return nil
}
