// 16 Oct 2025
// Extract chains from a PDB file.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/hastruct/pkg/pdbchain"
	. "github.com/andrew-torda/hastruct/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "-i in.pdb -o out.pdb -c A[,B] [-m model]")
	flag.PrintDefaults()
}

func main() {
	var flags pdbchain.CmdFlag
	flag.StringVar(&flags.Infile, "i", "", "input PDB file")
	flag.StringVar(&flags.Outfile, "o", "", "output PDB file")
	flag.Var(&flags.Chains, "c", "chains to extract, like A,B. Can be repeated")
	flag.IntVar(&flags.Model, "m", 0, "model, counting from 0")
	flag.StringVar(&flags.LogFile, "l", "", "log file, or stdout or stderr")
	flag.Usage = usage
	flag.Parse()
	if flags.Infile == "" || flags.Outfile == "" || len(flags.Chains) == 0 || flag.NArg() != 0 {
		usage()
		os.Exit(ExitUsageError)
	}
	if err := pdbchain.Mymain(&flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
