// 16 Oct 2025
// Put structurally aligned sequences into an alignment with mafft.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/hastruct/pkg/revisemsa"
	. "github.com/andrew-torda/hastruct/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]),
		"[flags] structural_alignment.csv alignment.fasta out.fasta")
	flag.PrintDefaults()
}

func main() {
	flags := revisemsa.CmdFlag{Config: revisemsa.DefaultConfig}
	flag.StringVar(&flags.Binary, "b", flags.Binary, "mafft executable")
	flag.StringVar(&flags.LogFile, "l", "", "log file, or stdout or stderr")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 3 {
		usage()
		os.Exit(ExitUsageError)
	}
	if err := revisemsa.Mymain(&flags, flag.Arg(0), flag.Arg(1), flag.Arg(2)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
