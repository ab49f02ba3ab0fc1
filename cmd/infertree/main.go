// 15 Oct 2025
// Run iqtree on an alignment and keep the tree.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/hastruct/pkg/infertree"
	. "github.com/andrew-torda/hastruct/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] alignment.fasta out.newick")
	flag.PrintDefaults()
}

func main() {
	flags := infertree.CmdFlag{Config: infertree.DefaultConfig}
	flag.StringVar(&flags.Binary, "b", flags.Binary, "iqtree executable")
	flag.StringVar(&flags.Model, "m", flags.Model, "substitution model, TEST lets iqtree choose")
	flag.IntVar(&flags.Bootstrap, "B", flags.Bootstrap, "ultrafast bootstrap replicates, 0 for none")
	flag.StringVar(&flags.Threads, "T", flags.Threads, "threads for iqtree")
	flag.IntVar(&flags.Width, "w", 0, "width of the drawn tree, default from the terminal")
	flag.StringVar(&flags.LogFile, "l", "", "log file, or stdout or stderr")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		usage()
		os.Exit(ExitUsageError)
	}
	if err := infertree.Mymain(&flags, flag.Arg(0), flag.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
