// 15 Oct 2025
// Turn per-site statistics into chimera attribute files.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/hastruct/pkg/defattr"
	. "github.com/andrew-torda/hastruct/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]),
		"[flags] structure.pdb stats.csv [name=stats2.csv ...]")
	flag.PrintDefaults()
}

func main() {
	var flags defattr.CmdFlag
	flag.StringVar(&flags.Name, "n", "", "attribute name, also the csv column with the values")
	flag.StringVar(&flags.Outfile, "o", "", "output file name, only for a single csv file")
	flag.StringVar(&flags.LogFile, "l", "", "log file, or stdout or stderr")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 2 {
		usage()
		os.Exit(ExitUsageError)
	}
	if err := defattr.Mymain(&flags, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
