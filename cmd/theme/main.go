// 16 Oct 2025
// Write the plotting theme as json.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	. "github.com/andrew-torda/hastruct/pkg/seq/common"
	"github.com/andrew-torda/hastruct/pkg/theme"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[-o out.json]")
	flag.PrintDefaults()
}

func main() {
	var outfile string
	flag.StringVar(&outfile, "o", "", "output file, default standard output")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 0 {
		usage()
		os.Exit(ExitUsageError)
	}
	WarnExists(outfile)
	if err := theme.Default().WriteFile(outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
