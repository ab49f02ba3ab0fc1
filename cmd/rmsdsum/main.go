// 16 Oct 2025
// Summarise per-position RMSD files.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/hastruct/pkg/rmsdsum"
	. "github.com/andrew-torda/hastruct/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] [directory]")
	fmt.Fprintln(os.Stderr, "Without a directory, look in", rmsdsum.DefaultDir)
	flag.PrintDefaults()
}

func main() {
	var flags rmsdsum.CmdFlag
	flag.StringVar(&flags.PngFile, "p", "", "write a bar chart to this png file")
	flag.StringVar(&flags.ThemeFile, "t", "", "json theme for the chart")
	flag.StringVar(&flags.LogFile, "l", "", "log file, or stdout or stderr")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 1 {
		usage()
		os.Exit(ExitUsageError)
	}
	if err := rmsdsum.Mymain(&flags, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
