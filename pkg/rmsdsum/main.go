package rmsdsum

import (
	"fmt"
	"io"
	"os"

	"github.com/andrew-torda/hastruct/pkg/chart"
	"github.com/andrew-torda/hastruct/pkg/seq/common"
	"github.com/andrew-torda/hastruct/pkg/theme"
)

// DefaultDir is where we look if no directory is given.
const DefaultDir = "data/rmsd"

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	PngFile   string // bar chart of the RMSD per file, if set
	ThemeFile string // json theme for the chart, default if empty
	LogFile   string
}

// Mymain summarises the RMSD files in dir.
func Mymain(flags *CmdFlag, dir string) error {
	return run(os.Stdout, flags, dir)
}

// mkChart turns results into a bar chart, one bar per file.
func mkChart(results []Result) *chart.BarChart {
	bc := &chart.BarChart{Title: "RMSD of RMSD", XTitle: "RMSD (Å)"}
	for _, r := range results {
		bc.Bars = append(bc.Bars, chart.Bar{Label: r.Filename, Value: r.RMSD, Group: r.Domain})
	}
	return bc
}

func run(w io.Writer, flags *CmdFlag, dir string) error {
	outlog, err := common.LogWhere(flags.LogFile)
	if err != nil {
		return err
	}
	if dir == "" {
		dir = DefaultDir
	}
	fnames, err := Files(dir)
	if err != nil {
		return err
	}
	if len(fnames) == 0 {
		fmt.Fprintf(w, "No RMSD files found in %s\n", dir)
		return nil
	}
	outlog.Println(len(fnames), "files in", dir)
	results, err := ReadAll(fnames)
	if err != nil {
		return err
	}
	outlog.Println(len(fnames)-len(results), "files had no values")
	if err := Report(w, results); err != nil {
		return err
	}
	if flags.PngFile == "" || len(results) == 0 {
		return nil
	}

	th := theme.Default()
	if flags.ThemeFile != "" {
		if th, err = theme.ReadFile(flags.ThemeFile); err != nil {
			return err
		}
	}
	common.WarnExists(flags.PngFile)
	if err := mkChart(results).WritePNGFile(flags.PngFile, th); err != nil {
		return err
	}
	common.Okf(w, "chart written to %s\n", flags.PngFile)
	return nil
}
