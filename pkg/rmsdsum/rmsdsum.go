// 16 Oct 2025
// RMSD of RMSD. Each input file has per-position RMSD values from a
// structure comparison. Boil each file down to one number and compare
// the HA1 and HA2 domains.

package rmsdsum

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Result is what we get from one file.
type Result struct {
	Filename string // base name only
	Header   string // first line, describing the comparison
	N        int    // number of values used
	RMSD     float64
	Domain   string
}

const (
	HA1 = "ha1"
	HA2 = "ha2"
)

// Domain guesses the domain from a file name. Anything that does not
// say ha1 is ha2.
func Domain(fname string) string {
	if strings.Contains(strings.ToLower(filepath.Base(fname)), HA1) {
		return HA1
	}
	return HA2
}

// Calc gives sqrt(mean(v^2)), or zero for no values.
func Calc(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(values, values) / float64(len(values)))
}

// Read reads one RMSD file. The first non-blank line is the header.
// Later lines look like "position: value". Values of None, lines
// without exactly one colon and values that are not finite numbers are
// quietly skipped.
func Read(r io.Reader) (header string, values []float64, err error) {
	scnnr := bufio.NewScanner(r)
	gotHeader := false
	for scnnr.Scan() {
		line := strings.TrimSpace(scnnr.Text())
		if line == "" {
			continue
		}
		if !gotHeader {
			header, gotHeader = line, true
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			continue
		}
		s := strings.TrimSpace(parts[1])
		if s == "None" {
			continue
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		values = append(values, x)
	}
	return header, values, scnnr.Err()
}

// ReadFile is Read on a named file, giving a Result.
func ReadFile(fname string) (Result, error) {
	res := Result{Filename: filepath.Base(fname), Domain: Domain(fname)}
	fp, err := os.Open(fname)
	if err != nil {
		return res, err
	}
	defer fp.Close()
	hdr, values, err := Read(fp)
	if err != nil {
		return res, fmt.Errorf("%s: %w", fname, err)
	}
	res.Header, res.N, res.RMSD = hdr, len(values), Calc(values)
	return res, nil
}

// Files returns the .txt files in a directory, sorted by name.
func Files(dir string) ([]string, error) {
	fnames, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, err
	}
	sort.Strings(fnames)
	return fnames, nil
}

// ReadAll reads the files in parallel. Results come back in the same
// order as the names. Files without values are left out.
func ReadAll(fnames []string) ([]Result, error) {
	all := make([]Result, len(fnames))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, fname := range fnames {
		i, fname := i, fname
		g.Go(func() error {
			var err error
			all[i], err = ReadFile(fname)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var results []Result
	for _, r := range all {
		if r.N > 0 {
			results = append(results, r)
		}
	}
	return results, nil
}

// DomainStats are the numbers for one domain.
type DomainStats struct {
	N        int
	Mean     float64
	Std      float64 // population standard deviation
	Min, Max float64
}

// Stats collects the RMSD values of one domain. ok is false if there
// were none.
func Stats(results []Result, domain string) (ds DomainStats, ok bool) {
	var x []float64
	for _, r := range results {
		if r.Domain == domain {
			x = append(x, r.RMSD)
		}
	}
	if len(x) == 0 {
		return ds, false
	}
	ds.N = len(x)
	ds.Mean, ds.Std = stat.PopMeanStdDev(x, nil)
	ds.Min, ds.Max = floats.Min(x), floats.Max(x)
	return ds, true
}

var (
	doubleLine = strings.Repeat("=", 80)
	singleLine = strings.Repeat("-", 50)
)

func wrtDomain(w io.Writer, name string, ds DomainStats) {
	fmt.Fprintf(w, "\n%s domain:\n", name)
	fmt.Fprintf(w, "  Number of comparisons: %d\n", ds.N)
	fmt.Fprintf(w, "  Mean RMSD: %.4f Å\n", ds.Mean)
	fmt.Fprintf(w, "  Std Dev: %.4f Å\n", ds.Std)
	fmt.Fprintf(w, "  Range: %.4f - %.4f Å\n", ds.Min, ds.Max)
}

// Report writes the per file numbers, a table and the domain summary.
func Report(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "RMSD of RMSD values for each file:")
	fmt.Fprintln(bw, doubleLine)
	for _, r := range results {
		fmt.Fprintf(bw, "\nFile: %s\n", r.Filename)
		fmt.Fprintf(bw, "Description: %s\n", r.Header)
		fmt.Fprintf(bw, "Number of values: %d\n", r.N)
		fmt.Fprintf(bw, "RMSD: %.4f\n", r.RMSD)
	}

	fmt.Fprintln(bw, "\n"+doubleLine)
	fmt.Fprintln(bw, "\nSummary:")
	fmt.Fprintf(bw, "Total files processed: %d\n", len(results))
	fmt.Fprintln(bw, "\nComparison Table:")
	fmt.Fprintf(bw, "%-30s %-8s %-10s\n", "File", "N", "RMSD")
	fmt.Fprintln(bw, singleLine)
	for _, r := range results {
		fmt.Fprintf(bw, "%-30s %-8d %-10.4f\n", r.Filename, r.N, r.RMSD)
	}

	fmt.Fprintln(bw, "\n"+doubleLine)
	fmt.Fprintln(bw, "\nDomain-Specific RMSD Averages:")
	fmt.Fprintln(bw, singleLine)
	ha1, ok1 := Stats(results, HA1)
	if ok1 {
		wrtDomain(bw, "HA1", ha1)
	}
	ha2, ok2 := Stats(results, HA2)
	if ok2 {
		wrtDomain(bw, "HA2", ha2)
	}
	if ok1 && ok2 {
		more := "less"
		if ha1.Mean > ha2.Mean {
			more = "more"
		}
		diff := math.Abs(ha1.Mean - ha2.Mean)
		fmt.Fprintln(bw, "\nComparison:")
		fmt.Fprintf(bw, "  HA1 is %s variable than HA2\n", more)
		if ha2.Mean != 0 {
			fmt.Fprintf(bw, "  Difference: %.4f Å (%.1f%%)\n", diff, diff/ha2.Mean*100)
		} else {
			fmt.Fprintf(bw, "  Difference: %.4f Å\n", diff)
		}
	}
	return bw.Flush()
}
