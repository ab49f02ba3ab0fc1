package defattr

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/hastruct/pkg/seq/common"
)

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	Name    string // default attribute / column name
	Outfile string // only allowed with a single input file
	LogFile string // where verbose output goes
}

// job is one csv file to be turned into an attribute file.
type job struct {
	infile, outfile, name string
}

// splitArg takes "name=file.csv" or "file.csv".
func splitArg(arg, dfltName string) (name, fname string) {
	if i := strings.IndexByte(arg, '='); i > 0 {
		return arg[:i], arg[i+1:]
	}
	return dfltName, arg
}

// outName changes jsd_h3_h5.csv to jsd_h3_h5.defattr
func outName(infile string) string {
	return strings.TrimSuffix(infile, filepath.Ext(infile)) + ".defattr"
}

func mkJobs(flags *CmdFlag, csvArgs []string) ([]job, error) {
	if len(csvArgs) == 0 {
		return nil, errors.New("no csv files given")
	}
	if flags.Outfile != "" && len(csvArgs) > 1 {
		return nil, errors.New("an output file name only works with one csv file")
	}
	var jobs []job
	for _, arg := range csvArgs {
		name, fname := splitArg(arg, flags.Name)
		if name == "" {
			return nil, fmt.Errorf("no attribute name for %s, use -n or name=%s", fname, fname)
		}
		out := flags.Outfile
		if out == "" {
			out = outName(fname)
		}
		jobs = append(jobs, job{infile: fname, outfile: out, name: name})
	}
	return jobs, nil
}

// Mymain reads the structure once, then writes one attribute file for
// each csv file.
func Mymain(flags *CmdFlag, structFile string, csvArgs []string) error {
	outlog, err := common.LogWhere(flags.LogFile)
	if err != nil {
		return err
	}
	jobs, err := mkJobs(flags, csvArgs)
	if err != nil {
		return err
	}
	chainMap, err := ReadChainSites(structFile)
	if err != nil {
		return fmt.Errorf("reading structure: %w", err)
	}
	for _, cs := range chainMap {
		outlog.Println(structFile, "chain", cs.ChainID, len(cs.Sites), "sites")
	}
	for _, j := range jobs {
		common.WarnExists(j.outfile)
		n, err := WriteFile(j.infile, j.outfile, j.name, chainMap)
		if err != nil {
			return err
		}
		outlog.Println(j.outfile, n, "residues written for", j.name)
		common.Okf(os.Stdout, "wrote %s (%d residues)\n", j.outfile, n)
	}
	return nil
}
