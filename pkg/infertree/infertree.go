// 15 Oct 2025
// Build a maximum likelihood tree by running IQ-TREE on an alignment,
// then tidy the tree and write it out in Newick format.

package infertree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/andrew-torda/hastruct/pkg/newick"
	"github.com/andrew-torda/hastruct/pkg/seq"
	"github.com/andrew-torda/hastruct/pkg/seq/common"
)

// DefaultConfig lets IQ-TREE pick the substitution model, with ultrafast
// bootstrap and as many threads as it likes.
var DefaultConfig = Config{
	Binary:    "iqtree",
	Model:     "TEST",
	Bootstrap: 1000,
	Threads:   "AUTO",
}

// Config says where the iqtree binary is and how to run it.
type Config struct {
	// Binary points to the executable. If it is in your PATH, the
	// name is enough.
	Binary string

	// Model is given to -m. TEST means model selection.
	Model string

	// Bootstrap is the number of ultrafast bootstrap replicates (-bb).
	// Zero turns bootstrapping off.
	Bootstrap int

	// Threads is given to -nt. It can be a number or AUTO.
	Threads string
}

// Args is the iqtree command line, without the program name.
func (conf Config) Args(aln, prefix string) []string {
	args := []string{"-s", aln, "-m", conf.Model}
	if conf.Bootstrap > 0 {
		args = append(args, "-bb", strconv.Itoa(conf.Bootstrap))
	}
	return append(args, "-nt", conf.Threads, "-pre", prefix, "-redo")
}

// Run runs iqtree and returns its standard output.
func (conf Config) Run(aln, prefix string) ([]byte, error) {
	stdout, _, err := common.RunCmd("", conf.Binary, conf.Args(aln, prefix)...)
	return stdout, err
}

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	Config
	Width   int    // columns for drawing the tree, 0 means ask the terminal
	LogFile string // where verbose output goes
}

const nTail = 50 // lines of iqtree output we show

// Prefix is where iqtree puts its files, the output name without
// its extension.
func Prefix(outTree string) string {
	return strings.TrimSuffix(outTree, filepath.Ext(outTree))
}

// tail returns the last n pieces of s, split at newlines.
func tail(s string, n int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

// bestModel finds the line in the iqtree log which says which model
// won. It returns "" if there is no such line.
func bestModel(logFile string) (string, error) {
	fp, err := os.Open(logFile)
	if err != nil {
		return "", err
	}
	defer fp.Close()
	scnnr := bufio.NewScanner(fp)
	for scnnr.Scan() {
		if line := scnnr.Text(); strings.Contains(line, "Best-fit model:") {
			return strings.TrimSpace(line), nil
		}
	}
	return "", scnnr.Err()
}

// termWidth is the width of the terminal if we are writing to one,
// otherwise 80.
func termWidth() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

// Mymain reads the alignment, runs iqtree and writes the tree to outTree.
func Mymain(flags *CmdFlag, alnFile, outTree string) error {
	return run(os.Stdout, flags, alnFile, outTree)
}

func run(w io.Writer, flags *CmdFlag, alnFile, outTree string) error {
	outlog, err := common.LogWhere(flags.LogFile)
	if err != nil {
		return err
	}
	seqgrp, err := seq.Readfile(alnFile, &seq.Options{})
	if err != nil {
		return fmt.Errorf("reading alignment: %w", err)
	}
	fmt.Fprintf(w, "Loaded alignment with %d sequences\n", seqgrp.NSeq())

	outDir := filepath.Dir(outTree)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	prefix := Prefix(outTree)

	conf := flags.Config
	fmt.Fprintln(w, "Running IQ-TREE maximum-likelihood inference...")
	fmt.Fprintln(w, "Command:", common.CmdLine(conf.Binary, conf.Args(alnFile, prefix)...))
	t0 := time.Now()
	stdout, err := conf.Run(alnFile, prefix)
	outlog.Println("iqtree took", time.Since(t0))
	if err != nil {
		var cerr *common.CmdError
		if !errors.As(err, &cerr) || cerr.Code < 0 {
			return fmt.Errorf("running IQ-TREE: %w", err)
		}
		fmt.Fprintln(w, "STDOUT:", cerr.Stdout)
		fmt.Fprintln(w, "STDERR:", cerr.Stderr)
		return fmt.Errorf("IQ-TREE failed with return code %d", cerr.Code)
	}
	common.Okf(w, "IQ-TREE completed successfully!\n")

	fmt.Fprintf(w, "\n--- IQ-TREE Output (last %d lines) ---\n", nTail)
	for _, line := range tail(string(stdout), nTail) {
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w, "\n--- Best model selected ---")
	best, err := bestModel(prefix + ".log")
	if err != nil {
		return fmt.Errorf("IQ-TREE log: %w", err)
	}
	if best != "" {
		fmt.Fprintln(w, best)
	}

	tree, err := newick.ReadFile(prefix + ".treefile")
	if err != nil {
		return err
	}
	tree.StripInternalNames()
	if err := newick.WriteFile(outTree, tree); err != nil {
		return fmt.Errorf("writing tree: %w", err)
	}
	fmt.Fprintf(w, "\nTree saved to %s\n", outTree)
	outlog.Println(outTree, len(tree.Terminals()), "leaves")

	fmt.Fprintln(w, "\n--- Tree ASCII visualization ---")
	width := flags.Width
	if width <= 0 {
		width = termWidth()
	}
	return newick.DrawASCII(w, tree, width)
}
