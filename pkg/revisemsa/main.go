package revisemsa

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andrew-torda/hastruct/pkg/seq"
	"github.com/andrew-torda/hastruct/pkg/seq/common"
)

// DefaultConfig runs mafft from the PATH.
var DefaultConfig = Config{Binary: "mafft"}

// Config says where mafft lives.
type Config struct {
	// Binary points to the executable. If it is in your PATH, the
	// name is enough.
	Binary string
}

// Args is the mafft command line, without the program name.
func (conf Config) Args(seedFile, otherFile string) []string {
	return []string{"--seed", seedFile, "--auto", otherFile}
}

// Run runs mafft and returns the alignment it writes to stdout.
func (conf Config) Run(seedFile, otherFile string) ([]byte, error) {
	stdout, _, err := common.RunCmd("", conf.Binary, conf.Args(seedFile, otherFile)...)
	return stdout, err
}

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	Config
	LogFile string
}

// Mymain reads the structural alignment and the old msa, realigns and
// writes the new msa to outFile.
func Mymain(flags *CmdFlag, structFile, msaFile, outFile string) error {
	return run(os.Stdout, flags, structFile, msaFile, outFile)
}

func run(w io.Writer, flags *CmdFlag, structFile, msaFile, outFile string) error {
	outlog, err := common.LogWhere(flags.LogFile)
	if err != nil {
		return err
	}
	aln, err := ReadSeedFile(structFile, Seeds)
	if err != nil {
		return err
	}
	_, npos := aln.Size()
	fmt.Fprintf(w, "Created structural sequences: %d positions\n", npos)

	msa, err := seq.Readfile(msaFile, &seq.Options{})
	if err != nil {
		return fmt.Errorf("reading alignment: %w", err)
	}
	keep, replaced, replaces := Split(msa.SeqSlc(), Seeds)
	for i, id := range replaced {
		fmt.Fprintf(w, "Will replace: %s -> %s\n", id, Seeds[replaces[i]].Name)
	}
	fmt.Fprintf(w, "\nKeeping %d sequences\n", len(keep))
	fmt.Fprintf(w, "Replacing %d sequences with structural versions\n", len(replaced))

	tmpdir, err := os.MkdirTemp("", "revisemsa")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpdir)
	otherFile := filepath.Join(tmpdir, "other_seqs.fasta")
	seedFile := filepath.Join(tmpdir, "structural_seed.fasta")
	if err := seq.WriteToF(otherFile, keep, &seq.Options{}); err != nil {
		return err
	}
	if err := seq.WriteToF(seedFile, SeedSeqs(aln, Seeds), &seq.Options{}); err != nil {
		return err
	}
	outlog.Println("mafft input in", tmpdir)

	fmt.Fprintln(w, "\nRunning MAFFT with structural seed...")
	out, err := flags.Config.Run(seedFile, otherFile)
	if err != nil {
		var cerr *common.CmdError
		if errors.As(err, &cerr) {
			fmt.Fprintf(w, "Error running MAFFT: %v\n", cerr.Err)
			fmt.Fprintf(w, "stderr: %s\n", cerr.Stderr)
		}
		return fmt.Errorf("running MAFFT: %w", err)
	}

	if dir := filepath.Dir(outFile); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	common.WarnExists(outFile)
	if err := os.WriteFile(outFile, UnSeed(out), 0644); err != nil {
		return err
	}

	check, err := seq.Readfile(outFile, &seq.Options{})
	if err != nil {
		return fmt.Errorf("checking mafft output: %w", err)
	}
	common.Okf(w, "Created %s\n", outFile)
	fmt.Fprintf(w, "  Sequences: %d\n", check.NSeq())
	fmt.Fprintf(w, "  Alignment length: %d\n", check.GetLen())
	return nil
}
