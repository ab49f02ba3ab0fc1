package infertree

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const alnFile = "testdata/aln.fasta"

// fakeIqtree looks enough like iqtree for us. It writes a log and a
// tree file next to the -pre prefix.
const fakeIqtree = `#!/bin/sh
while [ $# -gt 0 ]; do
	case "$1" in
	-pre) pre="$2"; shift ;;
	esac
	shift
done
echo "IQ-TREE multicore version 2.2.0"
echo "Reading alignment file"
echo "Best-fit model: LG+G4 chosen according to BIC" > "$pre.log"
echo "Best-fit model: never reached" >> "$pre.log"
echo "(((A/Massachusetts/18/2022/H3N2:0.1,A/Anhui/1/2013/H7N9:0.2)95:0.3,B/Victoria/2/87:0.4)innername);" > "$pre.treefile"
echo "Total wall-clock time used"
`

const failIqtree = `#!/bin/sh
echo "started"
echo "ERROR: alignment is rubbish" >&2
exit 3
`

func wrtScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a shell")
	}
	fname := filepath.Join(t.TempDir(), "iqtree")
	if err := os.WriteFile(fname, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestArgs(t *testing.T) {
	got := DefaultConfig.Args("x.fasta", "out/tree")
	want := strings.Fields("-s x.fasta -m TEST -bb 1000 -nt AUTO -pre out/tree -redo")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
	conf := DefaultConfig
	conf.Bootstrap = 0
	conf.Model = "LG"
	got = conf.Args("x.fasta", "p")
	want = strings.Fields("-s x.fasta -m LG -nt AUTO -pre p -redo")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestTail(t *testing.T) {
	if got := tail("a\nb\nc\n", 2); !cmp.Equal(got, []string{"c", ""}) {
		t.Error("tail gave", got)
	}
	if got := tail("a", 50); len(got) != 1 {
		t.Error("tail gave", got)
	}
}

func TestPrefix(t *testing.T) {
	for _, c := range [][2]string{
		{"results/tree.newick", "results/tree"},
		{"tree", "tree"},
		{"a/b.c.nwk", "a/b.c"},
	} {
		if got := Prefix(c[0]); got != c[1] {
			t.Errorf("Prefix(%s) got %s want %s", c[0], got, c[1])
		}
	}
}

func TestRun(t *testing.T) {
	flags := &CmdFlag{Config: DefaultConfig, Width: 60}
	flags.Binary = wrtScript(t, fakeIqtree)
	outTree := filepath.Join(t.TempDir(), "sub", "ha.newick")
	var b bytes.Buffer
	if err := run(&b, flags, alnFile, outTree); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, s := range []string{
		"Loaded alignment with 3 sequences",
		"-pre " + Prefix(outTree) + " -redo",
		"Total wall-clock time used",
		"Best-fit model: LG+G4 chosen according to BIC",
		"Tree saved to " + outTree,
		"___ B/Victoria/2/87",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q", s)
		}
	}
	if strings.Contains(out, "never reached") {
		t.Error("only the first best-fit line should be shown")
	}
	got, err := os.ReadFile(outTree)
	if err != nil {
		t.Fatal(err)
	}
	want := "(((A/Massachusetts/18/2022/H3N2:0.10000,A/Anhui/1/2013/H7N9:0.20000)95.00:0.30000,B/Victoria/2/87:0.40000));\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("tree file (-want +got):\n%s", diff)
	}
}

func TestRunFails(t *testing.T) {
	flags := &CmdFlag{Config: DefaultConfig, Width: 60}
	flags.Binary = wrtScript(t, failIqtree)
	var b bytes.Buffer
	err := run(&b, flags, alnFile, filepath.Join(t.TempDir(), "t.newick"))
	if err == nil {
		t.Fatal("iqtree failed but no error")
	}
	if !strings.Contains(err.Error(), "return code 3") {
		t.Error("error should have the exit code:", err)
	}
	if !strings.Contains(b.String(), "alignment is rubbish") {
		t.Error("stderr of iqtree not shown")
	}

	flags.Binary = filepath.Join(t.TempDir(), "no_such_iqtree")
	if err := run(&b, flags, alnFile, filepath.Join(t.TempDir(), "t.newick")); err == nil {
		t.Fatal("missing binary but no error")
	}
}
