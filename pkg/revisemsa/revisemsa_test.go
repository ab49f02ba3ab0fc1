package revisemsa

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/andrew-torda/hastruct/pkg/seq"
)

const (
	structFile = "testdata/struct_aln.csv"
	msaFile    = "testdata/msa.fasta"
)

// fakeMafft is called as: --seed seedfile --auto otherfile
// It marks the seeds the way mafft does and does no aligning at all.
const fakeMafft = `#!/bin/sh
sed 's/^>/>_seed_/' "$2"
cat "$4"
`

const failMafft = `#!/bin/sh
echo "mafft does not like you" >&2
exit 1
`

func wrtScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a shell")
	}
	fname := filepath.Join(t.TempDir(), "mafft")
	if err := os.WriteFile(fname, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestHPart(t *testing.T) {
	for _, c := range [][2]string{
		{"A/Anhui/1/2013/H7N9", "H7"},
		{"A/Massachusetts/18/2022/H3N2", "H3"},
		{"H5", "H5"},
		{"B/Victoria/2/87", "87"},
		{"A/x/N1", ""},
		{"A/x/", ""},
	} {
		if got := HPart(c[0]); got != c[1] {
			t.Errorf("HPart(%s) got %q want %q", c[0], got, c[1])
		}
	}
}

func TestMatch(t *testing.T) {
	for _, c := range []struct {
		id   string
		ndx  int
		isOk bool
	}{
		{"A/Massachusetts/18/2022/H3N2", 0, true},
		{"A/duck/Hunan/1/2020/H5N6", 1, true},
		{"A/Shanghai/02/2013/H7N9", 2, true},
		{"A/swine/Ohio/2019/H1N1", -1, false},
		{"A/x/N2", -1, false},
		{"B/Victoria/2/87", -1, false},
	} {
		ndx, ok := Match(c.id, Seeds)
		if ndx != c.ndx || ok != c.isOk {
			t.Errorf("Match(%s) got %d %v want %d %v", c.id, ndx, ok, c.ndx, c.isOk)
		}
	}
}

func TestUnSeed(t *testing.T) {
	in := ">_seed_A/x/H3N2\nMK\n>B/y\nMK_seed_\n"
	want := ">A/x/H3N2\nMK\n>B/y\nMK_seed_\n"
	if got := string(UnSeed([]byte(in))); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestReadSeedAln(t *testing.T) {
	aln, err := ReadSeedFile(structFile, Seeds)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, s := range SeedSeqs(aln, Seeds) {
		got = append(got, s.GetCmmt()+" "+string(s.GetSeq()))
	}
	want := []string{
		Seeds[0].Name + " MKTIIA",
		Seeds[1].Name + " ME-K-L",
		Seeds[2].Name + " MNTQIL",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	broken := []string{
		"",
		"pos,h3_wt_aa,h5_wt_aa\n1,M,M\n",
		"h3_wt_aa,h5_wt_aa,h7_wt_aa\nM,MK,M\n",
		"h3_wt_aa,h5_wt_aa,h7_wt_aa\nM,M\n",
	}
	for _, s := range broken {
		if _, err := ReadSeedAln(strings.NewReader(s), Seeds); err == nil {
			t.Errorf("no error on %q", s)
		}
	}

	aln, err = ReadSeedAln(strings.NewReader("\ufeffh3_wt_aa,h5_wt_aa,h7_wt_aa\nM,M,M\n"), Seeds)
	if err != nil {
		t.Fatal("byte order mark upset the header:", err)
	}
	if s := SeedSeqs(aln, Seeds)[0]; string(s.GetSeq()) != "M" {
		t.Errorf("first seed got %q", s.GetSeq())
	}
}

func TestSplit(t *testing.T) {
	msa, err := seq.Readfile(msaFile, &seq.Options{})
	if err != nil {
		t.Fatal(err)
	}
	keep, replaced, replaces := Split(msa.SeqSlc(), Seeds)
	var got []string
	for _, s := range keep {
		got = append(got, s.GetCmmt()+" "+string(s.GetSeq()))
	}
	want := []string{"B/Victoria/2/87 MKTIIA", "A/swine/Ohio/2019/H1N1 MKTLLA"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("kept (-want +got):\n%s", diff)
	}
	wantRep := []string{"A/Massachusetts/18/2022/H3N2", "A/duck/Hunan/1/2020/H5N6"}
	if diff := cmp.Diff(wantRep, replaced); diff != "" {
		t.Errorf("replaced (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, replaces); diff != "" {
		t.Errorf("seed indices (-want +got):\n%s", diff)
	}
}

func TestRun(t *testing.T) {
	flags := &CmdFlag{Config: Config{Binary: wrtScript(t, fakeMafft)}}
	outFile := filepath.Join(t.TempDir(), "new", "ha.fasta")
	var b bytes.Buffer
	if err := run(&b, flags, structFile, msaFile, outFile); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, s := range []string{
		"Created structural sequences: 6 positions",
		"Will replace: A/duck/Hunan/1/2020/H5N6 -> " + Seeds[1].Name,
		"Keeping 2 sequences",
		"Replacing 2 sequences with structural versions",
		"Created " + outFile,
		"  Sequences: 5\n",
		"  Alignment length: 6\n",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q", s)
		}
	}
	got, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	want := ">" + Seeds[0].Name + "\nMKTIIA\n" +
		">" + Seeds[1].Name + "\nME-K-L\n" +
		">" + Seeds[2].Name + "\nMNTQIL\n" +
		">B/Victoria/2/87\nMKTIIA\n" +
		">A/swine/Ohio/2019/H1N1\nMKTLLA\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("output file (-want +got):\n%s", diff)
	}
}

func TestRunFails(t *testing.T) {
	flags := &CmdFlag{Config: Config{Binary: wrtScript(t, failMafft)}}
	outFile := filepath.Join(t.TempDir(), "ha.fasta")
	var b bytes.Buffer
	if err := run(&b, flags, structFile, msaFile, outFile); err == nil {
		t.Fatal("mafft failed, but no error")
	}
	if !strings.Contains(b.String(), "mafft does not like you") {
		t.Error("mafft stderr not shown")
	}
	if _, err := os.Stat(outFile); err == nil {
		t.Error("output written after mafft failed")
	}
}
