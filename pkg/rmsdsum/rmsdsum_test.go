package rmsdsum

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/andrew-torda/hastruct/brokenio"
)

const testdir = "testdata/rmsd"

func TestCalc(t *testing.T) {
	if x := Calc(nil); x != 0 {
		t.Fatal("empty list should give 0, got", x)
	}
	if x := Calc([]float64{}); x != 0 {
		t.Fatal("empty list should give 0, got", x)
	}
	if x := Calc([]float64{3, -3, 3, -3}); x != 3 {
		t.Fatal("wanted 3, got", x)
	}
	if x := Calc([]float64{1, 3}); math.Abs(x-math.Sqrt(5)) > 1e-12 {
		t.Fatal("wanted sqrt 5, got", x)
	}
}

func TestRead(t *testing.T) {
	in := "\n  my header  \n1: 0.5\n2:None\n3: nonsense\nno colon\n4: 1:2\n\n5:  2.5 \n"
	hdr, values, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if hdr != "my header" {
		t.Errorf("header got %q", hdr)
	}
	if diff := cmp.Diff([]float64{0.5, 2.5}, values); diff != "" {
		t.Error(diff)
	}
	_, values, err = Read(strings.NewReader("h\n1: nan\n2: 1.5\n3: inf\n4: -Infinity\n5: NaN\n"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{1.5}, values); diff != "" {
		t.Error("non-finite values kept:", diff)
	}
	hdr, values, err = Read(strings.NewReader(""))
	if err != nil || hdr != "" || len(values) != 0 {
		t.Error("empty input went wrong", hdr, values, err)
	}
	rdr := brokenio.NewReader(strings.NewReader(in)).SetFailAfter(20)
	if _, _, err = Read(rdr); !errors.Is(err, brokenio.ErrBroken) {
		t.Error("read error lost, got", err)
	}
}

func TestDomain(t *testing.T) {
	for name, want := range map[string]string{
		"x/h3_h5_ha1.txt": HA1,
		"H3_HA1.txt":      HA1,
		"h3_h5_ha2.txt":   HA2,
		"ha1/other.txt":   HA2, // only the file name counts
	} {
		if got := Domain(name); got != want {
			t.Errorf("Domain(%s) got %s want %s", name, got, want)
		}
	}
}

func TestReadAll(t *testing.T) {
	fnames, err := Files(testdir)
	if err != nil {
		t.Fatal(err)
	}
	if len(fnames) != 4 {
		t.Fatal("wanted 4 txt files, got", fnames)
	}
	results, err := ReadAll(fnames)
	if err != nil {
		t.Fatal(err)
	}
	want := []Result{
		{"h3_h5_ha1.txt", "RMSD per position H3 vs H5 HA1", 2, math.Sqrt(5), HA1},
		{"h3_h5_ha2.txt", "HA2 desc", 1, 1, HA2},
		{"h3_h7_HA1.txt", "H3 vs H7 HA1", 2, 2, HA1},
	}
	if diff := cmp.Diff(want, results, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if _, err := ReadAll([]string{filepath.Join(testdir, "not_there.txt")}); err == nil {
		t.Fatal("missing file should be an error")
	}
}

func TestStats(t *testing.T) {
	results := []Result{
		{RMSD: 1, Domain: HA1}, {RMSD: 3, Domain: HA1}, {RMSD: 5, Domain: HA2},
	}
	ds, ok := Stats(results, HA1)
	if !ok {
		t.Fatal("no ha1 stats")
	}
	want := DomainStats{N: 2, Mean: 2, Std: 1, Min: 1, Max: 3}
	if diff := cmp.Diff(want, ds); diff != "" {
		t.Error(diff)
	}
	if _, ok := Stats(results[:2], HA2); ok {
		t.Error("there are no ha2 results")
	}
}

func TestReport(t *testing.T) {
	var b bytes.Buffer
	flags := &CmdFlag{}
	if err := run(&b, flags, testdir); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, s := range []string{
		"File: h3_h5_ha1.txt\nDescription: RMSD per position H3 vs H5 HA1\nNumber of values: 2\nRMSD: 2.2361\n",
		"Total files processed: 3\n",
		"h3_h5_ha2.txt                  1        1.0000    \n",
		"HA1 domain:\n  Number of comparisons: 2\n  Mean RMSD: 2.1180 Å\n  Std Dev: 0.1180 Å\n  Range: 2.0000 - 2.2361 Å\n",
		"HA2 domain:\n  Number of comparisons: 1\n",
		"  HA1 is more variable than HA2\n  Difference: 1.1180 Å (111.8%)\n",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q", s)
		}
	}
	if strings.Contains(out, "empty_ha2") || strings.Contains(out, "notes.md") {
		t.Error("files without values or not .txt should not be reported")
	}
}

func TestNoFiles(t *testing.T) {
	dir := t.TempDir()
	var b bytes.Buffer
	if err := run(&b, &CmdFlag{}, dir); err != nil {
		t.Fatal(err)
	}
	if want := "No RMSD files found in " + dir + "\n"; b.String() != want {
		t.Fatalf("got %q", b.String())
	}
}

func TestChart(t *testing.T) {
	png1 := filepath.Join(t.TempDir(), "rmsd.png")
	var b bytes.Buffer
	if err := run(&b, &CmdFlag{PngFile: png1}, testdir); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(png1)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	if _, err := png.Decode(fp); err != nil {
		t.Fatal("chart is not a png", err)
	}
	if err := run(&b, &CmdFlag{PngFile: png1, ThemeFile: "no/such/theme.json"}, testdir); err == nil {
		t.Fatal("missing theme file should be an error")
	}
}
