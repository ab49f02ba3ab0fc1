package pdb_test

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	. "github.com/andrew-torda/hastruct/pdb"
	"github.com/andrew-torda/hastruct/pdb/cmmn"
)

const testdir = "testdata"

// trimLines removes trailing blanks from every line, since records are
// padded out to 80 columns.
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

// TestBrokenFile checks if we get sensible error messages when we open
// something that is not a pdb file.
func TestBrokenFile(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.pdb")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cif := filepath.Join(dir, "x.cif")
	if err := os.WriteFile(cif, []byte("data_4O5N\nloop_\n"), 0644); err != nil {
		t.Fatal(err)
	}
	noatoms := filepath.Join(dir, "noatoms.pdb")
	if err := os.WriteFile(noatoms, []byte("HEADER    nothing\nEND\n"), 0644); err != nil {
		t.Fatal(err)
	}
	testfiles := []string{
		"/does/not/exist",
		dir,
		empty,
		cif,
		noatoms,
	}
	for _, s := range testfiles {
		if st, err := ReadFile(s); err == nil || st != nil {
			t.Error("Did not get expected error on", s)
		}
	}
}

func TestBadRecords(t *testing.T) {
	good := "ATOM      1  N   GLY A   1       0.000   2.000   3.000  1.00 20.00           N  "
	bad := []string{
		strings.Replace(good, "   1    ", "   x    ", 1),     // residue number
		strings.Replace(good, "2.000", "2.0x0", 1),          // coordinate
		strings.Replace(good, "1.00 20.00", "1.x0 20.00", 1), // occupancy
	}
	for _, s := range bad {
		if _, err := Read(strings.NewReader(s + "\n")); err == nil {
			t.Errorf("no error on %q", s)
		}
	}
	if _, err := Read(strings.NewReader(good)); err != nil {
		t.Error("unexpected error", err)
	}
}

func TestReadSmall(t *testing.T) {
	s, err := ReadFile(filepath.Join(testdir, "small.pdb"))
	if err != nil {
		t.Fatal(err)
	}
	if s.ID != "4o5n" {
		t.Error("ID wanted 4o5n got", s.ID)
	}
	if len(s.Models) != 1 {
		t.Fatal("wanted one model, got", len(s.Models))
	}
	chains := s.Models[0].Chains
	if diff := cmp.Diff([]string{"A", "B"}, cmmn.ChnSl(chains).ChainNames()); diff != "" {
		t.Fatal(diff)
	}
	type rs struct {
		Het  string
		Num  int
		Name string
		N    int
	}
	var got []rs
	for _, r := range chains[0].Residues {
		got = append(got, rs{r.Het, r.Num, r.Name, len(r.Atoms)})
	}
	want := []rs{
		{" ", 1, "GLY", 2}, {" ", 2, "ALA", 2}, {" ", 3, "SER", 2}, {"H_NAG", 401, "NAG", 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("chain A residues (-want +got):\n%s", diff)
	}
	last := chains[1].Residues[len(chains[1].Residues)-1]
	if last.Het != cmmn.HetWater {
		t.Error("water not marked as water", last.Het)
	}
	if a := chains[0].Residues[1].Atoms[1]; a.FullName != " CA " || a.Xyz.X != 1 || a.Element != "C" {
		t.Error("atom fields wrong", a)
	}
}

func TestReadModels(t *testing.T) {
	s, err := ReadFile(filepath.Join(testdir, "twomodel.pdb"))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Models) != 2 {
		t.Fatal("wanted 2 models, got", len(s.Models))
	}
	for i, m := range s.Models {
		if m.Index != i || m.Serial != i+1 {
			t.Errorf("model %d has index %d serial %d", i, m.Index, m.Serial)
		}
		if len(m.Chains) != 3 {
			t.Errorf("model %d has %d chains", i, len(m.Chains))
		}
	}
	if x := s.Models[1].Chains[0].Residues[0].Atoms[0].Xyz.X; x != 20 {
		t.Error("second model coordinates wrong, x =", x)
	}
}

// TestNoEndmdl reads models which are not closed by ENDMDL.
func TestNoEndmdl(t *testing.T) {
	atom := "ATOM      1  N   GLY A   1       0.000   2.000   3.000  1.00 20.00           N  \n"
	in := "MODEL        1\n" + atom + "MODEL        2\n" + strings.Replace(atom, "0.000", "9.000", 1) + "END\n"
	s, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Models) != 2 {
		t.Fatal("wanted 2 models, got", len(s.Models))
	}
	if x := s.Models[1].Chains[0].Residues[0].Atoms[0].Xyz.X; x != 9 || s.Models[1].Serial != 2 {
		t.Errorf("second model wrong, serial %d x %g", s.Models[1].Serial, x)
	}
	if n := s.NAtom(); n != 2 {
		t.Error("want 2 atoms, got", n)
	}
}

func TestGzip(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join(testdir, "small.pdb"))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	zw := gzip.NewWriter(&b)
	zw.Write(raw)
	zw.Close()
	fname := filepath.Join(t.TempDir(), "pdb4o5n.ent.gz")
	if err := os.WriteFile(fname, b.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if n := s.NAtom(); n != 14 {
		t.Fatal("wanted 14 atoms, got", n)
	}
}

// TestWriteChains checks that only the chosen chain of the chosen model
// comes out, renumbered and terminated.
func TestWriteChains(t *testing.T) {
	s, err := ReadFile(filepath.Join(testdir, "small.pdb"))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := Write(&b, s, ChainSelect{Model: 0, Chains: []string{"B"}}); err != nil {
		t.Fatal(err)
	}
	want := `ATOM      1  N   GLY B   1       0.000   2.000   3.000  1.00 20.00           N
ATOM      2  CA  GLY B   1       0.000   2.000   3.000  1.00 20.00           C
ATOM      3  N   ALA B   2       1.000   2.000   3.000  1.00 20.00           N
ATOM      4  CA  ALA B   2       1.000   2.000   3.000  1.00 20.00           C
ATOM      5  N   SER B   3       2.000   2.000   3.000  1.00 20.00           N
ATOM      6  CA  SER B   3       2.000   2.000   3.000  1.00 20.00           C
HETATM    7  O   HOH B 501       6.000   6.000   6.000  1.00 20.00           O
TER       8      HOH B 501
END
`
	if diff := cmp.Diff(want, trimLines(b.String())); diff != "" {
		t.Fatalf("Write (-want +got):\n%s", diff)
	}

	b.Reset()
	if err := Write(&b, s, ChainSelect{Model: 1, Chains: []string{"A"}}); err != nil {
		t.Fatal(err)
	}
	if b.String() != "END\n" {
		t.Fatalf("no such model, but got %q", b.String())
	}
}

// TestModelRecords checks MODEL / ENDMDL only appear when more than one
// model is written.
func TestModelRecords(t *testing.T) {
	s, err := ReadFile(filepath.Join(testdir, "twomodel.pdb"))
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []struct {
		sel    Selector
		nModel int
	}{
		{ChainSelect{Model: 1, Chains: []string{"A"}}, 0},
		{All, 2},
	} {
		var b bytes.Buffer
		if err := Write(&b, s, c.sel); err != nil {
			t.Fatal(err)
		}
		nModel, nEnd := 0, 0
		for _, line := range strings.Split(b.String(), "\n") {
			if strings.HasPrefix(line, "MODEL ") {
				nModel++
			}
			if strings.HasPrefix(line, "ENDMDL") {
				nEnd++
			}
		}
		if nModel != c.nModel || nEnd != c.nModel {
			t.Errorf("%T: want %d MODEL / ENDMDL pairs, got %d %d", c.sel, c.nModel, nModel, nEnd)
		}
	}
}

func TestWriteAllModels(t *testing.T) {
	s, err := ReadFile(filepath.Join(testdir, "twomodel.pdb"))
	if err != nil {
		t.Fatal(err)
	}
	fname := filepath.Join(t.TempDir(), "out.pdb")
	if err := WriteFile(fname, s, All); err != nil {
		t.Fatal(err)
	}
	s2, err := ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	ignoreSerial := cmpopts.IgnoreFields(cmmn.Atom{}, "Serial")
	if diff := cmp.Diff(s.Models, s2.Models, ignoreSerial); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}
