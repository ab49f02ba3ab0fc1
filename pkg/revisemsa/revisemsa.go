// 16 Oct 2025
// Swap the H3, H5 and H7 sequences of a multiple sequence alignment for
// versions from a structural alignment. The structural rows are given to
// mafft as a seed, so their alignment is kept, and everything else is
// realigned onto them.

package revisemsa

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andrew-torda/matrix"

	"github.com/andrew-torda/hastruct/pkg/seq"
	"github.com/andrew-torda/hastruct/pkg/seq/common"
)

// Seed says which column of the structural alignment becomes which
// sequence.
type Seed struct {
	Column  string // in the structural alignment csv file
	Name    string // sequence name in the output
	Subtype string // like H3N2
}

// Seeds in the order they are tried and written.
var Seeds = []Seed{
	{"h3_wt_aa", "A/Massachusetts/18/2022/H3N2", "H3N2"},
	{"h5_wt_aa", "A/American_Wigeon/South_Carolina/USDA-000345-001/2021/H5N1", "H5N1"},
	{"h7_wt_aa", "A/Anhui/1/2013/H7N9", "H7N9"},
}

// ReadSeedAln reads the structural alignment. Each seed column becomes
// a row of the matrix, one residue per csv line. Empty cells are gaps.
func ReadSeedAln(r io.Reader, seeds []Seed) (*matrix.BMatrix2d, error) {
	rdr := csv.NewReader(r)
	recs, err := rdr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty structural alignment")
	}
	head := recs[0]
	head[0] = strings.TrimPrefix(head[0], "\ufeff")
	cols := make([]int, len(seeds))
	for i, sd := range seeds {
		cols[i] = -1
		for j, h := range head {
			if strings.TrimSpace(h) == sd.Column {
				cols[i] = j
				break
			}
		}
		if cols[i] == -1 {
			return nil, fmt.Errorf("no column called \"%s\"", sd.Column)
		}
	}
	body := recs[1:]
	aln := matrix.NewBMatrix2d(len(seeds), len(body))
	for irec, rec := range body {
		for i, icol := range cols {
			cell := strings.TrimSpace(rec[icol])
			switch {
			case common.IsNA(cell):
				aln.Mat[i][irec] = common.GapChar
			case len(cell) == 1:
				aln.Mat[i][irec] = cell[0]
			default:
				return nil, fmt.Errorf("line %d, column %s: want one residue, got \"%s\"",
					irec+2, seeds[i].Column, cell)
			}
		}
	}
	return aln, nil
}

// ReadSeedFile reads the structural alignment from a file.
func ReadSeedFile(fname string, seeds []Seed) (*matrix.BMatrix2d, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	aln, err := ReadSeedAln(fp, seeds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return aln, nil
}

// SeedSeqs turns the rows of the seed alignment into named sequences.
func SeedSeqs(aln *matrix.BMatrix2d, seeds []Seed) []seq.Seq {
	seqs := make([]seq.Seq, len(seeds))
	for i, sd := range seeds {
		seqs[i] = seq.NewSeq(sd.Name, append([]byte(nil), aln.Mat[i]...))
	}
	return seqs
}

// HPart takes a name like A/Anhui/1/2013/H7N9 and returns H7, the bit
// of the last field before any N.
func HPart(id string) string {
	sub := id[strings.LastIndexByte(id, '/')+1:]
	if i := strings.IndexByte(sub, 'N'); i != -1 {
		return sub[:i]
	}
	return sub
}

// Match finds the first seed whose subtype starts with the H part of
// the id. An empty H part matches nothing.
func Match(id string, seeds []Seed) (int, bool) {
	h := HPart(id)
	if h == "" {
		return -1, false
	}
	for i, sd := range seeds {
		if strings.HasPrefix(sd.Subtype, h) {
			return i, true
		}
	}
	return -1, false
}

// Split sorts an alignment into sequences to keep, with gaps taken out
// and only the id left as a name, and the ids of sequences a seed will
// replace. replaces[i] is the seed index for replaced[i].
func Split(msa []seq.Seq, seeds []Seed) (keep []seq.Seq, replaced []string, replaces []int) {
	for _, s := range msa {
		id := s.ID()
		if i, ok := Match(id, seeds); ok {
			replaced = append(replaced, id)
			replaces = append(replaces, i)
			continue
		}
		keep = append(keep, seq.NewSeq(id, s.Ungapped()))
	}
	return keep, replaced, replaces
}

// UnSeed takes out the _seed_ that mafft puts at the start of seed
// sequence names.
func UnSeed(b []byte) []byte {
	return []byte(strings.ReplaceAll(string(b), ">_seed_", ">"))
}
