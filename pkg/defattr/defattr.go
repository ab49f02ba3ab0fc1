// 14 Oct 2025
// Map a per-site number like Jensen-Shannon divergence onto an HA
// structure and write it as a chimera attribute file.
// The structure has chains A-F. A, C and E are HA1, B, D and F are HA2.
// HA2 residues are numbered from 1 in the file, but in the H3 reference
// numbering the statistics use, HA2 follows on from HA1, so we add an
// offset.

package defattr

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/andrew-torda/hastruct/pdb"
	"github.com/andrew-torda/hastruct/pdb/cmmn"
	"github.com/andrew-torda/hastruct/pkg/seq/common"
)

const (
	Offset    = 329 // added to HA2 residue numbers
	Threshold = 330 // sites from here up are HA2 sites
	SiteCol   = "struct_site"
)

// offsetChains are the HA2 chains
var offsetChains = map[string]bool{"B": true, "D": true, "F": true}

// IsOffsetChain says if sites on a chain get the HA2 offset.
func IsOffsetChain(chainID string) bool { return offsetChains[chainID] }

// ChainSites is a chain and its site numbers, in the order residues
// appear in the structure.
type ChainSites struct {
	ChainID string
	Sites   []int
}

// ChainSiteMap keeps chains in the order we first saw them.
type ChainSiteMap []ChainSites

// Get returns the sites for a chain and whether or not the chain is there.
func (m ChainSiteMap) Get(chainID string) ([]int, bool) {
	for _, cs := range m {
		if cs.ChainID == chainID {
			return cs.Sites, true
		}
	}
	return nil, false
}

// ChainSitesFrom goes through every model and chain of a structure and
// collects the numbers of the standard residues. Ligands and water are
// left out. If a chain appears in more than one model, the last model
// wins, but the chain stays where it was first seen.
func ChainSitesFrom(s *cmmn.Structure) ChainSiteMap {
	var m ChainSiteMap
	where := make(map[string]int)
	for im := range s.Models {
		for ic := range s.Models[im].Chains {
			c := &s.Models[im].Chains[ic]
			add := 0
			if IsOffsetChain(c.ChainID) {
				add = Offset
			}
			sites := make([]int, 0, len(c.Residues))
			for ir := range c.Residues {
				if r := &c.Residues[ir]; r.Std() {
					sites = append(sites, r.Num+add)
				}
			}
			if i, ok := where[c.ChainID]; ok {
				m[i].Sites = sites
			} else {
				where[c.ChainID] = len(m)
				m = append(m, ChainSites{ChainID: c.ChainID, Sites: sites})
			}
		}
	}
	return m
}

// ReadChainSites reads a structure file and returns its chain site map.
func ReadChainSites(fname string) (ChainSiteMap, error) {
	s, err := pdb.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return ChainSitesFrom(s), nil
}

// LocalResidue undoes the offset, giving the residue number as it is
// in the structure file.
func LocalResidue(site int) int {
	if site < Threshold {
		return site
	}
	return site - Offset
}

// StatTable maps a site, exactly as written in the struct_site column,
// to a value.
type StatTable map[string]float64

// colNdx finds a column in the heading line
func colNdx(head []string, name string) (int, error) {
	for i, h := range head {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no column called \"%s\"", name)
}

// ReadStatTable reads csv data with a header line. It wants a struct_site
// column and a column called name. A row with any missing cell is dropped,
// even if the missing cell is in some other column. If a site comes
// twice, the first one wins.
func ReadStatTable(r io.Reader, name string) (StatTable, error) {
	rdr := csv.NewReader(r)
	head, err := rdr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("empty csv input")
		}
		return nil, err
	}
	head[0] = strings.TrimPrefix(head[0], "\ufeff") // excel puts a BOM on utf-8 csv files
	iSite, err := colNdx(head, SiteCol)
	if err != nil {
		return nil, err
	}
	iVal, err := colNdx(head, name)
	if err != nil {
		return nil, err
	}
	tbl := make(StatTable)
	for nrow := 2; ; nrow++ {
		rec, err := rdr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		dropped := false
		for _, cell := range rec {
			if common.IsNA(cell) {
				dropped = true
				break
			}
		}
		if dropped {
			continue
		}
		site := rec[iSite]
		if _, ok := tbl[site]; ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[iVal]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: column %s: %w", nrow, name, err)
		}
		tbl[site] = v
	}
	return tbl, nil
}

// ReadStatFile is ReadStatTable on a named file.
func ReadStatFile(fname, name string) (StatTable, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	tbl, err := ReadStatTable(fp, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return tbl, nil
}

// Write writes a chimera attribute file. For every chain and site, if the
// site is in the table, we write the chain, the residue number as it is in
// the structure and the value. Sites not in the table are quietly skipped.
// It returns the number of residues written.
func Write(w io.Writer, attname string, chainMap ChainSiteMap, tbl StatTable) (int, error) {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "attribute: %s\nmatch mode: 1-to-1\nrecipient: residues\n", attname)
	n := 0
	for _, cs := range chainMap {
		for _, site := range cs.Sites {
			v, ok := tbl[strconv.Itoa(site)]
			if !ok {
				continue
			}
			fmt.Fprintf(bw, "\t/%s:%d\t%.6f\n", cs.ChainID, LocalResidue(site), v)
			n++
		}
	}
	return n, bw.Flush()
}

// WriteFile reads the csv file infile, takes values from the column
// attname and writes them to outfile, which is overwritten.
func WriteFile(infile, outfile, attname string, chainMap ChainSiteMap) (int, error) {
	tbl, err := ReadStatFile(infile, attname)
	if err != nil {
		return 0, err
	}
	fp, err := os.Create(outfile)
	if err != nil {
		return 0, fmt.Errorf("attribute output file %v: %w", outfile, err)
	}
	n, err := Write(fp, attname, chainMap, tbl)
	if e := fp.Close(); err == nil {
		err = e
	}
	return n, err
}
