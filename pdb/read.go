package pdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrew-torda/hastruct/pdb/cmmn"
)

const lineLen = 80 // we pad short lines to this

// resKey identifies a residue within a chain
type resKey struct {
	het   string
	num   int
	icode byte
}

// builder keeps track of where we are while reading records.
type builder struct {
	s      *cmmn.Structure
	mdl    *cmmn.Model
	chains map[string]int   // chain ID to index in mdl.Chains
	resNdx []map[resKey]int // per chain, residue key to index
	nline  int              // line number for error messages
}

func (b *builder) errorf(format string, a ...interface{}) error {
	return fmt.Errorf("line %d: %s", b.nline, fmt.Sprintf(format, a...))
}

// newModel starts a model. serial is what came from a MODEL record.
func (b *builder) newModel(serial int) {
	b.s.Models = append(b.s.Models, cmmn.Model{Index: len(b.s.Models), Serial: serial})
	b.mdl = &b.s.Models[len(b.s.Models)-1]
	b.chains = make(map[string]int)
	b.resNdx = nil
}

// getOrMakeChain returns the index of a chain in the current model.
func (b *builder) getOrMakeChain(id string) int {
	if i, ok := b.chains[id]; ok {
		return i
	}
	b.mdl.Chains = append(b.mdl.Chains, cmmn.Chain{ChainID: id})
	b.resNdx = append(b.resNdx, make(map[resKey]int))
	i := len(b.mdl.Chains) - 1
	b.chains[id] = i
	return i
}

// field returns columns [from, to) of a line, trimmed, counting
// from zero.
func field(line string, from, to int) string {
	return strings.TrimSpace(line[from:to])
}

func parseF32(s string) (float32, error) {
	x, err := strconv.ParseFloat(s, 32)
	return float32(x), err
}

// atom digests an ATOM or HETATM record.
func (b *builder) atom(line string, hetatm bool) error {
	if b.mdl == nil {
		b.newModel(0)
	}
	resName := field(line, 17, 20)
	snum := field(line, 22, 26)
	num, err := strconv.Atoi(snum)
	if err != nil {
		return b.errorf("bad residue number %q", snum)
	}
	var xyz cmmn.Xyz
	for i, p := range []*float32{&xyz.X, &xyz.Y, &xyz.Z} {
		s := field(line, 30+8*i, 38+8*i)
		if *p, err = parseF32(s); err != nil {
			return b.errorf("bad coordinate %q", s)
		}
	}
	a := cmmn.Atom{
		FullName:  line[12:16],
		AltLoc:    line[16],
		Xyz:       xyz,
		Occupancy: 1,
		SegID:     field(line, 72, 76),
		Element:   field(line, 76, 78),
		Charge:    field(line, 78, 80),
	}
	a.Serial, _ = strconv.Atoi(field(line, 6, 11)) // hybrid-36 serials are not numbers
	if s := field(line, 54, 60); s != "" {
		if a.Occupancy, err = parseF32(s); err != nil {
			return b.errorf("bad occupancy %q", s)
		}
	}
	if s := field(line, 60, 66); s != "" {
		if a.BFactor, err = parseF32(s); err != nil {
			return b.errorf("bad B-factor %q", s)
		}
	}

	chainID := line[21:22]
	ic := b.getOrMakeChain(chainID)
	chain := &b.mdl.Chains[ic]
	key := resKey{het: cmmn.HetFlag(resName, hetatm), num: num, icode: line[26]}
	ir, ok := b.resNdx[ic][key]
	if !ok {
		chain.Residues = append(chain.Residues, cmmn.Residue{
			Het: key.het, Num: num, ICode: key.icode, Name: resName})
		ir = len(chain.Residues) - 1
		b.resNdx[ic][key] = ir
	}
	chain.Residues[ir].Atoms = append(chain.Residues[ir].Atoms, a)
	return nil
}

// Read reads PDB format records from r. Only MODEL, ENDMDL, ATOM, HETATM,
// HEADER and END are looked at. Atoms before any MODEL record go into
// model 0.
func Read(r io.Reader) (*cmmn.Structure, error) {
	b := builder{s: new(cmmn.Structure)}
	scnnr := bufio.NewScanner(r)
	scnnr.Buffer(make([]byte, 0, 4096), 1024*1024)

loop:
	for scnnr.Scan() {
		b.nline++
		line := scnnr.Text()
		if len(line) < lineLen {
			line += strings.Repeat(" ", lineLen-len(line))
		}
		switch strings.TrimSpace(line[0:6]) {
		case "HEADER":
			b.s.ID = strings.ToLower(field(line, 62, 66))
		case "MODEL": // a missing ENDMDL before it does not matter
			serial, _ := strconv.Atoi(field(line, 10, 14))
			b.newModel(serial)
		case "ENDMDL":
			b.mdl = nil
		case "ATOM":
			if err := b.atom(line, false); err != nil {
				return nil, err
			}
		case "HETATM":
			if err := b.atom(line, true); err != nil {
				return nil, err
			}
		case "END":
			break loop
		}
	}
	if err := scnnr.Err(); err != nil {
		return nil, err
	}
	if b.s.NAtom() == 0 {
		return nil, errors.New("no atoms found")
	}
	return b.s, nil
}
