// Package pdb/cmmn has common definitions for coordinates and
// pdb files. A Structure holds models, a model holds chains, a chain holds
// residues and a residue holds atoms. Everything is kept in file order.
package cmmn

import (
	"fmt"
)

type Xyz struct{ X, Y, Z float32 } // xyz's are coordinates

// Atom is one ATOM or HETATM record.
type Atom struct {
	Serial    int
	FullName  string // columns 13-16, with the spacing as in the file
	AltLoc    byte
	Xyz       Xyz
	Occupancy float32
	BFactor   float32
	SegID     string
	Element   string
	Charge    string
}

// Hetero flags for residues. Anything that came from a HETATM record
// and is not water gets "H_" and its residue name.
const (
	HetStd   = " "
	HetWater = "W"
)

// HetFlag returns the hetero flag for a residue name from an ATOM
// (hetatm false) or HETATM record.
func HetFlag(resName string, hetatm bool) string {
	if !hetatm {
		return HetStd
	}
	switch resName {
	case "HOH", "WAT", "DOD":
		return HetWater
	}
	return "H_" + resName
}

// Residue is identified within a chain by its hetero flag, number and
// insertion code.
type Residue struct {
	Het   string // HetStd, HetWater or H_xxx
	Num   int    // residue number from the file
	ICode byte   // insertion code, ' ' if none
	Name  string // ALA, GLY, HOH...
	Atoms []Atom
}

// Std says if this is a normal residue from ATOM records.
func (r *Residue) Std() bool { return r.Het == HetStd }

// String gives something like "GLY 12A"
func (r *Residue) String() string {
	if r.ICode == ' ' {
		return fmt.Sprintf("%s %d", r.Name, r.Num)
	}
	return fmt.Sprintf("%s %d%c", r.Name, r.Num, r.ICode)
}

// A simple structure for one chain within a model
type Chain struct {
	ChainID  string // Name, like "A" or "B"
	Residues []Residue
}

// Model is one MODEL ... ENDMDL block. Index counts from zero in the
// order models appear in the file. Serial is the number written in the
// MODEL record, or zero if there was no MODEL record.
type Model struct {
	Index  int
	Serial int
	Chains []Chain
}

// Structure is everything we read from one file.
type Structure struct {
	ID     string
	Models []Model
}

// This is obviously just a slice of chains, but we have to define a type
// if we want to define a method on it
type ChnSl []Chain

// ChainNames returns a slice with the names of the chains.
func (chns ChnSl) ChainNames() []string {
	ret := make([]string, len(chns))
	for i, k := range chns {
		ret[i] = k.ChainID
	}
	return ret
}

// NAtom counts the atoms in a chain.
func (c *Chain) NAtom() int {
	n := 0
	for i := range c.Residues {
		n += len(c.Residues[i].Atoms)
	}
	return n
}

// NAtom counts the atoms in all models of a structure.
func (s *Structure) NAtom() int {
	n := 0
	for i := range s.Models {
		for j := range s.Models[i].Chains {
			n += s.Models[i].Chains[j].NAtom()
		}
	}
	return n
}
