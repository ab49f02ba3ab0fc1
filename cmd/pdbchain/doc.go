/*
Pdbchain writes some chains of one model of a PDB file to a new file.
Atoms are renumbered from 1 and each chain ends with a TER record.
The input may be gzipped.

Usage:
	pdbchain -i in.pdb -o out.pdb -c A[,B] [-c C] [-m model]
*/
package main
