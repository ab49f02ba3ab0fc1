// 16 Oct 2025

/*
Revisemsa replaces the H3, H5 and H7 sequences of an alignment with the
versions from a structural alignment and realigns everything else to
them.

The structural alignment is a csv file with columns h3_wt_aa, h5_wt_aa
and h7_wt_aa, one residue per line. Empty cells are gaps. A sequence in
the input alignment is replaced if the subtype at the end of its name
(H7N9 in A/Anhui/1/2013/H7N9) has the same H number as a structure.
The other sequences lose their gaps and are given to mafft with the
structural sequences as a seed, so the structural alignment is not
changed.

Usage:
	revisemsa [flags] structural_alignment.csv alignment.fasta out.fasta

The flags are:
	-b binary
		mafft executable, default mafft from the PATH
	-l logfile
		where to send chatter
*/
package main
