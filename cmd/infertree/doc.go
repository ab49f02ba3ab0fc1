// 15 Oct 2025

/*
Infertree builds a maximum likelihood tree with iqtree.

It reads the alignment to check it, runs iqtree with the output prefix
taken from the tree file name, shows the end of iqtree's output and the
model it picked, then writes the tree in Newick format and draws it.
Labels of internal nodes are removed unless they are support values.

Usage:
	infertree [flags] alignment.fasta out.newick

The flags are:
	-b binary
		iqtree executable, default iqtree from the PATH
	-m model
		default TEST, which lets iqtree pick
	-B n
		ultrafast bootstrap replicates, default 1000, 0 turns it off
	-T threads
		default AUTO
	-w width
		width of the ascii tree, taken from the terminal if not set
	-l logfile
		where to send chatter
*/
package main
