/*
Defattr writes chimera / chimeraX attribute files from a table of
per-site values.

The structure is a haemagglutinin trimer in PDB format. Chains B, D and
F hold the second domain (HA2), whose residues are numbered from 1 in
the file but from 330 in the site numbering of the table. Each csv file
needs a struct_site column and a column of values. A residue gets a
line in the output only if its site is in the table.

Usage:
	defattr [flags] structure.pdb stats.csv [name=stats2.csv ...]

The flags are:
	-n name
		Attribute name. It is also the name of the csv column with
		the values. A csv file given as name=file.csv uses its own
		name instead.
	-o outfile
		Output file. Only allowed with one csv file. By default,
		stats.csv becomes stats.defattr.
	-l logfile
		Where to send chatter. stdout and stderr are understood.
*/
package main
