/*
Rmsdsum reads files of per-position RMSD values and boils each one down
to a single RMSD (the root of the mean of the squares). Files whose name
contains ha1 count as the HA1 domain, everything else is HA2. It prints
one block per file, a table and the mean, standard deviation and range
for each domain.

Usage:
	rmsdsum [flags] [directory]

All the .txt files in the directory are read. The first line of each is
a description. Other lines look like "position: value". Values of None
are ignored.

The flags are:
	-p chart.png
		Also draw a bar chart, one bar per file, coloured by domain.
	-t theme.json
		Theme for the chart, as written by the theme command.
	-l logfile
		Where to send chatter.
*/
package main
