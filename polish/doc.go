// Package polish runs the pair-HMM windowed consensus polishing loop
// (spec.md §4.5): split every read alignment into per-window pieces, build
// per-window pileups, train the HMM on a handful of well-behaved windows,
// polish each window in parallel, stitch the results into a new contig,
// rebuild alignments against it, and truncate runaway homopolymer
// insertions.
package polish
