// Package contig holds the data shared by the repeat-resolution and
// polishing cores: encoded reads, contig drafts and their tile skeletons,
// and the Alignment type that both the chain distributor and the window
// splitter/joiner operate on.
//
// Nothing in this package mutates its inputs; encoded reads and contig
// drafts are produced upstream (unit selection, read clustering) and are
// treated as read-only here.
package contig
