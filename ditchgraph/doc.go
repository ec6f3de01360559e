// Package ditchgraph implements the bidirected assembly graph ("ditch
// graph") and the repeat-resolution loop that peels it apart using
// long-read evidence: focus detection (focus.go), the null/alt
// log-likelihood scorer (scorer.go), and the graph rewriter (rewriter.go),
// orchestrated round-by-round in peel.go.
//
// The graph is an arena of nodes addressed by dense integer indices
// (NodeIndex); edges store endpoint indices rather than pointers, so that
// cycles in the bidirected topology cost nothing to represent. Deletion is
// logical (a tombstone bit) so that indices stay stable across a round -
// see Design Notes in spec.md §9.
package ditchgraph
