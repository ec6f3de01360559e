package ditchgraph

// Config collects the options the focus detector and rewriter read
// (spec.md §6). There is no environment or CLI surface in the core; a
// caller constructs a Config and passes it to DetectFoci/Peel directly,
// mirroring the pileup/snp.Opts / DefaultOpts convention this codebase
// follows throughout.
type Config struct {
	// MinSpanReads is the traversal cutoff: once the total read support
	// at a frontier falls below this, traversal stops.
	MinSpanReads int
	// RepeatResolutionThreshold is the minimum log-likelihood ratio a
	// Focus must exceed to be accepted.
	RepeatResolutionThreshold float64
}

// DefaultConfig matches the reference values used by the original
// haplotype-resolving pipeline this package reimplements.
var DefaultConfig = Config{
	MinSpanReads:              4,
	RepeatResolutionThreshold: 2.0,
}
