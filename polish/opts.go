package polish

// Opts collects the polishing loop's tunables (spec.md §6). There is no
// environment or CLI surface in the core; a caller constructs an Opts and
// passes it to Run directly, mirroring the pileup/snp.Opts / DefaultOpts
// convention this codebase follows throughout.
type Opts struct {
	// WindowSize is the contig window width windows are cut to (spec.md
	// §4.4/§4.5).
	WindowSize int
	// Radius is the guided-alignment band passed to the HMM's FitGuided
	// and PolishGuided.
	Radius int
	// RoundNum is how many (split, train, polish, join, truncate) rounds
	// to run.
	RoundNum int
	// MinCoverage is the minimum query count a window needs before it is
	// polished at all; below it, the draft is kept as-is.
	MinCoverage int
	// Seed is unused by polish directly today (chain sampling's RNG lives
	// in align.Config) but is carried here so a caller's single Opts value
	// can seed every stage of the pipeline it assembles, matching
	// spec.md §6's single `seed` configuration option.
	Seed int64
}

// DefaultOpts matches the reference values spec.md §6 lists.
var DefaultOpts = Opts{
	WindowSize:  2000,
	Radius:      100,
	RoundNum:    2,
	MinCoverage: 3,
}

// inBandFrac is the +/-20% band spec.md §4.5 step 4 uses both to classify
// a query as in-band/out-of-band against the window's length median, and
// to decide whether the window's own draft length is close enough to that
// median to polish in place rather than bootstrap from the queries.
const inBandFrac = 0.2

// truncateLen is TRUNCATE_LEN from spec.md §4.5 step 6.
const truncateLen = 5

// fixTime is FIX_TIME from spec.md §4.5 step 4.
const fixTime = 1
