package diagnostics

// Kind is the fatal error taxonomy spec.md §7 names. EmptyInput is
// deliberately absent: it is the one non-fatal class (§7: "window
// polishing degrades to 'return draft', alignment distribution may
// produce zero chains"), so it never reaches this package's Fatal path.
type Kind int

const (
	// MalformedInput is a reference to a non-existent unit, a tile range
	// outside a unit, or a query whose declared length disagrees with its
	// bytes. Fatal on load; no recovery.
	MalformedInput Kind = iota
	// InvariantViolation is a post-condition of a graph mutation or an
	// alignment join failing. Fatal; indicates a bug.
	InvariantViolation
	// NumericEdge is a likelihood that came out NaN or non-finite. Fatal;
	// the scorer asserts finiteness after every computation.
	NumericEdge
)

func (k Kind) String() string {
	switch k {
	case MalformedInput:
		return "malformed input"
	case InvariantViolation:
		return "invariant violation"
	case NumericEdge:
		return "numeric edge"
	default:
		return "unknown"
	}
}
