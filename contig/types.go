package contig

// Orientation is the strand a tile, node, or read alignment lies on.
type Orientation uint8

const (
	Forward Orientation = iota
	Reverse
)

func (o Orientation) String() string {
	if o == Reverse {
		return "-"
	}
	return "+"
}

// Op is one edit operation in an Alignment's op sequence.
type Op uint8

const (
	Match Op = iota
	Mismatch
	Insertion
	Deletion
)

func (o Op) String() string {
	switch o {
	case Match:
		return "M"
	case Mismatch:
		return "X"
	case Insertion:
		return "I"
	case Deletion:
		return "D"
	default:
		return "?"
	}
}

// Tile maps a contiguous [ContigStart, ContigEnd) range of a contig to a
// specific (Unit, Cluster, Orientation) and that unit's own internal
// coordinate range [UnitStart, UnitEnd). Tiles are the skeleton a contig's
// encoding is built from.
type Tile struct {
	ContigStart, ContigEnd int
	Unit, Cluster          int
	Orientation             Orientation
	UnitStart, UnitEnd      int
}

// Len reports the tile's span on the contig.
func (t Tile) Len() int { return t.ContigEnd - t.ContigStart }

// Segment is one contig draft: a byte string plus its tile encoding.
type Segment struct {
	ID       string
	Sequence []byte
	Tiles    []Tile
}

// Len is the segment's sequence length.
func (s *Segment) Len() int { return len(s.Sequence) }

// EncodedNode is one node of an encoded read: the unit/cluster it was
// assigned to by upstream clustering, its orientation and position within
// the raw read, and the cigar describing how the raw bases align to that
// unit's internal coordinates.
type EncodedNode struct {
	Unit, Cluster int
	Forward       bool
	Position      int // offset from the start of the raw read
	QueryLength   int
	Cigar         string
}

// EncodedRead is a read after unit encoding: an ordered list of nodes plus
// the raw bases they were derived from. Both core loops consume this
// read-only.
type EncodedRead struct {
	ID        string
	RawLength int
	Nodes     []EncodedNode
	Raw       []byte
}

// Alignment is a read's placement against one contig: the contig range it
// covers, the query bytes, and the op sequence relating them.
//
// Invariant (spec.md §3, checked by CheckInvariants): the number of ops that
// are not Insertion equals ContigEnd-ContigStart, and the number of ops that
// are not Deletion equals len(Query).
type Alignment struct {
	ContigID               string
	ContigStart, ContigEnd int
	Query                  []byte
	Ops                    []Op
	Orientation            Orientation
}

// ContigSpan is the number of ops that consume a contig base.
func (a *Alignment) ContigSpan() int {
	n := 0
	for _, op := range a.Ops {
		if op != Insertion {
			n++
		}
	}
	return n
}

// QueryConsumed is the number of ops that consume a query base.
func (a *Alignment) QueryConsumed() int {
	n := 0
	for _, op := range a.Ops {
		if op != Deletion {
			n++
		}
	}
	return n
}
