package align

import (
	"github.com/yosuzuki-lab/jtk-go/biosimd"
	"github.com/yosuzuki-lab/jtk-go/contig"
	"github.com/yosuzuki-lab/jtk-go/window/editalign"
)

// RenderChain turns a selected Chain into an Alignment: the query is the
// read's raw bases spanning the chain's read-tile range (reverse-
// complemented first if the chain lies on the reverse strand), aligned
// globally against the contig bytes spanning the chain's contig-tile range.
// Reverse-complementing is done via biosimd.ReverseComp8Inplace, the
// teacher's own ASCII revcomp routine, rather than a freshly hand-rolled
// loop.
func RenderChain(read *contig.EncodedRead, seg *contig.Segment, c Chain) (*contig.Alignment, error) {
	readStart, readEnd := c.ReadSpan()
	contigStart, contigEnd := c.ContigSpan()

	query := make([]byte, readEnd-readStart)
	copy(query, read.Raw[readStart:readEnd])
	orientation := orientationOf(read, c)
	if orientation == contig.Reverse {
		biosimd.ReverseComp8Inplace(query)
	}

	target := seg.Sequence[contigStart:contigEnd]
	ops := editalign.Global(query, target)

	a := &contig.Alignment{
		ContigID:    seg.ID,
		ContigStart: contigStart,
		ContigEnd:   contigEnd,
		Query:       query,
		Ops:         ops,
		Orientation: orientation,
	}
	if err := a.CheckInvariants(); err != nil {
		return nil, err
	}
	return a, nil
}
