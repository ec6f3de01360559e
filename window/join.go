package window

import (
	"github.com/grailbio/base/errors"
	"github.com/yosuzuki-lab/jtk-go/contig"
	"github.com/yosuzuki-lab/jtk-go/window/editalign"
)

// Join reconstructs a whole-read Alignment from a Split whose Pieces have
// already been overwritten with their post-polish op sequences. offsets is
// a prefix-sum array of the new, post-polish per-window contig lengths:
// offsets[k] is window k's start position in newContig, and offsets must
// carry one entry past the highest window index s references so every
// piece/tip's end boundary is available too (spec.md §4.4, §4.5 step 5).
func Join(s Split, newContig []byte, offsets []int) (*contig.Alignment, error) {
	if s.LeadTip != nil && len(s.Pieces) == 0 && s.TrailTip == nil {
		return joinContained(s, newContig, offsets)
	}

	var ops []contig.Op
	var query []byte
	contigStart := -1

	if s.LeadTip != nil {
		pieceStart := offsets[s.LeadTip.WindowIndex]
		tipOps, start := alignLeading(s.LeadTip.Query, newContig[:pieceStart])
		ops = append(ops, tipOps...)
		query = append(query, s.LeadTip.Query...)
		contigStart = start
	}

	for _, p := range s.Pieces {
		if contigStart == -1 {
			contigStart = offsets[p.WindowIndex]
		}
		ops = append(ops, p.Ops...)
		query = append(query, p.Query...)
	}

	contigEnd := -1
	if s.TrailTip != nil {
		pieceEnd := offsets[s.TrailTip.WindowIndex]
		if contigStart == -1 {
			contigStart = pieceEnd
		}
		tipOps, end := alignTrailing(s.TrailTip.Query, newContig[pieceEnd:])
		ops = append(ops, tipOps...)
		query = append(query, s.TrailTip.Query...)
		contigEnd = pieceEnd + end
	}

	if contigStart == -1 {
		return nil, errors.E(errors.Invalid, "window: split has neither tips nor pieces, nothing to join")
	}
	if contigEnd == -1 {
		last := s.Pieces[len(s.Pieces)-1]
		contigEnd = offsets[last.WindowIndex+1]
	}

	a := &contig.Alignment{
		ContigID:    s.ContigID,
		ContigStart: contigStart,
		ContigEnd:   contigEnd,
		Query:       query,
		Ops:         ops,
		Orientation: s.Orientation,
	}
	if err := a.CheckInvariants(); err != nil {
		return nil, err
	}
	return a, nil
}

// joinContained handles the degenerate split that never reached a full
// window: the whole read is re-aligned directly (both ends floating, no
// deletion-padding) against the single window's own new draft, mirroring
// "Contained alignment" in the original consensus stitcher.
func joinContained(s Split, newContig []byte, offsets []int) (*contig.Alignment, error) {
	k := s.LeadTip.WindowIndex
	windowStart, windowEnd := offsets[k], offsets[k+1]
	query := s.LeadTip.Query
	ops, start, end := editalign.Infix(query, newContig[windowStart:windowEnd])
	a := &contig.Alignment{
		ContigID:    s.ContigID,
		ContigStart: windowStart + start,
		ContigEnd:   windowStart + end,
		Query:       append([]byte(nil), query...),
		Ops:         ops,
		Orientation: s.Orientation,
	}
	if err := a.CheckInvariants(); err != nil {
		return nil, err
	}
	return a, nil
}

// alignLeading re-anchors a leading tip's query against a local prefix of
// the new contig ending exactly at pieceStart: infix-aligned against the
// last 2*len(query) bytes before the boundary, with any residual gap
// between the match's natural end and the boundary filled by Deletion ops
// so the tip's contig contribution always reaches the boundary exactly
// (never leaves a hole between the tip and the first full piece).
func alignLeading(query, seg []byte) (ops []contig.Op, contigStart int) {
	boundary := len(seg)
	if len(query) == 0 {
		return nil, boundary
	}
	window := seg
	padded := 2 * len(query)
	if padded < len(window) {
		window = window[len(window)-padded:]
	}
	windowStart := boundary - len(window)
	if len(window) == 0 {
		return repeatOp(contig.Insertion, len(query)), boundary
	}
	tipOps, start, end := editalign.Infix(query, window)
	tipOps = append(tipOps, repeatOp(contig.Deletion, len(window)-end)...)
	return tipOps, windowStart + start
}

// alignTrailing re-anchors a trailing tip's query against a local suffix of
// the new contig starting exactly at pieceEnd: prefix-aligned (query
// anchored at seg[0]) against the next 2*len(query) bytes, with the
// trailing end left floating since nothing downstream needs to line up
// with it.
func alignTrailing(query, seg []byte) (ops []contig.Op, consumed int) {
	if len(query) == 0 {
		return nil, 0
	}
	window := seg
	padded := 2 * len(query)
	if padded < len(window) {
		window = window[:padded]
	}
	if len(window) == 0 {
		return repeatOp(contig.Insertion, len(query)), 0
	}
	tipOps, end := editalign.Prefix(query, window)
	return tipOps, end
}

func repeatOp(op contig.Op, n int) []contig.Op {
	if n <= 0 {
		return nil
	}
	ops := make([]contig.Op, n)
	for i := range ops {
		ops[i] = op
	}
	return ops
}
