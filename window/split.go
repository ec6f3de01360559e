package window

import "github.com/yosuzuki-lab/jtk-go/contig"

// ceilDiv is the smallest integer k with k*w >= a, for a >= 0, w > 0.
func ceilDiv(a, w int) int {
	return (a + w - 1) / w
}

// Split cuts a into per-window pieces of width windowSize, plus whatever
// leading/trailing tips do not fill a whole window (spec.md §4.4). Tips
// keep only their query bytes: their op sequence against the (possibly
// resized) new contig is always re-derived by Join, never carried across a
// polish round.
func Split(a *contig.Alignment, windowSize int) Split {
	A, B := a.ContigStart, a.ContigEnd

	kMin := ceilDiv(A, windowSize)
	kMax := B/windowSize - 1 // largest k with (k+1)*windowSize <= B

	var leadEnd, trailStart int
	if kMin > kMax {
		// No full window fits in [A, B) at all: the whole alignment is
		// one leading tip.
		leadEnd, trailStart = B, B
	} else {
		leadEnd = kMin * windowSize
		trailStart = (kMax + 1) * windowSize
	}

	s := Split{ContigID: a.ContigID, Orientation: a.Orientation}
	if leadEnd > A {
		s.LeadTip = &Tip{WindowIndex: kMin}
		if kMin > kMax {
			// No full window: the tip names the window its start lies in.
			s.LeadTip.WindowIndex = A / windowSize
		}
	}
	if trailStart < B {
		s.TrailTip = &Tip{WindowIndex: kMax + 1}
	}
	var pieces []Piece
	if kMin <= kMax {
		pieces = make([]Piece, kMax-kMin+1)
		for i := range pieces {
			pieces[i].WindowIndex = kMin + i
		}
	}

	cpos, qpos := A, 0
	for _, op := range a.Ops {
		switch {
		case cpos < leadEnd:
			if op != contig.Deletion {
				s.LeadTip.Query = append(s.LeadTip.Query, a.Query[qpos])
			}
		case cpos >= trailStart:
			if op != contig.Deletion {
				s.TrailTip.Query = append(s.TrailTip.Query, a.Query[qpos])
			}
		default:
			p := &pieces[cpos/windowSize-kMin]
			p.Ops = append(p.Ops, op)
			if op != contig.Deletion {
				p.Query = append(p.Query, a.Query[qpos])
			}
		}
		if op != contig.Insertion {
			cpos++
		}
		if op != contig.Deletion {
			qpos++
		}
	}

	s.Pieces = pieces
	return s
}
