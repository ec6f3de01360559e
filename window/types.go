// Package window splits a read Alignment into contig-window-sized pieces
// for per-window polishing, and reconstructs a whole-read Alignment against
// the updated contig once polishing is done (spec.md §4.4).
package window

import "github.com/yosuzuki-lab/jtk-go/contig"

// Piece is the portion of an Alignment lying entirely inside one
// [k*W, (k+1)*W) contig window. Ops starts as the slice of the original
// Alignment's ops that fall in this window; the polishing loop overwrites
// it in place with the window's re-aligned op sequence once the window's
// draft has been polished (spec.md §4.5 step 4).
type Piece struct {
	WindowIndex int
	Query       []byte
	Ops         []contig.Op
}

// Tip is a partial window-edge fragment that does not fill a whole window:
// the query bytes that fall before the first full window (a leading tip)
// or after the last full window (a trailing tip). Its own Ops are not kept
// across a polish round - the joiner always re-derives them by realigning
// Query against the (possibly resized) new contig near the window boundary
// it touches.
type Tip struct {
	// WindowIndex is the window this tip abuts: for a leading tip, the
	// first full window (or, if there are none, the conceptual window
	// the whole alignment would have belonged to); for a trailing tip,
	// one past the last full window.
	WindowIndex int
	Query       []byte
}

// Split is one Alignment's window decomposition: its original contig id,
// orientation, optional leading/trailing tips, and the ordered pieces
// covering its full windows. The polishing loop mutates Pieces[i].Ops in
// place as each window is polished, then calls Join to rebuild the
// Alignment.
type Split struct {
	ContigID    string
	Orientation contig.Orientation
	LeadTip     *Tip
	Pieces      []Piece
	TrailTip    *Tip
}
