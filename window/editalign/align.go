// Package editalign provides the infix/prefix/global dynamic-programming
// alignments the window joiner and bootstrap realignment use to re-derive
// an Alignment's op sequence against an updated contig. It generalizes
// util/distance.go's Levenshtein traceback-matrix technique (row-major
// edit-distance matrix, per-cell operation tagging) from a plain distance
// computation to full Match/Mismatch/Insertion/Deletion op output, and
// from full-string alignment to infix/prefix alignment against a local
// slice of the target. Every variant fills the full, unbanded DP matrix.
package editalign

import "github.com/yosuzuki-lab/jtk-go/contig"

const (
	matchCost    = 0
	mismatchCost = 1
	indelCost    = 1
)

// matrix is a row-major (len(query)+1) x (len(target)+1) edit-distance
// table, mirroring util/distance.go's matrix type.
type matrix struct {
	rows, cols int
	data       []int
}

func newMatrix(rows, cols int) matrix {
	return matrix{rows: rows, cols: cols, data: make([]int, rows*cols)}
}

func (m matrix) at(i, j int) int      { return m.data[i*m.cols+j] }
func (m matrix) set(i, j, v int)      { m.data[i*m.cols+j] = v }

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// mode controls the boundary conditions of the DP: which edges of the
// matrix are "free" (zero-cost) rather than penalized as leading/trailing
// gaps.
type mode struct {
	freeTargetPrefix bool // row 0 can be entered from any column at zero cost
	freeTargetSuffix bool // the minimum in the last row may be taken from any column
}

var (
	modeGlobal = mode{}
	modeInfix  = mode{freeTargetPrefix: true, freeTargetSuffix: true}
	modePrefix = mode{freeTargetSuffix: true} // query is anchored at target[0]; target's tail may go unconsumed
)

// fill runs the DP and returns the filled matrix plus the column at which
// the optimal alignment ends (== len(target) unless freeTargetSuffix).
func fill(query, target []byte, md mode) (matrix, int) {
	rows, cols := len(query)+1, len(target)+1
	m := newMatrix(rows, cols)
	for j := 0; j < cols; j++ {
		if md.freeTargetPrefix {
			m.set(0, j, 0)
		} else {
			m.set(0, j, j*indelCost)
		}
	}
	for i := 0; i < rows; i++ {
		m.set(i, 0, i*indelCost)
	}
	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			sub := mismatchCost
			if query[i-1] == target[j-1] {
				sub = matchCost
			}
			diag := m.at(i-1, j-1) + sub
			up := m.at(i-1, j) + indelCost   // consumes query, not target: Insertion
			left := m.at(i, j-1) + indelCost // consumes target, not query: Deletion
			m.set(i, j, min3(diag, up, left))
		}
	}
	endCol := cols - 1
	if md.freeTargetSuffix {
		best := m.at(rows-1, endCol)
		for j := 0; j < cols; j++ {
			if v := m.at(rows-1, j); v < best {
				best, endCol = v, j
			}
		}
	}
	return m, endCol
}

// traceback walks from (len(query), endCol) back to a start cell, emitting
// ops in forward order. The start row is always 0 (the query is always
// fully consumed); the start column is 0 unless freeTargetPrefix allowed
// entering the matrix from elsewhere in row 0.
func traceback(m matrix, query, target []byte, endCol int, md mode) ([]contig.Op, int) {
	i, j := len(query), endCol
	var ops []contig.Op
	for i > 0 {
		cur := m.at(i, j)
		if j > 0 {
			sub := mismatchCost
			if query[i-1] == target[j-1] {
				sub = matchCost
			}
			if cur == m.at(i-1, j-1)+sub {
				if sub == matchCost {
					ops = append(ops, contig.Match)
				} else {
					ops = append(ops, contig.Mismatch)
				}
				i, j = i-1, j-1
				continue
			}
		}
		if cur == m.at(i-1, j)+indelCost {
			ops = append(ops, contig.Insertion)
			i--
			continue
		}
		if j > 0 && cur == m.at(i, j-1)+indelCost {
			ops = append(ops, contig.Deletion)
			j--
			continue
		}
		// Defensive: row 0 was entered for free (infix prefix skip).
		break
	}
	if md.freeTargetPrefix {
		// Any remaining target columns before j were skipped for free;
		// they are not part of the alignment (no leading Deletion ops).
	} else {
		for j > 0 {
			ops = append(ops, contig.Deletion)
			j--
		}
	}
	reverse(ops)
	return ops, j
}

func reverse(ops []contig.Op) {
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
}

// Global aligns query against the whole of target: both sequences are
// fully consumed (classic Needleman-Wunsch).
func Global(query, target []byte) []contig.Op {
	m, endCol := fill(query, target, modeGlobal)
	ops, _ := traceback(m, query, target, endCol, modeGlobal)
	return ops
}

// Infix aligns query against a substring of target: neither a target
// prefix nor a target suffix outside the matched region is penalized.
// It returns the ops plus the [start, end) range of target actually
// consumed, suitable for placing a leading tip against a local prefix of
// the new contig.
func Infix(query, target []byte) (ops []contig.Op, targetStart, targetEnd int) {
	m, endCol := fill(query, target, modeInfix)
	ops, start := traceback(m, query, target, endCol, modeInfix)
	return ops, start, endCol
}

// Prefix aligns query starting at target[0], but does not penalize
// leftover target bases past where query ends. Used for the trailing tip,
// whose start position against the new contig is already known.
func Prefix(query, target []byte) (ops []contig.Op, targetEnd int) {
	m, endCol := fill(query, target, modePrefix)
	ops, _ = traceback(m, query, target, endCol, modePrefix)
	return ops, endCol
}
