package polish

import "github.com/yosuzuki-lab/jtk-go/contig"

// truncateHomopolymers enforces spec.md §4.5 step 6 / §8 property 6: no
// query homopolymer run aligned as Insertion against the contig may exceed
// truncateLen bases. It walks a's ops in order, tracking the current
// homopolymer run on the query (the run includes whatever Match/Mismatch
// prefix led into it, per spec.md §8 E4), and drops any Insertion op - and
// its query byte - that would extend that run past the limit.
func truncateHomopolymers(a *contig.Alignment) {
	var newQuery []byte
	var newOps []contig.Op
	var runBase byte
	runLen := 0
	qpos := 0

	for _, op := range a.Ops {
		switch op {
		case contig.Deletion:
			newOps = append(newOps, op)
		case contig.Match, contig.Mismatch:
			b := a.Query[qpos]
			qpos++
			if runLen > 0 && b == runBase {
				runLen++
			} else {
				runBase, runLen = b, 1
			}
			newQuery = append(newQuery, b)
			newOps = append(newOps, op)
		case contig.Insertion:
			b := a.Query[qpos]
			qpos++
			if runLen > 0 && b == runBase {
				if runLen+1 > truncateLen {
					continue // drop: would extend the run past the limit
				}
				runLen++
			} else {
				runBase, runLen = b, 1
			}
			newQuery = append(newQuery, b)
			newOps = append(newOps, op)
		}
	}
	a.Query = newQuery
	a.Ops = newOps
}
