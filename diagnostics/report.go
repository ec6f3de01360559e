package diagnostics

import (
	"fmt"

	"github.com/grailbio/base/log"
)

// message builds the single diagnostic line spec.md §7 requires: the
// failing invariant's kind, the entity that triggered it (a node index, a
// window index, a read id - whatever the caller names), and the
// underlying error. Kept separate from Fatal so it can be exercised by a
// test without terminating the process.
func message(kind Kind, entity string, err error) string {
	return fmt.Sprintf("%s: %s: %v", kind, entity, err)
}

// Fatal reports a fatal error per spec.md §7's taxonomy and terminates the
// run, mirroring the teacher's log.Fatalf idiom (e.g.
// markduplicates/helpers.go). Per spec.md §7 Propagation, a single
// malformed input aborts the whole run rather than producing partial
// output, so there is no recoverable path back to the caller.
func Fatal(kind Kind, entity string, err error) {
	log.Fatalf("%s", message(kind, entity, err))
}
