package diagnostics

import (
	"io"

	"blainsmith.com/go/seahash"
	"github.com/klauspost/compress/gzip"
)

// WriteSnapshot gzip-compresses data (a graph or window state dump
// captured just before a fatal error) to w, and returns a seahash checksum
// of the uncompressed bytes so the dump can be named or cross-referenced
// against the diagnostic line without re-reading it (grounded on the
// teacher's use of seahash for content-addressed keys and klauspost's
// gzip for payload compression elsewhere in its encoding stack).
func WriteSnapshot(w io.Writer, data []byte) (checksum uint64, err error) {
	checksum = seahash.Sum64(data)
	gz := gzip.NewWriter(w)
	if _, err := gz.Write(data); err != nil {
		return checksum, err
	}
	if err := gz.Close(); err != nil {
		return checksum, err
	}
	return checksum, nil
}
