package diagnostics

import (
	"bytes"
	"compress/gzip"
	"errors"
	"testing"

	"blainsmith.com/go/seahash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageNamesKindEntityAndError(t *testing.T) {
	err := errors.New("contig span mismatch")
	got := message(InvariantViolation, "node#42", err)
	assert.Equal(t, "invariant violation: node#42: contig span mismatch", got)
}

func TestKindStringValues(t *testing.T) {
	assert.Equal(t, "malformed input", MalformedInput.String())
	assert.Equal(t, "invariant violation", InvariantViolation.String())
	assert.Equal(t, "numeric edge", NumericEdge.String())
}

func TestWriteSnapshotRoundTripsAndChecksumIsDeterministic(t *testing.T) {
	data := []byte("ditch graph snapshot payload")

	var buf bytes.Buffer
	checksum1, err := WriteSnapshot(&buf, data)
	require.NoError(t, err)

	r, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	var decompressed bytes.Buffer
	_, err = decompressed.ReadFrom(r)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed.Bytes())

	// The checksum WriteSnapshot returns is over the uncompressed bytes,
	// and must match an independent seahash.Sum64 call on the same data -
	// a from-scratch reimplementation is not what's being tested here.
	assert.Equal(t, seahash.Sum64(data), checksum1)

	// Same input, called again: same checksum (determinism, spec.md §8
	// property 5).
	var buf2 bytes.Buffer
	checksum2, err := WriteSnapshot(&buf2, data)
	require.NoError(t, err)
	assert.Equal(t, checksum1, checksum2)
}

func TestWriteSnapshotEmptyData(t *testing.T) {
	var buf bytes.Buffer
	checksum, err := WriteSnapshot(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, seahash.Sum64(nil), checksum)

	r, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	var decompressed bytes.Buffer
	_, err = decompressed.ReadFrom(r)
	require.NoError(t, err)
	assert.Empty(t, decompressed.Bytes())
}
