package contig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignmentCheckInvariants(t *testing.T) {
	tests := []struct {
		name    string
		align   Alignment
		wantErr bool
	}{
		{
			name: "balanced",
			align: Alignment{
				ContigID:    "ctg1",
				ContigStart: 0,
				ContigEnd:   4,
				Query:       []byte("ACGT"),
				Ops:         []Op{Match, Match, Match, Match},
			},
		},
		{
			name: "insertion and deletion",
			align: Alignment{
				ContigID:    "ctg1",
				ContigStart: 0,
				ContigEnd:   4,
				Query:       []byte("ACGTT"),
				Ops:         []Op{Match, Match, Insertion, Insertion, Match, Deletion},
			},
		},
		{
			name: "bad contig span",
			align: Alignment{
				ContigID:    "ctg1",
				ContigStart: 0,
				ContigEnd:   5,
				Query:       []byte("ACGT"),
				Ops:         []Op{Match, Match, Match, Match},
			},
			wantErr: true,
		},
		{
			name: "bad query length",
			align: Alignment{
				ContigID:    "ctg1",
				ContigStart: 0,
				ContigEnd:   4,
				Query:       []byte("ACG"),
				Ops:         []Op{Match, Match, Match, Match},
			},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.align.CheckInvariants()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEncodedReadCheckLoad(t *testing.T) {
	good := EncodedRead{ID: "r1", Nodes: []EncodedNode{{Unit: 0, QueryLength: 10}}}
	assert.NoError(t, good.CheckLoad())

	bad := EncodedRead{ID: "r2", Nodes: []EncodedNode{{Unit: -1, QueryLength: 10}}}
	assert.Error(t, bad.CheckLoad())
}

func TestEncodedReadCheckLoadValidatesCigarAgainstQueryLength(t *testing.T) {
	// "8M1D1M" consumes 9 query bases (the D does not), matching QueryLength.
	good := EncodedRead{ID: "r3", Nodes: []EncodedNode{{Unit: 0, QueryLength: 9, Cigar: "8M1D1M"}}}
	assert.NoError(t, good.CheckLoad())

	mismatched := EncodedRead{ID: "r4", Nodes: []EncodedNode{{Unit: 0, QueryLength: 10, Cigar: "8M1D1M"}}}
	assert.Error(t, mismatched.CheckLoad())

	malformed := EncodedRead{ID: "r5", Nodes: []EncodedNode{{Unit: 0, QueryLength: 1, Cigar: "1Q"}}}
	assert.Error(t, malformed.CheckLoad())
}
