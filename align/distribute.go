package align

import (
	"math/rand"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/traverse"
	"github.com/yosuzuki-lab/jtk-go/contig"
)

// Config collects the alignment distributor's tunables (spec.md §6).
type Config struct {
	// Seed is the base RNG seed for chain sampling. Each read draws from
	// an independently seeded generator derived from Seed and the read's
	// ID, so results are identical regardless of how reads are sharded
	// across goroutines (spec.md §8 "Determinism").
	Seed int64
}

// DefaultConfig is the distributor's reference configuration.
var DefaultConfig = Config{Seed: 0}

// readRNG derives a per-read random source so sampling is reproducible
// independent of goroutine scheduling order.
func readRNG(seed int64, readID string) *rand.Rand {
	h := farm.Hash64([]byte(readID))
	return rand.New(rand.NewSource(seed ^ int64(h)))
}

// Distribute places every read onto its best-scoring contig(s): per read,
// in parallel, it enumerates chains against every contig, samples among
// them, and renders each selected chain into an Alignment. Results are
// reduced into a per-contig map by a single goroutine once every read's
// parallel work has finished (spec.md §6 "Per-read alignment distribution
// runs in parallel over reads; results are collected into a per-contig
// mapping by a single-threaded reduce").
func Distribute(reads []*contig.EncodedRead, segments []*contig.Segment, cfg Config) (map[string][]*contig.Alignment, error) {
	perRead := make([][]*contig.Alignment, len(reads))
	err := traverse.Each(len(reads), func(i int) error {
		read := reads[i]
		rng := readRNG(cfg.Seed, read.ID)

		var allChains []Chain
		for segIdx, seg := range segments {
			chains := MinCostChains(read, seg)
			for j := range chains {
				chains[j].SegmentIndex = segIdx
			}
			allChains = append(allChains, chains...)
		}
		if len(allChains) == 0 {
			return nil
		}
		selected := SelectChains(allChains, rng)

		alignments := make([]*contig.Alignment, 0, len(selected))
		for _, c := range selected {
			a, err := RenderChain(read, segments[c.SegmentIndex], c)
			if err != nil {
				return err
			}
			alignments = append(alignments, a)
		}
		perRead[i] = alignments
		return nil
	})
	if err != nil {
		return nil, err
	}

	byContig := make(map[string][]*contig.Alignment)
	for _, alignments := range perRead {
		for _, a := range alignments {
			byContig[a.ContigID] = append(byContig[a.ContigID], a)
		}
	}
	return byContig, nil
}
