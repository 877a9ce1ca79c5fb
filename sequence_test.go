package topology

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestSequenceLines(t *testing.T) {
	// shuffled and partly reversed pieces of one path
	seq, ok := SequenceLines([]orb.LineString{
		{{1, 0}, {2, 0}},
		{{1, 0}, {0, 0}},
		{{2, 0}, {3, 0}},
	})
	test.That(t, ok, "a simple path is sequenceable")
	test.T(t, len(seq), 3)
	test.T(t, seq[0], orb.LineString{{0, 0}, {1, 0}})
	test.T(t, seq[1], orb.LineString{{1, 0}, {2, 0}})
	test.T(t, seq[2], orb.LineString{{2, 0}, {3, 0}})
}

func TestSequenceLinesLoop(t *testing.T) {
	seq, ok := SequenceLines([]orb.LineString{
		{{1, 0}, {1, 1}},
		{{0, 0}, {1, 0}},
		{{1, 1}, {0, 1}},
		{{0, 0}, {0, 1}},
	})
	test.That(t, ok, "a closed loop is sequenceable")
	test.T(t, len(seq), 4)
	// consecutive lines connect end to start, closing back at the start
	for i := 1; i < len(seq); i++ {
		prev := seq[i-1]
		test.T(t, seq[i][0], prev[len(prev)-1])
	}
	last := seq[len(seq)-1]
	test.T(t, last[len(last)-1], seq[0][0])
}

func TestSequenceLinesStar(t *testing.T) {
	// four odd-degree nodes cannot form a single path
	seq, ok := SequenceLines([]orb.LineString{
		{{0, 0}, {1, 0}},
		{{0, 0}, {0, 1}},
		{{0, 0}, {-1, 0}},
	})
	test.That(t, !ok, "a star is not sequenceable")
	test.T(t, len(seq), 3)
}
