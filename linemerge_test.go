package topology

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestMergeLines(t *testing.T) {
	// three pieces, the middle one reversed, chain into one line
	merged := MergeLines([]orb.LineString{
		{{0, 0}, {1, 0}},
		{{2, 0}, {1, 0}},
		{{2, 0}, {3, 0}},
	})
	test.T(t, len(merged), 1)
	test.T(t, merged[0], orb.LineString{{0, 0}, {1, 0}, {2, 0}, {3, 0}})
}

func TestMergeLinesJunction(t *testing.T) {
	// a three-way junction is never merged across
	merged := MergeLines([]orb.LineString{
		{{0, 0}, {1, 0}},
		{{0, 0}, {0, 1}},
		{{0, 0}, {-1, 0}},
	})
	test.T(t, len(merged), 3)
	for _, line := range merged {
		test.T(t, len(line), 2)
	}
}

func TestMergeLinesLoop(t *testing.T) {
	merged := MergeLines([]orb.LineString{
		{{0, 0}, {1, 0}},
		{{1, 0}, {1, 1}},
		{{1, 1}, {0, 1}},
		{{0, 1}, {0, 0}},
	})
	test.T(t, len(merged), 1)
	test.T(t, len(merged[0]), 5)
	test.T(t, merged[0][0], merged[0][len(merged[0])-1])
}

func TestMergeLinesDegenerate(t *testing.T) {
	test.T(t, len(MergeLines(nil)), 0)

	// repeated points collapse, single-point lines are dropped
	merged := MergeLines([]orb.LineString{
		{{0, 0}, {0, 0}, {1, 0}, {1, 0}},
		{{5, 5}, {5, 5}},
	})
	test.T(t, len(merged), 1)
	test.T(t, merged[0], orb.LineString{{0, 0}, {1, 0}})
}
