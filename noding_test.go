package topology

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestIteratedNoder(t *testing.T) {
	strings := []*SegmentString{
		NewSegmentString([]orb.Point{{0, 0}, {2, 2}}, nil),
		NewSegmentString([]orb.Point{{0, 2}, {2, 0}}, nil),
	}
	noder := &IteratedNoder{}
	noded, err := noder.Node(strings)
	test.Error(t, err)
	test.T(t, len(noded), 4)
	for _, ss := range noded {
		pts := ss.Points()
		test.T(t, len(pts), 2)
		test.That(t, pts[0] == orb.Point{1, 1} || pts[1] == orb.Point{1, 1},
			"every piece must end at the crossing")
	}
}

func TestIteratedNoderNoIntersections(t *testing.T) {
	strings := []*SegmentString{
		NewSegmentString([]orb.Point{{0, 0}, {1, 0}}, nil),
		NewSegmentString([]orb.Point{{0, 1}, {1, 1}}, nil),
	}
	noder := &IteratedNoder{}
	noded, err := noder.Node(strings)
	test.Error(t, err)
	test.T(t, len(noded), 2)
}

func TestIteratedNoderSharedEndpoint(t *testing.T) {
	// touching at endpoints only is already noded
	strings := []*SegmentString{
		NewSegmentString([]orb.Point{{0, 0}, {1, 1}}, nil),
		NewSegmentString([]orb.Point{{1, 1}, {2, 0}}, nil),
	}
	noder := &IteratedNoder{}
	noded, err := noder.Node(strings)
	test.Error(t, err)
	test.T(t, len(noded), 2)
}

func TestScaledNoder(t *testing.T) {
	// coordinates on a 0.1 grid, noded on the unit lattice scaled by 10
	strings := []*SegmentString{
		NewSegmentString([]orb.Point{{0, 0}, {0.2, 0.2}}, nil),
		NewSegmentString([]orb.Point{{0, 0.2}, {0.2, 0}}, nil),
	}
	noder := &ScaledNoder{Noder: &SnapRoundingNoder{}, Scale: 10.0}
	noded, err := noder.Node(strings)
	test.Error(t, err)
	test.T(t, len(noded), 4)
	for _, ss := range noded {
		pts := ss.Points()
		test.That(t, pts[0] == orb.Point{0.1, 0.1} || pts[len(pts)-1] == orb.Point{0.1, 0.1},
			"every piece must end at the snapped crossing")
	}
}

func TestSnapRoundingNoder(t *testing.T) {
	strings := []*SegmentString{
		NewSegmentString([]orb.Point{{0, 0}, {4, 4}}, nil),
		NewSegmentString([]orb.Point{{0, 4}, {4, 0}}, nil),
	}
	noder := &SnapRoundingNoder{}
	noded, err := noder.Node(strings)
	test.Error(t, err)
	test.T(t, len(noded), 4)

	// an intersection off the lattice is snapped onto it
	strings = []*SegmentString{
		NewSegmentString([]orb.Point{{0, 0}, {5, 4}}, nil),
		NewSegmentString([]orb.Point{{0, 4}, {5, 0}}, nil),
	}
	noded, err = noder.Node(strings)
	test.Error(t, err)
	for _, ss := range noded {
		for _, p := range ss.Points() {
			test.Float(t, p[0], float64(int(p[0]+0.5)))
			test.Float(t, p[1], float64(int(p[1]+0.5)))
		}
	}
}
