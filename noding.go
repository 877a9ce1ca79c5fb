package topology

import "github.com/paulmach/orb"

// A SegmentString is a connected chain of segments carrying a label through
// the noding process; split pieces inherit the label of their parent.
type SegmentString struct {
	pts   []orb.Point
	label *Label
}

// NewSegmentString wraps a point chain for noding.
func NewSegmentString(pts []orb.Point, label *Label) *SegmentString {
	if label == nil {
		label = emptyLabel()
	}
	return &SegmentString{pts: pts, label: label}
}

// Points returns the chain's coordinates.
func (ss *SegmentString) Points() []orb.Point {
	return ss.pts
}

// A Noder splits a set of segment strings at every point where two segments
// intersect, returning chains whose interiors are pairwise disjoint.
type Noder interface {
	Node(strings []*SegmentString) ([]*SegmentString, error)
}

// nodePass performs one splitting pass and reports how many intersections
// were found in segment interiors.
func nodePass(strings []*SegmentString, li *LineIntersector) ([]*SegmentString, int) {
	edges := make([]*Edge, 0, len(strings))
	for _, ss := range strings {
		edges = append(edges, newEdge(ss.pts, ss.label.copy()))
	}
	si := newSegmentIntersector(li, true)
	computeEdgeSetIntersections(edges, nil, si, true)

	var split []*Edge
	for _, e := range edges {
		split = e.eiList.addSplitEdges(split)
	}
	out := make([]*SegmentString, 0, len(split))
	for _, e := range split {
		out = append(out, &SegmentString{pts: e.pts, label: e.label})
	}
	return out, si.numInterior
}

// An IteratedNoder nodes at full precision, repeating until no intersection
// lies in a segment interior. Roundoff can make each split produce new
// near-miss crossings; when the interior intersection count stops shrinking
// past MaxIter passes, noding has failed to converge and a *TopologyError is
// returned (the buffer ladder then retries at lower precision).
type IteratedNoder struct {
	PrecisionModel *PrecisionModel
	MaxIter        int // 0 means DefaultNodingIterations
}

// DefaultNodingIterations bounds the passes of an IteratedNoder.
const DefaultNodingIterations = 5

func (n *IteratedNoder) Node(strings []*SegmentString) ([]*SegmentString, error) {
	maxIter := n.MaxIter
	if maxIter == 0 {
		maxIter = DefaultNodingIterations
	}
	li := &LineIntersector{PrecisionModel: n.PrecisionModel}

	lastInterior := -1
	for iter := 1; ; iter++ {
		out, numInterior := nodePass(strings, li)
		strings = out
		if numInterior == 0 {
			return strings, nil
		}
		if lastInterior >= 0 && numInterior >= lastInterior && iter > maxIter {
			return nil, topologyErr("iterated noding failed to converge", strings[0].pts[0])
		}
		lastInterior = numInterior
	}
}

// A ScaledNoder scales coordinates up onto the integer lattice, delegates,
// and scales back down, composing its inner noder's unit grid into a 1/scale
// grid.
type ScaledNoder struct {
	Noder Noder
	Scale float64
}

func (n *ScaledNoder) Node(strings []*SegmentString) ([]*SegmentString, error) {
	if n.Scale == 1.0 {
		return n.Noder.Node(strings)
	}
	scaled := rescaleStrings(strings, n.Scale, true)
	noded, err := n.Noder.Node(scaled)
	if err != nil {
		return nil, err
	}
	return rescaleStrings(noded, 1.0/n.Scale, false), nil
}

func rescaleStrings(strings []*SegmentString, factor float64, snap bool) []*SegmentString {
	pm := NewFixedPrecisionModel(1.0)
	out := make([]*SegmentString, 0, len(strings))
	for _, ss := range strings {
		pts := make([]orb.Point, len(ss.pts))
		for i, p := range ss.pts {
			pts[i] = orb.Point{p[0] * factor, p[1] * factor}
			if snap {
				pts[i] = pm.MakePrecise(pts[i])
			}
		}
		pts = removeRepeated(pts)
		if len(pts) < 2 {
			continue
		}
		out = append(out, &SegmentString{pts: pts, label: ss.label})
	}
	return out
}

// A SnapRoundingNoder nodes on the unit grid: every vertex and every computed
// intersection point is rounded to the nearest lattice point, and passes
// repeat until the rounded arrangement is stable. Rounding can slide a
// segment onto a vertex it previously missed, so a single pass is not enough.
// Wrapped in a ScaledNoder this yields full snap rounding at any fixed grid.
type SnapRoundingNoder struct{}

func (n *SnapRoundingNoder) Node(strings []*SegmentString) ([]*SegmentString, error) {
	pm := NewFixedPrecisionModel(1.0)
	strings = roundStrings(strings, pm)
	li := &LineIntersector{PrecisionModel: pm}

	// the lattice has finitely many states, but guard against cycling
	const maxRounds = 100
	for iter := 0; iter < maxRounds; iter++ {
		out, numInterior := nodePass(strings, li)
		strings = roundStrings(out, pm)
		if numInterior == 0 {
			return strings, nil
		}
	}
	return nil, topologyErr("snap rounding failed to stabilize", strings[0].pts[0])
}

func roundStrings(strings []*SegmentString, pm *PrecisionModel) []*SegmentString {
	out := make([]*SegmentString, 0, len(strings))
	for _, ss := range strings {
		pts := make([]orb.Point, len(ss.pts))
		for i, p := range ss.pts {
			pts[i] = pm.MakePrecise(p)
		}
		pts = removeRepeated(pts)
		if len(pts) < 2 {
			continue
		}
		out = append(out, &SegmentString{pts: pts, label: ss.label})
	}
	return out
}
