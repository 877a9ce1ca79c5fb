package topology

import "github.com/paulmach/orb"

// Ring flavours. A maximal ring follows the next pointers and may revisit
// nodes; minimal rings follow nextMin and are simple.
type ringKind int

const (
	maximalRing ringKind = iota
	minimalRing
)

func ringNext(kind ringKind, de *DirectedEdge) *DirectedEdge {
	if kind == maximalRing {
		return de.next
	}
	return de.nextMin
}

func ringSet(kind ringKind, de *DirectedEdge, er *edgeRing) {
	if kind == maximalRing {
		de.ring = er
	} else {
		de.minRing = er
	}
}

func ringOf(kind ringKind, de *DirectedEdge) *edgeRing {
	if kind == maximalRing {
		return de.ring
	}
	return de.minRing
}

// An edgeRing is a closed walk of result directed edges, keeping its face on
// the right-hand side.
type edgeRing struct {
	kind    ringKind
	startDe *DirectedEdge

	edges []*DirectedEdge
	pts   []orb.Point
	label *Label
	hole  bool

	shell *edgeRing // nil while unassigned; a ring with a shell is a hole
	holes []*edgeRing

	maxNodeDegree int
}

func newEdgeRing(start *DirectedEdge, kind ringKind) (*edgeRing, error) {
	er := &edgeRing{
		kind:          kind,
		startDe:       start,
		label:         emptyLabel(),
		maxNodeDegree: -1,
	}
	if err := er.computePoints(start); err != nil {
		return nil, err
	}
	if len(er.pts) < 4 {
		return nil, topologyErr("degenerate ring found during ring-building", er.pts[0])
	}
	er.hole = isCCW(er.pts)
	return er, nil
}

func (er *edgeRing) computePoints(start *DirectedEdge) error {
	de := start
	isFirstEdge := true
	for {
		if de == nil {
			return topologyErr("found null directed edge during ring-building", start.p0)
		}
		if ringOf(er.kind, de) == er {
			return topologyErr("directed edge visited twice during ring-building", de.p0)
		}
		er.edges = append(er.edges, de)
		er.mergeLabel(de.label)
		er.addPoints(de.edge, de.forward, isFirstEdge)
		isFirstEdge = false
		ringSet(er.kind, de, er)
		de = ringNext(er.kind, de)
		if de == start {
			return nil
		}
	}
}

// mergeLabel folds the right-side locations of a directed edge into the
// ring's label; the ring face is on the right of all its edges.
func (er *edgeRing) mergeLabel(deLabel *Label) {
	for gi := 0; gi < 2; gi++ {
		if !deLabel.isAreaAt(gi) {
			continue
		}
		loc := deLabel.location(gi, posRight)
		if loc == LocNone {
			continue
		}
		if er.label.on(gi) == LocNone {
			er.label.setOn(gi, loc)
		}
	}
}

func (er *edgeRing) addPoints(e *Edge, forward, isFirstEdge bool) {
	if forward {
		start := 1
		if isFirstEdge {
			start = 0
		}
		er.pts = append(er.pts, e.pts[start:]...)
	} else {
		start := len(e.pts) - 2
		if isFirstEdge {
			start = len(e.pts) - 1
		}
		for i := start; i >= 0; i-- {
			er.pts = append(er.pts, e.pts[i])
		}
	}
}

func (er *edgeRing) isHole() bool {
	return er.hole
}

func (er *edgeRing) setShell(shell *edgeRing) {
	er.shell = shell
	shell.holes = append(shell.holes, er)
}

func (er *edgeRing) setInResult() {
	de := er.startDe
	for {
		de.edge.inResult = true
		de = ringNext(er.kind, de)
		if de == er.startDe {
			return
		}
	}
}

func (er *edgeRing) getMaxNodeDegree() int {
	if er.maxNodeDegree < 0 {
		er.maxNodeDegree = 0
		de := er.startDe
		for {
			if d := de.node.star.getOutgoingDegree(er); d > er.maxNodeDegree {
				er.maxNodeDegree = d
			}
			de = ringNext(er.kind, de)
			if de == er.startDe {
				break
			}
		}
		er.maxNodeDegree *= 2
	}
	return er.maxNodeDegree
}

// containsPoint reports whether p lies inside the ring's face, holes
// excluded.
func (er *edgeRing) containsPoint(p orb.Point) bool {
	if !pointsBound(er.pts).Contains(p) {
		return false
	}
	if !pointInRing(p, er.pts) {
		return false
	}
	for _, hole := range er.holes {
		if pointInRing(p, hole.pts) {
			return false
		}
	}
	return true
}

// linkMinimalEdges re-links the edges of this maximal ring into minimal ring
// order at each node it passes through.
func (er *edgeRing) linkMinimalEdges() error {
	de := er.startDe
	for {
		if err := de.node.star.linkMinimalDirectedEdges(er); err != nil {
			return err
		}
		de = de.next
		if de == er.startDe {
			return nil
		}
	}
}

// buildMinimalRings decomposes this maximal ring into the simple rings its
// nextMin links trace.
func (er *edgeRing) buildMinimalRings() ([]*edgeRing, error) {
	var minRings []*edgeRing
	de := er.startDe
	for {
		if de.minRing == nil {
			minRing, err := newEdgeRing(de, minimalRing)
			if err != nil {
				return nil, err
			}
			minRings = append(minRings, minRing)
		}
		de = de.next
		if de == er.startDe {
			return minRings, nil
		}
	}
}
