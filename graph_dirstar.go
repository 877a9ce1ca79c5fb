package topology

import (
	"sort"

	"github.com/paulmach/orb"
)

const depthNotSet = -999

// A DirectedEdge is one traversal direction of an Edge. Its label is the
// edge's, with sides flipped for the backwards traversal. Once ring linking
// has run, next/nextMin chain the directed edges into maximal/minimal edge
// rings.
type DirectedEdge struct {
	edge     *Edge
	label    *Label
	node     *Node
	p0, p1   orb.Point
	dx, dy   float64
	quadrant int
	forward  bool

	inResult bool
	visited  bool

	sym     *DirectedEdge
	next    *DirectedEdge
	nextMin *DirectedEdge
	ring    *edgeRing // maximal ring containing this edge
	minRing *edgeRing

	depth [3]int // per-side depth, posOn unused
}

func newDirectedEdge(e *Edge, forward bool) *DirectedEdge {
	de := &DirectedEdge{
		edge:    e,
		forward: forward,
		depth:   [3]int{0, depthNotSet, depthNotSet},
	}
	if forward {
		de.p0, de.p1 = e.pts[0], e.pts[1]
	} else {
		n := len(e.pts)
		de.p0, de.p1 = e.pts[n-1], e.pts[n-2]
	}
	de.dx = de.p1[0] - de.p0[0]
	de.dy = de.p1[1] - de.p0[1]
	de.quadrant = quadrant(de.dx, de.dy)
	de.label = e.label.copy()
	if !forward {
		de.label.flip()
	}
	return de
}

func newDirectedEdgePair(e *Edge) (fwd, rev *DirectedEdge) {
	fwd = newDirectedEdge(e, true)
	rev = newDirectedEdge(e, false)
	fwd.sym, rev.sym = rev, fwd
	return fwd, rev
}

// compareDirection orders directed edges at a common node counterclockwise
// from the positive x-axis, using the robust orientation test within a
// quadrant.
func (de *DirectedEdge) compareDirection(o *DirectedEdge) int {
	if de.dx == o.dx && de.dy == o.dy {
		return 0
	}
	if de.quadrant > o.quadrant {
		return 1
	} else if de.quadrant < o.quadrant {
		return -1
	}
	return orientationIndex(o.p0, o.p1, de.p1)
}

func (de *DirectedEdge) setVisitedEdge(visited bool) {
	de.visited = visited
	de.sym.visited = visited
}

func (de *DirectedEdge) depthAt(pos int) int {
	return de.depth[pos]
}

func (de *DirectedEdge) setDepth(pos, depth int) error {
	if de.depth[pos] != depthNotSet && de.depth[pos] != depth {
		return topologyErr("assigned depths do not match", de.p0)
	}
	de.depth[pos] = depth
	return nil
}

// setEdgeDepths sets the depth on one side and derives the other from the
// edge's depth delta.
func (de *DirectedEdge) setEdgeDepths(pos, depth int) error {
	delta := de.edge.depthDelta
	if !de.forward {
		delta = -delta
	}
	if pos == posLeft {
		delta = -delta
	}
	if err := de.setDepth(pos, depth); err != nil {
		return err
	}
	return de.setDepth(oppositePos(pos), depth+delta)
}

// isLineEdge reports whether this edge contributes a line to the result: it
// is a line for at least one geometry and lies in the exterior of any area
// geometry.
func (de *DirectedEdge) isLineEdge() bool {
	isLine := de.label.isLineAt(0) || de.label.isLineAt(1)
	extIfArea0 := !de.label.isAreaAt(0) || de.label.allPositionsEqual(0, Exterior)
	extIfArea1 := !de.label.isAreaAt(1) || de.label.allPositionsEqual(1, Exterior)
	return isLine && extIfArea0 && extIfArea1
}

// isInteriorAreaEdge reports whether both sides of this edge lie in the
// interior of both area geometries; such edges never bound a result ring.
func (de *DirectedEdge) isInteriorAreaEdge() bool {
	for gi := 0; gi < 2; gi++ {
		if !(de.label.isAreaAt(gi) &&
			de.label.location(gi, posLeft) == Interior &&
			de.label.location(gi, posRight) == Interior) {
			return false
		}
	}
	return true
}

////////////////

// A directedEdgeStar holds the directed edges leaving one node, in
// counterclockwise angular order.
type directedEdgeStar struct {
	edges  []*DirectedEdge
	sorted bool
	label  *Label

	resultAreaEdges []*DirectedEdge
}

func (s *directedEdgeStar) insert(de *DirectedEdge) {
	s.edges = append(s.edges, de)
	s.sorted = false
}

func (s *directedEdgeStar) getEdges() []*DirectedEdge {
	if !s.sorted {
		sort.SliceStable(s.edges, func(i, j int) bool {
			return s.edges[i].compareDirection(s.edges[j]) < 0
		})
		s.sorted = true
	}
	return s.edges
}

func (s *directedEdgeStar) degree() int {
	return len(s.edges)
}

func (s *directedEdgeStar) findIndex(de *DirectedEdge) int {
	for i, e := range s.getEdges() {
		if e == de {
			return i
		}
	}
	panic("bug: directed edge not found in its star")
}

// computeLabelling completes the labels of all edges around the node:
// side locations are propagated around the star, and any part still unknown
// is resolved by locating the node point in the geometry it never touched.
// It also computes the star's merged label.
func (s *directedEdgeStar) computeLabelling(gg *[2]*GeometryGraph) error {
	for gi := 0; gi < 2; gi++ {
		if err := s.propagateSideLabels(gi); err != nil {
			return err
		}
	}

	// edges that are a collapsed boundary of a geometry lie in its exterior
	var hasCollapse [2]bool
	for _, de := range s.getEdges() {
		for gi := 0; gi < 2; gi++ {
			if de.label.isLineAt(gi) && de.label.on(gi) == Boundary {
				hasCollapse[gi] = true
			}
		}
	}
	for _, de := range s.getEdges() {
		for gi := 0; gi < 2; gi++ {
			if de.label.isAnyNone(gi) {
				loc := Exterior
				if !hasCollapse[gi] {
					loc = Locate(de.p0, gg[gi].parentGeom)
				}
				de.label.setAllLocationsIfNone(gi, loc)
			}
		}
	}

	s.label = emptyLabel()
	for _, de := range s.getEdges() {
		for gi := 0; gi < 2; gi++ {
			loc := de.edge.label.on(gi)
			if loc == Interior || loc == Boundary {
				s.label.setOn(gi, Interior)
			}
		}
	}
	return nil
}

// propagateSideLabels walks the star counterclockwise: the region between two
// consecutive edges is on the left of the first and the right of the second,
// so a known side location carries around the node into unknown ones.
func (s *directedEdgeStar) propagateSideLabels(gi int) error {
	startLoc := LocNone
	for _, de := range s.getEdges() {
		if de.label.isAreaAt(gi) && de.label.location(gi, posLeft) != LocNone {
			startLoc = de.label.location(gi, posLeft)
		}
	}
	if startLoc == LocNone {
		return nil
	}

	currLoc := startLoc
	for _, de := range s.getEdges() {
		if de.label.on(gi) == LocNone {
			de.label.setOn(gi, currLoc)
		}
		if !de.label.isAreaAt(gi) {
			continue
		}
		left := de.label.location(gi, posLeft)
		right := de.label.location(gi, posRight)
		if right != LocNone {
			if right != currLoc {
				return topologyErr("side location conflict", de.p0)
			}
			if left == LocNone {
				panic("bug: single null side in label")
			}
			currLoc = left
		} else {
			de.label.setLocation(gi, posRight, currLoc)
			de.label.setLocation(gi, posLeft, currLoc)
		}
	}
	return nil
}

func (s *directedEdgeStar) mergeSymLabels() {
	for _, de := range s.getEdges() {
		de.label.merge(de.sym.label)
	}
}

func (s *directedEdgeStar) updateLabelling(nodeLabel *Label) {
	for _, de := range s.getEdges() {
		de.label.setAllLocationsIfNone(0, nodeLabel.on(0))
		de.label.setAllLocationsIfNone(1, nodeLabel.on(1))
	}
}

func (s *directedEdgeStar) getResultAreaEdges() []*DirectedEdge {
	if s.resultAreaEdges != nil {
		return s.resultAreaEdges
	}
	s.resultAreaEdges = []*DirectedEdge{}
	for _, de := range s.getEdges() {
		if de.inResult || de.sym.inResult {
			s.resultAreaEdges = append(s.resultAreaEdges, de)
		}
	}
	return s.resultAreaEdges
}

const (
	scanningForIncoming = iota
	linkingToOutgoing
)

// linkResultDirectedEdges links the in-result edges around this node into
// ring order: each incoming result edge connects to the next outgoing result
// edge counterclockwise, so result rings keep their face on the right-hand
// side.
func (s *directedEdgeStar) linkResultDirectedEdges() error {
	edges := s.getResultAreaEdges()
	var firstOut, incoming *DirectedEdge
	state := scanningForIncoming
	for _, nextOut := range edges {
		nextIn := nextOut.sym
		if !nextOut.label.isArea() {
			continue
		}
		if firstOut == nil && nextOut.inResult {
			firstOut = nextOut
		}
		switch state {
		case scanningForIncoming:
			if !nextIn.inResult {
				continue
			}
			incoming = nextIn
			state = linkingToOutgoing
		case linkingToOutgoing:
			if !nextOut.inResult {
				continue
			}
			incoming.next = nextOut
			state = scanningForIncoming
		}
	}
	if state == linkingToOutgoing {
		if firstOut == nil {
			return topologyErr("no outgoing directed edge found", incoming.p0)
		}
		incoming.next = firstOut
	}
	return nil
}

// linkMinimalDirectedEdges links the edges of one maximal ring around this
// node into minimal (simple) ring order, traversing clockwise.
func (s *directedEdgeStar) linkMinimalDirectedEdges(er *edgeRing) error {
	edges := s.getResultAreaEdges()
	var firstOut, incoming *DirectedEdge
	state := scanningForIncoming
	for i := len(edges) - 1; i >= 0; i-- {
		nextOut := edges[i]
		nextIn := nextOut.sym
		if firstOut == nil && nextOut.ring == er {
			firstOut = nextOut
		}
		switch state {
		case scanningForIncoming:
			if nextIn.ring != er {
				continue
			}
			incoming = nextIn
			state = linkingToOutgoing
		case linkingToOutgoing:
			if nextOut.ring != er {
				continue
			}
			incoming.nextMin = nextOut
			state = scanningForIncoming
		}
	}
	if state == linkingToOutgoing {
		if firstOut == nil || firstOut.ring != er {
			return topologyErr("unable to link last incoming directed edge", incoming.p0)
		}
		incoming.nextMin = firstOut
	}
	return nil
}

// linkAllDirectedEdges links every incoming edge to the outgoing edge
// clockwise of it, regardless of result membership.
func (s *directedEdgeStar) linkAllDirectedEdges() {
	edges := s.getEdges()
	var prevOut, firstIn *DirectedEdge
	for i := len(edges) - 1; i >= 0; i-- {
		nextOut := edges[i]
		nextIn := nextOut.sym
		if firstIn == nil {
			firstIn = nextIn
		}
		if prevOut != nil {
			nextIn.next = prevOut
		}
		prevOut = nextOut
	}
	firstIn.next = prevOut
}

// getOutgoingDegree counts the edges at this node belonging to er.
func (s *directedEdgeStar) getOutgoingDegree(er *edgeRing) int {
	degree := 0
	for _, de := range s.getEdges() {
		if de.ring == er {
			degree++
		}
	}
	return degree
}

// getRightmostEdge returns the edge pointing most towards the bottom-right,
// the starting edge for depth assignment on the outer boundary of a buffer
// subgraph.
func (s *directedEdgeStar) getRightmostEdge() *DirectedEdge {
	edges := s.getEdges()
	de0 := edges[0]
	if len(edges) == 1 {
		return de0
	}
	deLast := edges[len(edges)-1]
	quad0, quad1 := de0.quadrant, deLast.quadrant
	if isNorthernQuadrant(quad0) && isNorthernQuadrant(quad1) {
		return de0
	} else if !isNorthernQuadrant(quad0) && !isNorthernQuadrant(quad1) {
		return deLast
	}
	// one edge points up and the other down; the vertical one decides
	if de0.dy != 0.0 {
		return de0
	} else if deLast.dy != 0.0 {
		return deLast
	}
	panic("bug: two horizontal edges incident on the same node")
}

// computeDepths propagates side depths from de around the whole star, and
// checks that the propagation closes consistently.
func (s *directedEdgeStar) computeDepths(de *DirectedEdge) error {
	edgeIndex := s.findIndex(de)
	startDepth := de.depthAt(posLeft)
	targetLastDepth := de.depthAt(posRight)
	nextDepth, err := s.computeDepthRange(edgeIndex+1, len(s.edges), startDepth)
	if err != nil {
		return err
	}
	lastDepth, err := s.computeDepthRange(0, edgeIndex, nextDepth)
	if err != nil {
		return err
	}
	if lastDepth != targetLastDepth {
		return topologyErr("depth mismatch", de.p0)
	}
	return nil
}

func (s *directedEdgeStar) computeDepthRange(start, end, startDepth int) (int, error) {
	currDepth := startDepth
	for i := start; i < end; i++ {
		de := s.getEdges()[i]
		if err := de.setEdgeDepths(posRight, currDepth); err != nil {
			return 0, err
		}
		currDepth = de.depthAt(posLeft)
	}
	return currDepth, nil
}

// findCoveredLineEdges marks the line edges at this node as covered or not by
// the result area, by tracking whether each angular sector between result
// edges is interior or exterior.
func (s *directedEdgeStar) findCoveredLineEdges() {
	startLoc := LocNone
	for _, nextOut := range s.getEdges() {
		nextIn := nextOut.sym
		if !nextOut.isLineEdge() {
			if nextOut.inResult {
				startLoc = Interior
				break
			}
			if nextIn.inResult {
				startLoc = Exterior
				break
			}
		}
	}
	if startLoc == LocNone {
		return
	}

	currLoc := startLoc
	for _, nextOut := range s.getEdges() {
		nextIn := nextOut.sym
		if nextOut.isLineEdge() {
			nextOut.edge.setCovered(currLoc == Interior)
		} else {
			if nextOut.inResult {
				currLoc = Exterior
			}
			if nextIn.inResult {
				currLoc = Interior
			}
		}
	}
}
