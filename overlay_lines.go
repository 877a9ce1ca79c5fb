package topology

import "github.com/paulmach/orb"

// A lineBuilder extracts the 1-dimensional part of an overlay result: line
// edges satisfying the operation which are not covered by a result polygon,
// plus collapsed boundary edges an intersection keeps.
type lineBuilder struct {
	op *overlayOp

	lineEdges []*Edge
	lines     []orb.LineString
}

func (lb *lineBuilder) build(op OverlayKind) []orb.LineString {
	lb.findCoveredLineEdges()
	lb.collectLines(op)
	lb.buildLines()
	return lb.lines
}

// findCoveredLineEdges marks every line edge as covered or not by the result
// area: edges at nodes with result area edges are resolved by the node star,
// the rest by point location against the result polygons.
func (lb *lineBuilder) findCoveredLineEdges() {
	for _, n := range lb.op.graph.nodes.sortedNodes() {
		n.star.findCoveredLineEdges()
	}
	for _, de := range lb.op.graph.edgeEnds {
		e := de.edge
		if de.isLineEdge() && !e.coveredSet {
			e.setCovered(lb.op.isCoveredByArea(de.p0))
		}
	}
}

func (lb *lineBuilder) collectLines(op OverlayKind) {
	for _, de := range lb.op.graph.edgeEnds {
		lb.collectLineEdge(de, op)
		lb.collectBoundaryTouchEdge(de, op)
	}
}

func (lb *lineBuilder) collectLineEdge(de *DirectedEdge, op OverlayKind) {
	if !de.isLineEdge() || de.visited {
		return
	}
	if isResultOfOp(de.label, op) && !de.edge.covered {
		lb.lineEdges = append(lb.lineEdges, de.edge)
		de.setVisitedEdge(true)
	}
}

// collectBoundaryTouchEdge collects area boundary edges where two boundaries
// touch along a line without enclosing result area between them; only an
// intersection keeps such edges.
func (lb *lineBuilder) collectBoundaryTouchEdge(de *DirectedEdge, op OverlayKind) {
	if de.isLineEdge() || de.visited || de.isInteriorAreaEdge() || de.edge.inResult {
		return
	}
	if de.inResult || de.sym.inResult {
		panic("bug: directed edge in result but its edge is not")
	}
	if op == OpIntersection && isResultOfOp(de.label, op) {
		lb.lineEdges = append(lb.lineEdges, de.edge)
		de.setVisitedEdge(true)
	}
}

func (lb *lineBuilder) buildLines() {
	for _, e := range lb.lineEdges {
		lb.lines = append(lb.lines, orb.LineString(e.pts))
		e.inResult = true
	}
}

////////////////

// A pointBuilder extracts the 0-dimensional part of an overlay result: nodes
// satisfying the operation with no incident result edge and not covered by a
// result line or polygon.
type pointBuilder struct {
	op *overlayOp
}

func (pb *pointBuilder) build(op OverlayKind) []orb.Point {
	var pts []orb.Point
	for _, n := range pb.op.graph.nodes.sortedNodes() {
		if n.isIncidentEdgeInResult() {
			continue
		}
		if n.star.degree() != 0 && op != OpIntersection {
			continue
		}
		if isResultOfOp(n.label, op) && !pb.op.isCoveredByLineOrArea(n.coord) {
			pts = append(pts, n.coord)
		}
	}
	return pts
}
