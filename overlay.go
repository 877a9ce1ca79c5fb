package topology

import (
	"encoding/binary"
	"math"

	"github.com/paulmach/orb"
)

// Overlay operations.
type OverlayKind int

const (
	OpIntersection OverlayKind = iota
	OpUnion
	OpDifference
	OpSymDifference
)

// Intersection returns the point set common to both geometries.
func Intersection(g0, g1 orb.Geometry) (orb.Geometry, error) {
	return Overlay(g0, g1, OpIntersection)
}

// Union returns the point set of both geometries combined.
func Union(g0, g1 orb.Geometry) (orb.Geometry, error) {
	return Overlay(g0, g1, OpUnion)
}

// Difference returns the point set of g0 not in g1.
func Difference(g0, g1 orb.Geometry) (orb.Geometry, error) {
	return Overlay(g0, g1, OpDifference)
}

// SymDifference returns the point set in exactly one of the geometries.
func SymDifference(g0, g1 orb.Geometry) (orb.Geometry, error) {
	return Overlay(g0, g1, OpSymDifference)
}

// Overlay computes a set operation on two geometries by noding them into a
// shared planar graph, labelling every edge with its location in each input,
// and assembling the edges and nodes the operation selects. It returns a
// *TopologyError when robustness failures prevent a consistent graph; see
// EnhancedOverlay for a version that retries with common bits removed.
func Overlay(g0, g1 orb.Geometry, op OverlayKind) (orb.Geometry, error) {
	if g0 == nil || g1 == nil {
		panic("Overlay: geometry is nil")
	}
	o := newOverlayOp(g0, g1, nil)
	return o.result(op)
}

type overlayOp struct {
	arg   [2]*GeometryGraph
	pm    *PrecisionModel
	li    LineIntersector
	graph *planarGraph
	edges *edgeList

	resultPolys  []orb.Polygon
	resultLines  []orb.LineString
	resultPoints []orb.Point
}

func newOverlayOp(g0, g1 orb.Geometry, pm *PrecisionModel) *overlayOp {
	o := &overlayOp{
		pm:    pm,
		graph: newPlanarGraph(),
		edges: newEdgeList(),
	}
	o.li.PrecisionModel = pm
	o.arg[0] = NewGeometryGraph(0, g0)
	o.arg[1] = NewGeometryGraph(1, g1)
	return o
}

func (o *overlayOp) result(op OverlayKind) (orb.Geometry, error) {
	o.copyPoints(0)
	o.copyPoints(1)

	// node the inputs against themselves and each other
	o.arg[0].computeSelfNodes(&o.li, false)
	o.arg[1].computeSelfNodes(&o.li, false)
	o.arg[0].computeEdgeIntersections(o.arg[1], &o.li, true)

	var splitEdges []*Edge
	splitEdges = o.arg[0].computeSplitEdges(splitEdges)
	splitEdges = o.arg[1].computeSplitEdges(splitEdges)
	for _, e := range splitEdges {
		o.insertUniqueEdge(e)
	}
	o.computeLabelsFromDepths()
	o.replaceCollapsedEdges()

	o.graph.addEdges(o.edges.edges)
	if err := o.computeLabelling(); err != nil {
		return nil, err
	}
	o.labelIncompleteNodes()

	o.findResultAreaEdges(op)
	o.cancelDuplicateResultEdges()

	polyBuilder := &polygonBuilder{}
	if err := polyBuilder.addGraph(o.graph); err != nil {
		return nil, err
	}
	o.resultPolys = polyBuilder.polygons()

	lineBuilder := &lineBuilder{op: o}
	o.resultLines = lineBuilder.build(op)

	pointBuilder := &pointBuilder{op: o}
	o.resultPoints = pointBuilder.build(op)

	return o.computeGeometry(), nil
}

// copyPoints seeds the result graph with the labelled nodes of one input, so
// isolated points and unmatched boundary nodes survive noding.
func (o *overlayOp) copyPoints(gi int) {
	for _, n := range o.arg[gi].nodes.sortedNodes() {
		newNode := o.graph.nodes.addNode(n.coord)
		newNode.label.setOn(gi, n.label.on(gi))
	}
}

// insertUniqueEdge merges an edge with an existing pointwise-equal one,
// accumulating labels and depths, or inserts it.
func (o *overlayOp) insertUniqueEdge(e *Edge) {
	existing := o.edges.findEqualEdge(e)
	if existing == nil {
		o.edges.add(e)
		return
	}
	labelToMerge := e.label
	if _, sameDirection := existing.equalEdge(e); !sameDirection {
		labelToMerge = e.label.copy()
		labelToMerge.flip()
	}
	if existing.depth.isNull() {
		existing.depth.add(existing.label)
	}
	existing.depth.add(labelToMerge)
	existing.label.merge(labelToMerge)
}

// computeLabelsFromDepths rewrites the label of each merged edge from its
// accumulated depths: equal depth on both sides means the boundaries
// cancelled and the edge collapses to a line.
func (o *overlayOp) computeLabelsFromDepths() {
	for _, e := range o.edges.edges {
		if e.depth.isNull() {
			continue
		}
		e.depth.normalize()
		for gi := 0; gi < 2; gi++ {
			if e.label.isNone(gi) || !e.label.isArea() || e.depth.isNullAt(gi) {
				continue
			}
			if e.depth.delta(gi) == 0 {
				e.label.toLine(gi)
			} else {
				if e.depth.get(gi, posLeft) == depthNone || e.depth.get(gi, posRight) == depthNone {
					panic("bug: depth side is null on edge with nonzero delta")
				}
				e.label.setLocation(gi, posLeft, e.depth.location(gi, posLeft))
				e.label.setLocation(gi, posRight, e.depth.location(gi, posRight))
			}
		}
	}
}

// replaceCollapsedEdges turns zero-width area spikes into line edges.
func (o *overlayOp) replaceCollapsedEdges() {
	for i, e := range o.edges.edges {
		if e.isCollapsed() {
			o.edges.edges[i] = e.collapsedEdge()
		}
	}
}

func (o *overlayOp) computeLabelling() error {
	for _, n := range o.graph.nodes.sortedNodes() {
		if err := n.star.computeLabelling(&o.arg); err != nil {
			return err
		}
	}
	// a directed edge and its sym describe one edge: unify their labels
	for _, n := range o.graph.nodes.sortedNodes() {
		n.star.mergeSymLabels()
	}
	for _, n := range o.graph.nodes.sortedNodes() {
		n.label.merge(n.star.label)
	}
	return nil
}

// labelIncompleteNodes locates nodes touched by only one input in the other,
// and pushes completed node labels onto still-incomplete edges.
func (o *overlayOp) labelIncompleteNodes() {
	for _, n := range o.graph.nodes.sortedNodes() {
		if n.isIsolated() {
			if n.label.isNone(0) {
				n.label.setOn(0, Locate(n.coord, o.arg[0].parentGeom))
			} else {
				n.label.setOn(1, Locate(n.coord, o.arg[1].parentGeom))
			}
		}
		n.star.updateLabelling(n.label)
	}
}

// findResultAreaEdges marks the directed edges bounding the result area: the
// face on the edge's right satisfies the operation, and the edge is not
// buried inside both interiors.
func (o *overlayOp) findResultAreaEdges(op OverlayKind) {
	for _, de := range o.graph.edgeEnds {
		lbl := de.label
		if lbl.isArea() && !de.isInteriorAreaEdge() &&
			resultOfOp(lbl.location(0, posRight), lbl.location(1, posRight), op) {
			de.inResult = true
		}
	}
}

// cancelDuplicateResultEdges drops edges selected in both directions: the
// result area lies on both sides, so the edge is interior to it.
func (o *overlayOp) cancelDuplicateResultEdges() {
	for _, de := range o.graph.edgeEnds {
		if de.inResult && de.sym.inResult {
			de.inResult = false
			de.sym.inResult = false
		}
	}
}

// isCoveredByArea reports whether the point lies in a result polygon.
func (o *overlayOp) isCoveredByArea(pt orb.Point) bool {
	for _, p := range o.resultPolys {
		if locateInPolygon(pt, p) != Exterior {
			return true
		}
	}
	return false
}

// isCoveredByLineOrArea reports whether the point lies on a result line or in
// a result polygon.
func (o *overlayOp) isCoveredByLineOrArea(pt orb.Point) bool {
	for _, l := range o.resultLines {
		if locateOnLine(pt, l) != Exterior {
			return true
		}
	}
	return o.isCoveredByArea(pt)
}

func (o *overlayOp) computeGeometry() orb.Geometry {
	nPts, nLines, nPolys := len(o.resultPoints), len(o.resultLines), len(o.resultPolys)
	switch {
	case nPts+nLines+nPolys == 0:
		return orb.Collection{}
	case nLines == 0 && nPolys == 0:
		if nPts == 1 {
			return o.resultPoints[0]
		}
		return orb.MultiPoint(o.resultPoints)
	case nPts == 0 && nPolys == 0:
		if nLines == 1 {
			return o.resultLines[0]
		}
		return orb.MultiLineString(o.resultLines)
	case nPts == 0 && nLines == 0:
		if nPolys == 1 {
			return o.resultPolys[0]
		}
		return orb.MultiPolygon(o.resultPolys)
	}
	out := make(orb.Collection, 0, nPts+nLines+nPolys)
	for _, p := range o.resultPoints {
		out = append(out, p)
	}
	for _, l := range o.resultLines {
		out = append(out, l)
	}
	for _, p := range o.resultPolys {
		out = append(out, p)
	}
	return out
}

// resultOfOp is the single truth table deciding whether a location pair is in
// the result of an operation. Boundary counts as Interior.
func resultOfOp(loc0, loc1 Location, op OverlayKind) bool {
	if loc0 == Boundary {
		loc0 = Interior
	}
	if loc1 == Boundary {
		loc1 = Interior
	}
	in0, in1 := loc0 == Interior, loc1 == Interior
	switch op {
	case OpIntersection:
		return in0 && in1
	case OpUnion:
		return in0 || in1
	case OpDifference:
		return in0 && !in1
	case OpSymDifference:
		return in0 != in1
	}
	panic("bug: unknown overlay operation")
}

// isResultOfOp applies resultOfOp to a label's On locations.
func isResultOfOp(lbl *Label, op OverlayKind) bool {
	return resultOfOp(lbl.on(0), lbl.on(1), op)
}

////////////////

// An edgeList indexes edges by their coordinate sequence, orientation
// ignored, so noded edges contributed by both inputs merge into one.
type edgeList struct {
	edges []*Edge
	index map[string]*Edge
}

func newEdgeList() *edgeList {
	return &edgeList{index: map[string]*Edge{}}
}

func (el *edgeList) add(e *Edge) {
	el.edges = append(el.edges, e)
	el.index[orientedKey(e.pts)] = e
}

func (el *edgeList) findEqualEdge(e *Edge) *Edge {
	return el.index[orientedKey(e.pts)]
}

// orientedKey encodes the points in a canonical direction, so an edge and its
// reverse share a key.
func orientedKey(pts []orb.Point) string {
	n := len(pts)
	forward := true
	for i := 0; i < n; i++ {
		if c := coordCompare(pts[i], pts[n-1-i]); c != 0 {
			forward = c < 0
			break
		}
	}
	buf := make([]byte, 0, 16*n)
	var scratch [16]byte
	for i := 0; i < n; i++ {
		p := pts[i]
		if !forward {
			p = pts[n-1-i]
		}
		binary.LittleEndian.PutUint64(scratch[:8], math.Float64bits(p[0]))
		binary.LittleEndian.PutUint64(scratch[8:], math.Float64bits(p[1]))
		buf = append(buf, scratch[:]...)
	}
	return string(buf)
}
