package topology

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// A GeometryGraph is the planar graph of one input geometry: its edges and
// labelled nodes, before and after noding against itself and the other input.
// Line endpoints are classified with the Mod-2 rule, so an endpoint shared by
// an even number of line ends is interior.
type GeometryGraph struct {
	*planarGraph

	parentGeom orb.Geometry
	geomIndex  int

	hasTooFewPoints bool
	invalidPoint    orb.Point
}

// NewGeometryGraph builds the graph of g as input number geomIndex of an
// operation.
func NewGeometryGraph(geomIndex int, g orb.Geometry) *GeometryGraph {
	gg := &GeometryGraph{
		planarGraph: newPlanarGraph(),
		parentGeom:  g,
		geomIndex:   geomIndex,
	}
	if g != nil {
		gg.addGeometry(g)
	}
	return gg
}

// HasTooFewPoints reports whether some component of the input had too few
// distinct points to form its geometry, along with an offending coordinate.
func (gg *GeometryGraph) HasTooFewPoints() (bool, orb.Point) {
	return gg.hasTooFewPoints, gg.invalidPoint
}

func (gg *GeometryGraph) addGeometry(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		gg.addPoint(g)
	case orb.MultiPoint:
		for _, p := range g {
			gg.addPoint(p)
		}
	case orb.LineString:
		gg.addLineString(g)
	case orb.MultiLineString:
		for _, ls := range g {
			gg.addLineString(ls)
		}
	case orb.Ring:
		gg.addPolygon(orb.Polygon{g})
	case orb.Polygon:
		gg.addPolygon(g)
	case orb.MultiPolygon:
		for _, p := range g {
			gg.addPolygon(p)
		}
	case orb.Collection:
		for _, sub := range g {
			gg.addGeometry(sub)
		}
	case orb.Bound:
		gg.addPolygon(g.ToPolygon())
	default:
		panic("bug: unknown geometry type")
	}
}

func (gg *GeometryGraph) addPoint(p orb.Point) {
	gg.insertPoint(p, Interior)
}

func (gg *GeometryGraph) addLineString(line orb.LineString) {
	pts := removeRepeated(line)
	if len(pts) < 2 {
		gg.hasTooFewPoints = true
		if len(pts) > 0 {
			gg.invalidPoint = pts[0]
		}
		return
	}
	e := newEdge(pts, newLineLabel(gg.geomIndex, Interior))
	gg.insertEdge(e)

	// the Mod-2 rule flips an endpoint between boundary and interior on each
	// insertion
	gg.insertBoundaryPoint(pts[0])
	gg.insertBoundaryPoint(pts[len(pts)-1])
}

func (gg *GeometryGraph) addPolygon(poly orb.Polygon) {
	if len(poly) == 0 {
		return
	}
	gg.addPolygonRing(poly[0], Exterior, Interior)
	for _, hole := range poly[1:] {
		gg.addPolygonRing(hole, Interior, Exterior)
	}
}

// addPolygonRing adds a ring with cwLeft/cwRight the locations beside it when
// traversed clockwise; they swap for a counterclockwise ring.
func (gg *GeometryGraph) addPolygonRing(ring orb.Ring, cwLeft, cwRight Location) {
	pts := removeRepeated(ring)
	if len(pts) < 4 {
		gg.hasTooFewPoints = true
		if len(pts) > 0 {
			gg.invalidPoint = pts[0]
		}
		return
	}
	left, right := cwLeft, cwRight
	if isCCW(pts) {
		left, right = cwRight, cwLeft
	}
	e := newEdge(pts, newAreaLabel(gg.geomIndex, Boundary, left, right))
	gg.insertEdge(e)
	gg.insertPoint(pts[0], Boundary)
}

func (gg *GeometryGraph) insertEdge(e *Edge) {
	gg.edges = append(gg.edges, e)
}

func (gg *GeometryGraph) insertPoint(coord orb.Point, loc Location) {
	n := gg.nodes.addNode(coord)
	n.label.setOn(gg.geomIndex, loc)
}

func (gg *GeometryGraph) insertBoundaryPoint(coord orb.Point) {
	n := gg.nodes.addNode(coord)
	boundaryCount := 1
	if n.label.on(gg.geomIndex) == Boundary {
		boundaryCount++
	}
	loc := Interior
	if boundaryCount%2 == 1 {
		loc = Boundary
	}
	n.label.setOn(gg.geomIndex, loc)
}

// computeSelfNodes nodes the graph's edges against themselves. Ring inputs
// can skip the self tests within a single edge unless computeRingSelfNodes is
// set; line inputs always run them, a linestring may cross itself.
func (gg *GeometryGraph) computeSelfNodes(li *LineIntersector, computeRingSelfNodes bool) *SegmentIntersector {
	si := newSegmentIntersector(li, true)
	isRings := false
	switch gg.parentGeom.(type) {
	case orb.Ring, orb.Polygon, orb.MultiPolygon, orb.Bound:
		isRings = true
	}
	computeEdgeSetIntersections(gg.edges, nil, si, computeRingSelfNodes || !isRings)
	gg.addSelfIntersectionNodes()
	return si
}

// computeEdgeIntersections nodes this graph's edges against another graph's.
func (gg *GeometryGraph) computeEdgeIntersections(other *GeometryGraph, li *LineIntersector, includeProper bool) *SegmentIntersector {
	si := newSegmentIntersector(li, includeProper)
	computeEdgeSetIntersections(gg.edges, other.edges, si, false)
	return si
}

// computeSplitEdges appends the fragments of every edge between consecutive
// intersections.
func (gg *GeometryGraph) computeSplitEdges(edges []*Edge) []*Edge {
	for _, e := range gg.edges {
		edges = e.eiList.addSplitEdges(edges)
	}
	return edges
}

// addSelfIntersectionNodes promotes the self-intersection points found during
// noding into graph nodes. A point on a boundary edge which is not already a
// boundary node flips under the Mod-2 rule.
func (gg *GeometryGraph) addSelfIntersectionNodes() {
	for _, e := range gg.edges {
		eLoc := e.label.on(gg.geomIndex)
		for _, ei := range e.eiList.list {
			if gg.isBoundaryNode(gg.geomIndex, ei.coord) {
				continue
			}
			if eLoc == Boundary {
				gg.insertBoundaryPoint(ei.coord)
			} else {
				gg.insertPoint(ei.coord, eLoc)
			}
		}
	}
}

////////////////

// A SegmentIntersector records the intersections the broad phase feeds it
// onto the intersection lists of both edges.
type SegmentIntersector struct {
	li            *LineIntersector
	includeProper bool

	hasIntersection      bool
	hasProper            bool
	properIntersectionPt orb.Point
	numIntersections     int
	numInterior          int
}

func newSegmentIntersector(li *LineIntersector, includeProper bool) *SegmentIntersector {
	return &SegmentIntersector{
		li:            li,
		includeProper: includeProper,
	}
}

// HasIntersection reports whether any non-trivial intersection was found.
func (si *SegmentIntersector) HasIntersection() bool {
	return si.hasIntersection
}

// HasProperIntersection reports whether a proper intersection (interior to
// both segments) was found.
func (si *SegmentIntersector) HasProperIntersection() bool {
	return si.hasProper
}

// ProperIntersectionPoint returns one of the proper intersection points
// found.
func (si *SegmentIntersector) ProperIntersectionPoint() orb.Point {
	return si.properIntersectionPt
}

// isTrivialIntersection reports whether the found intersection is just two
// adjacent segments of the same edge meeting at their shared vertex, which
// every polyline has and is not a node.
func (si *SegmentIntersector) isTrivialIntersection(e0 *Edge, seg0 int, e1 *Edge, seg1 int) bool {
	if e0 != e1 || si.li.IntersectionNum() != 1 {
		return false
	}
	if seg0-seg1 == 1 || seg1-seg0 == 1 {
		return true
	}
	if e0.isClosed() {
		maxSegIndex := len(e0.pts) - 2
		if seg0 == 0 && seg1 == maxSegIndex || seg1 == 0 && seg0 == maxSegIndex {
			return true
		}
	}
	return false
}

func (si *SegmentIntersector) addIntersections(e0 *Edge, seg0 int, e1 *Edge, seg1 int) {
	if e0 == e1 && seg0 == seg1 {
		return
	}
	si.li.ComputeIntersection(e0.pts[seg0], e0.pts[seg0+1], e1.pts[seg1], e1.pts[seg1+1])
	if !si.li.HasIntersection() {
		return
	}
	si.numIntersections++
	if si.isTrivialIntersection(e0, seg0, e1, seg1) {
		return
	}
	si.hasIntersection = true
	if si.li.isInteriorIntersection() {
		si.numInterior++
	}
	if si.includeProper || !si.li.IsProper() {
		e0.addIntersections(si.li, seg0, 0)
		e1.addIntersections(si.li, seg1, 1)
	}
	if si.li.IsProper() {
		si.properIntersectionPt = si.li.Intersection(0)
		si.hasProper = true
	}
}

////////////////

type edgeSpatial struct {
	e    *Edge
	idx  int
	rect rtreego.Rect
}

func (s *edgeSpatial) Bounds() rtreego.Rect {
	return s.rect
}

// computeEdgeSetIntersections runs the broad phase over the edge sets: an
// R-tree over one set is probed with the envelopes of the other, and
// candidate pairs get the full segment-by-segment treatment. Passing a nil
// second set nodes edges0 against itself; selfTest then also tests each edge
// against its own segments.
func computeEdgeSetIntersections(edges0, edges1 []*Edge, si *SegmentIntersector, selfTest bool) {
	self := edges1 == nil
	if self {
		edges1 = edges0
	}
	tree := rtreego.NewTree(2, 4, 8)
	for i, e := range edges1 {
		tree.Insert(&edgeSpatial{e: e, idx: i, rect: rectOf(e.bound())})
	}
	for i, e0 := range edges0 {
		for _, hit := range tree.SearchIntersect(rectOf(e0.bound())) {
			es := hit.(*edgeSpatial)
			if self {
				if es.idx < i || es.idx == i && !selfTest {
					continue
				}
			}
			computeEdgePairIntersections(e0, es.e, si)
		}
	}
}

func computeEdgePairIntersections(e0, e1 *Edge, si *SegmentIntersector) {
	for i0 := 0; i0 < len(e0.pts)-1; i0++ {
		b0 := segmentBound(e0.pts[i0], e0.pts[i0+1])
		for i1 := 0; i1 < len(e1.pts)-1; i1++ {
			if e0 == e1 && i1 < i0 {
				continue
			}
			if !b0.Intersects(segmentBound(e1.pts[i1], e1.pts[i1+1])) {
				continue
			}
			si.addIntersections(e0, i0, e1, i1)
		}
	}
}
