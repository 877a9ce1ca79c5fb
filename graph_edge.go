package topology

import (
	"sort"

	"github.com/paulmach/orb"
)

// An Edge is an ordered coordinate sequence in a planar graph, labelled with
// its topological relationship to each input geometry and carrying the list
// of intersection points found on it during noding.
type Edge struct {
	pts        []orb.Point
	label      *Label
	eiList     *edgeIntersectionList
	depth      *Depth
	depthDelta int
	inResult   bool
	covered    bool
	coveredSet bool
}

func newEdge(pts []orb.Point, label *Label) *Edge {
	e := &Edge{
		pts:   pts,
		label: label,
		depth: newDepth(),
	}
	e.eiList = &edgeIntersectionList{edge: e}
	return e
}

func (e *Edge) numPoints() int {
	return len(e.pts)
}

func (e *Edge) coord() orb.Point {
	return e.pts[0]
}

func (e *Edge) isClosed() bool {
	return e.pts[0] == e.pts[len(e.pts)-1]
}

func (e *Edge) bound() orb.Bound {
	return pointsBound(e.pts)
}

func (e *Edge) setCovered(covered bool) {
	e.covered = covered
	e.coveredSet = true
}

// isCollapsed reports whether this area edge is a zero-width spike, an
// out-and-back excursion over the same segment.
func (e *Edge) isCollapsed() bool {
	return e.label.isArea() && len(e.pts) == 3 && e.pts[0] == e.pts[2]
}

func (e *Edge) collapsedEdge() *Edge {
	lbl := e.label.copy()
	lbl.toLine(0)
	lbl.toLine(1)
	return newEdge([]orb.Point{e.pts[0], e.pts[1]}, lbl)
}

// equalEdge reports whether o has pointwise-equal coordinates, forward or
// reversed.
func (e *Edge) equalEdge(o *Edge) (eq, sameDirection bool) {
	if len(e.pts) != len(o.pts) {
		return false, false
	}
	forward := true
	backward := true
	n := len(e.pts)
	for i := 0; i < n; i++ {
		if e.pts[i] != o.pts[i] {
			forward = false
		}
		if e.pts[i] != o.pts[n-1-i] {
			backward = false
		}
		if !forward && !backward {
			return false, false
		}
	}
	return true, forward
}

// addIntersections records all intersection points the intersector found for
// the given segment of this edge.
func (e *Edge) addIntersections(li *LineIntersector, segIndex, geomIndex int) {
	for i := 0; i < li.IntersectionNum(); i++ {
		e.addIntersection(li, segIndex, geomIndex, i)
	}
}

// addIntersection records a single intersection point, normalizing one that
// falls on a vertex to lie at the start of the next segment.
func (e *Edge) addIntersection(li *LineIntersector, segIndex, geomIndex, intIndex int) {
	intPt := li.Intersection(intIndex)
	normalizedSeg := segIndex
	d := li.EdgeDistance(geomIndex, intIndex)
	if next := normalizedSeg + 1; next < len(e.pts) && intPt == e.pts[next] {
		normalizedSeg = next
		d = 0.0
	}
	e.eiList.add(intPt, normalizedSeg, d)
}

////////////////

// An edgeIntersection is a point on an edge where it is crossed, positioned
// by the segment it falls on and a distance metric along that segment.
type edgeIntersection struct {
	coord    orb.Point
	segIndex int
	dist     float64
}

func (ei *edgeIntersection) less(o *edgeIntersection) bool {
	return ei.segIndex < o.segIndex || ei.segIndex == o.segIndex && ei.dist < o.dist
}

// An edgeIntersectionList keeps the intersections of one edge in increasing
// (segment index, distance) order, including the edge endpoints once noding
// is complete.
type edgeIntersectionList struct {
	edge *Edge
	list []*edgeIntersection
}

func (eil *edgeIntersectionList) add(coord orb.Point, segIndex int, dist float64) *edgeIntersection {
	ei := &edgeIntersection{coord: coord, segIndex: segIndex, dist: dist}
	i := sort.Search(len(eil.list), func(i int) bool {
		return !eil.list[i].less(ei)
	})
	if i < len(eil.list) && eil.list[i].segIndex == segIndex && eil.list[i].dist == dist {
		return eil.list[i]
	}
	eil.list = append(eil.list, nil)
	copy(eil.list[i+1:], eil.list[i:])
	eil.list[i] = ei
	return ei
}

func (eil *edgeIntersectionList) isIntersection(pt orb.Point) bool {
	for _, ei := range eil.list {
		if ei.coord == pt {
			return true
		}
	}
	return false
}

// addEndpoints adds both edge endpoints so that split edges cover the whole
// edge.
func (eil *edgeIntersectionList) addEndpoints() {
	maxSeg := len(eil.edge.pts) - 1
	eil.add(eil.edge.pts[0], 0, 0.0)
	eil.add(eil.edge.pts[maxSeg], maxSeg, 0.0)
}

// addSplitEdges appends to edges the fragments of the owning edge between
// consecutive intersections.
func (eil *edgeIntersectionList) addSplitEdges(edges []*Edge) []*Edge {
	eil.addEndpoints()
	for i := 1; i < len(eil.list); i++ {
		edges = append(edges, eil.createSplitEdge(eil.list[i-1], eil.list[i]))
	}
	return edges
}

func (eil *edgeIntersectionList) createSplitEdge(ei0, ei1 *edgeIntersection) *Edge {
	e := eil.edge
	// when the second intersection sits exactly on a vertex, that vertex is
	// not duplicated
	useIntPt1 := ei1.dist > 0.0 || ei1.coord != e.pts[ei1.segIndex]
	pts := make([]orb.Point, 0, ei1.segIndex-ei0.segIndex+2)
	pts = append(pts, ei0.coord)
	for i := ei0.segIndex + 1; i <= ei1.segIndex; i++ {
		pts = append(pts, e.pts[i])
	}
	if useIntPt1 {
		pts = append(pts, ei1.coord)
	}
	return newEdge(pts, e.label.copy())
}
