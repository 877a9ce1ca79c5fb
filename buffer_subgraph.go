package topology

import (
	"sort"

	"github.com/paulmach/orb"
)

// A bufferSubgraph is one connected component of the noded buffer curve
// graph. Depths are propagated through it from its rightmost edge, whose
// outside depth is known from the subgraphs already built around it.
type bufferSubgraph struct {
	finder        *rightmostEdgeFinder
	dirEdges      []*DirectedEdge
	nodes         []*Node
	rightmostPt   orb.Point
	bound         orb.Bound
	boundComputed bool
}

func newBufferSubgraph(node *Node) (*bufferSubgraph, error) {
	sg := &bufferSubgraph{finder: &rightmostEdgeFinder{}}
	sg.addReachable(node)
	if err := sg.finder.findEdge(sg.dirEdges); err != nil {
		return nil, err
	}
	sg.rightmostPt = sg.finder.minCoord
	return sg, nil
}

// addReachable collects all nodes and directed edges connected to start.
func (sg *bufferSubgraph) addReachable(start *Node) {
	stack := []*Node{start}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.visited {
			continue
		}
		node.visited = true
		sg.nodes = append(sg.nodes, node)
		for _, de := range node.star.getEdges() {
			sg.dirEdges = append(sg.dirEdges, de)
			symNode := de.sym.node
			if !symNode.visited {
				stack = append(stack, symNode)
			}
		}
	}
}

func (sg *bufferSubgraph) envelope() orb.Bound {
	if !sg.boundComputed {
		b := orb.Bound{Min: sg.rightmostPt, Max: sg.rightmostPt}
		for _, de := range sg.dirEdges {
			if de.forward {
				b = b.Union(pointsBound(de.edge.pts))
			}
		}
		sg.bound = b
		sg.boundComputed = true
	}
	return sg.bound
}

// computeDepth assigns side depths throughout the subgraph, starting from the
// known depth outside its rightmost edge.
func (sg *bufferSubgraph) computeDepth(outsideDepth int) error {
	for _, de := range sg.dirEdges {
		de.setVisitedEdge(false)
		de.depth = [3]int{0, depthNotSet, depthNotSet}
	}
	de := sg.finder.orientedDe
	if err := de.setEdgeDepths(posRight, outsideDepth); err != nil {
		return err
	}
	copySymDepths(de)
	return sg.computeDepths(de)
}

// computeDepths spreads depths breadth-first over the subgraph's nodes; at
// each node the star propagation closes the depths around it.
func (sg *bufferSubgraph) computeDepths(startEdge *DirectedEdge) error {
	visited := map[*Node]bool{}
	startNode := startEdge.node
	queue := []*Node{startNode}
	visited[startNode] = true
	startEdge.visited = true
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if err := computeNodeDepth(n); err != nil {
			return err
		}
		for _, de := range n.star.getEdges() {
			if de.sym.visited {
				continue
			}
			adj := de.sym.node
			if !visited[adj] {
				queue = append(queue, adj)
				visited[adj] = true
			}
		}
	}
	return nil
}

func computeNodeDepth(n *Node) error {
	var startEdge *DirectedEdge
	for _, de := range n.star.getEdges() {
		if de.visited || de.sym.visited {
			startEdge = de
			break
		}
	}
	if startEdge == nil {
		return topologyErr("unable to find edge to compute depths", n.coord)
	}
	if err := n.star.computeDepths(startEdge); err != nil {
		return err
	}
	for _, de := range n.star.getEdges() {
		de.visited = true
		copySymDepths(de)
	}
	return nil
}

func copySymDepths(de *DirectedEdge) {
	de.sym.depth[posLeft] = de.depth[posRight]
	de.sym.depth[posRight] = de.depth[posLeft]
}

// findResultEdges marks the edges separating buffer interior (right depth at
// least 1) from exterior (left depth at most 0).
func (sg *bufferSubgraph) findResultEdges() {
	for _, de := range sg.dirEdges {
		if de.depthAt(posRight) >= 1 && de.depthAt(posLeft) <= 0 && !de.isInteriorAreaEdge() {
			de.inResult = true
		}
	}
}

////////////////

// A rightmostEdgeFinder locates the rightmost point of a set of directed
// edges and the edge there oriented with the subgraph exterior on its right.
type rightmostEdgeFinder struct {
	minDe      *DirectedEdge
	orientedDe *DirectedEdge
	minIndex   int
	minCoord   orb.Point
	haveCoord  bool
}

func (f *rightmostEdgeFinder) findEdge(dirEdges []*DirectedEdge) error {
	for _, de := range dirEdges {
		if de.forward {
			f.checkForRightmostCoordinate(de)
		}
	}
	if f.minDe == nil {
		return topologyErr("unable to find rightmost edge of empty subgraph", orb.Point{})
	}
	if f.minIndex == 0 {
		f.findRightmostEdgeAtNode()
	} else {
		f.findRightmostEdgeAtVertex()
	}
	f.orientedDe = f.minDe
	if f.rightmostSide(f.minDe, f.minIndex) == posLeft {
		f.orientedDe = f.minDe.sym
	}
	return nil
}

func (f *rightmostEdgeFinder) checkForRightmostCoordinate(de *DirectedEdge) {
	pts := de.edge.pts
	// the last point is the first of some other edge
	for i := 0; i < len(pts)-1; i++ {
		if !f.haveCoord || pts[i][0] > f.minCoord[0] {
			f.minDe = de
			f.minIndex = i
			f.minCoord = pts[i]
			f.haveCoord = true
		}
	}
}

func (f *rightmostEdgeFinder) findRightmostEdgeAtNode() {
	f.minDe = f.minDe.node.star.getRightmostEdge()
	if !f.minDe.forward {
		f.minDe = f.minDe.sym
		f.minIndex = len(f.minDe.edge.pts) - 1
	}
}

func (f *rightmostEdgeFinder) findRightmostEdgeAtVertex() {
	pts := f.minDe.edge.pts
	if f.minIndex <= 0 || f.minIndex >= len(pts)-1 {
		panic("bug: rightmost point expected to be interior vertex of edge")
	}
	pPrev, pNext := pts[f.minIndex-1], pts[f.minIndex+1]
	orientation := orientationIndex(f.minCoord, pNext, pPrev)
	if pPrev[1] < f.minCoord[1] && pNext[1] < f.minCoord[1] && orientation == orientCounterClockwise {
		f.minIndex--
	}
}

func (f *rightmostEdgeFinder) rightmostSide(de *DirectedEdge, index int) int {
	side := rightmostSideOfSegment(de, index)
	if side < 0 {
		side = rightmostSideOfSegment(de, index-1)
	}
	if side < 0 {
		panic("bug: rightmost point lies only on horizontal segments")
	}
	return side
}

// rightmostSideOfSegment returns the side of segment i of de facing right
// (larger x), or -1 for a horizontal segment.
func rightmostSideOfSegment(de *DirectedEdge, i int) int {
	pts := de.edge.pts
	if i < 0 || i+1 >= len(pts) || pts[i][1] == pts[i+1][1] {
		return -1
	}
	if pts[i][1] < pts[i+1][1] {
		return posRight
	}
	return posLeft
}

////////////////

// A subgraphDepthLocater finds the buffer depth at a point by stabbing a
// horizontal ray rightwards through the subgraphs already assigned depths and
// reading the depth beside the nearest segment it crosses.
type subgraphDepthLocater struct {
	subgraphs []*bufferSubgraph
}

type depthSegment struct {
	p0, p1    orb.Point // upward oriented
	leftDepth int
}

func (l *subgraphDepthLocater) depth(p orb.Point) int {
	stabbed := l.findStabbedSegments(p)
	if len(stabbed) == 0 {
		return 0
	}
	min := stabbed[0]
	for _, ds := range stabbed[1:] {
		if compareDepthSegments(ds, min) < 0 {
			min = ds
		}
	}
	return min.leftDepth
}

func (l *subgraphDepthLocater) findStabbedSegments(stabPt orb.Point) []depthSegment {
	var stabbed []depthSegment
	for _, sg := range l.subgraphs {
		env := sg.envelope()
		if stabPt[1] < env.Min[1] || stabPt[1] > env.Max[1] {
			continue
		}
		for _, de := range sg.dirEdges {
			if de.forward {
				stabbed = l.findStabbedEdgeSegments(stabPt, de, stabbed)
			}
		}
	}
	return stabbed
}

func (l *subgraphDepthLocater) findStabbedEdgeSegments(stabPt orb.Point, de *DirectedEdge, stabbed []depthSegment) []depthSegment {
	pts := de.edge.pts
	for i := 0; i < len(pts)-1; i++ {
		p0, p1 := pts[i], pts[i+1]
		swapped := false
		if p0[1] > p1[1] {
			p0, p1 = p1, p0
			swapped = true
		}
		// skip segments right of the stabbing ray, horizontal ones, and ones
		// not straddling the ray
		if p0[0] < stabPt[0] && p1[0] < stabPt[0] {
			continue
		}
		if p0[1] == p1[1] {
			continue
		}
		if stabPt[1] < p0[1] || stabPt[1] > p1[1] {
			continue
		}
		if orientationIndex(p0, p1, stabPt) == orientClockwise {
			continue
		}
		depth := de.depthAt(posLeft)
		if swapped {
			depth = de.depthAt(posRight)
		}
		stabbed = append(stabbed, depthSegment{p0: p0, p1: p1, leftDepth: depth})
	}
	return stabbed
}

// compareDepthSegments orders upward segments left to right along the
// stabbing ray.
func compareDepthSegments(a, b depthSegment) int {
	aMinX, aMaxX := minMax(a.p0[0], a.p1[0])
	bMinX, bMaxX := minMax(b.p0[0], b.p1[0])
	if aMinX >= bMaxX {
		return 1
	}
	if aMaxX <= bMinX {
		return -1
	}
	if o := segOrientationIndex(a.p0, a.p1, b.p0, b.p1); o != 0 {
		return o
	}
	if o := -segOrientationIndex(b.p0, b.p1, a.p0, a.p1); o != 0 {
		return o
	}
	// collinear overlapping segments, order by coordinates
	if c := coordCompare(a.p0, b.p0); c != 0 {
		return c
	}
	return coordCompare(a.p1, b.p1)
}

// segOrientationIndex returns the orientation of segment b relative to
// segment a, or 0 when b crosses the line through a.
func segOrientationIndex(a0, a1, b0, b1 orb.Point) int {
	o0 := orientationIndex(a0, a1, b0)
	o1 := orientationIndex(a0, a1, b1)
	if o0 >= 0 && o1 >= 0 {
		if o0 > o1 {
			return o0
		}
		return o1
	}
	if o0 <= 0 && o1 <= 0 {
		if o0 < o1 {
			return o0
		}
		return o1
	}
	return 0
}

func minMax(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}

// sortSubgraphs orders subgraphs by descending rightmost x, so every
// subgraph is processed after all subgraphs that can contain it.
func sortSubgraphs(subgraphs []*bufferSubgraph) {
	sort.SliceStable(subgraphs, func(i, j int) bool {
		return subgraphs[i].rightmostPt[0] > subgraphs[j].rightmostPt[0]
	})
}
