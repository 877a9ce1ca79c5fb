package topology

import (
	"sort"

	"github.com/paulmach/orb"
)

// A Node is a graph vertex at a unique coordinate, owning the star of
// directed edges leaving it and a label merged from all incident components.
type Node struct {
	coord orb.Point
	star  *directedEdgeStar
	label *Label

	visited bool // buffer depth propagation
}

func newNode(coord orb.Point) *Node {
	return &Node{
		coord: coord,
		star:  &directedEdgeStar{},
		label: emptyLabel(),
	}
}

func (n *Node) add(de *DirectedEdge) {
	n.star.insert(de)
	de.node = n
}

func (n *Node) isIsolated() bool {
	return n.label.geometryCount() == 1
}

func (n *Node) isIncidentEdgeInResult() bool {
	for _, de := range n.star.getEdges() {
		if de.edge.inResult {
			return true
		}
	}
	return false
}

// mergeLabel folds another label into this node's, never downgrading a
// Boundary location.
func (n *Node) mergeLabel(lbl *Label) {
	for gi := 0; gi < 2; gi++ {
		loc := n.label.on(gi)
		if !lbl.isNone(gi) && loc != Boundary {
			loc = lbl.on(gi)
		}
		if n.label.on(gi) == LocNone {
			n.label.setOn(gi, loc)
		}
	}
}

// setLabelBoundary updates the node's location for geometry gi under the
// Mod-2 boundary rule: an endpoint shared by an even number of line ends is
// interior, an odd number boundary.
func (n *Node) setLabelBoundary(gi int) {
	var newLoc Location
	switch n.label.on(gi) {
	case Boundary:
		newLoc = Interior
	case Interior:
		newLoc = Boundary
	default:
		newLoc = Boundary
	}
	n.label.setOn(gi, newLoc)
}

////////////////

// A nodeMap keys the nodes of a graph by coordinate.
type nodeMap struct {
	m map[orb.Point]*Node
}

func newNodeMap() *nodeMap {
	return &nodeMap{m: map[orb.Point]*Node{}}
}

func (nm *nodeMap) addNode(coord orb.Point) *Node {
	n, ok := nm.m[coord]
	if !ok {
		n = newNode(coord)
		nm.m[coord] = n
	}
	return n
}

func (nm *nodeMap) add(de *DirectedEdge) {
	nm.addNode(de.p0).add(de)
}

func (nm *nodeMap) find(coord orb.Point) *Node {
	return nm.m[coord]
}

// sortedNodes returns the nodes in coordinate order, for deterministic
// iteration.
func (nm *nodeMap) sortedNodes() []*Node {
	nodes := make([]*Node, 0, len(nm.m))
	for _, n := range nm.m {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return coordLess(nodes[i].coord, nodes[j].coord)
	})
	return nodes
}
