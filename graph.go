package topology

import "github.com/paulmach/orb"

// A planarGraph is the noded arrangement an overlay computes on: edges split
// at every intersection, each traversed by a symmetric pair of directed
// edges, with a node star at every endpoint.
type planarGraph struct {
	edges    []*Edge
	nodes    *nodeMap
	edgeEnds []*DirectedEdge
}

func newPlanarGraph() *planarGraph {
	return &planarGraph{nodes: newNodeMap()}
}

// addEdges inserts the edges and builds their directed edge pairs.
func (g *planarGraph) addEdges(edges []*Edge) {
	for _, e := range edges {
		g.edges = append(g.edges, e)
		fwd, rev := newDirectedEdgePair(e)
		g.add(fwd)
		g.add(rev)
	}
}

func (g *planarGraph) add(de *DirectedEdge) {
	g.nodes.add(de)
	g.edgeEnds = append(g.edgeEnds, de)
}

func (g *planarGraph) isBoundaryNode(gi int, coord orb.Point) bool {
	n := g.nodes.find(coord)
	return n != nil && n.label.on(gi) == Boundary
}

func (g *planarGraph) linkResultDirectedEdges() error {
	for _, n := range g.nodes.sortedNodes() {
		if err := n.star.linkResultDirectedEdges(); err != nil {
			return err
		}
	}
	return nil
}

func (g *planarGraph) linkAllDirectedEdges() {
	for _, n := range g.nodes.sortedNodes() {
		n.star.linkAllDirectedEdges()
	}
}
