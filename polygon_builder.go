package topology

import "github.com/paulmach/orb"

// A polygonBuilder assembles the area portion of an overlay result from the
// in-result directed edges of a planar graph: maximal rings are traced,
// decomposed into minimal rings where they pinch, and every hole ring is
// assigned to the shell containing it.
type polygonBuilder struct {
	shells []*edgeRing
}

// addGraph traces rings from the result edges of a whole graph.
func (pb *polygonBuilder) addGraph(g *planarGraph) error {
	return pb.add(g.edgeEnds, g.nodes.sortedNodes())
}

// add links the result edges at the given nodes into rings and traces them.
// It may be called repeatedly with separate graph components.
func (pb *polygonBuilder) add(dirEdges []*DirectedEdge, nodes []*Node) error {
	for _, n := range nodes {
		if err := n.star.linkResultDirectedEdges(); err != nil {
			return err
		}
	}
	maxRings, err := pb.buildMaximalRings(dirEdges)
	if err != nil {
		return err
	}
	rings, freeHoles, err := pb.buildMinimalRings(maxRings, nil)
	if err != nil {
		return err
	}
	freeHoles = pb.sortShellsAndHoles(rings, freeHoles)
	return pb.placeFreeHoles(freeHoles)
}

func (pb *polygonBuilder) buildMaximalRings(dirEdges []*DirectedEdge) ([]*edgeRing, error) {
	var maxRings []*edgeRing
	for _, de := range dirEdges {
		if !de.inResult || !de.label.isArea() || de.ring != nil {
			continue
		}
		er, err := newEdgeRing(de, maximalRing)
		if err != nil {
			return nil, err
		}
		maxRings = append(maxRings, er)
		er.setInResult()
	}
	return maxRings, nil
}

// buildMinimalRings splits each maximal ring that touches itself at a node
// into simple rings, keeping its single shell and collecting the split-off
// holes; untouched maximal rings pass through unchanged.
func (pb *polygonBuilder) buildMinimalRings(maxRings, freeHoles []*edgeRing) ([]*edgeRing, []*edgeRing, error) {
	var rings []*edgeRing
	for _, er := range maxRings {
		if er.getMaxNodeDegree() <= 2 {
			rings = append(rings, er)
			continue
		}
		if err := er.linkMinimalEdges(); err != nil {
			return nil, nil, err
		}
		minRings, err := er.buildMinimalRings()
		if err != nil {
			return nil, nil, err
		}
		shell, err := findShell(minRings)
		if err != nil {
			return nil, nil, err
		}
		if shell != nil {
			placePolygonHoles(shell, minRings)
			pb.shells = append(pb.shells, shell)
		} else {
			freeHoles = append(freeHoles, minRings...)
		}
	}
	return rings, freeHoles, nil
}

// findShell returns the unique non-hole ring among the minimal rings of one
// maximal ring, or nil if the maximal ring was a hole that pinched into
// several.
func findShell(minRings []*edgeRing) (*edgeRing, error) {
	var shell *edgeRing
	for _, er := range minRings {
		if er.isHole() {
			continue
		}
		if shell != nil {
			return nil, topologyErr("found two shells in a minimal ring set", er.pts[0])
		}
		shell = er
	}
	return shell, nil
}

// placePolygonHoles assigns the holes split off a pinched shell to that
// shell.
func placePolygonHoles(shell *edgeRing, minRings []*edgeRing) {
	for _, er := range minRings {
		if er.isHole() {
			er.setShell(shell)
		}
	}
}

func (pb *polygonBuilder) sortShellsAndHoles(rings, freeHoles []*edgeRing) []*edgeRing {
	for _, er := range rings {
		if er.isHole() {
			freeHoles = append(freeHoles, er)
		} else {
			pb.shells = append(pb.shells, er)
		}
	}
	return freeHoles
}

// placeFreeHoles assigns each hole not produced alongside its shell to the
// shell whose face contains it.
func (pb *polygonBuilder) placeFreeHoles(freeHoles []*edgeRing) error {
	for _, hole := range freeHoles {
		if hole.shell != nil {
			continue
		}
		shell := pb.findEdgeRingContaining(hole)
		if shell == nil {
			return topologyErr("unable to assign hole to a shell", hole.pts[0])
		}
		hole.setShell(shell)
	}
	return nil
}

// findEdgeRingContaining returns the smallest shell whose envelope and face
// contain the hole's test point.
func (pb *polygonBuilder) findEdgeRingContaining(hole *edgeRing) *edgeRing {
	testBound := pointsBound(hole.pts)
	testPt := hole.pts[0]

	var minShell *edgeRing
	var minBound orb.Bound
	for _, shell := range pb.shells {
		b := pointsBound(shell.pts)
		if !boundContainsBound(b, testBound) || !pointInRing(testPt, shell.pts) {
			continue
		}
		if minShell == nil || boundContainsBound(minBound, b) {
			minShell = shell
			minBound = b
		}
	}
	return minShell
}

// polygons assembles the final polygons, shells counterclockwise and holes
// clockwise. Ring tracing keeps faces on the right, so every traced ring is
// reversed.
func (pb *polygonBuilder) polygons() []orb.Polygon {
	polys := make([]orb.Polygon, 0, len(pb.shells))
	for _, shell := range pb.shells {
		poly := orb.Polygon{orb.Ring(reversePoints(shell.pts))}
		for _, hole := range shell.holes {
			poly = append(poly, orb.Ring(reversePoints(hole.pts)))
		}
		polys = append(polys, poly)
	}
	return polys
}
