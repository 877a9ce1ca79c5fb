package topology

import "github.com/paulmach/orb"

// A PolygonizeResult separates the polygonizable part of a line arrangement
// from the leftovers: dangles are chains with a free end, cut lines connect
// rings without bounding any face.
type PolygonizeResult struct {
	Polygons []orb.Polygon
	Dangles  []orb.LineString
	CutLines []orb.LineString
}

// Polygonize nodes the input lines and assembles the polygons their
// arrangement bounds. Dangling chains and cut lines are peeled off first and
// reported alongside the polygons.
func Polygonize(lines []orb.LineString) (PolygonizeResult, error) {
	var res PolygonizeResult

	var strings []*SegmentString
	for _, line := range lines {
		pts := removeRepeated(line)
		if len(pts) >= 2 {
			strings = append(strings, NewSegmentString(pts, nil))
		}
	}
	if len(strings) == 0 {
		return res, nil
	}
	noder := &IteratedNoder{}
	noded, err := noder.Node(strings)
	if err != nil {
		return res, err
	}

	// deduplicate coincident chains
	el := newEdgeList()
	for _, ss := range noded {
		pts := removeRepeated(ss.pts)
		if len(pts) < 2 {
			continue
		}
		e := newEdge(pts, newLineLabel(0, Interior))
		if el.findEqualEdge(e) == nil {
			el.add(e)
		}
	}
	chains := make([][]orb.Point, 0, len(el.edges))
	for _, e := range el.edges {
		chains = append(chains, e.pts)
	}

	chains, res.Dangles = deleteDangles(chains, res.Dangles)

	var rings []*edgeRing
	for {
		graph := newPlanarGraph()
		for _, pts := range chains {
			graph.addEdges([]*Edge{newEdge(pts, newLineLabel(0, Interior))})
		}
		graph.linkAllDirectedEdges()

		rings = rings[:0]
		for _, de := range graph.edgeEnds {
			if de.ring != nil {
				continue
			}
			er, err := newEdgeRing(de, maximalRing)
			if err != nil {
				return res, err
			}
			rings = append(rings, er)
		}

		// an edge traversed by the same ring in both directions bounds no face
		var kept [][]orb.Point
		cut := false
		for _, de := range graph.edgeEnds {
			if !de.forward {
				continue
			}
			if de.ring == de.sym.ring {
				res.CutLines = append(res.CutLines, orb.LineString(de.edge.pts))
				cut = true
			} else {
				kept = append(kept, de.edge.pts)
			}
		}
		if !cut {
			break
		}
		chains, res.Dangles = deleteDangles(kept, res.Dangles)
	}

	res.Polygons = assemblePolygonizedRings(rings)
	return res, nil
}

// deleteDangles repeatedly removes chains with a free endpoint, appending
// them to dangles.
func deleteDangles(chains [][]orb.Point, dangles []orb.LineString) ([][]orb.Point, []orb.LineString) {
	for {
		degree := map[orb.Point]int{}
		for _, pts := range chains {
			degree[pts[0]]++
			degree[pts[len(pts)-1]]++
		}
		var kept [][]orb.Point
		removed := false
		for _, pts := range chains {
			if degree[pts[0]] == 1 || degree[pts[len(pts)-1]] == 1 {
				dangles = append(dangles, orb.LineString(pts))
				removed = true
			} else {
				kept = append(kept, pts)
			}
		}
		chains = kept
		if !removed {
			return chains, dangles
		}
	}
}

// assemblePolygonizedRings splits the traced rings into face rings (clockwise,
// face on the right) and their counterclockwise counterparts, and assigns
// each counterclockwise ring lying inside a face to that face as a hole.
// Counterclockwise rings contained in no face bound the unbounded region and
// are dropped.
func assemblePolygonizedRings(rings []*edgeRing) []orb.Polygon {
	var shells, holes []*edgeRing
	for _, er := range rings {
		if er.isHole() {
			holes = append(holes, er)
		} else {
			shells = append(shells, er)
		}
	}

	for _, hole := range holes {
		if shell := findPolygonizedShell(hole, shells); shell != nil {
			hole.setShell(shell)
		}
	}

	polys := make([]orb.Polygon, 0, len(shells))
	for _, shell := range shells {
		poly := orb.Polygon{orb.Ring(reversePoints(shell.pts))}
		for _, hole := range shell.holes {
			poly = append(poly, orb.Ring(reversePoints(hole.pts)))
		}
		polys = append(polys, poly)
	}
	return polys
}

// findPolygonizedShell returns the smallest shell containing the hole. The
// hole shares every point with the ring of the face it itself bounds, so the
// test point must avoid the candidate's own coordinates.
func findPolygonizedShell(hole *edgeRing, shells []*edgeRing) *edgeRing {
	holeBound := pointsBound(hole.pts)

	var minShell *edgeRing
	var minBound orb.Bound
	for _, shell := range shells {
		b := pointsBound(shell.pts)
		if !boundContainsBound(b, holeBound) {
			continue
		}
		testPt, ok := pointNotInRingPts(hole.pts, shell.pts)
		if !ok || !pointInRing(testPt, shell.pts) {
			continue
		}
		if minShell == nil || boundContainsBound(minBound, b) {
			minShell = shell
			minBound = b
		}
	}
	return minShell
}

// pointNotInRingPts returns a point of pts not occurring among ringPts.
func pointNotInRingPts(pts, ringPts []orb.Point) (orb.Point, bool) {
	in := make(map[orb.Point]bool, len(ringPts))
	for _, p := range ringPts {
		in[p] = true
	}
	for _, p := range pts {
		if !in[p] {
			return p, true
		}
	}
	return orb.Point{}, false
}
