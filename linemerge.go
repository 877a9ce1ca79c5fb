package topology

import (
	"sort"

	"github.com/paulmach/orb"
)

// MergeLines joins the input linestrings into maximal chains: wherever
// exactly two line ends meet, the lines are concatenated. Lines are never
// split, only joined, and the input order does not affect the result beyond
// chain orientation.
func MergeLines(lines []orb.LineString) []orb.LineString {
	g := newLineGraph()
	for _, line := range lines {
		pts := removeRepeated(line)
		if len(pts) < 2 {
			continue
		}
		g.addChain(pts)
	}
	return g.mergedLines()
}

// A lineChain is one input line inside the merge graph.
type lineChain struct {
	pts  []orb.Point
	used bool
}

func (c *lineChain) endpoint(atStart bool) orb.Point {
	if atStart {
		return c.pts[0]
	}
	return c.pts[len(c.pts)-1]
}

// oriented returns the chain's points leaving the given endpoint.
func (c *lineChain) oriented(from orb.Point) []orb.Point {
	if c.pts[0] == from {
		return c.pts
	}
	return reversePoints(c.pts)
}

type lineGraph struct {
	chains   []*lineChain
	incident map[orb.Point][]*lineChain
}

func newLineGraph() *lineGraph {
	return &lineGraph{incident: map[orb.Point][]*lineChain{}}
}

func (g *lineGraph) addChain(pts []orb.Point) {
	c := &lineChain{pts: pts}
	g.chains = append(g.chains, c)
	g.incident[c.endpoint(true)] = append(g.incident[c.endpoint(true)], c)
	g.incident[c.endpoint(false)] = append(g.incident[c.endpoint(false)], c)
}

// degree returns the number of line ends meeting at the node. A closed chain
// contributes both its ends.
func (g *lineGraph) degree(node orb.Point) int {
	return len(g.incident[node])
}

func (g *lineGraph) sortedNodes() []orb.Point {
	nodes := make([]orb.Point, 0, len(g.incident))
	for node := range g.incident {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return coordLess(nodes[i], nodes[j])
	})
	return nodes
}

// walk follows chains from node through degree-2 nodes until a junction,
// a free end, or a loop closes.
func (g *lineGraph) walk(node orb.Point, c *lineChain) []orb.Point {
	merged := append([]orb.Point{}, c.oriented(node)...)
	c.used = true
	curr := merged[len(merged)-1]
	for g.degree(curr) == 2 {
		var next *lineChain
		for _, cand := range g.incident[curr] {
			if !cand.used {
				next = cand
				break
			}
		}
		if next == nil {
			break // loop closed
		}
		next.used = true
		merged = append(merged, next.oriented(curr)[1:]...)
		curr = merged[len(merged)-1]
	}
	return merged
}

func (g *lineGraph) mergedLines() []orb.LineString {
	var out []orb.LineString

	// chains starting at junctions and free ends first
	for _, node := range g.sortedNodes() {
		if g.degree(node) == 2 {
			continue
		}
		for _, c := range g.incident[node] {
			if !c.used {
				out = append(out, g.walk(node, c))
			}
		}
	}
	// leftover chains are closed loops of degree-2 nodes
	for _, node := range g.sortedNodes() {
		for _, c := range g.incident[node] {
			if !c.used {
				out = append(out, g.walk(node, c))
			}
		}
	}
	return out
}
