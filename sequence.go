package topology

import "github.com/paulmach/orb"

// SequenceLines orders and orients the input linestrings so that consecutive
// lines connect end to start wherever the line graph permits it. Each
// connected component is walked Eulerian-path style, starting at its lowest
// odd-degree node (lowest node overall when all degrees are even). The
// returned flag reports whether every component formed a single unbroken
// path.
func SequenceLines(lines []orb.LineString) ([]orb.LineString, bool) {
	g := newLineGraph()
	for _, line := range lines {
		pts := removeRepeated(line)
		if len(pts) < 2 {
			continue
		}
		g.addChain(pts)
	}

	var sequenced []orb.LineString
	sequenceable := true
	for {
		start, ok := g.sequenceStart()
		if !ok {
			break
		}
		paths := g.eulerWalk(start)
		if len(paths) != 1 {
			sequenceable = false
		}
		for _, path := range paths {
			sequenced = append(sequenced, path...)
		}
	}
	return sequenced, sequenceable
}

// sequenceStart picks the walk start for the next unexhausted component:
// the lowest node with an odd number of unused line ends, or the lowest node
// with any unused line when all degrees are even.
func (g *lineGraph) sequenceStart() (orb.Point, bool) {
	var lowest, lowestOdd orb.Point
	haveAny, haveOdd := false, false
	for _, node := range g.sortedNodes() {
		unused := 0
		for _, c := range g.incident[node] {
			if !c.used {
				unused++
			}
		}
		if unused == 0 {
			continue
		}
		if !haveAny {
			lowest = node
			haveAny = true
		}
		if unused%2 == 1 && !haveOdd {
			lowestOdd = node
			haveOdd = true
		}
	}
	if haveOdd {
		return lowestOdd, true
	}
	return lowest, haveAny
}

type sequenceStep struct {
	node  orb.Point
	chain []orb.Point // oriented points arriving at node, nil for the start
}

// eulerWalk consumes the component reachable from start and returns its
// lines, ordered and oriented along the walk. Components with more than two
// odd nodes cannot form one path; the walk then returns each contiguous run
// as a separate path.
func (g *lineGraph) eulerWalk(start orb.Point) [][]orb.LineString {
	stack := []sequenceStep{{node: start}}
	var trail [][]orb.Point
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		next := g.nextUnused(top.node)
		if next != nil {
			next.used = true
			oriented := next.oriented(top.node)
			stack = append(stack, sequenceStep{
				node:  oriented[len(oriented)-1],
				chain: oriented,
			})
			continue
		}
		stack = stack[:len(stack)-1]
		if top.chain != nil {
			trail = append(trail, top.chain)
		}
	}
	// the trail was collected backwards
	for i, j := 0, len(trail)-1; i < j; i, j = i+1, j-1 {
		trail[i], trail[j] = trail[j], trail[i]
	}

	var paths [][]orb.LineString
	var curr []orb.LineString
	for _, chain := range trail {
		if len(curr) > 0 {
			prev := curr[len(curr)-1]
			if prev[len(prev)-1] != chain[0] {
				paths = append(paths, curr)
				curr = nil
			}
		}
		curr = append(curr, orb.LineString(chain))
	}
	if len(curr) > 0 {
		paths = append(paths, curr)
	}
	return paths
}

// nextUnused returns the unused chain at node whose far endpoint is lowest.
func (g *lineGraph) nextUnused(node orb.Point) *lineChain {
	var best *lineChain
	var bestFar orb.Point
	for _, c := range g.incident[node] {
		if c.used {
			continue
		}
		oriented := c.oriented(node)
		far := oriented[len(oriented)-1]
		if best == nil || coordLess(far, bestFar) {
			best = c
			bestFar = far
		}
	}
	return best
}
