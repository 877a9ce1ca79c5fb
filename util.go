package topology

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// Epsilon is the tolerance used when comparing coordinates that did not come
// out of exact arithmetic, such as generated offset-curve vertices. Graph
// coordinates themselves are compared exactly.
const Epsilon = 1e-10

func equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// coordLess orders coordinates by x and then y, the ordering used for sorted
// node iteration and deterministic tie-breaks.
func coordLess(a, b orb.Point) bool {
	return a[0] < b[0] || a[0] == b[0] && a[1] < b[1]
}

func coordCompare(a, b orb.Point) int {
	if coordLess(a, b) {
		return -1
	} else if coordLess(b, a) {
		return 1
	}
	return 0
}

func dist(a, b orb.Point) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

func sub(a, b orb.Point) orb.Point {
	return orb.Point{a[0] - b[0], a[1] - b[1]}
}

func interpolate(a, b orb.Point, t float64) orb.Point {
	return orb.Point{(1.0-t)*a[0] + t*b[0], (1.0-t)*a[1] + t*b[1]}
}

// quadrant returns the quadrant (0-3, counterclockwise from the positive
// x-axis) of the direction vector (dx,dy). Vectors along the axes belong to
// the counterclockwise-adjacent quadrant.
func quadrant(dx, dy float64) int {
	if dx == 0.0 && dy == 0.0 {
		panic("bug: zero-length segment has no quadrant")
	}
	if dx >= 0.0 {
		if dy >= 0.0 {
			return 0
		}
		return 3
	}
	if dy >= 0.0 {
		return 1
	}
	return 2
}

func isNorthernQuadrant(quad int) bool {
	return quad == 0 || quad == 1
}

func segmentBound(p0, p1 orb.Point) orb.Bound {
	b := orb.Bound{Min: p0, Max: p0}
	return b.Extend(p1)
}

func pointsBound(pts []orb.Point) orb.Bound {
	b := orb.Bound{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b = b.Extend(p)
	}
	return b
}

func expandBound(b orb.Bound, d float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.Min[0] - d, b.Min[1] - d},
		Max: orb.Point{b.Max[0] + d, b.Max[1] + d},
	}
}

func boundContainsBound(outer, inner orb.Bound) bool {
	return outer.Min[0] <= inner.Min[0] && inner.Max[0] <= outer.Max[0] &&
		outer.Min[1] <= inner.Min[1] && inner.Max[1] <= outer.Max[1]
}

// rectOf converts a bound to an R-tree rectangle, expanded slightly on all
// sides: the R-tree requires positive side lengths, and its intersection test
// excludes rectangle boundaries, while edges whose envelopes merely touch
// still intersect and must come out of the broad phase as a candidate pair.
func rectOf(b orb.Bound) rtreego.Rect {
	m := math.Max(
		math.Max(math.Abs(b.Min[0]), math.Abs(b.Max[0])),
		math.Max(math.Abs(b.Min[1]), math.Abs(b.Max[1])),
	)
	pad := 1e-9 * math.Max(1.0, m)
	r, err := rtreego.NewRect(
		rtreego.Point{b.Min[0] - pad, b.Min[1] - pad},
		[]float64{b.Max[0] - b.Min[0] + 2.0*pad, b.Max[1] - b.Min[1] + 2.0*pad},
	)
	if err != nil {
		panic("bug: invalid R-tree rectangle: " + err.Error())
	}
	return r
}

// removeRepeated drops consecutive duplicate points.
func removeRepeated(pts []orb.Point) []orb.Point {
	if len(pts) == 0 {
		return pts
	}
	out := make([]orb.Point, 0, len(pts))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

func reversePoints(pts []orb.Point) []orb.Point {
	out := make([]orb.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
