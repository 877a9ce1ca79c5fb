package topology

import (
	"math"

	"github.com/paulmach/orb"
)

// Distance returns the minimum distance between the two geometries, zero if
// they intersect.
func Distance(g0, g1 orb.Geometry) float64 {
	op := newDistanceOp(g0, g1, 0.0)
	return op.distance()
}

// IsWithinDistance reports whether the geometries lie within d of each other.
// The search stops as soon as any facet pair closer than d is found.
func IsWithinDistance(g0, g1 orb.Geometry, d float64) bool {
	op := newDistanceOp(g0, g1, d)
	return op.distance() <= d
}

// ClosestPoints returns a pair of points realizing the minimum distance, the
// first lying on g0 and the second on g1.
func ClosestPoints(g0, g1 orb.Geometry) [2]orb.Point {
	op := newDistanceOp(g0, g1, 0.0)
	op.distance()
	return op.minPts
}

type geomFacets struct {
	points []orb.Point
	lines  [][]orb.Point // linestrings and polygon rings
	polys  []orb.Polygon
}

func (f *geomFacets) collect(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		f.points = append(f.points, g)
	case orb.MultiPoint:
		f.points = append(f.points, g...)
	case orb.LineString:
		if len(g) > 0 {
			f.lines = append(f.lines, g)
		}
	case orb.MultiLineString:
		for _, ls := range g {
			f.collect(ls)
		}
	case orb.Ring:
		if len(g) > 0 {
			f.lines = append(f.lines, g)
		}
	case orb.Polygon:
		if len(g) == 0 {
			return
		}
		f.polys = append(f.polys, g)
		for _, r := range g {
			f.lines = append(f.lines, r)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			f.collect(p)
		}
	case orb.Collection:
		for _, sub := range g {
			f.collect(sub)
		}
	case orb.Bound:
		f.collect(g.ToPolygon())
	default:
		panic("bug: unknown geometry type")
	}
}

type distanceOp struct {
	facets   [2]*geomFacets
	termDist float64

	minDist float64
	minPts  [2]orb.Point
}

func newDistanceOp(g0, g1 orb.Geometry, termDist float64) *distanceOp {
	if g0 == nil || g1 == nil {
		panic("Distance: geometry is nil")
	}
	op := &distanceOp{termDist: termDist, minDist: math.Inf(1)}
	op.facets[0] = &geomFacets{}
	op.facets[0].collect(g0)
	op.facets[1] = &geomFacets{}
	op.facets[1].collect(g1)
	return op
}

func (op *distanceOp) done() bool {
	return op.minDist <= op.termDist
}

func (op *distanceOp) update(d float64, p0, p1 orb.Point) {
	if d < op.minDist {
		op.minDist = d
		op.minPts = [2]orb.Point{p0, p1}
	}
}

func (op *distanceOp) distance() float64 {
	op.computeContainment(0)
	if !op.done() {
		op.computeContainment(1)
	}
	if !op.done() {
		op.computeFacets()
	}
	if math.IsInf(op.minDist, 1) {
		// one input had no facets at all
		return 0.0
	}
	return op.minDist
}

// computeContainment detects a vertex of one geometry inside a polygon of
// the other, which makes the distance zero without any facet being close.
func (op *distanceOp) computeContainment(polyIndex int) {
	polys := op.facets[polyIndex].polys
	if len(polys) == 0 {
		return
	}
	other := op.facets[1-polyIndex]
	for _, p := range op.vertices(other) {
		for _, poly := range polys {
			if locateInPolygon(p, poly) != Exterior {
				op.update(0.0, p, p)
				return
			}
		}
	}
}

func (op *distanceOp) vertices(f *geomFacets) []orb.Point {
	pts := append([]orb.Point{}, f.points...)
	for _, line := range f.lines {
		pts = append(pts, line...)
	}
	return pts
}

func (op *distanceOp) computeFacets() {
	f0, f1 := op.facets[0], op.facets[1]

	for _, l0 := range f0.lines {
		for _, l1 := range f1.lines {
			op.lineLineDistance(l0, l1)
			if op.done() {
				return
			}
		}
	}
	for _, p := range f0.points {
		for _, l := range f1.lines {
			op.pointLineDistance(p, l, false)
			if op.done() {
				return
			}
		}
	}
	for _, p := range f1.points {
		for _, l := range f0.lines {
			op.pointLineDistance(p, l, true)
			if op.done() {
				return
			}
		}
	}
	for _, p0 := range f0.points {
		for _, p1 := range f1.points {
			op.update(dist(p0, p1), p0, p1)
			if op.done() {
				return
			}
		}
	}
}

func (op *distanceOp) lineLineDistance(l0, l1 []orb.Point) {
	li := &LineIntersector{}
	for i := 0; i+1 < len(l0); i++ {
		for j := 0; j+1 < len(l1); j++ {
			a0, a1, b0, b1 := l0[i], l0[i+1], l1[j], l1[j+1]
			li.ComputeIntersection(a0, a1, b0, b1)
			if li.HasIntersection() {
				op.update(0.0, li.Intersection(0), li.Intersection(0))
				return
			}
			// disjoint segments realize their distance at an endpoint of one
			// and its projection onto the other
			for _, p := range []orb.Point{a0, a1} {
				q := closestPointOnSeg(p, b0, b1)
				op.update(dist(p, q), p, q)
			}
			for _, q := range []orb.Point{b0, b1} {
				p := closestPointOnSeg(q, a0, a1)
				op.update(dist(p, q), p, q)
			}
			if op.done() {
				return
			}
		}
	}
}

func (op *distanceOp) pointLineDistance(p orb.Point, line []orb.Point, swap bool) {
	for i := 0; i+1 < len(line); i++ {
		if d := distancePointSeg(p, line[i], line[i+1]); d < op.minDist {
			q := closestPointOnSeg(p, line[i], line[i+1])
			if swap {
				op.update(d, q, p)
			} else {
				op.update(d, p, q)
			}
		}
		if op.done() {
			return
		}
	}
}
