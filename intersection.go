package topology

import (
	"math"

	"github.com/paulmach/orb"
)

// Intersection classifications of two line segments.
const (
	NoIntersection = iota
	PointIntersection
	CollinearIntersection
)

// A LineIntersector computes the intersection of two line segments with
// robust orientation predicates rather than naive determinant division. Near
// parallel or near collinear segments are the primary source of topology
// corruption when done naively: the orientation filter guarantees that an
// intersection a robust test finds is never silently dropped.
//
// The zero value is ready for use. Setting PrecisionModel snaps computed
// intersection points to its grid.
type LineIntersector struct {
	PrecisionModel *PrecisionModel

	result     int
	inputLines [2][2]orb.Point
	intPt      [2]orb.Point
	proper     bool
}

// ComputeIntersection computes the intersection of segments p1-p2 and q1-q2.
func (li *LineIntersector) ComputeIntersection(p1, p2, q1, q2 orb.Point) {
	li.inputLines[0] = [2]orb.Point{p1, p2}
	li.inputLines[1] = [2]orb.Point{q1, q2}
	li.result = li.computeIntersect(p1, p2, q1, q2)
}

// HasIntersection reports whether the segments intersect at all.
func (li *LineIntersector) HasIntersection() bool {
	return li.result != NoIntersection
}

// Result returns the intersection classification.
func (li *LineIntersector) Result() int {
	return li.result
}

// IntersectionNum returns the number of intersection points (0, 1, or 2 for
// collinear overlap).
func (li *LineIntersector) IntersectionNum() int {
	switch li.result {
	case PointIntersection:
		return 1
	case CollinearIntersection:
		return 2
	}
	return 0
}

// Intersection returns the i'th intersection point.
func (li *LineIntersector) Intersection(i int) orb.Point {
	return li.intPt[i]
}

// IsProper reports whether the intersection is a proper one: a single point
// lying in the interior of both segments.
func (li *LineIntersector) IsProper() bool {
	return li.HasIntersection() && li.proper
}

// isInteriorIntersection reports whether some intersection point lies in the
// interior of some input segment. Such a point forces a split, so noding has
// not converged while any remain.
func (li *LineIntersector) isInteriorIntersection() bool {
	for i := 0; i < li.IntersectionNum(); i++ {
		for seg := 0; seg < 2; seg++ {
			if li.intPt[i] != li.inputLines[seg][0] && li.intPt[i] != li.inputLines[seg][1] {
				return true
			}
		}
	}
	return false
}

// EdgeDistance returns a distance metric of intersection point i along input
// segment segIndex, monotone in the position along the segment. It is used to
// order multiple intersections on the same edge.
func (li *LineIntersector) EdgeDistance(segIndex, i int) float64 {
	return computeEdgeDistance(li.intPt[i], li.inputLines[segIndex][0], li.inputLines[segIndex][1])
}

// computeEdgeDistance measures p along p0-p1 using the dominant ordinate,
// which is exact for points produced by snapping and avoids the roundoff of a
// true euclidean distance.
func computeEdgeDistance(p, p0, p1 orb.Point) float64 {
	dx := math.Abs(p1[0] - p0[0])
	dy := math.Abs(p1[1] - p0[1])
	if p == p0 {
		return 0.0
	} else if p == p1 {
		if dx > dy {
			return dx
		}
		return dy
	}
	pdx := math.Abs(p[0] - p0[0])
	pdy := math.Abs(p[1] - p0[1])
	var d float64
	if dx > dy {
		d = pdx
	} else {
		d = pdy
	}
	if d == 0.0 {
		// points are different but the dominant ordinate projection is zero
		d = math.Max(pdx, pdy)
	}
	return d
}

func (li *LineIntersector) computeIntersect(p1, p2, q1, q2 orb.Point) int {
	li.proper = false
	if !segmentBound(p1, p2).Intersects(segmentBound(q1, q2)) {
		return NoIntersection
	}

	pq1 := orientationIndex(p1, p2, q1)
	pq2 := orientationIndex(p1, p2, q2)
	if pq1 > 0 && pq2 > 0 || pq1 < 0 && pq2 < 0 {
		return NoIntersection
	}
	qp1 := orientationIndex(q1, q2, p1)
	qp2 := orientationIndex(q1, q2, p2)
	if qp1 > 0 && qp2 > 0 || qp1 < 0 && qp2 < 0 {
		return NoIntersection
	}

	if pq1 == 0 && pq2 == 0 && qp1 == 0 && qp2 == 0 {
		return li.computeCollinearIntersection(p1, p2, q1, q2)
	}

	if pq1 == 0 || pq2 == 0 || qp1 == 0 || qp2 == 0 {
		// an endpoint lies on the other segment; prefer exact endpoint
		// equality to avoid computing a new point
		switch {
		case p1 == q1 || p1 == q2:
			li.intPt[0] = p1
		case p2 == q1 || p2 == q2:
			li.intPt[0] = p2
		case pq1 == 0:
			li.intPt[0] = q1
		case pq2 == 0:
			li.intPt[0] = q2
		case qp1 == 0:
			li.intPt[0] = p1
		default:
			li.intPt[0] = p2
		}
	} else {
		li.proper = true
		li.intPt[0] = li.intersectionPoint(p1, p2, q1, q2)
	}
	return PointIntersection
}

func (li *LineIntersector) computeCollinearIntersection(p1, p2, q1, q2 orb.Point) int {
	pb := segmentBound(p1, p2)
	qb := segmentBound(q1, q2)
	q1onP := pb.Contains(q1)
	q2onP := pb.Contains(q2)
	p1onQ := qb.Contains(p1)
	p2onQ := qb.Contains(p2)

	switch {
	case q1onP && q2onP:
		li.intPt[0], li.intPt[1] = q1, q2
		return CollinearIntersection
	case p1onQ && p2onQ:
		li.intPt[0], li.intPt[1] = p1, p2
		return CollinearIntersection
	case q1onP && p1onQ:
		li.intPt[0], li.intPt[1] = q1, p1
		if q1 == p1 && !q2onP && !p2onQ {
			return PointIntersection
		}
		return CollinearIntersection
	case q1onP && p2onQ:
		li.intPt[0], li.intPt[1] = q1, p2
		if q1 == p2 && !q2onP && !p1onQ {
			return PointIntersection
		}
		return CollinearIntersection
	case q2onP && p1onQ:
		li.intPt[0], li.intPt[1] = q2, p1
		if q2 == p1 && !q1onP && !p2onQ {
			return PointIntersection
		}
		return CollinearIntersection
	case q2onP && p2onQ:
		li.intPt[0], li.intPt[1] = q2, p2
		if q2 == p2 && !q1onP && !p1onQ {
			return PointIntersection
		}
		return CollinearIntersection
	}
	return NoIntersection
}

// intersectionPoint computes the actual point of a proper intersection. The
// inputs are translated towards the origin to minimize relative roundoff,
// intersected homogeneously, and translated back. If roundoff still pushes
// the computed point outside both segment envelopes, the nearest input
// endpoint is used instead, which is guaranteed to be a sane answer for
// nearly parallel segments.
func (li *LineIntersector) intersectionPoint(p1, p2, q1, q2 orb.Point) orb.Point {
	mid := orb.Point{
		(p1[0] + p2[0] + q1[0] + q2[0]) / 4.0,
		(p1[1] + p2[1] + q1[1] + q2[1]) / 4.0,
	}
	a1, a2 := sub(p1, mid), sub(p2, mid)
	b1, b2 := sub(q1, mid), sub(q2, mid)

	// homogeneous line coordinates
	px, py, pw := a1[1]-a2[1], a2[0]-a1[0], a1[0]*a2[1]-a2[0]*a1[1]
	qx, qy, qw := b1[1]-b2[1], b2[0]-b1[0], b1[0]*b2[1]-b2[0]*b1[1]
	w := px*qy - qx*py
	x := (py*qw - qy*pw) / w
	y := (qx*pw - px*qw) / w

	pt := orb.Point{x + mid[0], y + mid[1]}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) ||
		!expandBound(segmentBound(p1, p2), Epsilon).Contains(pt) &&
			!expandBound(segmentBound(q1, q2), Epsilon).Contains(pt) {
		pt = nearestEndpoint(p1, p2, q1, q2)
	}
	if li.PrecisionModel != nil {
		pt = li.PrecisionModel.MakePrecise(pt)
	}
	return pt
}

// nearestEndpoint returns the input endpoint closest to the other segment.
func nearestEndpoint(p1, p2, q1, q2 orb.Point) orb.Point {
	pt := p1
	d := distancePointSeg(p1, q1, q2)
	if d2 := distancePointSeg(p2, q1, q2); d2 < d {
		d, pt = d2, p2
	}
	if d2 := distancePointSeg(q1, p1, p2); d2 < d {
		d, pt = d2, q1
	}
	if d2 := distancePointSeg(q2, p1, p2); d2 < d {
		pt = q2
	}
	return pt
}
