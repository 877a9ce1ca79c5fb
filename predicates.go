package topology

import (
	"math"
	"math/big"

	"github.com/paulmach/orb"
)

// Orientation of an ordered point triplet.
const (
	orientClockwise        = -1
	orientCollinear        = 0
	orientCounterClockwise = 1
)

// orientationIndex returns the orientation of point q relative to the
// directed segment p0→p1: +1 when q lies to the left (a counterclockwise
// turn), -1 to the right, 0 when collinear. The sign is computed with a
// floating-point filter backed by exact rational arithmetic, so it never
// flips for nearly collinear inputs.
func orientationIndex(p0, p1, q orb.Point) int {
	return signOfDet2x2(p1[0]-p0[0], p1[1]-p0[1], q[0]-p0[0], q[1]-p0[1])
}

// detErrBound is the relative roundoff bound for a 2x2 determinant computed
// in double precision (a small multiple of the machine epsilon).
const detErrBound = 1e-14

// signOfDet2x2 returns the sign of the determinant | x1 y1; x2 y2 |. When the
// floating-point value is too close to zero to trust its sign, the
// determinant is recomputed exactly.
func signOfDet2x2(x1, y1, x2, y2 float64) int {
	det := x1*y2 - y1*x2
	sum := math.Abs(x1*y2) + math.Abs(y1*x2)
	if det > detErrBound*sum {
		return 1
	} else if det < -detErrBound*sum {
		return -1
	}
	return signOfDet2x2Exact(x1, y1, x2, y2)
}

func signOfDet2x2Exact(x1, y1, x2, y2 float64) int {
	var a, b, t big.Rat
	a.SetFloat64(x1)
	t.SetFloat64(y2)
	a.Mul(&a, &t)
	b.SetFloat64(y1)
	t.SetFloat64(x2)
	b.Mul(&b, &t)
	return a.Sub(&a, &b).Sign()
}

// pointOnSegment reports whether p lies on the closed segment p0-p1.
func pointOnSegment(p, p0, p1 orb.Point) bool {
	if !segmentBound(p0, p1).Contains(p) {
		return false
	}
	return orientationIndex(p0, p1, p) == orientCollinear
}

// pointOnLine reports whether p lies on any segment of the line.
func pointOnLine(p orb.Point, line []orb.Point) bool {
	for i := 1; i < len(line); i++ {
		if pointOnSegment(p, line[i-1], line[i]) {
			return true
		}
	}
	return false
}

// locatePointInRing locates p relative to the closed ring using a crossing
// count of the rightwards horizontal ray from p, with the robust orientation
// test deciding each crossing.
func locatePointInRing(p orb.Point, ring []orb.Point) Location {
	crossings := 0
	for i := 1; i < len(ring); i++ {
		p1, p2 := ring[i-1], ring[i]
		if p1[0] < p[0] && p2[0] < p[0] {
			continue
		}
		if p == p2 {
			return Boundary
		}
		if p1[1] == p[1] && p2[1] == p[1] {
			// horizontal segment on the ray
			minx, maxx := p1[0], p2[0]
			if maxx < minx {
				minx, maxx = maxx, minx
			}
			if minx <= p[0] && p[0] <= maxx {
				return Boundary
			}
			continue
		}
		if p1[1] > p[1] && p2[1] <= p[1] || p2[1] > p[1] && p1[1] <= p[1] {
			// segment straddles the ray; orientation gives the side of the
			// crossing relative to p
			sign := signOfDet2x2(p1[0]-p[0], p1[1]-p[1], p2[0]-p[0], p2[1]-p[1])
			if sign == 0 {
				return Boundary
			}
			if p2[1] < p1[1] {
				sign = -sign
			}
			if sign > 0 {
				crossings++
			}
		}
	}
	if crossings%2 == 1 {
		return Interior
	}
	return Exterior
}

func pointInRing(p orb.Point, ring []orb.Point) bool {
	return locatePointInRing(p, ring) != Exterior
}

// isCCW reports whether the closed ring is oriented counterclockwise. The
// orientation is decided at the highest vertex, where the ring cannot fold
// back on itself.
func isCCW(ring []orb.Point) bool {
	if len(ring) < 4 {
		panic("bug: ring has too few points to have an orientation")
	}
	n := len(ring) - 1 // last point repeats the first
	hiIndex := 0
	for i := 1; i <= n; i++ {
		if ring[i][1] > ring[hiIndex][1] {
			hiIndex = i
		}
	}
	hiPt := ring[hiIndex]

	iPrev := hiIndex
	for {
		iPrev = (iPrev + n - 1) % n
		if ring[iPrev] != hiPt || iPrev == hiIndex {
			break
		}
	}
	iNext := hiIndex
	for {
		iNext = (iNext + 1) % n
		if ring[iNext] != hiPt || iNext == hiIndex {
			break
		}
	}
	prev, next := ring[iPrev], ring[iNext]
	if prev == hiPt || next == hiPt || prev == next {
		// degenerate ring, all points collinear
		return false
	}
	disc := orientationIndex(prev, hiPt, next)
	if disc == 0 {
		// collinear apex, fall back to direction along the x-axis
		return prev[0] > next[0]
	}
	return disc > 0
}

// signedArea returns the signed area of the closed ring (positive when
// counterclockwise).
func signedArea(ring []orb.Point) float64 {
	sum := 0.0
	for i := 1; i < len(ring); i++ {
		sum += ring[i-1][0]*ring[i][1] - ring[i][0]*ring[i-1][1]
	}
	return sum / 2.0
}

// distancePointSeg returns the distance between p and the closed segment
// a-b.
func distancePointSeg(p, a, b orb.Point) float64 {
	if a == b {
		return dist(p, a)
	}
	dx, dy := b[0]-a[0], b[1]-a[1]
	r := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / (dx*dx + dy*dy)
	if r <= 0.0 {
		return dist(p, a)
	} else if r >= 1.0 {
		return dist(p, b)
	}
	return dist(p, orb.Point{a[0] + r*dx, a[1] + r*dy})
}

// closestPointOnSeg returns the point on segment a-b closest to p.
func closestPointOnSeg(p, a, b orb.Point) orb.Point {
	if a == b {
		return a
	}
	dx, dy := b[0]-a[0], b[1]-a[1]
	r := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / (dx*dx + dy*dy)
	if r <= 0.0 {
		return a
	} else if r >= 1.0 {
		return b
	}
	return orb.Point{a[0] + r*dx, a[1] + r*dy}
}

// distanceSegSeg returns the distance between the closed segments a0-a1 and
// b0-b1; zero when they intersect.
func distanceSegSeg(a0, a1, b0, b1 orb.Point) float64 {
	li := &LineIntersector{}
	li.ComputeIntersection(a0, a1, b0, b1)
	if li.HasIntersection() {
		return 0.0
	}
	d := distancePointSeg(a0, b0, b1)
	if d2 := distancePointSeg(a1, b0, b1); d2 < d {
		d = d2
	}
	if d2 := distancePointSeg(b0, a0, a1); d2 < d {
		d = d2
	}
	if d2 := distancePointSeg(b1, a0, a1); d2 < d {
		d = d2
	}
	return d
}
