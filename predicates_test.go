package topology

import (
	"fmt"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestOrientationIndex(t *testing.T) {
	var tts = []struct {
		p0, p1, q orb.Point
		index     int
	}{
		{orb.Point{0, 0}, orb.Point{2, 0}, orb.Point{1, 1}, orientCounterClockwise},
		{orb.Point{0, 0}, orb.Point{2, 0}, orb.Point{1, -1}, orientClockwise},
		{orb.Point{0, 0}, orb.Point{2, 0}, orb.Point{1, 0}, orientCollinear},
		{orb.Point{0, 0}, orb.Point{2, 0}, orb.Point{3, 0}, orientCollinear},
		{orb.Point{0, 0}, orb.Point{2, 2}, orb.Point{1, 1}, orientCollinear},
		{orb.Point{1, 1}, orb.Point{1, 1}, orb.Point{2, 2}, orientCollinear},
		// nearly collinear, the determinant sign is below the roundoff bound
		{orb.Point{0, 0}, orb.Point{3, 3}, orb.Point{1.5, 1.5000000000000002}, orientCounterClockwise},
		{orb.Point{0, 0}, orb.Point{3, 3}, orb.Point{1.5, 1.4999999999999998}, orientClockwise},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, orientationIndex(tt.p0, tt.p1, tt.q), tt.index)
		})
	}
}

func TestSignOfDet2x2Exact(t *testing.T) {
	up := 1.0000000000000002 // one ulp above 1, below the roundoff bound
	test.T(t, signOfDet2x2(up, 1.0, 1.0, 1.0), 1)
	test.T(t, signOfDet2x2(1.0, up, 1.0, 1.0), -1)
	test.T(t, signOfDet2x2(1.0, 1.0, 1.0, 1.0), 0)
}

func TestPointOnSegment(t *testing.T) {
	test.T(t, pointOnSegment(orb.Point{1, 1}, orb.Point{0, 0}, orb.Point{2, 2}), true)
	test.T(t, pointOnSegment(orb.Point{0, 0}, orb.Point{0, 0}, orb.Point{2, 2}), true)
	test.T(t, pointOnSegment(orb.Point{3, 3}, orb.Point{0, 0}, orb.Point{2, 2}), false)
	test.T(t, pointOnSegment(orb.Point{1, 2}, orb.Point{0, 0}, orb.Point{2, 2}), false)
}

func TestLocatePointInRing(t *testing.T) {
	ring := []orb.Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}
	var tts = []struct {
		p   orb.Point
		loc Location
	}{
		{orb.Point{2, 2}, Interior},
		{orb.Point{2, 0}, Boundary},
		{orb.Point{4, 4}, Boundary},
		{orb.Point{0, 2}, Boundary},
		{orb.Point{5, 2}, Exterior},
		{orb.Point{-1, 0}, Exterior},
		{orb.Point{2, 5}, Exterior},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, locatePointInRing(tt.p, ring), tt.loc)
		})
	}

	// concave ring, the ray crosses the boundary more than once
	concave := []orb.Point{{0, 0}, {6, 0}, {6, 6}, {3, 3}, {0, 6}, {0, 0}}
	test.T(t, locatePointInRing(orb.Point{1, 1}, concave), Interior)
	test.T(t, locatePointInRing(orb.Point{3, 5}, concave), Exterior)
	test.T(t, locatePointInRing(orb.Point{3, 3}, concave), Boundary)
}

func TestIsCCW(t *testing.T) {
	test.T(t, isCCW([]orb.Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}), true)
	test.T(t, isCCW([]orb.Point{{0, 0}, {0, 2}, {2, 2}, {2, 0}, {0, 0}}), false)
	// repeated apex vertex
	test.T(t, isCCW([]orb.Point{{0, 0}, {2, 0}, {2, 2}, {2, 2}, {0, 2}, {0, 0}}), true)
}

func TestSignedArea(t *testing.T) {
	test.Float(t, signedArea([]orb.Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}), 4.0)
	test.Float(t, signedArea([]orb.Point{{0, 0}, {0, 2}, {2, 2}, {2, 0}, {0, 0}}), -4.0)
	test.Float(t, signedArea([]orb.Point{{0, 0}, {3, 0}, {0, 4}, {0, 0}}), 6.0)
}

func TestDistancePointSeg(t *testing.T) {
	test.Float(t, distancePointSeg(orb.Point{0, 3}, orb.Point{-1, 0}, orb.Point{1, 0}), 3.0)
	test.Float(t, distancePointSeg(orb.Point{5, 4}, orb.Point{-1, 0}, orb.Point{1, 0}), math.Sqrt(32.0))
	test.Float(t, distancePointSeg(orb.Point{0, 0}, orb.Point{0, 0}, orb.Point{0, 0}), 0.0)
	test.T(t, closestPointOnSeg(orb.Point{0, 3}, orb.Point{-1, 0}, orb.Point{1, 0}), orb.Point{0, 0})
	test.T(t, closestPointOnSeg(orb.Point{5, 4}, orb.Point{-1, 0}, orb.Point{1, 0}), orb.Point{1, 0})
}

func TestQuadrant(t *testing.T) {
	test.T(t, quadrant(1.0, 1.0), 0)
	test.T(t, quadrant(-1.0, 1.0), 1)
	test.T(t, quadrant(-1.0, -1.0), 2)
	test.T(t, quadrant(1.0, -1.0), 3)
	test.T(t, quadrant(1.0, 0.0), 0)
	test.T(t, quadrant(0.0, 1.0), 0)
	test.T(t, quadrant(-1.0, 0.0), 1)
	test.T(t, quadrant(0.0, -1.0), 3)
}
