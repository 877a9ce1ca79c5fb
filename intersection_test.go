package topology

import (
	"fmt"
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestLineIntersector(t *testing.T) {
	var tts = []struct {
		p1, p2, q1, q2 orb.Point
		result         int
		proper         bool
		pt             orb.Point
	}{
		// proper crossing
		{orb.Point{0, 0}, orb.Point{2, 2}, orb.Point{0, 2}, orb.Point{2, 0}, PointIntersection, true, orb.Point{1, 1}},
		// endpoint touching the interior of the other segment
		{orb.Point{0, 0}, orb.Point{4, 0}, orb.Point{2, 0}, orb.Point{2, 2}, PointIntersection, false, orb.Point{2, 0}},
		// shared endpoint only
		{orb.Point{0, 0}, orb.Point{2, 0}, orb.Point{2, 0}, orb.Point{2, 2}, PointIntersection, false, orb.Point{2, 0}},
		// disjoint
		{orb.Point{0, 0}, orb.Point{1, 0}, orb.Point{0, 1}, orb.Point{1, 1}, NoIntersection, false, orb.Point{}},
		// disjoint collinear
		{orb.Point{0, 0}, orb.Point{1, 0}, orb.Point{2, 0}, orb.Point{3, 0}, NoIntersection, false, orb.Point{}},
		// collinear endpoint touch collapses to a point
		{orb.Point{0, 0}, orb.Point{1, 0}, orb.Point{1, 0}, orb.Point{2, 0}, PointIntersection, false, orb.Point{1, 0}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			li := &LineIntersector{}
			li.ComputeIntersection(tt.p1, tt.p2, tt.q1, tt.q2)
			test.T(t, li.Result(), tt.result)
			test.T(t, li.IsProper(), tt.proper)
			if tt.result == PointIntersection {
				test.T(t, li.Intersection(0), tt.pt)
			}
		})
	}
}

func TestLineIntersectorCollinear(t *testing.T) {
	li := &LineIntersector{}
	li.ComputeIntersection(orb.Point{0, 0}, orb.Point{4, 0}, orb.Point{1, 0}, orb.Point{3, 0})
	test.T(t, li.Result(), CollinearIntersection)
	test.T(t, li.IntersectionNum(), 2)
	test.T(t, li.Intersection(0), orb.Point{1, 0})
	test.T(t, li.Intersection(1), orb.Point{3, 0})

	li.ComputeIntersection(orb.Point{1, 0}, orb.Point{3, 0}, orb.Point{0, 0}, orb.Point{4, 0})
	test.T(t, li.Result(), CollinearIntersection)
	test.T(t, li.Intersection(0), orb.Point{1, 0})
	test.T(t, li.Intersection(1), orb.Point{3, 0})

	// partial overlap
	li.ComputeIntersection(orb.Point{0, 0}, orb.Point{2, 0}, orb.Point{1, 0}, orb.Point{3, 0})
	test.T(t, li.Result(), CollinearIntersection)
}

func TestLineIntersectorNearParallel(t *testing.T) {
	// nearly parallel segments that truly cross; a naive determinant may miss
	// the intersection, the robust test must not
	li := &LineIntersector{}
	li.ComputeIntersection(
		orb.Point{0, 0}, orb.Point{100, 1e-12},
		orb.Point{0, 1e-13}, orb.Point{100, 0},
	)
	test.T(t, li.HasIntersection(), true)
	pt := li.Intersection(0)
	test.That(t, 0.0 <= pt[0] && pt[0] <= 100.0, "intersection inside segment envelopes")
}

func TestEdgeDistance(t *testing.T) {
	p0, p1 := orb.Point{0, 0}, orb.Point{10, 2}
	test.Float(t, computeEdgeDistance(p0, p0, p1), 0.0)
	test.Float(t, computeEdgeDistance(p1, p0, p1), 10.0)
	test.Float(t, computeEdgeDistance(orb.Point{5, 1}, p0, p1), 5.0)
	// ordering along the segment is monotone
	d1 := computeEdgeDistance(orb.Point{2, 0.4}, p0, p1)
	d2 := computeEdgeDistance(orb.Point{7, 1.4}, p0, p1)
	test.That(t, d1 < d2, "edge distance must be monotone along the segment")
}
