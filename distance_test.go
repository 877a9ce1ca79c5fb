package topology

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestDistance(t *testing.T) {
	a := square(0, 0, 1, 1)
	b := square(3, 0, 4, 1)

	test.Float(t, Distance(a, b), 2.0)
	test.Float(t, Distance(b, a), 2.0)

	pts := ClosestPoints(a, b)
	test.T(t, pts[0], orb.Point{1, 0})
	test.T(t, pts[1], orb.Point{3, 0})
}

func TestDistanceIntersecting(t *testing.T) {
	a := square(0, 0, 2, 2)
	b := square(1, 1, 3, 3)
	test.Float(t, Distance(a, b), 0.0)
}

func TestDistanceContainment(t *testing.T) {
	// a point inside a polygon is at distance zero even though no boundary
	// facet comes close
	poly := square(0, 0, 10, 10)
	test.Float(t, Distance(orb.Point{5, 5}, poly), 0.0)
	test.Float(t, Distance(poly, orb.Point{5, 5}), 0.0)

	inner := square(4, 4, 6, 6)
	test.Float(t, Distance(poly, inner), 0.0)
}

func TestDistancePoints(t *testing.T) {
	test.Float(t, Distance(orb.Point{0, 0}, orb.Point{3, 4}), 5.0)
	test.Float(t, Distance(orb.Point{2, 1}, orb.LineString{{0, 0}, {4, 0}}), 1.0)
}

func TestIsWithinDistance(t *testing.T) {
	a := square(0, 0, 1, 1)
	b := square(3, 0, 4, 1)
	test.That(t, IsWithinDistance(a, b, 2.0), "squares lie exactly at the distance")
	test.That(t, IsWithinDistance(a, b, 2.5), "squares lie within the distance")
	test.That(t, !IsWithinDistance(a, b, 1.9), "squares lie beyond the distance")
}
