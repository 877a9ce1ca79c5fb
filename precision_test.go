package topology

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestMakePrecise(t *testing.T) {
	floating := NewPrecisionModel()
	test.T(t, floating.IsFloating(), true)
	test.T(t, floating.MakePrecise(orb.Point{1.23456, 7.89}), orb.Point{1.23456, 7.89})

	fixed := NewFixedPrecisionModel(10.0)
	test.T(t, fixed.IsFloating(), false)
	test.Float(t, fixed.Scale(), 10.0)
	test.T(t, fixed.MakePrecise(orb.Point{1.234, 5.678}), orb.Point{1.2, 5.7})
	test.T(t, fixed.MakePrecise(orb.Point{-1.234, -5.678}), orb.Point{-1.2, -5.7})

	unit := NewFixedPrecisionModel(1.0)
	test.T(t, unit.MakePrecise(orb.Point{0.4, 0.6}), orb.Point{0.0, 1.0})
}

func TestReducePrecision(t *testing.T) {
	pm := NewFixedPrecisionModel(1.0)

	test.T(t, ReducePrecision(orb.Point{1.4, 2.6}, pm), orb.Point{1.0, 3.0})
	test.T(t, ReducePrecision(orb.LineString{{0.1, 0.1}, {3.9, 0.2}}, pm),
		orb.LineString{{0.0, 0.0}, {4.0, 0.0}})

	// a line collapsing to a point is dropped
	test.T(t, ReducePrecision(orb.LineString{{0.1, 0.1}, {0.2, 0.2}}, pm), orb.LineString{})

	// a ring collapsing below four points is dropped
	sliver := orb.Ring{{0, 0}, {10, 0.1}, {10, 0.2}, {0, 0}}
	test.T(t, ReducePrecision(sliver, pm), orb.Ring{})

	// a polygon keeps its shell but loses collapsed holes
	poly := orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{2, 2}, {2.1, 2}, {2.1, 2.1}, {2, 2}},
	}
	test.T(t, ReducePrecision(poly, pm),
		orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}})

	// a polygon whose shell collapses vanishes entirely
	test.T(t, ReducePrecision(orb.Polygon{sliver}, pm), orb.Polygon{})
}
