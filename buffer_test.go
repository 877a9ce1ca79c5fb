package topology

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestBufferPoint(t *testing.T) {
	result, err := BufferWithParams(orb.Point{3, 4}, 2.0, BufferParams{QuadrantSegments: 4})
	test.Error(t, err)
	poly, ok := result.(orb.Polygon)
	test.That(t, ok, "point buffer is a polygon")
	test.T(t, len(poly), 1)

	ring := poly[0]
	test.T(t, ring[0], ring[len(ring)-1])
	test.T(t, len(ring)-1, 16) // 4 segments per quadrant
	for _, p := range ring {
		test.That(t, scalar.EqualWithinAbs(dist(p, orb.Point{3, 4}), 2.0, 1e-9),
			"boundary point not at buffer distance: ", p)
	}
	// inscribed 16-gon area
	want := 0.5 * 16 * 4.0 * math.Sin(2.0*math.Pi/16)
	test.That(t, scalar.EqualWithinAbs(areaOf(poly), want, 1e-9), "area of inscribed 16-gon")
}

func TestBufferPointResolution(t *testing.T) {
	// the approximation error shrinks as quadrant segments increase
	errAt := func(q int) float64 {
		result, err := BufferWithParams(orb.Point{0, 0}, 1.0, BufferParams{QuadrantSegments: q})
		test.Error(t, err)
		return math.Abs(areaOf(result) - math.Pi)
	}
	e4, e8, e16 := errAt(4), errAt(8), errAt(16)
	test.That(t, e8 < e4, "more segments must approximate better")
	test.That(t, e16 < e8, "more segments must approximate better")
}

func TestBufferLineCaps(t *testing.T) {
	line := orb.LineString{{0, 0}, {10, 0}}

	round, err := Buffer(line, 1.0)
	test.Error(t, err)
	// rectangle plus an inscribed circle's worth of caps
	capArea := 0.5 * 32 * math.Sin(2.0*math.Pi/32)
	test.That(t, scalar.EqualWithinAbs(areaOf(round), 20.0+capArea, 1e-6),
		"round cap area: ", areaOf(round))

	flat, err := BufferWithParams(line, 1.0, BufferParams{CapStyle: CapFlat})
	test.Error(t, err)
	test.That(t, scalar.EqualWithinAbs(areaOf(flat), 20.0, 1e-9),
		"flat cap area: ", areaOf(flat))

	sq, err := BufferWithParams(line, 1.0, BufferParams{CapStyle: CapSquare})
	test.Error(t, err)
	test.That(t, scalar.EqualWithinAbs(areaOf(sq), 24.0, 1e-9),
		"square cap area: ", areaOf(sq))
}

func TestBufferLineVanishes(t *testing.T) {
	line := orb.LineString{{0, 0}, {10, 0}}
	for _, d := range []float64{0.0, -1.0} {
		result, err := Buffer(line, d)
		test.Error(t, err)
		test.T(t, result, orb.Geometry(orb.Polygon{}))
	}
	pt, err := Buffer(orb.Point{1, 1}, 0.0)
	test.Error(t, err)
	test.T(t, pt, orb.Geometry(orb.Polygon{}))
}

func TestBufferPolygonZero(t *testing.T) {
	// buffering a polygon by zero returns the polygon
	poly := square(0, 0, 4, 4)
	result, err := Buffer(poly, 0.0)
	test.Error(t, err)
	test.Float(t, areaOf(result), 16.0)
	if verr := Validate(result); verr != nil {
		test.Fail(t, verr.String())
	}
}

func TestBufferPolygonExpand(t *testing.T) {
	poly := square(0, 0, 4, 4)
	result, err := Buffer(poly, 1.0)
	test.Error(t, err)
	// area + perimeter*d + corner fillets (a full circle's worth)
	circle := 0.5 * 32 * math.Sin(2.0*math.Pi/32)
	test.That(t, scalar.EqualWithinAbs(areaOf(result), 16.0+16.0+circle, 1e-6),
		"expanded area: ", areaOf(result))
	if verr := Validate(result); verr != nil {
		test.Fail(t, verr.String())
	}
}

func TestBufferPolygonShrink(t *testing.T) {
	poly := square(0, 0, 4, 4)
	result, err := Buffer(poly, -1.0)
	test.Error(t, err)
	test.That(t, scalar.EqualWithinAbs(areaOf(result), 4.0, 1e-9),
		"shrunk area: ", areaOf(result))
}

func TestBufferPolygonErodes(t *testing.T) {
	poly := square(0, 0, 4, 4)
	result, err := Buffer(poly, -2.5)
	test.Error(t, err)
	test.T(t, result, orb.Geometry(orb.Polygon{}))
}

func TestBufferHole(t *testing.T) {
	poly := orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
	}
	// growing the polygon swallows the small hole
	grown, err := Buffer(poly, 1.5)
	test.Error(t, err)
	gp, ok := grown.(orb.Polygon)
	test.That(t, ok, "grown polygon is a single polygon")
	test.T(t, len(gp), 1)

	// shrinking keeps (and grows) the hole
	shrunk, err := Buffer(poly, -0.5)
	test.Error(t, err)
	sp, ok := shrunk.(orb.Polygon)
	test.That(t, ok, "shrunk polygon is a single polygon")
	test.T(t, len(sp), 2)
	// the growing hole gets rounded corners, a full inscribed circle's worth
	hole := 4.0 + 8.0*0.5 + 0.5*32*math.Sin(2.0*math.Pi/32)*0.25
	test.That(t, scalar.EqualWithinAbs(areaOf(sp), 81.0-hole, 1e-6),
		"shrunk area: ", areaOf(sp))
}

func TestBufferPrecisionLadder(t *testing.T) {
	// a sliver far thinner than the buffer distance; the laddered entry
	// point must produce a valid polygon no matter which rung succeeds
	sliver := orb.Polygon{{{0, 0}, {10, 0}, {10, 1e-7}, {5, 2e-7}, {0, 1e-7}, {0, 0}}}
	result, err := Buffer(sliver, 0.5)
	test.Error(t, err)
	if verr := Validate(result); verr != nil {
		test.Fail(t, verr.String())
	}
	test.That(t, scalar.EqualWithinAbs(areaOf(result), 10.0+math.Pi*0.25, 0.2),
		"sliver buffer area: ", areaOf(result))

	// the fixed-precision rungs the ladder falls back to snap-round the
	// curves and must still produce a valid polygon of about the same area
	for _, digits := range []int{6, 4} {
		scale := bufferScaleFactor(sliver, 0.5, digits)
		fixed, err := bufferFixed(sliver, 0.5, BufferParams{}, NewFixedPrecisionModel(scale))
		test.Error(t, err)
		if verr := Validate(fixed); verr != nil {
			test.Fail(t, verr.String())
		}
		test.That(t, scalar.EqualWithinAbs(areaOf(fixed), areaOf(result), 0.3),
			"snap-rounded buffer area at scale ", scale, ": ", areaOf(fixed))
	}
}

func TestBufferMultiPoint(t *testing.T) {
	// far apart buffers stay separate, close ones merge
	far, err := Buffer(orb.MultiPoint{{0, 0}, {10, 0}}, 1.0)
	test.Error(t, err)
	_, ok := far.(orb.MultiPolygon)
	test.That(t, ok, "disjoint buffers form a multipolygon")

	near, err := Buffer(orb.MultiPoint{{0, 0}, {1, 0}}, 1.0)
	test.Error(t, err)
	_, ok = near.(orb.Polygon)
	test.That(t, ok, "overlapping buffers merge into one polygon")
}
