package topology

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestCommonBits(t *testing.T) {
	var cb commonBits
	cb.add(123.456)
	test.Float(t, cb.common(), 123.456)
	cb.add(123.456)
	test.Float(t, cb.common(), 123.456)

	// differing sign or exponent leaves nothing in common
	var cb2 commonBits
	cb2.add(1.0)
	cb2.add(-1.0)
	test.Float(t, cb2.common(), 0.0)

	var cb3 commonBits
	cb3.add(1.0)
	cb3.add(1024.0)
	test.Float(t, cb3.common(), 0.0)

	// the common value keeps the shared leading bits only
	var cb4 commonBits
	cb4.add(123456789.25)
	cb4.add(123456790.5)
	c := cb4.common()
	test.That(t, 0.0 < c && c <= 123456789.25, "common bits value out of range: ", c)
	// removal must be exact for every added value
	for _, v := range []float64{123456789.25, 123456790.5} {
		test.Float(t, (v-c)+c, v)
	}
}

func TestCommonBitsRemover(t *testing.T) {
	base := 1.23456789e8
	poly := square(base, base, base+1.0, base+1.0)

	var cbr CommonBitsRemover
	cbr.Add(poly)
	c := cbr.CommonCoordinate()
	test.That(t, c[0] > 0.0 && c[1] > 0.0, "expected a nonzero translation")

	shifted := cbr.RemoveCommonBits(poly)
	sb := shifted.Bound()
	test.That(t, math.Abs(sb.Min[0]) < 1024.0 && math.Abs(sb.Min[1]) < 1024.0,
		"shifted geometry should sit near the origin")

	// the translation round-trips exactly
	back := cbr.AddCommonBits(shifted)
	test.T(t, back, orb.Geometry(poly))
}

func TestEnhancedOverlay(t *testing.T) {
	base := 1.0e8
	a := square(base, base, base+2.0, base+2.0)
	b := square(base+1.0, base+1.0, base+3.0, base+3.0)

	inter, err := EnhancedIntersection(a, b)
	test.Error(t, err)
	test.Float(t, areaOf(inter), 1.0)

	union, err := EnhancedUnion(a, b)
	test.Error(t, err)
	test.Float(t, areaOf(union), 7.0)

	diff, err := EnhancedDifference(a, b)
	test.Error(t, err)
	test.Float(t, areaOf(diff), 3.0)

	sym, err := EnhancedSymDifference(a, b)
	test.Error(t, err)
	test.Float(t, areaOf(sym), 6.0)
}

func TestEnhancedBuffer(t *testing.T) {
	result, err := EnhancedBuffer(square(0, 0, 4, 4), 0.0)
	test.Error(t, err)
	test.Float(t, areaOf(result), 16.0)
}
