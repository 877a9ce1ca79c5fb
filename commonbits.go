package topology

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// commonBits accumulates the bit pattern shared by a stream of doubles: the
// sign, exponent and leading mantissa bits common to all of them.
type commonBits struct {
	started       bool
	bits          int64
	signExp       int64
	mantissaCount int
}

func signExpBits(num int64) int64 {
	return num >> 52
}

func bitAt(bits int64, i uint) int64 {
	return (bits >> i) & 1
}

func numCommonMostSigMantissaBits(num1, num2 int64) int {
	count := 0
	for i := 52; i >= 0; i-- {
		if bitAt(num1, uint(i)) != bitAt(num2, uint(i)) {
			return count
		}
		count++
	}
	return 52
}

func zeroLowerBits(bits int64, nBits int) int64 {
	if nBits >= 64 {
		return 0
	}
	return bits &^ (int64(1)<<uint(nBits) - 1)
}

func (cb *commonBits) add(num float64) {
	numBits := int64(math.Float64bits(num))
	if !cb.started {
		cb.started = true
		cb.bits = numBits
		cb.signExp = signExpBits(numBits)
		cb.mantissaCount = 53
		return
	}
	if signExpBits(numBits) != cb.signExp {
		cb.bits = 0
		return
	}
	cb.mantissaCount = numCommonMostSigMantissaBits(cb.bits, numBits)
	cb.bits = zeroLowerBits(cb.bits, 64-(12+cb.mantissaCount))
}

func (cb *commonBits) common() float64 {
	return math.Float64frombits(uint64(cb.bits))
}

// A CommonBitsRemover computes the common most significant bits of all the
// coordinates in a set of geometries and translates them away, shifting the
// inputs towards the origin so an overlay computes with the full mantissa.
type CommonBitsRemover struct {
	x, y commonBits
}

// Add folds the coordinates of g into the common bit pattern.
func (r *CommonBitsRemover) Add(g orb.Geometry) {
	forEachPoint(g, func(p orb.Point) orb.Point {
		r.x.add(p[0])
		r.y.add(p[1])
		return p
	})
}

// CommonCoordinate returns the translation the removal applies.
func (r *CommonBitsRemover) CommonCoordinate() orb.Point {
	return orb.Point{r.x.common(), r.y.common()}
}

// RemoveCommonBits translates g by the negated common coordinate.
func (r *CommonBitsRemover) RemoveCommonBits(g orb.Geometry) orb.Geometry {
	c := r.CommonCoordinate()
	if c[0] == 0.0 && c[1] == 0.0 {
		return g
	}
	return forEachPoint(g, func(p orb.Point) orb.Point {
		return orb.Point{p[0] - c[0], p[1] - c[1]}
	})
}

// AddCommonBits translates g back by the common coordinate.
func (r *CommonBitsRemover) AddCommonBits(g orb.Geometry) orb.Geometry {
	c := r.CommonCoordinate()
	if c[0] == 0.0 && c[1] == 0.0 {
		return g
	}
	return forEachPoint(g, func(p orb.Point) orb.Point {
		return orb.Point{p[0] + c[0], p[1] + c[1]}
	})
}

// forEachPoint maps every coordinate of g, returning the mapped geometry.
func forEachPoint(g orb.Geometry, f func(orb.Point) orb.Point) orb.Geometry {
	switch g := g.(type) {
	case orb.Point:
		return f(g)
	case orb.MultiPoint:
		out := make(orb.MultiPoint, len(g))
		for i, p := range g {
			out[i] = f(p)
		}
		return out
	case orb.LineString:
		out := make(orb.LineString, len(g))
		for i, p := range g {
			out[i] = f(p)
		}
		return out
	case orb.Ring:
		out := make(orb.Ring, len(g))
		for i, p := range g {
			out[i] = f(p)
		}
		return out
	case orb.Polygon:
		out := make(orb.Polygon, len(g))
		for i, r := range g {
			out[i] = forEachPoint(r, f).(orb.Ring)
		}
		return out
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(g))
		for i, p := range g {
			out[i] = forEachPoint(p, f).(orb.Polygon)
		}
		return out
	case orb.Collection:
		out := make(orb.Collection, len(g))
		for i, sub := range g {
			out[i] = forEachPoint(sub, f)
		}
		return out
	case orb.Bound:
		return orb.Bound{Min: f(g.Min), Max: f(g.Max)}
	}
	panic("bug: unknown geometry type")
}

////////////////

// EnhancedOverlay computes an overlay, retrying with common bits removed when
// the plain computation fails on a robustness error. If the retry produces an
// invalid geometry the original error is returned, never a silently wrong
// result.
func EnhancedOverlay(g0, g1 orb.Geometry, op OverlayKind) (orb.Geometry, error) {
	result, origErr := Overlay(g0, g1, op)
	if origErr == nil {
		return result, nil
	}
	var topoErr *TopologyError
	if !errors.As(origErr, &topoErr) {
		return nil, origErr
	}

	var cbr CommonBitsRemover
	cbr.Add(g0)
	cbr.Add(g1)
	retried, err := Overlay(cbr.RemoveCommonBits(g0), cbr.RemoveCommonBits(g1), op)
	if err != nil {
		return nil, origErr
	}
	retried = cbr.AddCommonBits(retried)
	if Validate(retried) != nil {
		return nil, origErr
	}
	return retried, nil
}

// EnhancedIntersection is Intersection with the common-bits retry.
func EnhancedIntersection(g0, g1 orb.Geometry) (orb.Geometry, error) {
	return EnhancedOverlay(g0, g1, OpIntersection)
}

// EnhancedUnion is Union with the common-bits retry.
func EnhancedUnion(g0, g1 orb.Geometry) (orb.Geometry, error) {
	return EnhancedOverlay(g0, g1, OpUnion)
}

// EnhancedDifference is Difference with the common-bits retry.
func EnhancedDifference(g0, g1 orb.Geometry) (orb.Geometry, error) {
	return EnhancedOverlay(g0, g1, OpDifference)
}

// EnhancedSymDifference is SymDifference with the common-bits retry.
func EnhancedSymDifference(g0, g1 orb.Geometry) (orb.Geometry, error) {
	return EnhancedOverlay(g0, g1, OpSymDifference)
}

// EnhancedBuffer is Buffer with the common-bits retry.
func EnhancedBuffer(g orb.Geometry, distance float64) (orb.Geometry, error) {
	result, origErr := Buffer(g, distance)
	if origErr == nil {
		return result, nil
	}
	var topoErr *TopologyError
	if !errors.As(origErr, &topoErr) {
		return nil, origErr
	}

	var cbr CommonBitsRemover
	cbr.Add(g)
	retried, err := Buffer(cbr.RemoveCommonBits(g), distance)
	if err != nil {
		return nil, origErr
	}
	retried = cbr.AddCommonBits(retried)
	if Validate(retried) != nil {
		return nil, origErr
	}
	return retried, nil
}
