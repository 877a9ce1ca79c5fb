package topology

import (
	"math"

	"github.com/paulmach/orb"
)

// MaxPrecisionDigits is the most significant digits a fixed precision model
// derived from an envelope can resolve, and the top of the buffer retry
// ladder.
const MaxPrecisionDigits = 12

// A PrecisionModel specifies the grid coordinates live on: floating (no
// snapping) or fixed, where coordinates are snapped to a grid with cells of
// size 1/scale. Once an operation has chosen a model, every coordinate
// entering its graph is snapped consistently.
type PrecisionModel struct {
	scale float64 // 0 for floating
}

// NewPrecisionModel returns the floating precision model.
func NewPrecisionModel() *PrecisionModel {
	return &PrecisionModel{}
}

// NewFixedPrecisionModel returns a fixed model snapping to a 1/scale grid.
func NewFixedPrecisionModel(scale float64) *PrecisionModel {
	if scale <= 0.0 {
		panic("fixed precision model requires a positive scale")
	}
	return &PrecisionModel{scale: scale}
}

func (pm *PrecisionModel) IsFloating() bool {
	return pm == nil || pm.scale == 0.0
}

func (pm *PrecisionModel) Scale() float64 {
	return pm.scale
}

func (pm *PrecisionModel) makePreciseValue(v float64) float64 {
	if pm.IsFloating() {
		return v
	}
	return math.Round(v*pm.scale) / pm.scale
}

// MakePrecise snaps p onto the model's grid.
func (pm *PrecisionModel) MakePrecise(p orb.Point) orb.Point {
	if pm.IsFloating() {
		return p
	}
	return orb.Point{pm.makePreciseValue(p[0]), pm.makePreciseValue(p[1])}
}

// ReducePrecision maps every coordinate of g through the precision model.
// Rings that collapse below four points and lines that collapse below two are
// dropped from the result.
func ReducePrecision(g orb.Geometry, pm *PrecisionModel) orb.Geometry {
	if g == nil {
		panic("ReducePrecision: geometry is nil")
	}
	switch g := g.(type) {
	case orb.Point:
		return pm.MakePrecise(g)
	case orb.MultiPoint:
		out := make(orb.MultiPoint, len(g))
		for i, p := range g {
			out[i] = pm.MakePrecise(p)
		}
		return out
	case orb.LineString:
		pts := reducePoints(g, pm)
		if len(pts) < 2 {
			return orb.LineString{}
		}
		return orb.LineString(pts)
	case orb.Ring:
		pts := reducePoints(g, pm)
		if len(pts) < 4 || pts[0] != pts[len(pts)-1] {
			return orb.Ring{}
		}
		return orb.Ring(pts)
	case orb.Polygon:
		out := orb.Polygon{}
		for i, r := range g {
			rr := ReducePrecision(r, pm).(orb.Ring)
			if len(rr) == 0 {
				if i == 0 {
					return orb.Polygon{} // shell collapsed
				}
				continue
			}
			out = append(out, rr)
		}
		return out
	case orb.MultiPolygon:
		out := orb.MultiPolygon{}
		for _, p := range g {
			pp := ReducePrecision(p, pm).(orb.Polygon)
			if len(pp) > 0 {
				out = append(out, pp)
			}
		}
		return out
	case orb.Collection:
		out := make(orb.Collection, len(g))
		for i, sub := range g {
			out[i] = ReducePrecision(sub, pm)
		}
		return out
	case orb.Bound:
		return ReducePrecision(g.ToPolygon(), pm)
	}
	panic("bug: unknown geometry type")
}

func reducePoints(pts []orb.Point, pm *PrecisionModel) []orb.Point {
	out := make([]orb.Point, 0, len(pts))
	for _, p := range pts {
		out = append(out, pm.MakePrecise(p))
	}
	return removeRepeated(out)
}
