package topology

import (
	"math"

	"github.com/paulmach/orb"
)

// End cap styles for buffered lines and points.
const (
	CapRound = iota + 1
	CapFlat
	CapSquare
)

// DefaultQuadrantSegments is the number of segments a fillet uses per
// quadrant of a circle when not specified.
const DefaultQuadrantSegments = 8

// BufferParams control how offset curves are built.
type BufferParams struct {
	QuadrantSegments int // 0 means DefaultQuadrantSegments
	CapStyle         int // 0 means CapRound
}

func (p BufferParams) quadrantSegments() int {
	if p.QuadrantSegments <= 0 {
		return DefaultQuadrantSegments
	}
	return p.QuadrantSegments
}

func (p BufferParams) capStyle() int {
	if p.CapStyle == 0 {
		return CapRound
	}
	return p.CapStyle
}

// An offsetCurveBuilder computes the raw offset curve of a point chain at a
// given distance: the parallel segments on the offset side, joined with
// circular fillets at outside turns and capped per the cap style. The raw
// curve may self-intersect; noding and depth propagation clean it up.
type offsetCurveBuilder struct {
	pm       *PrecisionModel
	params   BufferParams
	distance float64

	filletAngle float64 // angle quantum for fillet subdivision
	li          LineIntersector

	pts []orb.Point

	s0, s1, s2       orb.Point
	side             int
	offset0, offset1 [2]orb.Point
}

func newOffsetCurveBuilder(pm *PrecisionModel, params BufferParams) *offsetCurveBuilder {
	return &offsetCurveBuilder{
		pm:          pm,
		params:      params,
		filletAngle: math.Pi / 2.0 / float64(params.quadrantSegments()),
	}
}

// lineCurve returns the closed curve at the given distance around a line.
// Lines buffered by a non-positive distance vanish.
func (b *offsetCurveBuilder) lineCurve(pts []orb.Point, distance float64) []orb.Point {
	if distance <= 0.0 {
		return nil
	}
	b.distance = distance
	b.pts = b.pts[:0]

	if len(pts) == 1 {
		b.addCircle(pts[0], distance)
		return b.closedCurve()
	}

	n := len(pts) - 1
	b.initSideSegments(pts[0], pts[1], posLeft)
	for i := 2; i <= n; i++ {
		b.addNextSegment(pts[i], true)
	}
	b.addPt(b.offset1[1])
	b.addLineEndCap(pts[n-1], pts[n])

	b.initSideSegments(pts[n], pts[n-1], posLeft)
	for i := n - 2; i >= 0; i-- {
		b.addNextSegment(pts[i], true)
	}
	b.addPt(b.offset1[1])
	b.addLineEndCap(pts[1], pts[0])

	return b.closedCurve()
}

// ringCurve returns the offset curve on one side of a ring. A zero distance
// returns the ring itself.
func (b *offsetCurveBuilder) ringCurve(pts []orb.Point, side int, distance float64) []orb.Point {
	if distance == 0.0 {
		out := make([]orb.Point, len(pts))
		copy(out, pts)
		return out
	}
	b.distance = distance
	b.pts = b.pts[:0]

	n := len(pts) - 1
	b.initSideSegments(pts[n-1], pts[0], side)
	for i := 1; i <= n; i++ {
		b.addNextSegment(pts[i], i != 1)
	}
	return b.closedCurve()
}

// pointCurve returns the circle around a point, clockwise.
func (b *offsetCurveBuilder) pointCurve(pt orb.Point, distance float64) []orb.Point {
	if distance <= 0.0 {
		return nil
	}
	b.distance = distance
	b.pts = b.pts[:0]
	b.addCircle(pt, distance)
	return b.closedCurve()
}

func (b *offsetCurveBuilder) closedCurve() []orb.Point {
	if len(b.pts) < 1 {
		return nil
	}
	out := make([]orb.Point, len(b.pts), len(b.pts)+1)
	copy(out, b.pts)
	if out[0] != out[len(out)-1] {
		out = append(out, out[0])
	}
	return out
}

func (b *offsetCurveBuilder) addPt(p orb.Point) {
	if b.pm != nil {
		p = b.pm.MakePrecise(p)
	}
	if len(b.pts) > 0 && b.pts[len(b.pts)-1] == p {
		return
	}
	b.pts = append(b.pts, p)
}

func (b *offsetCurveBuilder) initSideSegments(s1, s2 orb.Point, side int) {
	b.s1, b.s2 = s1, s2
	b.side = side
	b.offset1 = offsetSegment(s1, s2, side, b.distance)
}

// offsetSegment returns the segment parallel to s0-s1 at the given distance
// on the given side.
func offsetSegment(s0, s1 orb.Point, side int, distance float64) [2]orb.Point {
	dx, dy := s1[0]-s0[0], s1[1]-s0[1]
	length := math.Hypot(dx, dy)
	if length == 0.0 {
		panic("bug: zero-length segment has no offset")
	}
	// normal pointing left of the direction of travel
	ux, uy := -dy/length*distance, dx/length*distance
	if side == posRight {
		ux, uy = -ux, -uy
	}
	return [2]orb.Point{
		{s0[0] + ux, s0[1] + uy},
		{s1[0] + ux, s1[1] + uy},
	}
}

func (b *offsetCurveBuilder) addNextSegment(p orb.Point, addStartPoint bool) {
	b.s0, b.s1, b.s2 = b.s1, b.s2, p
	b.offset0 = b.offset1
	b.offset1 = offsetSegment(b.s1, b.s2, b.side, b.distance)
	if b.s1 == b.s2 {
		return
	}

	orientation := orientationIndex(b.s0, b.s1, b.s2)
	outsideTurn := orientation == orientClockwise && b.side == posLeft ||
		orientation == orientCounterClockwise && b.side == posRight

	switch {
	case orientation == orientCollinear:
		// collinear but possibly reversing: a full turnaround fillet
		b.li.ComputeIntersection(b.s0, b.s1, b.s1, b.s2)
		if b.li.IntersectionNum() >= 2 {
			b.addFillet(b.s1, b.offset0[1], b.offset1[0], orientClockwise)
		}
	case outsideTurn:
		if addStartPoint {
			b.addPt(b.offset0[1])
		}
		b.addFillet(b.s1, b.offset0[1], b.offset1[0], orientation)
	default: // inside turn
		b.li.ComputeIntersection(b.offset0[0], b.offset0[1], b.offset1[0], b.offset1[1])
		if b.li.HasIntersection() {
			b.addPt(b.li.Intersection(0))
		} else {
			// offsets miss each other due to roundoff; bridge through the
			// vertex to keep the curve connected
			b.addPt(b.offset0[1])
			b.addPt(b.s1)
			b.addPt(b.offset1[0])
		}
	}
}

func (b *offsetCurveBuilder) addLineEndCap(p0, p1 orb.Point) {
	offsetL := offsetSegment(p0, p1, posLeft, b.distance)
	offsetR := offsetSegment(p0, p1, posRight, b.distance)

	dx, dy := p1[0]-p0[0], p1[1]-p0[1]
	angle := math.Atan2(dy, dx)

	switch b.params.capStyle() {
	case CapRound:
		b.addPt(offsetL[1])
		b.addFilletAngles(p1, angle+math.Pi/2, angle-math.Pi/2, orientClockwise)
		b.addPt(offsetR[1])
	case CapFlat:
		b.addPt(offsetL[1])
		b.addPt(offsetR[1])
	case CapSquare:
		length := math.Hypot(dx, dy)
		sx, sy := dx/length*b.distance, dy/length*b.distance
		b.addPt(orb.Point{offsetL[1][0] + sx, offsetL[1][1] + sy})
		b.addPt(orb.Point{offsetR[1][0] + sx, offsetR[1][1] + sy})
	default:
		panic("bug: unknown cap style")
	}
}

func (b *offsetCurveBuilder) addFillet(p, p0, p1 orb.Point, direction int) {
	startAngle := math.Atan2(p0[1]-p[1], p0[0]-p[0])
	endAngle := math.Atan2(p1[1]-p[1], p1[0]-p[0])
	if direction == orientClockwise {
		if startAngle <= endAngle {
			startAngle += 2.0 * math.Pi
		}
	} else {
		if startAngle >= endAngle {
			startAngle -= 2.0 * math.Pi
		}
	}
	b.addPt(p0)
	b.addFilletAngles(p, startAngle, endAngle, direction)
	b.addPt(p1)
}

func (b *offsetCurveBuilder) addFilletAngles(p orb.Point, startAngle, endAngle float64, direction int) {
	directionFactor := 1.0
	if direction == orientClockwise {
		directionFactor = -1.0
	}
	totalAngle := math.Abs(startAngle - endAngle)
	nSegs := int(totalAngle/b.filletAngle + 0.5)
	if nSegs < 1 {
		return
	}
	angleInc := totalAngle / float64(nSegs)
	for i := 0; i < nSegs; i++ {
		angle := startAngle + directionFactor*float64(i)*angleInc
		b.addPt(orb.Point{
			p[0] + b.distance*math.Cos(angle),
			p[1] + b.distance*math.Sin(angle),
		})
	}
}

// addCircle adds a full circle around p, traversed clockwise so its face is
// on the right.
func (b *offsetCurveBuilder) addCircle(p orb.Point, distance float64) {
	b.distance = distance
	b.addPt(orb.Point{p[0] + distance, p[1]})
	b.addFilletAngles(p, 0.0, 2.0*math.Pi, orientClockwise)
}

////////////////

// An offsetCurveSetBuilder walks an input geometry and emits the labelled
// offset curves of all its components. Curve labels mark the buffer interior
// on the inside of each curve; the exterior ring of the final buffer is
// whatever remains at depth zero.
type offsetCurveSetBuilder struct {
	curveBuilder *offsetCurveBuilder
	distance     float64
	curves       []*SegmentString
}

func (csb *offsetCurveSetBuilder) addGeometry(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		csb.addPoint(g)
	case orb.MultiPoint:
		for _, p := range g {
			csb.addPoint(p)
		}
	case orb.LineString:
		csb.addLineString(g)
	case orb.MultiLineString:
		for _, ls := range g {
			csb.addLineString(ls)
		}
	case orb.Ring:
		csb.addPolygon(orb.Polygon{g})
	case orb.Polygon:
		csb.addPolygon(g)
	case orb.MultiPolygon:
		for _, p := range g {
			csb.addPolygon(p)
		}
	case orb.Collection:
		for _, sub := range g {
			csb.addGeometry(sub)
		}
	case orb.Bound:
		csb.addPolygon(g.ToPolygon())
	default:
		panic("bug: unknown geometry type")
	}
}

func (csb *offsetCurveSetBuilder) addCurve(pts []orb.Point, leftLoc, rightLoc Location) {
	if len(pts) < 2 {
		return
	}
	lbl := newAreaLabel(0, Boundary, leftLoc, rightLoc)
	csb.curves = append(csb.curves, NewSegmentString(pts, lbl))
}

func (csb *offsetCurveSetBuilder) addPoint(p orb.Point) {
	if csb.distance <= 0.0 {
		return
	}
	csb.addCurve(csb.curveBuilder.pointCurve(p, csb.distance), Exterior, Interior)
}

func (csb *offsetCurveSetBuilder) addLineString(line orb.LineString) {
	if csb.distance <= 0.0 {
		return
	}
	pts := removeRepeated(line)
	if len(pts) < 2 {
		if len(pts) == 1 {
			csb.addPoint(pts[0])
		}
		return
	}
	csb.addCurve(csb.curveBuilder.lineCurve(pts, csb.distance), Exterior, Interior)
}

func (csb *offsetCurveSetBuilder) addPolygon(poly orb.Polygon) {
	if len(poly) == 0 {
		return
	}
	offsetDistance := csb.distance
	offsetSide := posLeft
	if csb.distance < 0.0 {
		offsetDistance = -csb.distance
		offsetSide = posRight
	}

	shell := removeRepeated(poly[0])
	if csb.distance < 0.0 && isErodedCompletely(shell, csb.distance) {
		return
	}
	if csb.distance <= 0.0 && len(shell) < 4 {
		return
	}
	csb.addPolygonRing(shell, offsetDistance, offsetSide, Exterior, Interior)

	for _, hole := range poly[1:] {
		pts := removeRepeated(hole)
		// a hole shrinks when the polygon grows
		if csb.distance > 0.0 && isErodedCompletely(pts, -csb.distance) {
			continue
		}
		csb.addPolygonRing(pts, offsetDistance, oppositePos(offsetSide), Interior, Exterior)
	}
}

// addPolygonRing adds the offset curve of one polygon ring. cwLeft/cwRight
// are the locations beside the ring traversed clockwise; they and the offset
// side swap for a counterclockwise ring.
func (csb *offsetCurveSetBuilder) addPolygonRing(pts []orb.Point, offsetDistance float64, side int, cwLeft, cwRight Location) {
	if offsetDistance == 0.0 && len(pts) < 4 {
		return
	}
	left, right := cwLeft, cwRight
	if len(pts) >= 4 && isCCW(pts) {
		left, right = cwRight, cwLeft
		side = oppositePos(side)
	}
	csb.addCurve(csb.curveBuilder.ringCurve(pts, side, offsetDistance), left, right)
}

// isErodedCompletely reports whether a negative buffer certainly consumes the
// whole ring: the erosion width exceeds the ring envelope's smaller
// dimension.
func isErodedCompletely(ring []orb.Point, bufferDistance float64) bool {
	if bufferDistance >= 0.0 {
		return false
	}
	if len(ring) < 4 {
		return true
	}
	b := pointsBound(ring)
	minDim := math.Min(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])
	return 2.0*math.Abs(bufferDistance) > minDim
}
