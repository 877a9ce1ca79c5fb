package topology

import "github.com/paulmach/orb"

// Locate determines the topological location of a point relative to a
// geometry. Boundaries of collection elements combine under the Mod-2 rule: a
// point on an odd number of element boundaries is on the boundary of the
// whole.
func Locate(pt orb.Point, g orb.Geometry) Location {
	if g == nil {
		return Exterior
	}
	isIn, numBoundaries := locateInto(pt, g)
	if numBoundaries%2 == 1 {
		return Boundary
	}
	if numBoundaries > 0 || isIn {
		return Interior
	}
	return Exterior
}

func locateInto(pt orb.Point, g orb.Geometry) (isIn bool, numBoundaries int) {
	switch g := g.(type) {
	case orb.Point:
		if pt == g {
			isIn = true
		}
	case orb.MultiPoint:
		for _, p := range g {
			if pt == p {
				isIn = true
			}
		}
	case orb.LineString:
		switch locateOnLine(pt, g) {
		case Interior:
			isIn = true
		case Boundary:
			numBoundaries++
		}
	case orb.MultiLineString:
		for _, ls := range g {
			in, nb := locateInto(pt, ls)
			isIn = isIn || in
			numBoundaries += nb
		}
	case orb.Ring:
		switch locatePointInRing(pt, g) {
		case Interior:
			isIn = true
		case Boundary:
			numBoundaries++
		}
	case orb.Polygon:
		switch locateInPolygon(pt, g) {
		case Interior:
			isIn = true
		case Boundary:
			numBoundaries++
		}
	case orb.MultiPolygon:
		for _, p := range g {
			in, nb := locateInto(pt, p)
			isIn = isIn || in
			numBoundaries += nb
		}
	case orb.Collection:
		for _, sub := range g {
			in, nb := locateInto(pt, sub)
			isIn = isIn || in
			numBoundaries += nb
		}
	case orb.Bound:
		return locateInto(pt, g.ToPolygon())
	default:
		panic("bug: unknown geometry type")
	}
	return isIn, numBoundaries
}

func locateOnLine(pt orb.Point, line orb.LineString) Location {
	if len(line) < 2 || !expandBound(pointsBound(line), 0.0).Contains(pt) {
		return Exterior
	}
	if line[0] != line[len(line)-1] && (pt == line[0] || pt == line[len(line)-1]) {
		return Boundary
	}
	for i := 1; i < len(line); i++ {
		if pointOnSegment(pt, line[i-1], line[i]) {
			return Interior
		}
	}
	return Exterior
}

func locateInPolygon(pt orb.Point, poly orb.Polygon) Location {
	if len(poly) == 0 || len(poly[0]) == 0 {
		return Exterior
	}
	shellLoc := locatePointInRing(pt, poly[0])
	if shellLoc == Exterior {
		return Exterior
	} else if shellLoc == Boundary {
		return Boundary
	}
	for _, hole := range poly[1:] {
		switch locatePointInRing(pt, hole) {
		case Interior:
			return Exterior
		case Boundary:
			return Boundary
		}
	}
	return Interior
}
