package topology

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ValidationKind classifies why a geometry is invalid.
type ValidationKind int

const (
	InvalidCoordinate ValidationKind = iota
	TooFewPoints
	RingNotClosed
	RingSelfIntersection
	SelfIntersection
	DuplicateRings
	HoleOutsideShell
	NestedHoles
	NestedShells
	DisconnectedInterior
)

func (k ValidationKind) String() string {
	switch k {
	case InvalidCoordinate:
		return "invalid coordinate"
	case TooFewPoints:
		return "too few points"
	case RingNotClosed:
		return "ring not closed"
	case RingSelfIntersection:
		return "ring self-intersection"
	case SelfIntersection:
		return "self-intersection"
	case DuplicateRings:
		return "duplicate rings"
	case HoleOutsideShell:
		return "hole lies outside shell"
	case NestedHoles:
		return "holes are nested"
	case NestedShells:
		return "shells are nested"
	case DisconnectedInterior:
		return "interior is disconnected"
	}
	return "unknown validation error"
}

// A ValidationError describes why a geometry is invalid and where. It is a
// diagnosis value, not an error return: operations never fail because an
// input is invalid, they just may not produce meaningful output.
type ValidationError struct {
	Kind  ValidationKind
	Coord orb.Point
}

func (e *ValidationError) String() string {
	return fmt.Sprintf("%v at [%g %g]", e.Kind, e.Coord[0], e.Coord[1])
}

func validationError(kind ValidationKind, coord orb.Point) *ValidationError {
	return &ValidationError{Kind: kind, Coord: coord}
}

// A ValidOp validates geometries.
type ValidOp struct {
	// SelfTouchingRingFormingHoleValid accepts rings that touch at single
	// points when the touch forms a valid hole: a shell pinching off a hole
	// ("inverted" polygons in the style of shapefiles), or a hole meeting its
	// shell at one point. Disallowed by default.
	SelfTouchingRingFormingHoleValid bool
}

// IsValid reports whether g is a valid geometry.
func IsValid(g orb.Geometry) bool {
	return Validate(g) == nil
}

// Validate checks g against the validity rules of its kind and returns nil or
// the first violation found.
func Validate(g orb.Geometry) *ValidationError {
	return ValidOp{}.Validate(g)
}

func (op ValidOp) Validate(g orb.Geometry) *ValidationError {
	if g == nil {
		panic("Validate: geometry is nil")
	}
	switch g := g.(type) {
	case orb.Point:
		return checkCoordinates([]orb.Point{g})
	case orb.MultiPoint:
		return checkCoordinates(g)
	case orb.LineString:
		return op.validateLineString(g)
	case orb.MultiLineString:
		for _, ls := range g {
			if err := op.validateLineString(ls); err != nil {
				return err
			}
		}
		return nil
	case orb.Ring:
		return op.validateRing(g)
	case orb.Polygon:
		return op.validatePolygon(g)
	case orb.MultiPolygon:
		return op.validateMultiPolygon(g)
	case orb.Collection:
		for _, sub := range g {
			if err := op.Validate(sub); err != nil {
				return err
			}
		}
		return nil
	case orb.Bound:
		return op.Validate(g.ToPolygon())
	}
	panic("bug: unknown geometry type")
}

func checkCoordinates(pts []orb.Point) *ValidationError {
	for _, p := range pts {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return validationError(InvalidCoordinate, p)
		}
	}
	return nil
}

func (op ValidOp) validateLineString(line orb.LineString) *ValidationError {
	if err := checkCoordinates(line); err != nil {
		return err
	}
	if len(line) == 0 {
		return nil
	}
	if pts := removeRepeated(line); len(pts) < 2 {
		return validationError(TooFewPoints, pts[0])
	}
	return nil
}

func (op ValidOp) validateRing(ring orb.Ring) *ValidationError {
	if err := checkCoordinates(ring); err != nil {
		return err
	}
	if len(ring) == 0 {
		return nil
	}
	if err := checkRingClosed(ring); err != nil {
		return err
	}
	if pts := removeRepeated(ring); len(pts) < 4 {
		return validationError(TooFewPoints, pts[0])
	}
	gg := NewGeometryGraph(0, orb.Polygon{ring})
	var li LineIntersector
	gg.computeSelfNodes(&li, true)
	for _, e := range gg.edges {
		// the self-intersection scan expects the ring origin first
		e.eiList.addEndpoints()
	}
	return checkNoSelfIntersectingRings(gg)
}

func checkRingClosed(ring orb.Ring) *ValidationError {
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		return validationError(RingNotClosed, ring[0])
	}
	return nil
}

func (op ValidOp) validatePolygon(poly orb.Polygon) *ValidationError {
	if err := op.checkPolygonRings(poly); err != nil {
		return err
	}
	gg := NewGeometryGraph(0, poly)
	var li LineIntersector
	si := gg.computeSelfNodes(&li, true)
	if err := checkConsistentArea(gg, si); err != nil {
		return err
	}
	if !op.SelfTouchingRingFormingHoleValid {
		if err := checkNoSelfIntersectingRings(gg); err != nil {
			return err
		}
	}
	if err := checkHolesInShell(poly); err != nil {
		return err
	}
	if err := checkHolesNotNested(poly); err != nil {
		return err
	}
	if err := checkConnectedInterior(gg, orb.MultiPolygon{poly}); err != nil {
		return err
	}
	if !op.SelfTouchingRingFormingHoleValid {
		return checkRingsNotTouching(poly)
	}
	return nil
}

func (op ValidOp) validateMultiPolygon(mp orb.MultiPolygon) *ValidationError {
	for _, poly := range mp {
		if err := op.checkPolygonRings(poly); err != nil {
			return err
		}
	}
	gg := NewGeometryGraph(0, mp)
	var li LineIntersector
	si := gg.computeSelfNodes(&li, true)
	if err := checkConsistentArea(gg, si); err != nil {
		return err
	}
	if !op.SelfTouchingRingFormingHoleValid {
		if err := checkNoSelfIntersectingRings(gg); err != nil {
			return err
		}
	}
	for _, poly := range mp {
		if err := checkHolesInShell(poly); err != nil {
			return err
		}
		if err := checkHolesNotNested(poly); err != nil {
			return err
		}
	}
	if err := checkShellsNotNested(mp); err != nil {
		return err
	}
	if err := checkConnectedInterior(gg, mp); err != nil {
		return err
	}
	if !op.SelfTouchingRingFormingHoleValid {
		for _, poly := range mp {
			if err := checkRingsNotTouching(poly); err != nil {
				return err
			}
		}
	}
	return nil
}

func (op ValidOp) checkPolygonRings(poly orb.Polygon) *ValidationError {
	for _, ring := range poly {
		if err := checkCoordinates(ring); err != nil {
			return err
		}
		if err := checkRingClosed(ring); err != nil {
			return err
		}
		if len(ring) == 0 {
			continue
		}
		if pts := removeRepeated(ring); len(pts) < 4 {
			return validationError(TooFewPoints, pts[0])
		}
	}
	return nil
}

// checkConsistentArea verifies the area topology is consistent: ring edges
// cross nowhere (they may only touch at discrete points) and no two rings
// share an edge.
func checkConsistentArea(gg *GeometryGraph, si *SegmentIntersector) *ValidationError {
	if si.HasProperIntersection() {
		return validationError(SelfIntersection, si.ProperIntersectionPoint())
	}
	seen := newEdgeList()
	for _, e := range gg.edges {
		for _, split := range e.eiList.addSplitEdges(nil) {
			if seen.findEqualEdge(split) != nil {
				return validationError(DuplicateRings, split.pts[0])
			}
			seen.add(split)
		}
	}
	return nil
}

// checkNoSelfIntersectingRings rejects rings that pass through the same
// point twice, which the pure OGC polygon model forbids even when nothing
// crosses.
func checkNoSelfIntersectingRings(gg *GeometryGraph) *ValidationError {
	for _, e := range gg.edges {
		seen := map[orb.Point]bool{}
		first := true
		for _, ei := range e.eiList.list {
			if first {
				first = false
				continue
			}
			if seen[ei.coord] {
				return validationError(RingSelfIntersection, ei.coord)
			}
			seen[ei.coord] = true
		}
	}
	return nil
}

// checkRingsNotTouching rejects a polygon whose rings meet at any point.
// Crossings and shared edges are caught by the consistent-area check; what is
// left after it are single-point touches between a hole and the shell or
// between two holes, which the pure OGC polygon model forbids even when the
// interior stays connected.
func checkRingsNotTouching(poly orb.Polygon) *ValidationError {
	if len(poly) < 2 {
		return nil
	}
	gg := NewGeometryGraph(0, poly)
	var li LineIntersector
	gg.computeSelfNodes(&li, true)
	// an intersection between two edges is recorded on both, so a coordinate
	// seen on two different rings is a touch point
	seen := map[orb.Point]int{}
	for i, e := range gg.edges {
		for _, ei := range e.eiList.list {
			if j, ok := seen[ei.coord]; ok && j != i {
				return validationError(SelfIntersection, ei.coord)
			}
			seen[ei.coord] = i
		}
	}
	return nil
}

// ringTestPoint returns a vertex of pts not lying on the boundary of ring,
// or false when every vertex touches it.
func ringTestPoint(pts []orb.Point, ring orb.Ring) (orb.Point, bool) {
	for _, p := range pts {
		if locatePointInRing(p, ring) != Boundary {
			return p, true
		}
	}
	return orb.Point{}, false
}

func checkHolesInShell(poly orb.Polygon) *ValidationError {
	if len(poly) == 0 {
		return nil
	}
	shell := poly[0]
	for _, hole := range poly[1:] {
		pt, ok := ringTestPoint(hole, shell)
		if !ok {
			// every hole vertex touches the shell; consistent-area has already
			// rejected shared edges, so the hole is inside
			continue
		}
		if locatePointInRing(pt, shell) == Exterior {
			return validationError(HoleOutsideShell, pt)
		}
	}
	return nil
}

func checkHolesNotNested(poly orb.Polygon) *ValidationError {
	if len(poly) < 3 {
		return nil
	}
	holes := poly[1:]
	for i, a := range holes {
		for j, b := range holes {
			if i == j {
				continue
			}
			pt, ok := ringTestPoint(a, b)
			if !ok {
				continue
			}
			if locatePointInRing(pt, b) == Interior {
				return validationError(NestedHoles, pt)
			}
		}
	}
	return nil
}

func checkShellsNotNested(mp orb.MultiPolygon) *ValidationError {
	for i, pa := range mp {
		for j, pb := range mp {
			if i == j || len(pa) == 0 || len(pb) == 0 {
				continue
			}
			pt, ok := ringTestPoint(pa[0], pb[0])
			if !ok || locatePointInRing(pt, pb[0]) != Interior {
				continue
			}
			// inside the other shell; valid only when properly inside one of
			// its holes
			inHole := false
			for _, hole := range pb[1:] {
				if locatePointInRing(pt, hole) != Exterior {
					inHole = true
					break
				}
			}
			if !inHole {
				return validationError(NestedShells, pt)
			}
		}
	}
	return nil
}

// checkConnectedInterior verifies the interior of each polygon is one
// connected region: rings of the noded boundary whose right side is interior
// must all be reachable from the interior side of some input ring.
func checkConnectedInterior(gg *GeometryGraph, mp orb.MultiPolygon) *ValidationError {
	splitEdges := gg.computeSplitEdges(nil)
	graph := newPlanarGraph()
	graph.addEdges(splitEdges)
	for _, de := range graph.edgeEnds {
		if de.label.location(0, posRight) == Interior {
			de.inResult = true
		}
	}
	if err := graph.linkResultDirectedEdges(); err != nil {
		terr := err.(*TopologyError)
		return validationError(DisconnectedInterior, terr.Coord)
	}

	var minRings []*edgeRing
	for _, de := range graph.edgeEnds {
		if !de.inResult || de.ring != nil {
			continue
		}
		er, err := newEdgeRing(de, maximalRing)
		if err != nil {
			terr := err.(*TopologyError)
			return validationError(DisconnectedInterior, terr.Coord)
		}
		if err := er.linkMinimalEdges(); err != nil {
			terr := err.(*TopologyError)
			return validationError(DisconnectedInterior, terr.Coord)
		}
		mins, err := er.buildMinimalRings()
		if err != nil {
			terr := err.(*TopologyError)
			return validationError(DisconnectedInterior, terr.Coord)
		}
		minRings = append(minRings, mins...)
	}

	for _, poly := range mp {
		for _, ring := range poly {
			visitInteriorSide(graph, ring)
		}
	}

	for _, er := range minRings {
		if er.isHole() || er.edges[0].label.location(0, posRight) != Interior {
			continue
		}
		for _, de := range er.edges {
			if !de.visited {
				return validationError(DisconnectedInterior, de.p0)
			}
		}
	}
	return nil
}

// visitInteriorSide marks as visited the ring of directed edges on the
// interior side of an input ring.
func visitInteriorSide(graph *planarGraph, ring orb.Ring) {
	if len(ring) < 2 {
		return
	}
	pt0 := ring[0]
	var pt1 orb.Point
	found := false
	for _, p := range ring[1:] {
		if p != pt0 {
			pt1 = p
			found = true
			break
		}
	}
	if !found {
		return
	}
	for _, de := range graph.edgeEnds {
		if de.p0 != pt0 || !pointOnSegment(de.p1, pt0, pt1) {
			continue
		}
		intDe := de
		if de.label.location(0, posRight) != Interior {
			if de.sym.label.location(0, posRight) != Interior {
				return
			}
			intDe = de.sym
		}
		// walk the linked interior ring
		start := intDe
		for {
			intDe.visited = true
			intDe = intDe.next
			if intDe == nil || intDe == start {
				return
			}
		}
	}
}
