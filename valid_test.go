package topology

import (
	"fmt"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestValidate(t *testing.T) {
	nan := math.NaN()
	var tts = []struct {
		g    orb.Geometry
		kind ValidationKind
		ok   bool
	}{
		{square(0, 0, 4, 4), 0, true},
		{orb.LineString{{0, 0}, {1, 1}, {2, 0}}, 0, true},
		{orb.Point{1, 2}, 0, true},
		{orb.Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}, 0, true},

		{orb.Point{nan, 0}, InvalidCoordinate, false},
		{orb.LineString{{0, 0}, {math.Inf(1), 1}}, InvalidCoordinate, false},
		{orb.LineString{{1, 1}, {1, 1}}, TooFewPoints, false},
		{orb.Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, RingNotClosed, false},
		{orb.Ring{{0, 0}, {4, 0}, {0, 0}}, TooFewPoints, false},
		{orb.Polygon{{{0, 0}, {4, 0}, {4, 4}, {0, 4}}}, RingNotClosed, false},

		// crossing ring edges
		{orb.Ring{{0, 0}, {2, 2}, {2, 0}, {0, 2}, {0, 0}}, RingSelfIntersection, false},
		// bowtie polygon: the crossing makes the area labelling inconsistent
		{orb.Polygon{{{0, 0}, {2, 2}, {2, 0}, {0, 2}, {0, 0}}}, SelfIntersection, false},

		// hole fully outside the shell
		{orb.Polygon{
			{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}},
			{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {5, 5}},
		}, HoleOutsideShell, false},

		// hole inside another hole
		{orb.Polygon{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{1, 1}, {5, 1}, {5, 5}, {1, 5}, {1, 1}},
			{{2, 2}, {3, 2}, {3, 3}, {2, 3}, {2, 2}},
		}, NestedHoles, false},

		// shell inside another shell
		{orb.MultiPolygon{
			{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}},
			{{{2, 2}, {3, 2}, {3, 3}, {2, 3}, {2, 2}}},
		}, NestedShells, false},

		// shell inside the other's hole is fine
		{orb.MultiPolygon{
			{
				{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
				{{1, 1}, {5, 1}, {5, 5}, {1, 5}, {1, 1}},
			},
			{{{2, 2}, {3, 2}, {3, 3}, {2, 3}, {2, 2}}},
		}, 0, true},

		// valid polygon with a hole
		{orb.Polygon{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
		}, 0, true},

		// two rings sharing a full edge
		{orb.Polygon{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{0, 0}, {10, 0}, {5, 5}, {0, 0}},
		}, DuplicateRings, false},

		// hole diamond touching the shell at four points disconnects the
		// interior into four triangles
		{orb.Polygon{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{5, 0}, {10, 5}, {5, 10}, {0, 5}, {5, 0}},
		}, DisconnectedInterior, false},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			verr := Validate(tt.g)
			test.T(t, verr == nil, tt.ok)
			if !tt.ok && verr != nil {
				test.T(t, verr.Kind, tt.kind)
			}
			test.T(t, IsValid(tt.g), tt.ok)
		})
	}
}

func TestValidateSelfTouchingRing(t *testing.T) {
	// the shell touches itself at (5,10), pinching off a triangular hole
	poly := orb.Polygon{{
		{0, 0}, {10, 0}, {10, 10}, {5, 10}, {8, 5}, {2, 5}, {5, 10}, {0, 10}, {0, 0},
	}}

	verr := Validate(poly)
	test.That(t, verr != nil, "self-touching ring is invalid by default")
	test.T(t, verr.Kind, RingSelfIntersection)
	test.T(t, verr.Coord, orb.Point{5, 10})

	op := ValidOp{SelfTouchingRingFormingHoleValid: true}
	test.That(t, op.Validate(poly) == nil, "valid with the self-touch exemption")
}

func TestValidateHoleTouchingShell(t *testing.T) {
	// the hole meets the shell at exactly one point; the interior stays
	// connected, but the rings still touch
	poly := orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{0, 5}, {5, 4}, {5, 6}, {0, 5}},
	}

	verr := Validate(poly)
	test.That(t, verr != nil, "a hole touching its shell is invalid by default")
	test.T(t, verr.Kind, SelfIntersection)
	test.T(t, verr.Coord, orb.Point{0, 5})

	op := ValidOp{SelfTouchingRingFormingHoleValid: true}
	test.That(t, op.Validate(poly) == nil, "valid with the self-touch exemption")
}

func TestValidationErrorString(t *testing.T) {
	verr := validationError(HoleOutsideShell, orb.Point{3, 4})
	test.String(t, verr.String(), "hole lies outside shell at [3 4]")
}
