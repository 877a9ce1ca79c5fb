package topology

import (
	"fmt"
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestLocate(t *testing.T) {
	poly := orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
	}
	line := orb.LineString{{0, 0}, {5, 0}, {5, 5}}
	closed := orb.LineString{{0, 0}, {5, 0}, {5, 5}, {0, 0}}

	var tts = []struct {
		p   orb.Point
		g   orb.Geometry
		loc Location
	}{
		{orb.Point{2, 2}, poly, Interior},
		{orb.Point{5, 0}, poly, Boundary},
		{orb.Point{11, 5}, poly, Exterior},
		{orb.Point{5, 5}, poly[1], Interior},

		{orb.Point{2, 0}, line, Interior},
		{orb.Point{0, 0}, line, Boundary},
		{orb.Point{5, 5}, line, Boundary},
		{orb.Point{1, 1}, line, Exterior},

		// a closed line has no boundary points (mod-2 rule)
		{orb.Point{0, 0}, closed, Interior},
		{orb.Point{2, 0}, closed, Interior},
		{orb.Point{2, 2}, closed, Interior}, // on the closing segment
		{orb.Point{3, 1}, closed, Exterior}, // enclosed but off the curve

		{orb.Point{3, 4}, orb.Point{3, 4}, Interior},
		{orb.Point{3, 5}, orb.Point{3, 4}, Exterior},
		{orb.Point{1, 1}, orb.MultiPoint{{0, 0}, {1, 1}}, Interior},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, Locate(tt.p, tt.g), tt.loc)
		})
	}
}

func TestLocateHole(t *testing.T) {
	poly := orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
	}
	test.T(t, Locate(orb.Point{5, 5}, poly), Exterior) // inside the hole
	test.T(t, Locate(orb.Point{4, 5}, poly), Boundary) // on the hole ring
	test.T(t, Locate(orb.Point{2, 5}, poly), Interior)
}

func TestLocateTouchingLines(t *testing.T) {
	// two lines sharing an endpoint: the shared point occurs in two
	// boundaries, an even count, so it is not on the boundary
	ml := orb.MultiLineString{
		{{0, 0}, {5, 0}},
		{{5, 0}, {5, 5}},
	}
	test.T(t, Locate(orb.Point{5, 0}, ml), Interior)
	test.T(t, Locate(orb.Point{0, 0}, ml), Boundary)
	test.T(t, Locate(orb.Point{5, 5}, ml), Boundary)
}
