package topology

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestPolygonize(t *testing.T) {
	res, err := Polygonize([]orb.LineString{
		{{0, 0}, {1, 0}},
		{{1, 0}, {1, 1}},
		{{1, 1}, {0, 1}},
		{{0, 1}, {0, 0}},
	})
	test.Error(t, err)
	test.T(t, len(res.Polygons), 1)
	test.T(t, len(res.Dangles), 0)
	test.T(t, len(res.CutLines), 0)
	test.Float(t, areaOf(res.Polygons[0]), 1.0)
	if verr := Validate(res.Polygons[0]); verr != nil {
		test.Fail(t, verr.String())
	}
}

func TestPolygonizeDangle(t *testing.T) {
	res, err := Polygonize([]orb.LineString{
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
		{{1, 1}, {2, 2}},
	})
	test.Error(t, err)
	test.T(t, len(res.Polygons), 1)
	test.Float(t, areaOf(res.Polygons[0]), 1.0)
	test.T(t, len(res.Dangles), 1)
	d := res.Dangles[0]
	test.That(t, d[0] == orb.Point{2, 2} || d[len(d)-1] == orb.Point{2, 2},
		"the dangle ends at the free point")
}

func TestPolygonizeCutLine(t *testing.T) {
	// two squares connected by a bridge that bounds no face
	res, err := Polygonize([]orb.LineString{
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
		{{2, 0}, {3, 0}, {3, 1}, {2, 1}, {2, 0}},
		{{1, 0}, {2, 0}},
	})
	test.Error(t, err)
	test.T(t, len(res.Polygons), 2)
	test.T(t, len(res.CutLines), 1)
	test.T(t, len(res.Dangles), 0)
	total := 0.0
	for _, p := range res.Polygons {
		total += areaOf(p)
	}
	test.That(t, scalar.EqualWithinAbs(total, 2.0, 1e-9), "total area: ", total)
}

func TestPolygonizeDiagonal(t *testing.T) {
	// a diagonal splits the square into two triangles
	res, err := Polygonize([]orb.LineString{
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
		{{0, 0}, {1, 1}},
	})
	test.Error(t, err)
	test.T(t, len(res.Polygons), 2)
	total := 0.0
	for _, p := range res.Polygons {
		test.Float(t, areaOf(p), 0.5)
		total += areaOf(p)
		if verr := Validate(p); verr != nil {
			test.Fail(t, verr.String())
		}
	}
	test.Float(t, total, 1.0)
}

func TestPolygonizeEmpty(t *testing.T) {
	res, err := Polygonize(nil)
	test.Error(t, err)
	test.T(t, len(res.Polygons), 0)

	// a lone open line is all dangle
	res, err = Polygonize([]orb.LineString{{{0, 0}, {5, 5}}})
	test.Error(t, err)
	test.T(t, len(res.Polygons), 0)
	test.T(t, len(res.Dangles), 1)
}
