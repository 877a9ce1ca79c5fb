package topology

import (
	"math"

	"github.com/paulmach/orb"
)

// Buffer returns the set of points within the given distance of g. A
// negative distance shrinks areas; points and lines buffered by a
// non-positive distance vanish. Robustness failures are retried on
// progressively coarser fixed-precision grids before an error is returned.
func Buffer(g orb.Geometry, distance float64) (orb.Geometry, error) {
	return BufferWithParams(g, distance, BufferParams{})
}

// BufferWithParams is Buffer with explicit curve parameters.
func BufferWithParams(g orb.Geometry, distance float64, params BufferParams) (orb.Geometry, error) {
	if g == nil {
		panic("Buffer: geometry is nil")
	}

	// full precision first; most inputs never need the ladder
	result, err := bufferFloating(g, distance, params)
	if err == nil {
		return result, nil
	}

	for precDigits := MaxPrecisionDigits; precDigits >= 0; precDigits-- {
		scale := bufferScaleFactor(g, distance, precDigits)
		result, err2 := bufferFixed(g, distance, params, NewFixedPrecisionModel(scale))
		if err2 == nil {
			return result, nil
		}
		err = err2
	}
	return nil, err
}

func bufferFloating(g orb.Geometry, distance float64, params BufferParams) (orb.Geometry, error) {
	b := &bufferBuilder{
		params: params,
		noder:  &IteratedNoder{},
	}
	return b.buffer(g, distance)
}

func bufferFixed(g orb.Geometry, distance float64, params BufferParams, pm *PrecisionModel) (orb.Geometry, error) {
	b := &bufferBuilder{
		params: params,
		pm:     pm,
		noder:  &ScaledNoder{Noder: &SnapRoundingNoder{}, Scale: pm.Scale()},
	}
	return b.buffer(g, distance)
}

// bufferScaleFactor sizes a fixed grid so that the buffer envelope keeps
// precDigits significant digits.
func bufferScaleFactor(g orb.Geometry, distance float64, precDigits int) float64 {
	env := g.Bound()
	envMax := math.Max(
		math.Max(math.Abs(env.Max[0]), math.Abs(env.Max[1])),
		math.Max(math.Abs(env.Min[0]), math.Abs(env.Min[1])),
	)
	expandBy := 0.0
	if distance > 0.0 {
		expandBy = distance
	}
	bufEnvMax := envMax + 2.0*expandBy
	bufEnvDigits := int(math.Log10(bufEnvMax) + 1.0)
	return math.Pow(10.0, float64(precDigits-bufEnvDigits))
}

////////////////

// A bufferBuilder computes one buffer at one precision: offset curves are
// generated, noded, merged into a graph, and the edges at the
// interior/exterior depth boundary are assembled into polygons.
type bufferBuilder struct {
	params BufferParams
	pm     *PrecisionModel
	noder  Noder

	edges *edgeList
	graph *planarGraph
}

func (b *bufferBuilder) buffer(g orb.Geometry, distance float64) (orb.Geometry, error) {
	curveBuilder := newOffsetCurveBuilder(b.pm, b.params)
	curveSetBuilder := &offsetCurveSetBuilder{
		curveBuilder: curveBuilder,
		distance:     distance,
	}
	curveSetBuilder.addGeometry(g)
	if len(curveSetBuilder.curves) == 0 {
		return orb.Polygon{}, nil
	}

	if err := b.computeNodedEdges(curveSetBuilder.curves); err != nil {
		return nil, err
	}
	b.graph = newPlanarGraph()
	b.graph.addEdges(b.edges.edges)

	subgraphs, err := b.createSubgraphs()
	if err != nil {
		return nil, err
	}
	polyBuilder := &polygonBuilder{}
	if err := b.buildSubgraphs(subgraphs, polyBuilder); err != nil {
		return nil, err
	}
	polys := polyBuilder.polygons()
	switch len(polys) {
	case 0:
		return orb.Polygon{}, nil
	case 1:
		return polys[0], nil
	}
	return orb.MultiPolygon(polys), nil
}

func (b *bufferBuilder) computeNodedEdges(curves []*SegmentString) error {
	noded, err := b.noder.Node(curves)
	if err != nil {
		return err
	}
	b.edges = newEdgeList()
	for _, ss := range noded {
		pts := removeRepeated(ss.pts)
		if len(pts) < 2 {
			continue
		}
		b.insertUniqueEdge(newEdge(pts, ss.label.copy()))
	}
	return nil
}

// insertUniqueEdge merges coincident curve pieces, summing their depth
// deltas; opposite-winding pieces cancel.
func (b *bufferBuilder) insertUniqueEdge(e *Edge) {
	existing := b.edges.findEqualEdge(e)
	if existing == nil {
		e.depthDelta = depthDelta(e.label)
		b.edges.add(e)
		return
	}
	labelToMerge := e.label
	if _, sameDirection := existing.equalEdge(e); !sameDirection {
		labelToMerge = e.label.copy()
		labelToMerge.flip()
	}
	existing.label.merge(labelToMerge)
	existing.depthDelta += depthDelta(labelToMerge)
}

// depthDelta returns the change in buffer depth when crossing the curve from
// left to right.
func depthDelta(lbl *Label) int {
	left := lbl.location(0, posLeft)
	right := lbl.location(0, posRight)
	if left == Interior && right == Exterior {
		return 1
	} else if left == Exterior && right == Interior {
		return -1
	}
	return 0
}

func (b *bufferBuilder) createSubgraphs() ([]*bufferSubgraph, error) {
	var subgraphs []*bufferSubgraph
	for _, n := range b.graph.nodes.sortedNodes() {
		if n.visited {
			continue
		}
		sg, err := newBufferSubgraph(n)
		if err != nil {
			return nil, err
		}
		subgraphs = append(subgraphs, sg)
	}
	sortSubgraphs(subgraphs)
	return subgraphs, nil
}

// buildSubgraphs processes subgraphs outside-in: the depth outside each one
// is found by stabbing the subgraphs already built, then its own depths and
// result edges follow.
func (b *bufferBuilder) buildSubgraphs(subgraphs []*bufferSubgraph, polyBuilder *polygonBuilder) error {
	var processed []*bufferSubgraph
	for _, sg := range subgraphs {
		locater := &subgraphDepthLocater{subgraphs: processed}
		outsideDepth := locater.depth(sg.rightmostPt)
		if err := sg.computeDepth(outsideDepth); err != nil {
			return err
		}
		sg.findResultEdges()
		processed = append(processed, sg)
		if err := polyBuilder.add(sg.dirEdges, sg.nodes); err != nil {
			return err
		}
	}
	return nil
}
