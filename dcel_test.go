package arrange

import (
	"testing"

	"github.com/tdewolff/test"
)

func buildBowtieDCEL(t *testing.T) *dcel {
	segs := bowtie()
	cuts, err := findIntersections(segs, 0)
	test.Error(t, err)
	splits, _ := splitSegments(segs, cuts)
	return buildDCEL(splits)
}

func TestDCELInvariants(t *testing.T) {
	d := buildBowtieDCEL(t)
	test.T(t, len(d.verts), 5) // four corners and the crossing
	test.T(t, len(d.edges), 12)

	for e, he := range d.edges {
		test.T(t, d.edges[he.Twin].Twin, e)
		test.T(t, d.edges[he.Twin].Tail, he.Head)
		test.T(t, d.edges[he.Twin].Head, he.Tail)
		test.That(t, he.Next != -1)
		// Next continues where this edge ends
		test.T(t, d.edges[he.Next].Tail, he.Head)
	}
}

func TestDCELVertexSnap(t *testing.T) {
	d := &dcel{lookup: map[vertexKey]int{}}
	v1 := d.vertex(Point{1.0, 2.0})
	v2 := d.vertex(Point{1.0 + Epsilon/4.0, 2.0})
	v3 := d.vertex(Point{1.0 + 10.0*Epsilon, 2.0})
	test.T(t, v1, v2)
	test.That(t, v1 != v3)
}

func TestDCELRotation(t *testing.T) {
	d := buildBowtieDCEL(t)

	// find the crossing vertex
	center := -1
	for v := range d.verts {
		if d.verts[v].Pos.Equals(Point{5.0, 5.0}) {
			center = v
		}
	}
	test.That(t, center != -1)
	test.T(t, len(d.verts[center].Edges), 4)

	// outgoing edges are in increasing angular order
	prev := -1.0
	for _, e := range d.verts[center].Edges {
		a := angleNorm(d.tangent(e).Angle())
		test.That(t, prev <= a)
		prev = a
	}
}

func TestDCELRotationZeroDerivative(t *testing.T) {
	// a cubic starting at its own first control point has a zero derivative
	// there; it must still sort by its true outgoing direction at a vertex of
	// degree three
	splits := []SplitSegment{
		{Segment{ID: 0, Curve: Line(Point{0.0, 0.0}, Point{1.0, 0.0}), Subpath: 0, Prev: -1, Next: -1}, 0},
		{Segment{ID: 1, Curve: Cube(Point{0.0, 0.0}, Point{0.0, 0.0}, Point{-1.0, 1.0}, Point{-2.0, 2.0}), Subpath: 0, Prev: -1, Next: -1}, 1},
		{Segment{ID: 2, Curve: Line(Point{0.0, 0.0}, Point{0.0, 1.0}), Subpath: 0, Prev: -1, Next: -1}, 2},
	}
	d := buildDCEL(splits)
	// the cubic heads towards (-1,1), between the +x and +y lines it goes last
	test.T(t, d.verts[0].Edges, []int{0, 4, 2})
}

func TestDCELFaces(t *testing.T) {
	d := buildBowtieDCEL(t)
	faces, err := d.faces()
	test.Error(t, err)

	// the cycles partition the half-edges
	total := 0
	for _, cycle := range faces {
		total += len(cycle)
	}
	test.T(t, total, len(d.edges))

	// two triangular lobes and the outer walk
	triangles := 0
	for _, cycle := range faces {
		if len(cycle) == 3 {
			poly := samplePolygon(d, cycle)
			if Epsilon < signedArea(poly) {
				triangles++
			}
		}
	}
	test.T(t, triangles, 2)
}

func TestDCELDegenerate(t *testing.T) {
	// point-degenerate pieces are dropped
	splits := []SplitSegment{
		{Segment{ID: 0, Curve: Line(Point{0.0, 0.0}, Point{0.0, 0.0}), Subpath: 0, Prev: -1, Next: -1}, 0},
		{Segment{ID: 1, Curve: Line(Point{0.0, 0.0}, Point{1.0, 0.0}), Subpath: 0, Prev: -1, Next: -1}, 1},
	}
	d := buildDCEL(splits)
	test.T(t, len(d.edges), 2)
	test.T(t, len(d.verts), 2)
}
