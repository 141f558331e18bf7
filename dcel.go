package arrange

import (
	"math"
	"sort"
)

// A doubly connected edge list over the split segments. Every segment
// becomes a pair of twin half-edges; the outgoing edges around each vertex
// are sorted by tangent angle and the Next pointers follow from that
// rotation, after which every face of the arrangement is a cycle of Next
// pointers.

// vertexKey quantizes a coordinate onto a grid of Epsilon-sized cells.
// Endpoints that round to the same cell become one vertex.
type vertexKey struct {
	x, y int64
}

func keyOf(p Point) vertexKey {
	return vertexKey{int64(math.Round(p.X / Epsilon)), int64(math.Round(p.Y / Epsilon))}
}

// Vertex is a point of the arrangement with its outgoing half-edges.
type Vertex struct {
	Pos   Point
	Edges []int // outgoing half-edges, sorted CCW after finalizeRotation
}

// HalfEdge is one direction of a split segment. Twin is the opposite
// direction of the same segment; Next is the half-edge that continues this
// edge's face at its head.
type HalfEdge struct {
	Tail, Head int
	Twin, Next int
	Geom       int
	Reversed   bool // true when the edge runs against its geometry
}

// EdgeGeometry is the curve shared by a pair of twin half-edges, with the
// split segment it came from.
type EdgeGeometry struct {
	Seg   int
	Curve Curve
}

type dcel struct {
	verts  []Vertex
	edges  []HalfEdge
	geoms  []EdgeGeometry
	lookup map[vertexKey]int
}

func (d *dcel) vertex(p Point) int {
	key := keyOf(p)
	if v, ok := d.lookup[key]; ok {
		return v
	}
	v := len(d.verts)
	d.verts = append(d.verts, Vertex{Pos: p})
	d.lookup[key] = v
	return v
}

// tangent returns the outgoing edge's direction at its tail. The control
// polygon direction is used rather than the derivative: a curve whose first
// control point coincides with its endpoint has a zero derivative there, which
// would sort the edge at angle zero regardless of where it actually heads.
func (d *dcel) tangent(e int) Point {
	he := d.edges[e]
	c := d.geoms[he.Geom].Curve
	if he.Reversed {
		return c.endTangent().Neg()
	}
	return c.startTangent()
}

func buildDCEL(splits []SplitSegment) *dcel {
	d := &dcel{lookup: map[vertexKey]int{}}
	for _, s := range splits {
		if s.Curve.PointDegenerate() {
			continue // no extent, would have a zero tangent
		}

		tail := d.vertex(s.Curve.Start)
		head := d.vertex(s.Curve.End)
		g := len(d.geoms)
		d.geoms = append(d.geoms, EdgeGeometry{Seg: s.ID, Curve: s.Curve})

		fwd := len(d.edges)
		rev := fwd + 1
		d.edges = append(d.edges,
			HalfEdge{Tail: tail, Head: head, Twin: rev, Next: -1, Geom: g},
			HalfEdge{Tail: head, Head: tail, Twin: fwd, Next: -1, Geom: g, Reversed: true})
		d.verts[tail].Edges = append(d.verts[tail].Edges, fwd)
		d.verts[head].Edges = append(d.verts[head].Edges, rev)
	}
	d.finalizeRotation()
	return d
}

// finalizeRotation sorts every vertex's outgoing edges counter clockwise and
// derives the Next pointers: an edge arriving at a vertex continues along the
// rotational predecessor of its own twin, which keeps each face's interior on
// the walker's left. Angular ties between overlapping tangents break on curve
// kind, then direction, then head position, so the order is deterministic.
func (d *dcel) finalizeRotation() {
	for v := range d.verts {
		out := d.verts[v].Edges
		sort.SliceStable(out, func(i, j int) bool {
			ti, tj := d.tangent(out[i]), d.tangent(out[j])
			ai, aj := angleNorm(ti.Angle()), angleNorm(tj.Angle())
			if !angleEqual(ai, aj) {
				return ai < aj
			}
			ei, ej := d.edges[out[i]], d.edges[out[j]]
			if gi, gj := d.geoms[ei.Geom], d.geoms[ej.Geom]; gi.Curve.Kind != gj.Curve.Kind {
				return gi.Curve.Kind < gj.Curve.Kind
			}
			if ei.Reversed != ej.Reversed {
				return !ei.Reversed
			}
			pi, pj := d.verts[ei.Head].Pos, d.verts[ej.Head].Pos
			if pi.X != pj.X {
				return pi.X < pj.X
			}
			return pi.Y < pj.Y
		})

		n := len(out)
		for i, e := range out {
			d.edges[d.edges[e].Twin].Next = out[(i-1+n)%n]
		}
	}
}

// faces returns every cycle of Next pointers as a list of half-edges. The
// rotation makes Next a permutation, so the cycles partition the half-edges;
// a walk that exceeds the edge count or closes onto a foreign cycle means the
// topology is corrupt.
func (d *dcel) faces() ([][]int, error) {
	visited := make([]bool, len(d.edges))
	var faces [][]int
	for e := range d.edges {
		if visited[e] {
			continue
		}
		var cycle []int
		cur := e
		for !visited[cur] {
			visited[cur] = true
			cycle = append(cycle, cur)
			cur = d.edges[cur].Next
			if cur < 0 || len(d.edges) < len(cycle) {
				return nil, ErrInconsistentTopology
			}
		}
		if cur != e {
			return nil, ErrInconsistentTopology
		}
		faces = append(faces, cycle)
	}
	return faces, nil
}
