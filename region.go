package arrange

import (
	"math"
	"sort"
)

// FillRule is the algorithm to specify which area is to be filled and which
// not, in particular when multiple subpaths overlap. The NonZero rule is the
// default and fills any path that has a non-zero winding number, while the
// EvenOdd rule fills those with an odd number of boundary crossings.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

func (fillRule FillRule) String() string {
	if fillRule == EvenOdd {
		return "EvenOdd"
	}
	return "NonZero"
}

// Fills returns whether an area with the given winding number and boundary
// crossing count is inside the shape.
func (fillRule FillRule) Fills(winding, crossings int) bool {
	if fillRule == EvenOdd {
		return crossings%2 != 0
	}
	return winding != 0
}

// CurveSamples is the number of points a curved edge contributes to its
// face's sampled boundary polygon. Straight edges contribute their endpoints.
var CurveSamples = 100

// Region is a minimal face of the arrangement, classified as solid or hole
// against the input path under the fill rule. Regions form a forest: a hole's
// parent is the solid it punctures, a solid's parent is the hole (or nothing)
// it floats in.
type Region struct {
	ID        int
	Segments  []int  // split segment ids along the boundary, in walk order
	Reversed  []bool // whether each boundary segment runs against its geometry
	IsHole    bool
	Parent    int // -1 at top level
	Children  []int
	Area      float64
	Interior  Point
	Winding   int
	Crossings int
	Polygon   []Point // sampled boundary, counter clockwise
}

////////////////////////////////////////////////////////////////

// samplePolygon flattens a face cycle into a polygon. Every edge contributes
// points over t in [0,1) in travel direction; the final point of each edge is
// the next edge's first, so the joints appear once.
func samplePolygon(d *dcel, cycle []int) []Point {
	var poly []Point
	for _, e := range cycle {
		he := d.edges[e]
		c := d.geoms[he.Geom].Curve
		if c.Kind == LineKind {
			poly = append(poly, d.verts[he.Tail].Pos)
			continue
		}
		for k := 0; k < CurveSamples; k++ {
			t := float64(k) / float64(CurveSamples)
			if he.Reversed {
				t = 1.0 - t
			}
			poly = append(poly, c.Pos(t))
		}
	}
	return poly
}

// signedArea is the shoelace area of the polygon, positive when counter
// clockwise.
func signedArea(poly []Point) float64 {
	area := 0.0
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		area += poly[j].PerpDot(poly[i])
		j = i
	}
	return area / 2.0
}

// pointInPolygon reports containment by the even-odd rule.
func pointInPolygon(p Point, poly []Point) bool {
	in := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		if (p.Y < poly[i].Y) != (p.Y < poly[j].Y) {
			x := poly[i].X + (p.Y-poly[i].Y)/(poly[j].Y-poly[i].Y)*(poly[j].X-poly[i].X)
			if p.X < x {
				in = !in
			}
		}
		j = i
	}
	return in
}

// interiorPoint finds a point strictly inside a counter clockwise polygon
// that avoids the given polygons. A face of one connected component can
// geometrically cover the faces of a nested component, as no edge separates
// them; a sample point inside such a covered face would misclassify the
// covering one, so those polygons are passed in avoid. The centroid is tried
// first, then edge midpoints nudged inward (left of travel) at shrinking
// offsets.
func interiorPoint(poly []Point, avoid [][]Point) Point {
	inAvoided := func(q Point) bool {
		for _, a := range avoid {
			if pointInPolygon(q, a) {
				return true
			}
		}
		return false
	}

	var centroid Point
	for _, p := range poly {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1.0 / float64(len(poly)))
	if pointInPolygon(centroid, poly) && !inAvoided(centroid) {
		return centroid
	}

	for _, scale := range []float64{0.25, 0.05, 0.01, 0.001} {
		j := len(poly) - 1
		for i := 0; i < len(poly); i++ {
			dir := poly[i].Sub(poly[j])
			length := dir.Length()
			if length < Epsilon {
				j = i
				continue
			}
			mid := poly[j].Interpolate(poly[i], 0.5)
			q := mid.Add(dir.Rot90CCW().Norm(scale * length))
			if pointInPolygon(q, poly) && !inAvoided(q) {
				return q
			}
			j = i
		}
	}
	return centroid
}

////////////////////////////////////////////////////////////////

// rayIntersections casts a ray from p towards +x through the original
// segments and returns the winding number and the crossing count. Roots are
// counted over the half-open t in [0,1) so that the shared endpoint of two
// consecutive segments is hit exactly once; tangent touches, where the curve
// does not actually cross the ray, are skipped.
func rayIntersections(segs []Segment, p Point) (int, int) {
	winding, crossings := 0, 0
	count := func(x, dy float64) {
		if x <= p.X+Epsilon || math.Abs(dy) < Epsilon {
			return
		}
		crossings++
		if 0.0 < dy {
			winding++
		} else {
			winding--
		}
	}
	inRange := func(t float64) bool {
		return !math.IsNaN(t) && -Epsilon <= t && t < 1.0-Epsilon
	}

	for _, seg := range segs {
		c := seg.Curve
		switch c.Kind {
		case LineKind:
			dy := c.End.Y - c.Start.Y
			if math.Abs(dy) < Epsilon {
				continue
			}
			if t := (p.Y - c.Start.Y) / dy; inRange(t) {
				count(c.Start.Interpolate(c.End, t).X, dy)
			}
		case QuadKind:
			a := c.Start.Y - 2.0*c.CP1.Y + c.End.Y
			b := 2.0 * (c.CP1.Y - c.Start.Y)
			d := c.Start.Y - p.Y
			t0, t1 := solveQuadraticFormula(a, b, d)
			for _, t := range []float64{t0, t1} {
				if inRange(t) {
					count(quadraticBezierPos(c.Start, c.CP1, c.End, t).X, c.Deriv(t).Y)
				}
			}
		case CubeKind:
			a := c.End.Y - c.Start.Y + 3.0*(c.CP1.Y-c.CP2.Y)
			b := 3.0 * (c.Start.Y - 2.0*c.CP1.Y + c.CP2.Y)
			cc := 3.0 * (c.CP1.Y - c.Start.Y)
			d := c.Start.Y - p.Y
			t0, t1, t2 := solveCubicFormula(a, b, cc, d)
			for _, t := range []float64{t0, t1, t2} {
				if inRange(t) {
					count(cubicBezierPos(c.Start, c.CP1, c.CP2, c.End, t).X, c.Deriv(t).Y)
				}
			}
		}
	}
	return winding, crossings
}

////////////////////////////////////////////////////////////////

// buildRegions turns the face cycles into classified regions. Faces walk
// with their interior on the left, so the bounded faces are the counter
// clockwise cycles; the clockwise ones wrap the unbounded outside of each
// connected component and are dropped, as are zero-area walks along dangling
// open subpaths.
func buildRegions(d *dcel, faces [][]int, origSegs []Segment, fillRule FillRule) ([]Region, error) {
	var regions []Region
	for _, cycle := range faces {
		poly := samplePolygon(d, cycle)
		if len(poly) < 3 {
			continue
		}
		area := signedArea(poly)
		if area < Epsilon {
			continue
		}

		segments := make([]int, len(cycle))
		reversed := make([]bool, len(cycle))
		for i, e := range cycle {
			segments[i] = d.geoms[d.edges[e].Geom].Seg
			reversed[i] = d.edges[e].Reversed
		}

		regions = append(regions, Region{
			ID:       len(regions),
			Segments: segments,
			Reversed: reversed,
			Parent:   -1,
			Area:     area,
			Polygon:  poly,
		})
	}

	// classify with a sample point that lies outside every smaller face, as
	// a nested component's faces geometrically cover part of a larger face
	for i := range regions {
		var avoid [][]Point
		for j := range regions {
			if j != i && regions[j].Area < regions[i].Area {
				avoid = append(avoid, regions[j].Polygon)
			}
		}
		r := &regions[i]
		r.Interior = interiorPoint(r.Polygon, avoid)
		r.Winding, r.Crossings = rayIntersections(origSegs, r.Interior)
		r.IsHole = !fillRule.Fills(r.Winding, r.Crossings)
	}

	regions = buildHierarchy(regions)
	if err := validateHierarchy(regions); err != nil {
		return nil, err
	}
	return regions, nil
}

// buildHierarchy nests the regions by containment and prunes the redundant
// ones. Regions are placed largest first, each under the smallest already
// placed region whose polygon contains its interior point; since a parent is
// always strictly larger, the result is a forest. A region of the same
// polarity as its parent (a solid floating in a solid, or a hole inside a
// hole) adds nothing to the shape and is collapsed, as is a hole at top
// level: the outside already is one.
func buildHierarchy(regions []Region) []Region {
	order := make([]int, len(regions))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return regions[order[j]].Area < regions[order[i]].Area
	})

	for k, ri := range order {
		r := &regions[ri]
		// smallest enclosing region is the last one placed that contains us
		for p := k - 1; 0 <= p; p-- {
			pi := order[p]
			if pointInPolygon(r.Interior, regions[pi].Polygon) {
				r.Parent = pi
				break
			}
		}
	}

	// collapse regions that do not alternate polarity with their parent,
	// re-parenting their children to their parent
	parentOf := func(ri int) int {
		return regions[ri].Parent
	}
	drop := make([]bool, len(regions))
	for _, ri := range order { // largest first, so ancestors resolve first
		parent := parentOf(ri)
		for parent != -1 && drop[parent] {
			parent = parentOf(parent)
		}
		regions[ri].Parent = parent
		parentIsHole := true // top level counts as hole
		if parent != -1 {
			parentIsHole = regions[parent].IsHole
		}
		if regions[ri].IsHole == parentIsHole {
			drop[ri] = true
		}
	}

	// reindex contiguously
	remap := make([]int, len(regions))
	kept := regions[:0]
	for i := range regions {
		if drop[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, regions[i])
	}
	for i := range kept {
		kept[i].ID = i
		if kept[i].Parent != -1 {
			kept[i].Parent = remap[kept[i].Parent]
		}
		kept[i].Children = nil
	}
	for i := range kept {
		if p := kept[i].Parent; p != -1 {
			kept[p].Children = append(kept[p].Children, i)
		}
	}
	return kept
}

// validateHierarchy checks that the parent links form a forest: every index in
// range, no region its own ancestor, and each child list consistent with the
// parent links.
func validateHierarchy(regions []Region) error {
	for i, r := range regions {
		if r.Parent < -1 || len(regions) <= r.Parent || r.Parent == i {
			return ErrInconsistentTopology
		}
		steps := 0
		for p := r.Parent; p != -1; p = regions[p].Parent {
			if p < 0 || len(regions) <= p {
				return ErrInconsistentTopology
			}
			if steps++; len(regions) < steps {
				return ErrInconsistentTopology // parent cycle
			}
		}
		for _, c := range r.Children {
			if c < 0 || len(regions) <= c || regions[c].Parent != i {
				return ErrInconsistentTopology
			}
		}
	}
	return nil
}
