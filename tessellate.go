package arrange

import (
	"github.com/ByteArena/poly2tri-go"
)

func toPoly2tri(poly []Point) []*poly2tri.Point {
	contour := make([]*poly2tri.Point, len(poly))
	for i, p := range poly {
		contour[i] = poly2tri.NewPoint(p.X, p.Y)
	}
	return contour
}

// Tessellate triangulates a solid region's interior, with its hole children
// subtracted, using constrained Delaunay triangulation over the sampled
// boundary polygons.
func Tessellate(regions []Region, id int) [][3]Point {
	r := regions[id]
	if r.IsHole {
		panic("bug: tessellating a hole")
	}

	swctx := poly2tri.NewSweepContext(toPoly2tri(r.Polygon), false)
	for _, ci := range r.Children {
		if regions[ci].IsHole {
			swctx.AddHole(toPoly2tri(regions[ci].Polygon))
		}
	}
	swctx.Triangulate()

	triangles := [][3]Point{}
	for _, tr := range swctx.GetTriangles() {
		p0 := Point{tr.Points[0].X, tr.Points[0].Y}
		p1 := Point{tr.Points[1].X, tr.Points[1].Y}
		p2 := Point{tr.Points[2].X, tr.Points[2].Y}
		triangles = append(triangles, [3]Point{p0, p1, p2})
	}
	return triangles
}

// TessellateAll triangulates every solid region of an arrangement.
func (a *Arrangement) TessellateAll() [][3]Point {
	var triangles [][3]Point
	for _, r := range a.Regions {
		if !r.IsHole {
			triangles = append(triangles, Tessellate(a.Regions, r.ID)...)
		}
	}
	return triangles
}
