package arrange

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// DrawRegions rasterizes the solid regions of an arrangement into img, a
// debug view of the classification. The regions are scaled to fit the image
// with a small margin, y pointing up. Solids fill counter clockwise and their
// holes clockwise, so the non-zero rasterization leaves the holes open.
func DrawRegions(img draw.Image, regions []Region, c color.Color) {
	var bounds Rect
	first := true
	for _, r := range regions {
		if first {
			bounds = pointsRect(r.Polygon...)
			first = false
		} else {
			bounds = bounds.Add(pointsRect(r.Polygon...))
		}
	}
	if first || bounds.W < Epsilon || bounds.H < Epsilon {
		return
	}

	size := img.Bounds().Size()
	margin := 0.05
	sx := float64(size.X) * (1.0 - 2.0*margin) / bounds.W
	sy := float64(size.Y) * (1.0 - 2.0*margin) / bounds.H
	scale := sx
	if sy < sx {
		scale = sy
	}
	toImg := func(p Point) (float32, float32) {
		x := float64(size.X)*margin + (p.X-bounds.X)*scale
		y := float64(size.Y) - float64(size.Y)*margin - (p.Y-bounds.Y)*scale
		return float32(x), float32(y)
	}

	addPolygon := func(ras *vector.Rasterizer, poly []Point, reverse bool) {
		for i := range poly {
			k := i
			if reverse {
				k = len(poly) - 1 - i
			}
			x, y := toImg(poly[k])
			if i == 0 {
				ras.MoveTo(x, y)
			} else {
				ras.LineTo(x, y)
			}
		}
		ras.ClosePath()
	}

	ras := vector.NewRasterizer(size.X, size.Y)
	for _, r := range regions {
		if r.IsHole {
			continue
		}
		addPolygon(ras, r.Polygon, false)
		for _, ci := range r.Children {
			if regions[ci].IsHole {
				addPolygon(ras, regions[ci].Polygon, true)
			}
		}
	}
	ras.Draw(img, image.Rect(0, 0, size.X, size.Y), image.NewUniform(c), image.Point{})
}
