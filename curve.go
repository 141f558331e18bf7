package arrange

import (
	"fmt"
	"math"
)

// CurveKind tags the geometry of a Curve. The order doubles as the sorting
// priority when breaking angular ties between edges around a vertex.
type CurveKind int

const (
	LineKind CurveKind = iota
	QuadKind
	CubeKind
	ArcKind
)

func (kind CurveKind) String() string {
	switch kind {
	case LineKind:
		return "Line"
	case QuadKind:
		return "Quad"
	case CubeKind:
		return "Cube"
	case ArcKind:
		return "Arc"
	}
	return "Unknown"
}

// Curve is an immutable path segment geometry: a line, a quadratic or cubic
// Bézier, or an (unsupported) elliptical arc. Quadratics use CP1 only.
// Arcs carry only their endpoints; they are rejected before any routine
// would need to evaluate them.
type Curve struct {
	Kind     CurveKind
	Start    Point
	CP1, CP2 Point
	End      Point
}

func Line(start, end Point) Curve {
	return Curve{Kind: LineKind, Start: start, End: end}
}

func Quad(start, cp, end Point) Curve {
	return Curve{Kind: QuadKind, Start: start, CP1: cp, End: end}
}

func Cube(start, cp1, cp2, end Point) Curve {
	return Curve{Kind: CubeKind, Start: start, CP1: cp1, CP2: cp2, End: end}
}

func (c Curve) String() string {
	switch c.Kind {
	case LineKind:
		return fmt.Sprintf("L%v%v", c.Start, c.End)
	case QuadKind:
		return fmt.Sprintf("Q%v%v%v", c.Start, c.CP1, c.End)
	case CubeKind:
		return fmt.Sprintf("C%v%v%v%v", c.Start, c.CP1, c.CP2, c.End)
	}
	return fmt.Sprintf("A%v%v", c.Start, c.End)
}

// Cubic returns the curve's canonical cubic control points. For a quadratic
// this is the exact degree elevation; lines and arcs have no cubic form and
// reaching this is a programming error.
func (c Curve) Cubic() (Point, Point, Point, Point) {
	switch c.Kind {
	case QuadKind:
		cp1, cp2 := quadraticToCubicBezier(c.Start, c.CP1, c.End)
		return c.Start, cp1, cp2, c.End
	case CubeKind:
		return c.Start, c.CP1, c.CP2, c.End
	}
	panic("bug: cubic form requested for " + c.Kind.String())
}

// Pos evaluates the curve at t in [0,1]. Quadratics are evaluated through
// their elevated cubic form so that quadratic and cubic evaluation share one
// code path.
func (c Curve) Pos(t float64) Point {
	switch c.Kind {
	case LineKind:
		return c.Start.Interpolate(c.End, t)
	case QuadKind, CubeKind:
		p0, p1, p2, p3 := c.Cubic()
		return cubicBezierPos(p0, p1, p2, p3, t)
	}
	panic("bug: arc evaluation not supported")
}

// Deriv returns the curve's tangent vector at t. Unlike Pos this uses the
// native degree: elevating a quadratic rescales the derivative's magnitude
// (though not its direction), so the quadratic closed form is kept.
func (c Curve) Deriv(t float64) Point {
	switch c.Kind {
	case LineKind:
		return c.End.Sub(c.Start)
	case QuadKind:
		return quadraticBezierDeriv(c.Start, c.CP1, c.End, t)
	case CubeKind:
		return cubicBezierDeriv(c.Start, c.CP1, c.CP2, c.End, t)
	}
	panic("bug: arc evaluation not supported")
}

// startTangent is the direction in which the curve leaves its start. When a
// control point coincides with the start the derivative vanishes there, so the
// direction falls back to the next distinct control point along the polygon.
func (c Curve) startTangent() Point {
	for _, p := range c.controlPoints()[1:] {
		if d := p.Sub(c.Start); !Equal(d.X, 0.0) || !Equal(d.Y, 0.0) {
			return d
		}
	}
	return Point{}
}

// endTangent is the direction in which the curve arrives at its end, the
// mirror of startTangent.
func (c Curve) endTangent() Point {
	ps := c.controlPoints()
	for i := len(ps) - 2; 0 <= i; i-- {
		if d := c.End.Sub(ps[i]); !Equal(d.X, 0.0) || !Equal(d.Y, 0.0) {
			return d
		}
	}
	return Point{}
}

// Split subdivides the curve at t into two curves of the same kind covering
// [0,t] and [t,1] of the original.
func (c Curve) Split(t float64) (Curve, Curve) {
	switch c.Kind {
	case LineKind:
		mid := c.Start.Interpolate(c.End, t)
		return Line(c.Start, mid), Line(mid, c.End)
	case QuadKind:
		p0, p1, p2, q0, q1, q2 := splitQuadraticBezier(c.Start, c.CP1, c.End, t)
		return Quad(p0, p1, p2), Quad(q0, q1, q2)
	case CubeKind:
		p0, p1, p2, p3, q0, q1, q2, q3 := splitCubicBezier(c.Start, c.CP1, c.CP2, c.End, t)
		return Curve{Kind: CubeKind, Start: p0, CP1: p1, CP2: p2, End: p3},
			Curve{Kind: CubeKind, Start: q0, CP1: q1, CP2: q2, End: q3}
	}
	panic("bug: arc splitting not supported")
}

// SplitRange returns the subcurve covering [t0,t1] of the original. It first
// splits at t0 and then re-splits the right half: after the first cut the
// original t1 lies at (t1-t0)/(1-t0) on the remainder, re-splitting at the
// absolute t1 would be wrong.
func (c Curve) SplitRange(t0, t1 float64) Curve {
	if t0 < Epsilon {
		if 1.0-Epsilon < t1 {
			return c
		}
		left, _ := c.Split(t1)
		return left
	}
	_, right := c.Split(t0)
	if 1.0-Epsilon < t1 {
		return right
	}
	relativeT := (t1 - t0) / (1.0 - t0)
	left, _ := right.Split(relativeT)
	return left
}

// FastBounds returns the bounding box of the control points, a cheap
// conservative approximation of the curve's extent.
func (c Curve) FastBounds() Rect {
	switch c.Kind {
	case LineKind, ArcKind:
		return pointsRect(c.Start, c.End)
	case QuadKind:
		return pointsRect(c.Start, c.CP1, c.End)
	}
	return pointsRect(c.Start, c.CP1, c.CP2, c.End)
}

// Bounds returns the exact bounding box by solving for the parameters where
// the derivative's x or y component vanishes and evaluating the curve there
// and at its endpoints.
func (c Curve) Bounds() Rect {
	if c.Kind == LineKind || c.Kind == ArcKind {
		return pointsRect(c.Start, c.End)
	}

	ps := []Point{c.Start, c.End}
	add := func(t float64) {
		if !math.IsNaN(t) && Epsilon < t && t < 1.0-Epsilon {
			ps = append(ps, c.Pos(t))
		}
	}
	if c.Kind == QuadKind {
		// derivative is linear: 2((1-t)(cp-start) + t(end-cp))
		dx0, dx1 := c.CP1.X-c.Start.X, c.End.X-c.CP1.X
		dy0, dy1 := c.CP1.Y-c.Start.Y, c.End.Y-c.CP1.Y
		if !Equal(dx0, dx1) {
			add(dx0 / (dx0 - dx1))
		}
		if !Equal(dy0, dy1) {
			add(dy0 / (dy0 - dy1))
		}
	} else {
		// derivative is a quadratic in t per axis
		p0, p1, p2, p3 := c.Start, c.CP1, c.CP2, c.End
		ax := -p0.X + 3.0*p1.X - 3.0*p2.X + p3.X
		bx := 2.0*p0.X - 4.0*p1.X + 2.0*p2.X
		cx := p1.X - p0.X
		t0, t1 := solveQuadraticFormula(3.0*ax, 3.0*bx, 3.0*cx)
		add(t0)
		add(t1)

		ay := -p0.Y + 3.0*p1.Y - 3.0*p2.Y + p3.Y
		by := 2.0*p0.Y - 4.0*p1.Y + 2.0*p2.Y
		cy := p1.Y - p0.Y
		t0, t1 = solveQuadraticFormula(3.0*ay, 3.0*by, 3.0*cy)
		add(t0)
		add(t1)
	}
	return pointsRect(ps...)
}

// controlPoints returns the curve's defining points, including only the
// control points its degree uses.
func (c Curve) controlPoints() []Point {
	switch c.Kind {
	case LineKind, ArcKind:
		return []Point{c.Start, c.End}
	case QuadKind:
		return []Point{c.Start, c.CP1, c.End}
	}
	return []Point{c.Start, c.CP1, c.CP2, c.End}
}

// PointDegenerate returns true when all of the curve's points coincide
// within Epsilon.
func (c Curve) PointDegenerate() bool {
	for _, p := range c.controlPoints()[1:] {
		if !p.Equals(c.Start) {
			return false
		}
	}
	return true
}

// LineDegenerate returns true when all of the curve's points are collinear
// within Epsilon. The two mutually furthest points form the baseline and the
// rest are checked for perpendicular deviation.
func (c Curve) LineDegenerate() bool {
	if c.PointDegenerate() {
		return true
	}
	ps := c.controlPoints()

	var a, b Point
	dmax := -1.0
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if d := ps[j].Sub(ps[i]).Dot(ps[j].Sub(ps[i])); dmax < d {
				a, b, dmax = ps[i], ps[j], d
			}
		}
	}

	axis := b.Sub(a)
	length := axis.Length()
	for _, p := range ps {
		if Epsilon <= math.Abs(p.Sub(a).PerpDot(axis))/length {
			return false
		}
	}
	return true
}

////////////////////////////////////////////////////////////////

func quadraticToCubicBezier(p0, p1, p2 Point) (Point, Point) {
	cp1 := p0.Interpolate(p1, 2.0/3.0)
	cp2 := p2.Interpolate(p1, 2.0/3.0)
	return cp1, cp2
}

func quadraticBezierPos(p0, p1, p2 Point, t float64) Point {
	p0 = p0.Mul((1.0 - t) * (1.0 - t))
	p1 = p1.Mul(2.0 * t * (1.0 - t))
	p2 = p2.Mul(t * t)
	return p0.Add(p1).Add(p2)
}

func quadraticBezierDeriv(p0, p1, p2 Point, t float64) Point {
	p0 = p0.Mul(-2.0 + 2.0*t)
	p1 = p1.Mul(2.0 - 4.0*t)
	p2 = p2.Mul(2.0 * t)
	return p0.Add(p1).Add(p2)
}

func cubicBezierPos(p0, p1, p2, p3 Point, t float64) Point {
	p0 = p0.Mul((1.0 - t) * (1.0 - t) * (1.0 - t))
	p1 = p1.Mul(3.0 * t * (1.0 - t) * (1.0 - t))
	p2 = p2.Mul(3.0 * t * t * (1.0 - t))
	p3 = p3.Mul(t * t * t)
	return p0.Add(p1).Add(p2).Add(p3)
}

func cubicBezierDeriv(p0, p1, p2, p3 Point, t float64) Point {
	p0 = p0.Mul(-3.0 * (1.0 - t) * (1.0 - t))
	p1 = p1.Mul(3.0 * (1.0 - t) * (1.0 - 3.0*t))
	p2 = p2.Mul(3.0 * t * (2.0 - 3.0*t))
	p3 = p3.Mul(3.0 * t * t)
	return p0.Add(p1).Add(p2).Add(p3)
}

func cubicBezierDeriv2(p0, p1, p2, p3 Point, t float64) Point {
	p0 = p0.Mul(6.0 * (1.0 - t))
	p1 = p1.Mul(-12.0 + 18.0*t)
	p2 = p2.Mul(6.0 - 18.0*t)
	p3 = p3.Mul(6.0 * t)
	return p0.Add(p1).Add(p2).Add(p3)
}

func splitQuadraticBezier(p0, p1, p2 Point, t float64) (Point, Point, Point, Point, Point, Point) {
	q1 := p0.Interpolate(p1, t)
	r1 := p1.Interpolate(p2, t)
	r0 := q1.Interpolate(r1, t)
	return p0, q1, r0, r0, r1, p2
}

func splitCubicBezier(p0, p1, p2, p3 Point, t float64) (Point, Point, Point, Point, Point, Point, Point, Point) {
	pm := p1.Interpolate(p2, t)

	q0 := p0
	q1 := p0.Interpolate(p1, t)
	q2 := q1.Interpolate(pm, t)

	r3 := p3
	r2 := p2.Interpolate(p3, t)
	r1 := pm.Interpolate(r2, t)

	r0 := q2.Interpolate(r1, t)
	q3 := r0
	return q0, q1, q2, q3, r0, r1, r2, r3
}
