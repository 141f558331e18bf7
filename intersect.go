package arrange

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// Intersections amongst the combinations between lines, quadratic and cubic
// Béziers. Curves that are parallel or identical report no intersections;
// curves that cross or touch report the crossing position with both local
// parameters. As all curves are segments, parameters are clamped to [0,1].

// Intersection is a single intersection between two curves, with the local
// parameter on either curve at the hit.
type Intersection struct {
	Point
	T [2]float64 // position along either curve in [0,1]
}

func (z Intersection) String() string {
	return fmt.Sprintf("({%g,%g} t={%g,%g})", z.X, z.Y, z.T[0], z.T[1])
}

type Intersections []Intersection

// Has returns true if there are intersections.
func (zs Intersections) Has() bool {
	return 0 < len(zs)
}

func (zs Intersections) add(pos Point, ta, tb float64) Intersections {
	ta = math.Max(0.0, math.Min(1.0, ta))
	tb = math.Max(0.0, math.Min(1.0, tb))
	return append(zs, Intersection{pos, [2]float64{ta, tb}})
}

// swapped returns the intersections with the roles of both curves exchanged.
func (zs Intersections) swapped() Intersections {
	for i := range zs {
		zs[i].T[0], zs[i].T[1] = zs[i].T[1], zs[i].T[0]
	}
	return zs
}

////////////////////////////////////////////////////////////////

// see https://www.geometrictools.com/GTE/Mathematics/IntrLine2Line2.h
func intersectionLineLine(zs Intersections, a0, a1, b0, b1 Point) Intersections {
	if a0.Equals(a1) || b0.Equals(b1) {
		return zs // zero-length
	}

	da := a1.Sub(a0)
	db := b1.Sub(b0)
	div := da.PerpDot(db)
	if math.Abs(div) < Epsilon {
		// parallel or coincident, deliberately not reported
		return zs
	}

	ta := db.PerpDot(a0.Sub(b0)) / div
	tb := da.PerpDot(a0.Sub(b0)) / div
	if Interval(ta, 0.0, 1.0) && Interval(tb, 0.0, 1.0) {
		zs = zs.add(a0.Interpolate(a1, ta), ta, tb)
	}
	return zs
}

// lineParam projects pos back onto the line l0--l1 and returns the line's
// own parameter. Projection avoids re-solving for the parameter, which would
// introduce a second floating path to the same value.
func lineParam(l0, l1, pos Point) float64 {
	d := l1.Sub(l0)
	return pos.Sub(l0).Dot(d) / d.Dot(d)
}

// see https://www.particleincell.com/2013/cubic-line-intersection/
func intersectionLineQuad(zs Intersections, l0, l1, p0, p1, p2 Point) Intersections {
	if l0.Equals(l1) {
		return zs // zero-length
	}

	// write line as A.X = bias
	A := Point{l1.Y - l0.Y, l0.X - l1.X}
	bias := l0.Dot(A)

	a := A.Dot(p0.Sub(p1.Mul(2.0)).Add(p2))
	b := A.Dot(p1.Sub(p0).Mul(2.0))
	c := A.Dot(p0) - bias

	r0, r1 := solveQuadraticFormula(a, b, c)
	for _, root := range []float64{r0, r1} {
		if math.IsNaN(root) || !Interval(root, 0.0, 1.0) {
			continue
		}
		pos := quadraticBezierPos(p0, p1, p2, root)
		s := lineParam(l0, l1, pos)
		if Interval(s, 0.0, 1.0) {
			zs = zs.add(pos, s, root)
		}
	}
	return zs
}

// see https://www.particleincell.com/2013/cubic-line-intersection/
func intersectionLineCube(zs Intersections, l0, l1, p0, p1, p2, p3 Point) Intersections {
	if l0.Equals(l1) {
		return zs // zero-length
	}

	// write line as A.X = bias
	A := Point{l1.Y - l0.Y, l0.X - l1.X}
	bias := l0.Dot(A)

	a := A.Dot(p3.Sub(p0).Add(p1.Mul(3.0)).Sub(p2.Mul(3.0)))
	b := A.Dot(p0.Mul(3.0).Sub(p1.Mul(6.0)).Add(p2.Mul(3.0)))
	c := A.Dot(p1.Mul(3.0).Sub(p0.Mul(3.0)))
	d := A.Dot(p0) - bias

	r0, r1, r2 := solveCubicFormula(a, b, c, d)
	for _, root := range []float64{r0, r1, r2} {
		if math.IsNaN(root) || !Interval(root, 0.0, 1.0) {
			continue
		}
		pos := cubicBezierPos(p0, p1, p2, p3, root)
		s := lineParam(l0, l1, pos)
		if Interval(s, 0.0, 1.0) {
			zs = zs.add(pos, s, root)
		}
	}
	return zs
}

////////////////////////////////////////////////////////////////

// Curve-curve intersection by recursive Bézier clipping.
// see T.W. Sederberg and T. Nishita, "Curve intersection using Bézier
// clipping", 1990
// see T.W. Sederberg and S.R. Parry, "Comparison of three curve intersection
// algorithms", 1986

// fatLineMiss builds the fat line of p, the band around its chord that is
// wide enough to contain all of p's control points, and returns true when
// q's convex hull lies entirely outside that band.
func fatLineMiss(p, q [4]Point) bool {
	n := p[3].Sub(p[0]).Rot90CCW()
	if Equal(n.X, 0.0) && Equal(n.Y, 0.0) {
		// degenerate chord, no rejection possible
		return false
	}

	dist := func(pt Point) float64 {
		return n.Dot(pt.Sub(p[0]))
	}
	dmin := math.Min(0.0, math.Min(dist(p[1]), dist(p[2])))
	dmax := math.Max(0.0, math.Max(dist(p[1]), dist(p[2])))

	above, below := true, true
	for _, pt := range q {
		d := dist(pt)
		if d <= dmax+Epsilon {
			above = false
		}
		if dmin-Epsilon <= d {
			below = false
		}
	}
	return above || below
}

func splitCubic(p [4]Point, t float64) ([4]Point, [4]Point) {
	q0, q1, q2, q3, r0, r1, r2, r3 := splitCubicBezier(p[0], p[1], p[2], p[3], t)
	return [4]Point{q0, q1, q2, q3}, [4]Point{r0, r1, r2, r3}
}

// bezierClip recursively subdivides both curves, rejecting pairs whose
// bounding boxes or fat lines do not overlap, and reports an intersection at
// the parameter-range midpoints once the boxes shrink below BBoxEpsilon or
// the recursion depth cap is hit. pt0..pt1 and qt0..qt1 are the global
// parameter ranges covered by p and q.
func bezierClip(zs Intersections, p, q [4]Point, pt0, pt1, qt0, qt1 float64, depth int) Intersections {
	bp := pointsRect(p[0], p[1], p[2], p[3])
	bq := pointsRect(q[0], q[1], q[2], q[3])
	if !bp.Overlaps(bq) {
		return zs
	}

	if MaxRecursionDepth <= depth ||
		bp.W < BBoxEpsilon && bp.H < BBoxEpsilon && bq.W < BBoxEpsilon && bq.H < BBoxEpsilon {
		pos := cubicBezierPos(p[0], p[1], p[2], p[3], 0.5)
		return zs.add(pos, (pt0+pt1)/2.0, (qt0+qt1)/2.0)
	}

	if fatLineMiss(p, q) || fatLineMiss(q, p) {
		return zs
	}

	pl, pr := splitCubic(p, 0.5)
	ql, qr := splitCubic(q, 0.5)
	ptm := (pt0 + pt1) / 2.0
	qtm := (qt0 + qt1) / 2.0
	zs = bezierClip(zs, pl, ql, pt0, ptm, qt0, qtm, depth+1)
	zs = bezierClip(zs, pl, qr, pt0, ptm, qtm, qt1, depth+1)
	zs = bezierClip(zs, pr, ql, ptm, pt1, qt0, qtm, depth+1)
	zs = bezierClip(zs, pr, qr, ptm, pt1, qtm, qt1, depth+1)
	return zs
}

// dedupeRoots merges intersections whose parameters lie within RootEpsilon
// of an already kept intersection on both curves. The clipper reports one
// hit per surviving leaf of the subdivision, so a single geometric crossing
// arrives as a cluster of near-identical roots.
func dedupeRoots(zs Intersections) Intersections {
	sort.Slice(zs, func(i, j int) bool {
		if zs[i].T[0] == zs[j].T[0] {
			return zs[i].T[1] < zs[j].T[1]
		}
		return zs[i].T[0] < zs[j].T[0]
	})

	kept := zs[:0]
	for _, z := range zs {
		dupe := false
		for _, w := range kept {
			if math.Abs(z.T[0]-w.T[0]) < RootEpsilon && math.Abs(z.T[1]-w.T[1]) < RootEpsilon {
				dupe = true
				break
			}
		}
		if !dupe {
			kept = append(kept, z)
		}
	}
	return kept
}

func intersectionCubeCube(zs Intersections, p, q [4]Point) Intersections {
	n := len(zs)
	zs = bezierClip(zs, p, q, 0.0, 1.0, 0.0, 1.0, 0)
	return append(zs[:n], dedupeRoots(zs[n:])...)
}

// selfClip finds the parameter pairs where p meets itself: its two midpoint
// halves are clipped against each other over their disjoint global ranges, and
// each half recursively clips against itself, so a double point lying entirely
// inside one half is still found. A double point is covered by exactly one
// level's cross clip, the first whose midpoint separates its two parameters.
func selfClip(zs Intersections, p [4]Point, t0, t1 float64) Intersections {
	if t1-t0 < ParamEpsilon {
		return zs // too narrow to hold two distinct parameters
	}
	left, right := splitCubic(p, 0.5)
	tm := (t0 + t1) / 2.0
	zs = bezierClip(zs, left, right, t0, tm, tm, t1, 0)
	zs = selfClip(zs, left, t0, tm)
	zs = selfClip(zs, right, tm, t1)
	return zs
}

// intersectionCubeSelf finds the self-intersection of a cubic, dropping the
// trivial coincidences at the subdivision joints and at coinciding start/end
// points.
func intersectionCubeSelf(zs Intersections, p [4]Point) Intersections {
	n := len(zs)
	zs = selfClip(zs, p, 0.0, 1.0)

	kept := zs[:n]
	for _, z := range dedupeRoots(zs[n:]) {
		if math.Abs(z.T[1]-z.T[0]) < ParamEpsilon {
			continue // a subdivision joint, not a double point
		}
		if z.T[0] < ParamEpsilon && 1.0-ParamEpsilon < z.T[1] {
			continue // closed curve start/end coincidence
		}
		kept = append(kept, z)
	}
	return kept
}

////////////////////////////////////////////////////////////////

// LineLineIntersections returns the intersections between two line segments.
// Parallel and coincident lines report no intersections.
func LineLineIntersections(a0, a1, b0, b1 Point) Intersections {
	return intersectionLineLine(nil, a0, a1, b0, b1)
}

// LineBezierIntersections returns the intersections between a line segment
// and a quadratic or cubic Bézier.
func LineBezierIntersections(l0, l1 Point, c Curve) Intersections {
	switch c.Kind {
	case LineKind:
		return intersectionLineLine(nil, l0, l1, c.Start, c.End)
	case QuadKind:
		return intersectionLineQuad(nil, l0, l1, c.Start, c.CP1, c.End)
	case CubeKind:
		return intersectionLineCube(nil, l0, l1, c.Start, c.CP1, c.CP2, c.End)
	}
	panic("bug: arc intersection not supported")
}

// BezierBezierIntersections returns the intersections between two Bézier
// curves by recursive fat-line clipping. Quadratics are degree elevated,
// which leaves their parametrization unchanged.
func BezierBezierIntersections(p, q Curve) Intersections {
	var pc, qc [4]Point
	pc[0], pc[1], pc[2], pc[3] = p.Cubic()
	qc[0], qc[1], qc[2], qc[3] = q.Cubic()
	return intersectionCubeCube(nil, pc, qc)
}

// BezierSelfIntersections returns the self-intersection of a curve. Only
// cubics can self-intersect; lines and quadratics return none.
func BezierSelfIntersections(c Curve) Intersections {
	if c.Kind != CubeKind {
		return nil
	}
	return intersectionCubeSelf(nil, [4]Point{c.Start, c.CP1, c.CP2, c.End})
}

// intersectionSegments dispatches on the kind pair of both curves. The
// symmetric cases reuse one handler with the parameters swapped.
func intersectionSegments(a, b Curve) (Intersections, error) {
	if a.Kind == ArcKind || b.Kind == ArcKind {
		return nil, ErrUnsupportedArc
	}
	if a.PointDegenerate() || b.PointDegenerate() {
		return nil, nil
	}

	if a.Kind == LineKind {
		return LineBezierIntersections(a.Start, a.End, b), nil
	} else if b.Kind == LineKind {
		return LineBezierIntersections(b.Start, b.End, a).swapped(), nil
	}
	return BezierBezierIntersections(a, b), nil
}

////////////////////////////////////////////////////////////////

// cutPoint is a position along a segment where it must be split, together
// with the exact intersection coordinate to inject there.
type cutPoint struct {
	T   float64
	Pos Point
}

type segmentCut struct {
	seg int
	cut cutPoint
}

// intersectPair collects the cuts a single segment pair contributes,
// filtering out hits at the shared joint of path-adjacent segments.
func intersectPair(a, b Segment) ([]segmentCut, error) {
	zs, err := intersectionSegments(a.Curve, b.Curve)
	if err != nil {
		return nil, err
	}

	var cuts []segmentCut
	for _, z := range zs {
		if a.adjacentTo(b) {
			if a.Next == b.ID && 1.0-ParamEpsilon < z.T[0] && z.T[1] < ParamEpsilon {
				continue
			}
			if b.Next == a.ID && 1.0-ParamEpsilon < z.T[1] && z.T[0] < ParamEpsilon {
				continue
			}
		}
		cuts = append(cuts,
			segmentCut{a.ID, cutPoint{z.T[0], z.Point}},
			segmentCut{b.ID, cutPoint{z.T[1], z.Point}})
	}
	return cuts, nil
}

func selfCuts(s Segment) ([]segmentCut, error) {
	if s.Curve.Kind == ArcKind {
		return nil, ErrUnsupportedArc
	}
	var cuts []segmentCut
	for _, z := range BezierSelfIntersections(s.Curve) {
		cuts = append(cuts,
			segmentCut{s.ID, cutPoint{z.T[0], z.Point}},
			segmentCut{s.ID, cutPoint{z.T[1], z.Point}})
	}
	return cuts, nil
}

// findIntersections computes all pairwise and self intersections and returns
// the cut positions per segment. Each pair is independent, so with
// workers > 1 the outer loop fans out over a worker pool; results are merged
// and later sorted per segment, making the output order-insensitive.
func findIntersections(segs []Segment, workers int) ([][]cutPoint, error) {
	cuts := make([][]cutPoint, len(segs))
	collect := func(batch []segmentCut) {
		for _, c := range batch {
			cuts[c.seg] = append(cuts[c.seg], c.cut)
		}
	}

	row := func(i int) ([]segmentCut, error) {
		batch, err := selfCuts(segs[i])
		if err != nil {
			return nil, err
		}
		for j := i + 1; j < len(segs); j++ {
			more, err := intersectPair(segs[i], segs[j])
			if err != nil {
				return nil, err
			}
			batch = append(batch, more...)
		}
		return batch, nil
	}

	if workers <= 1 {
		for i := range segs {
			batch, err := row(i)
			if err != nil {
				return nil, err
			}
			collect(batch)
		}
		return cuts, nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				batch, err := row(i)
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else {
					collect(batch)
				}
				mu.Unlock()
			}
		}()
	}
	for i := range segs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return cuts, nil
}
