package arrange

import (
	"errors"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestProcessPathRectangle(t *testing.T) {
	a, err := ProcessPath(Rectangle(0.0, 0.0, 10.0, 10.0), Options{})
	test.Error(t, err)
	test.T(t, len(a.Segments), 4)
	test.T(t, len(a.Splits), 4)
	test.T(t, len(a.Regions), 1)

	r := a.Regions[0]
	test.That(t, !r.IsHole)
	test.T(t, r.Parent, -1)
	test.T(t, len(r.Segments), 4)
	test.T(t, r.Winding, 1)
	test.T(t, r.Crossings, 1)
	test.Float(t, r.Area, 100.0)
}

func TestProcessPathNested(t *testing.T) {
	p := Rectangle(0.0, 0.0, 10.0, 10.0)
	q := Rectangle(2.0, 2.0, 6.0, 6.0)
	p.cmds = append(p.cmds, q.cmds...)
	p.d = append(p.d, q.d...)

	// under even-odd the inner rectangle is a hole
	a, err := ProcessPath(p, Options{FillRule: EvenOdd})
	test.Error(t, err)
	test.T(t, len(a.Regions), 2)

	var solid, hole Region
	for _, r := range a.Regions {
		if r.IsHole {
			hole = r
		} else {
			solid = r
		}
	}
	test.Float(t, solid.Area, 100.0)
	test.Float(t, hole.Area, 36.0)
	test.T(t, hole.Parent, solid.ID)
	test.T(t, solid.Children, []int{hole.ID})
	test.T(t, hole.Crossings, 2)

	// under non-zero both rectangles fill, the inner face is redundant
	a, err = ProcessPath(p, Options{FillRule: NonZero})
	test.Error(t, err)
	test.T(t, len(a.Regions), 1)
	test.That(t, !a.Regions[0].IsHole)
	test.Float(t, a.Regions[0].Area, 100.0)
}

func TestProcessPathBowtie(t *testing.T) {
	p := &Path{}
	p.MoveTo(0.0, 0.0)
	p.LineTo(10.0, 10.0)
	p.LineTo(10.0, 0.0)
	p.LineTo(0.0, 10.0)
	p.Close()

	a, err := ProcessPath(p, Options{})
	test.Error(t, err)
	test.T(t, len(a.Splits), 6)
	test.T(t, a.SegmentMap[0], []int{0, 1})
	test.T(t, len(a.SegmentMap[1]), 1)
	test.T(t, len(a.Regions), 2)
	for _, r := range a.Regions {
		test.That(t, !r.IsHole)
		test.T(t, r.Parent, -1)
		test.Float(t, r.Area, 25.0)
	}
}

func TestProcessPathCircle(t *testing.T) {
	a, err := ProcessPath(Circle(0.0, 0.0, 5.0), Options{})
	test.Error(t, err)
	test.T(t, len(a.Regions), 1)
	r := a.Regions[0]
	test.That(t, !r.IsHole)
	// the Bézier approximation and boundary sampling stay close to pi*r^2
	test.That(t, math.Abs(r.Area-math.Pi*25.0) < 0.1)
}

func TestProcessPathSelfIntersecting(t *testing.T) {
	// a cubic loop closed by a line through its start and end
	p := &Path{}
	p.MoveTo(0.0, 0.0)
	p.CubeTo(12.0, 8.0, -2.0, 8.0, 10.0, 0.0)
	p.Close()

	a, err := ProcessPath(p, Options{})
	test.Error(t, err)
	test.That(t, len(a.Segments) < len(a.Splits)) // the loop was cut
	test.That(t, 2 <= len(a.Regions))
	for _, r := range a.Regions {
		test.That(t, Epsilon < r.Area)
	}
}

func TestProcessPathErrors(t *testing.T) {
	_, err := ProcessPath(&Path{}, Options{})
	test.That(t, errors.Is(err, ErrEmptyPath))

	_, err = ProcessPath(nil, Options{})
	test.That(t, errors.Is(err, ErrEmptyPath))

	p := &Path{}
	p.MoveTo(0.0, 0.0)
	p.ArcTo(5.0, 5.0, 0.0, false, true, 10.0, 0.0)
	p.Close()
	_, err = ProcessPath(p, Options{})
	test.That(t, errors.Is(err, ErrUnsupportedArc))
}

func TestProcessPathWorkers(t *testing.T) {
	p := Circle(0.0, 0.0, 5.0)
	q := Circle(6.0, 0.0, 5.0)
	p.cmds = append(p.cmds, q.cmds...)
	p.d = append(p.d, q.d...)

	a1, err := ProcessPath(p, Options{FillRule: EvenOdd})
	test.Error(t, err)
	a2, err := ProcessPath(p, Options{FillRule: EvenOdd, Workers: 4})
	test.Error(t, err)

	test.T(t, len(a2.Splits), len(a1.Splits))
	test.T(t, len(a2.Regions), len(a1.Regions))
	// overlapping circles under even-odd: two crescents fill, the lens is a
	// gap between them at top level
	solids := 0
	for _, r := range a1.Regions {
		if !r.IsHole {
			solids++
		}
	}
	test.T(t, solids, 2)
}

type stageRecorder struct {
	segments, splits, regions int
}

func (o *stageRecorder) ObserveSegments(segs []Segment)      { o.segments = len(segs) }
func (o *stageRecorder) ObserveSplits(splits []SplitSegment) { o.splits = len(splits) }
func (o *stageRecorder) ObserveRegions(regions []Region)     { o.regions = len(regions) }

func TestProcessPathObserver(t *testing.T) {
	obs := &stageRecorder{}
	a, err := ProcessPath(Rectangle(0.0, 0.0, 10.0, 10.0), Options{Observer: obs})
	test.Error(t, err)
	test.T(t, obs.segments, len(a.Segments))
	test.T(t, obs.splits, len(a.Splits))
	test.T(t, obs.regions, len(a.Regions))
}
