package arrange

import (
	"testing"

	"github.com/tdewolff/test"
)

func bowtie() []Segment {
	p := &Path{}
	p.MoveTo(0.0, 0.0)
	p.LineTo(10.0, 10.0)
	p.LineTo(10.0, 0.0)
	p.LineTo(0.0, 10.0)
	p.Close()
	segs, err := segmentsFromPath(p)
	if err != nil {
		panic(err)
	}
	return segs
}

func TestSplitSegmentsNoCuts(t *testing.T) {
	segs, err := segmentsFromPath(Rectangle(0.0, 0.0, 10.0, 10.0))
	test.Error(t, err)
	cuts := make([][]cutPoint, len(segs))

	splits, _ := splitSegments(segs, cuts)
	test.T(t, len(splits), 4)
	for i, s := range splits {
		test.T(t, s.Parent, segs[i].ID)
		test.T(t, s.Curve, segs[i].Curve)
	}
	// chain survives
	test.T(t, splits[3].Next, 0)
	test.T(t, splits[0].Prev, 3)
}

func TestSplitSegments(t *testing.T) {
	segs := bowtie()
	cuts, err := findIntersections(segs, 0)
	test.Error(t, err)

	splits, _ := splitSegments(segs, cuts)
	test.T(t, len(splits), 6) // both diagonals split in two

	var first, second []SplitSegment
	for _, s := range splits {
		switch s.Parent {
		case 0:
			first = append(first, s)
		case 2:
			second = append(second, s)
		}
	}
	test.T(t, len(first), 2)
	test.T(t, len(second), 2)

	// the pieces share the intersection coordinate bit for bit
	test.T(t, first[0].Curve.End, first[1].Curve.Start)
	test.T(t, second[0].Curve.End, second[1].Curve.Start)
	test.T(t, first[0].Curve.End, second[0].Curve.End)

	// original endpoints survive
	test.T(t, first[0].Curve.Start, segs[0].Curve.Start)
	test.T(t, first[1].Curve.End, segs[0].Curve.End)

	// internal linking
	test.T(t, first[0].Next, first[1].ID)
	test.T(t, first[1].Prev, first[0].ID)
}

func TestSplitSegmentsChain(t *testing.T) {
	segs := bowtie()
	cuts, err := findIntersections(segs, 0)
	test.Error(t, err)
	splits, _ := splitSegments(segs, cuts)

	// the whole subpath remains one circular chain
	seen := map[int]bool{}
	cur := 0
	for i := 0; i < len(splits); i++ {
		test.That(t, !seen[cur])
		seen[cur] = true
		cur = splits[cur].Next
	}
	test.T(t, cur, 0)
}

func TestInsideParams(t *testing.T) {
	cuts := []cutPoint{
		{0.7, Point{7.0, 0.0}},
		{0.0, Point{0.0, 0.0}}, // at the start, dropped
		{0.3, Point{3.0, 0.0}},
		{0.3 + ParamEpsilon/2.0, Point{3.0, 0.0}}, // merges with 0.3
		{1.0, Point{10.0, 0.0}},                   // at the end, dropped
	}
	kept := insideParams(cuts)
	test.T(t, len(kept), 2)
	test.Float(t, kept[0].T, 0.3)
	test.Float(t, kept[1].T, 0.7)
}

func TestSplitSegmentsCurve(t *testing.T) {
	// a quadratic arch cut by the horizontal diagonal of its path
	p := &Path{}
	p.MoveTo(0.0, 0.0)
	p.QuadTo(5.0, 10.0, 10.0, 0.0)
	p.Close()
	segs, err := segmentsFromPath(p)
	test.Error(t, err)
	test.T(t, len(segs), 2)

	cuts := [][]cutPoint{
		{{0.5, Point{5.0, 5.0}}},
		nil,
	}
	splits, _ := splitSegments(segs, cuts)
	test.T(t, len(splits), 3)
	test.T(t, splits[0].Curve.Kind, QuadKind)
	test.T(t, splits[0].Curve.End, Point{5.0, 5.0})
	test.T(t, splits[1].Curve.Start, Point{5.0, 5.0})
	// the pieces still trace the original
	pos := splits[0].Curve.Pos(0.5)
	want := segs[0].Curve.Pos(0.25)
	test.Float(t, pos.X, want.X)
	test.Float(t, pos.Y, want.Y)
}
