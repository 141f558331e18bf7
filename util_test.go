package arrange

import (
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestPoint(t *testing.T) {
	p := Point{3.0, 4.0}
	test.That(t, !p.IsZero())
	test.That(t, Point{}.IsZero())
	test.T(t, p.Neg(), Point{-3.0, -4.0})
	test.T(t, p.Add(Point{1.0, 1.0}), Point{4.0, 5.0})
	test.T(t, p.Sub(Point{1.0, 1.0}), Point{2.0, 3.0})
	test.T(t, p.Mul(2.0), Point{6.0, 8.0})
	test.T(t, p.Rot90CW(), Point{4.0, -3.0})
	test.T(t, p.Rot90CCW(), Point{-4.0, 3.0})
	test.Float(t, p.Dot(Point{1.0, 0.0}), 3.0)
	test.Float(t, p.PerpDot(Point{1.0, 0.0}), -4.0)
	test.Float(t, p.Length(), 5.0)
	test.Float(t, Point{1.0, 1.0}.Angle(), math.Pi/4.0)
	test.T(t, p.Norm(10.0), Point{6.0, 8.0})
	test.T(t, Point{}.Norm(10.0), Point{})
	test.T(t, Point{0.0, 0.0}.Interpolate(Point{10.0, 20.0}, 0.25), Point{2.5, 5.0})
}

func TestInterval(t *testing.T) {
	test.That(t, Interval(0.5, 0.0, 1.0))
	test.That(t, Interval(0.0, 0.0, 1.0))
	test.That(t, Interval(1.0, 0.0, 1.0))
	test.That(t, Interval(-0.5*Epsilon, 0.0, 1.0))
	test.That(t, !Interval(-2.0*Epsilon, 0.0, 1.0))
	test.That(t, !Interval(1.1, 0.0, 1.0))
}

func TestAngleNorm(t *testing.T) {
	test.Float(t, angleNorm(0.0), 0.0)
	test.Float(t, angleNorm(-0.5*math.Pi), 1.5*math.Pi)
	test.Float(t, angleNorm(2.5*math.Pi), 0.5*math.Pi)
	test.That(t, angleEqual(0.0, 2.0*math.Pi))
	test.That(t, !angleEqual(0.0, 0.1))
}

func TestRect(t *testing.T) {
	r := Rect{0.0, 0.0, 10.0, 10.0}
	test.T(t, r.Add(Rect{5.0, 5.0, 10.0, 10.0}), Rect{0.0, 0.0, 15.0, 15.0})
	test.That(t, r.Overlaps(Rect{9.0, 9.0, 5.0, 5.0}))
	test.That(t, r.Overlaps(Rect{10.0, 0.0, 5.0, 5.0})) // touching
	test.That(t, !r.Overlaps(Rect{11.0, 0.0, 5.0, 5.0}))
	test.T(t, pointsRect(Point{1.0, 8.0}, Point{5.0, 2.0}, Point{3.0, 4.0}), Rect{1.0, 2.0, 4.0, 6.0})
}

func TestSolveQuadraticFormula(t *testing.T) {
	var tests = []struct {
		a, b, c float64
		x1, x2  float64
	}{
		{0.0, 0.0, 0.0, 0.0, math.NaN()},
		{0.0, 0.0, 1.0, math.NaN(), math.NaN()},
		{0.0, 2.0, -4.0, 2.0, math.NaN()},
		{1.0, 0.0, 0.0, 0.0, math.NaN()},
		{1.0, 0.0, 1.0, math.NaN(), math.NaN()},                    // discriminant negative
		{1.0, -2.0, 1.0, 1.0, math.NaN()},                          // discriminant zero
		{1.0, 0.0, -1.0, -1.0, 1.0},                                // two roots
		{1.0, -3.0, 2.0, 1.0, 2.0},                                 // two roots
		{0.001, -2.0, 1.0, 0.5001250625390898, 1999.4998749374609}, // catastrophic cancellation
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			x1, x2 := solveQuadraticFormula(tt.a, tt.b, tt.c)
			test.Float(t, x1, tt.x1)
			test.Float(t, x2, tt.x2)
		})
	}
}

func TestSolveCubicFormula(t *testing.T) {
	var tests = []struct {
		a, b, c, d float64
		x1, x2, x3 float64
	}{
		{0.0, 1.0, 0.0, -1.0, -1.0, 1.0, math.NaN()}, // quadratic
		{1.0, 0.0, 0.0, 0.0, 0.0, math.NaN(), math.NaN()},
		{1.0, 0.0, 0.0, -8.0, 2.0, math.NaN(), math.NaN()},
		{1.0, 0.0, -1.0, 0.0, -1.0, 0.0, 1.0},
		{1.0, -3.0, 3.0, -1.0, 1.0, math.NaN(), math.NaN()}, // triple root
		{1.0, -5.0, 8.0, -4.0, 1.0, 2.0, math.NaN()},        // double root at 2
		{1.0, -6.0, 11.0, -6.0, 1.0, 2.0, 3.0},              // three roots
		{1.0, 0.0, 1.0, -1.0, 0.6823278038280193, math.NaN(), math.NaN()},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			x1, x2, x3 := solveCubicFormula(tt.a, tt.b, tt.c, tt.d)
			test.Float(t, x1, tt.x1)
			test.Float(t, x2, tt.x2)
			test.Float(t, x3, tt.x3)
		})
	}
}
