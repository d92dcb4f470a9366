package scalar

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestDualArithmetic(t *testing.T) {
	x := NewVariable(3, 0, 2)
	y := NewVariable(4, 1, 2)

	sum := x.Add(y)
	test.That(t, sum.Val, test.ShouldEqual, 7)
	test.That(t, sum.Derivative(0), test.ShouldEqual, 1)
	test.That(t, sum.Derivative(1), test.ShouldEqual, 1)

	prod := x.Mul(y)
	test.That(t, prod.Val, test.ShouldEqual, 12)
	test.That(t, prod.Derivative(0), test.ShouldEqual, 4)
	test.That(t, prod.Derivative(1), test.ShouldEqual, 3)

	quot := x.Div(y)
	test.That(t, quot.Val, test.ShouldAlmostEqual, 0.75)
	test.That(t, quot.Derivative(0), test.ShouldAlmostEqual, 0.25)
	test.That(t, quot.Derivative(1), test.ShouldAlmostEqual, -3.0/16.0)
}

func TestDualConstants(t *testing.T) {
	// Constants carry no partials and must combine with any width.
	x := NewVariable(2, 0, 1)
	c := Constant[Dual](5)
	test.That(t, c.Der, test.ShouldBeNil)

	y := x.Mul(c)
	test.That(t, y.Val, test.ShouldEqual, 10)
	test.That(t, y.Derivative(0), test.ShouldEqual, 5)

	z := c.Sub(x)
	test.That(t, z.Val, test.ShouldEqual, 3)
	test.That(t, z.Derivative(0), test.ShouldEqual, -1)
}

func TestDualTrig(t *testing.T) {
	theta := NewVariable(math.Pi/3, 0, 1)

	s := theta.Sin()
	test.That(t, s.Val, test.ShouldAlmostEqual, math.Sin(math.Pi/3))
	test.That(t, s.Derivative(0), test.ShouldAlmostEqual, math.Cos(math.Pi/3))

	c := theta.Cos()
	test.That(t, c.Val, test.ShouldAlmostEqual, math.Cos(math.Pi/3))
	test.That(t, c.Derivative(0), test.ShouldAlmostEqual, -math.Sin(math.Pi/3))

	// sin^2 + cos^2 == 1 with zero derivative.
	one := s.Mul(s).Add(c.Mul(c))
	test.That(t, one.Val, test.ShouldAlmostEqual, 1)
	test.That(t, one.Derivative(0), test.ShouldAlmostEqual, 0)
}

func TestDualSqrt(t *testing.T) {
	x := NewVariable(9, 0, 1)
	r := x.Sqrt()
	test.That(t, r.Val, test.ShouldAlmostEqual, 3)
	test.That(t, r.Derivative(0), test.ShouldAlmostEqual, 1.0/6.0)
}

func TestRealSatisfiesNumber(t *testing.T) {
	x := Constant[Real](2)
	y := x.Mul(x).Add(x.Sin())
	test.That(t, y.Float(), test.ShouldAlmostEqual, 4+math.Sin(2))
}
