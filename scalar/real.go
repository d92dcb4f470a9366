package scalar

import "math"

// Real is the plain float64 instantiation of Number.
type Real float64

// Add returns r + o.
func (r Real) Add(o Real) Real { return r + o }

// Sub returns r - o.
func (r Real) Sub(o Real) Real { return r - o }

// Mul returns r * o.
func (r Real) Mul(o Real) Real { return r * o }

// Div returns r / o.
func (r Real) Div(o Real) Real { return r / o }

// Neg returns -r.
func (r Real) Neg() Real { return -r }

// Sin returns sin(r).
func (r Real) Sin() Real { return Real(math.Sin(float64(r))) }

// Cos returns cos(r).
func (r Real) Cos() Real { return Real(math.Cos(float64(r))) }

// Sqrt returns the square root of r.
func (r Real) Sqrt() Real { return Real(math.Sqrt(float64(r))) }

// FromFloat returns f as a Real.
func (r Real) FromFloat(f float64) Real { return Real(f) }

// Float returns r as a float64.
func (r Real) Float() float64 { return float64(r) }
