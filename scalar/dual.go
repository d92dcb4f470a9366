package scalar

import "math"

// Dual is a forward-mode derivative-propagating scalar. It carries a value and
// a dense vector of partial derivatives with respect to a caller-chosen set of
// independent variables. A Dual with a nil partials slice is a constant and
// combines with partials vectors of any width.
type Dual struct {
	Val float64
	Der []float64
}

// NewDual returns a Dual with the given value and partial derivatives. The
// partials slice is not copied.
func NewDual(val float64, der []float64) Dual {
	return Dual{Val: val, Der: der}
}

// NewVariable returns a Dual representing the i-th of n independent variables,
// i.e. with value val and a unit partial in slot i.
func NewVariable(val float64, i, n int) Dual {
	der := make([]float64, n)
	der[i] = 1
	return Dual{Val: val, Der: der}
}

func combine(a, b []float64, f func(da, db float64) float64) []float64 {
	if a == nil && b == nil {
		return nil
	}
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]float64, n)
	for i := range out {
		var da, db float64
		if i < len(a) {
			da = a[i]
		}
		if i < len(b) {
			db = b[i]
		}
		out[i] = f(da, db)
	}
	return out
}

func scale(a []float64, s float64) []float64 {
	if a == nil {
		return nil
	}
	out := make([]float64, len(a))
	for i, d := range a {
		out[i] = s * d
	}
	return out
}

// Add returns d + o.
func (d Dual) Add(o Dual) Dual {
	return Dual{d.Val + o.Val, combine(d.Der, o.Der, func(da, db float64) float64 { return da + db })}
}

// Sub returns d - o.
func (d Dual) Sub(o Dual) Dual {
	return Dual{d.Val - o.Val, combine(d.Der, o.Der, func(da, db float64) float64 { return da - db })}
}

// Mul returns d * o, propagating the product rule.
func (d Dual) Mul(o Dual) Dual {
	return Dual{d.Val * o.Val, combine(d.Der, o.Der, func(da, db float64) float64 {
		return da*o.Val + d.Val*db
	})}
}

// Div returns d / o, propagating the quotient rule.
func (d Dual) Div(o Dual) Dual {
	inv := 1 / o.Val
	return Dual{d.Val * inv, combine(d.Der, o.Der, func(da, db float64) float64 {
		return (da - d.Val*inv*db) * inv
	})}
}

// Neg returns -d.
func (d Dual) Neg() Dual {
	return Dual{-d.Val, scale(d.Der, -1)}
}

// Sin returns sin(d).
func (d Dual) Sin() Dual {
	return Dual{math.Sin(d.Val), scale(d.Der, math.Cos(d.Val))}
}

// Cos returns cos(d).
func (d Dual) Cos() Dual {
	return Dual{math.Cos(d.Val), scale(d.Der, -math.Sin(d.Val))}
}

// Sqrt returns the square root of d.
func (d Dual) Sqrt() Dual {
	s := math.Sqrt(d.Val)
	return Dual{s, scale(d.Der, 0.5/s)}
}

// FromFloat returns f as a constant Dual with no partials.
func (d Dual) FromFloat(f float64) Dual { return Dual{Val: f} }

// Float returns the value part of d.
func (d Dual) Float() float64 { return d.Val }

// Derivative returns the partial derivative in slot i, zero if the partials
// vector is narrower than i+1.
func (d Dual) Derivative(i int) float64 {
	if i < len(d.Der) {
		return d.Der[i]
	}
	return 0
}
