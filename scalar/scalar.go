// Package scalar defines the numeric capability every kinematics and dynamics
// algorithm in this module is generic over, so the identical recursion runs
// unchanged over plain reals or over derivative-propagating numbers.
package scalar

// Number is the set of operations a scalar type must support. The zero value
// of an implementing type must be its additive zero.
type Number[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T

	Sin() T
	Cos() T
	Sqrt() T

	// FromFloat builds a constant of the receiver's type. The receiver is
	// used only to select the type; its value is ignored.
	FromFloat(float64) T

	// Float returns the value part, discarding any derivative information.
	Float() float64
}

// Constant builds a constant scalar of type T from a float64.
func Constant[T Number[T]](f float64) T {
	var zero T
	return zero.FromFloat(f)
}
