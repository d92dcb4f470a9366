// Package spatialmath defines the spatial mathematical operations used by the
// multibody kinematics and dynamics algorithms: three-dimensional vectors,
// rotations and rigid poses, six-dimensional spatial velocities, accelerations
// and forces, and spatial inertia, all generic over the numeric scalar.
package spatialmath

import (
	"github.com/mechtree/multibody/scalar"
)

// Vec3 is a three-dimensional vector over the scalar T. The zero value is the
// zero vector.
type Vec3[T scalar.Number[T]] struct {
	X, Y, Z T
}

// NewVec3 constructs a vector from float64 components.
func NewVec3[T scalar.Number[T]](x, y, z float64) Vec3[T] {
	return Vec3[T]{scalar.Constant[T](x), scalar.Constant[T](y), scalar.Constant[T](z)}
}

// Add returns v + o.
func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X.Add(o.X), v.Y.Add(o.Y), v.Z.Add(o.Z)}
}

// Sub returns v - o.
func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X.Sub(o.X), v.Y.Sub(o.Y), v.Z.Sub(o.Z)}
}

// Scale returns v scaled by s.
func (v Vec3[T]) Scale(s T) Vec3[T] {
	return Vec3[T]{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s)}
}

// Neg returns -v.
func (v Vec3[T]) Neg() Vec3[T] {
	return Vec3[T]{v.X.Neg(), v.Y.Neg(), v.Z.Neg()}
}

// Dot returns the dot product of v and o.
func (v Vec3[T]) Dot(o Vec3[T]) T {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)).Add(v.Z.Mul(o.Z))
}

// Cross returns the cross product v × o.
func (v Vec3[T]) Cross(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		v.Y.Mul(o.Z).Sub(v.Z.Mul(o.Y)),
		v.Z.Mul(o.X).Sub(v.X.Mul(o.Z)),
		v.X.Mul(o.Y).Sub(v.Y.Mul(o.X)),
	}
}

// Norm returns the Euclidean length of v.
func (v Vec3[T]) Norm() T {
	return v.Dot(v).Sqrt()
}

// Normalize returns v scaled to unit length.
func (v Vec3[T]) Normalize() Vec3[T] {
	n := v.Norm()
	return Vec3[T]{v.X.Div(n), v.Y.Div(n), v.Z.Div(n)}
}
