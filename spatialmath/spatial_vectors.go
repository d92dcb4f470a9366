package spatialmath

import (
	"github.com/mechtree/multibody/scalar"
)

// SpatialVelocity is the six-dimensional velocity of a frame: an angular
// velocity ω paired with the linear velocity v of the frame's origin, both
// expressed in the same measurement frame.
type SpatialVelocity[T scalar.Number[T]] struct {
	w Vec3[T]
	v Vec3[T]
}

// NewSpatialVelocity constructs a spatial velocity from its rotational and
// translational components.
func NewSpatialVelocity[T scalar.Number[T]](w, v Vec3[T]) SpatialVelocity[T] {
	return SpatialVelocity[T]{w, v}
}

// Rotational returns the angular velocity component.
func (s SpatialVelocity[T]) Rotational() Vec3[T] { return s.w }

// Translational returns the linear velocity component.
func (s SpatialVelocity[T]) Translational() Vec3[T] { return s.v }

// Add returns the component-wise sum.
func (s SpatialVelocity[T]) Add(o SpatialVelocity[T]) SpatialVelocity[T] {
	return SpatialVelocity[T]{s.w.Add(o.w), s.v.Add(o.v)}
}

// Shift rigidly transports this velocity to a new point offset by p from the
// current origin (expressed in the same frame): (ω, v + ω×p).
func (s SpatialVelocity[T]) Shift(p Vec3[T]) SpatialVelocity[T] {
	return SpatialVelocity[T]{s.w, s.v.Add(s.w.Cross(p))}
}

// ReExpress re-expresses this velocity in another frame via R.
func (s SpatialVelocity[T]) ReExpress(r Rotation[T]) SpatialVelocity[T] {
	return SpatialVelocity[T]{r.Apply(s.w), r.Apply(s.v)}
}

// SpatialAcceleration is the six-dimensional acceleration of a frame: the
// angular acceleration α paired with the linear acceleration a of the material
// point currently at the frame's origin.
type SpatialAcceleration[T scalar.Number[T]] struct {
	alpha Vec3[T]
	a     Vec3[T]
}

// NewSpatialAcceleration constructs a spatial acceleration from its rotational
// and translational components.
func NewSpatialAcceleration[T scalar.Number[T]](alpha, a Vec3[T]) SpatialAcceleration[T] {
	return SpatialAcceleration[T]{alpha, a}
}

// Rotational returns the angular acceleration component.
func (s SpatialAcceleration[T]) Rotational() Vec3[T] { return s.alpha }

// Translational returns the linear acceleration component.
func (s SpatialAcceleration[T]) Translational() Vec3[T] { return s.a }

// Add returns the component-wise sum.
func (s SpatialAcceleration[T]) Add(o SpatialAcceleration[T]) SpatialAcceleration[T] {
	return SpatialAcceleration[T]{s.alpha.Add(o.alpha), s.a.Add(o.a)}
}

// Shift rigidly transports this acceleration to a new point offset by p from
// the current origin. The angular velocity w of the rigid body is needed for
// the centrifugal contribution: (α, a + α×p + ω×(ω×p)).
func (s SpatialAcceleration[T]) Shift(p, w Vec3[T]) SpatialAcceleration[T] {
	return SpatialAcceleration[T]{
		s.alpha,
		s.a.Add(s.alpha.Cross(p)).Add(w.Cross(w.Cross(p))),
	}
}

// ReExpress re-expresses this acceleration in another frame via R.
func (s SpatialAcceleration[T]) ReExpress(r Rotation[T]) SpatialAcceleration[T] {
	return SpatialAcceleration[T]{r.Apply(s.alpha), r.Apply(s.a)}
}

// SpatialForce is a six-dimensional force: a torque τ about an application
// point paired with a force f through it, both expressed in the same frame.
type SpatialForce[T scalar.Number[T]] struct {
	tau Vec3[T]
	f   Vec3[T]
}

// NewSpatialForce constructs a spatial force from its rotational and
// translational components.
func NewSpatialForce[T scalar.Number[T]](tau, f Vec3[T]) SpatialForce[T] {
	return SpatialForce[T]{tau, f}
}

// Rotational returns the torque component.
func (s SpatialForce[T]) Rotational() Vec3[T] { return s.tau }

// Translational returns the force component.
func (s SpatialForce[T]) Translational() Vec3[T] { return s.f }

// Add returns the component-wise sum.
func (s SpatialForce[T]) Add(o SpatialForce[T]) SpatialForce[T] {
	return SpatialForce[T]{s.tau.Add(o.tau), s.f.Add(o.f)}
}

// Sub returns the component-wise difference.
func (s SpatialForce[T]) Sub(o SpatialForce[T]) SpatialForce[T] {
	return SpatialForce[T]{s.tau.Sub(o.tau), s.f.Sub(o.f)}
}

// Neg returns the negated force.
func (s SpatialForce[T]) Neg() SpatialForce[T] {
	return SpatialForce[T]{s.tau.Neg(), s.f.Neg()}
}

// Shift moves the application point by p (expressed in the same frame):
// (τ − p×f, f).
func (s SpatialForce[T]) Shift(p Vec3[T]) SpatialForce[T] {
	return SpatialForce[T]{s.tau.Sub(p.Cross(s.f)), s.f}
}

// ReExpress re-expresses this force in another frame via R.
func (s SpatialForce[T]) ReExpress(r Rotation[T]) SpatialForce[T] {
	return SpatialForce[T]{r.Apply(s.tau), r.Apply(s.f)}
}

// Dot contracts a spatial velocity with this force, yielding the power-pairing
// scalar ω·τ + v·f.
func (s SpatialForce[T]) Dot(v SpatialVelocity[T]) T {
	return s.tau.Dot(v.Rotational()).Add(s.f.Dot(v.Translational()))
}
