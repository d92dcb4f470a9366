package spatialmath

import (
	"github.com/mechtree/multibody/scalar"
)

// RotationalInertia is a symmetric 3x3 inertia matrix about some point,
// expressed in some frame.
type RotationalInertia[T scalar.Number[T]] struct {
	m mat3[T]
}

// NewRotationalInertia constructs a rotational inertia from its moments
// (Ixx, Iyy, Izz) and products (Ixy, Ixz, Iyz) of inertia.
func NewRotationalInertia[T scalar.Number[T]](ixx, iyy, izz, ixy, ixz, iyz T) RotationalInertia[T] {
	return RotationalInertia[T]{mat3[T]{
		{ixx, ixy, ixz},
		{ixy, iyy, iyz},
		{ixz, iyz, izz},
	}}
}

// Apply returns I·w.
func (ri RotationalInertia[T]) Apply(w Vec3[T]) Vec3[T] {
	return ri.m.mulVec(w)
}

// UnitInertia is a rotational inertia divided by mass, so that a body's
// inertia scales linearly with its mass.
type UnitInertia[T scalar.Number[T]] struct {
	m mat3[T]
}

// NewUnitInertiaStraightLine returns the unit inertia of a straight thin rod
// along the given unit axis, with moment k about any axis perpendicular to it:
// G = k (I − axis axisᵀ).
func NewUnitInertiaStraightLine[T scalar.Number[T]](k T, axis Vec3[T]) UnitInertia[T] {
	g := identityMat3[T]().sub(outer(axis, axis)).scale(k)
	return UnitInertia[T]{g}
}

// NewUnitInertiaSolidSphere returns the unit inertia of a solid sphere of the
// given radius about its center.
func NewUnitInertiaSolidSphere[T scalar.Number[T]](radius T) UnitInertia[T] {
	k := scalar.Constant[T](0.4).Mul(radius).Mul(radius)
	return UnitInertia[T]{identityMat3[T]().scale(k)}
}

// ConvertUnitInertia maps a unit inertia onto a different scalar type,
// element by element.
func ConvertUnitInertia[From scalar.Number[From], To scalar.Number[To]](
	g UnitInertia[From], conv func(From) To,
) UnitInertia[To] {
	var out mat3[To]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = conv(g.m[i][j])
		}
	}
	return UnitInertia[To]{out}
}

// SpatialInertia describes the mass distribution of a body: its mass m, the
// position c of its center of mass measured from an about-point P, and its
// unit inertia G about P, all expressed in a frame E.
type SpatialInertia[T scalar.Number[T]] struct {
	mass T
	com  Vec3[T]
	g    UnitInertia[T]
}

// NewSpatialInertia constructs a spatial inertia about a point P from the
// body's mass, the center of mass offset from P, and the unit inertia about P.
func NewSpatialInertia[T scalar.Number[T]](mass T, com Vec3[T], g UnitInertia[T]) SpatialInertia[T] {
	return SpatialInertia[T]{mass, com, g}
}

// NewZeroSpatialInertia returns a massless spatial inertia, appropriate for
// the world body.
func NewZeroSpatialInertia[T scalar.Number[T]]() SpatialInertia[T] {
	var zero T
	return SpatialInertia[T]{mass: zero, com: Vec3[T]{}, g: UnitInertia[T]{}}
}

// Mass returns the body's mass.
func (si SpatialInertia[T]) Mass() T { return si.mass }

// CenterOfMass returns the center of mass offset from the about-point.
func (si SpatialInertia[T]) CenterOfMass() Vec3[T] { return si.com }

// UnitInertia returns the unit inertia about the about-point.
func (si SpatialInertia[T]) UnitInertia() UnitInertia[T] { return si.g }

// RotationalInertia returns the full (mass-scaled) rotational inertia about
// the about-point.
func (si SpatialInertia[T]) RotationalInertia() RotationalInertia[T] {
	return RotationalInertia[T]{si.g.m.scale(si.mass)}
}

// pointMassInertia returns m (dᵀd I − d dᵀ), the inertia of a point mass m at
// offset d, used by the parallel axis theorem.
func pointMassInertia[T scalar.Number[T]](m T, d Vec3[T]) mat3[T] {
	dd := d.Dot(d)
	return identityMat3[T]().scale(dd).sub(outer(d, d)).scale(m)
}

// Shift returns this spatial inertia taken about a new point Q, where p is the
// position of Q from the current about-point P, expressed in the same frame.
func (si SpatialInertia[T]) Shift(p Vec3[T]) SpatialInertia[T] {
	// Parallel axis theorem via the center of mass:
	//   I_cm = I_P − m (cᵀc I − c cᵀ),  I_Q = I_cm + m (dᵀd I − d dᵀ)
	// with d = c − p the new center of mass offset.
	iP := si.g.m.scale(si.mass)
	one := scalar.Constant[T](1)
	iCM := iP.sub(pointMassInertia(si.mass, si.com))
	d := si.com.Sub(p)
	iQ := iCM.add(pointMassInertia(si.mass, d))
	return SpatialInertia[T]{
		mass: si.mass,
		com:  d,
		g:    UnitInertia[T]{iQ.scale(one.Div(si.mass))},
	}
}

// ReExpress returns this spatial inertia re-expressed in another frame via R.
func (si SpatialInertia[T]) ReExpress(r Rotation[T]) SpatialInertia[T] {
	return SpatialInertia[T]{
		mass: si.mass,
		com:  r.Apply(si.com),
		g:    UnitInertia[T]{r.m.mul(si.g.m).mul(r.m.transpose())},
	}
}

// TimesAcceleration contracts this inertia (about P, in E) with a spatial
// acceleration of P (in E), yielding the acceleration-proportional part of the
// spatial force about P:
//
//	τ = I_P·α + c × (m a),  f = m a + α × (m c)
func (si SpatialInertia[T]) TimesAcceleration(a SpatialAcceleration[T]) SpatialForce[T] {
	alpha := a.Rotational()
	acc := a.Translational()
	iP := si.g.m.scale(si.mass)
	mc := si.com.Scale(si.mass)
	return SpatialForce[T]{
		tau: iP.mulVec(alpha).Add(mc.Cross(acc)),
		f:   acc.Scale(si.mass).Add(alpha.Cross(mc)),
	}
}

// BiasForce returns the velocity-dependent gyroscopic and centrifugal spatial
// force about P for a body rotating with angular velocity w:
//
//	τ = ω × (I_P·ω),  f = m ω × (ω × c)
func (si SpatialInertia[T]) BiasForce(w Vec3[T]) SpatialForce[T] {
	iP := si.g.m.scale(si.mass)
	return SpatialForce[T]{
		tau: w.Cross(iP.mulVec(w)),
		f:   w.Cross(w.Cross(si.com)).Scale(si.mass),
	}
}
