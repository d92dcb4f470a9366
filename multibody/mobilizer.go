package multibody

import (
	"github.com/mechtree/multibody/scalar"
	"github.com/mechtree/multibody/spatialmath"
)

// Mobilizer connects exactly one inboard frame F to exactly one outboard
// frame M and maps its generalized coordinates to the relative pose, velocity
// and acceleration of M in F. The set of mobilizer kinds is closed: revolute,
// prismatic and weld. A new kind must provide the position-to-transform and
// velocity-to-spatial-velocity mappings plus their time derivatives.
type Mobilizer[T scalar.Number[T]] interface {
	// Name returns the mobilizer's name.
	Name() string
	// Index returns the mobilizer's stable index in its tree.
	Index() MobilizerIndex
	// InboardFrame returns the frame on the parent body.
	InboardFrame() *Frame[T]
	// OutboardFrame returns the frame on the child body.
	OutboardFrame() *Frame[T]
	// NumPositions returns the number of generalized positions.
	NumPositions() int
	// NumVelocities returns the number of generalized velocities.
	NumVelocities() int
	// SetZeroConfiguration resets this mobilizer's coordinates in the context
	// to the identity relative pose and zero rate.
	SetZeroConfiguration(ctx *Context[T]) error

	// calcJointTransform returns X_FM(q), a function of this mobilizer's own
	// generalized positions only.
	calcJointTransform(q []T) spatialmath.Pose[T]
	// calcJointVelocity returns V_FM(q, v), the spatial velocity of M in F at
	// M's origin, expressed in F.
	calcJointVelocity(q, v []T) spatialmath.SpatialVelocity[T]
	// calcJointAcceleration returns A_FM(q, v, vdot), expressed in F. The
	// velocity-dependent part is the time derivative of the velocity mapping
	// at fixed v.
	calcJointAcceleration(q, v, vdot []T) spatialmath.SpatialAcceleration[T]
	// projectSpatialForce writes Hᵀ·F into tau, where F is the spatial force
	// transmitted through this mobilizer about M's origin, expressed in F.
	projectSpatialForce(q []T, f spatialmath.SpatialForce[T], tau []T)
}

// mobilizerBase carries what every mobilizer kind shares.
type mobilizerBase[T scalar.Number[T]] struct {
	name     string
	index    MobilizerIndex
	inboard  FrameIndex
	outboard FrameIndex
	tree     *MultibodyTree[T]
}

func (m *mobilizerBase[T]) Name() string { return m.name }

func (m *mobilizerBase[T]) Index() MobilizerIndex { return m.index }

func (m *mobilizerBase[T]) InboardFrame() *Frame[T] { return m.tree.frames[m.inboard] }

func (m *mobilizerBase[T]) OutboardFrame() *Frame[T] { return m.tree.frames[m.outboard] }

// segments returns this mobilizer's views into the context's q and v vectors.
func (m *mobilizerBase[T]) segments(ctx *Context[T]) ([]T, []T, error) {
	q, err := ctx.MobilizerPositions(m.index)
	if err != nil {
		return nil, nil, err
	}
	v, err := ctx.MobilizerVelocities(m.index)
	if err != nil {
		return nil, nil, err
	}
	return q, v, nil
}

func (m *mobilizerBase[T]) SetZeroConfiguration(ctx *Context[T]) error {
	q, v, err := m.segments(ctx)
	if err != nil {
		return err
	}
	var zero T
	for i := range q {
		q[i] = zero
	}
	for i := range v {
		v[i] = zero
	}
	return nil
}

// RevoluteMobilizer grants one rotational degree of freedom about an axis
// fixed in its inboard frame, through the coincident origins of F and M.
type RevoluteMobilizer[T scalar.Number[T]] struct {
	mobilizerBase[T]
	axis spatialmath.Vec3[T]
}

// Axis returns the revolute axis, a unit vector fixed in the inboard frame.
func (m *RevoluteMobilizer[T]) Axis() spatialmath.Vec3[T] { return m.axis }

// NumPositions returns 1.
func (m *RevoluteMobilizer[T]) NumPositions() int { return 1 }

// NumVelocities returns 1.
func (m *RevoluteMobilizer[T]) NumVelocities() int { return 1 }

// SetAngle writes the joint angle in radians through the context.
func (m *RevoluteMobilizer[T]) SetAngle(ctx *Context[T], angle T) error {
	q, err := ctx.MobilizerPositions(m.index)
	if err != nil {
		return err
	}
	q[0] = angle
	return nil
}

// Angle reads the joint angle in radians from the context.
func (m *RevoluteMobilizer[T]) Angle(ctx *Context[T]) (T, error) {
	q, err := ctx.MobilizerPositions(m.index)
	if err != nil {
		var zero T
		return zero, err
	}
	return q[0], nil
}

// SetAngularRate writes the joint rate in radians per second through the
// context.
func (m *RevoluteMobilizer[T]) SetAngularRate(ctx *Context[T], rate T) error {
	v, err := ctx.MobilizerVelocities(m.index)
	if err != nil {
		return err
	}
	v[0] = rate
	return nil
}

// AngularRate reads the joint rate from the context.
func (m *RevoluteMobilizer[T]) AngularRate(ctx *Context[T]) (T, error) {
	v, err := ctx.MobilizerVelocities(m.index)
	if err != nil {
		var zero T
		return zero, err
	}
	return v[0], nil
}

func (m *RevoluteMobilizer[T]) calcJointTransform(q []T) spatialmath.Pose[T] {
	return spatialmath.NewPoseFromAxisAngle(m.axis, q[0])
}

func (m *RevoluteMobilizer[T]) calcJointVelocity(q, v []T) spatialmath.SpatialVelocity[T] {
	return spatialmath.NewSpatialVelocity(m.axis.Scale(v[0]), spatialmath.Vec3[T]{})
}

func (m *RevoluteMobilizer[T]) calcJointAcceleration(q, v, vdot []T) spatialmath.SpatialAcceleration[T] {
	// The axis is fixed in F, so the velocity mapping has no explicit time
	// dependence and the bias is zero at M's origin.
	return spatialmath.NewSpatialAcceleration(m.axis.Scale(vdot[0]), spatialmath.Vec3[T]{})
}

func (m *RevoluteMobilizer[T]) projectSpatialForce(q []T, f spatialmath.SpatialForce[T], tau []T) {
	tau[0] = m.axis.Dot(f.Rotational())
}

// PrismaticMobilizer grants one translational degree of freedom along an axis
// fixed in its inboard frame.
type PrismaticMobilizer[T scalar.Number[T]] struct {
	mobilizerBase[T]
	axis spatialmath.Vec3[T]
}

// Axis returns the sliding axis, a unit vector fixed in the inboard frame.
func (m *PrismaticMobilizer[T]) Axis() spatialmath.Vec3[T] { return m.axis }

// NumPositions returns 1.
func (m *PrismaticMobilizer[T]) NumPositions() int { return 1 }

// NumVelocities returns 1.
func (m *PrismaticMobilizer[T]) NumVelocities() int { return 1 }

// SetTranslation writes the joint displacement through the context.
func (m *PrismaticMobilizer[T]) SetTranslation(ctx *Context[T], d T) error {
	q, err := ctx.MobilizerPositions(m.index)
	if err != nil {
		return err
	}
	q[0] = d
	return nil
}

// Translation reads the joint displacement from the context.
func (m *PrismaticMobilizer[T]) Translation(ctx *Context[T]) (T, error) {
	q, err := ctx.MobilizerPositions(m.index)
	if err != nil {
		var zero T
		return zero, err
	}
	return q[0], nil
}

// SetTranslationRate writes the joint rate through the context.
func (m *PrismaticMobilizer[T]) SetTranslationRate(ctx *Context[T], rate T) error {
	v, err := ctx.MobilizerVelocities(m.index)
	if err != nil {
		return err
	}
	v[0] = rate
	return nil
}

func (m *PrismaticMobilizer[T]) calcJointTransform(q []T) spatialmath.Pose[T] {
	return spatialmath.NewPoseFromPoint(m.axis.Scale(q[0]))
}

func (m *PrismaticMobilizer[T]) calcJointVelocity(q, v []T) spatialmath.SpatialVelocity[T] {
	return spatialmath.NewSpatialVelocity(spatialmath.Vec3[T]{}, m.axis.Scale(v[0]))
}

func (m *PrismaticMobilizer[T]) calcJointAcceleration(q, v, vdot []T) spatialmath.SpatialAcceleration[T] {
	return spatialmath.NewSpatialAcceleration(spatialmath.Vec3[T]{}, m.axis.Scale(vdot[0]))
}

func (m *PrismaticMobilizer[T]) projectSpatialForce(q []T, f spatialmath.SpatialForce[T], tau []T) {
	tau[0] = m.axis.Dot(f.Translational())
}

// WeldMobilizer rigidly fixes its outboard frame to its inboard frame at a
// constant relative pose. It has no generalized coordinates.
type WeldMobilizer[T scalar.Number[T]] struct {
	mobilizerBase[T]
	xFM spatialmath.Pose[T]
}

// PoseInInboard returns the constant pose X_FM of the weld.
func (m *WeldMobilizer[T]) PoseInInboard() spatialmath.Pose[T] { return m.xFM }

// NumPositions returns 0.
func (m *WeldMobilizer[T]) NumPositions() int { return 0 }

// NumVelocities returns 0.
func (m *WeldMobilizer[T]) NumVelocities() int { return 0 }

func (m *WeldMobilizer[T]) calcJointTransform(q []T) spatialmath.Pose[T] {
	return m.xFM
}

func (m *WeldMobilizer[T]) calcJointVelocity(q, v []T) spatialmath.SpatialVelocity[T] {
	return spatialmath.SpatialVelocity[T]{}
}

func (m *WeldMobilizer[T]) calcJointAcceleration(q, v, vdot []T) spatialmath.SpatialAcceleration[T] {
	return spatialmath.SpatialAcceleration[T]{}
}

func (m *WeldMobilizer[T]) projectSpatialForce(q []T, f spatialmath.SpatialForce[T], tau []T) {
}
