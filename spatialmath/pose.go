package spatialmath

import (
	"github.com/mechtree/multibody/scalar"
)

// Pose is a rigid transform X_AB: the pose of a frame B measured and expressed
// in a frame A. Use NewIdentityPose or NewPose; the zero value is not a valid
// pose.
type Pose[T scalar.Number[T]] struct {
	r Rotation[T]
	p Vec3[T]
}

// NewPose constructs a pose from a rotation and a translation.
func NewPose[T scalar.Number[T]](r Rotation[T], p Vec3[T]) Pose[T] {
	return Pose[T]{r, p}
}

// NewIdentityPose returns the identity pose.
func NewIdentityPose[T scalar.Number[T]]() Pose[T] {
	return Pose[T]{NewIdentityRotation[T](), Vec3[T]{}}
}

// NewPoseFromPoint returns a pure translation pose.
func NewPoseFromPoint[T scalar.Number[T]](p Vec3[T]) Pose[T] {
	return Pose[T]{NewIdentityRotation[T](), p}
}

// NewPoseFromAxisAngle returns a pure rotation pose about the given unit axis.
func NewPoseFromAxisAngle[T scalar.Number[T]](axis Vec3[T], theta T) Pose[T] {
	return Pose[T]{NewRotationFromAxisAngle(axis, theta), Vec3[T]{}}
}

// Rotation returns the rotation part R_AB.
func (x Pose[T]) Rotation() Rotation[T] {
	return x.r
}

// Translation returns the translation part p_AoBo_A.
func (x Pose[T]) Translation() Vec3[T] {
	return x.p
}

// Compose chains this pose with another: X_AC = X_AB.Compose(X_BC).
func (x Pose[T]) Compose(o Pose[T]) Pose[T] {
	return Pose[T]{
		r: x.r.Compose(o.r),
		p: x.p.Add(x.r.Apply(o.p)),
	}
}

// Inverse returns X_BA given X_AB.
func (x Pose[T]) Inverse() Pose[T] {
	rInv := x.r.Inverse()
	return Pose[T]{rInv, rInv.Apply(x.p).Neg()}
}

// TransformPoint maps a point expressed in frame B to frame A.
func (x Pose[T]) TransformPoint(p Vec3[T]) Vec3[T] {
	return x.p.Add(x.r.Apply(p))
}
