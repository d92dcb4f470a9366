package multibody

import (
	"github.com/mechtree/multibody/scalar"
	"github.com/mechtree/multibody/spatialmath"
)

// PositionKinematicsCache holds the per-node results of a position kinematics
// pass: each node's joint-local transform X_FM and its world pose X_WB,
// indexed by node index. Entries are transient and recomputed on every pass.
type PositionKinematicsCache[T scalar.Number[T]] struct {
	xFM []spatialmath.Pose[T]
	xWB []spatialmath.Pose[T]
}

// NewPositionKinematicsCache allocates a cache sized from the topology, with
// every entry the identity pose. The world entry stays identity forever.
func NewPositionKinematicsCache[T scalar.Number[T]](topo *Topology) *PositionKinematicsCache[T] {
	pc := &PositionKinematicsCache[T]{
		xFM: make([]spatialmath.Pose[T], topo.NumBodyNodes()),
		xWB: make([]spatialmath.Pose[T], topo.NumBodyNodes()),
	}
	ident := spatialmath.NewIdentityPose[T]()
	for i := range pc.xFM {
		pc.xFM[i] = ident
		pc.xWB[i] = ident
	}
	return pc
}

// JointTransform returns X_FM for the node, the pose of the mobilizer's
// outboard frame in its inboard frame as a function of that node's own
// generalized positions.
func (pc *PositionKinematicsCache[T]) JointTransform(n BodyNodeIndex) spatialmath.Pose[T] {
	return pc.xFM[n]
}

// PoseInWorld returns X_WB for the node, the pose of the node's body frame in
// the world frame.
func (pc *PositionKinematicsCache[T]) PoseInWorld(n BodyNodeIndex) spatialmath.Pose[T] {
	return pc.xWB[n]
}

// VelocityKinematicsCache holds each node's spatial velocity V_WB, measured
// and expressed in the world frame at the body-frame origin.
type VelocityKinematicsCache[T scalar.Number[T]] struct {
	vWB []spatialmath.SpatialVelocity[T]
}

// NewVelocityKinematicsCache allocates a zeroed cache sized from the topology.
func NewVelocityKinematicsCache[T scalar.Number[T]](topo *Topology) *VelocityKinematicsCache[T] {
	return &VelocityKinematicsCache[T]{
		vWB: make([]spatialmath.SpatialVelocity[T], topo.NumBodyNodes()),
	}
}

// InitializeToZero zeroes every entry, the state of a model at rest.
func (vc *VelocityKinematicsCache[T]) InitializeToZero() {
	for i := range vc.vWB {
		vc.vWB[i] = spatialmath.SpatialVelocity[T]{}
	}
}

// VelocityInWorld returns V_WB for the node.
func (vc *VelocityKinematicsCache[T]) VelocityInWorld(n BodyNodeIndex) spatialmath.SpatialVelocity[T] {
	return vc.vWB[n]
}

// AccelerationKinematicsCache holds each node's spatial acceleration A_WB,
// measured and expressed in the world frame at the body-frame origin.
type AccelerationKinematicsCache[T scalar.Number[T]] struct {
	aWB []spatialmath.SpatialAcceleration[T]
}

// NewAccelerationKinematicsCache allocates a zeroed cache sized from the
// topology.
func NewAccelerationKinematicsCache[T scalar.Number[T]](topo *Topology) *AccelerationKinematicsCache[T] {
	return &AccelerationKinematicsCache[T]{
		aWB: make([]spatialmath.SpatialAcceleration[T], topo.NumBodyNodes()),
	}
}

// AccelerationInWorld returns A_WB for the node.
func (ac *AccelerationKinematicsCache[T]) AccelerationInWorld(n BodyNodeIndex) spatialmath.SpatialAcceleration[T] {
	return ac.aWB[n]
}
