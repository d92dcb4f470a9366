package multibody

import (
	"github.com/mechtree/multibody/scalar"
	"github.com/mechtree/multibody/spatialmath"
)

// nodeOffsets returns the constant frame offsets of a non-world node: X_PF,
// the pose of the mobilizer's inboard frame F in the parent body frame P, and
// X_MB, the pose of the child body frame B in the outboard frame M.
func (t *MultibodyTree[T]) nodeOffsets(nt BodyNodeTopology) (xPF, xMB spatialmath.Pose[T]) {
	m := t.mobilizers[nt.Mobilizer]
	xPF = m.InboardFrame().PoseInBody()
	xMB = m.OutboardFrame().PoseInBody().Inverse()
	return xPF, xMB
}

func (t *MultibodyTree[T]) checkContext(ctx *Context[T]) error {
	if t.topology == nil {
		return NewInvalidOperationError("tree is not finalized")
	}
	if ctx == nil || ctx.topology != t.topology {
		return NewPreconditionViolationError("context does not belong to this tree's topology")
	}
	return nil
}

// CalcPositionKinematics runs the forward position pass: in increasing node
// order it evaluates each node's joint-local transform X_FM from that node's
// own generalized positions and composes the world pose
// X_WB = X_WP · X_PF · X_FM · X_MB. The world node keeps the identity pose.
// The result depends only on the context's positions.
func (t *MultibodyTree[T]) CalcPositionKinematics(ctx *Context[T]) (*PositionKinematicsCache[T], error) {
	if err := t.checkContext(ctx); err != nil {
		return nil, err
	}
	pc := NewPositionKinematicsCache[T](t.topology)
	for i := 1; i < len(t.topology.nodes); i++ {
		nt := t.topology.nodes[i]
		m := t.mobilizers[nt.Mobilizer]
		q := ctx.q[nt.PositionsStart : nt.PositionsStart+nt.NumPositions]

		xPF, xMB := t.nodeOffsets(nt)
		xFM := m.calcJointTransform(q)
		pc.xFM[i] = xFM
		pc.xWB[i] = pc.xWB[nt.Parent].Compose(xPF).Compose(xFM).Compose(xMB)
	}
	return pc, nil
}

// calcAcrossMobilizerVelocity returns V_PB_W, the spatial velocity of the
// node's body B relative to its parent P at Bo, expressed in world: the
// mobilizer's velocity mapping evaluated at this node's generalized
// velocities, rigidly shifted from Mo to Bo and re-expressed in world.
func (t *MultibodyTree[T]) calcAcrossMobilizerVelocity(
	ctx *Context[T], pc *PositionKinematicsCache[T], nt BodyNodeTopology,
) spatialmath.SpatialVelocity[T] {
	m := t.mobilizers[nt.Mobilizer]
	q := ctx.q[nt.PositionsStart : nt.PositionsStart+nt.NumPositions]
	v := ctx.v[nt.VelocitiesStart : nt.VelocitiesStart+nt.NumVelocities]

	xPF, xMB := t.nodeOffsets(nt)
	xFM := pc.xFM[nt.Index]

	vFM := m.calcJointVelocity(q, v)
	pMoBoF := xFM.Rotation().Apply(xMB.Translation())
	rWF := pc.xWB[nt.Parent].Rotation().Compose(xPF.Rotation())
	return vFM.Shift(pMoBoF).ReExpress(rWF)
}

// CalcVelocityKinematics runs the forward velocity pass over a valid position
// cache: each node's world spatial velocity is its parent's velocity rigidly
// transported to the node's body-frame origin plus the mobilizer's own
// contribution. The world node keeps zero velocity.
func (t *MultibodyTree[T]) CalcVelocityKinematics(
	ctx *Context[T], pc *PositionKinematicsCache[T],
) (*VelocityKinematicsCache[T], error) {
	if err := t.checkContext(ctx); err != nil {
		return nil, err
	}
	if pc == nil || len(pc.xWB) != len(t.topology.nodes) {
		return nil, NewPreconditionViolationError("position cache does not match topology")
	}
	vc := NewVelocityKinematicsCache[T](t.topology)
	for i := 1; i < len(t.topology.nodes); i++ {
		nt := t.topology.nodes[i]
		pPBW := pc.xWB[i].Translation().Sub(pc.xWB[nt.Parent].Translation())
		vPBW := t.calcAcrossMobilizerVelocity(ctx, pc, nt)
		vc.vWB[i] = vc.vWB[nt.Parent].Shift(pPBW).Add(vPBW)
	}
	return vc, nil
}

// CalcAccelerationKinematics runs the forward acceleration pass over valid
// position and velocity caches for a given generalized acceleration vector:
// each node's world spatial acceleration is its parent's acceleration
// transported to the node, plus the mobilizer's mapping applied to this
// node's generalized accelerations, plus the velocity-dependent Coriolis
// coupling of the transport and mapping operators. Gravity is not baked in;
// it enters only as an applied force in inverse dynamics. The world node
// keeps zero acceleration.
func (t *MultibodyTree[T]) CalcAccelerationKinematics(
	ctx *Context[T],
	pc *PositionKinematicsCache[T],
	vc *VelocityKinematicsCache[T],
	vdot []T,
) (*AccelerationKinematicsCache[T], error) {
	if err := t.checkContext(ctx); err != nil {
		return nil, err
	}
	ac := NewAccelerationKinematicsCache[T](t.topology)
	if err := t.calcAccelerationKinematicsInto(ctx, pc, vc, vdot, ac); err != nil {
		return nil, err
	}
	return ac, nil
}

func (t *MultibodyTree[T]) calcAccelerationKinematicsInto(
	ctx *Context[T],
	pc *PositionKinematicsCache[T],
	vc *VelocityKinematicsCache[T],
	vdot []T,
	ac *AccelerationKinematicsCache[T],
) error {
	if pc == nil || len(pc.xWB) != len(t.topology.nodes) {
		return NewPreconditionViolationError("position cache does not match topology")
	}
	if vc == nil || len(vc.vWB) != len(t.topology.nodes) {
		return NewPreconditionViolationError("velocity cache does not match topology")
	}
	if len(vdot) != t.topology.numVelocities {
		return NewPreconditionViolationError(
			"generalized acceleration length %d does not match topology's %d",
			len(vdot), t.topology.numVelocities)
	}
	if len(ac.aWB) != len(t.topology.nodes) {
		return NewPreconditionViolationError("acceleration cache does not match topology")
	}

	two := scalar.Constant[T](2)
	ac.aWB[WorldNodeIndex] = spatialmath.SpatialAcceleration[T]{}
	for i := 1; i < len(t.topology.nodes); i++ {
		nt := t.topology.nodes[i]
		m := t.mobilizers[nt.Mobilizer]
		q := ctx.q[nt.PositionsStart : nt.PositionsStart+nt.NumPositions]
		v := ctx.v[nt.VelocitiesStart : nt.VelocitiesStart+nt.NumVelocities]
		a := vdot[nt.VelocitiesStart : nt.VelocitiesStart+nt.NumVelocities]

		xPF, xMB := t.nodeOffsets(nt)
		xFM := pc.xFM[i]
		rWF := pc.xWB[nt.Parent].Rotation().Compose(xPF.Rotation())
		pMoBoF := xFM.Rotation().Apply(xMB.Translation())

		// Parent acceleration transported to Bo.
		pPBW := pc.xWB[i].Translation().Sub(pc.xWB[nt.Parent].Translation())
		wWP := vc.vWB[nt.Parent].Rotational()
		aWPb := ac.aWB[nt.Parent].Shift(pPBW, wWP)

		// Mobilizer contribution A_PB_W, shifted from Mo to Bo in F before
		// re-expression; the shift needs the across-mobilizer angular
		// velocity for its centrifugal term.
		vFM := m.calcJointVelocity(q, v)
		aFM := m.calcJointAcceleration(q, v, a)
		aPBW := aFM.Shift(pMoBoF, vFM.Rotational()).ReExpress(rWF)

		// Coriolis coupling between the parent's motion and the motion
		// across the mobilizer.
		vPBW := vFM.Shift(pMoBoF).ReExpress(rWF)
		bias := spatialmath.NewSpatialAcceleration(
			wWP.Cross(vPBW.Rotational()),
			wWP.Cross(vPBW.Translational()).Scale(two),
		)

		ac.aWB[i] = aWPb.Add(bias).Add(aPBW)
	}
	return nil
}
