package multibody

import (
	"github.com/mechtree/multibody/spatialmath"
)

// CalcInverseDynamics computes the generalized forces tau that realize the
// given generalized accelerations:
//
//	tau = M(q)·vdot + C(q,v)·v − tau_applied − (applied spatial forces projected
//	      through the mobilizers)
//
// along with the spatial force transmitted through each mobilizer (about the
// outboard frame origin Mo, expressed in world, indexed by node) and each
// body's world spatial acceleration. Applied spatial forces are given per
// body, indexed by node, about each body-frame origin and expressed in world;
// either applied array may be nil for none.
//
// Three standard quantities are this one routine with special inputs: columns
// of the mass matrix (zero velocity, unit-vector vdot, no applied forces),
// the bias term C(q,v)·v (true velocities, zero vdot, no applied forces), and
// the gravity term (zero velocity and vdot, per-body weight as the applied
// spatial forces).
func (t *MultibodyTree[T]) CalcInverseDynamics(
	ctx *Context[T],
	pc *PositionKinematicsCache[T],
	vc *VelocityKinematicsCache[T],
	vdot []T,
	appliedSpatial []spatialmath.SpatialForce[T],
	appliedGeneralized []T,
) (tau []T, transmitted []spatialmath.SpatialForce[T], accelerations []spatialmath.SpatialAcceleration[T], err error) {
	if err := t.checkContext(ctx); err != nil {
		return nil, nil, nil, err
	}
	tau = make([]T, t.topology.numVelocities)
	transmitted = make([]spatialmath.SpatialForce[T], t.topology.NumBodyNodes())
	accelerations = make([]spatialmath.SpatialAcceleration[T], t.topology.NumBodyNodes())
	if err := t.CalcInverseDynamicsInto(
		ctx, pc, vc, vdot, appliedSpatial, appliedGeneralized,
		accelerations, transmitted, tau,
	); err != nil {
		return nil, nil, nil, err
	}
	return tau, transmitted, accelerations, nil
}

// CalcInverseDynamicsInto is CalcInverseDynamics writing into caller-owned
// arrays. The applied spatial force array may alias the transmitted output
// array, and the applied generalized force array may alias tau; aliasing is a
// supported contract, but aliased input values do not survive the call — only
// the outputs are meaningful afterwards.
func (t *MultibodyTree[T]) CalcInverseDynamicsInto(
	ctx *Context[T],
	pc *PositionKinematicsCache[T],
	vc *VelocityKinematicsCache[T],
	vdot []T,
	appliedSpatial []spatialmath.SpatialForce[T],
	appliedGeneralized []T,
	accelerations []spatialmath.SpatialAcceleration[T],
	transmitted []spatialmath.SpatialForce[T],
	tau []T,
) error {
	if err := t.checkContext(ctx); err != nil {
		return err
	}
	numNodes := t.topology.NumBodyNodes()
	if appliedSpatial != nil && len(appliedSpatial) != numNodes {
		return NewPreconditionViolationError(
			"applied spatial force array length %d does not match body count %d",
			len(appliedSpatial), numNodes)
	}
	if appliedGeneralized != nil && len(appliedGeneralized) != t.topology.numVelocities {
		return NewPreconditionViolationError(
			"applied generalized force length %d does not match velocity count %d",
			len(appliedGeneralized), t.topology.numVelocities)
	}
	if len(accelerations) != numNodes {
		return NewPreconditionViolationError(
			"acceleration output length %d does not match body count %d",
			len(accelerations), numNodes)
	}
	if len(transmitted) != numNodes {
		return NewPreconditionViolationError(
			"transmitted force output length %d does not match body count %d",
			len(transmitted), numNodes)
	}
	if len(tau) != t.topology.numVelocities {
		return NewPreconditionViolationError(
			"generalized force output length %d does not match velocity count %d",
			len(tau), t.topology.numVelocities)
	}

	// Forward pass per the acceleration kinematics recursion.
	ac := AccelerationKinematicsCache[T]{aWB: accelerations}
	if err := t.calcAccelerationKinematicsInto(ctx, pc, vc, vdot, &ac); err != nil {
		return err
	}

	// Backward pass, tip to base. Each node is visited exactly once and its
	// applied-force entry is read before its transmitted-force entry is
	// written, which is what makes aliased arrays legal.
	for i := numNodes - 1; i >= 1; i-- {
		nt := t.topology.nodes[i]
		m := t.mobilizers[nt.Mobilizer]
		body := t.bodies[nt.Body]

		var fApplied spatialmath.SpatialForce[T]
		if appliedSpatial != nil {
			fApplied = appliedSpatial[i]
		}

		rWB := pc.xWB[i].Rotation()
		mBW := body.SpatialInertia().ReExpress(rWB)

		// Newton-Euler about Bo plus the gyroscopic bias, minus what the
		// world applies, plus what the children demand.
		fBoW := mBW.TimesAcceleration(accelerations[i]).
			Add(mBW.BiasForce(vc.vWB[i].Rotational())).
			Sub(fApplied)
		pWBo := pc.xWB[i].Translation()
		for _, c := range nt.Children {
			cnt := t.topology.nodes[c]
			childM := t.mobilizers[cnt.Mobilizer]
			// The child's transmitted force is reported about its outboard
			// frame origin Mc; transport it to Bo.
			xCMc := childM.OutboardFrame().PoseInBody()
			pWMc := pc.xWB[c].TransformPoint(xCMc.Translation())
			fBoW = fBoW.Add(transmitted[c].Shift(pWBo.Sub(pWMc)))
		}

		// Report the transmitted force about this node's own Mo.
		xBM := m.OutboardFrame().PoseInBody()
		pBoMoW := rWB.Apply(xBM.Translation())
		fBMoW := fBoW.Shift(pBoMoW)
		transmitted[i] = fBMoW

		// Project through the mobilizer in its inboard frame F.
		q := ctx.q[nt.PositionsStart : nt.PositionsStart+nt.NumPositions]
		xPF, _ := t.nodeOffsets(nt)
		rWF := pc.xWB[nt.Parent].Rotation().Compose(xPF.Rotation())
		fBMoF := fBMoW.ReExpress(rWF.Inverse())

		tauSeg := tau[nt.VelocitiesStart : nt.VelocitiesStart+nt.NumVelocities]
		var tauAppSeg []T
		if appliedGeneralized != nil {
			// Copy before writing tauSeg: the two may be the same memory.
			tauAppSeg = make([]T, nt.NumVelocities)
			copy(tauAppSeg, appliedGeneralized[nt.VelocitiesStart:nt.VelocitiesStart+nt.NumVelocities])
		}
		m.projectSpatialForce(q, fBMoF, tauSeg)
		for k := range tauSeg {
			if tauAppSeg != nil {
				tauSeg[k] = tauSeg[k].Sub(tauAppSeg[k])
			}
		}
	}
	if numNodes > 0 {
		transmitted[WorldNodeIndex] = spatialmath.SpatialForce[T]{}
	}
	return nil
}
