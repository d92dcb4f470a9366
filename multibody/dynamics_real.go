package multibody

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/mechtree/multibody/scalar"
	"github.com/mechtree/multibody/spatialmath"
)

// CalcMassMatrix computes the mass matrix M(q) of a real-valued model, one
// column per inverse-dynamics call with a unit generalized acceleration, zero
// velocity and no applied forces. The result is symmetric positive
// semi-definite for any physically valid inertia set.
func CalcMassMatrix(t *MultibodyTree[scalar.Real], ctx *Context[scalar.Real]) (*mat.SymDense, error) {
	if err := t.checkContext(ctx); err != nil {
		return nil, err
	}
	nv := t.topology.numVelocities

	// The mass matrix is velocity independent: evaluate at the context's
	// positions but with zero velocities so no Coriolis terms leak in.
	restCtx := &Context[scalar.Real]{
		topology: t.topology,
		q:        ctx.q,
		v:        make([]scalar.Real, nv),
	}
	pc, err := t.CalcPositionKinematics(restCtx)
	if err != nil {
		return nil, err
	}
	vc := NewVelocityKinematicsCache[scalar.Real](t.topology)

	m := mat.NewSymDense(nv, nil)
	vdot := make([]scalar.Real, nv)
	for j := 0; j < nv; j++ {
		vdot[j] = 1
		tau, _, _, err := t.CalcInverseDynamics(restCtx, pc, vc, vdot, nil, nil)
		if err != nil {
			return nil, err
		}
		vdot[j] = 0
		for i := j; i < nv; i++ {
			m.SetSym(i, j, float64(tau[i]))
		}
	}
	return m, nil
}

// CalcBiasTerm computes C(q,v)·v, the velocity-dependent generalized forces,
// via inverse dynamics with zero generalized acceleration and no applied
// forces.
func CalcBiasTerm(t *MultibodyTree[scalar.Real], ctx *Context[scalar.Real]) (*mat.VecDense, error) {
	pc, err := t.CalcPositionKinematics(ctx)
	if err != nil {
		return nil, err
	}
	vc, err := t.CalcVelocityKinematics(ctx, pc)
	if err != nil {
		return nil, err
	}
	vdot := make([]scalar.Real, t.topology.numVelocities)
	tau, _, _, err := t.CalcInverseDynamics(ctx, pc, vc, vdot, nil, nil)
	if err != nil {
		return nil, err
	}
	return realVec(tau), nil
}

// CalcGravityGeneralizedForces computes tau_g, the generalized forces a
// uniform gravity field g exerts on the model, so that the equations of
// motion read M(q)·vdot + C(q,v)·v = tau + tau_g. It runs inverse dynamics at
// zero velocity and acceleration with each body's weight applied at its
// center of mass and shifted to its body-frame origin.
func CalcGravityGeneralizedForces(
	t *MultibodyTree[scalar.Real], ctx *Context[scalar.Real], g r3.Vector,
) (*mat.VecDense, error) {
	if err := t.checkContext(ctx); err != nil {
		return nil, err
	}
	nv := t.topology.numVelocities
	restCtx := &Context[scalar.Real]{
		topology: t.topology,
		q:        ctx.q,
		v:        make([]scalar.Real, nv),
	}
	pc, err := t.CalcPositionKinematics(restCtx)
	if err != nil {
		return nil, err
	}
	vc := NewVelocityKinematicsCache[scalar.Real](t.topology)

	applied := make([]spatialmath.SpatialForce[scalar.Real], t.topology.NumBodyNodes())
	for i := 1; i < t.topology.NumBodyNodes(); i++ {
		nt := t.topology.nodes[i]
		body := t.bodies[nt.Body]
		mass := body.SpatialInertia().Mass().Float()
		weight := spatialmath.NewSpatialForce(
			spatialmath.Vec3[scalar.Real]{},
			spatialmath.NewVec3FromR3[scalar.Real](g.Mul(mass)),
		)
		// The weight acts at the center of mass; report it about Bo.
		pBcmW := pc.xWB[i].Rotation().Apply(body.DefaultCOM())
		applied[i] = weight.Shift(pBcmW.Neg())
	}

	vdot := make([]scalar.Real, nv)
	tau, _, _, err := t.CalcInverseDynamics(restCtx, pc, vc, vdot, applied, nil)
	if err != nil {
		return nil, err
	}
	// Inverse dynamics yields the torque that holds the mechanism against
	// gravity; the generalized forces gravity itself exerts are its negation.
	out := realVec(tau)
	out.ScaleVec(-1, out)
	return out, nil
}

func realVec(v []scalar.Real) *mat.VecDense {
	out := mat.NewVecDense(len(v), nil)
	for i, x := range v {
		out.SetVec(i, float64(x))
	}
	return out
}
