package multibody

import (
	"github.com/edaniels/golog"

	"github.com/mechtree/multibody/scalar"
	"github.com/mechtree/multibody/spatialmath"
)

// ConvertScalar produces an independent copy of a finalized tree over a
// different scalar type, mapping every body, frame and mobilizer to its
// counterpart at the identical index. The conversion is structure preserving:
// the result is finalized and has the same topology layout, so contexts and
// generalized vectors transfer between the two models by index.
func ConvertScalar[From scalar.Number[From], To scalar.Number[To]](
	t *MultibodyTree[From], logger golog.Logger, conv func(From) To,
) (*MultibodyTree[To], error) {
	if t.topology == nil {
		return nil, NewInvalidOperationError("can only convert a finalized tree")
	}

	out := NewMultibodyTree[To](logger)
	cvVec := func(v spatialmath.Vec3[From]) spatialmath.Vec3[To] {
		return spatialmath.Vec3[To]{X: conv(v.X), Y: conv(v.Y), Z: conv(v.Z)}
	}
	cvPose := func(x spatialmath.Pose[From]) spatialmath.Pose[To] {
		return spatialmath.NewPose(convertRotation(x.Rotation(), conv), cvVec(x.Translation()))
	}
	cvInertia := func(m spatialmath.SpatialInertia[From]) spatialmath.SpatialInertia[To] {
		return convertSpatialInertia(m, conv)
	}

	// Replaying frames in index order recreates bodies in body-index order
	// (each body frame is registered with its body) and keeps every frame at
	// its original index, including frames interleaved with bodies.
	for _, f := range t.frames[1:] {
		if f.bodyFrame {
			b := t.bodies[f.body]
			if _, err := out.AddBody(b.name, cvInertia(b.inertia)); err != nil {
				return nil, err
			}
			continue
		}
		nf, err := out.AddFrameFixedToBody(f.name, out.bodies[f.body], cvPose(f.xBF))
		if err != nil {
			return nil, err
		}
		if nf.index != f.index {
			return nil, NewPreconditionViolationError(
				"frame %q converted to index %d, want %d", f.name, nf.index, f.index)
		}
	}
	// Mobilizers, in index order. The mobilizer kinds are a closed set, so a
	// type switch covers them exhaustively.
	for _, m := range t.mobilizers {
		in := out.frames[m.InboardFrame().index]
		outb := out.frames[m.OutboardFrame().index]
		var err error
		switch mm := m.(type) {
		case *RevoluteMobilizer[From]:
			_, err = out.AddRevoluteMobilizer(mm.name, in, outb, cvVec(mm.axis))
		case *PrismaticMobilizer[From]:
			_, err = out.AddPrismaticMobilizer(mm.name, in, outb, cvVec(mm.axis))
		case *WeldMobilizer[From]:
			_, err = out.AddWeldMobilizer(mm.name, in, outb, cvPose(mm.xFM))
		default:
			err = NewPreconditionViolationError("unknown mobilizer kind %T", m)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := out.Finalize(); err != nil {
		return nil, err
	}
	return out, nil
}

// ToDual converts a real-valued finalized tree into a derivative-propagating
// one whose scalars are all constants; independent variables are then chosen
// by writing seeded scalar.Dual values into a context of the new model.
func ToDual(t *MultibodyTree[scalar.Real], logger golog.Logger) (*MultibodyTree[scalar.Dual], error) {
	return ConvertScalar(t, logger, func(r scalar.Real) scalar.Dual {
		return scalar.Dual{Val: float64(r)}
	})
}

func convertRotation[From scalar.Number[From], To scalar.Number[To]](
	r spatialmath.Rotation[From], conv func(From) To,
) spatialmath.Rotation[To] {
	// Rebuild the matrix column by column through the public accessors.
	var cols [3]spatialmath.Vec3[To]
	for j := 0; j < 3; j++ {
		c := r.Col(j)
		cols[j] = spatialmath.Vec3[To]{X: conv(c.X), Y: conv(c.Y), Z: conv(c.Z)}
	}
	return spatialmath.NewRotationFromCols(cols[0], cols[1], cols[2])
}

func convertSpatialInertia[From scalar.Number[From], To scalar.Number[To]](
	m spatialmath.SpatialInertia[From], conv func(From) To,
) spatialmath.SpatialInertia[To] {
	cvVec := func(v spatialmath.Vec3[From]) spatialmath.Vec3[To] {
		return spatialmath.Vec3[To]{X: conv(v.X), Y: conv(v.Y), Z: conv(v.Z)}
	}
	return spatialmath.NewSpatialInertia(
		conv(m.Mass()),
		cvVec(m.CenterOfMass()),
		spatialmath.ConvertUnitInertia(m.UnitInertia(), conv),
	)
}
