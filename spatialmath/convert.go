package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/mechtree/multibody/scalar"
)

// NewVec3FromR3 converts an r3.Vector into a Vec3 of constants.
func NewVec3FromR3[T scalar.Number[T]](v r3.Vector) Vec3[T] {
	return NewVec3[T](v.X, v.Y, v.Z)
}

// R3FromVec3 converts a Vec3 into an r3.Vector, discarding any derivative
// information carried by the scalars.
func R3FromVec3[T scalar.Number[T]](v Vec3[T]) r3.Vector {
	return r3.Vector{X: v.X.Float(), Y: v.Y.Float(), Z: v.Z.Float()}
}

// QuatFromRotation converts a real-valued rotation into a unit quaternion.
func QuatFromRotation(r Rotation[scalar.Real]) quat.Number {
	m := mgl64.Mat3{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			// mgl64 matrices are column major.
			m[j*3+i] = float64(r.m[i][j])
		}
	}
	q := mgl64.Mat4ToQuat(m.Mat4())
	return quat.Number{Real: q.W, Imag: q.X(), Jmag: q.Y(), Kmag: q.Z()}
}

// RotationFromQuat converts a unit quaternion into a real-valued rotation.
func RotationFromQuat(q quat.Number) Rotation[scalar.Real] {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	var m mat3[scalar.Real]
	m[0][0] = scalar.Real(1 - 2*(y*y+z*z))
	m[0][1] = scalar.Real(2 * (x*y - w*z))
	m[0][2] = scalar.Real(2 * (x*z + w*y))
	m[1][0] = scalar.Real(2 * (x*y + w*z))
	m[1][1] = scalar.Real(1 - 2*(x*x+z*z))
	m[1][2] = scalar.Real(2 * (y*z - w*x))
	m[2][0] = scalar.Real(2 * (x*z - w*y))
	m[2][1] = scalar.Real(2 * (y*z + w*x))
	m[2][2] = scalar.Real(1 - 2*(x*x+y*y))
	return Rotation[scalar.Real]{m}
}

// Mat4FromPose converts a real-valued pose into an mgl64 homogeneous matrix.
func Mat4FromPose(x Pose[scalar.Real]) mgl64.Mat4 {
	out := mgl64.Ident4()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, float64(x.r.m[i][j]))
		}
	}
	out.Set(0, 3, float64(x.p.X))
	out.Set(1, 3, float64(x.p.Y))
	out.Set(2, 3, float64(x.p.Z))
	return out
}

// PoseFromMat4 converts an mgl64 homogeneous matrix into a real-valued pose.
// The matrix must be a rigid transform.
func PoseFromMat4(m mgl64.Mat4) Pose[scalar.Real] {
	var r mat3[scalar.Real]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = scalar.Real(m.At(i, j))
		}
	}
	p := Vec3[scalar.Real]{
		scalar.Real(m.At(0, 3)),
		scalar.Real(m.At(1, 3)),
		scalar.Real(m.At(2, 3)),
	}
	return Pose[scalar.Real]{Rotation[scalar.Real]{r}, p}
}
