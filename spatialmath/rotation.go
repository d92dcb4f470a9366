package spatialmath

import (
	"github.com/mechtree/multibody/scalar"
)

// mat3 is a 3x3 matrix over T, row major. It backs both rotations and
// rotational inertias.
type mat3[T scalar.Number[T]] [3][3]T

func (m mat3[T]) mulVec(v Vec3[T]) Vec3[T] {
	return Vec3[T]{
		m[0][0].Mul(v.X).Add(m[0][1].Mul(v.Y)).Add(m[0][2].Mul(v.Z)),
		m[1][0].Mul(v.X).Add(m[1][1].Mul(v.Y)).Add(m[1][2].Mul(v.Z)),
		m[2][0].Mul(v.X).Add(m[2][1].Mul(v.Y)).Add(m[2][2].Mul(v.Z)),
	}
}

func (m mat3[T]) mul(o mat3[T]) mat3[T] {
	var out mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0].Mul(o[0][j]).Add(m[i][1].Mul(o[1][j])).Add(m[i][2].Mul(o[2][j]))
		}
	}
	return out
}

func (m mat3[T]) transpose() mat3[T] {
	var out mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

func (m mat3[T]) add(o mat3[T]) mat3[T] {
	var out mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j].Add(o[i][j])
		}
	}
	return out
}

func (m mat3[T]) sub(o mat3[T]) mat3[T] {
	var out mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j].Sub(o[i][j])
		}
	}
	return out
}

func (m mat3[T]) scale(s T) mat3[T] {
	var out mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j].Mul(s)
		}
	}
	return out
}

func identityMat3[T scalar.Number[T]]() mat3[T] {
	one := scalar.Constant[T](1)
	var m mat3[T]
	m[0][0], m[1][1], m[2][2] = one, one, one
	return m
}

// outer returns the outer product a bᵀ.
func outer[T scalar.Number[T]](a, b Vec3[T]) mat3[T] {
	return mat3[T]{
		{a.X.Mul(b.X), a.X.Mul(b.Y), a.X.Mul(b.Z)},
		{a.Y.Mul(b.X), a.Y.Mul(b.Y), a.Y.Mul(b.Z)},
		{a.Z.Mul(b.X), a.Z.Mul(b.Y), a.Z.Mul(b.Z)},
	}
}

// Rotation is a rotation matrix over the scalar T. Use NewIdentityRotation or
// one of the constructors; the zero value is not a valid rotation.
type Rotation[T scalar.Number[T]] struct {
	m mat3[T]
}

// NewIdentityRotation returns the identity rotation.
func NewIdentityRotation[T scalar.Number[T]]() Rotation[T] {
	return Rotation[T]{identityMat3[T]()}
}

// NewRotationFromAxisAngle returns the rotation of angle theta about the given
// unit axis, via the Rodrigues formula.
func NewRotationFromAxisAngle[T scalar.Number[T]](axis Vec3[T], theta T) Rotation[T] {
	s := theta.Sin()
	c := theta.Cos()
	one := scalar.Constant[T](1)

	// R = c I + s [axis]x + (1-c) axis axisᵀ
	k := skew(axis)
	r := identityMat3[T]().scale(c).
		add(k.scale(s)).
		add(outer(axis, axis).scale(one.Sub(c)))
	return Rotation[T]{r}
}

// NewRotationFromCols assembles a rotation from its three column vectors. The
// columns must already form a right-handed orthonormal set; no
// orthonormalization is performed.
func NewRotationFromCols[T scalar.Number[T]](c0, c1, c2 Vec3[T]) Rotation[T] {
	return Rotation[T]{mat3[T]{
		{c0.X, c1.X, c2.X},
		{c0.Y, c1.Y, c2.Y},
		{c0.Z, c1.Z, c2.Z},
	}}
}

// skew returns the cross-product matrix [v]x.
func skew[T scalar.Number[T]](v Vec3[T]) mat3[T] {
	var zero T
	return mat3[T]{
		{zero, v.Z.Neg(), v.Y},
		{v.Z, zero, v.X.Neg()},
		{v.Y.Neg(), v.X, zero},
	}
}

// Compose returns this rotation followed from the left, i.e. R_AC = R_AB.Compose(R_BC).
func (r Rotation[T]) Compose(o Rotation[T]) Rotation[T] {
	return Rotation[T]{r.m.mul(o.m)}
}

// Inverse returns the inverse rotation, the transpose.
func (r Rotation[T]) Inverse() Rotation[T] {
	return Rotation[T]{r.m.transpose()}
}

// Apply rotates the vector v by r.
func (r Rotation[T]) Apply(v Vec3[T]) Vec3[T] {
	return r.m.mulVec(v)
}

// At returns the matrix entry at row i, column j.
func (r Rotation[T]) At(i, j int) T {
	return r.m[i][j]
}

// Col returns column j of the rotation matrix.
func (r Rotation[T]) Col(j int) Vec3[T] {
	return Vec3[T]{r.m[0][j], r.m[1][j], r.m[2][j]}
}
