// Package acrobot provides hand-derived closed-form kinematics and dynamics
// of a planar two-link pendulum, for validating the recursive multibody
// algorithms against an independent derivation.
//
// The model hangs from a shoulder pin at the world origin. Angles are
// measured from the downward vertical, positive about the world +z axis, so
// both links point straight down at the zero configuration. The world +y axis
// points up and gravity pulls along -y.
package acrobot

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"github.com/mechtree/multibody/scalar"
	"github.com/mechtree/multibody/spatialmath"
)

// Acrobot holds the parameters of the two-link pendulum: link masses, link
// lengths, distances from each pin to the link's center of mass, moments of
// inertia about each center of mass (about z), and the gravitational
// acceleration magnitude.
type Acrobot struct {
	M1, L1, Lc1, Ic1 float64
	M2, L2, Lc2, Ic2 float64
	G                float64
}

// NewDefaultAcrobot returns the parameter set used throughout the tests: a
// one meter upper link and a two meter lower link, unit masses, centers of
// mass at the link midpoints, and thin-rod central inertias.
func NewDefaultAcrobot() *Acrobot {
	return &Acrobot{
		M1: 1.0, L1: 1.0, Lc1: 0.5, Ic1: 0.083,
		M2: 1.0, L2: 2.0, Lc2: 1.0, Ic2: 0.33,
		G: 9.81,
	}
}

// GravityField returns the uniform gravitational acceleration vector, along
// the world -y axis.
func (a *Acrobot) GravityField() r3.Vector {
	return r3.Vector{Y: -a.G}
}

// MassMatrix returns M(q). Only the elbow angle enters.
func (a *Acrobot) MassMatrix(theta2 float64) mgl64.Mat2 {
	i1 := a.Ic1 + a.M1*a.Lc1*a.Lc1
	i2 := a.Ic2 + a.M2*a.Lc2*a.Lc2
	c2 := math.Cos(theta2)

	m11 := i1 + i2 + a.M2*a.L1*a.L1 + 2*a.M2*a.L1*a.Lc2*c2
	m12 := i2 + a.M2*a.L1*a.Lc2*c2
	m22 := i2
	// mgl64 matrices are column major.
	return mgl64.Mat2{m11, m12, m12, m22}
}

// CoriolisVector returns C(q, v)·v, the velocity-dependent generalized
// forces.
func (a *Acrobot) CoriolisVector(theta2, thetadot1, thetadot2 float64) mgl64.Vec2 {
	s2 := math.Sin(theta2)
	h := a.M2 * a.L1 * a.Lc2 * s2
	return mgl64.Vec2{
		-2*h*thetadot1*thetadot2 - h*thetadot2*thetadot2,
		h * thetadot1 * thetadot1,
	}
}

// GravityVector returns tau_g(q), the generalized forces gravity exerts on
// the pendulum, so that M(q)·vdot + C(q, v)·v = tau + tau_g(q).
func (a *Acrobot) GravityVector(theta1, theta2 float64) mgl64.Vec2 {
	s1 := math.Sin(theta1)
	s12 := math.Sin(theta1+theta2)
	return mgl64.Vec2{
		-(a.M1*a.Lc1+a.M2*a.L1)*a.G*s1 - a.M2*a.Lc2*a.G*s12,
		-a.M2 * a.Lc2 * a.G * s12,
	}
}

func rz(theta float64) spatialmath.Rotation[scalar.Real] {
	return spatialmath.NewRotationFromAxisAngle(
		spatialmath.NewVec3[scalar.Real](0, 0, 1), scalar.Real(theta))
}

// Link1PoseInWorld returns the pose of the upper link's center of mass.
func (a *Acrobot) Link1PoseInWorld(theta1 float64) spatialmath.Pose[scalar.Real] {
	s1 := math.Sin(theta1)
	c1 := math.Cos(theta1)
	p := spatialmath.NewVec3[scalar.Real](a.Lc1*s1, -a.Lc1*c1, 0)
	return spatialmath.NewPose(rz(theta1), p)
}

// ElbowPoseInWorld returns the pose of the elbow pin, oriented with the lower
// link.
func (a *Acrobot) ElbowPoseInWorld(theta1, theta2 float64) spatialmath.Pose[scalar.Real] {
	s1 := math.Sin(theta1)
	c1 := math.Cos(theta1)
	p := spatialmath.NewVec3[scalar.Real](a.L1*s1, -a.L1*c1, 0)
	return spatialmath.NewPose(rz(theta1+theta2), p)
}

// Link2PoseInWorld returns the pose of the lower link's center of mass.
func (a *Acrobot) Link2PoseInWorld(theta1, theta2 float64) spatialmath.Pose[scalar.Real] {
	s1 := math.Sin(theta1)
	c1 := math.Cos(theta1)
	s12 := math.Sin(theta1+theta2)
	c12 := math.Cos(theta1+theta2)
	p := spatialmath.NewVec3[scalar.Real](
		a.L1*s1+a.Lc2*s12, -a.L1*c1-a.Lc2*c12, 0)
	return spatialmath.NewPose(rz(theta1+theta2), p)
}

// Link1SpatialVelocityInWorld returns the spatial velocity of the upper link
// at its center of mass.
func (a *Acrobot) Link1SpatialVelocityInWorld(theta1, thetadot1 float64) spatialmath.SpatialVelocity[scalar.Real] {
	s1 := math.Sin(theta1)
	c1 := math.Cos(theta1)
	return spatialmath.NewSpatialVelocity(
		spatialmath.NewVec3[scalar.Real](0, 0, thetadot1),
		spatialmath.NewVec3[scalar.Real](a.Lc1*thetadot1*c1, a.Lc1*thetadot1*s1, 0),
	)
}

// ElbowSpatialVelocityInWorld returns the spatial velocity of the lower link
// at the elbow pin.
func (a *Acrobot) ElbowSpatialVelocityInWorld(theta1, thetadot1, thetadot2 float64) spatialmath.SpatialVelocity[scalar.Real] {
	s1 := math.Sin(theta1)
	c1 := math.Cos(theta1)
	return spatialmath.NewSpatialVelocity(
		spatialmath.NewVec3[scalar.Real](0, 0, thetadot1+thetadot2),
		spatialmath.NewVec3[scalar.Real](a.L1*thetadot1*c1, a.L1*thetadot1*s1, 0),
	)
}

// Link2SpatialVelocityInWorld returns the spatial velocity of the lower link
// at its center of mass.
func (a *Acrobot) Link2SpatialVelocityInWorld(theta1, theta2, thetadot1, thetadot2 float64) spatialmath.SpatialVelocity[scalar.Real] {
	s1 := math.Sin(theta1)
	c1 := math.Cos(theta1)
	s12 := math.Sin(theta1+theta2)
	c12 := math.Cos(theta1+theta2)
	w12 := thetadot1 + thetadot2
	return spatialmath.NewSpatialVelocity(
		spatialmath.NewVec3[scalar.Real](0, 0, w12),
		spatialmath.NewVec3[scalar.Real](
			a.L1*thetadot1*c1+a.Lc2*w12*c12,
			a.L1*thetadot1*s1+a.Lc2*w12*s12,
			0,
		),
	)
}

// Link1SpatialAccelerationInWorld returns the spatial acceleration of the
// upper link at its center of mass.
func (a *Acrobot) Link1SpatialAccelerationInWorld(
	theta1, thetadot1, thetadotdot1 float64,
) spatialmath.SpatialAcceleration[scalar.Real] {
	s1 := math.Sin(theta1)
	c1 := math.Cos(theta1)
	return spatialmath.NewSpatialAcceleration(
		spatialmath.NewVec3[scalar.Real](0, 0, thetadotdot1),
		spatialmath.NewVec3[scalar.Real](
			a.Lc1*(thetadotdot1*c1-thetadot1*thetadot1*s1),
			a.Lc1*(thetadotdot1*s1+thetadot1*thetadot1*c1),
			0,
		),
	)
}

// ElbowSpatialAccelerationInWorld returns the spatial acceleration of the
// lower link at the elbow pin.
func (a *Acrobot) ElbowSpatialAccelerationInWorld(
	theta1, thetadot1, thetadot2, thetadotdot1, thetadotdot2 float64,
) spatialmath.SpatialAcceleration[scalar.Real] {
	s1 := math.Sin(theta1)
	c1 := math.Cos(theta1)
	return spatialmath.NewSpatialAcceleration(
		spatialmath.NewVec3[scalar.Real](0, 0, thetadotdot1+thetadotdot2),
		spatialmath.NewVec3[scalar.Real](
			a.L1*(thetadotdot1*c1-thetadot1*thetadot1*s1),
			a.L1*(thetadotdot1*s1+thetadot1*thetadot1*c1),
			0,
		),
	)
}

// Link2SpatialAccelerationInWorld returns the spatial acceleration of the
// lower link at its center of mass.
func (a *Acrobot) Link2SpatialAccelerationInWorld(
	theta1, theta2, thetadot1, thetadot2, thetadotdot1, thetadotdot2 float64,
) spatialmath.SpatialAcceleration[scalar.Real] {
	s1 := math.Sin(theta1)
	c1 := math.Cos(theta1)
	s12 := math.Sin(theta1+theta2)
	c12 := math.Cos(theta1+theta2)
	w12 := thetadot1 + thetadot2
	a12 := thetadotdot1 + thetadotdot2
	return spatialmath.NewSpatialAcceleration(
		spatialmath.NewVec3[scalar.Real](0, 0, a12),
		spatialmath.NewVec3[scalar.Real](
			a.L1*(thetadotdot1*c1-thetadot1*thetadot1*s1)+a.Lc2*(a12*c12-w12*w12*s12),
			a.L1*(thetadotdot1*s1+thetadot1*thetadot1*c1)+a.Lc2*(a12*s12+w12*w12*c12),
			0,
		),
	)
}
