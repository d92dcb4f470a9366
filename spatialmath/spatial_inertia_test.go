package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/mechtree/multibody/scalar"
)

func TestSpatialVelocityShift(t *testing.T) {
	// A body spinning at 1 rad/s about z with its origin at rest: a point one
	// unit out along x moves at 1 m/s along y.
	w := NewVec3[scalar.Real](0, 0, 1)
	v := NewSpatialVelocity(w, Vec3[scalar.Real]{})
	shifted := v.Shift(NewVec3[scalar.Real](1, 0, 0))
	vecAlmostEqual(t, shifted.Rotational(), r3.Vector{Z: 1}, 1e-12)
	vecAlmostEqual(t, shifted.Translational(), r3.Vector{Y: 1}, 1e-12)
}

func TestSpatialAccelerationShift(t *testing.T) {
	// Pure rotation at constant rate w about z: a point at radius r has
	// centripetal acceleration -w^2 r along x.
	w := NewVec3[scalar.Real](0, 0, 2)
	a := NewSpatialAcceleration(Vec3[scalar.Real]{}, Vec3[scalar.Real]{})
	shifted := a.Shift(NewVec3[scalar.Real](1, 0, 0), w)
	vecAlmostEqual(t, shifted.Translational(), r3.Vector{X: -4}, 1e-12)

	// Angular acceleration alone produces a tangential term.
	a = NewSpatialAcceleration(NewVec3[scalar.Real](0, 0, 3), Vec3[scalar.Real]{})
	shifted = a.Shift(NewVec3[scalar.Real](1, 0, 0), Vec3[scalar.Real]{})
	vecAlmostEqual(t, shifted.Translational(), r3.Vector{Y: 3}, 1e-12)
}

func TestSpatialForceShift(t *testing.T) {
	// A force of 1 N along y through the origin, moved to a point one unit
	// along x, picks up a torque of -1 about z at the new point: the original
	// line of action now passes on the -x side.
	f := NewSpatialForce(Vec3[scalar.Real]{}, NewVec3[scalar.Real](0, 1, 0))
	shifted := f.Shift(NewVec3[scalar.Real](1, 0, 0))
	vecAlmostEqual(t, shifted.Rotational(), r3.Vector{Z: -1}, 1e-12)
	vecAlmostEqual(t, shifted.Translational(), r3.Vector{Y: 1}, 1e-12)

	// Shifting there and back is the identity.
	back := shifted.Shift(NewVec3[scalar.Real](-1, 0, 0))
	vecAlmostEqual(t, back.Rotational(), r3.Vector{}, 1e-12)
}

func TestUnitInertiaStraightLine(t *testing.T) {
	// A thin rod along y has zero moment about y and k about x and z.
	k := scalar.Real(0.25)
	g := NewUnitInertiaStraightLine(k, NewVec3[scalar.Real](0, 1, 0))
	m := NewSpatialInertia(scalar.Real(2), Vec3[scalar.Real]{}, g)
	ri := m.RotationalInertia()

	ix := ri.Apply(NewVec3[scalar.Real](1, 0, 0))
	iy := ri.Apply(NewVec3[scalar.Real](0, 1, 0))
	iz := ri.Apply(NewVec3[scalar.Real](0, 0, 1))
	vecAlmostEqual(t, ix, r3.Vector{X: 0.5}, 1e-12)
	vecAlmostEqual(t, iy, r3.Vector{}, 1e-12)
	vecAlmostEqual(t, iz, r3.Vector{Z: 0.5}, 1e-12)
}

func TestSpatialInertiaShift(t *testing.T) {
	// Uniform thin rod of mass m and length l along y, about its center:
	// I = m l^2 / 12 about x and z. About its end: m l^2 / 3.
	mass := scalar.Real(3)
	l := 2.0
	ic := l * l / 12
	g := NewUnitInertiaStraightLine(scalar.Real(ic), NewVec3[scalar.Real](0, 1, 0))
	aboutCM := NewSpatialInertia(mass, Vec3[scalar.Real]{}, g)

	// Shift to the end of the rod at (0, -l/2, 0).
	aboutEnd := aboutCM.Shift(NewVec3[scalar.Real](0, -l/2, 0))
	vecAlmostEqual(t, aboutEnd.CenterOfMass(), r3.Vector{Y: l / 2}, 1e-12)

	ri := aboutEnd.RotationalInertia()
	ix := ri.Apply(NewVec3[scalar.Real](1, 0, 0))
	test.That(t, float64(ix.X), test.ShouldAlmostEqual, float64(mass)*l*l/3, 1e-12)

	// Shifting back recovers the original.
	back := aboutEnd.Shift(NewVec3[scalar.Real](0, l/2, 0))
	test.That(t, float64(back.CenterOfMass().Y), test.ShouldAlmostEqual, 0, 1e-12)
	bx := back.RotationalInertia().Apply(NewVec3[scalar.Real](1, 0, 0))
	test.That(t, float64(bx.X), test.ShouldAlmostEqual, float64(mass)*ic, 1e-12)
}

func TestSpatialInertiaReExpress(t *testing.T) {
	// Re-expressing a rod's inertia after a quarter turn about z swaps the
	// roles of x and y.
	g := NewUnitInertiaStraightLine(scalar.Real(1), NewVec3[scalar.Real](0, 1, 0))
	m := NewSpatialInertia(scalar.Real(1), Vec3[scalar.Real]{}, g)
	r := NewRotationFromAxisAngle(NewVec3[scalar.Real](0, 0, 1), scalar.Real(math.Pi/2))
	rot := m.ReExpress(r)

	ri := rot.RotationalInertia()
	ix := ri.Apply(NewVec3[scalar.Real](1, 0, 0))
	iy := ri.Apply(NewVec3[scalar.Real](0, 1, 0))
	vecAlmostEqual(t, ix, r3.Vector{}, 1e-12)
	vecAlmostEqual(t, iy, r3.Vector{Y: 1}, 1e-12)
}

func TestBiasForce(t *testing.T) {
	// A symmetric body spinning about a principal axis has no gyroscopic
	// torque; an offset center of mass produces the centrifugal force
	// m w x (w x c).
	g := NewUnitInertiaSolidSphere(scalar.Real(0.5))
	com := NewVec3[scalar.Real](1, 0, 0)
	m := NewSpatialInertia(scalar.Real(2), com, g)
	w := NewVec3[scalar.Real](0, 0, 3)

	b := m.BiasForce(w)
	vecAlmostEqual(t, b.Translational(), r3.Vector{X: -18}, 1e-12)
}

func TestTimesAcceleration(t *testing.T) {
	// A point mass at the about-point: F = m a, no torque.
	g := UnitInertia[scalar.Real]{}
	m := NewSpatialInertia(scalar.Real(5), Vec3[scalar.Real]{}, g)
	a := NewSpatialAcceleration(Vec3[scalar.Real]{}, NewVec3[scalar.Real](0, 1, 0))
	f := m.TimesAcceleration(a)
	vecAlmostEqual(t, f.Translational(), r3.Vector{Y: 5}, 1e-12)
	vecAlmostEqual(t, f.Rotational(), r3.Vector{}, 1e-12)
}
