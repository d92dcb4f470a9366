package multibody

import (
	"errors"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/mechtree/multibody/scalar"
	"github.com/mechtree/multibody/spatialmath"
)

func rodInertia(mass, length float64) spatialmath.SpatialInertia[scalar.Real] {
	g := spatialmath.NewUnitInertiaStraightLine(
		scalar.Real(length*length/12), spatialmath.NewVec3[scalar.Real](0, 1, 0))
	return spatialmath.NewSpatialInertia(scalar.Real(mass), spatialmath.Vec3[scalar.Real]{}, g)
}

func zAxis() spatialmath.Vec3[scalar.Real] {
	return spatialmath.NewVec3[scalar.Real](0, 0, 1)
}

// twoLinkArm builds a minimal shoulder-elbow chain used by the registry and
// topology tests.
func twoLinkArm(t *testing.T) (
	*MultibodyTree[scalar.Real],
	*RevoluteMobilizer[scalar.Real],
	*RevoluteMobilizer[scalar.Real],
) {
	t.Helper()
	logger := golog.NewTestLogger(t)
	tree := NewMultibodyTree[scalar.Real](logger)

	upper, err := tree.AddBody("upper", rodInertia(1, 1))
	test.That(t, err, test.ShouldBeNil)
	lower, err := tree.AddBody("lower", rodInertia(1, 2))
	test.That(t, err, test.ShouldBeNil)

	so, err := tree.AddFrameFixedToBody("shoulder_outboard", upper,
		spatialmath.NewPoseFromPoint(spatialmath.NewVec3[scalar.Real](0, 0.5, 0)))
	test.That(t, err, test.ShouldBeNil)
	ei, err := tree.AddFrameFixedToBody("elbow_inboard", upper,
		spatialmath.NewPoseFromPoint(spatialmath.NewVec3[scalar.Real](0, -0.5, 0)))
	test.That(t, err, test.ShouldBeNil)

	shoulder, err := tree.AddRevoluteMobilizer("shoulder", tree.WorldFrame(), so, zAxis())
	test.That(t, err, test.ShouldBeNil)
	elbow, err := tree.AddRevoluteMobilizer("elbow", ei, lower.BodyFrame(), zAxis())
	test.That(t, err, test.ShouldBeNil)
	return tree, shoulder, elbow
}

func TestRegistryIndexing(t *testing.T) {
	tree, shoulder, elbow := twoLinkArm(t)

	test.That(t, tree.NumBodies(), test.ShouldEqual, 3)
	test.That(t, tree.NumFrames(), test.ShouldEqual, 5)
	test.That(t, tree.NumMobilizers(), test.ShouldEqual, 2)

	test.That(t, tree.WorldBody().Name(), test.ShouldEqual, World)
	test.That(t, tree.WorldBody().Index(), test.ShouldEqual, WorldBodyIndex)
	test.That(t, tree.WorldFrame().Index(), test.ShouldEqual, WorldFrameIndex)
	test.That(t, tree.WorldFrame().IsBodyFrame(), test.ShouldBeTrue)

	upper := tree.Body(1)
	test.That(t, upper.Name(), test.ShouldEqual, "upper")
	test.That(t, upper.BodyFrame().Body(), test.ShouldEqual, upper)
	test.That(t, upper.BodyFrame().IsBodyFrame(), test.ShouldBeTrue)

	so := tree.Frame(3)
	test.That(t, so.Name(), test.ShouldEqual, "shoulder_outboard")
	test.That(t, so.IsBodyFrame(), test.ShouldBeFalse)
	test.That(t, so.Body(), test.ShouldEqual, upper)
	test.That(t, so.PoseInBody().Translation().Y.Float(), test.ShouldAlmostEqual, 0.5)

	test.That(t, shoulder.Index(), test.ShouldEqual, MobilizerIndex(0))
	test.That(t, shoulder.InboardFrame(), test.ShouldEqual, tree.WorldFrame())
	test.That(t, shoulder.OutboardFrame(), test.ShouldEqual, so)
	test.That(t, elbow.NumPositions(), test.ShouldEqual, 1)
	test.That(t, elbow.NumVelocities(), test.ShouldEqual, 1)
}

func TestFrameFixedToFrameResolvesOffset(t *testing.T) {
	logger := golog.NewTestLogger(t)
	tree := NewMultibodyTree[scalar.Real](logger)
	body, err := tree.AddBody("link", rodInertia(1, 1))
	test.That(t, err, test.ShouldBeNil)

	a, err := tree.AddFrameFixedToBody("a", body,
		spatialmath.NewPoseFromPoint(spatialmath.NewVec3[scalar.Real](1, 0, 0)))
	test.That(t, err, test.ShouldBeNil)
	b, err := tree.AddFrameFixedToFrame("b", a,
		spatialmath.NewPoseFromPoint(spatialmath.NewVec3[scalar.Real](0, 2, 0)))
	test.That(t, err, test.ShouldBeNil)

	// The offset composes through a, but b is fixed directly to the body.
	test.That(t, b.Body(), test.ShouldEqual, body)
	test.That(t, b.PoseInBody().Translation().X.Float(), test.ShouldAlmostEqual, 1)
	test.That(t, b.PoseInBody().Translation().Y.Float(), test.ShouldAlmostEqual, 2)
}

func TestFinalizeCompilesTopology(t *testing.T) {
	tree, shoulder, elbow := twoLinkArm(t)
	test.That(t, tree.IsFinalized(), test.ShouldBeFalse)

	_, err := tree.Topology()
	test.That(t, errors.Is(err, ErrInvalidOperation), test.ShouldBeTrue)

	test.That(t, tree.Finalize(), test.ShouldBeNil)
	test.That(t, tree.IsFinalized(), test.ShouldBeTrue)

	topo, err := tree.Topology()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, topo.NumBodyNodes(), test.ShouldEqual, 3)
	test.That(t, topo.NumPositions(), test.ShouldEqual, 2)
	test.That(t, topo.NumVelocities(), test.ShouldEqual, 2)

	// Every node's parent must precede it.
	for i := 1; i < topo.NumBodyNodes(); i++ {
		nt := topo.Node(BodyNodeIndex(i))
		test.That(t, nt.Parent, test.ShouldBeLessThan, nt.Index)
	}
	world := topo.Node(WorldNodeIndex)
	test.That(t, world.Parent, test.ShouldEqual, BodyNodeIndex(-1))
	test.That(t, world.NumPositions, test.ShouldEqual, 0)
	test.That(t, world.NumVelocities, test.ShouldEqual, 0)

	// The chain compiles world -> upper -> lower.
	test.That(t, topo.NodeOfBody(1), test.ShouldEqual, BodyNodeIndex(1))
	test.That(t, topo.NodeOfBody(2), test.ShouldEqual, BodyNodeIndex(2))
	test.That(t, topo.NodeOfMobilizer(shoulder.Index()), test.ShouldEqual, BodyNodeIndex(1))
	test.That(t, topo.NodeOfMobilizer(elbow.Index()), test.ShouldEqual, BodyNodeIndex(2))

	node, err := tree.Body(2).NodeIndex()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, node, test.ShouldEqual, BodyNodeIndex(2))
}

func TestFinalizeOnce(t *testing.T) {
	tree, _, _ := twoLinkArm(t)
	test.That(t, tree.Finalize(), test.ShouldBeNil)

	err := tree.Finalize()
	test.That(t, errors.Is(err, ErrInvalidOperation), test.ShouldBeTrue)
}

func TestMutationAfterFinalizeFails(t *testing.T) {
	tree, _, _ := twoLinkArm(t)
	test.That(t, tree.Finalize(), test.ShouldBeNil)

	_, err := tree.AddBody("late", rodInertia(1, 1))
	test.That(t, errors.Is(err, ErrInvalidOperation), test.ShouldBeTrue)

	_, err = tree.AddFrameFixedToBody("late", tree.Body(1), spatialmath.NewIdentityPose[scalar.Real]())
	test.That(t, errors.Is(err, ErrInvalidOperation), test.ShouldBeTrue)

	_, err = tree.AddRevoluteMobilizer("late", tree.WorldFrame(), tree.Frame(3), zAxis())
	test.That(t, errors.Is(err, ErrInvalidOperation), test.ShouldBeTrue)
}

func TestFinalizeRejectsUnattachedBody(t *testing.T) {
	logger := golog.NewTestLogger(t)
	tree := NewMultibodyTree[scalar.Real](logger)
	_, err := tree.AddBody("floating", rodInertia(1, 1))
	test.That(t, err, test.ShouldBeNil)

	err = tree.Finalize()
	test.That(t, errors.Is(err, ErrInvalidTopology), test.ShouldBeTrue)
	test.That(t, tree.IsFinalized(), test.ShouldBeFalse)
}

func TestFinalizeRejectsDoubleAttachment(t *testing.T) {
	logger := golog.NewTestLogger(t)
	tree := NewMultibodyTree[scalar.Real](logger)
	body, err := tree.AddBody("link", rodInertia(1, 1))
	test.That(t, err, test.ShouldBeNil)
	_, err = tree.AddRevoluteMobilizer("first", tree.WorldFrame(), body.BodyFrame(), zAxis())
	test.That(t, err, test.ShouldBeNil)
	_, err = tree.AddRevoluteMobilizer("second", tree.WorldFrame(), body.BodyFrame(), zAxis())
	test.That(t, err, test.ShouldBeNil)

	err = tree.Finalize()
	test.That(t, errors.Is(err, ErrInvalidTopology), test.ShouldBeTrue)
}

func TestFinalizeRejectsWorldAsOutboard(t *testing.T) {
	logger := golog.NewTestLogger(t)
	tree := NewMultibodyTree[scalar.Real](logger)
	body, err := tree.AddBody("link", rodInertia(1, 1))
	test.That(t, err, test.ShouldBeNil)
	_, err = tree.AddRevoluteMobilizer("good", tree.WorldFrame(), body.BodyFrame(), zAxis())
	test.That(t, err, test.ShouldBeNil)
	_, err = tree.AddRevoluteMobilizer("bad", body.BodyFrame(), tree.WorldFrame(), zAxis())
	test.That(t, err, test.ShouldBeNil)

	err = tree.Finalize()
	test.That(t, errors.Is(err, ErrInvalidTopology), test.ShouldBeTrue)
}

func TestFinalizeRejectsCycle(t *testing.T) {
	logger := golog.NewTestLogger(t)
	tree := NewMultibodyTree[scalar.Real](logger)
	a, err := tree.AddBody("a", rodInertia(1, 1))
	test.That(t, err, test.ShouldBeNil)
	b, err := tree.AddBody("b", rodInertia(1, 1))
	test.That(t, err, test.ShouldBeNil)

	// a and b attach each other; neither reaches the world.
	_, err = tree.AddRevoluteMobilizer("ab", a.BodyFrame(), b.BodyFrame(), zAxis())
	test.That(t, err, test.ShouldBeNil)
	_, err = tree.AddRevoluteMobilizer("ba", b.BodyFrame(), a.BodyFrame(), zAxis())
	test.That(t, err, test.ShouldBeNil)

	err = tree.Finalize()
	test.That(t, errors.Is(err, ErrInvalidTopology), test.ShouldBeTrue)
}

func TestMobilizerRejectsForeignFrames(t *testing.T) {
	logger := golog.NewTestLogger(t)
	tree := NewMultibodyTree[scalar.Real](logger)
	other := NewMultibodyTree[scalar.Real](logger)
	body, err := other.AddBody("foreign", rodInertia(1, 1))
	test.That(t, err, test.ShouldBeNil)

	_, err = tree.AddRevoluteMobilizer("bad", tree.WorldFrame(), body.BodyFrame(), zAxis())
	test.That(t, errors.Is(err, ErrPreconditionViolation), test.ShouldBeTrue)
}

func TestContextLifecycle(t *testing.T) {
	tree, shoulder, elbow := twoLinkArm(t)

	_, err := tree.CreateDefaultContext()
	test.That(t, errors.Is(err, ErrInvalidOperation), test.ShouldBeTrue)

	test.That(t, tree.Finalize(), test.ShouldBeNil)
	ctx, err := tree.CreateDefaultContext()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(ctx.Positions()), test.ShouldEqual, 2)
	test.That(t, len(ctx.Velocities()), test.ShouldEqual, 2)

	test.That(t, shoulder.SetAngle(ctx, 0.3), test.ShouldBeNil)
	test.That(t, elbow.SetAngle(ctx, -0.7), test.ShouldBeNil)
	test.That(t, shoulder.SetAngularRate(ctx, 1.5), test.ShouldBeNil)

	angle, err := elbow.Angle(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, angle.Float(), test.ShouldAlmostEqual, -0.7)
	rate, err := shoulder.AngularRate(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rate.Float(), test.ShouldAlmostEqual, 1.5)

	// Mobilizer segments alias the context's backing vectors.
	qs, err := ctx.MobilizerPositions(shoulder.Index())
	test.That(t, err, test.ShouldBeNil)
	qs[0] = 0.9
	test.That(t, ctx.Positions()[0].Float(), test.ShouldAlmostEqual, 0.9)

	err = ctx.SetPositions([]scalar.Real{1, 2, 3})
	test.That(t, errors.Is(err, ErrPreconditionViolation), test.ShouldBeTrue)
	err = ctx.SetVelocities([]scalar.Real{1})
	test.That(t, errors.Is(err, ErrPreconditionViolation), test.ShouldBeTrue)

	ctx.SetZeroConfiguration()
	for _, q := range ctx.Positions() {
		test.That(t, q.Float(), test.ShouldAlmostEqual, 0)
	}
	for _, v := range ctx.Velocities() {
		test.That(t, v.Float(), test.ShouldAlmostEqual, 0)
	}
}

func TestContextBelongsToTree(t *testing.T) {
	tree, _, _ := twoLinkArm(t)
	test.That(t, tree.Finalize(), test.ShouldBeNil)

	other, _, _ := twoLinkArm(t)
	test.That(t, other.Finalize(), test.ShouldBeNil)
	ctx, err := other.CreateDefaultContext()
	test.That(t, err, test.ShouldBeNil)

	_, err = tree.CalcPositionKinematics(ctx)
	test.That(t, errors.Is(err, ErrPreconditionViolation), test.ShouldBeTrue)
}

func TestWeldAndPrismaticCoordinates(t *testing.T) {
	logger := golog.NewTestLogger(t)
	tree := NewMultibodyTree[scalar.Real](logger)
	base, err := tree.AddBody("base", rodInertia(1, 1))
	test.That(t, err, test.ShouldBeNil)
	slider, err := tree.AddBody("slider", rodInertia(1, 1))
	test.That(t, err, test.ShouldBeNil)

	weldPose := spatialmath.NewPoseFromPoint(spatialmath.NewVec3[scalar.Real](0, 0, 1))
	_, err = tree.AddWeldMobilizer("anchor", tree.WorldFrame(), base.BodyFrame(), weldPose)
	test.That(t, err, test.ShouldBeNil)
	prismatic, err := tree.AddPrismaticMobilizer("slide", base.BodyFrame(), slider.BodyFrame(),
		spatialmath.NewVec3[scalar.Real](1, 0, 0))
	test.That(t, err, test.ShouldBeNil)

	test.That(t, tree.Finalize(), test.ShouldBeNil)
	topo, err := tree.Topology()
	test.That(t, err, test.ShouldBeNil)

	// The weld contributes no generalized coordinates.
	test.That(t, topo.NumPositions(), test.ShouldEqual, 1)
	test.That(t, topo.NumVelocities(), test.ShouldEqual, 1)

	ctx, err := tree.CreateDefaultContext()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, prismatic.SetTranslation(ctx, 0.25), test.ShouldBeNil)

	pc, err := tree.CalcPositionKinematics(ctx)
	test.That(t, err, test.ShouldBeNil)
	baseNode, err := base.NodeIndex()
	test.That(t, err, test.ShouldBeNil)
	sliderNode, err := slider.NodeIndex()
	test.That(t, err, test.ShouldBeNil)

	test.That(t, pc.PoseInWorld(baseNode).Translation().Z.Float(), test.ShouldAlmostEqual, 1)
	test.That(t, pc.PoseInWorld(sliderNode).Translation().X.Float(), test.ShouldAlmostEqual, 0.25)
	test.That(t, pc.PoseInWorld(sliderNode).Translation().Z.Float(), test.ShouldAlmostEqual, 1)
}
