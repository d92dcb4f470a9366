package multibody

import (
	"sort"

	"github.com/edaniels/golog"
	"go.uber.org/multierr"

	"github.com/mechtree/multibody/scalar"
	"github.com/mechtree/multibody/spatialmath"
)

// MultibodyTree is the mutable registry of bodies, frames and mobilizers.
// Elements are added pre-compile; Finalize validates the graph, compiles the
// immutable Topology, and permanently freezes the registry. The tree
// exclusively owns its registered elements and compiled topology, and must
// outlive every Context derived from it.
type MultibodyTree[T scalar.Number[T]] struct {
	logger golog.Logger

	bodies     []*Body[T]
	frames     []*Frame[T]
	mobilizers []Mobilizer[T]

	topology *Topology
}

// NewMultibodyTree returns a tree containing only the world body and its
// frame.
func NewMultibodyTree[T scalar.Number[T]](logger golog.Logger) *MultibodyTree[T] {
	t := &MultibodyTree[T]{logger: logger}
	world := &Body[T]{
		name:    World,
		index:   WorldBodyIndex,
		frame:   WorldFrameIndex,
		inertia: spatialmath.NewZeroSpatialInertia[T](),
		tree:    t,
	}
	t.bodies = append(t.bodies, world)
	t.frames = append(t.frames, &Frame[T]{
		name:      World,
		index:     WorldFrameIndex,
		body:      WorldBodyIndex,
		xBF:       spatialmath.NewIdentityPose[T](),
		bodyFrame: true,
		tree:      t,
	})
	return t
}

// WorldBody returns the world body, always index 0.
func (t *MultibodyTree[T]) WorldBody() *Body[T] { return t.bodies[WorldBodyIndex] }

// WorldFrame returns the world body's frame, always index 0.
func (t *MultibodyTree[T]) WorldFrame() *Frame[T] { return t.frames[WorldFrameIndex] }

// NumBodies returns the number of registered bodies, the world included.
func (t *MultibodyTree[T]) NumBodies() int { return len(t.bodies) }

// NumFrames returns the number of registered frames.
func (t *MultibodyTree[T]) NumFrames() int { return len(t.frames) }

// NumMobilizers returns the number of registered mobilizers.
func (t *MultibodyTree[T]) NumMobilizers() int { return len(t.mobilizers) }

// Body returns the body with the given index.
func (t *MultibodyTree[T]) Body(i BodyIndex) *Body[T] { return t.bodies[i] }

// Frame returns the frame with the given index.
func (t *MultibodyTree[T]) Frame(i FrameIndex) *Frame[T] { return t.frames[i] }

// Mobilizer returns the mobilizer with the given index.
func (t *MultibodyTree[T]) Mobilizer(i MobilizerIndex) Mobilizer[T] { return t.mobilizers[i] }

// IsFinalized reports whether Finalize has succeeded.
func (t *MultibodyTree[T]) IsFinalized() bool { return t.topology != nil }

// Topology returns the compiled topology. It fails with ErrInvalidOperation
// before Finalize.
func (t *MultibodyTree[T]) Topology() (*Topology, error) {
	if t.topology == nil {
		return nil, NewInvalidOperationError("tree has no topology until Finalize")
	}
	return t.topology, nil
}

// AddBody registers a rigid body given its spatial inertia about its
// body-frame origin, expressed in its body frame. The body's own frame is
// created along with it.
func (t *MultibodyTree[T]) AddBody(name string, inertia spatialmath.SpatialInertia[T]) (*Body[T], error) {
	if t.topology != nil {
		return nil, NewInvalidOperationError("cannot add body %q to a finalized tree", name)
	}
	b := &Body[T]{
		name:    name,
		index:   BodyIndex(len(t.bodies)),
		frame:   FrameIndex(len(t.frames)),
		inertia: inertia,
		tree:    t,
	}
	t.bodies = append(t.bodies, b)
	t.frames = append(t.frames, &Frame[T]{
		name:      name,
		index:     b.frame,
		body:      b.index,
		xBF:       spatialmath.NewIdentityPose[T](),
		bodyFrame: true,
		tree:      t,
	})
	return b, nil
}

// AddFrameFixedToBody registers a frame at a constant pose X_BF in the given
// body's frame.
func (t *MultibodyTree[T]) AddFrameFixedToBody(
	name string, body *Body[T], xBF spatialmath.Pose[T],
) (*Frame[T], error) {
	if t.topology != nil {
		return nil, NewInvalidOperationError("cannot add frame %q to a finalized tree", name)
	}
	f := &Frame[T]{
		name:  name,
		index: FrameIndex(len(t.frames)),
		body:  body.index,
		xBF:   xBF,
		tree:  t,
	}
	t.frames = append(t.frames, f)
	return f, nil
}

// AddFrameFixedToFrame registers a frame at a constant pose X_PF relative to
// another frame P. The new frame is fixed to P's body, with its offset to the
// body resolved immediately.
func (t *MultibodyTree[T]) AddFrameFixedToFrame(
	name string, parent *Frame[T], xPF spatialmath.Pose[T],
) (*Frame[T], error) {
	if t.topology != nil {
		return nil, NewInvalidOperationError("cannot add frame %q to a finalized tree", name)
	}
	f := &Frame[T]{
		name:  name,
		index: FrameIndex(len(t.frames)),
		body:  parent.body,
		xBF:   parent.xBF.Compose(xPF),
		tree:  t,
	}
	t.frames = append(t.frames, f)
	return f, nil
}

// AddRevoluteMobilizer registers a revolute mobilizer rotating the outboard
// frame about the given axis, a unit vector fixed in the inboard frame.
func (t *MultibodyTree[T]) AddRevoluteMobilizer(
	name string, inboard, outboard *Frame[T], axis spatialmath.Vec3[T],
) (*RevoluteMobilizer[T], error) {
	base, err := t.newMobilizerBase(name, inboard, outboard)
	if err != nil {
		return nil, err
	}
	m := &RevoluteMobilizer[T]{mobilizerBase: base, axis: axis.Normalize()}
	t.mobilizers = append(t.mobilizers, m)
	return m, nil
}

// AddPrismaticMobilizer registers a prismatic mobilizer sliding the outboard
// frame along the given axis, a unit vector fixed in the inboard frame.
func (t *MultibodyTree[T]) AddPrismaticMobilizer(
	name string, inboard, outboard *Frame[T], axis spatialmath.Vec3[T],
) (*PrismaticMobilizer[T], error) {
	base, err := t.newMobilizerBase(name, inboard, outboard)
	if err != nil {
		return nil, err
	}
	m := &PrismaticMobilizer[T]{mobilizerBase: base, axis: axis.Normalize()}
	t.mobilizers = append(t.mobilizers, m)
	return m, nil
}

// AddWeldMobilizer registers a weld fixing the outboard frame at a constant
// pose X_FM in the inboard frame.
func (t *MultibodyTree[T]) AddWeldMobilizer(
	name string, inboard, outboard *Frame[T], xFM spatialmath.Pose[T],
) (*WeldMobilizer[T], error) {
	base, err := t.newMobilizerBase(name, inboard, outboard)
	if err != nil {
		return nil, err
	}
	m := &WeldMobilizer[T]{mobilizerBase: base, xFM: xFM}
	t.mobilizers = append(t.mobilizers, m)
	return m, nil
}

func (t *MultibodyTree[T]) newMobilizerBase(
	name string, inboard, outboard *Frame[T],
) (mobilizerBase[T], error) {
	if t.topology != nil {
		return mobilizerBase[T]{}, NewInvalidOperationError(
			"cannot add mobilizer %q to a finalized tree", name)
	}
	if inboard.tree != t || outboard.tree != t {
		return mobilizerBase[T]{}, NewPreconditionViolationError(
			"mobilizer %q frames must belong to this tree", name)
	}
	return mobilizerBase[T]{
		name:     name,
		index:    MobilizerIndex(len(t.mobilizers)),
		inboard:  inboard.index,
		outboard: outboard.index,
		tree:     t,
	}, nil
}

// Finalize compiles the registry into the immutable Topology: it validates
// the attachment graph, numbers body nodes so every parent precedes its
// children, assigns dense generalized-coordinate segments, and freezes the
// registry. It succeeds exactly once; the tree either compiles fully or is
// left untouched and mutable.
func (t *MultibodyTree[T]) Finalize() error {
	if t.topology != nil {
		return NewInvalidOperationError("tree is already finalized")
	}

	// Every non-world body must be the outboard of exactly one mobilizer.
	attachedBy := make([]MobilizerIndex, len(t.bodies))
	for i := range attachedBy {
		attachedBy[i] = -1
	}
	var defects error
	for _, m := range t.mobilizers {
		outBody := m.OutboardFrame().body
		if outBody == WorldBodyIndex {
			defects = multierr.Append(defects, NewInvalidTopologyError(
				"mobilizer %q uses the world as its outboard body", m.Name()))
			continue
		}
		if prev := attachedBy[outBody]; prev >= 0 {
			defects = multierr.Append(defects, NewInvalidTopologyError(
				"body %q is attached by both mobilizer %q and mobilizer %q",
				t.bodies[outBody].name, t.mobilizers[prev].Name(), m.Name()))
			continue
		}
		attachedBy[outBody] = m.Index()
	}
	for i, b := range t.bodies {
		if BodyIndex(i) != WorldBodyIndex && attachedBy[i] < 0 {
			defects = multierr.Append(defects, NewInvalidTopologyError(
				"body %q is not attached to the tree by any mobilizer", b.name))
		}
	}
	if defects != nil {
		return defects
	}

	// Children of each body through its attaching mobilizers.
	children := make([][]BodyIndex, len(t.bodies))
	for body, m := range attachedBy {
		if m < 0 {
			continue
		}
		parent := t.mobilizers[m].InboardFrame().body
		children[parent] = append(children[parent], BodyIndex(body))
	}
	for _, c := range children {
		sort.Slice(c, func(i, j int) bool { return c[i] < c[j] })
	}

	// Breadth-first numbering from the world guarantees parent-before-child.
	// A body left unvisited is on a cycle disconnected from the world.
	topo := &Topology{
		bodyToNode:      make([]BodyNodeIndex, len(t.bodies)),
		mobilizerToNode: make([]BodyNodeIndex, len(t.mobilizers)),
		numFrames:       len(t.frames),
	}
	for i := range topo.bodyToNode {
		topo.bodyToNode[i] = -1
	}
	queue := []BodyIndex{WorldBodyIndex}
	for len(queue) > 0 {
		body := queue[0]
		queue = queue[1:]

		node := BodyNodeIndex(len(topo.nodes))
		topo.bodyToNode[body] = node
		nt := BodyNodeTopology{
			Index:     node,
			Parent:    -1,
			Body:      body,
			Mobilizer: -1,
		}
		if body != WorldBodyIndex {
			m := t.mobilizers[attachedBy[body]]
			nt.Mobilizer = m.Index()
			nt.Parent = topo.bodyToNode[m.InboardFrame().body]
			nt.PositionsStart = topo.numPositions
			nt.NumPositions = m.NumPositions()
			nt.VelocitiesStart = topo.numVelocities
			nt.NumVelocities = m.NumVelocities()
			topo.numPositions += nt.NumPositions
			topo.numVelocities += nt.NumVelocities
			topo.mobilizerToNode[m.Index()] = node
		}
		topo.nodes = append(topo.nodes, nt)
		queue = append(queue, children[body]...)
	}
	if len(topo.nodes) != len(t.bodies) {
		return NewInvalidTopologyError(
			"%d of %d bodies are unreachable from the world (cyclic attachment)",
			len(t.bodies)-len(topo.nodes), len(t.bodies))
	}

	// Record child node indexes now that every body has a node.
	for i := range topo.nodes {
		nt := &topo.nodes[i]
		for _, c := range children[nt.Body] {
			nt.Children = append(nt.Children, topo.bodyToNode[c])
		}
	}

	t.topology = topo
	t.logger.Debugw("finalized multibody tree",
		"bodies", len(t.bodies),
		"frames", len(t.frames),
		"mobilizers", len(t.mobilizers),
		"positions", topo.numPositions,
		"velocities", topo.numVelocities,
	)
	return nil
}
