package multibody

import (
	"github.com/mechtree/multibody/scalar"
	"github.com/mechtree/multibody/spatialmath"
)

// World is the reserved name of the world body and the world frame.
const World = "world"

// Body is a rigid body registered with a MultibodyTree: a spatial inertia
// about its own body-frame origin, expressed in its body frame. Bodies are
// immutable after creation.
type Body[T scalar.Number[T]] struct {
	name    string
	index   BodyIndex
	frame   FrameIndex
	inertia spatialmath.SpatialInertia[T]
	tree    *MultibodyTree[T]
}

// Name returns the body's name.
func (b *Body[T]) Name() string { return b.name }

// Index returns the body's stable index in its tree.
func (b *Body[T]) Index() BodyIndex { return b.index }

// BodyFrame returns the body's own frame, coincident with the body for all
// time.
func (b *Body[T]) BodyFrame() *Frame[T] { return b.tree.frames[b.frame] }

// SpatialInertia returns the body's spatial inertia about its body-frame
// origin, expressed in its body frame.
func (b *Body[T]) SpatialInertia() spatialmath.SpatialInertia[T] { return b.inertia }

// DefaultCOM returns the body's center of mass offset from its body-frame
// origin, expressed in its body frame.
func (b *Body[T]) DefaultCOM() spatialmath.Vec3[T] { return b.inertia.CenterOfMass() }

// NodeIndex returns the body's node in the compiled topology. It fails with
// ErrInvalidOperation before Finalize.
func (b *Body[T]) NodeIndex() (BodyNodeIndex, error) {
	if b.tree.topology == nil {
		return 0, NewInvalidOperationError("body %q has no node index until Finalize", b.name)
	}
	return b.tree.topology.bodyToNode[b.index], nil
}
