package multibody

import (
	"github.com/mechtree/multibody/scalar"
	"github.com/mechtree/multibody/spatialmath"
)

// Frame is a rigid pose fixed to a body. A body-intrinsic frame is coincident
// with its body for all time; a fixed-offset frame carries a constant pose
// relative to its body, resolved at registration time even when declared
// relative to another frame.
type Frame[T scalar.Number[T]] struct {
	name  string
	index FrameIndex
	body  BodyIndex
	// xBF is the fixed pose of this frame F in its body frame B. Identity for
	// body-intrinsic frames.
	xBF       spatialmath.Pose[T]
	bodyFrame bool
	tree      *MultibodyTree[T]
}

// Name returns the frame's name.
func (f *Frame[T]) Name() string { return f.name }

// Index returns the frame's stable index in its tree.
func (f *Frame[T]) Index() FrameIndex { return f.index }

// Body returns the body this frame is rigidly fixed to.
func (f *Frame[T]) Body() *Body[T] { return f.tree.bodies[f.body] }

// IsBodyFrame reports whether this is a body-intrinsic frame.
func (f *Frame[T]) IsBodyFrame() bool { return f.bodyFrame }

// PoseInBody returns the fixed pose X_BF of this frame in its body's frame.
func (f *Frame[T]) PoseInBody() spatialmath.Pose[T] { return f.xBF }
