// Package multibody models an articulated mechanism as a tree of rigid bodies
// connected by mobilizers, and computes forward kinematics and inverse
// dynamics over it. A mutable MultibodyTree registry is compiled exactly once
// by Finalize into an immutable Topology; Contexts hold the generalized state
// and kinematics caches hold the per-node results of the recursive passes.
// Everything is generic over the numeric scalar, so the same algorithms run
// over plain reals and over derivative-propagating numbers.
package multibody

// BodyIndex identifies a body in a MultibodyTree. The world body is always
// index 0. Indexes are dense, zero based, assigned in registration order, and
// stable once assigned.
type BodyIndex int

// FrameIndex identifies a frame in a MultibodyTree. The world frame is always
// index 0.
type FrameIndex int

// MobilizerIndex identifies a mobilizer in a MultibodyTree.
type MobilizerIndex int

// BodyNodeIndex identifies a node of the compiled topology, numbered so that
// every node's parent has a strictly smaller index. The world node is index 0.
type BodyNodeIndex int

// WorldBodyIndex is the index of the world body in every tree.
const WorldBodyIndex = BodyIndex(0)

// WorldFrameIndex is the index of the world body's frame in every tree.
const WorldFrameIndex = FrameIndex(0)

// WorldNodeIndex is the node index of the world body in every topology.
const WorldNodeIndex = BodyNodeIndex(0)
