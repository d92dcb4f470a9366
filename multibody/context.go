package multibody

import (
	"github.com/mechtree/multibody/scalar"
)

// Context holds the generalized position and velocity vectors of one instance
// of a compiled model, partitioned per mobilizer. It references its topology
// but does not own it; it carries no cache state. Concurrent mutation of one
// Context requires external synchronization.
type Context[T scalar.Number[T]] struct {
	topology *Topology
	q        []T
	v        []T
}

// CreateDefaultContext returns a state container sized exactly from the
// compiled topology, with every mobilizer at its zero configuration (identity
// relative pose, zero rate). It fails with ErrInvalidOperation before
// Finalize.
func (t *MultibodyTree[T]) CreateDefaultContext() (*Context[T], error) {
	if t.topology == nil {
		return nil, NewInvalidOperationError("cannot create a context before Finalize")
	}
	return &Context[T]{
		topology: t.topology,
		q:        make([]T, t.topology.numPositions),
		v:        make([]T, t.topology.numVelocities),
	}, nil
}

// Positions returns the whole generalized position vector. The slice is the
// context's backing storage; writes through it update the context.
func (ctx *Context[T]) Positions() []T { return ctx.q }

// Velocities returns the whole generalized velocity vector, backed like
// Positions.
func (ctx *Context[T]) Velocities() []T { return ctx.v }

// SetPositions copies q into the context. The length must equal the
// topology's position count.
func (ctx *Context[T]) SetPositions(q []T) error {
	if len(q) != len(ctx.q) {
		return NewPreconditionViolationError(
			"position vector length %d does not match topology's %d", len(q), len(ctx.q))
	}
	copy(ctx.q, q)
	return nil
}

// SetVelocities copies v into the context. The length must equal the
// topology's velocity count.
func (ctx *Context[T]) SetVelocities(v []T) error {
	if len(v) != len(ctx.v) {
		return NewPreconditionViolationError(
			"velocity vector length %d does not match topology's %d", len(v), len(ctx.v))
	}
	copy(ctx.v, v)
	return nil
}

// MobilizerPositions returns the fixed-size segment of the position vector
// owned by the given mobilizer, backed by the context's storage.
func (ctx *Context[T]) MobilizerPositions(m MobilizerIndex) ([]T, error) {
	if int(m) < 0 || int(m) >= len(ctx.topology.mobilizerToNode) {
		return nil, NewPreconditionViolationError("no mobilizer with index %d", m)
	}
	nt := ctx.topology.nodes[ctx.topology.mobilizerToNode[m]]
	return ctx.q[nt.PositionsStart : nt.PositionsStart+nt.NumPositions], nil
}

// MobilizerVelocities returns the fixed-size segment of the velocity vector
// owned by the given mobilizer, backed by the context's storage.
func (ctx *Context[T]) MobilizerVelocities(m MobilizerIndex) ([]T, error) {
	if int(m) < 0 || int(m) >= len(ctx.topology.mobilizerToNode) {
		return nil, NewPreconditionViolationError("no mobilizer with index %d", m)
	}
	nt := ctx.topology.nodes[ctx.topology.mobilizerToNode[m]]
	return ctx.v[nt.VelocitiesStart : nt.VelocitiesStart+nt.NumVelocities], nil
}

// SetZeroConfiguration resets every mobilizer to the identity relative pose
// and zero rate.
func (ctx *Context[T]) SetZeroConfiguration() {
	var zero T
	for i := range ctx.q {
		ctx.q[i] = zero
	}
	for i := range ctx.v {
		ctx.v[i] = zero
	}
}
