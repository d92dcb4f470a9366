package multibody

// BodyNodeTopology is the compiled record for one node of the tree: one body
// paired with the single mobilizer attaching it to its parent, plus the dense
// generalized-coordinate segments assigned to that mobilizer.
type BodyNodeTopology struct {
	// Index is this node's position in traversal order. The parent index of
	// every node but the world is strictly smaller.
	Index BodyNodeIndex
	// Parent is the node index of the parent body; -1 for the world node.
	Parent BodyNodeIndex
	// Children are the node indexes of the outboard bodies, in ascending order.
	Children []BodyNodeIndex
	// Body is the body compiled into this node.
	Body BodyIndex
	// Mobilizer attaches Body to its parent; -1 for the world node.
	Mobilizer MobilizerIndex
	// PositionsStart and NumPositions delimit this node's segment of the
	// generalized position vector.
	PositionsStart, NumPositions int
	// VelocitiesStart and NumVelocities delimit this node's segment of the
	// generalized velocity vector.
	VelocitiesStart, NumVelocities int
}

// Topology is the immutable compiled form of a MultibodyTree: the traversal
// ordering, the element-to-node index maps, and the total generalized
// coordinate counts. It is produced exactly once by Finalize and is safe to
// share read-only across any number of contexts.
type Topology struct {
	nodes           []BodyNodeTopology
	bodyToNode      []BodyNodeIndex // indexed by BodyIndex
	mobilizerToNode []BodyNodeIndex // indexed by MobilizerIndex
	numPositions    int
	numVelocities   int
	numFrames       int
}

// NumBodies returns the number of bodies, the world included.
func (t *Topology) NumBodies() int { return len(t.nodes) }

// NumBodyNodes returns the number of compiled nodes, equal to NumBodies.
func (t *Topology) NumBodyNodes() int { return len(t.nodes) }

// NumFrames returns the number of frames registered with the tree.
func (t *Topology) NumFrames() int { return t.numFrames }

// NumMobilizers returns the number of mobilizers.
func (t *Topology) NumMobilizers() int { return len(t.mobilizerToNode) }

// NumPositions returns the total generalized position count.
func (t *Topology) NumPositions() int { return t.numPositions }

// NumVelocities returns the total generalized velocity count.
func (t *Topology) NumVelocities() int { return t.numVelocities }

// Node returns the compiled record for the given node index.
func (t *Topology) Node(n BodyNodeIndex) BodyNodeTopology { return t.nodes[n] }

// NodeOfBody returns the node a body was compiled into.
func (t *Topology) NodeOfBody(b BodyIndex) BodyNodeIndex { return t.bodyToNode[b] }

// NodeOfMobilizer returns the node a mobilizer was compiled into.
func (t *Topology) NodeOfMobilizer(m MobilizerIndex) BodyNodeIndex { return t.mobilizerToNode[m] }
