package vine

// Node is the unit of the value graph. Nodes track their children (the nodes
// that read them), support attach/detach edge maintenance, and can be
// promoted to a native-resident counterpart owned by a Coordinator.
//
// The node set is closed: concrete types are ValueNode and InterpolationNode.
type Node interface {
	// NodeID returns the node's graph-local identity.
	NodeID() uint32

	// Children returns the nodes currently attached to this one, in
	// insertion order. The returned slice MUST NOT be mutated by the caller.
	Children() []Node

	// NativeTag returns the node's native registry identifier. ok is false
	// until the node has been promoted.
	NativeTag() (uint32, bool)

	// MakeNative promotes this node and, first, its entire dependency
	// subgraph into the coordinator's registry. Promoting an already
	// promoted node is a no-op, so shared dependencies promote exactly once.
	MakeNative(c *Coordinator) error

	addChild(child Node)
	removeChild(child Node)
}

// ValueSource is implemented by nodes that resolve to a scalar. A node used
// as an interpolation parent or as a node-valued output range entry must
// satisfy it at evaluation time.
type ValueSource interface {
	Node
	Value() (float64, error)
}

// nodeScalar resolves a node to a scalar, failing with a type error for
// nodes that do not produce one.
func nodeScalar(n Node) (float64, error) {
	src, ok := n.(ValueSource)
	if !ok {
		return 0, errf(ErrType, "node %d does not produce a scalar value", n.NodeID())
	}
	return src.Value()
}

// nodeIDCounter is a plain counter (no atomic — a graph tier is
// single-threaded by contract).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// nativeTagCounter issues registry identifiers, shared across coordinators so
// a tag never means two different nodes.
var nativeTagCounter uint32

func nextNativeTag() uint32 {
	nativeTagCounter++
	return nativeTagCounter
}

// baseNode carries the state shared by all node types: identity, the ordered
// duplicate-free child list, and the native promotion handle.
type baseNode struct {
	id        uint32
	children  []Node
	nativeTag uint32
	coord     *Coordinator
}

func (b *baseNode) NodeID() uint32 {
	return b.id
}

func (b *baseNode) Children() []Node {
	return b.children
}

func (b *baseNode) NativeTag() (uint32, bool) {
	return b.nativeTag, b.nativeTag != 0
}

func (b *baseNode) addChild(child Node) {
	for _, c := range b.children {
		if c == child {
			return
		}
	}
	b.children = append(b.children, child)
}

// removeChild uses copy+nil to avoid retaining a dangling reference in the
// backing array.
func (b *baseNode) removeChild(child Node) {
	for i, c := range b.children {
		if c == child {
			copy(b.children[i:], b.children[i+1:])
			b.children[len(b.children)-1] = nil
			b.children = b.children[:len(b.children)-1]
			return
		}
	}
}

// checkCoordinator enforces one-shot promotion: a node already resident in a
// registry cannot be promoted into a different one.
func (b *baseNode) checkCoordinator(c *Coordinator) error {
	if b.coord != nil && b.coord != c {
		return errf(ErrConsistency, "node %d is already promoted to a different coordinator", b.id)
	}
	return nil
}

// teardownNative unregisters the node's native counterpart, if any. The
// native handle is cleared unconditionally so a failed teardown cannot leave
// the node half promoted.
func (b *baseNode) teardownNative() error {
	if b.nativeTag == 0 {
		return nil
	}
	err := b.coord.UnregisterNode(b.nativeTag)
	b.nativeTag = 0
	b.coord = nil
	return err
}

// ValueNode is a scalar source: the root of an interpolation chain. Animation
// drivers (or anything else) write it; interpolation nodes read it on demand.
type ValueNode struct {
	baseNode
	value float64
}

// NewValue creates a detached scalar node holding v.
func NewValue(v float64) *ValueNode {
	return &ValueNode{baseNode: baseNode{id: nextNodeID()}, value: v}
}

// Value returns the node's current scalar. Never fails.
func (n *ValueNode) Value() (float64, error) {
	return n.value, nil
}

// SetValue updates the node's scalar. If the node has been promoted, the new
// value is forwarded to the native registry so both tiers keep reading the
// same upstream input.
func (n *ValueNode) SetValue(v float64) error {
	n.value = v
	if n.nativeTag != 0 {
		return n.coord.SetNodeValue(n.nativeTag, v)
	}
	return nil
}

// MakeNative registers the node's current value with the coordinator.
func (n *ValueNode) MakeNative(c *Coordinator) error {
	if err := n.checkCoordinator(c); err != nil {
		return err
	}
	if n.nativeTag != 0 {
		return nil
	}
	tag := nextNativeTag()
	err := c.RegisterNode(tag, KindValue, NativeConfig{Type: KindValue, Value: n.value})
	if err != nil {
		return err
	}
	n.nativeTag = tag
	n.coord = c
	return nil
}

// Detach tears down the node's native counterpart, if any. A value node has
// no parents, so there are no graph edges to remove on its side.
func (n *ValueNode) Detach() error {
	return n.teardownNative()
}

var _ ValueSource = (*ValueNode)(nil)
