package vine

// Coordinator is the native-tier registry: it owns the promoted counterparts
// of graph nodes, keyed by native tag, and re-evaluates them on its own
// schedule. It shares the range mapper with the scripting tier (same process,
// same arithmetic), so both tiers agree on every input by construction.
//
// Lookups that miss, or that resolve to a node of the wrong kind, are fatal
// consistency errors — never a silent default.
type Coordinator struct {
	nodes map[uint32]*nativeNode
}

// nativeNode is a registered counterpart. Value nodes carry only value;
// interpolation nodes carry their exported config.
type nativeNode struct {
	kind  string
	value float64
	cfg   NativeConfig
}

// NewCoordinator creates an empty registry.
func NewCoordinator() *Coordinator {
	return &Coordinator{nodes: make(map[uint32]*nativeNode)}
}

// NumNodes returns the number of registered nodes.
func (c *Coordinator) NumNodes() int {
	return len(c.nodes)
}

// RegisterNode adds a promoted node under id. Registering an id twice, or
// with a kind that contradicts the config's discriminator, is a consistency
// error. Interpolation configs are validated here so evaluation never has to.
func (c *Coordinator) RegisterNode(id uint32, kind string, cfg NativeConfig) error {
	if _, exists := c.nodes[id]; exists {
		return errf(ErrConsistency, "native node %d is already registered", id)
	}
	if cfg.Type != "" && cfg.Type != kind {
		return errf(ErrConsistency, "native node %d kind %q contradicts config type %q", id, kind, cfg.Type)
	}

	switch kind {
	case KindValue:
		c.nodes[id] = &nativeNode{kind: kind, value: cfg.Value}
		return nil
	case KindInterpolation:
		if err := checkInputRange(cfg.InputRange); err != nil {
			return err
		}
		if len(cfg.OutputRange) != len(cfg.InputRange) {
			return errf(ErrConfig, "native node %d: outputRange length %d does not match inputRange length %d",
				id, len(cfg.OutputRange), len(cfg.InputRange))
		}
		if !cfg.IsOutputRangeAnimations {
			if err := checkInfiniteRange("outputRange", cfg.OutputRange); err != nil {
				return err
			}
		}
		c.nodes[id] = &nativeNode{kind: kind, cfg: cfg}
		return nil
	}
	return errf(ErrConsistency, "unknown native node kind %q", kind)
}

// UnregisterNode removes a node from the registry. Unknown ids are a
// consistency error.
func (c *Coordinator) UnregisterNode(id uint32) error {
	if _, ok := c.nodes[id]; !ok {
		return errf(ErrConsistency, "native node %d is not registered", id)
	}
	delete(c.nodes, id)
	return nil
}

// SetNodeValue writes a value node's scalar. Interpolation nodes are derived,
// not written.
func (c *Coordinator) SetNodeValue(id uint32, v float64) error {
	n, ok := c.nodes[id]
	if !ok {
		return errf(ErrConsistency, "native node %d is not registered", id)
	}
	if n.kind != KindValue {
		return errf(ErrConsistency, "native node %d is a %s node, not a value node", id, n.kind)
	}
	n.value = v
	return nil
}

// GetNodeValue evaluates a node: a value node returns its scalar,
// an interpolation node pulls its parent's value through the range mapper.
// This is a pull, like the scripting tier — nothing updates until asked.
func (c *Coordinator) GetNodeValue(id uint32) (float64, error) {
	n, ok := c.nodes[id]
	if !ok {
		return 0, errf(ErrConsistency, "native node %d is not registered", id)
	}
	switch n.kind {
	case KindValue:
		return n.value, nil
	case KindInterpolation:
		return c.evalInterpolation(id, n)
	}
	return 0, errf(ErrConsistency, "native node %d has unknown kind %q", id, n.kind)
}

func (c *Coordinator) evalInterpolation(id uint32, n *nativeNode) (float64, error) {
	x, err := c.GetNodeValue(n.cfg.Parent)
	if err != nil {
		return 0, err
	}

	in := n.cfg.InputRange
	i := findRangeIndex(x, in)

	var outMin, outMax float64
	if n.cfg.IsOutputRangeAnimations {
		outMin, err = c.rangeNodeValue(id, n.cfg.OutputRange[i])
		if err != nil {
			return 0, err
		}
		outMax, err = c.rangeNodeValue(id, n.cfg.OutputRange[i+1])
		if err != nil {
			return 0, err
		}
	} else {
		outMin, outMax = n.cfg.OutputRange[i], n.cfg.OutputRange[i+1]
	}

	left, err := ParseExtrapolate(n.cfg.ExtrapolateLeft)
	if err != nil {
		return 0, errf(ErrType, "native node %d: unknown left extrapolation %q", id, n.cfg.ExtrapolateLeft)
	}
	right, err := ParseExtrapolate(n.cfg.ExtrapolateRight)
	if err != nil {
		return 0, errf(ErrType, "native node %d: unknown right extrapolation %q", id, n.cfg.ExtrapolateRight)
	}

	return interpolateSegment(x, in[i], in[i+1], outMin, outMax, nil, left, right)
}

// rangeNodeValue resolves one node-valued output range entry through the
// registry. The tag must name a registered, value-producing node.
func (c *Coordinator) rangeNodeValue(owner uint32, tag float64) (float64, error) {
	ref, ok := c.nodes[uint32(tag)]
	if !ok {
		return 0, errf(ErrConsistency, "native node %d: output range references unregistered node %v", owner, tag)
	}
	switch ref.kind {
	case KindValue:
		return ref.value, nil
	case KindInterpolation:
		return c.GetNodeValue(uint32(tag))
	}
	return 0, errf(ErrConsistency, "native node %d: output range references %s node %v", owner, ref.kind, tag)
}
