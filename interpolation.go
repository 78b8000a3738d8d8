package vine

import (
	"math"
	"strings"
)

// Node kind discriminators, used both in NativeConfig.Type and as the kind
// argument to Coordinator.RegisterNode.
const (
	KindValue         = "value"
	KindInterpolation = "interpolation"
)

// NativeConfig is the wire contract between a promoted node and the
// Coordinator: everything the native tier needs to rebuild an equivalent
// evaluator. Field names follow the serialized form.
type NativeConfig struct {
	Type string `json:"type"`

	// Value nodes.
	Value float64 `json:"value,omitempty"`

	// Interpolation nodes. OutputRange holds plain numbers, or native tags
	// when IsOutputRangeAnimations is set. String output ranges cross the
	// wire as radians (see transformDataValue).
	Parent                  uint32    `json:"parent,omitempty"`
	InputRange              []float64 `json:"inputRange,omitempty"`
	OutputRange             []float64 `json:"outputRange,omitempty"`
	IsOutputRangeAnimations bool      `json:"isOutputRangeAnimations,omitempty"`
	ExtrapolateLeft         string    `json:"extrapolateLeft,omitempty"`
	ExtrapolateRight        string    `json:"extrapolateRight,omitempty"`
}

// compiledMapper is the tagged result of compiling a Config: exactly one
// field is set, fixed at construction.
type compiledMapper struct {
	numeric func(float64) (float64, error)
	str     func(float64) (string, error)
}

// InterpolationNode maps its parent's scalar through a piecewise range
// mapping. The parent is shared, not owned: it may feed any number of other
// children.
type InterpolationNode struct {
	baseNode
	parent   Node
	cfg      Config
	mapper   compiledMapper
	attached bool
}

// NewInterpolation creates a detached interpolation node reading from parent.
// The config is validated and compiled here, once; configuration errors never
// surface later than this call. The node is not yet an edge in the graph —
// call Attach.
func NewInterpolation(parent Node, cfg Config) (*InterpolationNode, error) {
	if parent == nil {
		return nil, errf(ErrConfig, "interpolation parent must not be nil")
	}
	cfg.InputRange = append([]float64(nil), cfg.InputRange...)

	var mapper compiledMapper
	var err error
	switch {
	case cfg.Output.strings != nil:
		mapper.str, err = newStringMapper(cfg)
	case cfg.Output.nodes != nil:
		mapper.numeric, err = newNodeMapper(cfg)
	case cfg.Output.numbers != nil:
		mapper.numeric, err = newNumericMapper(cfg)
	default:
		err = errf(ErrConfig, "output range is empty")
	}
	if err != nil {
		return nil, err
	}

	return &InterpolationNode{
		baseNode: baseNode{id: nextNodeID()},
		parent:   parent,
		cfg:      cfg,
		mapper:   mapper,
	}, nil
}

// Parent returns the node this interpolation reads from.
func (n *InterpolationNode) Parent() Node {
	return n.parent
}

// Attach registers this node as a child of its parent and of every
// node-valued output range entry. Side effect only: nothing is evaluated.
func (n *InterpolationNode) Attach() {
	n.parent.addChild(n)
	for _, dep := range n.cfg.Output.nodes {
		dep.addChild(n)
	}
	n.attached = true
}

// Detach removes this node's graph edges and tears down its native
// counterpart. Edges are removed even when native teardown fails; the
// teardown error is still returned. After Detach the node can be re-attached,
// starting a fresh lifecycle.
func (n *InterpolationNode) Detach() error {
	n.parent.removeChild(n)
	for _, dep := range n.cfg.Output.nodes {
		dep.removeChild(n)
	}
	n.attached = false
	return n.teardownNative()
}

// Attached reports whether the node is currently an edge in the graph.
func (n *InterpolationNode) Attached() bool {
	return n.attached
}

// CurrentValue pulls the parent's scalar through the compiled mapper and
// returns a float64 or, for string output ranges, a string. Nothing is
// recomputed until asked, and nothing is cached across calls.
func (n *InterpolationNode) CurrentValue() (any, error) {
	x, err := nodeScalar(n.parent)
	if err != nil {
		return nil, err
	}
	if n.mapper.str != nil {
		s, err := n.mapper.str(x)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return n.mapper.numeric(x)
}

// Value resolves the node as a scalar so interpolations can chain: an
// interpolation node is a valid parent (or output range entry) for another.
// String-valued interpolations fail with a type error.
func (n *InterpolationNode) Value() (float64, error) {
	if n.mapper.str != nil {
		return 0, errf(ErrType, "string-valued interpolation node %d used as a scalar", n.id)
	}
	x, err := nodeScalar(n.parent)
	if err != nil {
		return 0, err
	}
	return n.mapper.numeric(x)
}

// MakeNative promotes the dependency subgraph depth-first — parent first,
// then node-valued output range entries, then this node — and registers the
// exported config. Already promoted dependencies are skipped, so a shared
// ancestor promotes exactly once.
func (n *InterpolationNode) MakeNative(c *Coordinator) error {
	if err := n.checkCoordinator(c); err != nil {
		return err
	}
	if n.nativeTag != 0 {
		return nil
	}
	if err := n.parent.MakeNative(c); err != nil {
		return err
	}
	for _, dep := range n.cfg.Output.nodes {
		if err := dep.MakeNative(c); err != nil {
			return err
		}
	}
	cfg, err := n.ExportConfig()
	if err != nil {
		return err
	}
	tag := nextNativeTag()
	if err := c.RegisterNode(tag, KindInterpolation, cfg); err != nil {
		return err
	}
	n.nativeTag = tag
	n.coord = c
	return nil
}

// ExportConfig produces the serializable description the Coordinator
// consumes. The parent and any node-valued output range entries must already
// be promoted; a missing native counterpart is a consistency error.
func (n *InterpolationNode) ExportConfig() (NativeConfig, error) {
	parentTag, ok := n.parent.NativeTag()
	if !ok {
		return NativeConfig{}, errf(ErrConsistency,
			"no native counterpart available for parent of node %d", n.id)
	}

	var out []float64
	var isAnimations bool
	switch {
	case n.cfg.Output.numbers != nil:
		out = append([]float64(nil), n.cfg.Output.numbers...)
	case n.cfg.Output.strings != nil:
		out = make([]float64, len(n.cfg.Output.strings))
		for i, s := range n.cfg.Output.strings {
			out[i] = transformDataValue(s)
		}
	case n.cfg.Output.nodes != nil:
		isAnimations = true
		out = make([]float64, len(n.cfg.Output.nodes))
		for i, dep := range n.cfg.Output.nodes {
			tag, ok := dep.NativeTag()
			if !ok {
				return NativeConfig{}, errf(ErrConsistency,
					"no native counterpart available for output range node %d", dep.NodeID())
			}
			out[i] = float64(tag)
		}
	}

	return NativeConfig{
		Type:                    KindInterpolation,
		Parent:                  parentTag,
		InputRange:              append([]float64(nil), n.cfg.InputRange...),
		OutputRange:             out,
		IsOutputRangeAnimations: isAnimations,
		ExtrapolateLeft:         n.cfg.effectiveLeft().String(),
		ExtrapolateRight:        n.cfg.effectiveRight().String(),
	}, nil
}

// transformDataValue converts a string output range entry to the radians the
// native tier works in: trailing "deg" converts from degrees, anything else
// numeric-looking is taken as already being radians.
func transformDataValue(s string) float64 {
	if strings.HasSuffix(s, "deg") {
		return parseLeadingFloat(s) * math.Pi / 180
	}
	return parseLeadingFloat(s)
}

var _ ValueSource = (*InterpolationNode)(nil)
