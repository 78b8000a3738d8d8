package vine

import (
	"sort"

	"github.com/goccy/go-yaml"
)

// GraphConfig is the declarative form of a value graph. Both evaluation tiers
// are built from the same document, which is what keeps them numerically
// consistent: load it, evaluate in-process, and promote to a Coordinator.
//
//	values:
//	  progress: 0
//	interpolations:
//	  opacity:
//	    parent: progress
//	    inputRange: [0, 1]
//	    outputRange: [0, 1]
//	    easing: out-quad
//	    extrapolate: clamp
type GraphConfig struct {
	Values         map[string]float64           `yaml:"values"`
	Interpolations map[string]InterpolationSpec `yaml:"interpolations"`
}

// InterpolationSpec declares one interpolation node. Parent may name a value
// node or another interpolation. Exactly one of OutputRange (numbers or
// strings) and OutputRangeNodes (names of other nodes) must be set.
type InterpolationSpec struct {
	Parent           string    `yaml:"parent"`
	InputRange       []float64 `yaml:"inputRange"`
	OutputRange      []any     `yaml:"outputRange"`
	OutputRangeNodes []string  `yaml:"outputRangeNodes"`
	Easing           string    `yaml:"easing"`
	Extrapolate      string    `yaml:"extrapolate"`
	ExtrapolateLeft  string    `yaml:"extrapolateLeft"`
	ExtrapolateRight string    `yaml:"extrapolateRight"`
}

// Graph is a loaded, attached value graph with nodes addressable by name.
type Graph struct {
	values  map[string]*ValueNode
	interps map[string]*InterpolationNode
}

// LoadGraph builds a Graph from a YAML document. All nodes are constructed,
// validated, and attached; configuration problems (unknown names, dependency
// cycles, malformed ranges) fail here.
func LoadGraph(data []byte) (*Graph, error) {
	var cfg GraphConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errf(ErrConfig, "parsing graph config: %v", err)
	}

	g := &Graph{
		values:  make(map[string]*ValueNode, len(cfg.Values)),
		interps: make(map[string]*InterpolationNode, len(cfg.Interpolations)),
	}
	for name, v := range cfg.Values {
		if _, dup := cfg.Interpolations[name]; dup {
			return nil, errf(ErrConfig, "node %q declared as both value and interpolation", name)
		}
		g.values[name] = NewValue(v)
	}

	// Interpolations may depend on each other; build in passes until no
	// progress remains. A stuck pass means an unknown name or a cycle.
	pending := make(map[string]InterpolationSpec, len(cfg.Interpolations))
	for name, spec := range cfg.Interpolations {
		pending[name] = spec
	}
	for len(pending) > 0 {
		progress := false
		for _, name := range sortedKeys(pending) {
			spec := pending[name]
			ready, err := g.specReady(spec, pending)
			if err != nil {
				return nil, errf(ErrConfig, "interpolation %q: %v", name, err)
			}
			if !ready {
				continue
			}
			node, err := g.buildInterpolation(spec)
			if err != nil {
				return nil, errf(ErrConfig, "interpolation %q: %v", name, err)
			}
			node.Attach()
			g.interps[name] = node
			delete(pending, name)
			progress = true
		}
		if !progress {
			return nil, errf(ErrConfig, "unresolvable interpolations %v: unknown node or dependency cycle",
				sortedKeys(pending))
		}
	}
	return g, nil
}

// specReady reports whether every node the spec names has been built. A name
// that is neither built nor pending can never resolve and is an error.
func (g *Graph) specReady(spec InterpolationSpec, pending map[string]InterpolationSpec) (bool, error) {
	names := append([]string{spec.Parent}, spec.OutputRangeNodes...)
	for _, name := range names {
		if name == "" {
			return false, errf(ErrConfig, "missing node name")
		}
		if g.node(name) != nil {
			continue
		}
		if _, ok := pending[name]; ok {
			return false, nil
		}
		return false, errf(ErrConfig, "unknown node %q", name)
	}
	return true, nil
}

func (g *Graph) buildInterpolation(spec InterpolationSpec) (*InterpolationNode, error) {
	parent := g.node(spec.Parent)

	output, err := buildOutput(g, spec)
	if err != nil {
		return nil, err
	}
	easing, err := EasingByName(spec.Easing)
	if err != nil {
		return nil, err
	}
	extrapolate, err := ParseExtrapolate(spec.Extrapolate)
	if err != nil {
		return nil, err
	}
	left, err := ParseExtrapolate(spec.ExtrapolateLeft)
	if err != nil {
		return nil, err
	}
	right, err := ParseExtrapolate(spec.ExtrapolateRight)
	if err != nil {
		return nil, err
	}

	return NewInterpolation(parent, Config{
		InputRange:       spec.InputRange,
		Output:           output,
		Easing:           easing,
		Extrapolate:      extrapolate,
		ExtrapolateLeft:  left,
		ExtrapolateRight: right,
	})
}

func buildOutput(g *Graph, spec InterpolationSpec) (Output, error) {
	if len(spec.OutputRangeNodes) > 0 {
		if len(spec.OutputRange) > 0 {
			return Output{}, errf(ErrConfig, "outputRange and outputRangeNodes are mutually exclusive")
		}
		nodes := make([]Node, len(spec.OutputRangeNodes))
		for i, name := range spec.OutputRangeNodes {
			nodes[i] = g.node(name)
		}
		return NodeRange(nodes...), nil
	}

	if len(spec.OutputRange) == 0 {
		return Output{}, errf(ErrConfig, "output range is empty")
	}
	switch spec.OutputRange[0].(type) {
	case string:
		strs := make([]string, len(spec.OutputRange))
		for i, v := range spec.OutputRange {
			s, ok := v.(string)
			if !ok {
				return Output{}, errf(ErrConfig, "outputRange mixes strings and numbers")
			}
			strs[i] = s
		}
		return Strings(strs...), nil
	default:
		nums := make([]float64, len(spec.OutputRange))
		for i, v := range spec.OutputRange {
			f, ok := toFloat(v)
			if !ok {
				return Output{}, errf(ErrConfig, "outputRange entry %v is neither number nor string", v)
			}
			nums[i] = f
		}
		return Numbers(nums...), nil
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// node looks up any built node by name, value or interpolation.
func (g *Graph) node(name string) Node {
	if n, ok := g.values[name]; ok {
		return n
	}
	if n, ok := g.interps[name]; ok {
		return n
	}
	return nil
}

// Value returns the named value node, or nil.
func (g *Graph) Value(name string) *ValueNode {
	return g.values[name]
}

// Interpolation returns the named interpolation node, or nil.
func (g *Graph) Interpolation(name string) *InterpolationNode {
	return g.interps[name]
}

// CurrentValue evaluates the named interpolation.
func (g *Graph) CurrentValue(name string) (any, error) {
	n, ok := g.interps[name]
	if !ok {
		return nil, errf(ErrConfig, "unknown interpolation %q", name)
	}
	return n.CurrentValue()
}

// MakeNative promotes every node in the graph into the coordinator, values
// first, in name order.
func (g *Graph) MakeNative(c *Coordinator) error {
	for _, name := range sortedKeys(g.values) {
		if err := g.values[name].MakeNative(c); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(g.interps) {
		if err := g.interps[name].MakeNative(c); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
