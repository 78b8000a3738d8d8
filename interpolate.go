package vine

import (
	"math"
)

// Config describes an interpolation: a piecewise mapping from InputRange to
// Output, with optional easing and per-side extrapolation. Configs are
// immutable once handed to NewInterpolation; the compiled mapper is built once
// and never rebuilt.
type Config struct {
	// InputRange is the breakpoint sequence, length >= 2, non-decreasing.
	// Equal adjacent values denote a step.
	InputRange []float64

	// Output holds the values interpolated between, one per breakpoint.
	// Build it with Numbers, Strings, or NodeRange.
	Output Output

	// Easing remaps segment progress. nil means identity.
	Easing Easing

	// Extrapolate is the default for both sides. ExtrapolateLeft and
	// ExtrapolateRight override it independently. All three default to
	// ExtrapolateExtend when unset.
	Extrapolate      Extrapolate
	ExtrapolateLeft  Extrapolate
	ExtrapolateRight Extrapolate
}

func (c Config) effectiveLeft() Extrapolate {
	if c.ExtrapolateLeft != extrapolateUnset {
		return c.ExtrapolateLeft
	}
	if c.Extrapolate != extrapolateUnset {
		return c.Extrapolate
	}
	return ExtrapolateExtend
}

func (c Config) effectiveRight() Extrapolate {
	if c.ExtrapolateRight != extrapolateUnset {
		return c.ExtrapolateRight
	}
	if c.Extrapolate != extrapolateUnset {
		return c.Extrapolate
	}
	return ExtrapolateExtend
}

// Output is the output side of an interpolation. Exactly one of the three
// variants is populated; the variant is fixed at construction and never
// re-inspected during evaluation.
type Output struct {
	numbers []float64
	strings []string
	nodes   []Node
}

// Numbers builds a numeric output range.
func Numbers(vals ...float64) Output {
	return Output{numbers: append([]float64(nil), vals...)}
}

// Strings builds a string output range. All entries must share one textual
// template: identical text with numeric tokens at the same positions.
// Recognized colors are allowed in any notation (named, hex, rgb/rgba) and
// are canonicalized before template matching.
func Strings(vals ...string) Output {
	return Output{strings: append([]string(nil), vals...)}
}

// NodeRange builds an output range whose entries are other nodes in the
// graph. Each entry must resolve to a scalar at evaluation time.
func NodeRange(nodes ...Node) Output {
	return Output{nodes: append([]Node(nil), nodes...)}
}

// checkInputRange validates breakpoints at construction time so evaluation
// never has to.
func checkInputRange(in []float64) error {
	if len(in) < 2 {
		return errf(ErrConfig, "inputRange needs at least 2 entries, got %d", len(in))
	}
	for i := 1; i < len(in); i++ {
		if in[i] < in[i-1] {
			return errf(ErrConfig, "inputRange must be non-decreasing: entry %d (%v) < entry %d (%v)",
				i, in[i], i-1, in[i-1])
		}
	}
	return checkInfiniteRange("inputRange", in)
}

// checkInfiniteRange rejects the degenerate sole segment (-Inf, +Inf), which
// has no finite anchor to map through.
func checkInfiniteRange(name string, r []float64) error {
	if len(r) == 2 && math.IsInf(r[0], -1) && math.IsInf(r[1], 1) {
		return errf(ErrConfig, "%s cannot be the single segment (-Inf, +Inf)", name)
	}
	return nil
}

// findRangeIndex picks the segment for x: a left-biased linear scan starting
// at the second breakpoint, stopping at the first one >= x. Exact hits on a
// shared breakpoint therefore land in the lower segment, values below the
// range in the first segment, values above it in the last. Consumers depend
// on this exact tie-break; do not replace it with a binary search.
func findRangeIndex(x float64, inputRange []float64) int {
	i := 1
	for ; i < len(inputRange)-1; i++ {
		if inputRange[i] >= x {
			break
		}
	}
	return i - 1
}

// interpolateSegment maps x across one segment. The native tier evaluates
// through this same function (minus easing, which does not cross the wire),
// so the two tiers agree by construction.
func interpolateSegment(x, inMin, inMax, outMin, outMax float64, easing Easing, left, right Extrapolate) (float64, error) {
	result := x

	if result < inMin {
		switch left {
		case ExtrapolateIdentity:
			return result, nil
		case ExtrapolateClamp:
			result = inMin
		case ExtrapolateExtend:
		default:
			return 0, errf(ErrType, "invalid left extrapolation mode %d", left)
		}
	}

	if result > inMax {
		switch right {
		case ExtrapolateIdentity:
			return result, nil
		case ExtrapolateClamp:
			result = inMax
		case ExtrapolateExtend:
		default:
			return 0, errf(ErrType, "invalid right extrapolation mode %d", right)
		}
	}

	if outMin == outMax {
		return outMin, nil
	}
	if inMin == inMax {
		if x <= inMin {
			return outMin, nil
		}
		return outMax, nil
	}

	// Normalize into [0, 1] over the segment. A half-infinite bound collapses
	// to a shifted identity rather than a division by infinity.
	switch {
	case math.IsInf(inMin, -1):
		result = -result
	case math.IsInf(inMax, 1):
		result = result - inMin
	default:
		result = (result - inMin) / (inMax - inMin)
	}

	if easing != nil {
		result = easing(result)
	}

	// Denormalize into the output segment, mirroring the infinite-bound cases.
	switch {
	case math.IsInf(outMin, -1):
		result = -result
	case math.IsInf(outMax, 1):
		result = result + outMin
	default:
		result = result*(outMax-outMin) + outMin
	}

	return result, nil
}

// newNumericMapper compiles a Config with a numeric output range into a pure
// mapping function. All validation happens here, once.
func newNumericMapper(cfg Config) (func(float64) (float64, error), error) {
	if err := checkInputRange(cfg.InputRange); err != nil {
		return nil, err
	}
	out := cfg.Output.numbers
	if len(out) != len(cfg.InputRange) {
		return nil, errf(ErrConfig, "outputRange length %d does not match inputRange length %d",
			len(out), len(cfg.InputRange))
	}
	if err := checkInfiniteRange("outputRange", out); err != nil {
		return nil, err
	}

	in := cfg.InputRange
	easing := cfg.Easing
	left, right := cfg.effectiveLeft(), cfg.effectiveRight()
	return func(x float64) (float64, error) {
		i := findRangeIndex(x, in)
		return interpolateSegment(x, in[i], in[i+1], out[i], out[i+1], easing, left, right)
	}, nil
}

// newNodeMapper compiles a Config whose output range references other nodes.
// Segment endpoints are resolved to scalars at every evaluation; a reference
// that does not produce a scalar is an evaluation-time type error.
func newNodeMapper(cfg Config) (func(float64) (float64, error), error) {
	if err := checkInputRange(cfg.InputRange); err != nil {
		return nil, err
	}
	nodes := cfg.Output.nodes
	if len(nodes) != len(cfg.InputRange) {
		return nil, errf(ErrConfig, "outputRange length %d does not match inputRange length %d",
			len(nodes), len(cfg.InputRange))
	}
	for i, n := range nodes {
		if n == nil {
			return nil, errf(ErrConfig, "outputRange node entry %d is nil", i)
		}
	}

	in := cfg.InputRange
	easing := cfg.Easing
	left, right := cfg.effectiveLeft(), cfg.effectiveRight()
	return func(x float64) (float64, error) {
		i := findRangeIndex(x, in)
		outMin, err := nodeScalar(nodes[i])
		if err != nil {
			return 0, err
		}
		outMax, err := nodeScalar(nodes[i+1])
		if err != nil {
			return 0, err
		}
		return interpolateSegment(x, in[i], in[i+1], outMin, outMax, easing, left, right)
	}, nil
}
