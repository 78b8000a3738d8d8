// Package vine is an animation value graph: a dataflow network of nodes whose
// numeric values change over time, with interpolation nodes that remap a
// parent's scalar through a piecewise function into numbers or strings a
// rendering layer can consume.
//
// Vine does no scheduling of its own. Drivers (timers, springs, user code)
// write root values; consumers pull interpolated values when they need them.
// The same graph can also be promoted to a native-tier [Coordinator], which
// re-evaluates an exported copy of the configuration on its own clock with
// identical numeric results.
//
// # Quick start
//
//	progress := vine.NewValue(0)
//	opacity, err := vine.NewInterpolation(progress, vine.Config{
//		InputRange:  []float64{0, 1},
//		Output:      vine.Numbers(0, 1),
//		Extrapolate: vine.ExtrapolateClamp,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	opacity.Attach()
//
//	progress.SetValue(0.25)
//	v, _ := opacity.CurrentValue() // 0.25
//
// # Output ranges
//
// An output range holds exactly one kind of value, fixed at construction:
//
//   - [Numbers] — plain scalars.
//   - [Strings] — strings sharing one textual template ("0deg", "90deg";
//     "rgba(0, 0, 0, 0)", "#ff6347"). Each embedded numeric token becomes an
//     independently interpolated channel, and recognized colors in any
//     notation are canonicalized to rgba() first.
//   - [NodeRange] — references to other nodes, resolved to scalars at every
//     evaluation.
//
// Easing curves plug in via [EaseFunc], which adapts any curve from
// [gween/ease]:
//
//	cfg.Easing = vine.EaseFunc(ease.OutBounce)
//
// # Declarative graphs
//
// [LoadGraph] builds a whole graph from one YAML document, the same document
// both tiers derive from:
//
//	values:
//	  progress: 0
//	interpolations:
//	  angle:
//	    parent: progress
//	    inputRange: [0, 1]
//	    outputRange: ["0deg", "360deg"]
//
// # Promotion
//
// MakeNative moves a node's evaluation to a [Coordinator]: dependencies
// promote first (exactly once each, however often they are shared), then the
// node registers its exported config. Promotion is one-way; tear down with
// Detach and rebuild to return to in-process evaluation.
//
// [gween/ease]: https://github.com/tanema/gween
package vine
