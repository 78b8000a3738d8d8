package vine

import "github.com/tanema/gween/ease"

// Easing remaps a normalized progress value. It receives the input position
// normalized into [0, 1] over the active segment and returns the (possibly
// overshooting) progress used to pick the output value. nil means identity.
//
// Any curve from [gween/ease] can be used via EaseFunc:
//
//	cfg.Easing = vine.EaseFunc(ease.OutBounce)
//
// [gween/ease]: https://github.com/tanema/gween
type Easing func(t float64) float64

// EaseFunc adapts a gween easing curve to an Easing. The curve is sampled
// over a unit tween (begin 0, change 1, duration 1).
func EaseFunc(fn ease.TweenFunc) Easing {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// easings maps declarative config names to gween curves.
var easings = map[string]ease.TweenFunc{
	"linear":         ease.Linear,
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-quart":       ease.InQuart,
	"out-quart":      ease.OutQuart,
	"in-out-quart":   ease.InOutQuart,
	"in-quint":       ease.InQuint,
	"out-quint":      ease.OutQuint,
	"in-out-quint":   ease.InOutQuint,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"in-circ":        ease.InCirc,
	"out-circ":       ease.OutCirc,
	"in-out-circ":    ease.InOutCirc,
	"in-back":        ease.InBack,
	"out-back":       ease.OutBack,
	"in-out-back":    ease.InOutBack,
	"in-bounce":      ease.InBounce,
	"out-bounce":     ease.OutBounce,
	"in-out-bounce":  ease.InOutBounce,
	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
}

// EasingByName resolves a declarative easing name ("linear", "out-quad",
// "in-out-bounce", ...) to an Easing. The empty string resolves to identity.
func EasingByName(name string) (Easing, error) {
	if name == "" {
		return nil, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, errf(ErrConfig, "unknown easing %q", name)
	}
	return EaseFunc(fn), nil
}
