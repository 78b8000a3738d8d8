package vine

import (
	"math"
	"regexp"
	"strconv"
)

// numericTokenRe matches the embedded numeric tokens of a string template:
// maximal runs of digits, '.', and '-'.
var numericTokenRe = regexp.MustCompile(`[0-9.-]+`)

// rgbPatternRe detects rgb()/rgba() templates, whose first three channels are
// formatted as integers.
var rgbPatternRe = regexp.MustCompile(`^rgba?\(`)

// newStringMapper compiles a Config with a string output range into a
// function producing interpolated strings.
//
// Every entry is first canonicalized through the color normalizer, then all
// entries must reduce to one shared skeleton once numeric tokens are removed.
// Each token position becomes an independent numeric channel with its own
// compiled range mapper; evaluation substitutes the mapped channel values back
// into the first template left to right. Channels of an rgb/rgba template
// round to integers (except alpha); every other channel rounds to 3 decimals.
func newStringMapper(cfg Config) (func(float64) (string, error), error) {
	raw := cfg.Output.strings
	if len(raw) != len(cfg.InputRange) {
		return nil, errf(ErrConfig, "outputRange length %d does not match inputRange length %d",
			len(raw), len(cfg.InputRange))
	}

	templates := make([]string, len(raw))
	for i, s := range raw {
		templates[i] = colorToRGBA(s)
	}

	skeleton := numericTokenRe.ReplaceAllString(templates[0], "")
	for _, tpl := range templates[1:] {
		if numericTokenRe.ReplaceAllString(tpl, "") != skeleton {
			return nil, errf(ErrConfig, "output range strings do not share a template: %q vs %q",
				templates[0], tpl)
		}
	}

	channels := len(numericTokenRe.FindAllString(templates[0], -1))
	if channels == 0 {
		return nil, errf(ErrConfig, "output range template %q has no numeric tokens", templates[0])
	}

	// One numeric sequence per channel, across all entries.
	values := make([][]float64, channels)
	for ch := range values {
		values[ch] = make([]float64, len(templates))
	}
	for e, tpl := range templates {
		toks := numericTokenRe.FindAllString(tpl, -1)
		if len(toks) != channels {
			return nil, errf(ErrConfig, "output range entry %q has %d numeric tokens, template has %d",
				tpl, len(toks), channels)
		}
		for ch, tok := range toks {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, errf(ErrConfig, "bad numeric token %q in output range entry %q", tok, tpl)
			}
			values[ch][e] = v
		}
	}

	// One independent range mapper per channel, sharing the input range,
	// easing, and extrapolation settings.
	mappers := make([]func(float64) (float64, error), channels)
	for ch := range mappers {
		chCfg := cfg
		chCfg.Output = Numbers(values[ch]...)
		m, err := newNumericMapper(chCfg)
		if err != nil {
			return nil, err
		}
		mappers[ch] = m
	}

	template := templates[0]
	isRGB := rgbPatternRe.MatchString(template)
	return func(x float64) (string, error) {
		ch := 0
		var evalErr error
		out := numericTokenRe.ReplaceAllStringFunc(template, func(string) string {
			v, err := mappers[ch](x)
			intChannel := isRGB && ch < 3
			ch++
			if err != nil {
				if evalErr == nil {
					evalErr = err
				}
				return ""
			}
			return formatChannel(v, intChannel)
		})
		if evalErr != nil {
			return "", evalErr
		}
		return out, nil
	}, nil
}

// formatChannel renders one interpolated channel value. Color channels are
// integers; everything else keeps up to 3 decimal places with trailing zeros
// trimmed.
func formatChannel(v float64, intChannel bool) string {
	if intChannel {
		return strconv.Itoa(int(math.Round(v)))
	}
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// parseLeadingFloat reads the first numeric token of a string ("90deg" -> 90,
// "1.5rad" -> 1.5). Strings without a token parse as 0.
func parseLeadingFloat(s string) float64 {
	tok := numericTokenRe.FindString(s)
	if tok == "" {
		return 0
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0
	}
	return v
}
