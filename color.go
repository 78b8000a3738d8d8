package vine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeColor parses a CSS color string into a packed 0xRRGGBBAA value.
// Recognized forms: named colors ("tomato"), "#RGB", "#RGBA", "#RRGGBB",
// "#RRGGBBAA", "rgb(r, g, b)", "rgba(r, g, b, a)", "hsl(h, s%, l%)", and
// "hsla(h, s%, l%, a)". The second return is false when the string is not a
// recognized color, in which case callers pass the raw string through.
func NormalizeColor(s string) (uint32, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if s[0] == '#' {
		return parseHexColor(s[1:])
	}
	lower := strings.ToLower(s)
	if c, ok := namedColors[lower]; ok {
		return c, true
	}
	if open := strings.IndexByte(lower, '('); open > 0 && strings.HasSuffix(lower, ")") {
		fn := lower[:open]
		args := splitColorArgs(lower[open+1 : len(lower)-1])
		switch fn {
		case "rgb":
			return parseRGB(args, "")
		case "rgba":
			if len(args) != 4 {
				return 0, false
			}
			return parseRGB(args[:3], args[3])
		case "hsl":
			return parseHSL(args, "")
		case "hsla":
			if len(args) != 4 {
				return 0, false
			}
			return parseHSL(args[:3], args[3])
		}
	}
	return 0, false
}

// colorToRGBA canonicalizes a recognized color to its "rgba(r, g, b, a)"
// template form so that mixed notations (named, hex, functional) share one
// skeleton. Unrecognized strings pass through unchanged.
func colorToRGBA(s string) string {
	c, ok := NormalizeColor(s)
	if !ok {
		return s
	}
	r := (c >> 24) & 0xff
	g := (c >> 16) & 0xff
	b := (c >> 8) & 0xff
	a := float64(c&0xff) / 255
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(a, 'f', -1, 64))
}

func parseHexColor(hex string) (uint32, bool) {
	var digits []byte
	switch len(hex) {
	case 3: // RGB
		digits = []byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2], 'f', 'f'}
	case 4: // RGBA
		digits = []byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]}
	case 6: // RRGGBB
		digits = append([]byte(hex), 'f', 'f')
	case 8: // RRGGBBAA
		digits = []byte(hex)
	default:
		return 0, false
	}
	v, err := strconv.ParseUint(string(digits), 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

func splitColorArgs(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parse255 parses an integer channel, clamped to [0, 255].
func parse255(s string) (uint32, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if n < 0 {
		return 0, true
	}
	if n > 255 {
		return 255, true
	}
	return uint32(n), true
}

// parse1 parses an alpha value in [0, 1] onto the [0, 255] byte, clamped.
func parse1(s string) (uint32, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if f < 0 {
		return 0, true
	}
	if f > 1 {
		return 255, true
	}
	return uint32(math.Round(f * 255)), true
}

func parseRGB(args []string, alpha string) (uint32, bool) {
	if len(args) != 3 {
		return 0, false
	}
	r, ok := parse255(args[0])
	if !ok {
		return 0, false
	}
	g, ok := parse255(args[1])
	if !ok {
		return 0, false
	}
	b, ok := parse255(args[2])
	if !ok {
		return 0, false
	}
	a := uint32(255)
	if alpha != "" {
		if a, ok = parse1(alpha); !ok {
			return 0, false
		}
	}
	return r<<24 | g<<16 | b<<8 | a, true
}

func parseHSL(args []string, alpha string) (uint32, bool) {
	if len(args) != 3 {
		return 0, false
	}
	h, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, false
	}
	s, ok := parsePercent(args[1])
	if !ok {
		return 0, false
	}
	l, ok := parsePercent(args[2])
	if !ok {
		return 0, false
	}
	a := uint32(255)
	if alpha != "" {
		if a, ok = parse1(alpha); !ok {
			return 0, false
		}
	}
	r, g, b := hslToRGB(h, s, l)
	return r<<24 | g<<16 | b<<8 | a, true
}

func parsePercent(s string) (float64, bool) {
	if !strings.HasSuffix(s, "%") {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false
	}
	if f < 0 {
		f = 0
	}
	if f > 100 {
		f = 100
	}
	return f / 100, true
}

// hslToRGB converts hue (degrees, any value) plus saturation and lightness
// (both in [0, 1]) to byte channels.
func hslToRGB(h, s, l float64) (uint32, uint32, uint32) {
	h = math.Mod(math.Mod(h, 360)+360, 360) / 360

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	channel := func(t float64) uint32 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		var v float64
		switch {
		case t < 1.0/6:
			v = p + (q-p)*6*t
		case t < 1.0/2:
			v = q
		case t < 2.0/3:
			v = p + (q-p)*(2.0/3-t)*6
		default:
			v = p
		}
		return uint32(math.Round(v * 255))
	}
	return channel(h + 1.0/3), channel(h), channel(h - 1.0/3)
}

// namedColors is the CSS color keyword table, packed as 0xRRGGBBAA.
var namedColors = map[string]uint32{
	"transparent":          0x00000000,
	"aliceblue":            0xf0f8ffff,
	"antiquewhite":         0xfaebd7ff,
	"aqua":                 0x00ffffff,
	"aquamarine":           0x7fffd4ff,
	"azure":                0xf0ffffff,
	"beige":                0xf5f5dcff,
	"bisque":               0xffe4c4ff,
	"black":                0x000000ff,
	"blanchedalmond":       0xffebcdff,
	"blue":                 0x0000ffff,
	"blueviolet":           0x8a2be2ff,
	"brown":                0xa52a2aff,
	"burlywood":            0xdeb887ff,
	"cadetblue":            0x5f9ea0ff,
	"chartreuse":           0x7fff00ff,
	"chocolate":            0xd2691eff,
	"coral":                0xff7f50ff,
	"cornflowerblue":       0x6495edff,
	"cornsilk":             0xfff8dcff,
	"crimson":              0xdc143cff,
	"cyan":                 0x00ffffff,
	"darkblue":             0x00008bff,
	"darkcyan":             0x008b8bff,
	"darkgoldenrod":        0xb8860bff,
	"darkgray":             0xa9a9a9ff,
	"darkgreen":            0x006400ff,
	"darkgrey":             0xa9a9a9ff,
	"darkkhaki":            0xbdb76bff,
	"darkmagenta":          0x8b008bff,
	"darkolivegreen":       0x556b2fff,
	"darkorange":           0xff8c00ff,
	"darkorchid":           0x9932ccff,
	"darkred":              0x8b0000ff,
	"darksalmon":           0xe9967aff,
	"darkseagreen":         0x8fbc8fff,
	"darkslateblue":        0x483d8bff,
	"darkslategray":        0x2f4f4fff,
	"darkslategrey":        0x2f4f4fff,
	"darkturquoise":        0x00ced1ff,
	"darkviolet":           0x9400d3ff,
	"deeppink":             0xff1493ff,
	"deepskyblue":          0x00bfffff,
	"dimgray":              0x696969ff,
	"dimgrey":              0x696969ff,
	"dodgerblue":           0x1e90ffff,
	"firebrick":            0xb22222ff,
	"floralwhite":          0xfffaf0ff,
	"forestgreen":          0x228b22ff,
	"fuchsia":              0xff00ffff,
	"gainsboro":            0xdcdcdcff,
	"ghostwhite":           0xf8f8ffff,
	"gold":                 0xffd700ff,
	"goldenrod":            0xdaa520ff,
	"gray":                 0x808080ff,
	"green":                0x008000ff,
	"greenyellow":          0xadff2fff,
	"grey":                 0x808080ff,
	"honeydew":             0xf0fff0ff,
	"hotpink":              0xff69b4ff,
	"indianred":            0xcd5c5cff,
	"indigo":               0x4b0082ff,
	"ivory":                0xfffff0ff,
	"khaki":                0xf0e68cff,
	"lavender":             0xe6e6faff,
	"lavenderblush":        0xfff0f5ff,
	"lawngreen":            0x7cfc00ff,
	"lemonchiffon":         0xfffacdff,
	"lightblue":            0xadd8e6ff,
	"lightcoral":           0xf08080ff,
	"lightcyan":            0xe0ffffff,
	"lightgoldenrodyellow": 0xfafad2ff,
	"lightgray":            0xd3d3d3ff,
	"lightgreen":           0x90ee90ff,
	"lightgrey":            0xd3d3d3ff,
	"lightpink":            0xffb6c1ff,
	"lightsalmon":          0xffa07aff,
	"lightseagreen":        0x20b2aaff,
	"lightskyblue":         0x87cefaff,
	"lightslategray":       0x778899ff,
	"lightslategrey":       0x778899ff,
	"lightsteelblue":       0xb0c4deff,
	"lightyellow":          0xffffe0ff,
	"lime":                 0x00ff00ff,
	"limegreen":            0x32cd32ff,
	"linen":                0xfaf0e6ff,
	"magenta":              0xff00ffff,
	"maroon":               0x800000ff,
	"mediumaquamarine":     0x66cdaaff,
	"mediumblue":           0x0000cdff,
	"mediumorchid":         0xba55d3ff,
	"mediumpurple":         0x9370dbff,
	"mediumseagreen":       0x3cb371ff,
	"mediumslateblue":      0x7b68eeff,
	"mediumspringgreen":    0x00fa9aff,
	"mediumturquoise":      0x48d1ccff,
	"mediumvioletred":      0xc71585ff,
	"midnightblue":         0x191970ff,
	"mintcream":            0xf5fffaff,
	"mistyrose":            0xffe4e1ff,
	"moccasin":             0xffe4b5ff,
	"navajowhite":          0xffdeadff,
	"navy":                 0x000080ff,
	"oldlace":              0xfdf5e6ff,
	"olive":                0x808000ff,
	"olivedrab":            0x6b8e23ff,
	"orange":               0xffa500ff,
	"orangered":            0xff4500ff,
	"orchid":               0xda70d6ff,
	"palegoldenrod":        0xeee8aaff,
	"palegreen":            0x98fb98ff,
	"paleturquoise":        0xafeeeeff,
	"palevioletred":        0xdb7093ff,
	"papayawhip":           0xffefd5ff,
	"peachpuff":            0xffdab9ff,
	"peru":                 0xcd853fff,
	"pink":                 0xffc0cbff,
	"plum":                 0xdda0ddff,
	"powderblue":           0xb0e0e6ff,
	"purple":               0x800080ff,
	"rebeccapurple":        0x663399ff,
	"red":                  0xff0000ff,
	"rosybrown":            0xbc8f8fff,
	"royalblue":            0x4169e1ff,
	"saddlebrown":          0x8b4513ff,
	"salmon":               0xfa8072ff,
	"sandybrown":           0xf4a460ff,
	"seagreen":             0x2e8b57ff,
	"seashell":             0xfff5eeff,
	"sienna":               0xa0522dff,
	"silver":               0xc0c0c0ff,
	"skyblue":              0x87ceebff,
	"slateblue":            0x6a5acdff,
	"slategray":            0x708090ff,
	"slategrey":            0x708090ff,
	"snow":                 0xfffafaff,
	"springgreen":          0x00ff7fff,
	"steelblue":            0x4682b4ff,
	"tan":                  0xd2b48cff,
	"teal":                 0x008080ff,
	"thistle":              0xd8bfd8ff,
	"tomato":               0xff6347ff,
	"turquoise":            0x40e0d0ff,
	"violet":               0xee82eeff,
	"wheat":                0xf5deb3ff,
	"white":                0xffffffff,
	"whitesmoke":           0xf5f5f5ff,
	"yellow":               0xffff00ff,
	"yellowgreen":          0x9acd32ff,
}
