package coerce

import (
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a normalized RGBA color; every channel lies in [0, 1] and alpha
// defaults to 1. Color implements image/color.Color.
type Color struct {
	R, G, B, A float64
}

// FromBytes builds a Color from 8-bit channels.
func FromBytes(r, g, b, a uint8) Color {
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// RGBA returns alpha-premultiplied 16-bit channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(math.Round(c.A * 0xffff))
	r = uint32(math.Round(c.R * c.A * 0xffff))
	g = uint32(math.Round(c.G * c.A * 0xffff))
	b = uint32(math.Round(c.B * c.A * 0xffff))
	return
}

// NRGBA converts to a non-premultiplied 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: uint8(math.Round(c.A * 255)),
	}
}

// Equal reports whether every channel of c and o differs by at most eps.
func (c Color) Equal(o Color, eps float64) bool {
	return math.Abs(c.R-o.R) <= eps &&
		math.Abs(c.G-o.G) <= eps &&
		math.Abs(c.B-o.B) <= eps &&
		math.Abs(c.A-o.A) <= eps
}

// Colorful returns the RGB part for use with go-colorful blending.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(c colorful.Color, alpha float64) Color {
	c = c.Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}
}

// colorRule is one grammar in the ColorParser precedence list.
type colorRule struct {
	name  string
	match func(token string) bool
	parse func(p *ColorParser, token string) (Color, error)
}

// colorRules is evaluated top to bottom; the first rule whose match accepts
// the trimmed token owns it, and its failure is final.
var colorRules = []colorRule{
	{"hex", hasPrefixFold("#"), (*ColorParser).parseHex},
	{"rgb", hasPrefixFold("rgb(", "rgba("), (*ColorParser).parseRGB},
	{"hsl", hasPrefixFold("hsl(", "hsla("), (*ColorParser).parseHSL},
	{"hsb", hasPrefixFold("hsb(", "hsba(", "hsv(", "hsva("), (*ColorParser).parseHSB},
	{"function", isUnknownCall, (*ColorParser).rejectCall},
	{"vector", isBareVector, (*ColorParser).parseVector},
	{"name", func(string) bool { return true }, (*ColorParser).parseName},
}

func hasPrefixFold(prefixes ...string) func(string) bool {
	return func(token string) bool {
		lower := strings.ToLower(token)
		for _, p := range prefixes {
			if strings.HasPrefix(lower, p) {
				return true
			}
		}
		return false
	}
}

func isUnknownCall(token string) bool {
	return strings.ContainsAny(token, "()")
}

func isBareVector(token string) bool {
	return strings.Contains(token, ",") && !strings.ContainsAny(token, "()#")
}

// ColorParser turns color tokens into Colors using a fixed name table.
type ColorParser struct {
	names *NameTable
}

// NewColorParser returns a parser resolving names through names. A nil
// table gets a fresh NewNameTable.
func NewColorParser(names *NameTable) *ColorParser {
	if names == nil {
		names = NewNameTable()
	}
	return &ColorParser{names: names}
}

// Names exposes the parser's name table.
func (p *ColorParser) Names() *NameTable { return p.names }

// Parse converts token to a Color. Accepted forms, in precedence order:
// #RGB, #RRGGBB, #RRGGBBAA, rgb[a](r,g,b[,a]), hsl[a](h,s%,l%[,a]),
// hsb[a](h,s%,b%[,a]), a bare r,g,b[,a] vector on the 0..1 scale, and X11
// color names. In hsl and hsb the "%" is optional and a bare number is still
// read on the 0..100 scale, so hsl(120,1,0.5) is 1% saturation.
func (p *ColorParser) Parse(token string) (Color, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return Color{}, newError(MalformedSyntax, token, "empty color")
	}
	for _, r := range colorRules {
		if r.match(t) {
			return r.parse(p, t)
		}
	}
	return Color{}, newError(MalformedSyntax, token, "unrecognized color")
}

var defaultColorParser = sync.OnceValue(func() *ColorParser {
	return NewColorParser(NewNameTable())
})

// ParseColor parses token with a shared parser over the default name table.
func ParseColor(token string) (Color, error) {
	return defaultColorParser().Parse(token)
}

func (p *ColorParser) parseHex(token string) (Color, error) {
	digits := token[1:]
	var n int
	switch len(digits) {
	case 3:
		n = 1
	case 6, 8:
		n = 2
	default:
		return Color{}, newError(MalformedSyntax, token, "hex color needs 3, 6 or 8 digits, got %d", len(digits))
	}
	var ch [4]uint8
	ch[3] = 0xff
	for i := 0; i*n < len(digits); i++ {
		hi, ok1 := hexNibble(digits[i*n])
		lo, ok2 := hexNibble(digits[i*n+n-1])
		if !ok1 || !ok2 {
			return Color{}, newError(MalformedSyntax, token, "invalid hex digit")
		}
		ch[i] = hi<<4 | lo
	}
	return FromBytes(ch[0], ch[1], ch[2], ch[3]), nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// colorArgs splits a color function call into 3 or 4 arguments and parses
// the optional alpha.
func colorArgs(token string) (args []string, alpha float64, err error) {
	name, inner, ok := splitCall(token)
	if !ok {
		return nil, 0, newError(MalformedSyntax, token, "malformed color function")
	}
	args = splitFields(inner)
	if len(args) != 3 && len(args) != 4 {
		return nil, 0, newError(ArityMismatch, token, "%s() takes 3 or 4 arguments, got %d", name, len(args))
	}
	alpha = 1
	if len(args) == 4 {
		if alpha, err = parseFraction(args[3]); err != nil {
			return nil, 0, err
		}
	}
	return args[:3], alpha, nil
}

func (p *ColorParser) parseRGB(token string) (Color, error) {
	args, alpha, err := colorArgs(token)
	if err != nil {
		return Color{}, err
	}
	var ch [3]float64
	for i, a := range args {
		v, err := parseInt(a)
		if err != nil {
			return Color{}, err
		}
		if v < 0 || v > 255 {
			return Color{}, newError(OutOfRange, a, "rgb component must be within 0..255")
		}
		ch[i] = float64(v) / 255
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

// hueArgs parses the hue/percent/percent triple shared by hsl() and hsb().
func hueArgs(token string) (h, s, x, alpha float64, err error) {
	args, alpha, err := colorArgs(token)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if h, err = parseFloat(strings.TrimSuffix(args[0], "deg")); err != nil {
		return 0, 0, 0, 0, retoken(err, args[0])
	}
	if s, err = parsePercent(args[1]); err != nil {
		return 0, 0, 0, 0, err
	}
	if x, err = parsePercent(args[2]); err != nil {
		return 0, 0, 0, 0, err
	}
	return wrapDegrees(h), s, x, alpha, nil
}

func (p *ColorParser) parseHSL(token string) (Color, error) {
	h, s, l, alpha, err := hueArgs(token)
	if err != nil {
		return Color{}, err
	}
	return fromColorful(colorful.Hsl(h, s, l), alpha), nil
}

func (p *ColorParser) parseHSB(token string) (Color, error) {
	h, s, v, alpha, err := hueArgs(token)
	if err != nil {
		return Color{}, err
	}
	return fromColorful(colorful.Hsv(h, s, v), alpha), nil
}

func (p *ColorParser) rejectCall(token string) (Color, error) {
	if name, _, ok := splitCall(token); ok {
		return Color{}, newError(MalformedSyntax, token, "unsupported color function %s()", name)
	}
	return Color{}, newError(MalformedSyntax, token, "unbalanced parentheses")
}

func (p *ColorParser) parseVector(token string) (Color, error) {
	v, err := ParseVector(token)
	if err != nil {
		return Color{}, err
	}
	if v.Len() < 3 {
		return Color{}, newError(ArityMismatch, token, "color vector needs 3 or 4 components, got %d", v.Len())
	}
	ch := [4]float64{0, 0, 0, 1}
	for i := 0; i < v.Len(); i++ {
		c := v.At(i)
		if c < 0 || c > 1 {
			return Color{}, newError(OutOfRange, token, "component %d (%g) must be within 0..1", i+1, c)
		}
		ch[i] = c
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

func (p *ColorParser) parseName(token string) (Color, error) {
	c, ok := p.names.Lookup(strings.ToLower(token))
	if !ok {
		return Color{}, newError(UnknownName, token, "not a known color name")
	}
	return c, nil
}
