// Package filter holds the registry of image filters and the engine that
// applies them.
//
// Filters is the single source of truth for names, categories and typed
// parameters. Keep it in step with the switch in Apply (engine.go) when a
// filter is added or changed so the command line and help output stay
// correct.
package filter

import (
	"sort"
	"strings"

	"github.com/Fepozopo/cif/pkg/coerce"
)

// ParamType is the declared type of a filter parameter.
type ParamType int

const (
	Number ParamType = iota + 1
	Color
	Vector
	Rect
	Transform
	Data
	Text
	Image
)

var paramTypeNames = map[ParamType]string{
	Number:    "number",
	Color:     "color",
	Vector:    "vector",
	Rect:      "rect",
	Transform: "transform",
	Data:      "data",
	Text:      "text",
	Image:     "image",
}

func (t ParamType) String() string {
	if s, ok := paramTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// CoerceKind returns the coercion kind used to read a token of this type.
// Image parameters are loaded by the caller, so ok is false for them.
func (t ParamType) CoerceKind() (kind coerce.Kind, ok bool) {
	switch t {
	case Number:
		return coerce.KindNumber, true
	case Color:
		return coerce.KindColor, true
	case Vector:
		return coerce.KindVector, true
	case Rect:
		return coerce.KindSize, true
	case Transform:
		return coerce.KindTransform, true
	case Data:
		return coerce.KindData, true
	case Text:
		return coerce.KindString, true
	}
	return 0, false
}

// Param describes one filter parameter. Default is the textual value used
// when the parameter is not given; it is coerced like user input.
type Param struct {
	Name        string
	Type        ParamType
	Required    bool
	Default     string
	Description string
}

// Spec defines a single filter.
type Spec struct {
	Name        string
	Category    string
	Description string
	Params      []Param
	// Generator filters produce an image without needing an input.
	Generator bool
}

// Param returns the parameter called name (case-insensitive).
func (s Spec) Param(name string) (Param, bool) {
	for _, p := range s.Params {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Param{}, false
}

// ParamNames lists the parameter names in declaration order.
func (s Spec) ParamNames() []string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name
	}
	return names
}

// Usage is the one-line invocation form, e.g. "crop -rectangle <rect>".
func (s Spec) Usage() string {
	var b strings.Builder
	b.WriteString(s.Name)
	for _, p := range s.Params {
		b.WriteString(" ")
		if !p.Required {
			b.WriteString("[")
		}
		b.WriteString("-" + p.Name + " <" + p.Type.String() + ">")
		if !p.Required {
			b.WriteString("]")
		}
	}
	return b.String()
}

// Filter categories.
const (
	CategoryBlur      = "blur"
	CategoryColor     = "color"
	CategoryStylize   = "stylize"
	CategoryGeometry  = "geometry"
	CategoryComposite = "composite"
	CategoryGenerator = "generator"
)

func num(name, def, desc string) Param {
	return Param{Name: name, Type: Number, Default: def, Description: desc}
}

// Filters is the authoritative list of filters implemented by Apply.
var Filters = []Spec{
	// blur
	{
		Name:        "gaussianBlur",
		Category:    CategoryBlur,
		Description: "Gaussian blur.",
		Params:      []Param{num("radius", "10", "standard deviation in pixels")},
	},
	{
		Name:        "boxBlur",
		Category:    CategoryBlur,
		Description: "Box (mean) blur.",
		Params:      []Param{num("radius", "10", "box radius in pixels")},
	},
	{
		Name:        "median",
		Category:    CategoryBlur,
		Description: "Median filter, removes speckle noise.",
		Params:      []Param{num("radius", "1", "window radius in pixels")},
	},
	{
		Name:        "sharpen",
		Category:    CategoryBlur,
		Description: "Sharpen by subtracting a blurred copy.",
		Params:      []Param{num("sigma", "1", "blur sigma of the subtracted copy")},
	},
	{
		Name:        "unsharpMask",
		Category:    CategoryBlur,
		Description: "Unsharp mask.",
		Params: []Param{
			num("radius", "2.5", "mask blur radius"),
			num("intensity", "0.5", "amount of the difference added back"),
		},
	},

	// color
	{
		Name:        "colorControls",
		Category:    CategoryColor,
		Description: "Adjust saturation, brightness and contrast.",
		Params: []Param{
			num("saturation", "1", "saturation factor, 0 is grayscale"),
			num("brightness", "0", "brightness offset in -1..1"),
			num("contrast", "1", "contrast factor"),
		},
	},
	{
		Name:        "gamma",
		Category:    CategoryColor,
		Description: "Raise every channel to a power.",
		Params:      []Param{num("power", "1", "exponent, above 1 darkens")},
	},
	{
		Name:        "exposure",
		Category:    CategoryColor,
		Description: "Scale channels by 2^ev, like a camera exposure change.",
		Params:      []Param{num("ev", "0", "exposure value in stops")},
	},
	{
		Name:        "hueAdjust",
		Category:    CategoryColor,
		Description: "Rotate hues.",
		Params:      []Param{num("angle", "0", "hue rotation in degrees")},
	},
	{
		Name:        "modulate",
		Category:    CategoryColor,
		Description: "Scale lightness and saturation and rotate hue in HSL space.",
		Params: []Param{
			num("brightness", "1", "lightness factor"),
			num("saturation", "1", "saturation factor"),
			num("hue", "0", "hue rotation in degrees"),
		},
	},
	{
		Name:        "colorInvert",
		Category:    CategoryColor,
		Description: "Invert colors.",
	},
	{
		Name:        "grayscale",
		Category:    CategoryColor,
		Description: "Convert to grayscale.",
	},
	{
		Name:        "sepia",
		Category:    CategoryColor,
		Description: "Sepia tone.",
		Params:      []Param{num("intensity", "1", "mix with the original, 0..1")},
	},
	{
		Name:        "colorMonochrome",
		Category:    CategoryColor,
		Description: "Tint the luminance of the image with one color.",
		Params: []Param{
			{Name: "color", Type: Color, Default: "0.6,0.45,0.3", Description: "tint color"},
			num("intensity", "1", "mix with the original, 0..1"),
		},
	},
	{
		Name:        "falseColor",
		Category:    CategoryColor,
		Description: "Map luminance onto a gradient between two colors.",
		Params: []Param{
			{Name: "color0", Type: Color, Default: "0.3,0,0", Description: "color for black"},
			{Name: "color1", Type: Color, Default: "1,0.9,0.8", Description: "color for white"},
		},
	},
	{
		Name:        "posterize",
		Category:    CategoryColor,
		Description: "Reduce every channel to a number of levels.",
		Params:      []Param{num("levels", "6", "levels per channel, at least 2")},
	},

	// stylize
	{
		Name:        "edges",
		Category:    CategoryStylize,
		Description: "Edge detection.",
		Params:      []Param{num("radius", "1", "kernel radius")},
	},
	{
		Name:        "emboss",
		Category:    CategoryStylize,
		Description: "Emboss.",
	},
	{
		Name:        "vignette",
		Category:    CategoryStylize,
		Description: "Darken the image away from a center point.",
		Params: []Param{
			{Name: "center", Type: Vector, Description: "center x,y; defaults to the image center"},
			num("radius", "0", "distance of full effect; 0 is half the diagonal"),
			num("intensity", "1", "strength of the darkening, 0..1"),
		},
	},

	// geometry
	{
		Name:        "affineTransform",
		Category:    CategoryGeometry,
		Description: "Apply an affine transform; the output is sized to fit.",
		Params: []Param{
			{Name: "transform", Type: Transform, Required: true, Description: "e.g. rotate(30) scale(2)"},
			{Name: "background", Type: Color, Default: "transparent", Description: "fill for uncovered pixels"},
		},
	},
	{
		Name:        "crop",
		Category:    CategoryGeometry,
		Description: "Crop to a rectangle.",
		Params: []Param{
			{Name: "rectangle", Type: Rect, Required: true, Description: "WxH+X+Y or X,Y,W,H"},
		},
	},
	{
		Name:        "resize",
		Category:    CategoryGeometry,
		Description: "Resize with Lanczos resampling; a zero dimension keeps the aspect ratio.",
		Params: []Param{
			{Name: "size", Type: Rect, Required: true, Description: "WxH"},
		},
	},
	{
		Name:        "rotate",
		Category:    CategoryGeometry,
		Description: "Rotate counter-clockwise; the output is sized to fit.",
		Params: []Param{
			num("angle", "0", "degrees"),
			{Name: "background", Type: Color, Default: "transparent", Description: "fill for uncovered pixels"},
		},
	},
	{
		Name:        "flip",
		Category:    CategoryGeometry,
		Description: "Mirror top to bottom.",
	},
	{
		Name:        "flop",
		Category:    CategoryGeometry,
		Description: "Mirror left to right.",
	},

	// composite
	{
		Name:        "blend",
		Category:    CategoryComposite,
		Description: "Composite the image over a background image.",
		Params: []Param{
			{Name: "backgroundImage", Type: Image, Required: true, Description: "path of the background image"},
			{Name: "mode", Type: Text, Default: "over", Description: "over, multiply, screen, overlay, add, difference, darken, lighten"},
			{Name: "offset", Type: Vector, Default: "0,0", Description: "position of the image on the background"},
		},
	},
	{
		Name:        "text",
		Category:    CategoryComposite,
		Description: "Draw a line of text.",
		Params: []Param{
			{Name: "message", Type: Text, Required: true, Description: "text to draw, or @file"},
			{Name: "font", Type: Data, Description: "@path to a TrueType/OpenType font; built-in bitmap font if unset"},
			num("size", "24", "font size in points"),
			{Name: "position", Type: Vector, Default: "10,30", Description: "baseline origin x,y"},
			{Name: "color", Type: Color, Default: "black", Description: "text color"},
		},
	},

	// generator
	{
		Name:        "constantColor",
		Category:    CategoryGenerator,
		Description: "Solid color image.",
		Generator:   true,
		Params: []Param{
			{Name: "color", Type: Color, Required: true, Description: "fill color"},
			{Name: "size", Type: Rect, Default: "256x256", Description: "image size"},
		},
	},
	{
		Name:        "checkerboard",
		Category:    CategoryGenerator,
		Description: "Checkerboard pattern.",
		Generator:   true,
		Params: []Param{
			{Name: "center", Type: Vector, Default: "0,0", Description: "corner of one color0 square"},
			{Name: "color0", Type: Color, Default: "white"},
			{Name: "color1", Type: Color, Default: "black"},
			num("width", "32", "square width in pixels"),
			{Name: "size", Type: Rect, Default: "256x256", Description: "image size"},
		},
	},
	{
		Name:        "stripes",
		Category:    CategoryGenerator,
		Description: "Vertical stripes.",
		Generator:   true,
		Params: []Param{
			{Name: "color0", Type: Color, Default: "white"},
			{Name: "color1", Type: Color, Default: "black"},
			num("width", "16", "stripe width in pixels"),
			{Name: "size", Type: Rect, Default: "256x256", Description: "image size"},
		},
	},
	{
		Name:        "linearGradient",
		Category:    CategoryGenerator,
		Description: "Linear gradient between two points.",
		Generator:   true,
		Params: []Param{
			{Name: "point0", Type: Vector, Default: "0,0"},
			{Name: "point1", Type: Vector, Default: "255,0"},
			{Name: "color0", Type: Color, Default: "white"},
			{Name: "color1", Type: Color, Default: "black"},
			{Name: "size", Type: Rect, Default: "256x256", Description: "image size"},
		},
	},
}

var byName = func() map[string]*Spec {
	m := make(map[string]*Spec, len(Filters))
	for i := range Filters {
		m[strings.ToLower(Filters[i].Name)] = &Filters[i]
	}
	return m
}()

// Lookup finds a filter by name, ignoring case.
func Lookup(name string) (Spec, bool) {
	s, ok := byName[strings.ToLower(name)]
	if !ok {
		return Spec{}, false
	}
	return *s, true
}

// Categories returns the distinct categories in sorted order.
func Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range Filters {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	sort.Strings(out)
	return out
}

// InCategory returns the filters of one category in registry order.
func InCategory(category string) []Spec {
	var out []Spec
	for _, s := range Filters {
		if strings.EqualFold(s.Category, category) {
			out = append(out, s)
		}
	}
	return out
}
