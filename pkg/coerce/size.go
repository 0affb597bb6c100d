package coerce

import (
	"image"
	"math"
	"regexp"
	"strings"
)

// Rect is a size with an optional origin. Width and Height are never
// negative; X and Y default to 0.
type Rect struct {
	X, Y, Width, Height float64
}

// pixelLimit bounds the origin and extent used by Bounds.
const pixelLimit = 1 << 30

// Bounds rounds the rectangle to whole pixels. The origin and extent are each
// clamped to ±pixelLimit so huge values never wrap around int.
func (r Rect) Bounds() image.Rectangle {
	x0, y0 := toPixel(r.X), toPixel(r.Y)
	return image.Rect(x0, y0, x0+toPixel(r.Width), y0+toPixel(r.Height))
}

func toPixel(v float64) int {
	return int(math.Round(math.Max(-pixelLimit, math.Min(pixelLimit, v))))
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.Bounds().Empty() }

// geometry matches WxH with an optional +X+Y offset, ImageMagick style.
var geometry = regexp.MustCompile(`^([^xX+]+)[xX](-?[^xX+-]+)(?:([+-][^+-]+)([+-][^+-]+))?$`)

// ParseSize parses "WxH", "WxH+X+Y", "W,H" or "X,Y,W,H".
func ParseSize(token string) (Rect, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return Rect{}, newError(MalformedSyntax, token, "empty size")
	}
	var r Rect
	if m := geometry.FindStringSubmatch(t); m != nil && !strings.Contains(t, ",") {
		var err error
		if r.Width, err = parseFloat(strings.TrimSpace(m[1])); err != nil {
			return Rect{}, err
		}
		if r.Height, err = parseFloat(strings.TrimSpace(m[2])); err != nil {
			return Rect{}, err
		}
		if m[3] != "" {
			if r.X, err = parseFloat(strings.TrimPrefix(m[3], "+")); err != nil {
				return Rect{}, err
			}
			if r.Y, err = parseFloat(strings.TrimPrefix(m[4], "+")); err != nil {
				return Rect{}, err
			}
		}
	} else {
		if !strings.Contains(t, ",") {
			return Rect{}, newError(MalformedSyntax, token, "expected WxH or W,H")
		}
		v, err := ParseVector(t)
		if err != nil {
			return Rect{}, err
		}
		switch v.Len() {
		case 2:
			r.Width, r.Height = v.X(), v.Y()
		case 4:
			r = Rect{X: v.X(), Y: v.Y(), Width: v.Z(), Height: v.W()}
		default:
			return Rect{}, newError(ArityMismatch, token, "size needs 2 (W,H) or 4 (X,Y,W,H) components, got %d", v.Len())
		}
	}
	if r.Width < 0 || r.Height < 0 {
		return Rect{}, newError(OutOfRange, token, "width and height must not be negative")
	}
	return r, nil
}
