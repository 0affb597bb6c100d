package filter

import (
	"fmt"
	"image"
	"math"
	"sort"
	"strings"
)

type blendFunc func(src, dst float64) float64

var blendModes = map[string]blendFunc{
	"over":     func(s, _ float64) float64 { return s },
	"multiply": func(s, d float64) float64 { return s * d },
	"screen":   func(s, d float64) float64 { return 1 - (1-s)*(1-d) },
	"overlay": func(s, d float64) float64 {
		if d < 0.5 {
			return 2 * s * d
		}
		return 1 - 2*(1-s)*(1-d)
	},
	"add":        func(s, d float64) float64 { return clamp01(s + d) },
	"difference": func(s, d float64) float64 { return math.Abs(d - s) },
	"darken":     math.Min,
	"lighten":    math.Max,
}

// BlendModes lists the accepted mode names.
func BlendModes() []string {
	names := make([]string, 0, len(blendModes))
	for n := range blendModes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Blend draws fg onto a copy of bg with its top-left corner at (xoff, yoff),
// mixing colors with mode and then compositing by fg's alpha. The result has
// bg's size.
func Blend(fg, bg image.Image, mode string, xoff, yoff int) (*image.NRGBA, error) {
	fn, ok := blendModes[strings.ToLower(strings.TrimSpace(mode))]
	if !ok {
		return nil, fmt.Errorf("blend mode %q (want one of %s): %w", mode, strings.Join(BlendModes(), ", "), ErrBadArgument)
	}
	dst := toNRGBA(bg)
	src := toNRGBA(fg)
	area := dst.Rect.Intersect(src.Rect.Add(image.Pt(xoff, yoff)))
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			si := src.PixOffset(x-xoff, y-yoff)
			di := dst.PixOffset(x, y)
			sa := float64(src.Pix[si+3]) / 255
			da := float64(dst.Pix[di+3]) / 255
			for c := 0; c < 3; c++ {
				s := float64(src.Pix[si+c]) / 255
				d := float64(dst.Pix[di+c]) / 255
				dst.Pix[di+c] = to8((1-sa)*d + sa*fn(s, d))
			}
			dst.Pix[di+3] = to8(sa + da*(1-sa))
		}
	}
	return dst, nil
}
