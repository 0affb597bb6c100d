package filter

import (
	"image"
	"math"

	"github.com/Fepozopo/cif/pkg/coerce"
	"github.com/lucasb-eyer/go-colorful"
)

// Modulate scales HSL lightness and saturation by the given factors and
// rotates the hue by hueDegrees.
func Modulate(src image.Image, brightness, saturation, hueDegrees float64) *image.NRGBA {
	return mapPixels(src, func(r, g, b float64) (float64, float64, float64) {
		h, s, l := colorful.Color{R: r, G: g, B: b}.Hsl()
		h = math.Mod(h+hueDegrees, 360)
		if h < 0 {
			h += 360
		}
		c := colorful.Hsl(h, clamp01(s*saturation), clamp01(l*brightness)).Clamped()
		return c.R, c.G, c.B
	})
}

// Exposure multiplies every channel by 2^ev.
func Exposure(src image.Image, ev float64) *image.NRGBA {
	k := math.Exp2(ev)
	return mapPixels(src, func(r, g, b float64) (float64, float64, float64) {
		return r * k, g * k, b * k
	})
}

// Monochrome replaces each pixel with its luminance tinted by tint, mixed
// with the original by intensity.
func Monochrome(src image.Image, tint coerce.Color, intensity float64) *image.NRGBA {
	t := clamp01(intensity)
	return mapPixels(src, func(r, g, b float64) (float64, float64, float64) {
		y := luminance(r, g, b)
		return lerp(r, y*tint.R, t), lerp(g, y*tint.G, t), lerp(b, y*tint.B, t)
	})
}

// FalseColor maps luminance 0 to c0 and 1 to c1.
func FalseColor(src image.Image, c0, c1 coerce.Color) *image.NRGBA {
	from, to := c0.Colorful(), c1.Colorful()
	return mapPixels(src, func(r, g, b float64) (float64, float64, float64) {
		c := from.BlendRgb(to, luminance(r, g, b))
		return c.R, c.G, c.B
	})
}

// Posterize reduces every channel to levels evenly spaced values.
func Posterize(src image.Image, levels int) *image.NRGBA {
	if levels < 2 {
		return toNRGBA(src)
	}
	step := 1 / float64(levels-1)
	q := func(v float64) float64 { return math.Round(v/step) * step }
	return mapPixels(src, func(r, g, b float64) (float64, float64, float64) {
		return q(r), q(g), q(b)
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
