package filter

import (
	"image"
	"math"
)

// Vignette darkens pixels by their distance from (cx, cy). The mask rises
// along a gaussian from 0 at the center to 1 at radius and stays 1 beyond it:
//
//	mask(d) = (1 - exp(-d²/2σ²)) / (1 - exp(-radius²/2σ²)), σ = radius/3
//
// and each channel is multiplied by 1 - mask*intensity. A radius <= 0 means
// half the image diagonal.
func Vignette(src image.Image, cx, cy, radius, intensity float64) *image.NRGBA {
	out := toNRGBA(src)
	w, h := out.Rect.Dx(), out.Rect.Dy()
	if radius <= 0 {
		radius = math.Hypot(float64(w), float64(h)) / 2
	}
	strength := clamp01(intensity)
	sigma := radius / 3
	norm := 1 - math.Exp(-0.5*(radius*radius)/(sigma*sigma))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			mask := 1 - math.Exp(-0.5*(d*d)/(sigma*sigma))
			if norm > 0 {
				mask /= norm
			}
			factor := 1 - clamp01(mask)*strength
			i := out.PixOffset(x, y)
			out.Pix[i+0] = to8(float64(out.Pix[i+0]) / 255 * factor)
			out.Pix[i+1] = to8(float64(out.Pix[i+1]) / 255 * factor)
			out.Pix[i+2] = to8(float64(out.Pix[i+2]) / 255 * factor)
		}
	}
	return out
}
