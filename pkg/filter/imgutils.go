package filter

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/Fepozopo/cif/pkg/coerce"
	"golang.org/x/image/draw"
)

// toNRGBA returns a non-premultiplied copy of src with its bounds moved to
// the origin. The input is never modified.
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	return out
}

// solid returns a w×h image filled with c.
func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// mapPixels applies fn to every pixel of src, channels scaled to 0..1.
// Alpha is passed through unchanged.
func mapPixels(src image.Image, fn func(r, g, b float64) (float64, float64, float64)) *image.NRGBA {
	out := toNRGBA(src)
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i+3] == 0 {
			continue
		}
		r, g, b := fn(float64(out.Pix[i])/255, float64(out.Pix[i+1])/255, float64(out.Pix[i+2])/255)
		out.Pix[i+0] = to8(r)
		out.Pix[i+1] = to8(g)
		out.Pix[i+2] = to8(b)
	}
	return out
}

// to8 converts a 0..1 channel to 8 bits, clamping out-of-range input.
func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// luminance uses Rec. 709 weights.
func luminance(r, g, b float64) float64 {
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// sizeOf rounds a Rect to a pixel size. Extents beyond maxSide are rejected
// before conversion so huge values cannot wrap around int.
func sizeOf(r coerce.Rect) (w, h int, err error) {
	if r.Width < 0 || r.Height < 0 || r.Width > maxSide || r.Height > maxSide {
		return 0, 0, fmt.Errorf("size %gx%g out of range: %w", r.Width, r.Height, ErrBadArgument)
	}
	return int(math.Round(r.Width)), int(math.Round(r.Height)), nil
}
