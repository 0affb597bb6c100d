package filter

import (
	"fmt"
	"image"
	"math"

	"github.com/Fepozopo/cif/pkg/coerce"
)

func checkSize(w, h int) error {
	if w <= 0 || h <= 0 || w > maxSide || h > maxSide {
		return fmt.Errorf("image size %dx%d out of range: %w", w, h, ErrBadArgument)
	}
	return nil
}

// ConstantColor returns a w×h image filled with c.
func ConstantColor(c coerce.Color, w, h int) (*image.NRGBA, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	return solid(w, h, c.NRGBA()), nil
}

// Checkerboard alternates c0 and c1 squares of side width, with a c0
// square's corner at (cx, cy).
func Checkerboard(cx, cy float64, c0, c1 coerce.Color, width float64, w, h int) (*image.NRGBA, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	if width <= 0 {
		return nil, fmt.Errorf("checkerboard width %g must be positive: %w", width, ErrBadArgument)
	}
	a, b := c0.NRGBA(), c1.NRGBA()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := int(math.Floor((float64(y) - cy) / width))
		for x := 0; x < w; x++ {
			col := int(math.Floor((float64(x) - cx) / width))
			c := a
			if (row+col)&1 != 0 {
				c = b
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out, nil
}

// Stripes alternates vertical c0 and c1 bands of the given width.
func Stripes(c0, c1 coerce.Color, width float64, w, h int) (*image.NRGBA, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	if width <= 0 {
		return nil, fmt.Errorf("stripe width %g must be positive: %w", width, ErrBadArgument)
	}
	a, b := c0.NRGBA(), c1.NRGBA()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		c := a
		if int(float64(x)/width)&1 != 0 {
			c = b
		}
		for y := 0; y < h; y++ {
			out.SetNRGBA(x, y, c)
		}
	}
	return out, nil
}

// LinearGradient shades along the line from p0 to p1: pixels projecting
// before p0 get c0, after p1 get c1, and in between a linear mix.
func LinearGradient(p0, p1 coerce.Vector, c0, c1 coerce.Color, w, h int) (*image.NRGBA, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	dx, dy := p1.X()-p0.X(), p1.Y()-p0.Y()
	den := dx*dx + dy*dy
	if den == 0 {
		return nil, fmt.Errorf("gradient points coincide: %w", ErrBadArgument)
	}
	from, to := c0.Colorful(), c1.Colorful()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px, py := float64(x)+0.5-p0.X(), float64(y)+0.5-p0.Y()
			t := clamp01((px*dx + py*dy) / den)
			c := from.BlendRgb(to, t)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = to8(c.R)
			out.Pix[i+1] = to8(c.G)
			out.Pix[i+2] = to8(c.B)
			out.Pix[i+3] = to8(lerp(c0.A, c1.A, t))
		}
	}
	return out, nil
}
