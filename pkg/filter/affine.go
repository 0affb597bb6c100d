package filter

import (
	"fmt"
	"image"
	"math"

	"github.com/Fepozopo/cif/pkg/coerce"
	"golang.org/x/image/draw"
)

// maxSide bounds the output of geometry filters.
const maxSide = 1 << 15

const snap = 1e-9

// AffineTransform maps src through t with bilinear sampling. The output is
// the bounding box of the transformed image, filled with bg where no source
// pixel lands.
func AffineTransform(src image.Image, t coerce.Transform, bg coerce.Color) (*image.NRGBA, error) {
	if _, ok := t.Invert(); !ok {
		return nil, fmt.Errorf("transform is singular: %w", ErrBadArgument)
	}
	in := toNRGBA(src)
	w, h := float64(in.Rect.Dx()), float64(in.Rect.Dy())

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x, y := t.Apply(p[0], p[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	// cos(90°) is ~6e-17, not 0.
	minX, minY = math.Floor(minX+snap), math.Floor(minY+snap)
	outW, outH := int(math.Ceil(maxX-snap)-minX), int(math.Ceil(maxY-snap)-minY)
	if outW <= 0 || outH <= 0 || outW > maxSide || outH > maxSide {
		return nil, fmt.Errorf("transformed size %dx%d out of range: %w", outW, outH, ErrBadArgument)
	}

	out := solid(outW, outH, bg.NRGBA())
	s2d := coerce.Translation(-minX, -minY).Multiply(t)
	draw.BiLinear.Transform(out, s2d.Aff3(), in, in.Bounds(), draw.Over, nil)
	return out, nil
}
