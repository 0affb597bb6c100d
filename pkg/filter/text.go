package filter

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DrawText draws message onto a copy of src with its baseline starting at
// (x, y). fontData holds a TrueType or OpenType font; when empty the
// built-in 7x13 bitmap face is used and size is ignored.
func DrawText(src image.Image, message string, fontData []byte, size, x, y float64, col color.Color) (*image.NRGBA, error) {
	face, err := loadFace(fontData, size)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	out := toNRGBA(src)
	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(message)
	return out, nil
}

func loadFace(data []byte, size float64) (font.Face, error) {
	if len(data) == 0 {
		return basicfont.Face7x13, nil
	}
	if size <= 0 {
		return nil, fmt.Errorf("font size %g must be positive: %w", size, ErrBadArgument)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %v: %w", err, ErrBadArgument)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}
