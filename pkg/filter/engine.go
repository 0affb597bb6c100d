package filter

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/Fepozopo/cif/pkg/coerce"
	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

var defaults = coerce.NewCoercer()

// Apply runs the named filter on img and returns a new image; img is not
// modified. Parameters missing from args take their registry default.
// Generator filters ignore img, which may be nil.
func Apply(img image.Image, name string, args Args) (image.Image, error) {
	spec, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownFilter)
	}
	if img == nil && !spec.Generator {
		return nil, fmt.Errorf("%s: %w", spec.Name, ErrNoInput)
	}
	full, err := withDefaults(spec, args, defaults)
	if err != nil {
		return nil, err
	}
	if img != nil {
		img = toNRGBA(img)
	}

	start := time.Now()
	out, err := apply(img, spec.Name, &argReader{filter: spec.Name, args: full})
	if err != nil {
		return nil, err
	}
	b := out.Bounds()
	Logger().Debug("filter applied",
		"filter", spec.Name,
		"width", b.Dx(),
		"height", b.Dy(),
		"duration", time.Since(start))
	return out, nil
}

func apply(img image.Image, name string, r *argReader) (image.Image, error) {
	switch name {
	// blur
	case "gaussianBlur":
		radius := r.number("radius")
		r.check(radius >= 0, "radius", "%g must not be negative", radius)
		if r.err != nil {
			return nil, r.err
		}
		return imaging.Blur(img, radius), nil

	case "boxBlur":
		radius := r.number("radius")
		r.check(radius >= 0, "radius", "%g must not be negative", radius)
		if r.err != nil {
			return nil, r.err
		}
		if radius == 0 {
			return img, nil
		}
		return blur.Box(img, radius), nil

	case "median":
		radius := r.number("radius")
		r.check(radius >= 0, "radius", "%g must not be negative", radius)
		if r.err != nil {
			return nil, r.err
		}
		if radius == 0 {
			return img, nil
		}
		return effect.Median(img, radius), nil

	case "sharpen":
		sigma := r.number("sigma")
		if r.err != nil {
			return nil, r.err
		}
		return imaging.Sharpen(img, sigma), nil

	case "unsharpMask":
		radius := r.number("radius")
		amount := r.number("intensity")
		r.check(radius >= 0, "radius", "%g must not be negative", radius)
		if r.err != nil {
			return nil, r.err
		}
		return effect.UnsharpMask(img, radius, amount), nil

	// color
	case "colorControls":
		sat := r.number("saturation")
		bright := r.number("brightness")
		contrast := r.number("contrast")
		r.check(sat >= 0, "saturation", "%g must not be negative", sat)
		r.check(bright >= -1 && bright <= 1, "brightness", "%g must be within -1..1", bright)
		r.check(contrast >= 0, "contrast", "%g must not be negative", contrast)
		if r.err != nil {
			return nil, r.err
		}
		out := imaging.AdjustSaturation(img, (sat-1)*100)
		out = imaging.AdjustBrightness(out, bright*100)
		return imaging.AdjustContrast(out, (contrast-1)*100), nil

	case "gamma":
		power := r.number("power")
		r.check(power > 0, "power", "%g must be positive", power)
		if r.err != nil {
			return nil, r.err
		}
		// imaging brightens for gamma > 1; power > 1 darkens.
		return imaging.AdjustGamma(img, 1/power), nil

	case "exposure":
		ev := r.number("ev")
		if r.err != nil {
			return nil, r.err
		}
		return Exposure(img, ev), nil

	case "hueAdjust":
		angle := r.number("angle")
		if r.err != nil {
			return nil, r.err
		}
		return adjust.Hue(img, int(math.Round(angle))), nil

	case "modulate":
		bright := r.number("brightness")
		sat := r.number("saturation")
		hue := r.number("hue")
		r.check(bright >= 0, "brightness", "%g must not be negative", bright)
		r.check(sat >= 0, "saturation", "%g must not be negative", sat)
		if r.err != nil {
			return nil, r.err
		}
		return Modulate(img, bright, sat, hue), nil

	case "colorInvert":
		return imaging.Invert(img), nil

	case "grayscale":
		return imaging.Grayscale(img), nil

	case "sepia":
		intensity := r.number("intensity")
		if r.err != nil {
			return nil, r.err
		}
		return imaging.Overlay(img, effect.Sepia(img), image.Point{}, clamp01(intensity)), nil

	case "colorMonochrome":
		tint := r.color("color")
		intensity := r.number("intensity")
		if r.err != nil {
			return nil, r.err
		}
		return Monochrome(img, tint, intensity), nil

	case "falseColor":
		c0 := r.color("color0")
		c1 := r.color("color1")
		if r.err != nil {
			return nil, r.err
		}
		return FalseColor(img, c0, c1), nil

	case "posterize":
		levels := r.number("levels")
		r.check(levels >= 2 && levels <= 256, "levels", "%g must be within 2..256", levels)
		if r.err != nil {
			return nil, r.err
		}
		return Posterize(img, int(levels)), nil

	// stylize
	case "edges":
		radius := r.number("radius")
		r.check(radius > 0, "radius", "%g must be positive", radius)
		if r.err != nil {
			return nil, r.err
		}
		return effect.EdgeDetection(img, radius), nil

	case "emboss":
		return effect.Emboss(img), nil

	case "vignette":
		radius := r.number("radius")
		intensity := r.number("intensity")
		b := img.Bounds()
		cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
		if center, ok := r.optionalVector("center"); ok {
			cx, cy = center.X(), center.Y()
		}
		if r.err != nil {
			return nil, r.err
		}
		return Vignette(img, cx, cy, radius, intensity), nil

	// geometry
	case "affineTransform":
		t := r.transform("transform")
		bg := r.color("background")
		if r.err != nil {
			return nil, r.err
		}
		return AffineTransform(img, t, bg)

	case "crop":
		rect := r.rect("rectangle")
		if r.err != nil {
			return nil, r.err
		}
		area := rect.Bounds().Intersect(img.Bounds())
		if area.Empty() {
			return nil, fmt.Errorf("crop: rectangle %v outside image %v: %w", rect.Bounds(), img.Bounds(), ErrBadArgument)
		}
		return imaging.Crop(img, area), nil

	case "resize":
		size := r.rect("size")
		if r.err != nil {
			return nil, r.err
		}
		w, h, err := sizeOf(size)
		if err != nil {
			return nil, fmt.Errorf("resize: %w", err)
		}
		if w == 0 && h == 0 {
			return nil, fmt.Errorf("resize: width and height are both zero: %w", ErrBadArgument)
		}
		return imaging.Resize(img, w, h, imaging.Lanczos), nil

	case "rotate":
		angle := r.number("angle")
		bg := r.color("background")
		if r.err != nil {
			return nil, r.err
		}
		return imaging.Rotate(img, angle, bg), nil

	case "flip":
		return imaging.FlipV(img), nil

	case "flop":
		return imaging.FlipH(img), nil

	// composite
	case "blend":
		bg := r.image("backgroundImage")
		mode := r.text("mode")
		off := r.vector("offset")
		if r.err != nil {
			return nil, r.err
		}
		return Blend(img, bg, mode, int(math.Round(off.X())), int(math.Round(off.Y())))

	case "text":
		msg := r.text("message")
		fontData := r.optionalData("font")
		size := r.number("size")
		pos := r.vector("position")
		col := r.color("color")
		if r.err != nil {
			return nil, r.err
		}
		return DrawText(img, msg, fontData, size, pos.X(), pos.Y(), col)

	// generator
	case "constantColor":
		c := r.color("color")
		size := r.rect("size")
		if r.err != nil {
			return nil, r.err
		}
		w, h, err := sizeOf(size)
		if err != nil {
			return nil, err
		}
		return ConstantColor(c, w, h)

	case "checkerboard":
		center := r.vector("center")
		c0 := r.color("color0")
		c1 := r.color("color1")
		width := r.number("width")
		size := r.rect("size")
		if r.err != nil {
			return nil, r.err
		}
		w, h, err := sizeOf(size)
		if err != nil {
			return nil, err
		}
		return Checkerboard(center.X(), center.Y(), c0, c1, width, w, h)

	case "stripes":
		c0 := r.color("color0")
		c1 := r.color("color1")
		width := r.number("width")
		size := r.rect("size")
		if r.err != nil {
			return nil, r.err
		}
		w, h, err := sizeOf(size)
		if err != nil {
			return nil, err
		}
		return Stripes(c0, c1, width, w, h)

	case "linearGradient":
		p0 := r.vector("point0")
		p1 := r.vector("point1")
		c0 := r.color("color0")
		c1 := r.color("color1")
		size := r.rect("size")
		if r.err != nil {
			return nil, r.err
		}
		w, h, err := sizeOf(size)
		if err != nil {
			return nil, err
		}
		return LinearGradient(p0, p1, c0, c1, w, h)
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownFilter)
}
