package cli

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/Fepozopo/cif/pkg/coerce"
	"github.com/Fepozopo/cif/pkg/filter"
	"github.com/disintegration/imaging"
)

const patternPrefix = "pattern:"

// patternFilters maps pattern:NAME to the generator drawing it.
var patternFilters = map[string]string{
	"checkerboard": "checkerboard",
	"stripes":      "stripes",
	"gradient":     "linearGradient",
}

func isStdio(path, name string) bool {
	return path == "" || path == "-" || strings.EqualFold(path, name)
}

// loadImage decodes path, applying EXIF orientation. "-" and "STDIN" read
// from stdin; "pattern:NAME" draws a 256x256 built-in tile, where NAME is
// checkerboard, stripes, gradient or any color.
func loadImage(path string, stdin io.Reader, c *coerce.Coercer) (image.Image, error) {
	if name, ok := strings.CutPrefix(path, patternPrefix); ok {
		return patternImage(name, c)
	}
	if isStdio(path, "STDIN") {
		img, err := imaging.Decode(stdin, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("decode stdin: %w", err)
		}
		return img, nil
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	return img, nil
}

func patternImage(name string, c *coerce.Coercer) (image.Image, error) {
	if gen, ok := patternFilters[strings.ToLower(name)]; ok {
		return filter.Apply(nil, gen, nil)
	}
	col, err := c.Colors().Parse(name)
	if err != nil {
		return nil, fmt.Errorf("pattern %q is neither %s nor a color: %w", name, strings.Join(patternNames(), ", "), err)
	}
	return filter.ConstantColor(col, 256, 256)
}

func patternNames() []string {
	return []string{"checkerboard", "gradient", "stripes"}
}

// saveOptions controls encoding.
type saveOptions struct {
	format      string // used for stdout, where there is no extension
	jpegQuality int
}

// saveImage encodes img to path, choosing the format from its extension:
// png, jpg/jpeg, gif, tif/tiff or bmp. "-" and "STDOUT" write to stdout in
// opts.format.
func saveImage(img image.Image, path string, stdout io.Writer, opts saveOptions) error {
	quality := imaging.JPEGQuality(opts.jpegQuality)
	if isStdio(path, "STDOUT") {
		f, err := imaging.FormatFromExtension(opts.format)
		if err != nil {
			return fmt.Errorf("output format %q: %w", opts.format, err)
		}
		if err := imaging.Encode(stdout, img, f, quality); err != nil {
			return fmt.Errorf("encode stdout: %w", err)
		}
		return nil
	}
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("output %s: %w", path, err)
	}
	if err := imaging.Save(img, path, quality); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
