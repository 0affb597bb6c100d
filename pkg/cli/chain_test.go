package cli

import (
	"image"
	"testing"

	"github.com/Fepozopo/cif/pkg/coerce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChainGroupsSteps(t *testing.T) {
	steps, err := parseChain([]string{
		"gaussianBlur", "-radius", "3",
		"rotate", "-angle", "-30", "--background=red",
		"grayscale",
	})
	require.NoError(t, err)
	require.Len(t, steps, 3)

	assert.Equal(t, "gaussianBlur", steps[0].spec.Name)
	assert.Equal(t, map[string]string{"radius": "3"}, steps[0].raw)
	assert.Equal(t, map[string]string{"angle": "-30", "background": "red"}, steps[1].raw)
	assert.Empty(t, steps[2].raw)
}

func TestParseChainCanonicalNames(t *testing.T) {
	steps, err := parseChain([]string{"BLEND", "-BackgroundImage", "bg.png"})
	require.NoError(t, err)
	assert.Equal(t, "blend", steps[0].spec.Name)
	assert.Equal(t, "bg.png", steps[0].raw["backgroundImage"])
}

func TestParseChainErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"empty", nil, "no filter"},
		{"leading param", []string{"-radius", "3"}, "expected a filter name"},
		{"unknown filter", []string{"sparkle"}, "unknown filter"},
		{"unknown param", []string{"gaussianBlur", "-sigma", "2"}, "valid: -radius"},
		{"missing value", []string{"gaussianBlur", "-radius"}, "needs a value"},
		{"duplicate", []string{"gamma", "-power", "2", "-power", "3"}, "given twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseChain(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStepCoerce(t *testing.T) {
	steps, err := parseChain([]string{"checkerboard", "-color0", "#f00", "-width", "50%", "-size", "4x4"})
	require.NoError(t, err)

	args, err := steps[0].coerce(coerce.NewCoercer(), nil)
	require.NoError(t, err)
	assert.Equal(t, coerce.Color{R: 1, A: 1}, args["color0"])
	assert.Equal(t, 0.5, args["width"])
	assert.Equal(t, coerce.Rect{Width: 4, Height: 4}, args["size"])
	assert.NotContains(t, args, "color1", "defaults are filled by the filter package")
}

func TestStepCoerceReportsToken(t *testing.T) {
	steps, err := parseChain([]string{"constantColor", "-color", "rgb(256,0,0)"})
	require.NoError(t, err)

	_, err = steps[0].coerce(coerce.NewCoercer(), nil)
	require.ErrorIs(t, err, coerce.ErrOutOfRange)
	msg := err.Error()
	assert.Contains(t, msg, `"constantColor"`)
	assert.Contains(t, msg, `"color"`)
	assert.Contains(t, msg, "256")
	assert.Contains(t, msg, "out of range")
}

func TestStepCoerceLoadsImages(t *testing.T) {
	steps, err := parseChain([]string{"blend", "-backgroundImage", "pattern:stripes", "-mode", "screen"})
	require.NoError(t, err)

	args, err := steps[0].coerce(coerce.NewCoercer(), nil)
	require.NoError(t, err)
	assert.Equal(t, "screen", args["mode"])
	bg, ok := args["backgroundImage"].(image.Image)
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 256, 256), bg.Bounds())
}
